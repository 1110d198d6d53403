package tumble

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the frame being drawn. Files are
// written to ScreenshotDir as NNN_stageS_label.png, numbered in capture order
// so repeated labels never overwrite each other. Test scripts queue these
// with their "screenshot" step.
func (l *Loop) Screenshot(label string) {
	l.screenshotQueue = append(l.screenshotQueue, label)
}

// screenshotPath names the next capture and advances the counter.
func (l *Loop) screenshotPath(label string) string {
	l.shots++
	name := fmt.Sprintf("%03d_stage%d_%s.png", l.shots, l.current, sanitizeLabel(label))
	return filepath.Join(l.ScreenshotDir, name)
}

// flushScreenshots writes one PNG per queued label from the finished frame.
func (l *Loop) flushScreenshots(screen *ebiten.Image) {
	if len(l.screenshotQueue) == 0 {
		return
	}
	defer func() { l.screenshotQueue = l.screenshotQueue[:0] }()

	if err := os.MkdirAll(l.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[tumble] screenshot: %v\n", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	for _, label := range l.screenshotQueue {
		if err := writePNG(l.screenshotPath(label), img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[tumble] screenshot %q: %v\n", label, err)
		}
	}
}

// unpremultiply converts premultiplied RGBA pixels, as returned by
// ReadPixels, to a straight-alpha NRGBA image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

var screenshotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return screenshotEncoder.Encode(f, img)
}

// sanitizeLabel turns a step label into a file name fragment: lower case
// letters, digits and underscores are kept, every other run of characters
// becomes a single dash, and an empty result reads "frame".
func sanitizeLabel(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "frame"
	}
	return b.String()
}
