package tumble

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"start", "start"},
		{"rolled-right", "rolled-right"},
		{"Rolled Right!", "rolled-right"},
		{"after  skip", "after-skip"},
		{"frame.01", "frame-01"},
		{"path/to/thing", "path-to-thing"},
		{"snake_case", "snake_case"},
		{"--edge--", "edge"},
		{"", "frame"},
		{"  ", "frame"},
		{"!!!", "frame"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotPathNumbersCaptures(t *testing.T) {
	l := NewLoop(RunConfig{})
	l.ScreenshotDir = "shots"
	first := l.screenshotPath("start")
	l.current = 1
	second := l.screenshotPath("start")

	if first != filepath.Join("shots", "001_stage0_start.png") {
		t.Errorf("first = %q", first)
	}
	if second != filepath.Join("shots", "002_stage1_start.png") {
		t.Errorf("second = %q", second)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	img := unpremultiply([]byte{64, 32, 0, 128}, 1, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	c := color.NRGBAModel.Convert(got.At(0, 0)).(color.NRGBA)
	if c != (color.NRGBA{127, 63, 0, 128}) {
		t.Errorf("pixel = %v, want {127 63 0 128}", c)
	}

	if err := writePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Error("writing into a missing directory should fail")
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	l := NewLoop(RunConfig{})
	l.Screenshot("a")
	l.Screenshot("b")
	l.Screenshot("c")
	if len(l.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(l.screenshotQueue))
	}
	if l.screenshotQueue[0] != "a" || l.screenshotQueue[1] != "b" || l.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", l.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	l := NewLoop(RunConfig{})
	if l.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", l.ScreenshotDir, "screenshots")
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 255, 255, 255, // opaque white
		64, 32, 0, 128, // half-transparent orange
		0, 0, 0, 0, // transparent
		10, 20, 30, 255, // opaque, unchanged
	}
	img := unpremultiply(pixels, 2, 2)

	want := []byte{
		255, 255, 255, 255,
		127, 63, 0, 128,
		0, 0, 0, 0,
		10, 20, 30, 255,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestUnpremultiplyClamps(t *testing.T) {
	// Channels above alpha are invalid premultiplied input and saturate.
	img := unpremultiply([]byte{200, 0, 0, 100}, 1, 1)
	if img.Pix[0] != 255 {
		t.Errorf("Pix[0] = %d, want 255", img.Pix[0])
	}
}
