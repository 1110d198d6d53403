package tumble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Content is a shared, immutable handle to the pixels an entity draws. Many
// entities may hold the same *Content; the scene never mutates or disposes it.
type Content struct {
	img    *ebiten.Image
	width  int
	height int
}

// NewContent wraps an ebiten image.
func NewContent(img *ebiten.Image) *Content {
	b := img.Bounds()
	return &Content{img: img, width: b.Dx(), height: b.Dy()}
}

// NewContentSize creates an imageless content handle with the given pixel
// size. The scene skips it when drawing; it exists for geometry-only use such
// as physics bodies in tests and headless tools.
func NewContentSize(width, height int) *Content {
	return &Content{width: width, height: height}
}

// LoadContent decodes an image file into a content handle.
func LoadContent(path string) (*Content, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return NewContent(img), nil
}

// NewDiscContent draws a filled disc of the given diameter crossed by a
// stripe, so that rotation is visible. Programs use it when an image file is
// missing.
func NewDiscContent(diameter int, fill, stripe Color) *Content {
	img := ebiten.NewImage(diameter, diameter)
	r := float32(diameter) / 2
	vector.FillCircle(img, r, r, r, fill.RGBA(), true)
	vector.StrokeLine(img, r, 1, r, float32(diameter)-1, 3, stripe.RGBA(), true)
	return NewContent(img)
}

// LoadContentOr loads path, falling back to fallback when the file cannot be
// read or decoded. The load error is returned alongside the fallback.
func LoadContentOr(path string, fallback func() *Content) (*Content, error) {
	c, err := LoadContent(path)
	if err != nil {
		return fallback(), err
	}
	return c, nil
}

// Image returns the underlying image, or nil for size-only content.
func (c *Content) Image() *ebiten.Image { return c.img }

// Width returns the pixel width.
func (c *Content) Width() int { return c.width }

// Height returns the pixel height.
func (c *Content) Height() int { return c.height }
