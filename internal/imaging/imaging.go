// Package imaging provides the pixel-buffer plumbing under separation
// generation: color model conversion, plane allocation, resampling and
// rotation. It works on the standard image types; planes are grayscale
// with their origin at (0, 0).
package imaging

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ToNRGBA converts any image to NRGBA with the origin at (0, 0).
// An NRGBA source already at the origin is returned as-is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Rect.Min == (image.Point{}) {
		return src
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// ToGray converts any image to grayscale with the origin at (0, 0).
// A Gray source already at the origin is returned as-is.
func ToGray(img image.Image) *image.Gray {
	if src, ok := img.(*image.Gray); ok && src.Rect.Min == (image.Point{}) {
		return src
	}

	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// ToCMYK converts any image to CMYK with the origin at (0, 0).
// A CMYK source already at the origin is returned as-is.
func ToCMYK(img image.Image) *image.CMYK {
	if src, ok := img.(*image.CMYK); ok && src.Rect.Min == (image.Point{}) {
		return src
	}

	b := img.Bounds()
	dst := image.NewCMYK(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// Opaque reports whether the image is fully opaque. Images that do not
// expose an Opaque method are assumed opaque.
func Opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}

// NewPlane allocates a w by h grayscale plane filled with v.
func NewPlane(w, h int, v uint8) *image.Gray {
	p := image.NewGray(image.Rect(0, 0, w, h))
	if v != 0 {
		for i := range p.Pix {
			p.Pix[i] = v
		}
	}
	return p
}

// Resample scales a plane to w by h with a Catmull-Rom kernel.
// Returns the source unchanged when the dimensions already match.
func Resample(p *image.Gray, w, h int) *image.Gray {
	if p.Rect.Dx() == w && p.Rect.Dy() == h {
		return p
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Rect, p, p.Bounds(), xdraw.Src, nil)
	return dst
}

// ResampleImage scales any image to w by h NRGBA with a Catmull-Rom
// kernel.
func ResampleImage(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Rotation maps coordinates of a rotated plane back into the source
// plane. The zero value is the identity.
type Rotation struct {
	sin, cos     float64
	srcCX, srcCY float64
	dstCX, dstCY float64
	rotated      bool
}

// Unmap converts a point in the rotated plane to source coordinates.
func (r Rotation) Unmap(x, y float64) (float64, float64) {
	if !r.rotated {
		return x, y
	}
	dx := x - r.dstCX
	dy := y - r.dstCY
	return r.cos*dx + r.sin*dy + r.srcCX, -r.sin*dx + r.cos*dy + r.srcCY
}

// Rotate rotates a plane by the given angle in degrees about its center,
// expanding the canvas to hold the rotated bounds. Uncovered pixels take
// the fill value. A zero angle returns the source plane and an identity
// Rotation.
func Rotate(p *image.Gray, degrees float64, fill uint8) (*image.Gray, Rotation) {
	if degrees == 0 {
		return p, Rotation{}
	}

	a := degrees * math.Pi / 180
	sin, cos := math.Sin(a), math.Cos(a)

	srcW := float64(p.Rect.Dx())
	srcH := float64(p.Rect.Dy())
	dstW := int(math.Ceil(math.Abs(srcW*cos) + math.Abs(srcH*sin)))
	dstH := int(math.Ceil(math.Abs(srcW*sin) + math.Abs(srcH*cos)))

	r := Rotation{
		sin: sin, cos: cos,
		srcCX: srcW / 2, srcCY: srcH / 2,
		dstCX: float64(dstW) / 2, dstCY: float64(dstH) / 2,
		rotated: true,
	}

	dst := NewPlane(dstW, dstH, fill)
	m := f64.Aff3{
		cos, -sin, r.dstCX - cos*r.srcCX + sin*r.srcCY,
		sin, cos, r.dstCY - sin*r.srcCX - cos*r.srcCY,
	}
	xdraw.BiLinear.Transform(dst, m, p, p.Bounds(), xdraw.Src, nil)

	return dst, r
}

// Mean returns the average pixel value of a plane, 0 for an empty one.
func Mean(p *image.Gray) float64 {
	w := p.Rect.Dx()
	h := p.Rect.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	var sum uint64
	for y := 0; y < h; y++ {
		row := p.Pix[y*p.Stride : y*p.Stride+w]
		for _, v := range row {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(w*h)
}
