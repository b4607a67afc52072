package analyzer

import "image"

// RasterImage is the minimal read-only view of pixel data the engine
// works on. It decouples the analysis from any particular decoding
// library: anything that can hand out 8-bit RGB per coordinate can be
// analyzed. Implementations must be safe for repeated reads; the
// engine never writes through this interface.
type RasterImage interface {
	Width() int
	Height() int
	// RGBAt returns the 8-bit channel values at (x, y). Coordinates
	// are 0-based with origin at the top-left.
	RGBAt(x, y int) (r, g, b uint8)
}

// FromImage adapts a decoded stdlib image into a RasterImage.
// *image.RGBA and *image.NRGBA get a direct Pix slice path; everything
// else goes through the generic color model conversion.
func FromImage(img image.Image) RasterImage {
	switch v := img.(type) {
	case *image.RGBA:
		return &byteRaster{pix: v.Pix, stride: v.Stride, rect: v.Rect}
	case *image.NRGBA:
		return &byteRaster{pix: v.Pix, stride: v.Stride, rect: v.Rect}
	default:
		return &genericRaster{img: img}
	}
}

// byteRaster reads straight from an 8-bit RGBA pixel buffer.
type byteRaster struct {
	pix    []uint8
	stride int
	rect   image.Rectangle
}

func (r *byteRaster) Width() int  { return r.rect.Dx() }
func (r *byteRaster) Height() int { return r.rect.Dy() }

func (r *byteRaster) RGBAt(x, y int) (uint8, uint8, uint8) {
	i := y*r.stride + x*4
	return r.pix[i], r.pix[i+1], r.pix[i+2]
}

// genericRaster falls back to image.Image's 16-bit accessor.
type genericRaster struct {
	img image.Image
}

func (r *genericRaster) Width() int  { return r.img.Bounds().Dx() }
func (r *genericRaster) Height() int { return r.img.Bounds().Dy() }

func (r *genericRaster) RGBAt(x, y int) (uint8, uint8, uint8) {
	b := r.img.Bounds()
	cr, cg, cb, _ := r.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}
