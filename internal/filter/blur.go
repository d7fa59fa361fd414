package filter

import (
	"image"
	"sync"
)

// Gaussian applies a separable Gaussian blur to a grayscale plane and
// returns the result as a new plane. The source is not modified.
//
// The two-pass separable algorithm (horizontal, then vertical) runs in
// O(w*h*r) instead of O(w*h*r²). Edges are clamped (edge extension).
// A radius <= 0 returns an unfiltered copy.
func Gaussian(src *image.Gray, radius float64) *image.Gray {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	if radius <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}

	kernel := CachedGaussianKernel(radius)

	temp := getTempBuffer(w * h)
	defer putTempBuffer(temp)

	blurHorizontal(src, temp, w, h, kernel)
	blurVertical(temp, dst, w, h, kernel)

	return dst
}

// blurHorizontal convolves each row of src with the 1D kernel into temp.
func blurHorizontal(src *image.Gray, temp []float32, w, h int, kernel []float32) {
	halfKernel := len(kernel) / 2

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]

		for x := 0; x < w; x++ {
			var sum float32

			for k := range kernel {
				kx := x + k - halfKernel

				// Clamp to plane bounds (edge extension)
				if kx < 0 {
					kx = 0
				} else if kx >= w {
					kx = w - 1
				}

				sum += float32(row[kx]) * kernel[k]
			}

			temp[y*w+x] = sum
		}
	}
}

// blurVertical convolves each column of temp with the 1D kernel into dst.
func blurVertical(temp []float32, dst *image.Gray, w, h int, kernel []float32) {
	halfKernel := len(kernel) / 2

	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride:]

		for x := 0; x < w; x++ {
			var sum float32

			for k := range kernel {
				ky := y + k - halfKernel

				// Clamp to plane bounds (edge extension)
				if ky < 0 {
					ky = 0
				} else if ky >= h {
					ky = h - 1
				}

				sum += temp[ky*w+x] * kernel[k]
			}

			row[x] = clampUint8(sum)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Temporary buffer pool for blur passes.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 1024*1024)} // 4MB for a 1024x1024 plane
	},
}

// getTempBuffer retrieves a temporary buffer with at least size elements.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if len(wrapper.data) < size {
		// Need a larger buffer; return the old one and allocate fresh.
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}

	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
