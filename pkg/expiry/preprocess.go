package expiry

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Preprocess normalizes raw encoded image bytes into an OCR-ready bitmap:
// decode, grayscale, automatic global threshold (Otsu), despeckle. Pure
// transform; the result is a single-channel black/white bitmap.
func Preprocess(imageBytes []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	gray := imaging.Grayscale(img)
	bin := binarize(gray, otsuThreshold(gray))
	return despeckle(bin), nil
}

// otsuThreshold picks the global threshold that maximizes between-class
// variance of the gray histogram, separating text ink from background
// without manual tuning.
func otsuThreshold(img image.Image) uint8 {
	var hist [256]int
	b := img.Bounds()
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			hist[uint8((r+g+bb)/3>>8)]++
			total++
		}
	}
	if total == 0 {
		return 128
	}
	var sum float64
	for i, c := range hist {
		sum += float64(i * c)
	}
	var sumB, wB float64
	best := -1.0
	th := 0
	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i * hist[i])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			th = i
		}
	}
	return uint8(th)
}

// binarize applies a global threshold to a grayscale image.
func binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := uint8((r + g + bb) / 3 >> 8)
			var v uint8 = 255
			if gray <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}

// despeckle removes salt-and-pepper noise from a binary image with a 3x3
// majority vote, which is what photographed/scanned label text needs most.
func despeckle(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			black := 0
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					x2 := x + dx
					y2 := y + dy
					if x2 < 0 || y2 < 0 || x2 >= w || y2 >= h {
						continue
					}
					n++
					r, g, bb, _ := img.At(b.Min.X+x2, b.Min.Y+y2).RGBA()
					if r+g+bb == 0 {
						black++
					}
				}
			}
			if black*2 > n {
				out.Set(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return out
}
