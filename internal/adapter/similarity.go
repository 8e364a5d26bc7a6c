package adapter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"log/slog"
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder

	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// Scorer computes a perceptual similarity between two images.
type Scorer interface {
	// Score returns a similarity in [0,1] and writes a per-pixel difference
	// map to diffOut when it is not empty.
	Score(a, b, diffOut m.Path) (float64, error)
}

// SSIM parameters: uniform 7x7 window, sample covariance, unit data range.
const (
	ssimWindow = 7
	ssimK1     = 0.01
	ssimK2     = 0.03
)

var errSizeMismatch = errors.New("image dimensions differ")

// SSIMScorer scores images with the mean structural similarity index over
// the RGB channels.
type SSIMScorer struct{}

// NewSSIMScorer constructs an SSIMScorer.
func NewSSIMScorer() *SSIMScorer {
	return &SSIMScorer{}
}

// Score loads both images, computes SSIM and writes the (1-S) diff map.
func (s *SSIMScorer) Score(a, b, diffOut m.Path) (float64, error) {
	imgA, err := loadImage(a)
	if err != nil {
		return 0, err
	}

	imgB, err := loadImage(b)
	if err != nil {
		return 0, err
	}

	score, diff, err := SSIM(imgA, imgB)
	if err != nil {
		return 0, fmt.Errorf("score %s vs %s: %w", a, b, err)
	}

	if diffOut != "" {
		if err := writePNG(diffOut, diff); err != nil {
			return 0, &m.WriteError{Path: diffOut, Err: err}
		}
	}

	slog.Debug("scored images", "a", a, "b", b, "ssim", score)

	return score, nil
}

func loadImage(p m.Path) (image.Image, error) {
	f, err := os.Open(string(p))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", p, err)
	}

	return img, nil
}

func writePNG(p m.Path, img image.Image) error {
	f, err := os.Create(string(p))
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// SSIM returns the mean SSIM of a and b and the per-pixel difference map
// rendered as (1-S)*255 per channel.
func SSIM(a, b image.Image) (float64, *image.RGBA, error) {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() {
		return 0, nil, fmt.Errorf("%w: %dx%d vs %dx%d", errSizeMismatch, ba.Dx(), ba.Dy(), bb.Dx(), bb.Dy())
	}

	w, h := ba.Dx(), ba.Dy()
	if w < ssimWindow || h < ssimWindow {
		return 0, nil, fmt.Errorf("images smaller than %dx%d window", ssimWindow, ssimWindow)
	}

	chA, chB := channels(a), channels(b)
	diff := image.NewRGBA(image.Rect(0, 0, w, h))

	total := 0.0
	for c := range 3 {
		smap := ssimMap(chA[c], chB[c], w, h)
		total += croppedMean(smap, w, h)

		for i, v := range smap {
			off := (i/w)*diff.Stride + (i%w)*4
			diff.Pix[off+c] = uint8(math.Round(clamp01(1-v) * 255))
			diff.Pix[off+3] = 0xff
		}
	}

	return total / 3, diff, nil
}

// channels converts img to three float planes in [0,1].
func channels(img image.Image) [3][]float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var planes [3][]float64
	for c := range planes {
		planes[c] = make([]float64, w*h)
	}

	for y := range h {
		for x := range w {
			px := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := y*w + x
			planes[0][i] = float64(px.R) / 255
			planes[1][i] = float64(px.G) / 255
			planes[2][i] = float64(px.B) / 255
		}
	}

	return planes
}

// integral builds a summed-area table with a zero first row and column.
type integral struct {
	w   int
	sum []float64
}

func newIntegral(w, h int, f func(i int) float64) integral {
	t := integral{w: w + 1, sum: make([]float64, (w+1)*(h+1))}

	for y := range h {
		row := 0.0

		for x := range w {
			row += f(y*w + x)
			t.sum[(y+1)*t.w+x+1] = t.sum[y*t.w+x+1] + row
		}
	}

	return t
}

// box returns the sum over [x0,x1) x [y0,y1).
func (t integral) box(x0, y0, x1, y1 int) float64 {
	return t.sum[y1*t.w+x1] - t.sum[y0*t.w+x1] - t.sum[y1*t.w+x0] + t.sum[y0*t.w+x0]
}

func ssimMap(x, y []float64, w, h int) []float64 {
	sx := newIntegral(w, h, func(i int) float64 { return x[i] })
	sy := newIntegral(w, h, func(i int) float64 { return y[i] })
	sxx := newIntegral(w, h, func(i int) float64 { return x[i] * x[i] })
	syy := newIntegral(w, h, func(i int) float64 { return y[i] * y[i] })
	sxy := newIntegral(w, h, func(i int) float64 { return x[i] * y[i] })

	c1 := ssimK1 * ssimK1
	c2 := ssimK2 * ssimK2
	half := ssimWindow / 2
	out := make([]float64, w*h)

	for py := range h {
		y0, y1 := max(0, py-half), min(h, py+half+1)

		for px := range w {
			x0, x1 := max(0, px-half), min(w, px+half+1)
			n := float64((x1 - x0) * (y1 - y0))
			covNorm := n / (n - 1)

			ux := sx.box(x0, y0, x1, y1) / n
			uy := sy.box(x0, y0, x1, y1) / n
			vx := covNorm * (sxx.box(x0, y0, x1, y1)/n - ux*ux)
			vy := covNorm * (syy.box(x0, y0, x1, y1)/n - uy*uy)
			vxy := covNorm * (sxy.box(x0, y0, x1, y1)/n - ux*uy)

			a1 := 2*ux*uy + c1
			a2 := 2*vxy + c2
			b1 := ux*ux + uy*uy + c1
			b2 := vx + vy + c2

			out[py*w+px] = (a1 * a2) / (b1 * b2)
		}
	}

	return out
}

// croppedMean averages the map excluding the border where the window is clipped.
func croppedMean(smap []float64, w, h int) float64 {
	pad := (ssimWindow - 1) / 2
	sum, count := 0.0, 0

	for y := pad; y < h-pad; y++ {
		for x := pad; x < w-pad; x++ {
			sum += smap[y*w+x]
			count++
		}
	}

	return sum / float64(count)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
