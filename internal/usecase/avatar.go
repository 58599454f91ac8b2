package usecase

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"
)

// avatarSize is the fixed pixel resolution of the circular photo, whatever
// the source format or aspect ratio.
const avatarSize = 400

// CircleAvatar reads an image file, center-crops it to a square using the
// shorter dimension, rescales it to avatarSize and masks the corners to a
// circle. The result is PNG-encoded.
func CircleAvatar(srcPath string) ([]byte, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	crop := centerSquare(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	maskCircle(dst)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI wraps PNG bytes as a data: URI for inline embedding in HTML.
func DataURI(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

// centerSquare returns the largest centered square within b.
func centerSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}

// maskCircle zeroes the alpha of every pixel outside the inscribed circle,
// with a one-pixel feather at the rim so the edge does not alias.
func maskCircle(img *image.RGBA) {
	size := img.Bounds().Dx()
	r := float64(size) / 2
	cx, cy := r, r
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d := dx*dx + dy*dy
			outer := r * r
			inner := (r - 1) * (r - 1)
			if d <= inner {
				continue
			}
			i := img.PixOffset(x, y)
			if d >= outer {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
				continue
			}
			// linear feather between inner and outer radius
			frac := (outer - d) / (outer - inner)
			for c := 0; c < 4; c++ {
				img.Pix[i+c] = uint8(float64(img.Pix[i+c]) * frac)
			}
		}
	}
}
