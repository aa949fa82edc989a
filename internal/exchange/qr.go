package exchange

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

var qrPalette = color.Palette{color.White, color.Black}

// encodeQR renders content as a low error correction QR code with no quiet
// zone, each module scale pixels square, as a black and white PNG.
func encodeQR(content string, scale int) ([]byte, error) {
	q, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	q.DisableBorder = true

	img := renderModules(q.Bitmap(), scale)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// renderModules draws a module grid, true for dark, scaled up by scale.
func renderModules(modules [][]bool, scale int) *image.Paletted {
	size := len(modules)
	img := image.NewPaletted(image.Rect(0, 0, size*scale, size*scale), qrPalette)

	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(x*scale+dx, y*scale+dy, 1)
				}
			}
		}
	}
	return img
}
