package reporting

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"regexp"

	"p9e.in/agentreport/pkg/document"
	"p9e.in/agentreport/pkg/storage"
)

var dataURIPattern = regexp.MustCompile(`^data:image/\w+;base64,(.*)$`)

// PictureLoader resolves a photo reference to image bytes.
type PictureLoader interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// StorePictures reads base64 data URIs inline and anything else as a key
// in the store.
type StorePictures struct {
	Store storage.Store
}

func (p StorePictures) Load(ctx context.Context, ref string) ([]byte, error) {
	if m := dataURIPattern.FindStringSubmatch(ref); m != nil {
		data, err := base64.StdEncoding.DecodeString(m[1])
		if err != nil {
			return nil, fmt.Errorf("decode data uri: %w", err)
		}
		return data, nil
	}
	if p.Store == nil {
		return nil, fmt.Errorf("no picture store for %q", ref)
	}
	rc, err := p.Store.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// quarterTurns maps degrees onto clockwise quarter turns, rounding to the
// nearest multiple of 90.
func quarterTurns(degrees int) int {
	d := ((degrees % 360) + 360) % 360
	return ((d + 45) / 90) % 4
}

// rotatePNG turns the image clockwise by degrees and encodes it as PNG.
func rotatePNG(data []byte, degrees int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	img := rotate(src, quarterTurns(degrees))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rotate(src image.Image, turns int) image.Image {
	if turns == 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	var dst *image.NRGBA
	if turns == 2 {
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, h, w))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.At(b.Min.X+x, b.Min.Y+y)
			switch turns {
			case 1:
				dst.Set(h-1-y, x, c)
			case 2:
				dst.Set(w-1-x, h-1-y, c)
			case 3:
				dst.Set(y, w-1-x, c)
			}
		}
	}
	return dst
}

// fillPhotosTable puts up to four photos into the 2x2 grid of table.
func fillPhotosTable(table *document.Table, photos [][]byte) {
	var cells []*document.Cell
	for n := 0; n < 2; n++ {
		row := table.RowCells(n)
		cells = append(cells, row[:min(2, len(row))]...)
	}
	height := 0.0
	if len(table.Rows) > 0 {
		height = table.Rows[0].Height
	}
	width := 0.0
	if len(table.ColWidths) > 0 {
		width = table.ColWidths[0]
	}
	for i, data := range photos {
		if i >= len(cells) {
			break
		}
		document.InsertPictureIntoCell(cells[i], data, height, width)
	}
}
