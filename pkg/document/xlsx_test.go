package document

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func saved(t *testing.T, d Document) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmpl.xlsx")
	first := NewTable("pallets", [][]string{{"Pallets", "{{ pallets }}"}, {"Boxes", "{{ boxes }}"}})
	first.ColWidths = []float64{30, 12}
	second := NewTable("яблоко", [][]string{{"{{ number }}"}})

	if err := (XLSX{}).WriteTemplate(path, first, second); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	tmpl, err := XLSX{}.LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if got := tmpl.Names(); len(got) != 2 || got[0] != "pallets" || got[1] != "яблоко" {
		t.Fatalf("names = %v", got)
	}
	tbl, _ := tmpl.Table(0)
	texts := tbl.Texts()
	if texts[1][1] != "{{ boxes }}" {
		t.Errorf("texts = %v", texts)
	}
	if len(tbl.ColWidths) != 2 || tbl.ColWidths[0] != 30 {
		t.Errorf("col widths = %v", tbl.ColWidths)
	}
}

func TestLoadMissingTemplate(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.xlsx")
	if _, err := (XLSX{}).LoadTemplate(missing); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate err = %v", err)
	}
	if _, err := (XLSX{}).Load(missing); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Load err = %v", err)
	}
}

func TestDocumentLayout(t *testing.T) {
	d := XLSX{}.New()
	d.AppendParagraph("Heading", DefaultStyle)
	tbl := d.AppendTable(NewTable("t", [][]string{{"a", "b"}, {"c", "d"}}))
	tbl.Rows[1].Cells[1].SetText("changed")

	if got := len(d.Tables()); got != 1 {
		t.Fatalf("tables = %d", got)
	}

	f := saved(t, d)
	rows, err := f.GetRows(reportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) < 3 || rows[0][0] != "Heading" || rows[1][0] != "a" || rows[2][1] != "changed" {
		t.Errorf("rows = %q", rows)
	}
}

func TestOpenAppendsBelowExistingContent(t *testing.T) {
	d := XLSX{}.New()
	d.AppendTable(NewTable("t", [][]string{{"first"}}))
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatal(err)
	}

	reopened, err := XLSX{}.Open(&buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := reopened.Tables(); len(got) != 1 || got[0].Texts()[0][0] != "first" {
		t.Fatalf("tables after open = %v", got)
	}
	reopened.AppendParagraph("second", DefaultStyle)

	f := saved(t, reopened)
	rows, _ := f.GetRows(reportSheet)
	if rows[0][0] != "first" || rows[len(rows)-1][0] != "second" {
		t.Errorf("rows = %q", rows)
	}
}

func TestSectionsAndPageSize(t *testing.T) {
	d := XLSX{}.New()
	h, w := d.PageSize()
	if h != pageLong || w != pageShort {
		t.Errorf("portrait = %v x %v", h, w)
	}
	d.AddSection(true)
	h, w = d.PageSize()
	if h != pageShort || w != pageLong {
		t.Errorf("landscape = %v x %v", h, w)
	}
	d.AddPageBreak()

	f := saved(t, d)
	if got := len(f.GetSheetList()); got != 2 {
		t.Errorf("sheets = %d", got)
	}
}

func TestPictures(t *testing.T) {
	d := XLSX{}.New()
	if err := d.AppendPicture(testPNG(t, 40, 20), 5, 10, "left"); err != nil {
		t.Fatalf("AppendPicture: %v", err)
	}
	if err := d.AppendPicture([]byte("not an image"), 5, 10, "left"); err == nil {
		t.Error("AppendPicture accepted garbage")
	}

	grid := d.AppendTable(NewTable("photos", [][]string{{" ", " "}}))
	InsertPictureIntoCell(grid.Rows[0].Cells[1], testPNG(t, 10, 10), 100, 20)

	f := saved(t, d)
	pics, err := f.GetPictures(reportSheet, "A1")
	if err != nil || len(pics) != 1 {
		t.Errorf("pictures at A1 = %d, %v", len(pics), err)
	}

	row := 1 + int(math.Ceil(5/rowHeightCm)) + 1
	cell, _ := excelize.CoordinatesToCellName(2, row)
	pics, err = f.GetPictures(reportSheet, cell)
	if err != nil || len(pics) != 1 {
		t.Errorf("pictures at %s = %d, %v", cell, len(pics), err)
	}
}
