package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"math"
	"net/http"
	"os"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheet = "Report"

	// A4 in centimetres.
	pageLong  = 29.7
	pageShort = 21.0

	// default row height is 15pt
	rowHeightCm = 15.0 / 72 * 2.54
	pixelsPerCm = 96 / 2.54
)

// XLSX stores documents as Excel workbooks. In a template workbook every
// sheet is one table; in a report every section is one sheet and tables
// are laid out top to bottom.
type XLSX struct{}

func (XLSX) Ext() string { return "xlsx" }

func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSX) LoadTemplate(path string) (*Template, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	defer f.Close()

	tmpl := &Template{}
	for _, sheet := range f.GetSheetList() {
		tbl, err := readTable(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("read template %s sheet %q: %w", path, sheet, err)
		}
		tmpl.tables = append(tmpl.tables, tbl)
	}
	return tmpl, nil
}

func (XLSX) WriteTemplate(path string, tables ...*Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, tbl := range tables {
		name := tbl.Name
		if name == "" {
			name = fmt.Sprintf("Table%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		d := &xlsxDocument{f: f, styles: map[Style]int{}}
		if err := d.writeTable(&placement{sheet: name, row: 1, col: 1, table: tbl}); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func (x XLSX) Load(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, err
	}
	defer file.Close()
	return x.Open(file)
}

// Open reads an existing workbook. Every existing sheet becomes one table
// and new content goes below the last sheet's rows.
func (XLSX) Open(r io.Reader) (Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	d := &xlsxDocument{
		f:         f,
		cursor:    map[string]int{},
		landscape: map[string]bool{},
		styles:    map[Style]int{},
	}
	for _, sheet := range f.GetSheetList() {
		tbl, err := readTable(f, sheet)
		if err != nil {
			return nil, err
		}
		d.placed = append(d.placed, &placement{sheet: sheet, row: 1, col: 1, table: tbl})
		d.cursor[sheet] = len(tbl.Rows) + 2
		d.sheet = sheet
	}
	if d.sheet == "" {
		d.sheet = reportSheet
		if _, err := f.NewSheet(reportSheet); err != nil {
			return nil, err
		}
		d.cursor[reportSheet] = 1
	}
	return d, nil
}

// New returns an empty report workbook.
func (XLSX) New() Document {
	f := excelize.NewFile()
	_ = f.SetSheetName("Sheet1", reportSheet)
	return &xlsxDocument{
		f:         f,
		sheet:     reportSheet,
		cursor:    map[string]int{reportSheet: 1},
		landscape: map[string]bool{},
		styles:    map[Style]int{},
	}
}

func readTable(f *excelize.File, sheet string) (*Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	tbl := NewTable(sheet, rows)
	for i, row := range tbl.Rows {
		h, err := f.GetRowHeight(sheet, i+1)
		if err == nil {
			row.Height = h
		}
	}
	if last := tbl.LastRow(); last != nil {
		for i := range last.Cells {
			col, _ := excelize.ColumnNumberToName(i + 1)
			w, err := f.GetColWidth(sheet, col)
			if err != nil {
				w = 0
			}
			tbl.ColWidths = append(tbl.ColWidths, w)
		}
	}
	return tbl, nil
}

type placement struct {
	sheet string
	row   int
	col   int
	table *Table
}

type xlsxDocument struct {
	f         *excelize.File
	sheet     string
	cursor    map[string]int
	landscape map[string]bool
	placed    []*placement
	styles    map[Style]int
	err       error
}

func (d *xlsxDocument) setErr(err error) {
	if err != nil && d.err == nil {
		d.err = err
	}
}

func (d *xlsxDocument) Tables() []*Table {
	out := make([]*Table, len(d.placed))
	for i, p := range d.placed {
		out[i] = p.table
	}
	return out
}

func (d *xlsxDocument) AppendTable(t *Table) *Table {
	row := d.cursor[d.sheet]
	d.placed = append(d.placed, &placement{sheet: d.sheet, row: row, col: 1, table: t})
	d.cursor[d.sheet] = row + len(t.Rows) + 1
	return t
}

func (d *xlsxDocument) AppendParagraph(text string, style Style) {
	row := d.cursor[d.sheet]
	cell, _ := excelize.CoordinatesToCellName(1, row)
	d.setErr(d.f.SetCellStr(d.sheet, cell, text))
	id, err := d.styleID(style)
	d.setErr(err)
	if err == nil {
		d.setErr(d.f.SetCellStyle(d.sheet, cell, cell, id))
	}
	d.cursor[d.sheet] = row + 1
}

func (d *xlsxDocument) AppendPicture(data []byte, height, width float64, alignment string) error {
	scaleX, scaleY, err := scaleFor(data, height, width)
	if err != nil {
		return err
	}
	row := d.cursor[d.sheet]
	col := 1
	if alignment == "center" {
		col = 2
	}
	cell, _ := excelize.CoordinatesToCellName(col, row)
	err = d.f.AddPictureFromBytes(d.sheet, cell, &excelize.Picture{
		Extension: imageExt(data),
		File:      data,
		Format:    &excelize.GraphicOptions{ScaleX: scaleX, ScaleY: scaleY, Positioning: "oneCell"},
	})
	if err != nil {
		return fmt.Errorf("add picture: %w", err)
	}
	d.cursor[d.sheet] = row + int(math.Ceil(height/rowHeightCm)) + 1
	return nil
}

func (d *xlsxDocument) AddPageBreak() {
	row := d.cursor[d.sheet]
	cell, _ := excelize.CoordinatesToCellName(1, row)
	d.setErr(d.f.InsertPageBreak(d.sheet, cell))
}

func (d *xlsxDocument) AddSection(horizontal bool) {
	name := fmt.Sprintf("Section %d", len(d.f.GetSheetList())+1)
	if _, err := d.f.NewSheet(name); err != nil {
		d.setErr(err)
		return
	}
	if horizontal {
		orientation := "landscape"
		d.setErr(d.f.SetPageLayout(name, &excelize.PageLayoutOptions{Orientation: &orientation}))
	}
	d.sheet = name
	d.cursor[name] = 1
	d.landscape[name] = horizontal
}

func (d *xlsxDocument) PageSize() (float64, float64) {
	if d.landscape[d.sheet] {
		return pageShort, pageLong
	}
	return pageLong, pageShort
}

func (d *xlsxDocument) Save(w io.Writer) error {
	for _, p := range d.placed {
		d.setErr(d.writeTable(p))
	}
	if d.err != nil {
		return d.err
	}
	return d.f.Write(w)
}

func (d *xlsxDocument) writeTable(p *placement) error {
	for c, width := range p.table.ColWidths {
		if width <= 0 {
			continue
		}
		col, _ := excelize.ColumnNumberToName(p.col + c)
		if err := d.f.SetColWidth(p.sheet, col, col, width); err != nil {
			return err
		}
	}
	for r, row := range p.table.Rows {
		if row.Height > 0 {
			if err := d.f.SetRowHeight(p.sheet, p.row+r, row.Height); err != nil {
				return err
			}
		}
		for c, cell := range row.Cells {
			name, err := excelize.CoordinatesToCellName(p.col+c, p.row+r)
			if err != nil {
				return err
			}
			if err := d.f.SetCellStr(p.sheet, name, cell.text); err != nil {
				return err
			}
			if cell.Style != nil {
				id, err := d.styleID(*cell.Style)
				if err != nil {
					return err
				}
				if err := d.f.SetCellStyle(p.sheet, name, name, id); err != nil {
					return err
				}
			}
			if pic := cell.Picture; pic != nil && !pic.written {
				err := d.f.AddPictureFromBytes(p.sheet, name, &excelize.Picture{
					Extension: imageExt(pic.Data),
					File:      pic.Data,
					Format:    &excelize.GraphicOptions{AutoFit: true, LockAspectRatio: true},
				})
				if err != nil {
					return fmt.Errorf("picture in %s!%s: %w", p.sheet, name, err)
				}
				pic.written = true
			}
		}
	}
	return nil
}

func (d *xlsxDocument) styleID(s Style) (int, error) {
	if id, ok := d.styles[s]; ok {
		return id, nil
	}
	id, err := d.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: s.Bold, Italic: s.Italic, Family: s.Font},
		Alignment: &excelize.Alignment{
			Horizontal: s.Alignment,
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return 0, err
	}
	d.styles[s] = id
	return id, nil
}

// scaleFor computes the factors that stretch an image to height x width cm.
func scaleFor(data []byte, height, width float64) (float64, float64, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode picture: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, errors.New("decode picture: empty image")
	}
	return width * pixelsPerCm / float64(cfg.Width), height * pixelsPerCm / float64(cfg.Height), nil
}

func imageExt(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	}
	return ".png"
}
