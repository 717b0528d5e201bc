// Package document models report documents as sequences of tables and
// gives access to them through a format specific driver.
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"p9e.in/agentreport/pkg/templating"
)

var (
	ErrWrongDocumentType = errors.New("wrong document type in settings")
	ErrTemplateNotFound  = errors.New("document template not found")
)

// Style is the text formatting applied to a cell or paragraph.
type Style struct {
	Alignment string
	Italic    bool
	Bold      bool
	Font      string
}

var DefaultStyle = Style{Alignment: "center", Italic: false, Bold: true, Font: "Times New Roman"}

// Picture is an image placed inside a table cell, sized in centimetres.
type Picture struct {
	Data    []byte
	Height  float64
	Width   float64
	written bool
}

// Cell is one table cell.
type Cell struct {
	text    string
	Style   *Style
	Picture *Picture
}

func NewCell(text string) *Cell {
	return &Cell{text: text}
}

func (c *Cell) Text() string     { return c.text }
func (c *Cell) SetText(s string) { c.text = s }

// SetCellStyle applies style to c.
func SetCellStyle(c *Cell, style Style) {
	c.Style = &style
}

// InsertPictureIntoCell places an image into c.
func InsertPictureIntoCell(c *Cell, data []byte, height, width float64) {
	c.Picture = &Picture{Data: data, Height: height, Width: width}
}

// Row is a table row; Height is in points, zero keeps the default.
type Row struct {
	Cells  []*Cell
	Height float64
}

// Table is a rectangular block of cells. ColWidths are in character
// units, zero keeps the default width.
type Table struct {
	Name      string
	Rows      []*Row
	ColWidths []float64
}

// NewTable builds a table from plain text rows, padding short rows.
func NewTable(name string, rows [][]string) *Table {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	t := &Table{Name: name}
	for _, r := range rows {
		row := &Row{}
		for i := 0; i < width; i++ {
			text := ""
			if i < len(r) {
				text = r[i]
			}
			row.Cells = append(row.Cells, NewCell(text))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// AddRow appends an empty row shaped like the last one.
func (t *Table) AddRow() *Row {
	row := &Row{}
	if last := t.LastRow(); last != nil {
		row.Height = last.Height
		for range last.Cells {
			row.Cells = append(row.Cells, NewCell(""))
		}
	}
	t.Rows = append(t.Rows, row)
	return row
}

func (t *Table) LastRow() *Row {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[len(t.Rows)-1]
}

// RowCells returns the cells of row n, or nil when out of range.
func (t *Table) RowCells(n int) []*Cell {
	if n < 0 || n >= len(t.Rows) {
		return nil
	}
	return t.Rows[n].Cells
}

// ColumnCells returns the cells of column n across all rows.
func (t *Table) ColumnCells(n int) []*Cell {
	var out []*Cell
	for _, r := range t.Rows {
		if n >= 0 && n < len(r.Cells) {
			out = append(out, r.Cells[n])
		}
	}
	return out
}

// Cells exposes the table to the templating engine.
func (t *Table) Cells() [][]templating.Cell {
	out := make([][]templating.Cell, len(t.Rows))
	for i, r := range t.Rows {
		for _, c := range r.Cells {
			out[i] = append(out[i], c)
		}
	}
	return out
}

// Texts returns the plain text of every cell.
func (t *Table) Texts() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		for _, c := range r.Cells {
			out[i] = append(out[i], c.text)
		}
	}
	return out
}

// Clone deep-copies the table so a template can be reused.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{Name: t.Name, ColWidths: append([]float64(nil), t.ColWidths...)}
	for _, r := range t.Rows {
		row := &Row{Height: r.Height}
		for _, c := range r.Cells {
			cell := &Cell{text: c.text}
			if c.Style != nil {
				s := *c.Style
				cell.Style = &s
			}
			if c.Picture != nil {
				p := *c.Picture
				cell.Picture = &p
			}
			row.Cells = append(row.Cells, cell)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Template is a read-only set of tables loaded from a template file.
type Template struct {
	tables []*Table
}

func NewTemplate(tables ...*Table) *Template {
	return &Template{tables: tables}
}

// Tables returns copies of all tables in file order.
func (t *Template) Tables() []*Table {
	out := make([]*Table, len(t.tables))
	for i, tbl := range t.tables {
		out[i] = tbl.Clone()
	}
	return out
}

// Table returns a copy of table i.
func (t *Template) Table(i int) (*Table, bool) {
	if i < 0 || i >= len(t.tables) {
		return nil, false
	}
	return t.tables[i].Clone(), true
}

// Index finds a table by name, ignoring case and surrounding spaces.
func (t *Template) Index(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, tbl := range t.tables {
		if strings.ToLower(strings.TrimSpace(tbl.Name)) == name {
			return i
		}
	}
	return -1
}

// Names lists the table names in file order.
func (t *Template) Names() []string {
	out := make([]string, len(t.tables))
	for i, tbl := range t.tables {
		out[i] = tbl.Name
	}
	return out
}

func (t *Template) Len() int { return len(t.tables) }

// Document is a report under construction.
//
// Tables are laid out when appended, so rows must not be added to a
// table after it was passed to AppendTable.
type Document interface {
	// Tables lists the tables placed in the document, oldest first.
	Tables() []*Table
	AppendTable(t *Table) *Table
	AppendParagraph(text string, style Style)
	AppendPicture(data []byte, height, width float64, alignment string) error
	AddPageBreak()
	AddSection(horizontal bool)
	// PageSize returns height and width of the current section in cm.
	PageSize() (height, width float64)
	Save(w io.Writer) error
}

// Driver reads and writes one document format.
type Driver interface {
	Ext() string
	ContentType() string
	LoadTemplate(path string) (*Template, error)
	WriteTemplate(path string, tables ...*Table) error
	Load(path string) (Document, error)
	Open(r io.Reader) (Document, error)
	// New returns an empty document.
	New() Document
}

var drivers = map[string]Driver{
	"xlsx": XLSX{},
}

// DriverFor returns the driver registered for docType.
func DriverFor(docType string) (Driver, error) {
	d, ok := drivers[strings.ToLower(docType)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWrongDocumentType, docType)
	}
	return d, nil
}
