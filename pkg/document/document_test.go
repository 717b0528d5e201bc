package document

import (
	"errors"
	"testing"
)

func TestNewTablePadsRows(t *testing.T) {
	tbl := NewTable("t", [][]string{{"a", "b", "c"}, {"d"}})
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d", len(tbl.Rows))
	}
	if got := len(tbl.RowCells(1)); got != 3 {
		t.Errorf("padded row has %d cells", got)
	}
	if got := tbl.RowCells(1)[2].Text(); got != "" {
		t.Errorf("pad cell = %q", got)
	}
	if tbl.RowCells(5) != nil {
		t.Error("out of range row returned cells")
	}
}

func TestAddRowCopiesShape(t *testing.T) {
	tbl := NewTable("t", [][]string{{"a", "b"}})
	tbl.Rows[0].Height = 30
	row := tbl.AddRow()
	if len(row.Cells) != 2 || row.Height != 30 {
		t.Errorf("row = %d cells, height %v", len(row.Cells), row.Height)
	}
	if tbl.LastRow() != row {
		t.Error("AddRow did not append")
	}
	if got := len(tbl.ColumnCells(1)); got != 2 {
		t.Errorf("column cells = %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := NewTable("t", [][]string{{"a"}})
	SetCellStyle(tbl.Rows[0].Cells[0], DefaultStyle)
	clone := tbl.Clone()
	clone.Rows[0].Cells[0].SetText("z")
	clone.Rows[0].Cells[0].Style.Bold = false
	clone.AddRow()

	if tbl.Rows[0].Cells[0].Text() != "a" {
		t.Error("clone text leaked into original")
	}
	if !tbl.Rows[0].Cells[0].Style.Bold {
		t.Error("clone style leaked into original")
	}
	if len(tbl.Rows) != 1 {
		t.Error("clone rows leaked into original")
	}
}

func TestTemplateLookup(t *testing.T) {
	tmpl := NewTemplate(NewTable("default", nil), NewTable("Яблоко", nil), NewTable("груша", nil))

	tests := []struct {
		name string
		want int
	}{
		{"яблоко", 1},
		{" ГРУША ", 2},
		{"default", 0},
		{"слива", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tmpl.Index(tt.name); got != tt.want {
				t.Errorf("Index(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}

	if _, ok := tmpl.Table(3); ok {
		t.Error("Table(3) found a table")
	}
	a, _ := tmpl.Table(0)
	b, _ := tmpl.Table(0)
	if a == b {
		t.Error("Table returned the same copy twice")
	}
	if tmpl.Len() != 3 || tmpl.Names()[1] != "Яблоко" {
		t.Errorf("names = %v", tmpl.Names())
	}
}

func TestDriverFor(t *testing.T) {
	if _, err := DriverFor("XLSX"); err != nil {
		t.Errorf("DriverFor(XLSX) = %v", err)
	}
	if _, err := DriverFor("docx"); !errors.Is(err, ErrWrongDocumentType) {
		t.Errorf("DriverFor(docx) = %v", err)
	}
}
