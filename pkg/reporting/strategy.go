package reporting

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"p9e.in/agentreport/models"
	"p9e.in/agentreport/pkg/document"
	"p9e.in/agentreport/pkg/templating"
)

// Template file names inside a report kind directory.
const (
	HeaderTemplate           = "header_template"
	TemperatureTemplate      = "temperature_template"
	TallyAccountTemplate     = "tally_account_template"
	InspectionResultTemplate = "inspection_result_template"
	ColorsTablesTemplate     = "colors_tables_template"
	ConclusionTemplate       = "conclusion_template"
	LetterOfProtestTemplate  = "letter_of_protest"
	PhotosTemplate           = "photos_template"
)

// appleCargo has a second colour table right after its first one.
const appleCargo = "яблоко"

var justifiedStyle = document.Style{Alignment: "justify", Font: "Times New Roman"}

// Strategy fills a report document whose first table is the header.
type Strategy interface {
	Execute(ctx context.Context, doc document.Document) error
}

// strategyFor picks the creation flow for the report kind.
func strategyFor(b *builder) Strategy {
	if b.report.Kind.Normalize() == models.KindSelfImport {
		return &selfImportStrategy{b}
	}
	return &transportStrategy{b}
}

// builder holds what every strategy needs to fill tables.
type builder struct {
	driver       document.Driver
	templatesDir string
	dict         Dictionary
	report       models.Report
	pictures     PictureLoader
	now          func() time.Time
}

func (b *builder) template(name string) (*document.Template, error) {
	path := filepath.Join(b.templatesDir, b.report.Kind.TemplateDir(), name+"."+b.driver.Ext())
	return b.driver.LoadTemplate(path)
}

// tables loads a template and returns its first n tables.
func (b *builder) tables(name string, n int) ([]*document.Table, error) {
	tmpl, err := b.template(name)
	if err != nil {
		return nil, err
	}
	tables := tmpl.Tables()
	if len(tables) < n {
		return nil, fmt.Errorf("%w: %s has %d of %d tables", ErrTemplateCorrupted, name, len(tables), n)
	}
	return tables[:n], nil
}

func styleCell(c templating.Cell) {
	if dc, ok := c.(*document.Cell); ok {
		document.SetCellStyle(dc, document.DefaultStyle)
	}
}

func (b *builder) fillHeader(doc document.Document) error {
	tables := doc.Tables()
	if len(tables) == 0 {
		return fmt.Errorf("%w: header table is missing", ErrTemplateCorrupted)
	}
	b.dict.translateUnits(&b.report)
	templating.ReplaceInTable(tables[0], headerValues(b.report, b.dict), styleCell)
	return nil
}

// fillRows turns the last row of table into one row per unit and then
// fills the remaining keys from the report.
func (b *builder) fillRows(units []models.TransportUnit, table *document.Table) {
	last := table.LastRow()
	if last == nil {
		return
	}
	contents := make([]string, len(last.Cells))
	for i, c := range last.Cells {
		contents[i] = c.Text()
	}

	var first any = map[string]any{}
	if len(units) > 0 {
		first = units[0]
	}
	for _, c := range last.Cells {
		c.SetText(templating.ReplaceText(c.Text(), first))
	}
	for _, unit := range units[min(1, len(units)):] {
		row := table.AddRow()
		values := templating.ValuesOf(unit)
		for i, c := range row.Cells {
			c.SetText(templating.ReplaceText(contents[i], values))
			styleCell(c)
		}
	}
	templating.ReplaceInTable(table, templating.ValuesOf(b.report), styleCell)
}

func (b *builder) addTemperatureTable(doc document.Document) error {
	tables, err := b.tables(TemperatureTemplate, 1)
	if err != nil {
		return err
	}
	b.fillRows(b.report.TransportUnits, tables[0])
	doc.AppendTable(tables[0])
	return nil
}

func (b *builder) addTallyTables(doc document.Document) error {
	tables, err := b.tables(TallyAccountTemplate, 2)
	if err != nil {
		return err
	}
	pallets, tally := tables[0], tables[1]
	for _, unit := range b.report.TransportUnits {
		values := templating.ValuesOf(unit)
		for _, tmpl := range []*document.Table{pallets, tally} {
			t := tmpl.Clone()
			templating.ReplaceInTable(t, values, styleCell)
			doc.AppendTable(t)
		}
		doc.AddPageBreak()
	}
	return nil
}

func (b *builder) addCalibreTable(doc document.Document, calibre *document.Table) {
	b.fillRows(b.report.TransportUnits, calibre)
	doc.AppendTable(calibre)
}

func (b *builder) addExecutorTable(doc document.Document, executor *document.Table) {
	templating.ReplaceInTable(executor, templating.ValuesOf(b.report), styleCell)
	doc.AppendTable(executor)
}

func (b *builder) addThermographPictures(ctx context.Context, doc document.Document) error {
	for _, unit := range b.report.TransportUnits {
		doc.AddPageBreak()
		for _, th := range unit.Temperature.Thermographs {
			doc.AppendParagraph(fmt.Sprintf("Контейнер: %s\nНомер датчика:%s\n", unit.Number, th.Number), document.DefaultStyle)
			if th.Graph == nil || *th.Graph == "" {
				continue
			}
			data, err := b.pictures.Load(ctx, *th.Graph)
			if err != nil {
				return fmt.Errorf("thermograph %s graph: %w", th.Number, err)
			}
			if len(data) == 0 {
				continue
			}
			h, w := doc.PageSize()
			if err := doc.AppendPicture(data, h*.3, w*.7, "center"); err != nil {
				return err
			}
		}
	}
	return nil
}

// transportStrategy builds the lighter reports for trucks and supplier pickups.
type transportStrategy struct {
	*builder
}

func (s *transportStrategy) Execute(ctx context.Context, doc document.Document) error {
	if err := s.fillHeader(doc); err != nil {
		return err
	}
	if err := s.addTemperatureTable(doc); err != nil {
		return err
	}
	doc.AddPageBreak()
	if err := s.addTallyTables(doc); err != nil {
		return err
	}
	conclusion, err := s.tables(ConclusionTemplate, 4)
	if err != nil {
		return err
	}
	s.addCalibreTable(doc, conclusion[0])
	s.addExecutorTable(doc, conclusion[3])
	return s.addThermographPictures(ctx, doc)
}

// selfImportStrategy builds the full sea container report.
type selfImportStrategy struct {
	*builder
}

func (s *selfImportStrategy) Execute(ctx context.Context, doc document.Document) error {
	if err := s.fillHeader(doc); err != nil {
		return err
	}
	if err := s.addTemperatureTable(doc); err != nil {
		return err
	}
	doc.AddPageBreak()
	if err := s.addTallyTables(doc); err != nil {
		return err
	}
	if err := s.addInspectionResults(doc); err != nil {
		return err
	}

	conclusion, err := s.tables(ConclusionTemplate, 4)
	if err != nil {
		return err
	}
	s.addCalibreTable(doc, conclusion[0])
	doc.AppendTable(conclusion[1])
	s.fillRows(s.report.TransportUnits, conclusion[2])
	doc.AppendTable(conclusion[2])
	s.addExecutorTable(doc, conclusion[3])

	if err := s.addThermographPictures(ctx, doc); err != nil {
		return err
	}
	if violated := UnitsWithViolations(s.report.TransportUnits); len(violated) > 0 {
		return s.addLetterOfProtest(doc, violated)
	}
	return nil
}

// addInspectionResults appends, per cargo, the result table named after the
// cargo (or the first one) followed by its colour tables.
func (s *selfImportStrategy) addInspectionResults(doc document.Document) error {
	results, err := s.template(InspectionResultTemplate)
	if err != nil {
		return err
	}
	colors, err := s.template(ColorsTablesTemplate)
	if err != nil {
		return err
	}
	for _, cargo := range s.report.Cargos() {
		var units []models.TransportUnit
		for _, u := range s.report.TransportUnits {
			for _, c := range u.Cargo {
				if c == cargo {
					units = append(units, u)
					break
				}
			}
		}

		idx := max(results.Index(cargo), 0)
		table, ok := results.Table(idx)
		if !ok {
			return fmt.Errorf("%w: no inspection result table for %s", ErrTemplateCorrupted, cargo)
		}
		s.fillRows(units, table)
		doc.AppendTable(table)

		if err := s.addColorTables(doc, colors, cargo, units); err != nil {
			return err
		}
	}
	return nil
}

func (s *selfImportStrategy) addColorTables(doc document.Document, colors *document.Template, cargo string, units []models.TransportUnit) error {
	idx := colors.Index(cargo)
	if idx < 0 {
		return nil
	}
	count := 1
	if cargo == appleCargo {
		count = 2
	}
	for i := idx; i < idx+count; i++ {
		table, ok := colors.Table(i)
		if !ok {
			return fmt.Errorf("%w: no colour table for %s", ErrTemplateCorrupted, cargo)
		}
		s.fillRows(units, table)
		doc.AppendTable(table)
	}
	return nil
}

func (s *selfImportStrategy) addLetterOfProtest(doc document.Document, violated []models.TransportUnit) error {
	tables, err := s.tables(LetterOfProtestTemplate, 1)
	if err != nil {
		return err
	}
	letter := tables[0]

	values := headerValues(s.report, s.dict)
	values["date"] = s.now().Format("02.01.2006")
	values["cargo"] = strings.Join(s.report.CargosInEnglish(), ", ")
	values["BL"] = strings.Join(values["BL"].([]string), ", ")
	values["result"] = ProtestText(violated, s.report.InspectionDate)

	doc.AddPageBreak()
	templating.ReplaceInTable(letter, values, func(c templating.Cell) {
		if dc, ok := c.(*document.Cell); ok {
			document.SetCellStyle(dc, justifiedStyle)
		}
	})
	doc.AppendTable(letter)
	return nil
}

