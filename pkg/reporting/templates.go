package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"p9e.in/agentreport/models"
	"p9e.in/agentreport/pkg/document"
)

var unitColumns = [][]string{
	{"Контейнер / Container", "Рекомендовано / Recommended", "Мякоть мин / Pulp min", "Мякоть макс / Pulp max",
		"Термограф / Thermograph", "Работал / Worked", "Мин / Min", "Макс / Max", "Влияние нарушений / Violations affect"},
	{"{{ number }}", "{{ temperature.recommended }}", "{{ temperature.pulp.min }}", "{{ temperature.pulp.max }}",
		"{{ temperature.thermographs.number }}", "{{ temperature.thermographs.worked }}",
		"{{ temperature.thermographs.min }}", "{{ temperature.thermographs.max }}", "{{ temperature.violations_affect }}"},
}

func headerRows(kind models.ReportKind) [][]string {
	rows := [][]string{
		{"Отчёт / Report №", "{{ report_number }}"},
		{"Заказ / Order", "{{ order }}"},
		{"Место инспекции / Place of inspection", "{{ place_of_inspection }}"},
		{"Дата инспекции / Date of inspection", "{{ inspection_date }}"},
		{"Грузоотправитель / Shipper", "{{ shipper }}"},
		{"Груз / Cargo", "{{ cargo }}"},
		{"Транспортные единицы / Transport units", "{{ transport_units }}"},
		{"Инвойс / Invoice", "{{ invoice }}"},
	}
	switch kind {
	case models.KindSelfImport:
		rows = append(rows,
			[]string{"Судно / Vessel", "{{ vessel }}"},
			[]string{"Коносамент / B/L", "{{ BL }}"})
	case models.KindSelfImportOnAuto:
		rows = append(rows, []string{"CMR", "{{ CMR }}"})
	case models.KindPickupFromSupplier:
		rows = append(rows,
			[]string{"Дата выгрузки / Discharge date", "{{ discharge_date }}"},
			[]string{"Получатель / Distribution center", "{{ distribution_center_receiver }}"})
	}
	return append(rows, []string{"Сюрвейер / Surveyor", "{{ surveyor }}"})
}

func resultRows(extra ...string) [][]string {
	head := []string{"Контейнер / Container", "Груз / Cargo", "Сорт / Cultivar", "Карточка / Card"}
	keys := []string{"{{ number }}", "{{ cargo }}", "{{ cultivar }}", "{{ card }}"}
	for _, e := range extra {
		head = append(head, e)
		keys = append(keys, "")
	}
	return [][]string{head, keys}
}

func colorRows(title string) [][]string {
	return [][]string{
		{"Контейнер / Container", title, "1", "2", "3", "4", "5"},
		{"{{ number }}", "{{ cultivar }}", "", "", "", "", ""},
	}
}

// defaultTemplates is a minimal working template set for one report kind.
func defaultTemplates(kind models.ReportKind) map[string][]*document.Table {
	// blank cells would be trimmed when the workbook is read back
	photos := document.NewTable("photos", [][]string{{" ", " "}, {" ", " "}})
	for _, row := range photos.Rows {
		row.Height = 200
	}
	photos.ColWidths = []float64{60, 60}

	return map[string][]*document.Table{
		HeaderTemplate:      {document.NewTable("header", headerRows(kind))},
		TemperatureTemplate: {document.NewTable("temperature", unitColumns)},
		TallyAccountTemplate: {
			document.NewTable("pallets", [][]string{
				{"Контейнер / Container", "{{ number }}"},
				{"Паллеты / Pallets", "{{ pallets }}"},
				{"Повреждённые паллеты / Damaged pallets", "{{ damaged_pallets }}"},
			}),
			document.NewTable("tally", [][]string{
				{"Коробки / Boxes", "{{ boxes }}"},
				{"Повреждённые коробки / Damaged boxes", "{{ damaged_boxes }}"},
				{"Пустые коробки / Empty boxes", "{{ empty_boxes }}"},
				{"Неполные коробки / Not full boxes", "{{ not_full_boxes }}"},
				{"Повреждение груза / Cargo damage", "{{ cargo_damage }}"},
			}),
		},
		InspectionResultTemplate: {
			document.NewTable("default", resultRows("Результат / Result")),
			document.NewTable(appleCargo, resultRows("Твёрдость / Firmness", "Brix")),
		},
		ColorsTablesTemplate: {
			document.NewTable(appleCargo, colorRows("Покровная окраска / Cover colour")),
			document.NewTable(appleCargo+" 2", colorRows("Основная окраска / Ground colour")),
			document.NewTable("груша", colorRows("Окраска / Colour")),
		},
		ConclusionTemplate: {
			document.NewTable("calibre", [][]string{
				{"Контейнер / Container", "Калибр / Calibre"},
				{"{{ number }}", "{{ calibre }}"},
			}),
			document.NewTable("conclusion", [][]string{{"Заключение / Conclusion"}, {""}}),
			document.NewTable("shelf_life", [][]string{
				{"Контейнер / Container", "Срок хранения / Shelf life"},
				{"{{ number }}", ""},
			}),
			document.NewTable("executor", [][]string{
				{"Сюрвейер / Surveyor", "{{ surveyor }}"},
				{"Дата выдачи / Issue date", "{{ issue_date }}"},
			}),
		},
		LetterOfProtestTemplate: {
			document.NewTable("letter_of_protest", [][]string{
				{"{{ date }}"},
				{"LETTER OF PROTEST"},
				{"Vessel: {{ vessel }}"},
				{"B/L: {{ BL }}"},
				{"Cargo: {{ cargo }}"},
				{"{{ result }}"},
			}),
		},
		PhotosTemplate: {photos},
	}
}

// WriteDefaultTemplates writes a starter template set for every report
// kind under dir, overwriting existing files.
func WriteDefaultTemplates(driver document.Driver, dir string) error {
	kinds := []models.ReportKind{models.KindSelfImport, models.KindSelfImportOnAuto, models.KindPickupFromSupplier}
	for _, kind := range kinds {
		kindDir := filepath.Join(dir, kind.TemplateDir())
		if err := os.MkdirAll(kindDir, 0755); err != nil {
			return err
		}
		for name, tables := range defaultTemplates(kind) {
			path := filepath.Join(kindDir, name+"."+driver.Ext())
			if err := driver.WriteTemplate(path, tables...); err != nil {
				return fmt.Errorf("write template %s: %w", path, err)
			}
		}
	}
	return nil
}
