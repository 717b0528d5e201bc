package templating

import (
	"testing"

	"p9e.in/agentreport/models"
)

type testCell struct{ text string }

func (c *testCell) Text() string     { return c.text }
func (c *testCell) SetText(s string) { c.text = s }

type testTable [][]*testCell

func (t testTable) Cells() [][]Cell {
	out := make([][]Cell, len(t))
	for i, row := range t {
		for _, c := range row {
			out[i] = append(out[i], c)
		}
	}
	return out
}

func TestReplaceText(t *testing.T) {
	values := map[string]any{
		"order":  "LV-426",
		"count":  3,
		"cargo":  []string{"apple", "pear"},
		"empty":  "",
		"absent": nil,
		"unit": map[string]any{
			"number": "CRLU1395673",
			"temperature": models.Temperature{
				Recommended: 2,
				Pulp:        models.Pulp{Min: -0.5, Max: 0},
			},
		},
		"units": []map[string]any{
			{"number": "TU1"},
			{"number": "TU2"},
		},
	}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain key", "Order: {{order}}", "Order: LV-426"},
		{"spaces inside braces", "{{ order }}/{{  count }}", "LV-426/3"},
		{"list joined by newline", "{{cargo}}", "apple\npear"},
		{"empty string is a value", "[{{empty}}]", "[]"},
		{"nil keeps the key", "{{absent}}", "{{absent}}"},
		{"missing keeps the key", "{{ nope }}", "{{ nope }}"},
		{"nested", "{{unit.number}}", "CRLU1395673"},
		{"stringer formatting", "{{unit.temperature.recommended}} {{unit.temperature.pulp.min}} {{unit.temperature.pulp.max}}", "+2.0 -0.5 0.0"},
		{"path through a list", "{{units.number}}", "TU1\nTU2"},
		{"path past a scalar", "{{order.length}}", "LV-426"},
		{"no keys", "plain text", "plain text"},
		{"bad characters are not keys", "{{ a-b }}", "{{ a-b }}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReplaceText(tt.in, values); got != tt.want {
				t.Errorf("ReplaceText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReplaceTextFromStruct(t *testing.T) {
	unit := models.TransportUnit{
		Number:  "TU1",
		Pallets: 10,
		Temperature: models.Temperature{
			ViolationsAffect: "2",
			Thermographs: []models.Thermograph{
				{Number: "T-1", Worked: "1", Min: 1, Max: 5.5},
				{Number: "T-2", Worked: "2"},
			},
		},
	}
	tests := []struct {
		in   string
		want string
	}{
		{"{{number}}: {{pallets}}", "TU1: 10"},
		{"{{temperature.violations_affect}}", "Да/Нет\nYes/No"},
		{"{{temperature.thermographs.number}}", "T-1\nT-2"},
		{"{{temperature.thermographs.worked}}", "Да/Yes\nНе работал/Did not work"},
		{"{{temperature.thermographs.max}}", "+5.5\n0.0"},
	}
	for _, tt := range tests {
		if got := ReplaceText(tt.in, unit); got != tt.want {
			t.Errorf("ReplaceText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReplaceInTable(t *testing.T) {
	table := testTable{
		{{text: "Order"}, {text: "{{order}}"}},
		{{text: "Vessel"}, {text: "{{ vessel }}"}},
	}
	var handled int
	ReplaceInTable(table, models.Report{Order: "A1", Vessel: "Rocinante"}, func(Cell) { handled++ })

	if table[0][1].text != "A1" || table[1][1].text != "Rocinante" {
		t.Errorf("table not filled: %q %q", table[0][1].text, table[1][1].text)
	}
	if handled != 4 {
		t.Errorf("handler called %d times, want 4", handled)
	}
}

func TestKey(t *testing.T) {
	if k, ok := Key("Vessel: {{ vessel }} {{order}}"); !ok || k != "vessel" {
		t.Errorf("Key = %q, %v", k, ok)
	}
	if _, ok := Key("none here"); ok {
		t.Error("found a key in plain text")
	}
}

func TestValuesOf(t *testing.T) {
	graph := "data:image/png;base64,AAAA"
	v := ValuesOf(models.Thermograph{Number: "T", Graph: &graph, Worked: "0", Min: 1})
	if v["number"] != "T" || v["graph"] != graph || v["worked"] != "Нет/No" || v["min"] != "+1.0" {
		t.Errorf("ValuesOf = %#v", v)
	}
	if got := ValuesOf(nil); len(got) != 0 {
		t.Errorf("ValuesOf(nil) = %#v", got)
	}
}
