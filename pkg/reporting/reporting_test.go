package reporting

import (
	"strings"
	"testing"

	"p9e.in/agentreport/models"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "zero"},
		{1, "one"},
		{13, "thirteen"},
		{20, "twenty"},
		{42, "forty-two"},
		{100, "one hundred"},
		{121, "one hundred and twenty-one"},
		{2005, "two thousand and five"},
		{1_000_001, "one million and one"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := numberToWords(tt.n); got != tt.want {
				t.Errorf("numberToWords(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestHasViolations(t *testing.T) {
	tests := []struct {
		name string
		temp models.Temperature
		want bool
	}{
		{"within band", models.Temperature{Recommended: 2, Pulp: models.Pulp{Min: 1, Max: 4}}, false},
		{"pulp too warm", models.Temperature{Recommended: 2, Pulp: models.Pulp{Min: 1, Max: 4.1}}, true},
		{"pulp too cold", models.Temperature{Recommended: 2, Pulp: models.Pulp{Min: -0.5, Max: 2}}, true},
		{"thermograph peak", models.Temperature{
			Recommended:  2,
			Pulp:         models.Pulp{Min: 2, Max: 2},
			Thermographs: []models.Thermograph{{Min: 1, Max: 3}, {Min: 1, Max: 7}},
		}, true},
		{"zero everything", models.Temperature{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasViolations(tt.temp); got != tt.want {
				t.Errorf("HasViolations = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProtestText(t *testing.T) {
	units := []models.TransportUnit{
		{
			Number: "CRLU1",
			Temperature: models.Temperature{
				Pulp:         models.Pulp{Min: 5.5, Max: 6},
				Thermographs: []models.Thermograph{{Min: -1, Max: 8}},
			},
		},
		{
			Number: "CRLU2",
			Temperature: models.Temperature{
				Pulp:         models.Pulp{Min: 0, Max: 7},
				Thermographs: []models.Thermograph{{Min: 1, Max: 3}, {Min: -2, Max: 9.5}},
			},
		},
	}
	text := ProtestText(units, "01.02.2024 - 03.02.2024")

	for _, want := range []string{
		"One thermograph(s) found in the container CRLU1 and according to it's record(s) the temperature during transportation was from -1.0°C to 8.0°C.",
		"Container CRLU1 was opened on 01.02.2024 and temperature inside was 5.5°C/6.0°C.",
		"Two thermograph(s) found in the container CRLU2 and according to their record(s) the temperature during transportation was from -2.0°C to 9.5°C.",
		"temperature inside was 0.0°C/7.0°C.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("protest text lacks %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "+") {
		t.Errorf("letter temperatures carry no sign:\n%s", text)
	}
	if strings.Contains(text, "03.02.2024") {
		t.Error("only the first part of the inspection date belongs in the letter")
	}
}

func TestProtestTextWithoutThermographs(t *testing.T) {
	units := []models.TransportUnit{{Number: "T1", Temperature: models.Temperature{Pulp: models.Pulp{Min: 9, Max: 9}}}}
	text := ProtestText(units, "05.05.2024")
	if strings.Contains(text, "thermograph") {
		t.Errorf("unexpected thermograph sentence: %s", text)
	}
	if !strings.Contains(text, "Container T1 was opened on 05.05.2024") {
		t.Errorf("text = %s", text)
	}
}

func TestDictionaryTranslate(t *testing.T) {
	d := Dictionary{
		Vegetables: map[string]string{"томат": "tomato"},
		Fruits:     map[string]string{"яблоко": "apple", "томат": "fruit tomato"},
	}
	tests := []struct{ in, want string }{
		{"Яблоко ", "apple"},
		{"томат", "tomato"},
		{"слива", ""},
	}
	for _, tt := range tests {
		if got := d.Translate(tt.in); got != tt.want {
			t.Errorf("Translate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHeaderValuesPerKind(t *testing.T) {
	r := models.Report{
		Number: "42",
		Vessel: "Nostromo",
		TransportUnits: []models.TransportUnit{
			{Number: "U1", Supplier: "Acme", Invoice: "I1", Cargo: []string{"яблоко"}, BL: "BL1", CMR: "C1", Date: "01.01"},
			{Number: "U2", Supplier: "Acme", Invoice: "I1", Cargo: []string{"груша"}, BL: "BL2", CMR: "C2", Date: "02.01"},
		},
	}
	d := Dictionary{Fruits: map[string]string{"яблоко": "apple", "груша": "pear"}}

	self := headerValues(r, d)
	if self["vessel"] != "Nostromo" || len(self["BL"].([]string)) != 2 {
		t.Errorf("self import header = %v", self)
	}
	if got := self["cargo"].([]string); got[0] != "Яблоко/apple" || got[1] != "Груша/pear" {
		t.Errorf("cargo = %v", got)
	}
	if got := self["invoice"].([]string); len(got) != 1 {
		t.Errorf("invoice = %v", got)
	}
	if got := self["shipper"].([]string); len(got) != 1 || got[0] != "Acme" {
		t.Errorf("shipper = %v", got)
	}

	r.Kind = models.KindSelfImportOnAuto
	auto := headerValues(r, d)
	if _, ok := auto["vessel"]; ok {
		t.Error("truck header has a vessel")
	}
	if got := auto["CMR"].([]string); got[1] != "C2" {
		t.Errorf("CMR = %v", got)
	}

	r.Kind = models.KindPickupFromSupplier
	pickup := headerValues(r, d)
	if got := pickup["discharge_date"].([]string); got[0] != "01.01" {
		t.Errorf("discharge_date = %v", got)
	}
}
