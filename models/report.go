package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// ReportKind selects the report creation strategy.
type ReportKind string

const (
	KindSelfImport         ReportKind = "self_import"
	KindSelfImportOnAuto   ReportKind = "self_import_on_auto"
	KindPickupFromSupplier ReportKind = "pickup_from_supplier"
)

// Normalize maps the empty kind onto the self import report.
func (k ReportKind) Normalize() ReportKind {
	if k == "" {
		return KindSelfImport
	}
	return k
}

// TemplateDir is the directory name holding the templates of this kind.
func (k ReportKind) TemplateDir() string {
	switch k.Normalize() {
	case KindSelfImportOnAuto:
		return "SelfImportOnAutoReport"
	case KindPickupFromSupplier:
		return "PickupFromSupplierReport"
	default:
		return "SelfImportReport"
	}
}

// Report is the inspection document for one shipment.
type Report struct {
	Kind              ReportKind      `json:"kind,omitempty" validate:"omitempty,oneof=self_import self_import_on_auto pickup_from_supplier"`
	Order             string          `json:"order"`
	Number            string          `json:"number"`
	PlaceOfInspection string          `json:"place_of_inspection"`
	InspectionDate    string          `json:"inspection_date"`
	IssueDate         string          `json:"issue_date,omitempty"`
	Vessel            string          `json:"vessel"`
	Surveyor          string          `json:"surveyor"`
	TransportUnits    []TransportUnit `json:"transport_units" validate:"dive"`
}

// reportAlias breaks the UnmarshalJSON recursion.
type reportAlias Report

// UnmarshalJSON accepts the older "report_number" spelling of "number".
func (r *Report) UnmarshalJSON(b []byte) error {
	var aux struct {
		reportAlias
		ReportNumber *string `json:"report_number"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = Report(aux.reportAlias)
	if aux.ReportNumber != nil && r.Number == "" {
		r.Number = *aux.ReportNumber
	}
	return nil
}

// TransportUnitNumbers lists unit numbers in report order.
func (r Report) TransportUnitNumbers() []string {
	numbers := make([]string, 0, len(r.TransportUnits))
	for _, unit := range r.TransportUnits {
		numbers = append(numbers, unit.Number)
	}
	return numbers
}

// Suppliers lists distinct suppliers in first-seen order.
func (r Report) Suppliers() []string {
	var out []string
	seen := map[string]bool{}
	for _, unit := range r.TransportUnits {
		if !seen[unit.Supplier] {
			seen[unit.Supplier] = true
			out = append(out, unit.Supplier)
		}
	}
	return out
}

// Cargos lists distinct cargo tags in first-seen order.
func (r Report) Cargos() []string {
	var out []string
	seen := map[string]bool{}
	for _, unit := range r.TransportUnits {
		for _, cargo := range unit.Cargo {
			if !seen[cargo] {
				seen[cargo] = true
				out = append(out, cargo)
			}
		}
	}
	return out
}

// CargosInEnglish lists distinct translated cargo names in first-seen order.
func (r Report) CargosInEnglish() []string {
	var out []string
	seen := map[string]bool{}
	for _, unit := range r.TransportUnits {
		for _, cargo := range unit.CargoInEnglish {
			if !seen[cargo] {
				seen[cargo] = true
				out = append(out, cargo)
			}
		}
	}
	return out
}

// TransportUnit is a single container, truck or pallet group under inspection.
type TransportUnit struct {
	Number                     string      `json:"number"`
	Supplier                   string      `json:"supplier"`
	Invoice                    string      `json:"invoice"`
	Date                       string      `json:"date"`
	Cargo                      []string    `json:"cargo"`
	CargoInEnglish             []string    `json:"cargo_in_english,omitempty"`
	Card                       []string    `json:"card"`
	Cultivar                   []string    `json:"cultivar"`
	Units                      []string    `json:"units"`
	Calibre                    []string    `json:"calibre"`
	Temperature                Temperature `json:"temperature"`
	Pallets                    int         `json:"pallets" validate:"gte=0"`
	DamagedPallets             int         `json:"damaged_pallets" validate:"gte=0"`
	Boxes                      int         `json:"boxes" validate:"gte=0"`
	DamagedBoxes               int         `json:"damaged_boxes" validate:"gte=0"`
	CargoDamage                int         `json:"cargo_damage" validate:"gte=0"`
	EmptyBoxes                 int         `json:"empty_boxes" validate:"gte=0"`
	NotFullBoxes               int         `json:"not_full_boxes" validate:"gte=0"`
	Photos                     []Photo     `json:"photos" validate:"dive"`
	BL                         string      `json:"bl,omitempty"`
	CMR                        string      `json:"cmr,omitempty"`
	DistributionCenterReceiver string      `json:"distribution_center_receiver,omitempty"`
}

// Temperature holds the recommended value and what was measured.
type Temperature struct {
	Recommended      Celsius          `json:"recommended"`
	Pulp             Pulp             `json:"pulp"`
	ViolationsAffect ViolationsAffect `json:"violations_affect,omitempty" validate:"omitempty,oneof=1 2 3"`
	Thermographs     []Thermograph    `json:"thermographs" validate:"dive"`
}

// Pulp is the internal product temperature range.
type Pulp struct {
	Min Celsius `json:"min"`
	Max Celsius `json:"max"`
}

// Thermograph is the record of one temperature logger.
type Thermograph struct {
	Number string       `json:"number"`
	Graph  *string      `json:"graph"`
	Worked WorkedStatus `json:"worked" validate:"omitempty,oneof=0 1 2 3"`
	Min    Celsius      `json:"min"`
	Max    Celsius      `json:"max"`
}

type thermographAlias Thermograph

// UnmarshalJSON accepts the older "malfunction" spelling of "worked".
func (t *Thermograph) UnmarshalJSON(b []byte) error {
	var aux struct {
		thermographAlias
		Malfunction *WorkedStatus `json:"malfunction"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*t = Thermograph(aux.thermographAlias)
	if aux.Malfunction != nil && t.Worked == "" {
		t.Worked = *aux.Malfunction
	}
	return nil
}

// Photo is one picture attached to a transport unit.
type Photo struct {
	ID       int    `json:"id"`
	File     string `json:"file"`
	Rotation int    `json:"rotation" validate:"gte=0"`
}

// Celsius renders with an explicit sign and one decimal, zero as "0.0".
type Celsius float64

func (c Celsius) String() string {
	if c == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%+.1f", float64(c))
}

// Deviates reports whether c differs from target by more than limit degrees.
func (c Celsius) Deviates(target Celsius, limit float64) bool {
	return math.Abs(float64(c-target)) > limit
}

// WorkedStatus tells whether a thermograph was operating.
type WorkedStatus string

var workedLabels = map[WorkedStatus]string{
	"0": "Нет/No",
	"1": "Да/Yes",
	"2": "Не работал/Did not work",
	"3": "Работал некорректно/Did not work correctly",
}

// String returns the bilingual label printed in documents.
func (s WorkedStatus) String() string {
	return workedLabels[s]
}

// ViolationsAffect tells whether temperature violations affected the cargo.
type ViolationsAffect string

var violationsLabels = map[ViolationsAffect]string{
	"1": "Нет/Нет\nNo/No",
	"2": "Да/Нет\nYes/No",
	"3": "Да/Да\nYes/Yes",
}

func (v ViolationsAffect) String() string {
	return violationsLabels[v]
}
