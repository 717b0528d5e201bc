package reporting

import (
	"strings"

	"p9e.in/agentreport/models"
)

// Dictionary translates cargo names into English for bilingual documents.
type Dictionary struct {
	Vegetables map[string]string
	Fruits     map[string]string
}

// Translate looks the cargo up among vegetables first, then fruits.
// Unknown cargo translates to "".
func (d Dictionary) Translate(cargo string) string {
	key := strings.ToLower(strings.TrimSpace(cargo))
	if v := d.Vegetables[key]; v != "" {
		return v
	}
	return d.Fruits[key]
}

// translateUnits fills cargo_in_english of every unit.
func (d Dictionary) translateUnits(r *models.Report) {
	for i := range r.TransportUnits {
		unit := &r.TransportUnits[i]
		unit.CargoInEnglish = make([]string, len(unit.Cargo))
		for j, cargo := range unit.Cargo {
			unit.CargoInEnglish[j] = d.Translate(cargo)
		}
	}
}

func distinct(values []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// headerValues is what header tables are filled with.
func headerValues(r models.Report, d Dictionary) map[string]any {
	var invoices, bl, cmr, discharge, receivers []string
	for _, u := range r.TransportUnits {
		invoices = append(invoices, u.Invoice)
		bl = append(bl, u.BL)
		cmr = append(cmr, u.CMR)
		discharge = append(discharge, u.Date)
		receivers = append(receivers, u.DistributionCenterReceiver)
	}
	var cargo []string
	for _, c := range r.Cargos() {
		cargo = append(cargo, capitalize(c)+"/"+d.Translate(c))
	}

	values := map[string]any{
		"report_number":       r.Number,
		"place_of_inspection": r.PlaceOfInspection,
		"inspection_date":     r.InspectionDate,
		"issue_date":          r.IssueDate,
		"surveyor":            r.Surveyor,
		"shipper":             r.Suppliers(),
		"cargo":               cargo,
		"transport_units":     r.TransportUnitNumbers(),
		"invoice":             distinct(invoices),
		"order":               r.Order,
	}
	switch r.Kind.Normalize() {
	case models.KindSelfImport:
		values["vessel"] = r.Vessel
		values["BL"] = bl
	case models.KindSelfImportOnAuto:
		values["CMR"] = cmr
	case models.KindPickupFromSupplier:
		values["discharge_date"] = discharge
		values["distribution_center_receiver"] = receivers
	}
	return values
}
