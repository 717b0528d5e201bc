package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"p9e.in/agentreport/models"
	"p9e.in/agentreport/pkg/reporting"
)

var summaryHeaders = []string{
	"number", "supplier", "cargo", "pallets", "damaged_pallets", "boxes",
	"damaged_boxes", "cargo_damage", "empty_boxes", "not_full_boxes", "violations",
}

// createSummaryCSV writes one row of counters per transport unit followed
// by the totals.
func createSummaryCSV(rep models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write(summaryHeaders)

	var totals [7]int
	for _, u := range rep.TransportUnits {
		counters := [7]int{u.Pallets, u.DamagedPallets, u.Boxes, u.DamagedBoxes, u.CargoDamage, u.EmptyBoxes, u.NotFullBoxes}
		record := []string{u.Number, u.Supplier, strings.Join(u.Cargo, "/")}
		for i, c := range counters {
			totals[i] += c
			record = append(record, strconv.Itoa(c))
		}
		violations := "no"
		if reporting.HasViolations(u.Temperature) {
			violations = "yes"
		}
		writer.Write(append(record, violations))
	}

	writer.Write([]string{}) // Empty row
	total := []string{"Summary", "", ""}
	for _, t := range totals {
		total = append(total, strconv.Itoa(t))
	}
	writer.Write(append(total, ""))

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// ExportSessionSummary downloads the unit counters of a session report.
func (s *Server) ExportSessionSummary(w http.ResponseWriter, r *http.Request) {
	_, sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rep := sess.Report()
	data, err := createSummaryCSV(rep)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := "summary"
	if rep.Number != "" {
		name = sanitizeFilename(rep.Number)
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func sanitizeFilename(filename string) string {
	replacements := map[rune]rune{
		'/':  '_',
		'\\': '_',
		':':  '_',
		'*':  '_',
		'?':  '_',
		'"':  '_',
		'<':  '_',
		'>':  '_',
		'|':  '_',
		' ':  '_',
	}

	result := []rune{}
	for _, char := range filename {
		if replacement, exists := replacements[char]; exists {
			result = append(result, replacement)
		} else {
			result = append(result, char)
		}
	}
	return string(result)
}
