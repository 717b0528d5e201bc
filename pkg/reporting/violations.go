package reporting

import (
	"fmt"
	"strings"

	"p9e.in/agentreport/models"
)

// ViolationLimit is the largest tolerated deviation from the recommended
// temperature, in degrees Celsius.
const ViolationLimit = 2.0

// HasViolations reports whether any thermograph or pulp boundary left the
// tolerated band around the recommended temperature.
func HasViolations(t models.Temperature) bool {
	for _, th := range t.Thermographs {
		if th.Min.Deviates(t.Recommended, ViolationLimit) || th.Max.Deviates(t.Recommended, ViolationLimit) {
			return true
		}
	}
	return t.Pulp.Min.Deviates(t.Recommended, ViolationLimit) || t.Pulp.Max.Deviates(t.Recommended, ViolationLimit)
}

// UnitsWithViolations keeps the units whose temperature was violated.
func UnitsWithViolations(units []models.TransportUnit) []models.TransportUnit {
	var out []models.TransportUnit
	for _, u := range units {
		if HasViolations(u.Temperature) {
			out = append(out, u)
		}
	}
	return out
}

// ProtestText is the body of the letter of protest for the given units.
// Only the part of inspectionDate before " - " is used as the opening date.
func ProtestText(units []models.TransportUnit, inspectionDate string) string {
	opened, _, _ := strings.Cut(inspectionDate, " - ")
	var b strings.Builder
	for _, u := range units {
		ths := u.Temperature.Thermographs
		b.WriteString("\n")
		if len(ths) > 0 {
			low, high := ths[0].Min, ths[0].Max
			for _, th := range ths[1:] {
				low = min(low, th.Min)
				high = max(high, th.Max)
			}
			pronoun := "their"
			if len(ths) == 1 {
				pronoun = "it's"
			}
			fmt.Fprintf(&b,
				"%s thermograph(s) found in the container %s and according to %s record(s) the temperature during transportation was from %.1f°C to %.1f°C.\n\n",
				capitalize(numberToWords(len(ths))), u.Number, pronoun, float64(low), float64(high))
		}
		fmt.Fprintf(&b,
			"Container %s was opened on %s and temperature inside was %.1f°C/%.1f°C.\n\n\n",
			u.Number, opened, float64(u.Temperature.Pulp.Min), float64(u.Temperature.Pulp.Max))
	}
	return b.String()
}
