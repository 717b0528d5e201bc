package validation

import (
	"errors"
	"reflect"
	"testing"

	"p9e.in/agentreport/models"
)

func TestValidateReport(t *testing.T) {
	tests := []struct {
		name   string
		report models.Report
		fields []string
	}{
		{
			name:   "empty report is valid",
			report: models.EmptyReport(),
		},
		{
			name: "valid nested report",
			report: models.Report{
				Kind: models.KindSelfImport,
				TransportUnits: []models.TransportUnit{{
					Pallets: 3,
					Temperature: models.Temperature{
						ViolationsAffect: "2",
						Thermographs:     []models.Thermograph{{Worked: "3"}},
					},
					Photos: []models.Photo{{ID: 1, Rotation: 90}},
				}},
			},
		},
		{
			name: "negative counters",
			report: models.Report{TransportUnits: []models.TransportUnit{
				{},
				{Pallets: -1, EmptyBoxes: -2},
			}},
			fields: []string{"transport_units[1].pallets", "transport_units[1].empty_boxes"},
		},
		{
			name: "bad flags",
			report: models.Report{TransportUnits: []models.TransportUnit{{
				Temperature: models.Temperature{
					ViolationsAffect: "7",
					Thermographs:     []models.Thermograph{{Worked: "5"}},
				},
			}}},
			fields: []string{
				"transport_units[0].temperature.violations_affect",
				"transport_units[0].temperature.thermographs[0].worked",
			},
		},
		{
			name:   "unknown kind",
			report: models.Report{Kind: "barge"},
			fields: []string{"kind"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReport(tt.report)
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if !reflect.DeepEqual(verr.Fields, tt.fields) {
				t.Errorf("fields = %v, want %v", verr.Fields, tt.fields)
			}
		})
	}
}
