package models

import "fmt"

// SchemaVersion selects which optional fields the default templates carry.
//
// Version 1 is the early form: thermographs have no number, the operability
// flag defaults to empty and every temperature starts with one thermograph.
// Version 2 adds thermograph numbers, violations_affect and unit photos.
type SchemaVersion int

const (
	SchemaV1 SchemaVersion = 1
	SchemaV2 SchemaVersion = 2

	DefaultSchema = SchemaV2
)

// ParseSchemaVersion validates a configured schema version.
func ParseSchemaVersion(v int) (SchemaVersion, error) {
	switch SchemaVersion(v) {
	case SchemaV1, SchemaV2:
		return SchemaVersion(v), nil
	}
	return 0, fmt.Errorf("unknown schema version %d", v)
}

// EmptyReport is the value a session holds after creation and after a drop.
func EmptyReport() Report {
	return Report{TransportUnits: []TransportUnit{}}
}

// DefaultPulp is the template for a new pulp range.
func (v SchemaVersion) DefaultPulp() Pulp {
	return Pulp{}
}

// DefaultThermograph is the template for a new thermograph entry.
func (v SchemaVersion) DefaultThermograph() Thermograph {
	if v == SchemaV1 {
		return Thermograph{}
	}
	return Thermograph{Worked: "0"}
}

// DefaultTemperature is the template for a unit's temperature block.
func (v SchemaVersion) DefaultTemperature() Temperature {
	if v == SchemaV1 {
		return Temperature{
			Pulp:         v.DefaultPulp(),
			Thermographs: []Thermograph{v.DefaultThermograph()},
		}
	}
	return Temperature{
		Pulp:             v.DefaultPulp(),
		ViolationsAffect: "1",
		Thermographs:     []Thermograph{},
	}
}

// DefaultPhoto is the template for a new photo entry.
func (v SchemaVersion) DefaultPhoto() Photo {
	return Photo{}
}

// DefaultTransportUnit is the template for a new transport unit.
func (v SchemaVersion) DefaultTransportUnit() TransportUnit {
	unit := TransportUnit{
		Cargo:       []string{},
		Card:        []string{},
		Cultivar:    []string{},
		Units:       []string{},
		Calibre:     []string{},
		Temperature: v.DefaultTemperature(),
	}
	if v != SchemaV1 {
		unit.Photos = []Photo{}
	}
	return unit
}
