// Package conversion normalises quantities to the canonical unit of their
// family for storage and renders canonical quantities in display units.
package conversion

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"demeter/internal/units"
)

// DefaultUnit labels quantities whose unit could not be resolved.
const DefaultUnit = "default"

const precision = 6

var (
	ErrUnitNotFound    = errors.New("unit not found")
	ErrMissingQuantity = errors.New("missing quantity")
	ErrNoFixedPoint    = errors.New("display chain did not settle")
	ErrOutOfRange      = errors.New("quantity out of range")
)

// Measurement is an amount tagged with a unit label.
type Measurement struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

var canonicalLabels = map[units.Family]string{
	units.FamilyVolume:      "L",
	units.FamilyLength:      "m",
	units.FamilyCount:       "piece",
	units.FamilyTemperature: "C",
	units.FamilyMass:        "g",
}

func identity(q float64) float64 { return q }

func divide(by float64) func(float64) float64 {
	return func(q float64) float64 { return q / by }
}

func multiply(by float64) func(float64) float64 {
	return func(q float64) float64 { return q * by }
}

var toBase = map[units.Member]func(float64) float64{
	units.Meter: identity,
	units.Inch:  divide(39.37),
	units.Foot:  divide(3.281),
	units.Yard:  divide(1.094),
	units.Mile:  multiply(1609),

	units.Piece: identity,
	units.Slice: identity,

	units.Celsius:    identity,
	units.Fahrenheit: func(q float64) float64 { return (q - 32) * 5 / 9 },
	units.Kelvin:     func(q float64) float64 { return q - 273.15 },

	units.Liter:      identity,
	units.Milliliter: divide(1000),
	units.FluidOunce: divide(33.814),
	units.Pint:       divide(2.113),
	units.Quart:      divide(1.057),
	units.Gallon:     multiply(3.785),
	units.Cup:        divide(4.227),
	units.Tablespoon: divide(67.628),
	units.Teaspoon:   divide(202.9),
	units.Pinch:      divide(32258.0645),
	units.Dash:       divide(1612.9),
	units.Dusting:    divide(1612.9),

	units.Gram:      identity,
	units.Kilogram:  multiply(1000),
	units.Milligram: divide(1000),
	units.Ounce:     multiply(28.35),
	units.Pound:     multiply(453.6),
	units.Stone:     multiply(6350.29),
	units.Ton:       multiply(907200),
}

// ToCanonical converts quantity in unit to the canonical unit of its family.
// A missing quantity counts as zero and an unknown unit passes the quantity
// through under DefaultUnit. A conversion that overflows yields a non-finite
// quantity; check it with Finite before storing.
func ToCanonical(unit string, quantity *float64) Measurement {
	if quantity == nil {
		return Measurement{Unit: DefaultUnit}
	}

	member, ok := units.Resolve(unit)
	if !ok {
		return Measurement{Quantity: *quantity, Unit: DefaultUnit}
	}

	convert, ok := toBase[member]
	if !ok {
		return Measurement{Quantity: *quantity, Unit: DefaultUnit}
	}

	return Measurement{
		Quantity: round(convert(*quantity)),
		Unit:     canonicalLabels[member.Family()],
	}
}

// FromCanonical renders a canonical quantity in the metric or imperial display
// unit that best fits its size.
func FromCanonical(unit string, quantity *float64, metric bool) (Measurement, error) {
	if quantity == nil {
		return Measurement{}, ErrMissingQuantity
	}

	current, ok := startingUnit(unit, metric)
	if !ok {
		return Measurement{}, fmt.Errorf("%w: %q", ErrUnitNotFound, unit)
	}

	q := *quantity
	for range maxChainSteps {
		next, converted := stepUp(current, q)
		q = converted
		if next == current {
			if !Finite(q) {
				return Measurement{}, fmt.Errorf("%w: %v %s", ErrOutOfRange, *quantity, unit)
			}
			q = round(q)
			return Measurement{Quantity: q, Unit: Display(current, q)}, nil
		}
		current = next
	}

	return Measurement{}, fmt.Errorf("%w: %q", ErrNoFixedPoint, unit)
}

// Finite reports whether q is neither infinite nor NaN.
func Finite(q float64) bool {
	return !math.IsInf(q, 0) && !math.IsNaN(q)
}

// round leaves non-finite values alone; decimal cannot represent them.
func round(v float64) float64 {
	if !Finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(precision).InexactFloat64()
}
