package conversion

import (
	"demeter/internal/units"
)

// maxChainSteps bounds the step-up loop; the longest chain has four links.
const maxChainSteps = 8

// Promotion thresholds for the imperial display chains.
const (
	inchesPerMeter    = 39.37
	teaspoonsPerLiter = 202.9
	gramsPerOunce     = 28.35

	maxInches      = 24
	maxFeet        = 6
	maxTeaspoons   = 6
	maxTablespoons = 6
	maxCups        = 16
	maxOunces      = 16
)

var metricStart = map[string]units.Member{
	"m": units.Meter, "meter": units.Meter, "meters": units.Meter,
	"piece": units.Piece, "pieces": units.Piece,
	"c": units.Celsius, "celsius": units.Celsius, "°c": units.Celsius,
	"l": units.Liter, "liter": units.Liter, "liters": units.Liter,
	"g": units.Gram, "gram": units.Gram, "grams": units.Gram,
}

var imperialStart = map[string]units.Member{
	"m": units.Inch, "meter": units.Inch, "meters": units.Inch,
	"piece": units.Slice, "pieces": units.Slice,
	"c": units.Fahrenheit, "celsius": units.Fahrenheit, "°c": units.Fahrenheit,
	"l": units.Teaspoon, "liter": units.Teaspoon, "liters": units.Teaspoon,
	"g": units.Ounce, "gram": units.Ounce, "grams": units.Ounce,
}

func startingUnit(canonical string, metric bool) (units.Member, bool) {
	table := imperialStart
	if metric {
		table = metricStart
	}
	member, ok := table[units.Normalize(canonical)]
	return member, ok
}

// step converts q, expressed in the unit the step is keyed by, and reports the
// unit the result should be read in. A step returning its own unit ends the chain.
type step func(q float64) (units.Member, float64)

func settle(m units.Member) step {
	return func(q float64) (units.Member, float64) { return m, q }
}

var steps = map[units.Member]step{
	units.Meter:   settle(units.Meter),
	units.Piece:   settle(units.Piece),
	units.Celsius: settle(units.Celsius),
	units.Liter:   settle(units.Liter),
	units.Gram:    settle(units.Gram),
	units.Slice:   settle(units.Slice),

	units.Inch: func(meters float64) (units.Member, float64) {
		in := meters * inchesPerMeter
		if in > maxInches {
			return units.Foot, in
		}
		return units.Inch, in
	},
	units.Foot: func(inches float64) (units.Member, float64) {
		ft := inches / 12
		if ft > maxFeet {
			return units.Yard, ft
		}
		return units.Foot, ft
	},
	units.Yard: func(feet float64) (units.Member, float64) {
		return units.Yard, feet / 3
	},

	units.Fahrenheit: func(celsius float64) (units.Member, float64) {
		return units.Fahrenheit, celsius*9/5 + 32
	},

	units.Teaspoon: func(liters float64) (units.Member, float64) {
		tsp := liters * teaspoonsPerLiter
		if tsp < maxTeaspoons {
			return units.Teaspoon, tsp
		}
		return units.Tablespoon, tsp
	},
	units.Tablespoon: func(tsp float64) (units.Member, float64) {
		tbsp := tsp / 3
		if tbsp < maxTablespoons {
			return units.Tablespoon, tbsp
		}
		return units.Cup, tbsp
	},
	units.Cup: func(tbsp float64) (units.Member, float64) {
		cups := tbsp / 16
		if cups < maxCups {
			return units.Cup, cups
		}
		return units.Gallon, cups
	},
	units.Gallon: func(cups float64) (units.Member, float64) {
		return units.Gallon, cups / 16
	},

	units.Ounce: func(grams float64) (units.Member, float64) {
		oz := grams / gramsPerOunce
		if oz < maxOunces {
			return units.Ounce, oz
		}
		return units.Pound, oz
	},
	units.Pound: func(oz float64) (units.Member, float64) {
		return units.Pound, oz / 16
	},
}

func stepUp(current units.Member, q float64) (units.Member, float64) {
	s, ok := steps[current]
	if !ok {
		return current, q
	}
	return s(q)
}

// Display returns the label shown to users for a quantity of m.
func Display(m units.Member, quantity float64) string {
	plural := quantity > 1
	switch m {
	case units.Inch:
		return "in"
	case units.Foot:
		return "ft"
	case units.Yard:
		return "yd"
	case units.Meter:
		return "m"
	case units.Slice:
		if plural {
			return "slices"
		}
		return "slice"
	case units.Piece:
		if plural {
			return "pieces"
		}
		return "piece"
	case units.Fahrenheit:
		return "f"
	case units.Celsius:
		return "c"
	case units.Teaspoon:
		return "tsp"
	case units.Tablespoon:
		return "Tbsp"
	case units.Cup:
		if plural {
			return "cups"
		}
		return "cup"
	case units.Gallon:
		return "gal"
	case units.Milliliter:
		return "ml"
	case units.Liter:
		return "L"
	case units.Ounce:
		return "oz"
	case units.Pound:
		return "lb"
	case units.Milligram:
		return "mg"
	case units.Gram:
		return "g"
	case units.Kilogram:
		return "kg"
	default:
		return DefaultUnit
	}
}
