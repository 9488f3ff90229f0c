package units

import "strings"

// Resolver recognises the synonyms of a single family.
type Resolver interface {
	Family() Family
	Resolve(text string) (Member, bool)
}

type synonymTable[M Member] struct {
	family   Family
	synonyms map[string]M
}

func (t synonymTable[M]) Family() Family { return t.family }

func (t synonymTable[M]) Resolve(text string) (Member, bool) {
	member, ok := t.synonyms[Normalize(text)]
	if !ok {
		return nil, false
	}
	return member, true
}

var volumeTable = synonymTable[Volume]{
	family: FamilyVolume,
	synonyms: map[string]Volume{
		"liter": Liter, "liters": Liter, "l": Liter,
		"milliliter": Milliliter, "milliliters": Milliliter, "ml": Milliliter,
		"fl oz": FluidOunce, "floz": FluidOunce, "fluid ounce": FluidOunce, "fluid ounces": FluidOunce,
		"pint": Pint, "pints": Pint, "pt": Pint,
		"quart": Quart, "quarts": Quart, "qt": Quart,
		"gallon": Gallon, "gallons": Gallon, "gal": Gallon,
		"cup": Cup, "cups": Cup, "c": Cup,
		"tablespoon": Tablespoon, "tablespoons": Tablespoon, "tbsp": Tablespoon, "tbsps": Tablespoon, "tbs": Tablespoon,
		"teaspoon": Teaspoon, "teaspoons": Teaspoon, "tsp": Teaspoon, "tsps": Teaspoon,
		"pinch": Pinch, "pinches": Pinch,
		"dash": Dash, "dashes": Dash,
		"dusting": Dusting, "dustings": Dusting,
	},
}

var lengthTable = synonymTable[Length]{
	family: FamilyLength,
	synonyms: map[string]Length{
		"m": Meter, "meter": Meter, "meters": Meter,
		"in": Inch, "inch": Inch, "inches": Inch,
		"ft": Foot, "feet": Foot,
		"yd": Yard, "yrd": Yard, "yrds": Yard, "yard": Yard, "yards": Yard,
		"mi": Mile, "mile": Mile, "miles": Mile,
	},
}

var countTable = synonymTable[Count]{
	family: FamilyCount,
	synonyms: map[string]Count{
		"piece": Piece, "pieces": Piece,
		"slice": Slice, "slices": Slice,
	},
}

var temperatureTable = synonymTable[Temperature]{
	family: FamilyTemperature,
	synonyms: map[string]Temperature{
		"celsius": Celsius, "c": Celsius, "°c": Celsius,
		"fahrenheit": Fahrenheit, "f": Fahrenheit, "°f": Fahrenheit,
		"kelvin": Kelvin, "kelvins": Kelvin, "k": Kelvin,
	},
}

var massTable = synonymTable[Mass]{
	family: FamilyMass,
	synonyms: map[string]Mass{
		"gram": Gram, "grams": Gram, "g": Gram,
		"kilogram": Kilogram, "kilograms": Kilogram, "kg": Kilogram,
		"milligram": Milligram, "milligrams": Milligram, "mg": Milligram,
		"ounce": Ounce, "ounces": Ounce, "oz": Ounce,
		"pound": Pound, "pounds": Pound, "lb": Pound, "lbs": Pound,
		"stone": Stone, "stones": Stone, "st": Stone, "sts": Stone,
		"ton": Ton, "tons": Ton, "t": Ton, "ts": Ton,
	},
}

// resolvers is consulted in order; the first family to recognise a text wins.
var resolvers = []Resolver{volumeTable, lengthTable, countTable, temperatureTable, massTable}

// Resolvers returns the family resolvers in priority order.
func Resolvers() []Resolver {
	out := make([]Resolver, len(resolvers))
	copy(out, resolvers)
	return out
}

// Resolve maps free text such as "Tbsp" or " fl  oz " to a unit.
func Resolve(text string) (Member, bool) {
	for _, r := range resolvers {
		if member, ok := r.Resolve(text); ok {
			return member, true
		}
	}
	return nil, false
}

// FamilyOf returns the family of the unit named by text, or FamilyDefault.
func FamilyOf(text string) Family {
	member, ok := Resolve(text)
	if !ok {
		return FamilyDefault
	}
	return member.Family()
}

// Normalize lower-cases text and collapses runs of whitespace.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
