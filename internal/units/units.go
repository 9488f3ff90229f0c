// Package units defines the closed set of measurement units the pantry
// understands, grouped into families, and resolves free text to them.
package units

// Family groups units that can be converted into one another.
type Family int

const (
	FamilyDefault Family = iota
	FamilyVolume
	FamilyLength
	FamilyCount
	FamilyTemperature
	FamilyMass
)

func (f Family) String() string {
	switch f {
	case FamilyVolume:
		return "volume"
	case FamilyLength:
		return "length"
	case FamilyCount:
		return "count"
	case FamilyTemperature:
		return "temperature"
	case FamilyMass:
		return "mass"
	default:
		return "default"
	}
}

// Member is a single unit belonging to one family.
type Member interface {
	Family() Family
	String() string
}

type Volume uint8

const (
	Liter Volume = iota + 1
	Milliliter
	FluidOunce
	Pint
	Quart
	Gallon
	Cup
	Tablespoon
	Teaspoon
	Pinch
	Dash
	Dusting
)

var volumeNames = map[Volume]string{
	Liter:      "liter",
	Milliliter: "milliliter",
	FluidOunce: "fluid ounce",
	Pint:       "pint",
	Quart:      "quart",
	Gallon:     "gallon",
	Cup:        "cup",
	Tablespoon: "tablespoon",
	Teaspoon:   "teaspoon",
	Pinch:      "pinch",
	Dash:       "dash",
	Dusting:    "dusting",
}

func (Volume) Family() Family   { return FamilyVolume }
func (v Volume) String() string { return volumeNames[v] }

type Length uint8

const (
	Meter Length = iota + 1
	Inch
	Foot
	Yard
	Mile
)

var lengthNames = map[Length]string{
	Meter: "meter",
	Inch:  "inch",
	Foot:  "foot",
	Yard:  "yard",
	Mile:  "mile",
}

func (Length) Family() Family   { return FamilyLength }
func (l Length) String() string { return lengthNames[l] }

// Count covers items that are counted rather than measured.
type Count uint8

const (
	Piece Count = iota + 1
	Slice
)

func (Count) Family() Family { return FamilyCount }

func (c Count) String() string {
	switch c {
	case Piece:
		return "piece"
	case Slice:
		return "slice"
	default:
		return ""
	}
}

type Temperature uint8

const (
	Celsius Temperature = iota + 1
	Fahrenheit
	Kelvin
)

func (Temperature) Family() Family { return FamilyTemperature }

func (t Temperature) String() string {
	switch t {
	case Celsius:
		return "celsius"
	case Fahrenheit:
		return "fahrenheit"
	case Kelvin:
		return "kelvin"
	default:
		return ""
	}
}

type Mass uint8

const (
	Gram Mass = iota + 1
	Kilogram
	Milligram
	Ounce
	Pound
	Stone
	Ton
)

var massNames = map[Mass]string{
	Gram:      "gram",
	Kilogram:  "kilogram",
	Milligram: "milligram",
	Ounce:     "ounce",
	Pound:     "pound",
	Stone:     "stone",
	Ton:       "ton",
}

func (Mass) Family() Family   { return FamilyMass }
func (m Mass) String() string { return massNames[m] }

// Canonical returns the storage unit of a family. The default family has none.
func Canonical(f Family) (Member, bool) {
	switch f {
	case FamilyVolume:
		return Liter, true
	case FamilyLength:
		return Meter, true
	case FamilyCount:
		return Piece, true
	case FamilyTemperature:
		return Celsius, true
	case FamilyMass:
		return Gram, true
	default:
		return nil, false
	}
}
