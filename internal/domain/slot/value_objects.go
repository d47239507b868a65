package slot

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidNumber = errors.New("invalid parking slot number")
	ErrInvalidType   = errors.New("invalid parking slot type")
)

const MaxNumberLength = 10

// Number is the human facing label of a slot, such as "P1".
type Number struct {
	value string
}

func NewNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxNumberLength {
		return Number{}, ErrInvalidNumber
	}
	return Number{value: s}, nil
}

// SeedNumber is the label the seeding command assigns to the i-th slot.
func SeedNumber(i int) Number {
	return Number{value: fmt.Sprintf("P%d", i)}
}

func (n Number) Value() string {
	return n.value
}

type Type string

const (
	TypeRegular  Type = "regular"
	TypePremium  Type = "premium"
	TypeDisabled Type = "disabled"
	TypeElectric Type = "electric"
)

// seedRotation is the order seeded slots cycle through.
var seedRotation = []Type{TypeRegular, TypePremium, TypeDisabled, TypeElectric}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeRegular, TypePremium, TypeDisabled, TypeElectric:
		return true
	default:
		return false
	}
}

// DisplayName is the label shown next to the slot number.
func (t Type) DisplayName() string {
	switch t {
	case TypeRegular:
		return "Regular"
	case TypePremium:
		return "Premium"
	case TypeDisabled:
		return "Disabled"
	case TypeElectric:
		return "Electric Charging"
	default:
		return string(t)
	}
}

// SeedType returns the type of the i-th seeded slot, 1-based.
func SeedType(i int) Type {
	return seedRotation[(i-1)%len(seedRotation)]
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
