package booking

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidDate     = errors.New("invalid booking date")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
)

const (
	DateLayout        = "2006-01-02"
	MaxTimeSlotLength = 20
)

// Date is a calendar day without time of day or zone.
type Date struct {
	value time.Time
}

// ParseDate accepts only the ISO form YYYY-MM-DD with a real month and day.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{value: t}, nil
}

// DateOf drops the time of day of t as seen in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{value: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Time() time.Time   { return d.value }
func (d Date) String() string    { return d.value.Format(DateLayout) }
func (d Date) IsZero() bool      { return d.value.IsZero() }
func (d Date) Equal(o Date) bool { return d.value.Equal(o.value) }

// TimeSlot is an opaque label such as "9:00AM - 11:00AM". It is compared by
// exact equality and never trimmed, parsed or normalized.
type TimeSlot struct {
	value string
}

func NewTimeSlot(s string) (TimeSlot, error) {
	if strings.TrimSpace(s) == "" || utf8.RuneCountInString(s) > MaxTimeSlotLength {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{value: s}, nil
}

func (t TimeSlot) Value() string { return t.value }
