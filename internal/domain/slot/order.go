package slot

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// CompareNumbers orders labels the way people read them: P2 before P10.
// Shorter labels (in characters) come first, then byte order, which is
// what the postgres store's COLLATE "C" ordering gives.
func CompareNumbers(a, b string) int {
	if c := cmp.Compare(utf8.RuneCountInString(a), utf8.RuneCountInString(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func SortByNumber(slots []*Slot) {
	slices.SortFunc(slots, func(a, b *Slot) int {
		return CompareNumbers(a.number.value, b.number.value)
	})
}
