//go:build unit

package slot_test

import (
	"strings"
	"testing"
	"time"

	"parking-reservation/internal/domain/slot"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("基本成功ケース", func(t *testing.T) {
		number, err := slot.NewNumber("P1")
		require.NoError(t, err)

		s := slot.NewSlot(number, slot.TypeElectric, now)

		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, "P1", s.Number().Value())
		assert.True(t, s.IsAvailable())
		assert.Equal(t, "P1 (Electric Charging)", s.String())
		assert.Equal(t, now, s.CreatedAt())

		s.SetAvailability(false)
		assert.False(t, s.IsAvailable())
	})

	t.Run("番号検証", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
			want  string
			errIs error
		}{
			{name: "通常の番号OK", input: "P1", want: "P1"},
			{name: "前後の空白は除去OK", input: " A-12 ", want: "A-12"},
			{name: "境界値OK（10文字）", input: strings.Repeat("9", slot.MaxNumberLength), want: strings.Repeat("9", slot.MaxNumberLength)},
			{name: "境界値NG（11文字）", input: strings.Repeat("9", slot.MaxNumberLength+1), errIs: slot.ErrInvalidNumber},
			{name: "空の番号NG", input: "", errIs: slot.ErrInvalidNumber},
			{name: "空白のみNG", input: "  ", errIs: slot.ErrInvalidNumber},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				n, err := slot.NewNumber(c.input)
				if c.errIs != nil {
					require.ErrorIs(t, err, c.errIs)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, c.want, n.Value())
			})
		}
	})

	t.Run("種別検証", func(t *testing.T) {
		for _, s := range []string{"regular", "premium", "disabled", "electric"} {
			typ, err := slot.NewType(s)
			require.NoError(t, err, s)
			assert.Equal(t, s, typ.String())
		}

		_, err := slot.NewType("vip")
		require.ErrorIs(t, err, slot.ErrInvalidType)
		_, err = slot.NewType("Regular")
		require.ErrorIs(t, err, slot.ErrInvalidType)
	})

	t.Run("シード用の番号と種別", func(t *testing.T) {
		got := make([]string, 0, 5)
		for i := 1; i <= 5; i++ {
			got = append(got, slot.SeedNumber(i).Value()+":"+slot.SeedType(i).String())
		}
		want := []string{"P1:regular", "P2:premium", "P3:disabled", "P4:electric", "P5:regular"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("seed rotation mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("番号順の並び替え", func(t *testing.T) {
		slots := make([]*slot.Slot, 0, 4)
		for _, n := range []string{"P10", "P2", "P1", "A1"} {
			slots = append(slots, slot.Reconstruct(uuid.New(), n, slot.TypeRegular, true, now))
		}

		slot.SortByNumber(slots)

		got := make([]string, 0, len(slots))
		for _, s := range slots {
			got = append(got, s.Number().Value())
		}
		if diff := cmp.Diff([]string{"A1", "P1", "P2", "P10"}, got); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("文字数とバイト順で並ぶ", func(t *testing.T) {
		slots := make([]*slot.Slot, 0, 4)
		for _, n := range []string{"B10", "Ü1", "p1", "P2"} {
			slots = append(slots, slot.Reconstruct(uuid.New(), n, slot.TypeRegular, true, now))
		}

		slot.SortByNumber(slots)

		got := make([]string, 0, len(slots))
		for _, s := range slots {
			got = append(got, s.Number().Value())
		}
		// "Ü1" is two characters but three bytes
		if diff := cmp.Diff([]string{"P2", "p1", "Ü1", "B10"}, got); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})
}
