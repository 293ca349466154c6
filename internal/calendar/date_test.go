package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	d, err := Parse("2026-02-15")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.February, Day: 15}, d)
	assert.Equal(t, "2026-02-15", d.String())

	for _, bad := range []string{"", "2026-2-15", "2026-02-30", "15/02/2026", "2026-02-15T00:00:00"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2026-02-15", "2026-02-15", 0},
		{"2026-02-15", "2026-02-20", 5},
		{"2026-02-15", "2026-02-10", -5},
		{"2026-01-01", "2026-04-30", 119},
		{"2026-01-15", "2026-02-28", 44},
		// Spans the March DST change in most northern zones.
		{"2026-03-01", "2026-04-01", 31},
		{"2024-02-28", "2024-03-01", 2},
		{"2025-12-31", "2026-01-01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(MustParse(tt.a), MustParse(tt.b)))
		})
	}
}

func TestMonthHelpers(t *testing.T) {
	d := MustParse("2024-02-17")

	assert.Equal(t, "2024-02-01", d.FirstOfMonth().String())
	assert.Equal(t, "2024-02-29", d.LastOfMonth().String())
	assert.Equal(t, "2024-03-01", d.NextMonth().String())
	assert.Equal(t, "2025-01-01", MustParse("2024-12-05").NextMonth().String())

	assert.Equal(t, 31, DaysInMonth(2026, time.January))
	assert.Equal(t, 28, DaysInMonth(2026, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2026, time.April))
}

func TestCompare(t *testing.T) {
	a := MustParse("2026-03-01")
	b := MustParse("2026-03-15")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, a, Min(a, b))
	assert.Equal(t, b, Max(a, b))

	assert.True(t, a.Within(a, b))
	assert.True(t, b.Within(a, b))
	assert.False(t, b.AddDays(1).Within(a, b))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2026-03-01", MustParse("2026-02-28").AddDays(1).String())
	assert.Equal(t, "2026-02-23", MustParse("2026-02-28").AddDays(-5).String())
}

func TestToday(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, time.March, 20, 23, 30, 0, 0, time.Local) }
	assert.Equal(t, "2026-03-20", Today(clock).String())
}

func TestYAML(t *testing.T) {
	var doc struct {
		Start  Date  `yaml:"start"`
		Actual *Date `yaml:"actual"`
		Never  *Date `yaml:"never"`
	}

	err := yaml.Unmarshal([]byte("start: 2026-01-15\nactual: \"2026-02-01\"\nnever: null\n"), &doc)
	require.NoError(t, err)
	assert.Equal(t, MustParse("2026-01-15"), doc.Start)
	require.NotNil(t, doc.Actual)
	assert.Equal(t, "2026-02-01", doc.Actual.String())
	assert.Nil(t, doc.Never)

	err = yaml.Unmarshal([]byte("start: 2026-13-01\n"), &doc)
	assert.ErrorIs(t, err, ErrInvalidDate)

	out, err := yaml.Marshal(struct {
		Start Date `yaml:"start"`
	}{Start: MustParse("2026-04-30")})
	require.NoError(t, err)
	assert.Contains(t, string(out), "2026-04-30")
}
