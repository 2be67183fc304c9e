package converter

import (
	"testing"
	"time"

	"ofx-converter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateWithPattern(t *testing.T) {
	got, ok := ParseDate("05/01/2024", "%d/%m/%Y")
	require.True(t, ok)
	assert.Equal(t, day(2024, time.January, 5), got)

	got, ok = ParseDate("5/1/2024", "%d/%m/%Y")
	require.True(t, ok)
	assert.Equal(t, day(2024, time.January, 5), got)

	got, ok = ParseDate("2024-01-05 10:30:00", "%Y-%m-%d %H:%M:%S")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 5, 10, 30, 0, 0, time.UTC), got)
}

func TestParseDateWithPatternIsStrict(t *testing.T) {
	_, ok := ParseDate("05/01/2024", "%Y-%m-%d")
	assert.False(t, ok)

	_, ok = ParseDate("2024-01-05", "%d/%m/%Y")
	assert.False(t, ok)
}

func TestParseDateRejectsSurroundingSpacesWithPattern(t *testing.T) {
	for _, in := range []string{"05/01/2024 ", " 05/01/2024", "05/01/2024 10:00"} {
		_, ok := ParseDate(in, "%d/%m/%Y")
		assert.False(t, ok, "input %q", in)
	}
}

func fixYear(t *testing.T, year int) {
	t.Helper()
	prev := currentYear
	currentYear = func() int { return year }
	t.Cleanup(func() { currentYear = prev })
}

func TestParseDateWithoutYearUsesCurrentYear(t *testing.T) {
	fixYear(t, 2025)

	for _, in := range []string{"05/01", "5-1"} {
		got, ok := ParseDate(in, "")
		require.True(t, ok, in)
		assert.Equal(t, day(2025, time.January, 5), got, in)
	}

	got, ok := ParseDate("05/01", "%d/%m")
	require.True(t, ok)
	assert.Equal(t, day(2025, time.January, 5), got)
}

func TestParseDateDayFirst(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Cell
		want time.Time
	}{
		{"barra dia primeiro", "05/01/2024", day(2024, time.January, 5)},
		{"barra com hora", "05/01/2024 10:30", time.Date(2024, time.January, 5, 10, 30, 0, 0, time.UTC)},
		{"hifen", "05-01-2024", day(2024, time.January, 5)},
		{"ponto", "05.01.2024", day(2024, time.January, 5)},
		{"ano curto", "05/01/24", day(2024, time.January, 5)},
		{"iso", "2024-01-05", day(2024, time.January, 5)},
		{"iso com hora", "2024-01-05 00:00:00", day(2024, time.January, 5)},
		{"mes abreviado", "5 Jan 2024", day(2024, time.January, 5)},
		{"serial excel numerico", 45296.0, day(2024, time.January, 5)},
		{"serial excel texto", "45296", day(2024, time.January, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in, "")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []domain.Cell{nil, "", "not a date", "12", 100.0} {
		_, ok := ParseDate(in, "")
		assert.False(t, ok, "input %v", in)
	}
}

func TestFormatPostedDate(t *testing.T) {
	assert.Equal(t, "20240105", FormatPostedDate(time.Date(2024, time.January, 5, 23, 59, 0, 0, time.UTC)))
}

func TestConvertDatePattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"%d/%m/%Y", "2/1/2006"},
		{"%Y-%m-%d", "2006-1-2"},
		{"%d.%m.%y", "2.1.06"},
		{"%Y-%m-%d %H:%M:%S", "2006-1-2 15:4:5"},
		{"%d %b %Y", "2 Jan 2006"},
		{"%d%%%m", "2%1"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := ConvertDatePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertDatePatternErrors(t *testing.T) {
	for _, p := range []string{"%q", "%d/%m/%Y%", "dia 1 %d", "%d Jan %Y", "dd/mm/yyyy"} {
		_, err := ConvertDatePattern(p)
		assert.Error(t, err, p)
	}
}
