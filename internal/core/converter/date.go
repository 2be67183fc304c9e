package converter

import (
	"strconv"
	"strings"
	"time"

	"ofx-converter/internal/domain"

	"github.com/araddon/dateparse"
)

// dayFirstLayouts são tentados em ordem quando nenhum padrão explícito é informado.
// Em datas ambíguas o dia vem antes do mês.
var dayFirstLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/1/2",
	"20060102",
	"2 Jan 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2, 2006",
	"2/1",
	"2-1",
}

// Intervalo plausível para seriais de data do Excel (≈1995 a ≈2064).
const (
	minExcelSerial = 35000
	maxExcelSerial = 60000
)

// currentYear completa datas sem ano ("05/01").
var currentYear = func() int { return time.Now().Year() }

// ParseDate converte uma célula em data. Com pattern não vazio o texto precisa
// casar exatamente com o padrão strftime, sem fallback e sem aparar espaços. Sem pattern usa a
// heurística dia-antes-do-mês. Retorna false para célula ausente ou inválida.
func ParseDate(c domain.Cell, pattern string) (time.Time, bool) {
	if strings.TrimSpace(pattern) != "" {
		layout, err := ConvertDatePattern(pattern)
		if err != nil {
			return time.Time{}, false
		}
		return parseWithLayout(c, layout)
	}
	return parseDateDayFirst(c)
}

// parseWithLayout aplica um layout Go já convertido.
func parseWithLayout(c domain.Cell, layout string) (time.Time, bool) {
	s, ok := cellText(c)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return withDefaultYear(t), true
}

func parseDateDayFirst(c domain.Cell) (time.Time, bool) {
	if f, ok := c.(float64); ok {
		return excelSerialDate(f)
	}
	raw, ok := cellText(c)
	if !ok {
		return time.Time{}, false
	}
	s := strings.TrimSpace(raw)

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return withDefaultYear(t), true
		}
	}

	if f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
		// números puros só valem como serial do Excel; dateparse os leria como timestamp
		return excelSerialDate(f)
	}

	return parseFuzzyDate(s)
}

// parseFuzzyDate é o último recurso: dateparse com preferência dia/mês.
// Texto sem nenhum dígito nunca é data.
func parseFuzzyDate(s string) (t time.Time, ok bool) {
	if !strings.ContainsAny(s, "0123456789") {
		return time.Time{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			t, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil || parsed.IsZero() {
		return time.Time{}, false
	}
	return withDefaultYear(parsed), true
}

// withDefaultYear troca o ano 0, produzido quando o texto não traz ano, pelo ano corrente.
func withDefaultYear(t time.Time) time.Time {
	if t.Year() != 0 {
		return t
	}
	return time.Date(currentYear(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func excelSerialDate(serial float64) (time.Time, bool) {
	if serial <= minExcelSerial || serial >= maxExcelSerial {
		return time.Time{}, false
	}
	return excelSerialToDate(serial), true
}

func excelSerialToDate(serial float64) time.Time {
	// base Excel serial -> 1899-12-30
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	frac := serial - float64(int64(serial))
	duration := time.Duration(int64(serial)*24) * time.Hour
	duration += time.Duration(frac * 24 * float64(time.Hour))
	return base.Add(duration)
}

// FormatPostedDate devolve a data no formato YYYYMMDD.
func FormatPostedDate(t time.Time) string {
	return t.Format("20060102")
}
