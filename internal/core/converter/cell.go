package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ofx-converter/internal/domain"
)

// cellText devolve a forma textual de uma célula e se ela está presente.
// nil, string vazia (após trim) e NaN contam como ausentes.
func cellText(c domain.Cell) (string, bool) {
	switch v := c.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return cellText(float64(v))
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// cellString é cellText sem o indicador de presença.
func cellString(c domain.Cell) string {
	s, _ := cellText(c)
	return s
}
