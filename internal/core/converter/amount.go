package converter

import (
	"errors"
	"math"
	"strings"

	"ofx-converter/internal/domain"

	"github.com/shopspring/decimal"
)

// currencyMarkers são removidos apenas no início do valor (após um sinal opcional).
// A ordem importa: "US$" e "R$" antes de "$".
var currencyMarkers = []string{"R$", "US$", "$", "€", "£"}

var errAmountPanic = errors.New("valor inválido")

// amountRule reescreve o texto de um valor quando sua condição casa.
type amountRule struct {
	name    string
	applies func(s string) bool
	rewrite func(s string) string
}

// amountRules é a heurística de separadores, avaliada em ordem; vence a primeira
// regra que casar. Um valor só com ponto ("1.234") não casa nenhuma regra e é
// lido como decimal (1.234), nunca como milhar.
var amountRules = []amountRule{
	{
		name: "virgula-decimal",
		applies: func(s string) bool {
			return strings.Count(s, ",") == 1 && !strings.Contains(s, ".")
		},
		rewrite: func(s string) string {
			return strings.Replace(s, ",", ".", 1)
		},
	},
	{
		name: "milhar-ponto-decimal-virgula",
		applies: func(s string) bool {
			return strings.Contains(s, ",") && strings.Contains(s, ".") &&
				strings.LastIndex(s, ",") > strings.LastIndex(s, ".")
		},
		rewrite: func(s string) string {
			s = strings.ReplaceAll(s, ".", "")
			return strings.ReplaceAll(s, ",", ".")
		},
	},
}

// ParseAmount converte uma célula em valor monetário com sinal.
// Retorna false para célula ausente ou conteúdo não numérico; nunca entra em pânico.
func ParseAmount(c domain.Cell) (decimal.Decimal, bool) {
	switch v := c.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	}

	raw, ok := cellText(c)
	if !ok {
		return decimal.Zero, false
	}

	s := stripAmountDecorations(strings.TrimSpace(raw))
	for _, rule := range amountRules {
		if rule.applies(s) {
			s = rule.rewrite(s)
			break
		}
	}

	if d, err := parseDecimal(s); err == nil {
		return d, true
	}
	// último recurso: o texto original, sem transformação
	if d, err := parseDecimal(strings.TrimSpace(raw)); err == nil {
		return d, true
	}
	return decimal.Zero, false
}

// stripAmountDecorations remove o marcador de moeda inicial e todos os espaços.
func stripAmountDecorations(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], strings.TrimSpace(s[1:])
	}
	for _, marker := range currencyMarkers {
		if strings.HasPrefix(s, marker) {
			s = s[len(marker):]
			break
		}
	}
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\t' {
			return -1
		}
		return r
	}, s)
	return sign + s
}

// parseDecimal aceita apenas texto numérico; decimal.NewFromString já rejeita
// letras, separadores residuais e strings vazias.
func parseDecimal(s string) (d decimal.Decimal, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = decimal.Zero, errAmountPanic
		}
	}()
	s = strings.TrimPrefix(s, "+")
	return decimal.NewFromString(s)
}

// FormatAmount formata com exatamente duas casas, ponto decimal e sinal prefixado.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
