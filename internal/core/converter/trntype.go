package converter

import (
	"strings"

	"ofx-converter/internal/domain"

	"github.com/shopspring/decimal"
)

// ResolveType decide CREDIT/DEBIT. O indicador é usado quando a coluna de tipo
// está selecionada e o texto é reconhecido; caso contrário vale o sinal do valor.
// "CREDIT"/"DEBIT" casam por substring, "CR"/"DR" só pelo token inteiro.
func ResolveType(indicator domain.Cell, selected bool, amount decimal.Decimal) domain.TransactionType {
	if selected {
		raw := strings.ToUpper(strings.TrimSpace(cellString(indicator)))
		switch {
		case strings.Contains(raw, "CREDIT") || raw == "CR":
			return domain.Credit
		case strings.Contains(raw, "DEBIT") || raw == "DR":
			return domain.Debit
		}
	}
	return typeFromSign(amount)
}

func typeFromSign(amount decimal.Decimal) domain.TransactionType {
	if amount.Sign() >= 0 {
		return domain.Credit
	}
	return domain.Debit
}
