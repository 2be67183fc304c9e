package converter

import (
	"testing"

	"ofx-converter/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Cell
		want string
	}{
		{"moeda e milhar brasileiro", "R$ 1.234,56", "1234.56"},
		{"milhar ponto decimal virgula", "1.234,56", "1234.56"},
		{"ponto decimal", "1234.56", "1234.56"},
		{"virgula decimal", "50,00", "50"},
		{"ponto unico nunca e milhar", "1.234", "1.234"},
		{"negativo com moeda", "-R$ 50,00", "-50"},
		{"espacos internos", " 1 000,25 ", "1000.25"},
		{"espaco nao separavel", "2\u00a0500,10", "2500.1"},
		{"dolar", "US$ 12.50", "12.5"},
		{"sinal positivo", "+7,5", "7.5"},
		{"celula numerica", 12.5, "12.5"},
		{"celula inteira", 42, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			require.True(t, ok)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, want.Equal(got), "want %s, got %s", want, got)
		})
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, in := range []domain.Cell{nil, "", "   ", "abc", "R$", "12,34,56"} {
		_, ok := ParseAmount(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1000.00", FormatAmount(decimal.RequireFromString("1000")))
	assert.Equal(t, "-50.00", FormatAmount(decimal.RequireFromString("-50")))
	assert.Equal(t, "1.23", FormatAmount(decimal.RequireFromString("1.234")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
