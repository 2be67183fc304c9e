package converter

import (
	"strconv"
	"strings"
	"time"

	"ofx-converter/internal/domain"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fallbackHashModulus limita a parte de hash do FITID determinístico.
const fallbackHashModulus = 10_000_000

// IdentifierGenerator produz o FITID de cada transação.
type IdentifierGenerator struct {
	column       string
	autoGenerate bool
	newToken     func() string
}

// NewIdentifierGenerator cria o gerador. column vazio significa "sem coluna de ID".
func NewIdentifierGenerator(column string, autoGenerate bool) *IdentifierGenerator {
	return &IdentifierGenerator{
		column:       column,
		autoGenerate: autoGenerate,
		newToken:     randomToken,
	}
}

// Generate aplica a prioridade: coluna explícita, token aleatório, fallback
// determinístico "<unix>-<hash>". O texto da coluna é usado sem alteração; uma
// célula de ID ausente cai para a próxima regra.
func (g *IdentifierGenerator) Generate(row domain.RawRow, posted time.Time, amount decimal.Decimal, memo string) string {
	if g.column != "" {
		if id, ok := cellText(row.Get(g.column)); ok {
			return id
		}
	}
	if g.autoGenerate {
		return g.newToken()
	}
	return FallbackIdentifier(posted, amount, memo)
}

// FallbackIdentifier não é único entre linhas com mesma data, valor e memo.
func FallbackIdentifier(posted time.Time, amount decimal.Decimal, memo string) string {
	h := xxhash.New()
	_, _ = h.WriteString(FormatAmount(amount))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(memo)
	bucket := h.Sum64() % fallbackHashModulus
	return strconv.FormatInt(posted.Unix(), 10) + "-" + strconv.FormatUint(bucket, 10)
}

// randomToken devolve 128 bits aleatórios em 32 caracteres hexadecimais.
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
