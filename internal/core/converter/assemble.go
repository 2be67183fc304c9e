package converter

import (
	"time"

	"ofx-converter/internal/domain"
)

// generatedAtLayout é o formato YYYYMMDDHHMMSS do DTSERVER.
const generatedAtLayout = "20060102150405"

// Assembler agrupa as transações aceitas em um StatementDocument.
type Assembler struct {
	now func() time.Time
}

// NewAssembler usa o relógio informado; nil significa time.Now.
func NewAssembler(now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{now: now}
}

// Assemble calcula o intervalo coberto e carimba a data de geração.
// As transações mantêm a ordem das linhas de origem.
func (a *Assembler) Assemble(txs []domain.NormalizedTransaction, account domain.AccountConfig) (*domain.StatementDocument, error) {
	if len(txs) == 0 {
		return nil, domain.ErrNoValidTransactions
	}

	// YYYYMMDD tem largura fixa, então a ordem lexicográfica é a cronológica
	start, end := txs[0].Posted, txs[0].Posted
	for _, tx := range txs[1:] {
		if tx.Posted < start {
			start = tx.Posted
		}
		if tx.Posted > end {
			end = tx.Posted
		}
	}

	ordered := make([]domain.NormalizedTransaction, len(txs))
	copy(ordered, txs)

	return &domain.StatementDocument{
		Currency:     account.Currency,
		BankID:       account.BankID,
		AcctID:       account.AcctID,
		AcctType:     account.AcctType,
		RangeStart:   start,
		RangeEnd:     end,
		Transactions: ordered,
		GeneratedAt:  a.now().Format(generatedAtLayout),
	}, nil
}
