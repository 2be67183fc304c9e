package converter

import (
	"time"

	"ofx-converter/internal/domain"

	"github.com/shopspring/decimal"
)

// RecordBuilder transforma cada linha em transação aceita ou em diagnóstico de descarte.
// Não guarda estado entre linhas.
type RecordBuilder struct {
	columns domain.ColumnMapping
	ids     *IdentifierGenerator
}

// NewRecordBuilder monta o builder a partir de uma configuração já validada.
func NewRecordBuilder(cfg domain.ConversionConfig) *RecordBuilder {
	return &RecordBuilder{
		columns: cfg.Columns,
		ids:     NewIdentifierGenerator(cfg.Columns.ID, cfg.AutoGenerateID),
	}
}

// Build processa uma linha. Exatamente um dos retornos é não nulo.
// Pânicos internos viram descarte com o motivo mais específico conhecido.
func (b *RecordBuilder) Build(row domain.RawRow) (tx *domain.NormalizedTransaction, skip *domain.SkipDiagnostic) {
	memo := ""
	dateOK := false

	defer func() {
		if r := recover(); r != nil {
			reason := domain.ReasonInvalidAmount
			if !dateOK {
				reason = domain.ReasonInvalidDate
			}
			tx, skip = nil, &domain.SkipDiagnostic{RowIndex: row.Index, Reason: reason, Memo: memo}
		}
	}()

	if b.columns.Memo != "" {
		memo = cellString(row.Get(b.columns.Memo))
	}

	posted, dateOK := ParseDate(row.Get(b.columns.Date), b.columns.DateFormat)
	amount, amountOK := ParseAmount(row.Get(b.columns.Amount))

	switch {
	case !dateOK:
		return nil, &domain.SkipDiagnostic{RowIndex: row.Index, Reason: domain.ReasonInvalidDate, Memo: memo}
	case !amountOK:
		return nil, &domain.SkipDiagnostic{RowIndex: row.Index, Reason: domain.ReasonInvalidAmount, Memo: memo}
	}

	return b.accept(row, posted, amount, memo), nil
}

func (b *RecordBuilder) accept(row domain.RawRow, posted time.Time, amount decimal.Decimal, memo string) *domain.NormalizedTransaction {
	trnType := ResolveType(row.Get(b.columns.Type), b.columns.Type != "", amount)
	return &domain.NormalizedTransaction{
		RowIndex:   row.Index,
		PostedDate: posted,
		Posted:     FormatPostedDate(posted),
		Amount:     amount,
		AmountText: FormatAmount(amount),
		Type:       trnType,
		ID:         b.ids.Generate(row, posted, amount, memo),
		Memo:       memo,
	}
}

// BuildAll percorre a tabela em ordem, separando aceitas e descartadas.
func (b *RecordBuilder) BuildAll(table *domain.Table) ([]domain.NormalizedTransaction, []domain.SkipDiagnostic) {
	txs := make([]domain.NormalizedTransaction, 0, len(table.Rows))
	var skipped []domain.SkipDiagnostic
	for _, row := range table.Rows {
		tx, skip := b.Build(row)
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}
		txs = append(txs, *tx)
	}
	return txs, skipped
}
