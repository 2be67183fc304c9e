package converter

import (
	"testing"
	"time"

	"ofx-converter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.February, 1, 9, 8, 7, 0, time.UTC)
}

func TestAssembleEmpty(t *testing.T) {
	_, err := NewAssembler(fixedClock).Assemble(nil, statementConfig().Account)
	assert.ErrorIs(t, err, domain.ErrNoValidTransactions)
}

func TestAssembleRangeAndOrder(t *testing.T) {
	txs := []domain.NormalizedTransaction{
		{Posted: "20240110", ID: "a"},
		{Posted: "20231231", ID: "b"},
		{Posted: "20240105", ID: "c"},
	}
	doc, err := NewAssembler(fixedClock).Assemble(txs, statementConfig().Account)
	require.NoError(t, err)

	assert.Equal(t, "20231231", doc.RangeStart)
	assert.Equal(t, "20240110", doc.RangeEnd)
	assert.Equal(t, "20240201090807", doc.GeneratedAt)
	assert.Equal(t, "BRL", doc.Currency)
	assert.Equal(t, domain.Checking, doc.AcctType)

	ids := make([]string, 0, len(doc.Transactions))
	for _, tx := range doc.Transactions {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestAssembleSingleTransaction(t *testing.T) {
	doc, err := NewAssembler(nil).Assemble([]domain.NormalizedTransaction{{Posted: "20240105"}}, domain.AccountConfig{})
	require.NoError(t, err)
	assert.Equal(t, doc.RangeStart, doc.RangeEnd)
	assert.Len(t, doc.GeneratedAt, 14)
}
