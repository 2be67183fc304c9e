package converter

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"ofx-converter/internal/core/table"
	"ofx-converter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeRowTable: uma data inválida, um crédito pelo sinal e um débito pelo indicador.
func threeRowTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"Data", "Valor", "Historico", "Doc", "Tipo"},
		Rows: []domain.RawRow{
			row(0, map[string]domain.Cell{"Data": "sem data", "Valor": "10,00", "Historico": "quebrada", "Doc": "1", "Tipo": nil}),
			row(1, map[string]domain.Cell{"Data": "05/01/2024", "Valor": "1.000,00", "Historico": "Salario", "Doc": "2", "Tipo": nil}),
			row(2, map[string]domain.Cell{"Data": "05/01/2024", "Valor": "50,00", "Historico": "Tarifa", "Doc": "3", "Tipo": "DEBIT"}),
		},
	}
}

func newTestService(now time.Time) Service {
	return NewService(WithClock(func() time.Time { return now }))
}

func TestConvertTableEndToEnd(t *testing.T) {
	svc := newTestService(fixedClock())
	result, err := svc.ConvertTable(threeRowTable(), statementConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, domain.SkipDiagnostic{RowIndex: 0, Reason: domain.ReasonInvalidDate, Memo: "quebrada"}, result.Skipped[0])

	doc := result.Statement
	assert.Equal(t, doc.RangeStart, doc.RangeEnd)
	assert.Equal(t, "20240105", doc.RangeStart)
	assert.Equal(t, "export_0000000000_20240105_20240105.ofx", result.FileName)

	require.Len(t, doc.Transactions, 2)
	assert.Equal(t, domain.Credit, doc.Transactions[0].Type)
	assert.Equal(t, "1000.00", doc.Transactions[0].AmountText)
	assert.Equal(t, domain.Debit, doc.Transactions[1].Type)
	assert.Equal(t, "50.00", doc.Transactions[1].AmountText)

	text := string(result.Document)
	assert.Contains(t, text, "<DTSERVER>20240201090807</DTSERVER>")
	assert.Contains(t, text, "            <TRNAMT>1000.00\n")
	assert.Contains(t, text, "            <TRNTYPE>DEBIT\n")
}

var dtServerLine = regexp.MustCompile(`<DTSERVER>\d{14}</DTSERVER>`)

func TestConvertTableIsIdempotentExceptServerTime(t *testing.T) {
	cfg := statementConfig()
	cfg.AutoGenerateID = false

	first, err := newTestService(fixedClock()).ConvertTable(threeRowTable(), cfg)
	require.NoError(t, err)
	second, err := newTestService(fixedClock().Add(90*time.Minute)).ConvertTable(threeRowTable(), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, first.Document, second.Document)
	strip := func(b []byte) []byte { return dtServerLine.ReplaceAll(b, []byte("<DTSERVER></DTSERVER>")) }
	assert.Equal(t, strip(first.Document), strip(second.Document))
}

func TestConvertTableOneEntryPerTransaction(t *testing.T) {
	result, err := newTestService(fixedClock()).ConvertTable(threeRowTable(), statementConfig())
	require.NoError(t, err)

	text := string(result.Document)
	assert.Equal(t, result.Count, strings.Count(text, "<STMTTRN>"))
	assert.Equal(t, result.Count, strings.Count(text, "</STMTTRN>"))
	assert.Less(t, strings.Index(text, "<FITID>2\n"), strings.Index(text, "<FITID>3\n"))
}

func TestConvertTableErrors(t *testing.T) {
	svc := newTestService(fixedClock())

	t.Run("configuracao", func(t *testing.T) {
		cfg := statementConfig()
		cfg.Columns.Amount = ""
		_, err := svc.ConvertTable(threeRowTable(), cfg)
		var cfgErr *domain.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, []string{"amount"}, cfgErr.Missing)
	})

	t.Run("nenhuma transacao", func(t *testing.T) {
		tbl := threeRowTable()
		tbl.Rows = tbl.Rows[:1]
		_, err := svc.ConvertTable(tbl, statementConfig())
		assert.ErrorIs(t, err, domain.ErrNoValidTransactions)
	})
}

func TestConvertTableCP1252(t *testing.T) {
	cfg := statementConfig()
	cfg.Charset = "cp1252"
	tbl := threeRowTable()
	tbl.Rows[1].Values["Historico"] = "Salário"

	result, err := newTestService(fixedClock()).ConvertTable(tbl, cfg)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(result.Document, []byte("<MEMO>Sal\xe1rio\n")))
}

const sampleCSV = "Data;Histórico;Valor;Tipo\n" +
	"05/01/2024;Depósito;1.500,00;\n" +
	"06/01/2024;Tarifa;-12,90;D\n" +
	";;;\n" +
	"xx;Quebrada;1,00;\n"

func TestConvertFile(t *testing.T) {
	cfg := statementConfig()
	cfg.Columns = domain.ColumnMapping{Date: "Data", Amount: "Valor", Memo: "Histórico", Type: "Tipo"}
	cfg.AutoGenerateID = true

	result, err := newTestService(fixedClock()).ConvertFile(strings.NewReader(sampleCSV), "extrato.csv", cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []domain.SkipDiagnostic{
		{RowIndex: 2, Reason: domain.ReasonInvalidDate, Memo: ""},
		{RowIndex: 3, Reason: domain.ReasonInvalidDate, Memo: "Quebrada"},
	}, result.Skipped)
	assert.Equal(t, "20240105", result.Statement.RangeStart)
	assert.Equal(t, "20240106", result.Statement.RangeEnd)
	assert.Equal(t, domain.Debit, result.Statement.Transactions[1].Type)
	assert.Regexp(t, `^[0-9a-f]{32}$`, result.Statement.Transactions[0].ID)
}

func TestConvertTableDateWithoutYear(t *testing.T) {
	fixYear(t, 2024)
	tbl := threeRowTable()
	tbl.Rows[0].Values["Data"] = "05/01"
	tbl.Rows[1].Values["Data"] = "06/01/2024"
	tbl.Rows = tbl.Rows[:2]

	result, err := newTestService(fixedClock()).ConvertTable(tbl, statementConfig())
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "20240105", result.Statement.RangeStart)
	assert.Equal(t, "20240106", result.Statement.RangeEnd)
	assert.Contains(t, string(result.Document), "<DTPOSTED>20240105\n")
	assert.NotContains(t, string(result.Document), "<DTPOSTED>0000")
}

func TestConvertFileUnsupportedFormat(t *testing.T) {
	svc := NewService(WithLoader(table.NewLoader(table.FormatCSV)))
	_, err := svc.ConvertFile(strings.NewReader("x"), "extrato.xlsb", statementConfig())
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestPreviewFile(t *testing.T) {
	var b strings.Builder
	b.WriteString("Data,Descrição,Valor\n")
	for i := 1; i <= 12; i++ {
		b.WriteString("05/01/2024,item,1.00\n")
	}

	preview, err := NewService().PreviewFile(strings.NewReader(b.String()), "extrato.csv", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data", "Descrição", "Valor"}, preview.Columns)
	assert.Len(t, preview.Rows, DefaultPreviewRows)
	assert.Equal(t, 12, preview.TotalRows)
	assert.Equal(t, "05/01/2024", preview.Rows[0]["Data"])
	assert.Equal(t, domain.ColumnMapping{Date: "Data", Amount: "Valor", Memo: "Descrição"}, preview.Suggested)
}
