// package domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType defines the OFX TRNTYPE of a statement entry.
type TransactionType string

// Constants for transaction types.
const (
	Credit TransactionType = "CREDIT"
	Debit  TransactionType = "DEBIT"
)

// AccountType defines the OFX ACCTTYPE of the statement account.
type AccountType string

// Constants for supported account types.
const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditLine AccountType = "CREDITLINE"
)

// AccountTypes lists the account types accepted in BANKACCTFROM.
var AccountTypes = []AccountType{Checking, Savings, CreditLine}

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SkipReason explains why a row did not become a transaction.
type SkipReason string

// Constants for skip reasons.
const (
	ReasonInvalidDate   SkipReason = "invalid-date"
	ReasonInvalidAmount SkipReason = "invalid-amount"
)

// Cell is an untyped spreadsheet value: nil (missing), string, float64 or an integer.
type Cell any

// RawRow is one input row. Values maps column name to cell; Index is the
// zero-based position of the row among the data rows of the table.
type RawRow struct {
	Index  int
	Values map[string]Cell
}

// Get returns the cell stored under column, or nil when the column is absent.
func (r RawRow) Get(column string) Cell {
	if r.Values == nil {
		return nil
	}
	return r.Values[column]
}

// Table is the in-memory statement handed over by the tabular loader.
type Table struct {
	Columns []string
	Rows    []RawRow
}

// HasColumn reports whether name is one of the table columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Head returns a table with at most n rows and the same columns.
func (t *Table) Head(n int) *Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// ColumnMapping names the columns that feed each transaction field.
// An empty string means the role is not selected.
type ColumnMapping struct {
	Date       string `json:"date" yaml:"date"`
	Amount     string `json:"amount" yaml:"amount"`
	Memo       string `json:"memo" yaml:"memo"`
	ID         string `json:"id,omitempty" yaml:"id"`
	Type       string `json:"type,omitempty" yaml:"type"`
	DateFormat string `json:"date_format,omitempty" yaml:"date_format"`
}

// AccountConfig identifies the account the statement belongs to.
type AccountConfig struct {
	Currency string      `json:"currency" yaml:"currency"`
	BankID   string      `json:"bank_id" yaml:"bank_id"`
	AcctID   string      `json:"acct_id" yaml:"acct_id"`
	AcctType AccountType `json:"acct_type" yaml:"acct_type"`
}

// ConversionConfig is the full, immutable input of one conversion run.
type ConversionConfig struct {
	Account        AccountConfig
	Columns        ColumnMapping
	AutoGenerateID bool
	// Charset of the produced bytes: "utf-8" (default) or "cp1252".
	Charset string
}

// NormalizedTransaction is one accepted statement entry.
type NormalizedTransaction struct {
	RowIndex   int
	PostedDate time.Time
	// Posted is PostedDate formatted as YYYYMMDD.
	Posted string
	Amount decimal.Decimal
	// AmountText is Amount with exactly two fraction digits.
	AmountText string
	Type       TransactionType
	ID         string
	Memo       string
}

// SkipDiagnostic records a row that failed normalization.
type SkipDiagnostic struct {
	RowIndex int        `json:"row_index"`
	Reason   SkipReason `json:"reason"`
	Memo     string     `json:"memo"`
}

// StatementDocument is the assembled statement, ready for serialization.
type StatementDocument struct {
	Currency     string
	BankID       string
	AcctID       string
	AcctType     AccountType
	RangeStart   string
	RangeEnd     string
	Transactions []NormalizedTransaction
	// GeneratedAt is the assembly time formatted as YYYYMMDDHHMMSS.
	GeneratedAt string
}

// ConversionResult is what a conversion run hands back to its caller.
type ConversionResult struct {
	Document  []byte
	Statement *StatementDocument
	Count     int
	Skipped   []SkipDiagnostic
	FileName  string
}

// Preview holds the first rows of an uploaded table and a suggested mapping.
type Preview struct {
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	TotalRows int              `json:"total_rows"`
	Suggested ColumnMapping    `json:"suggested_mapping"`
}
