package converter

import (
	"fmt"
	"strings"

	"ofx-converter/internal/core/ofx"
	"ofx-converter/internal/domain"
)

// ValidateConfig confere a configuração contra as colunas da tabela antes de
// qualquer linha ser processada. Retorna nil ou *domain.ConfigurationError.
func ValidateConfig(cfg domain.ConversionConfig, columns []string) error {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	cfgErr := &domain.ConfigurationError{}
	required := []struct{ role, column string }{
		{"date", cfg.Columns.Date},
		{"amount", cfg.Columns.Amount},
		{"memo", cfg.Columns.Memo},
	}
	for _, r := range required {
		switch {
		case strings.TrimSpace(r.column) == "":
			cfgErr.Missing = append(cfgErr.Missing, r.role)
		case !known[r.column]:
			cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("coluna %q (%s) não existe no arquivo", r.column, r.role))
		}
	}

	optional := []struct{ role, column string }{
		{"id", cfg.Columns.ID},
		{"type", cfg.Columns.Type},
	}
	for _, o := range optional {
		if o.column != "" && !known[o.column] {
			cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("coluna %q (%s) não existe no arquivo", o.column, o.role))
		}
	}

	if !cfg.Account.AcctType.Valid() {
		cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("tipo de conta inválido: %q", cfg.Account.AcctType))
	}
	if strings.TrimSpace(cfg.Columns.DateFormat) != "" {
		if _, err := ConvertDatePattern(cfg.Columns.DateFormat); err != nil {
			cfgErr.Invalid = append(cfgErr.Invalid, err.Error())
		}
	}
	if _, ok := ofx.CanonicalCharset(cfg.Charset); !ok {
		cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("charset não suportado: %q", cfg.Charset))
	}

	if cfgErr.Empty() {
		return nil
	}
	return cfgErr
}
