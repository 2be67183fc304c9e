package domain

import (
	"errors"
	"strings"
)

// ErrNoValidTransactions is returned when no row survived normalization.
var ErrNoValidTransactions = errors.New("nenhuma transação válida encontrada com o mapeamento atual")

// ErrUnsupportedFormat is returned for file types the loader is not enabled for.
var ErrUnsupportedFormat = errors.New("formato não suportado")

// ConfigurationError lists the configuration problems found before any row
// was processed. Missing holds unmapped required roles; Invalid holds values
// that were provided but cannot be used.
type ConfigurationError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "selecione as colunas obrigatórias: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "configuração inválida: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// Empty reports whether no problem was recorded.
func (e *ConfigurationError) Empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

// Messages returns every problem as a flat list, missing roles first.
func (e *ConfigurationError) Messages() []string {
	out := make([]string, 0, len(e.Missing)+len(e.Invalid))
	for _, m := range e.Missing {
		out = append(out, "coluna obrigatória não mapeada: "+m)
	}
	return append(out, e.Invalid...)
}
