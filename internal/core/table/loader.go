// Package table carrega extratos tabulares (CSV, XLSX, XLS) em memória.
package table

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"ofx-converter/internal/domain"
)

// Format identifica o tipo de arquivo de entrada.
type Format string

// Constants for supported input formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatXLSB Format = "xlsb"
)

// DefaultFormats são os formatos com leitor disponível. XLSB é reconhecido mas
// não tem leitor.
var DefaultFormats = []Format{FormatCSV, FormatXLSX, FormatXLS}

// Loader lê um arquivo inteiro para um domain.Table. O conjunto de formatos
// habilitados é fixo após a criação.
type Loader struct {
	enabled map[Format]bool
}

// NewLoader habilita os formatos informados; sem argumentos usa DefaultFormats.
func NewLoader(formats ...Format) *Loader {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	enabled := make(map[Format]bool, len(formats))
	for _, f := range formats {
		if f == FormatXLSB {
			continue
		}
		enabled[f] = true
	}
	return &Loader{enabled: enabled}
}

// Enabled informa se o formato pode ser carregado.
func (l *Loader) Enabled(f Format) bool {
	return l.enabled[f]
}

// DetectFormat usa a extensão do nome e, sem extensão conhecida, a assinatura do conteúdo.
func DetectFormat(filename string, head []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	case ".xlsb":
		return FormatXLSB, nil
	}
	switch {
	case bytes.HasPrefix(head, []byte{0x50, 0x4B, 0x03, 0x04}):
		return FormatXLSX, nil
	case bytes.HasPrefix(head, []byte{0xD0, 0xCF, 0x11, 0xE0}):
		return FormatXLS, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filename)
}

// Load lê todo o conteúdo de r e monta a tabela. A primeira linha não vazia é o cabeçalho.
func (l *Loader) Load(r io.Reader, filename string) (*domain.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo: %w", err)
	}
	format, err := DetectFormat(filename, data)
	if err != nil {
		return nil, err
	}
	if !l.Enabled(format) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}

	var records [][]string
	switch format {
	case FormatCSV:
		records, err = readCSV(data)
	case FormatXLSX:
		records, err = readXLSX(data)
	case FormatXLS:
		records, err = readXLS(data)
	}
	if err != nil {
		return nil, err
	}
	return buildTable(records), nil
}

// buildTable converte registros em tabela: células vazias viram nil. Linhas em
// branco antes do cabeçalho são ignoradas; depois dele são mantidas, para que
// apareçam nos diagnósticos e o índice de cada linha aponte para a origem.
func buildTable(records [][]string) *domain.Table {
	start := 0
	for start < len(records) && blankRecord(records[start]) {
		start++
	}
	if start == len(records) {
		return &domain.Table{}
	}

	columns := headerNames(records[start])
	t := &domain.Table{Columns: columns}
	for idx, rec := range records[start+1:] {
		values := make(map[string]domain.Cell, len(columns))
		for i, name := range columns {
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				values[name] = rec[i]
			} else {
				values[name] = nil
			}
		}
		t.Rows = append(t.Rows, domain.RawRow{Index: idx, Values: values})
	}
	return t
}

// headerNames garante nomes não vazios e únicos, preservando a ordem.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if seen[name] > 0 {
			base := name
			for n := seen[base]; ; n++ {
				candidate := base + "." + strconv.Itoa(n)
				if seen[candidate] == 0 {
					name = candidate
					break
				}
			}
			seen[base]++
		}
		seen[name]++
		names[i] = name
	}
	return names
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
