package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// csvSeparators em ordem de preferência para empates.
var csvSeparators = []rune{',', ';', '\t', '|'}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV decodifica o conteúdo (UTF-8 ou, se inválido, Windows-1252), escolhe o
// separador e devolve todos os registros.
func readCSV(data []byte) ([][]string, error) {
	text, err := decodeCSV(data)
	if err != nil {
		return nil, err
	}
	sep := sniffSeparator(text)

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = sep
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler CSV: %w", err)
	}
	return records, nil
}

func decodeCSV(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("erro ao decodificar CSV: %w", err)
	}
	return decoded, nil
}

// sniffSeparator escolhe o separador que produz mais colunas no cabeçalho.
func sniffSeparator(text []byte) rune {
	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	best, bestCount := csvSeparators[0], 0
	for _, sep := range csvSeparators {
		r := csv.NewReader(bytes.NewReader(line))
		r.Comma = sep
		r.LazyQuotes = true
		fields, err := r.Read()
		if err != nil {
			continue
		}
		if len(fields) > bestCount {
			best, bestCount = sep, len(fields)
		}
	}
	return best
}
