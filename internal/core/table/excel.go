package table

import (
	"bytes"
	"fmt"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// readXLSX lê a primeira planilha com valores brutos, de modo que datas chegam
// como seriais do Excel e não no formato de exibição da célula.
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo .xlsx: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("o arquivo .xlsx não contém planilhas")
	}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("erro ao ler linhas do arquivo .xlsx: %w", err)
	}
	return rows, nil
}

// readXLS lê a primeira planilha de um arquivo BIFF (.xls).
func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		// arquivo .xls que na verdade é xlsx
		if rows, errX := readXLSX(data); errX == nil {
			return rows, nil
		}
		return nil, fmt.Errorf("erro ao abrir arquivo .xls: %w", err)
	}
	if len(workbook.GetSheets()) == 0 {
		return nil, fmt.Errorf("o arquivo .xls não contém planilhas")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
	}

	var rows [][]string
	for _, row := range sheet.GetRows() {
		var record []string
		for _, cell := range row.GetCols() {
			record = append(record, cell.GetString())
		}
		rows = append(rows, record)
	}
	return rows, nil
}
