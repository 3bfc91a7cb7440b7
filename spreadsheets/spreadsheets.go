package spreadsheets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RobotRow はスプレッドシートから読み込んだ1行分のロボット情報です。
type RobotRow struct {
	Name   string
	Power  float64
	Speed  float64
	Weight float64
}

var (
	// シートが複数ある場合のエラー（1シートに統合してもらう）
	ErrMultipleSheets = errors.New("spreadsheet contains more than one sheet")
	// 対応していない拡張子
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// ReadRobotRows はアップロードされたスプレッドシートからロボット情報を読み込みます。
// 拡張子により.xlsxと.csvを判別します。1行目はヘッダー行として扱います。
func ReadRobotRows(filename string, r io.Reader) ([]RobotRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readXLSX(r io.Reader) ([]RobotRow, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) > 1 {
		return nil, ErrMultipleSheets
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	return parseRows(rows)
}

func readCSV(r io.Reader) ([]RobotRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 列数はヘッダー行で検証する

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return parseRows(rows)
}

// parseRows はヘッダー行から列位置を特定し、各行をRobotRowに変換します。
func parseRows(rows [][]string) ([]RobotRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	columns := map[string]int{}
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"name", "power", "speed", "weight"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("spreadsheet is missing required column %q", required)
		}
	}

	robotRows := make([]RobotRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cell := func(name string) string {
			index := columns[name]
			if index >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[index])
		}

		// 空行は読み飛ばす
		if cell("name") == "" && cell("power") == "" && cell("speed") == "" && cell("weight") == "" {
			continue
		}

		power, err := strconv.ParseFloat(cell("power"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid power value %q", i+2, cell("power"))
		}
		speed, err := strconv.ParseFloat(cell("speed"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid speed value %q", i+2, cell("speed"))
		}
		weight, err := strconv.ParseFloat(cell("weight"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid weight value %q", i+2, cell("weight"))
		}

		robotRows = append(robotRows, RobotRow{
			Name:   cell("name"),
			Power:  power,
			Speed:  speed,
			Weight: weight,
		})
	}

	return robotRows, nil
}
