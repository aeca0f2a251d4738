package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var header = []string{"Rank", "Resume ID", "Title", "Score", "Explanation"}

// Encode renders r in format f
func Encode(r *Report, f Format) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch f {
	case FormatCSV:
		b, err = encodeCSV(r)
	case FormatExcel:
		b, err = encodeExcel(r)
	case FormatJSON:
		b, err = json.MarshalIndent(r, "", "  ")
	default:
		return nil, ErrUnsupportedFormat(string(f))
	}
	if err != nil {
		return nil, ErrEncodeFailed(err)
	}
	return b, nil
}

func (row Row) record() []string {
	return []string{
		strconv.Itoa(row.Rank),
		row.ResumeID,
		row.Title,
		strconv.FormatFloat(row.Score, 'f', -1, 64),
		row.Explanation,
	}
}

func encodeCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range r.Rows {
		if err := w.Write(row.record()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

const (
	resultsSheet  = "Results"
	criteriaSheet = "Criteria"
)

func encodeExcel(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range r.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{row.Rank, row.ResumeID, row.Title, row.Score, row.Explanation}
		if err := f.SetSheetRow(resultsSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(criteriaSheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(criteriaSheet, "A1", "Criteria"); err != nil {
		return nil, err
	}
	for i, c := range r.Criteria {
		if err := f.SetCellValue(criteriaSheet, "A"+strconv.Itoa(i+2), c); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
