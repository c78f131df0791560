package excel_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

type sheetData struct {
	name string
	rows [][]any
}

// buildWorkbook 按顺序生成工作簿并序列化为 .xlsx 字节
func buildWorkbook(t *testing.T, sheets ...sheetData) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := wb.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("SetSheetName %s failed: %v", s.name, err)
			}
		} else if _, err := wb.NewSheet(s.name); err != nil {
			t.Fatalf("NewSheet %s failed: %v", s.name, err)
		}
		for r, row := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			values := row
			if err := wb.SetSheetRow(s.name, cell, &values); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", s.name, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return buf.Bytes()
}
