package excel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/service/excel"
)

func TestReadXLSX(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t,
		sheetData{name: "Ghi chú", rows: [][]any{{"Học kỳ I"}}},
		sheetData{name: "TKB", rows: [][]any{
			{"Ngày", "Tiết", "10A1"},
			{"", "", "S"},
			{"Thứ 2", 1, "Toán"},
		}},
	)

	wb, err := excel.Open(data, "tkb.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ghi chú", "TKB"}, wb.SheetNames())

	grid, err := wb.Grid("TKB")
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, "Ngày", grid.Text(0, 0))
	assert.True(t, grid.At(1, 0).IsBlank())
	assert.Equal(t, model.CellNumber, grid.At(2, 1).Kind)
	assert.Equal(t, 1.0, grid.At(2, 1).Number)
	assert.Equal(t, "Toán", grid.Text(2, 2))

	first, err := wb.Grid("")
	require.NoError(t, err)
	assert.Equal(t, "Học kỳ I", first.Text(0, 0))
}

func TestWorkbookGridMissingSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, sheetData{name: "TKB", rows: [][]any{{"x"}}})
	wb, err := excel.Open(data, "tkb.xlsx")
	require.NoError(t, err)
	_, err = wb.Grid("Khác")
	assert.True(t, errors.Is(err, excel.ErrSheetNotFound))
}

func TestOpenUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := excel.Open([]byte("lop,buoi,tiet\n"), "tkb.csv")
	assert.True(t, errors.Is(err, excel.ErrUnsupportedFormat))
}
