package excel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/service/excel"
)

func TestRecognizeWorkbookAndPickSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t,
		sheetData{name: "Ghi chú", rows: [][]any{{"Học kỳ I"}}},
		sheetData{name: "Theo lớp", rows: [][]any{
			{"Lớp", "Buổi", "Tiết"},
			{"10A1", "S", 1, "Toán"},
			{"10A2", "S", 1, "Văn"},
		}},
		sheetData{name: "TKB", rows: [][]any{
			{"Ngày", "Tiết", "10A1", "10A2"},
			{"", "", "S", "S"},
			{"Thứ 2", 1, "Toán", "Văn"},
		}},
	)
	wb, err := excel.Open(data, "tkb.xlsx")
	require.NoError(t, err)

	result := excel.NewRecognizer().RecognizeWorkbook(wb)
	require.Len(t, result, 3)
	assert.Equal(t, model.LayoutUnknown, result["Ghi chú"].Layout)
	assert.Equal(t, model.LayoutRowWise, result["Theo lớp"].Layout)
	assert.Equal(t, model.LayoutGrid, result["TKB"].Layout)
	assert.Equal(t, 0, result["TKB"].HeaderRow)
	assert.Equal(t, []string{"10A1", "10A2"}, result["TKB"].Classes)

	assert.Equal(t, "TKB", excel.PickSheet(wb, result, ""))
	assert.Equal(t, "Theo lớp", excel.PickSheet(wb, result, "Theo lớp"))
	assert.Equal(t, "TKB", excel.PickSheet(wb, result, "Không có"))
}
