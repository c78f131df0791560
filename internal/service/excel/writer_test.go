package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/service/excel"
)

func TestWriterProducesSingleSheet(t *testing.T) {
	t.Parallel()

	rows := []model.CanonicalRow{
		{ClassName: "10A1", Session: "S", Period: 1, Days: [model.DayCount]string{"TOÁN", "NGỮ VĂN"}},
		{ClassName: "10A1", Session: "S", Period: 2},
	}
	data, err := excel.NewWriter(excel.WriterOptions{}).WriteToBytes(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{model.OutputSheetName}, f.GetSheetList())

	header, err := f.GetRows(model.OutputSheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(header), 3)
	assert.Equal(t, model.OutputHeader(), header[0])

	get := func(cell string) string {
		v, err := f.GetCellValue(model.OutputSheetName, cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "10A1", get("A2"))
	assert.Equal(t, "S", get("B2"))
	assert.Equal(t, "1", get("C2"))
	assert.Equal(t, "TOÁN", get("D2"))
	assert.Equal(t, "NGỮ VĂN", get("E2"))
	assert.Equal(t, "2", get("C3"))
	assert.Equal(t, "", get("D3"))

	cellType, err := f.GetCellType(model.OutputSheetName, "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)

	widthA, err := f.GetColWidth(model.OutputSheetName, "A")
	require.NoError(t, err)
	assert.Equal(t, 12.0, widthA)
	widthJ, err := f.GetColWidth(model.OutputSheetName, "J")
	require.NoError(t, err)
	assert.Equal(t, 22.0, widthJ)
}

func TestWriterCustomSheetName(t *testing.T) {
	t.Parallel()

	data, err := excel.NewWriter(excel.WriterOptions{SheetName: "Xuất"}).WriteToBytes(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Xuất"}, f.GetSheetList())
}
