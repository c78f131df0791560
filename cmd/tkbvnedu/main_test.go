package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"tkbvnedu/internal/config"
	"tkbvnedu/internal/model"
	"tkbvnedu/internal/store"
)

func testApp(t *testing.T, noDB bool) *app {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")
	return &app{cfg: cfg, noDB: noDB, logger: zap.NewNop()}
}

func writeWorkbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		values := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestConvertOptionsValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, convertOptions{out: "x.xlsx"}.validate())
	assert.Error(t, convertOptions{in: "a.xlsx", morning: "b.xlsx", out: "x.xlsx"}.validate())
	assert.NoError(t, convertOptions{in: "a.xlsx"}.validate())
	assert.NoError(t, convertOptions{in: "a.xlsx", out: "x.xlsx"}.validate())
	assert.NoError(t, convertOptions{afternoon: "b.xlsx", out: "x.xlsx"}.validate())
}

func TestRunConvertSingle(t *testing.T) {
	dir := t.TempDir()
	in := writeWorkbook(t, dir, "tkb.xlsx", [][]any{
		{"Ngày", "Tiết", "10A1"},
		{"", "", "S"},
		{"Thứ 2", 1, "Toán"},
		{"Thứ 3", 2, "Văn"},
	})
	outPath := filepath.Join(dir, "out.xlsx")

	a := testApp(t, false)
	var out bytes.Buffer
	require.NoError(t, runConvert(a, convertOptions{in: in, out: outPath}, &out))
	assert.Contains(t, out.String(), "Wrote 2 rows")

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(model.OutputSheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "TOÁN", v)
	v, err = f.GetCellValue(model.OutputSheetName, "E3")
	require.NoError(t, err)
	assert.Equal(t, "NGỮ VĂN", v)

	st, err := store.New(config.DBPath(a.cfg))
	require.NoError(t, err)
	defer st.Close()
	logs, err := st.ListConversionLogs(5)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "single", logs[0].Mode)
	assert.Equal(t, store.ConversionSuccess, logs[0].Status)
	last, err := st.GetConfig(store.ConfigLastOutputFile)
	require.NoError(t, err)
	assert.Equal(t, outPath, last)
}

func TestRunConvertDualInMemory(t *testing.T) {
	dir := t.TempDir()
	morning := writeWorkbook(t, dir, "sang.xlsx", [][]any{
		{"Ngày", "Tiết", "10A1"},
		{"", "", "Chiều"},
		{"Thứ 2", 1, "Toán"},
	})
	afternoon := writeWorkbook(t, dir, "chieu.xlsx", [][]any{
		{"Lớp", "Buổi", "Tiết", "T2"},
		{"10A1", "S", 1, "Lịch sử địa phương"},
		{"10A2", "S", 1, "Anh"},
	})
	outPath := filepath.Join(dir, "out.xlsx")

	a := testApp(t, true)
	var out bytes.Buffer
	require.NoError(t, runConvert(a, convertOptions{morning: morning, afternoon: afternoon, out: outPath}, &out))
	assert.Contains(t, out.String(), "Wrote 3 rows")
	assert.Contains(t, out.String(), "Lịch sử địa phương")

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	for cell, want := range map[string]string{"B2": "S", "B3": "C", "A4": "10A2"} {
		v, err := f.GetCellValue(model.OutputSheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, v, cell)
	}

	_, err = os.Stat(config.DBPath(a.cfg))
	assert.True(t, os.IsNotExist(err))
}

func TestRunConvertMissingSheet(t *testing.T) {
	dir := t.TempDir()
	in := writeWorkbook(t, dir, "tkb.xlsx", [][]any{{"x"}})

	err := runConvert(testApp(t, true), convertOptions{in: in, sheet: "Khác", out: filepath.Join(dir, "o.xlsx")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunInspect(t *testing.T) {
	dir := t.TempDir()
	in := writeWorkbook(t, dir, "tkb.xlsx", [][]any{
		{"Lớp", "Buổi", "Tiết", "T2"},
		{"10A1", "S", 1, "Toán"},
		{"10A2", "S", 1, "Tin tự chọn"},
	})

	var out bytes.Buffer
	require.NoError(t, runInspect(testApp(t, true), in, "", &out))
	assert.Contains(t, out.String(), "layout=row_wise")
	assert.Contains(t, out.String(), "Classes: 10A1, 10A2")
	assert.Contains(t, out.String(), "Toán -> TOÁN")
}

func TestNewServerHonoursNoDB(t *testing.T) {
	a := testApp(t, true)
	srv, closeFn, err := a.newServer()
	require.NoError(t, err)
	defer closeFn()

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":{}`)

	_, err = os.Stat(config.DBPath(a.cfg))
	assert.True(t, os.IsNotExist(err))
}

func TestNewServerOpensDatabase(t *testing.T) {
	a := testApp(t, false)
	srv, closeFn, err := a.newServer()
	require.NoError(t, err)
	defer closeFn()
	require.NotNil(t, srv)

	assert.FileExists(t, config.DBPath(a.cfg))
}

func TestRunConvertDefaultsToExportsDir(t *testing.T) {
	dir := t.TempDir()
	in := writeWorkbook(t, dir, "tkb.xlsx", [][]any{
		{"Lớp", "Buổi", "Tiết", "T2"},
		{"10A1", "S", 1, "Toán"},
		{"10A2", "S", 1, "Văn"},
	})

	a := testApp(t, true)
	var out bytes.Buffer
	require.NoError(t, runConvert(a, convertOptions{in: in}, &out))

	matches, err := filepath.Glob(config.ExportPath(a.cfg, "TKB_VNEDU_*.xlsx"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Contains(t, out.String(), matches[0])
}

func TestRunConfig(t *testing.T) {
	a := testApp(t, true)
	a.configPath = filepath.Join(t.TempDir(), config.FileName)
	a.cfg.Export.FilePrefix = "TKB_HK2"

	var out bytes.Buffer
	require.NoError(t, runConfig(a, false, &out))
	assert.Contains(t, out.String(), "not found")
	assert.Contains(t, out.String(), "TKB_HK2")
	assert.NoFileExists(t, a.configPath)

	out.Reset()
	require.NoError(t, runConfig(a, true, &out))
	loaded, info, err := config.LoadFile(a.configPath)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.Equal(t, "TKB_HK2", loaded.Export.FilePrefix)
}
