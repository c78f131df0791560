package main

import (
	"fmt"
	"os"
	"path/filepath"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/service/excel"
)

// loadedSheet 已读取的一个工作表
type loadedSheet struct {
	path        string
	sheet       string
	grid        model.Grid
	workbook    *excel.Workbook
	recognition map[string]model.SheetRecognition
}

// loadSheet 读取文件并选择工作表；sheet 为空时自动选择，显式指定但不存在时报错
func loadSheet(path, sheet string) (*loadedSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	wb, err := excel.Open(data, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	recognition := excel.NewRecognizer().RecognizeWorkbook(wb)
	if sheet == "" {
		sheet = excel.PickSheet(wb, recognition, "")
	}
	grid, err := wb.Grid(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &loadedSheet{
		path:        path,
		sheet:       sheet,
		grid:        grid,
		workbook:    wb,
		recognition: recognition,
	}, nil
}
