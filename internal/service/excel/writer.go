package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tkbvnedu/internal/model"
)

const (
	headerFill  = "#4F81BD"
	borderColor = "#CCCCCC"
	fixedWidth  = 12
	dayWidth    = 22
	rowHeight   = 24
)

// WriterOptions 输出工作簿选项
type WriterOptions struct {
	SheetName string
	FontName  string
}

// Writer TKB_VNEDU 工作簿写出器
type Writer struct {
	opts WriterOptions
}

// NewWriter 创建写出器，空选项使用默认值
func NewWriter(opts WriterOptions) *Writer {
	if opts.SheetName == "" {
		opts.SheetName = model.OutputSheetName
	}
	if opts.FontName == "" {
		opts.FontName = "Arial"
	}
	return &Writer{opts: opts}
}

// Build 生成只有一个工作表的工作簿：表头 + 标准行
func (w *Writer) Build(rows []model.CanonicalRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := w.opts.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := model.OutputHeader()
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row.Values()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := w.applyStyles(f, sheet, len(header), len(rows)+1); err != nil {
		return nil, err
	}
	return f, nil
}

func (w *Writer) applyStyles(f *excelize.File, sheet string, cols, lastRow int) error {
	border := []excelize.Border{
		{Type: "left", Color: borderColor, Style: 1},
		{Type: "top", Color: borderColor, Style: 1},
		{Type: "right", Color: borderColor, Style: 1},
		{Type: "bottom", Color: borderColor, Style: 1},
	}
	alignment := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: w.opts.FontName},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Border:    border,
		Alignment: alignment,
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: w.opts.FontName},
		Border:    border,
		Alignment: alignment,
	})
	if err != nil {
		return fmt.Errorf("body style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(cols)
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if lastRow > 1 {
		if err := f.SetCellStyle(sheet, "A2", fmt.Sprintf("%s%d", lastCol, lastRow), bodyStyle); err != nil {
			return err
		}
	}

	for r := 1; r <= lastRow; r++ {
		if err := f.SetRowHeight(sheet, r, rowHeight); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "C", fixedWidth); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "D", lastCol, dayWidth)
}

// WriteToBytes 生成工作簿并序列化为 .xlsx 字节
func (w *Writer) WriteToBytes(rows []model.CanonicalRow) ([]byte, error) {
	f, err := w.Build(rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
