package excel

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"tkbvnedu/internal/model"
)

var (
	// ErrSheetNotFound 工作表不存在
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrUnsupportedFormat 无法识别的文件格式
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// oleMagic 旧版 .xls（OLE2 复合文档）文件头
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}

// xlsCharset BIFF5 及更早版本的字符集，BIFF8 字符串本身为 UTF-16
const xlsCharset = "utf-8"

// Workbook 已解码的工作簿：保留 sheet 顺序，每个 sheet 为一个单元格网格
type Workbook struct {
	FileName string
	sheets   []string
	grids    map[string]model.Grid
}

// Open 按文件名后缀与文件头解码 .xlsx / .xls
func Open(data []byte, filename string) (*Workbook, error) {
	switch {
	case isLegacyXLS(data, filename):
		return openXLS(data, filename)
	case len(data) >= 2 && data[0] == 'P' && data[1] == 'K':
		return openXLSX(data, filename)
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
}

func isLegacyXLS(data []byte, filename string) bool {
	if bytes.HasPrefix(data, oleMagic) {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".xls") && !bytes.HasPrefix(data, []byte("PK"))
}

func openXLSX(data []byte, filename string) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx %s: %w", filename, err)
	}
	defer f.Close()

	wb := &Workbook{FileName: filename, grids: make(map[string]model.Grid)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		wb.sheets = append(wb.sheets, name)
		wb.grids[name] = model.GridFromStrings(rows)
	}
	return wb, nil
}

func openXLS(data []byte, filename string) (*Workbook, error) {
	f, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, fmt.Errorf("open xls %s: %w", filename, err)
	}

	wb := &Workbook{FileName: filename, grids: make(map[string]model.Grid)}
	for i := 0; i < f.NumSheets(); i++ {
		sheet := f.GetSheet(i)
		if sheet == nil {
			continue
		}

		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}

		wb.sheets = append(wb.sheets, sheet.Name)
		wb.grids[sheet.Name] = model.GridFromStrings(rows)
	}
	return wb, nil
}

// SheetNames 工作表名称（按工作簿顺序）
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// Grid 返回指定工作表的网格；sheet 为空时取第一个工作表
func (w *Workbook) Grid(sheet string) (model.Grid, error) {
	if sheet == "" {
		if len(w.sheets) == 0 {
			return nil, ErrSheetNotFound
		}
		sheet = w.sheets[0]
	}
	g, ok := w.grids[sheet]
	if !ok {
		return nil, fmt.Errorf("%s: %w", sheet, ErrSheetNotFound)
	}
	return g, nil
}
