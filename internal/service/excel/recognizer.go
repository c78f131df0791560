package excel

import (
	"strings"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/parser"
)

// Recognizer 工作簿 sheet 版式识别器
type Recognizer struct {
	layouts *parser.LayoutRecognizer
}

// NewRecognizer 创建识别器
func NewRecognizer() *Recognizer {
	return &Recognizer{layouts: parser.NewLayoutRecognizer()}
}

// RecognizeWorkbook 识别工作簿内每个 sheet 的版式与班级
func (r *Recognizer) RecognizeWorkbook(wb *Workbook) map[string]model.SheetRecognition {
	results := make(map[string]model.SheetRecognition)
	if wb == nil {
		return results
	}

	for _, sheetName := range wb.SheetNames() {
		grid, err := wb.Grid(sheetName)
		if err != nil {
			continue
		}
		results[sheetName] = r.layouts.RecognizeSheet(sheetName, grid)
	}
	return results
}

// layoutScore 版式可信度：结构锚点越明确分值越高
func layoutScore(layout model.LayoutFamily) float64 {
	switch layout {
	case model.LayoutGrid:
		return 1.0
	case model.LayoutDayColumn, model.LayoutClassHeader:
		return 0.8
	case model.LayoutRowWise:
		return 0.6
	default:
		return 0
	}
}

// nameBoost sheet 名包含课表关键词时加分
func nameBoost(sheetName string) float64 {
	n := parser.NormalizeText(sheetName)
	for _, kw := range []string{"tkb", "thoi khoa bieu"} {
		if strings.Contains(n, kw) {
			return 0.1
		}
	}
	return 0
}
