package parser

import (
	"strings"

	"tkbvnedu/internal/model"
)

// layoutRule 版式判定规则，按优先级顺序依次尝试
type layoutRule struct {
	Layout model.LayoutFamily
	Match  func(grid model.Grid) bool
}

// LayoutRecognizer 课表版式识别器
type LayoutRecognizer struct {
	rules []layoutRule
}

// NewLayoutRecognizer 创建识别器
func NewLayoutRecognizer() *LayoutRecognizer {
	return &LayoutRecognizer{
		rules: []layoutRule{
			{Layout: model.LayoutGrid, Match: isGridLayout},
			// DayColumn 与 ClassHeader 可能同时成立，统一走班级列路径，DayColumn 优先
			{Layout: model.LayoutDayColumn, Match: isDayColumnLayout},
			{Layout: model.LayoutClassHeader, Match: isClassHeaderLayout},
			{Layout: model.LayoutRowWise, Match: isRowWiseLayout},
		},
	}
}

var defaultRecognizer = NewLayoutRecognizer()

// Classify 使用默认识别器判定版式
func Classify(grid model.Grid) model.LayoutFamily {
	return defaultRecognizer.Recognize(grid)
}

// Recognize 判定版式，第一个命中的规则胜出，均未命中返回 Unknown
func (r *LayoutRecognizer) Recognize(grid model.Grid) model.LayoutFamily {
	for _, rule := range r.rules {
		if rule.Match(grid) {
			return rule.Layout
		}
	}
	return model.LayoutUnknown
}

// RecognizeSheet 识别一个 sheet 并给出定位结果
func (r *LayoutRecognizer) RecognizeSheet(sheetName string, grid model.Grid) model.SheetRecognition {
	layout := r.Recognize(grid)
	headerRow := NotFound
	switch {
	case layout == model.LayoutGrid:
		headerRow = FindGridHeaderRow(grid)
	case layout.UsesClassColumns():
		headerRow = FindClassHeaderRow(grid)
	}
	return model.SheetRecognition{
		SheetName: sheetName,
		Layout:    layout,
		HeaderRow: headerRow,
		Classes:   classNamesFor(grid, layout),
	}
}

// FindGridHeaderRow 在前 12 行中查找首列含“ngày/thứ”、次列含“tiết”的表头行
func FindGridHeaderRow(grid model.Grid) int {
	limit := min(gridHeaderScanRows, len(grid))
	for r := 0; r < limit; r++ {
		first := NormalizeText(grid.Text(r, 0))
		second := NormalizeText(grid.Text(r, 1))
		if (strings.Contains(first, "ngay") || strings.Contains(first, "thu")) &&
			strings.Contains(second, "tiet") {
			return r
		}
	}
	return NotFound
}

// FindClassHeaderRow 前 5 行中第一行出现至少 3 个班级代码的行
func FindClassHeaderRow(grid model.Grid) int {
	limit := min(classLocateScanRows, len(grid))
	for r := 0; r < limit; r++ {
		if countClassCodes(grid.Row(r), 0) >= classHeaderMinCodes {
			return r
		}
	}
	return NotFound
}

func isGridLayout(grid model.Grid) bool {
	return FindGridHeaderRow(grid) != NotFound
}

func isClassHeaderLayout(grid model.Grid) bool {
	limit := min(classHeaderScanRows, len(grid))
	for r := 0; r < limit; r++ {
		if countClassCodes(grid.Row(r), classHeaderScanCols) >= classHeaderMinCodes {
			return true
		}
	}
	return false
}

func isDayColumnLayout(grid model.Grid) bool {
	dayCount := 0
	limit := min(dayColumnScanRows, len(grid))
	for r := 0; r < limit; r++ {
		first := NormalizeText(grid.Text(r, 0))
		if strings.Contains(first, "thu") || strings.Contains(first, "chu nhat") {
			dayCount++
		}
	}

	classCount := 0
	limit = min(classHeaderScanRows, len(grid))
	for r := 0; r < limit; r++ {
		classCount += countClassCodes(grid.Row(r), classHeaderScanCols)
	}

	return dayCount >= dayColumnMinLabels && classCount >= classHeaderMinCodes
}

func isRowWiseLayout(grid model.Grid) bool {
	count := 0
	limit := min(rowWiseScanRows, len(grid))
	for r := 1; r < limit; r++ {
		if IsClassCode(grid.Text(r, 0)) {
			count++
		}
	}
	return count >= rowWiseMinCodes
}
