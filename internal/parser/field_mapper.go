package parser

import (
	"sort"
	"strconv"
	"strings"

	"tkbvnedu/internal/model"
)

// BuildGridColumns 扫描 Grid 版式的两行表头，得到每列对应的 (班级, 上下午)
// 表头为空的列沿用最近一次出现的班级名（合并单元格）
func BuildGridColumns(grid model.Grid, headerRow int) []model.GridColumn {
	if headerRow < 0 || headerRow >= len(grid) {
		return []model.GridColumn{}
	}

	subHeaderRow := headerRow + 1
	maxLen := max(grid.RowLen(headerRow), grid.RowLen(subHeaderRow))

	columns := make([]model.GridColumn, 0, maxLen)
	currentClass := ""
	for c := gridFirstClassColumn; c < maxLen; c++ {
		headerVal := grid.Text(headerRow, c)
		if headerVal != "" {
			currentClass = headerVal
		}
		if currentClass == "" {
			continue
		}

		subVal := grid.Text(subHeaderRow, c)
		if headerVal == "" && subVal == "" && !columnHasValue(grid, c, headerRow+2) {
			continue
		}

		columns = append(columns, model.GridColumn{
			ColumnIndex: c,
			ClassName:   currentClass,
			Session:     DetectSession(subVal),
		})
	}

	return columns
}

func columnHasValue(grid model.Grid, col, fromRow int) bool {
	for r := fromRow; r < len(grid); r++ {
		if !grid.At(r, col).IsBlank() {
			return true
		}
	}
	return false
}

// FilterColumns 筛选指定班级的列；若有列与 session 一致则只保留这些列，
// 否则返回该班级全部列（文件未标注上下午时视为与文件一致）
func FilterColumns(columns []model.GridColumn, className string, session model.SessionCode) []model.GridColumn {
	byClass := make([]model.GridColumn, 0)
	for _, col := range columns {
		if col.ClassName == className {
			byClass = append(byClass, col)
		}
	}

	bySession := make([]model.GridColumn, 0, len(byClass))
	for _, col := range byClass {
		if col.Session == session {
			bySession = append(bySession, col)
		}
	}
	if len(bySession) > 0 {
		return bySession
	}
	return byClass
}

// DetectDayIndex 将星期标签映射为 0..6，无法识别返回 NotFound
// 不维护“当前星期”状态，沿用上一行星期由调用方负责
func DetectDayIndex(label string, dayNames []string) int {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return NotFound
	}

	for i, d := range dayNames {
		if strings.EqualFold(d, trimmed) {
			return i
		}
	}

	if m := digitsRe.FindString(trimmed); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			if n >= 2 && n <= 7 {
				return n - 2
			}
			if n == 8 {
				return 6
			}
		}
	}

	switch NormalizeText(trimmed) {
	case "cn", "chu nhat", "chunhat":
		return 6
	}

	return NotFound
}

// FindClassColumn 在前 5 行中按文本精确查找班级所在的 (行, 列)
func FindClassColumn(grid model.Grid, className string) (row, col int) {
	limit := min(classLocateScanRows, len(grid))
	for r := 0; r < limit; r++ {
		for c := range grid.Row(r) {
			if grid.Text(r, c) == className {
				return r, c
			}
		}
	}
	return NotFound, NotFound
}

// ExtractClassNames 按版式抽取班级名，升序返回
func ExtractClassNames(grid model.Grid) []string {
	return classNamesFor(grid, Classify(grid))
}

func classNamesFor(grid model.Grid, layout model.LayoutFamily) []string {
	names := make(map[string]struct{})

	switch {
	case layout == model.LayoutGrid:
		headerRow := FindGridHeaderRow(grid)
		for c := gridFirstClassColumn; c < grid.RowLen(headerRow); c++ {
			if v := grid.Text(headerRow, c); v != "" {
				names[v] = struct{}{}
			}
		}
	case layout.UsesClassColumns():
		limit := min(classLocateScanRows, len(grid))
		for r := 0; r < limit; r++ {
			for c := range grid.Row(r) {
				if v := grid.Text(r, c); IsClassCode(v) {
					names[v] = struct{}{}
				}
			}
		}
	case layout == model.LayoutRowWise:
		for r := 1; r < len(grid); r++ {
			if v := grid.Text(r, 0); IsClassCode(v) {
				names[v] = struct{}{}
			}
		}
	default:
		for r := 1; r < len(grid); r++ {
			if v := grid.Text(r, 0); v != "" {
				names[v] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
