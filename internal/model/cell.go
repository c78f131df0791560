package model

import (
	"strconv"
	"strings"
)

// CellKind 单元格值类型
type CellKind int

const (
	CellBlank CellKind = iota
	CellText
	CellNumber
)

// Cell 表格单元格（Text / Number / Blank 三选一）
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell 创建文本单元格，空白文本视为 Blank
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{Kind: CellBlank}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell 创建数值单元格
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// ParseCell 将读取器给出的原始字符串转换为单元格
// 数值保留原始字面量，便于原样输出
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{Kind: CellBlank}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return Cell{Kind: CellNumber, Number: n, Text: raw}
	}
	return Cell{Kind: CellText, Text: raw}
}

// IsBlank 是否为空白
func (c Cell) IsBlank() bool {
	return c.Kind == CellBlank || strings.TrimSpace(c.String()) == ""
}

// String 返回单元格的文本形式（未去空格）
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		if c.Text != "" {
			return c.Text
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Grid 行优先的二维单元格表，允许参差行
type Grid [][]Cell

// GridFromStrings 由字符串二维数组构建 Grid
func GridFromStrings(rows [][]string) Grid {
	g := make(Grid, len(rows))
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, v := range row {
			cells[c] = ParseCell(v)
		}
		g[r] = cells
	}
	return g
}

// GridFromValues 由任意值二维数组构建 Grid（JSON / 测试输入）
func GridFromValues(rows [][]any) Grid {
	g := make(Grid, len(rows))
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, v := range row {
			cells[c] = cellFromValue(v)
		}
		g[r] = cells
	}
	return g
}

func cellFromValue(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{Kind: CellBlank}
	case Cell:
		return x
	case string:
		return TextCell(x)
	case int:
		return NumberCell(float64(x))
	case int64:
		return NumberCell(float64(x))
	case float64:
		return NumberCell(x)
	case float32:
		return NumberCell(float64(x))
	default:
		return Cell{Kind: CellBlank}
	}
}

// Row 返回第 r 行，越界返回 nil
func (g Grid) Row(r int) []Cell {
	if r < 0 || r >= len(g) {
		return nil
	}
	return g[r]
}

// At 返回 (r, c) 位置的单元格，越界视为空白
func (g Grid) At(r, c int) Cell {
	row := g.Row(r)
	if c < 0 || c >= len(row) {
		return Cell{Kind: CellBlank}
	}
	return row[c]
}

// Text 返回 (r, c) 位置去除首尾空白后的文本
func (g Grid) Text(r, c int) string {
	return strings.TrimSpace(g.At(r, c).String())
}

// RowLen 返回第 r 行的实际单元格数
func (g Grid) RowLen(r int) int {
	return len(g.Row(r))
}
