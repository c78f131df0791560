package transform

import (
	"sort"
	"strings"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/parser"
)

// SubjectResolver 科目名解析
type SubjectResolver interface {
	Resolve(raw string) string
}

// Transformer 将原始课表转换为标准行
// 每次调用独占自己的累加结果，不在调用之间共享状态
type Transformer struct {
	resolver   SubjectResolver
	recognizer *parser.LayoutRecognizer
}

// NewTransformer 创建转换器
func NewTransformer(resolver SubjectResolver) *Transformer {
	return &Transformer{
		resolver:   resolver,
		recognizer: parser.NewLayoutRecognizer(),
	}
}

func (t *Transformer) resolve(raw string) string {
	return t.resolver.Resolve(strings.TrimSpace(raw))
}

// Single 单文件模式：上下午与全部班级都在同一张表中
func (t *Transformer) Single(grid model.Grid) []model.CanonicalRow {
	if t.recognizer.Recognize(grid) == model.LayoutGrid {
		return t.singleGrid(grid)
	}
	return t.singleRowWise(grid)
}

func (t *Transformer) singleGrid(grid model.Grid) []model.CanonicalRow {
	headerRow := parser.FindGridHeaderRow(grid)
	columns := parser.BuildGridColumns(grid, headerRow)
	acc := newAccumulator()

	state := newDayState()
	for r := headerRow + 1; r < len(grid); r++ {
		state, _ = state.observe(grid.Text(r, 0))

		period, err := parser.ParseSlotPeriod(grid.At(r, 1))
		if err != nil {
			continue
		}
		for _, col := range columns {
			acc.set(col.ClassName, string(col.Session), period, state.day, t.resolve(grid.Text(r, col.ColumnIndex)))
		}
	}

	return acc.linearize()
}

type rowGroup struct {
	className string
	session   string
	rows      []model.CanonicalRow
}

func (t *Transformer) singleRowWise(grid model.Grid) []model.CanonicalRow {
	groups := make(map[[2]string]*rowGroup)
	for r := 1; r < len(grid); r++ {
		row, ok := t.rowWiseRow(grid, r)
		if !ok || row.ClassName == "" {
			continue
		}
		row.Session = parser.NormalizeSession(grid.Text(r, 1))

		key := [2]string{row.ClassName, row.Session}
		g, ok := groups[key]
		if !ok {
			g = &rowGroup{className: row.ClassName, session: row.Session}
			groups[key] = g
		}
		g.rows = append(g.rows, row)
	}

	ordered := make([]*rowGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].className != ordered[j].className {
			return ordered[i].className < ordered[j].className
		}
		return ordered[i].session < ordered[j].session
	})

	out := make([]model.CanonicalRow, 0)
	for _, g := range ordered {
		out = append(out, sortByPeriod(g.rows)...)
	}
	return out
}

// rowWiseRow 读取逐行版式的一行：列 0 班级、列 2 节次、列 3..9 七天
func (t *Transformer) rowWiseRow(grid model.Grid, r int) (model.CanonicalRow, bool) {
	if grid.RowLen(r) < 3 {
		return model.CanonicalRow{}, false
	}
	period, err := parser.ParseSlotPeriod(grid.At(r, 2))
	if err != nil {
		return model.CanonicalRow{}, false
	}

	row := model.CanonicalRow{
		ClassName: grid.Text(r, 0),
		Period:    period,
	}
	for d := 0; d < model.DayCount; d++ {
		row.Days[d] = t.resolve(grid.Text(r, 3+d))
	}
	return row, true
}

func sortByPeriod(rows []model.CanonicalRow) []model.CanonicalRow {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Period < rows[j].Period
	})
	return rows
}

// Dual 双文件模式：上午文件强制为 S，下午文件强制为 C，按班级并集升序合并
func (t *Transformer) Dual(morning, afternoon model.Grid) []model.CanonicalRow {
	morningClasses := classSet(morning)
	afternoonClasses := classSet(afternoon)

	all := make([]string, 0, len(morningClasses)+len(afternoonClasses))
	for name := range morningClasses {
		all = append(all, name)
	}
	for name := range afternoonClasses {
		if _, ok := morningClasses[name]; !ok {
			all = append(all, name)
		}
	}
	sort.Strings(all)

	out := make([]model.CanonicalRow, 0)
	for _, className := range all {
		if _, ok := morningClasses[className]; ok {
			out = append(out, t.ClassRows(morning, className, model.SessionMorning)...)
		}
		if _, ok := afternoonClasses[className]; ok {
			out = append(out, t.ClassRows(afternoon, className, model.SessionAfternoon)...)
		}
	}
	return out
}

func classSet(grid model.Grid) map[string]struct{} {
	set := make(map[string]struct{})
	if len(grid) == 0 {
		return set
	}
	for _, name := range parser.ExtractClassNames(grid) {
		set[name] = struct{}{}
	}
	return set
}

// ClassRows 从一张表中取出指定班级的行，上下午强制为 session
// 找不到班级或列时返回空
func (t *Transformer) ClassRows(grid model.Grid, className string, session model.SessionCode) []model.CanonicalRow {
	if len(grid) == 0 {
		return nil
	}

	layout := t.recognizer.Recognize(grid)
	switch {
	case layout == model.LayoutGrid:
		return t.classGrid(grid, className, session)
	case layout.UsesClassColumns():
		return t.classColumn(grid, layout, className, session)
	default:
		return t.classRowWise(grid, className, session)
	}
}

func (t *Transformer) classGrid(grid model.Grid, className string, session model.SessionCode) []model.CanonicalRow {
	headerRow := parser.FindGridHeaderRow(grid)
	columns := parser.FilterColumns(parser.BuildGridColumns(grid, headerRow), className, session)
	if len(columns) == 0 {
		return nil
	}

	data := make(periodDays)
	state := newDayState()
	for r := headerRow + 1; r < len(grid); r++ {
		state, _ = state.observe(grid.Text(r, 0))

		period, err := parser.ParseSlotPeriod(grid.At(r, 1))
		if err != nil {
			continue
		}
		for _, col := range columns {
			data.set(period, state.day, t.resolve(grid.Text(r, col.ColumnIndex)))
		}
	}

	return data.rows(className, string(session))
}

// classColumn DayColumn / ClassHeader：按表头文本定位班级列，向下扫描
// DayColumn 的节次为当天内的行序号（标签行为第 1 节）；ClassHeader 的节次取第 2 列，标签行只切换星期
func (t *Transformer) classColumn(grid model.Grid, layout model.LayoutFamily, className string, session model.SessionCode) []model.CanonicalRow {
	headerRow, col := parser.FindClassColumn(grid, className)
	if col == parser.NotFound {
		return nil
	}

	data := make(periodDays)
	state := newDayState()
	for r := headerRow + 1; r < len(grid); r++ {
		var isLabel bool
		state, isLabel = state.observe(grid.Text(r, 0))
		state = state.next()

		var period int
		if layout == model.LayoutDayColumn {
			period = state.ordinal
		} else {
			if isLabel {
				continue
			}
			p, err := parser.ParseSlotPeriod(grid.At(r, 1))
			if err != nil {
				continue
			}
			period = p
		}

		raw := grid.Text(r, col)
		if raw == "" || parser.IsMetaLabel(raw) || strings.Contains(strings.ToLower(raw), "ngày") {
			continue
		}
		if state.day == parser.NotFound {
			continue
		}
		data.set(period, state.day, t.resolve(raw))
	}

	return data.rows(className, string(session))
}

func (t *Transformer) classRowWise(grid model.Grid, className string, session model.SessionCode) []model.CanonicalRow {
	rows := make([]model.CanonicalRow, 0)
	for r := 1; r < len(grid); r++ {
		label := grid.Text(r, 0)
		if parser.IsMetaLabel(label) || label != className {
			continue
		}
		row, ok := t.rowWiseRow(grid, r)
		if !ok {
			continue
		}
		row.Session = string(session)
		rows = append(rows, row)
	}
	return sortByPeriod(rows)
}
