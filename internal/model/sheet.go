package model

// LayoutFamily 课表版式类型（用于输入容错识别）
type LayoutFamily string

const (
	LayoutUnknown     LayoutFamily = "unknown"
	LayoutGrid        LayoutFamily = "grid"         // 行为 (星期, 节次)，列为 (班级 × 上下午)
	LayoutDayColumn   LayoutFamily = "day_column"   // 首列为星期，表头为班级
	LayoutClassHeader LayoutFamily = "class_header" // 前几行为班级表头
	LayoutRowWise     LayoutFamily = "row_wise"     // 每行一条 (班级, 上下午, 节次, 七天)
)

// UsesClassColumns 是否走 DayColumn/ClassHeader 合并路径
func (f LayoutFamily) UsesClassColumns() bool {
	return f == LayoutDayColumn || f == LayoutClassHeader
}

// SheetRecognition 单个 sheet 的识别结果
type SheetRecognition struct {
	SheetName string       `json:"sheetName"`
	Layout    LayoutFamily `json:"layout"`
	HeaderRow int          `json:"headerRow"`
	Classes   []string     `json:"classes"`
}
