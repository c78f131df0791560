package model

// SessionCode 上下午代码
type SessionCode string

const (
	SessionMorning     SessionCode = "S"
	SessionAfternoon   SessionCode = "C"
	SessionUnspecified SessionCode = ""
)

// SessionOrder 上下午排序权重：S < C < 其它
func SessionOrder(code string) int {
	switch SessionCode(code) {
	case SessionMorning:
		return 0
	case SessionAfternoon:
		return 1
	default:
		return 2
	}
}

// DayCount 一周天数
const DayCount = 7

// DayNames 标准星期名称，下标 0..6 对应 Thứ 2..Chủ nhật
var DayNames = [DayCount]string{
	"Thứ 2",
	"Thứ 3",
	"Thứ 4",
	"Thứ 5",
	"Thứ 6",
	"Thứ 7",
	"Chủ nhật",
}

// OutputSheetName 输出工作表名
const OutputSheetName = "TKB_VNEDU"

// OutputHeader 输出表头
func OutputHeader() []string {
	header := []string{"Lớp học", "Buổi", "Tiết thứ"}
	return append(header, DayNames[:]...)
}

// GridColumn Grid 版式中一列对应的 (班级, 上下午)
type GridColumn struct {
	ColumnIndex int         `json:"columnIndex"`
	ClassName   string      `json:"className"`
	Session     SessionCode `json:"session"`
}

// CanonicalRow 标准输出行
type CanonicalRow struct {
	ClassName string           `json:"className"`
	Session   string           `json:"session"`
	Period    int              `json:"period"`
	Days      [DayCount]string `json:"days"`
}

// Values 转换为写出器使用的一行值
func (r CanonicalRow) Values() []any {
	out := make([]any, 0, 3+DayCount)
	out = append(out, r.ClassName, r.Session, r.Period)
	for _, d := range r.Days {
		out = append(out, d)
	}
	return out
}
