package parser

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"tkbvnedu/internal/model"
)

// NotFound 定位失败时返回的下标
const NotFound = -1

// ErrNotPositiveInteger 节次不是正整数
var ErrNotPositiveInteger = errors.New("not a positive integer")

// ErrPeriodOutOfRange 节次超过 MaxPeriod
var ErrPeriodOutOfRange = errors.New("period out of range")

var (
	classCodeRe = regexp.MustCompile(`^\d+[A-Z]\d+$`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// NormalizeText 规范化文本用于模糊比较：
// Unicode 分解后去除组合音调符号，转小写，压缩空白并去除首尾空白
// đ/Đ 没有分解形式，这里额外折叠为 d，因此 "Địa" 与 "dia" 视为相同
// 结果仅用于比较，不用于输出
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	stripped = strings.Map(func(r rune) rune {
		switch r {
		case 'đ', 'Đ':
			return 'd'
		}
		return r
	}, stripped)

	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// IsClassCode 是否为班级代码（如 10A1）
func IsClassCode(text string) bool {
	return classCodeRe.MatchString(strings.TrimSpace(text))
}

// countClassCodes 统计一行前 limit 列中班级代码的个数，limit <= 0 表示整行
func countClassCodes(row []model.Cell, limit int) int {
	n := len(row)
	if limit > 0 && limit < n {
		n = limit
	}
	count := 0
	for c := 0; c < n; c++ {
		if IsClassCode(row[c].String()) {
			count++
		}
	}
	return count
}

// ParsePeriod 将单元格解析为正整数节次
func ParsePeriod(cell model.Cell) (int, error) {
	var f float64
	switch cell.Kind {
	case model.CellNumber:
		f = cell.Number
	case model.CellText:
		s := strings.TrimSpace(cell.Text)
		if n, err := strconv.Atoi(s); err == nil {
			f = float64(n)
			break
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrNotPositiveInteger
		}
		f = v
	default:
		return 0, ErrNotPositiveInteger
	}

	if f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, ErrNotPositiveInteger
	}
	return int(f), nil
}

// ParseSlotPeriod 解析课表中的节次，只接受 1..MaxPeriod
func ParseSlotPeriod(cell model.Cell) (int, error) {
	p, err := ParsePeriod(cell)
	if err != nil {
		return 0, err
	}
	if p > MaxPeriod {
		return 0, ErrPeriodOutOfRange
	}
	return p, nil
}

// DetectSession 从子表头单元格识别上下午
func DetectSession(label string) model.SessionCode {
	n := NormalizeText(label)
	if n == "" {
		return model.SessionUnspecified
	}
	if n == "s" || strings.Contains(n, "sang") {
		return model.SessionMorning
	}
	if n == "c" || strings.Contains(n, "chieu") {
		return model.SessionAfternoon
	}
	return model.SessionUnspecified
}

// NormalizeSession 规范化逐行版式中的“Buổi”列：可识别时返回 S / C，否则原样返回
func NormalizeSession(text string) string {
	if code := DetectSession(text); code != model.SessionUnspecified {
		return string(code)
	}
	return strings.TrimSpace(text)
}

// IsMetaLabel 是否为星期/日期等标签单元格（空白也视为标签）
func IsMetaLabel(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return true
	}
	if ContainsAny(t, []string{"ngày", "thứ", "chủ nhật"}) {
		return true
	}
	if t == "cn" || t == "chu nhat" || t == "chunhat" {
		return true
	}
	if isAllDigits(t) {
		n, err := strconv.Atoi(t)
		return err == nil && n >= 2 && n <= 8
	}
	return false
}

func isAllDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return s != ""
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
