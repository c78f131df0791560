package transform

import (
	"tkbvnedu/internal/model"
	"tkbvnedu/internal/parser"
)

// dayState 逐行扫描时沿用的“当前星期”
type dayState struct {
	day     int
	ordinal int // 当前星期内已扫描的行数
}

func newDayState() dayState {
	return dayState{day: parser.NotFound}
}

// observe 读取首列标签；识别出另一天时切换并重新计数，
// 重复的同一天标签只算作标签行，不重置行序号
func (s dayState) observe(label string) (dayState, bool) {
	if label == "" {
		return s, false
	}
	idx := parser.DetectDayIndex(label, model.DayNames[:])
	if idx == parser.NotFound {
		return s, false
	}
	if idx == s.day {
		return s, true
	}
	return dayState{day: idx}, true
}

// next 当前星期内行序号加一
func (s dayState) next() dayState {
	s.ordinal++
	return s
}
