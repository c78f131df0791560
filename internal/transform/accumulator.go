package transform

import (
	"sort"

	"tkbvnedu/internal/model"
)

// periodDays 节次 -> 星期下标 -> 科目
type periodDays map[int]map[int]string

func (p periodDays) touch(period int) map[int]string {
	days, ok := p[period]
	if !ok {
		days = make(map[int]string)
		p[period] = days
	}
	return days
}

// set 写入一格；星期未知时只登记节次
func (p periodDays) set(period, day int, subject string) {
	days := p.touch(period)
	if day < 0 || day >= model.DayCount {
		return
	}
	days[day] = subject
}

// rows 线性化：节次 1..最大节次，缺失的节次与星期输出空串
func (p periodDays) rows(className, session string) []model.CanonicalRow {
	maxPeriod := 0
	for period := range p {
		if period > maxPeriod {
			maxPeriod = period
		}
	}

	out := make([]model.CanonicalRow, 0, maxPeriod)
	for period := 1; period <= maxPeriod; period++ {
		row := model.CanonicalRow{
			ClassName: className,
			Session:   session,
			Period:    period,
		}
		for day, subject := range p[period] {
			row.Days[day] = subject
		}
		out = append(out, row)
	}
	return out
}

// accumulator 单次转换内的稀疏结果：班级 -> 上下午 -> 节次 -> 星期 -> 科目
type accumulator struct {
	classes map[string]map[string]periodDays
}

func newAccumulator() *accumulator {
	return &accumulator{classes: make(map[string]map[string]periodDays)}
}

func (a *accumulator) bucket(className, session string) periodDays {
	sessions, ok := a.classes[className]
	if !ok {
		sessions = make(map[string]periodDays)
		a.classes[className] = sessions
	}
	periods, ok := sessions[session]
	if !ok {
		periods = make(periodDays)
		sessions[session] = periods
	}
	return periods
}

func (a *accumulator) set(className, session string, period, day int, subject string) {
	a.bucket(className, session).set(period, day, subject)
}

// linearize 班级升序，上下午按 S < C < 其它，节次补齐
func (a *accumulator) linearize() []model.CanonicalRow {
	classNames := make([]string, 0, len(a.classes))
	for name := range a.classes {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	out := make([]model.CanonicalRow, 0)
	for _, className := range classNames {
		sessions := a.classes[className]
		keys := make([]string, 0, len(sessions))
		for k := range sessions {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			oi, oj := model.SessionOrder(keys[i]), model.SessionOrder(keys[j])
			if oi != oj {
				return oi < oj
			}
			return keys[i] < keys[j]
		})
		for _, session := range keys {
			out = append(out, sessions[session].rows(className, session)...)
		}
	}
	return out
}
