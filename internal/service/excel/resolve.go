package excel

import (
	"sort"

	"tkbvnedu/internal/model"
)

type sheetCandidate struct {
	sheetName string
	order     int
	score     float64
	forced    bool
}

// PickSheet 选择要转换的 sheet：用户指定优先，其次版式可信度，最后按工作簿顺序
// 指定的 sheet 不存在时忽略
func PickSheet(wb *Workbook, recognition map[string]model.SheetRecognition, override string) string {
	if wb == nil {
		return ""
	}

	cands := make([]sheetCandidate, 0, len(recognition))
	for i, name := range wb.SheetNames() {
		r, ok := recognition[name]
		if !ok {
			continue
		}
		cands = append(cands, sheetCandidate{
			sheetName: name,
			order:     i,
			score:     layoutScore(r.Layout) + nameBoost(name),
			forced:    name == override,
		})
	}
	if len(cands) == 0 {
		return ""
	}

	return bestCandidate(cands)
}

func bestCandidate(cands []sheetCandidate) string {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].forced != cands[j].forced {
			return cands[i].forced
		}
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].order < cands[j].order
	})
	return cands[0].sheetName
}
