package subject

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/parser"
)

// Key 映射表键：忽略大小写与音调
func Key(raw string) string {
	return parser.NormalizeText(raw)
}

// Merge 按键合并映射表，保留首次出现的顺序，已有条目不会被后来的重复项覆盖
func Merge(current []model.MappingEntry, incoming ...[]model.MappingEntry) []model.MappingEntry {
	seen := make(map[string]struct{}, len(current))
	merged := make([]model.MappingEntry, 0, len(current))

	add := func(e model.MappingEntry) {
		key := Key(e.Raw)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		merged = append(merged, e)
	}

	for _, e := range current {
		add(e)
	}
	for _, list := range incoming {
		for _, e := range list {
			add(e)
		}
	}
	return merged
}

// Apply 应用用户编辑：同键条目的标准名被覆盖并标记为用户定义，新键追加到末尾
func Apply(table []model.MappingEntry, edits []model.MappingEntry) []model.MappingEntry {
	out := Merge(table)
	index := make(map[string]int, len(out))
	for i, e := range out {
		index[Key(e.Raw)] = i
	}

	for _, edit := range edits {
		key := Key(edit.Raw)
		if key == "" {
			continue
		}
		edit.Canonical = strings.TrimSpace(edit.Canonical)
		edit.UserDefined = true
		if i, ok := index[key]; ok {
			out[i].Canonical = edit.Canonical
			out[i].UserDefined = true
			continue
		}
		index[key] = len(out)
		out = append(out, edit)
	}
	return out
}

// Persistable 过滤出可持久化的条目（原始名与标准名均非空）
func Persistable(table []model.MappingEntry) []model.MappingEntry {
	out := make([]model.MappingEntry, 0, len(table))
	for _, e := range table {
		raw := strings.TrimSpace(e.Raw)
		canonical := strings.TrimSpace(e.Canonical)
		if raw == "" || canonical == "" {
			continue
		}
		out = append(out, model.MappingEntry{Raw: raw, Canonical: canonical, UserDefined: e.UserDefined})
	}
	return out
}

// Annotate 用已保存的映射覆盖提取结果中的标准名，保持提取顺序
func Annotate(extracted, saved []model.MappingEntry) []model.MappingEntry {
	index := make(map[string]model.MappingEntry, len(saved))
	for _, e := range saved {
		key := Key(e.Raw)
		if _, ok := index[key]; !ok && strings.TrimSpace(e.Canonical) != "" {
			index[key] = e
		}
	}

	out := make([]model.MappingEntry, 0, len(extracted))
	for _, e := range extracted {
		if s, ok := index[Key(e.Raw)]; ok {
			e.Canonical = s.Canonical
			e.UserDefined = s.UserDefined
		}
		out = append(out, e)
	}
	return out
}

// Unmapped 返回尚未指定标准名的原始科目
func Unmapped(table []model.MappingEntry) []string {
	out := make([]string, 0)
	for _, e := range table {
		if strings.TrimSpace(e.Raw) != "" && strings.TrimSpace(e.Canonical) == "" {
			out = append(out, e.Raw)
		}
	}
	return out
}

// Extract 按版式收集表格中出现的原始科目名，按越南语排序，并预填标准科目表匹配结果
func Extract(grid model.Grid, vocab []string) []model.MappingEntry {
	unique := make(map[string]struct{})
	add := func(s string) {
		if s != "" {
			unique[s] = struct{}{}
		}
	}

	layout := parser.Classify(grid)
	switch {
	case layout == model.LayoutGrid:
		headerRow := parser.FindGridHeaderRow(grid)
		for r := headerRow + 1; r < len(grid); r++ {
			if _, err := parser.ParseSlotPeriod(grid.At(r, 1)); err != nil {
				continue
			}
			for c := 2; c < grid.RowLen(r); c++ {
				add(grid.Text(r, c))
			}
		}
	case layout.UsesClassColumns():
		headerRow := parser.FindClassHeaderRow(grid)
		if headerRow == parser.NotFound {
			break
		}
		for r := headerRow + 1; r < len(grid); r++ {
			first := strings.ToLower(grid.Text(r, 0))
			if strings.Contains(first, "thứ") || strings.Contains(first, "chủ nhật") {
				continue
			}
			for c := 0; c < grid.RowLen(r); c++ {
				if v := grid.Text(r, c); v != "" && !isNumeric(v) {
					add(v)
				}
			}
		}
	default:
		for r := 1; r < len(grid); r++ {
			for c := 3; c <= 9; c++ {
				add(grid.Text(r, c))
			}
		}
	}

	raws := make([]string, 0, len(unique))
	for s := range unique {
		raws = append(raws, s)
	}
	collate.New(language.Vietnamese).SortStrings(raws)

	out := make([]model.MappingEntry, 0, len(raws))
	for _, raw := range raws {
		out = append(out, model.MappingEntry{Raw: raw, Canonical: AutoMap(raw, vocab)})
	}
	return out
}

func isNumeric(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return s != ""
}
