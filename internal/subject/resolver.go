package subject

import (
	"strings"
	"unicode/utf8"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/parser"
)

// minContainsKeyLen 参与包含匹配的映射键最短长度
const minContainsKeyLen = 3

type candidate struct {
	key       string
	canonical string
}

type vocabEntry struct {
	name string
	key  string
}

// Resolver 将原始科目名解析为标准科目名
// 构造时对映射表做快照，之后的解析不读取也不修改调用方的映射表
type Resolver struct {
	candidates []candidate
	vocabulary []vocabEntry
}

// NewResolver 基于映射表快照与标准科目表创建解析器
func NewResolver(table []model.MappingEntry, vocab []string) *Resolver {
	r := &Resolver{
		candidates: make([]candidate, 0, len(table)),
		vocabulary: buildVocab(vocab),
	}
	for _, e := range table {
		key := parser.NormalizeText(e.Raw)
		if key == "" {
			continue
		}
		r.candidates = append(r.candidates, candidate{
			key:       key,
			canonical: strings.TrimSpace(e.Canonical),
		})
	}
	return r
}

func buildVocab(vocab []string) []vocabEntry {
	out := make([]vocabEntry, 0, len(vocab))
	for _, v := range vocab {
		key := parser.NormalizeText(v)
		if key == "" {
			continue
		}
		out = append(out, vocabEntry{name: v, key: key})
	}
	return out
}

// Resolve 解析顺序：映射表精确匹配 -> 映射表包含匹配（取最长键）-> 标准科目表 -> 原样返回
// 仅当规范化后为空时返回空串
func (r *Resolver) Resolve(raw string) string {
	key := parser.NormalizeText(raw)
	if key == "" {
		return ""
	}

	for _, c := range r.candidates {
		if c.canonical != "" && c.key == key {
			return c.canonical
		}
	}

	best := -1
	bestLen := 0
	for i, c := range r.candidates {
		if c.canonical == "" {
			continue
		}
		n := utf8.RuneCountInString(c.key)
		if n < minContainsKeyLen {
			continue
		}
		if !strings.Contains(key, c.key) && !strings.Contains(c.key, key) {
			continue
		}
		if n > bestLen {
			best, bestLen = i, n
		}
	}
	if best >= 0 {
		return r.candidates[best].canonical
	}

	if auto := autoMap(key, r.vocabulary); auto != "" {
		return auto
	}

	return raw
}

// AutoMap 仅按标准科目表匹配：先精确（规范化后）再双向包含，未命中返回空串
func AutoMap(raw string, vocab []string) string {
	key := parser.NormalizeText(raw)
	if key == "" {
		return ""
	}
	return autoMap(key, buildVocab(vocab))
}

func autoMap(key string, vocab []vocabEntry) string {
	for _, v := range vocab {
		if v.key == key {
			return v.name
		}
	}
	for _, v := range vocab {
		if strings.Contains(key, v.key) || strings.Contains(v.key, key) {
			return v.name
		}
	}
	return ""
}
