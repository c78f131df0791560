package model

// MappingEntry 科目映射条目：原始科目名 -> 标准科目名
type MappingEntry struct {
	Raw         string `json:"raw"`
	Canonical   string `json:"canonical"`
	UserDefined bool   `json:"userDefined"`
}
