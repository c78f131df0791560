package subject

import "tkbvnedu/internal/model"

// Store 映射表持久化端口，键为原始科目名（忽略大小写）
type Store interface {
	Load() ([]model.MappingEntry, error)
	Save(entries []model.MappingEntry) error
}

// Snapshot 读取映射表并创建解析器
func Snapshot(store Store) (*Resolver, []model.MappingEntry, error) {
	table, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return NewResolver(table, vocabulary), table, nil
}

// Finder 可按原始名直接查找的存储
type Finder interface {
	Find(raw string) (model.MappingEntry, bool, error)
}

// Find 按原始名（忽略大小写与音调）查找映射
// store 未实现 Finder 时在 Load 的结果中按 Key 查找
func Find(store Store, raw string) (model.MappingEntry, bool, error) {
	if f, ok := store.(Finder); ok {
		return f.Find(raw)
	}

	table, err := store.Load()
	if err != nil {
		return model.MappingEntry{}, false, err
	}
	key := Key(raw)
	for _, e := range table {
		if Key(e.Raw) == key {
			return e, true, nil
		}
	}
	return model.MappingEntry{}, false, nil
}
