package store

import (
	"sync"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/subject"
)

// MemoryStore 内存映射表存储，顺序为首次出现顺序
type MemoryStore struct {
	entries []model.MappingEntry
	index   map[string]int
	mu      sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make([]model.MappingEntry, 0),
		index:   make(map[string]int),
	}
}

// Load 返回映射表快照
func (s *MemoryStore) Load() ([]model.MappingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MappingEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Save 以给定条目整体替换映射表，只保留原始名与标准名均非空的条目
func (s *MemoryStore) Save(entries []model.MappingEntry) error {
	kept := subject.Merge(subject.Persistable(entries))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = kept
	s.index = make(map[string]int, len(kept))
	for i, e := range kept {
		s.index[subject.Key(e.Raw)] = i
	}
	return nil
}

// Find 按原始科目名（忽略大小写与音调）查找映射
func (s *MemoryStore) Find(raw string) (model.MappingEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[subject.Key(raw)]
	if !ok {
		return model.MappingEntry{}, false, nil
	}
	return s.entries[i], true, nil
}
