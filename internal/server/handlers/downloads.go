package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type download struct {
	fileName  string
	data      []byte
	expiresAt time.Time
}

// downloadStore 已生成工作簿的内存缓存，按 token 取回，过期自动清理
type downloadStore struct {
	mu    sync.Mutex
	items map[string]download
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]download),
	}
}

func (s *downloadStore) put(fileName string, data []byte, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = uuid.New().String()
	s.items[token] = download{
		fileName:  fileName,
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *downloadStore) get(token string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[token]
	if !ok {
		return download{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return download{}, false
	}
	return v, true
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
