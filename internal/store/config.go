package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// 设置项键名
const (
	ConfigLastMode       = "last_mode"
	ConfigLastOutputFile = "last_output_file"
)

const upsertConfigSQL = `
	INSERT INTO config (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

// GetConfig 读取设置项，不存在时返回 ErrNotFound
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("config key %s: %w", key, ErrNotFound)
	}
	return value, err
}

// SetConfig 写入单个设置项
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(upsertConfigSQL, key, value)
	return err
}

// SetConfigs 在一个事务中写入多个设置项
func (s *Store) SetConfigs(values map[string]string) error {
	return s.withTx(func(tx *sql.Tx) error {
		for k, v := range values {
			if _, err := tx.Exec(upsertConfigSQL, k, v); err != nil {
				return fmt.Errorf("set config %s: %w", k, err)
			}
		}
		return nil
	})
}

// GetAllConfig 全部设置项
func (s *Store) GetAllConfig() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM config ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}
