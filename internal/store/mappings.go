package store

import (
	"database/sql"
	"errors"
	"fmt"

	"tkbvnedu/internal/model"
	"tkbvnedu/internal/subject"
)

// Load 按保存顺序读取全部科目映射
func (s *Store) Load() ([]model.MappingEntry, error) {
	rows, err := s.db.Query(`
		SELECT raw, canonical, user_defined
		FROM subject_mappings
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query subject_mappings failed: %w", err)
	}
	defer rows.Close()

	out := make([]model.MappingEntry, 0)
	for rows.Next() {
		var e model.MappingEntry
		if err := rows.Scan(&e.Raw, &e.Canonical, &e.UserDefined); err != nil {
			return nil, fmt.Errorf("scan subject_mappings failed: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subject_mappings failed: %w", err)
	}
	return out, nil
}

// Save 以给定条目整体替换映射表，只保留原始名与标准名均非空的条目
func (s *Store) Save(entries []model.MappingEntry) error {
	kept := subject.Merge(subject.Persistable(entries))

	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM subject_mappings"); err != nil {
			return fmt.Errorf("clear subject_mappings failed: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO subject_mappings (raw, raw_key, canonical, user_defined, position)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare insert failed: %w", err)
		}
		defer stmt.Close()

		for i, e := range kept {
			if _, err := stmt.Exec(e.Raw, subject.Key(e.Raw), e.Canonical, e.UserDefined, i); err != nil {
				return fmt.Errorf("insert mapping %q failed: %w", e.Raw, err)
			}
		}
		return nil
	})
}

// Find 按原始科目名（忽略大小写与音调）查找映射
func (s *Store) Find(raw string) (model.MappingEntry, bool, error) {
	var e model.MappingEntry
	err := s.db.QueryRow(`
		SELECT raw, canonical, user_defined FROM subject_mappings WHERE raw_key = ?
	`, subject.Key(raw)).Scan(&e.Raw, &e.Canonical, &e.UserDefined)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.MappingEntry{}, false, nil
	case err != nil:
		return model.MappingEntry{}, false, fmt.Errorf("query mapping %q failed: %w", raw, err)
	}
	return e, true, nil
}
