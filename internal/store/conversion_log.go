package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// 转换状态
const (
	ConversionProcessing = "processing"
	ConversionSuccess    = "success"
	ConversionFailed     = "failed"
)

// ConversionLog 转换记录
type ConversionLog struct {
	ID            int64      `json:"id"`
	Mode          string     `json:"mode"`
	SourceFiles   []string   `json:"sourceFiles"`
	Layouts       string     `json:"layouts"`
	TotalRows     int        `json:"totalRows"`
	UnmappedCount int        `json:"unmappedCount"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"errorMessage,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// CreateConversionLog 创建转换记录，返回记录 id
func (s *Store) CreateConversionLog(mode string, sourceFiles []string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO conversion_logs (mode, source_files, status)
		VALUES (?, ?, ?)
	`, mode, strings.Join(sourceFiles, "\n"), ConversionProcessing)
	if err != nil {
		return 0, fmt.Errorf("failed to create conversion log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get conversion log id: %w", err)
	}
	return id, nil
}

// CompleteConversionLog 更新转换结果
func (s *Store) CompleteConversionLog(id int64, layouts string, totalRows, unmappedCount int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE conversion_logs SET
			layouts = ?,
			total_rows = ?,
			unmapped_count = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, layouts, totalRows, unmappedCount, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update conversion log: %w", err)
	}
	return nil
}

// ListConversionLogs 最近的转换记录（按 id 倒序）
func (s *Store) ListConversionLogs(limit int) ([]ConversionLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, mode, source_files, layouts, total_rows, unmapped_count,
		       status, error_message, created_at, completed_at
		FROM conversion_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversion logs failed: %w", err)
	}
	defer rows.Close()

	out := make([]ConversionLog, 0)
	for rows.Next() {
		var (
			it        ConversionLog
			files     string
			completed sql.NullTime
		)
		if err := rows.Scan(&it.ID, &it.Mode, &files, &it.Layouts, &it.TotalRows, &it.UnmappedCount,
			&it.Status, &it.ErrorMessage, &it.CreatedAt, &completed); err != nil {
			return nil, fmt.Errorf("scan conversion log failed: %w", err)
		}
		if files != "" {
			it.SourceFiles = strings.Split(files, "\n")
		}
		if completed.Valid {
			t := completed.Time
			it.CompletedAt = &t
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversion logs failed: %w", err)
	}
	return out, nil
}
