package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// busyTimeoutMS CLI 与服务同时打开同一数据库时的等待时间
const busyTimeoutMS = 5000

// Store SQLite 存储：科目映射表、应用设置、转换记录
type Store struct {
	db   *sql.DB
	path string
}

// New 打开（必要时创建）数据库并建表
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", dbPath, busyTimeoutMS)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", dbPath, err)
	}

	// SQLite 单写者
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema.sql: %w", err)
	}
	_, err = s.db.Exec(string(schemaSQL))
	return err
}

// withTx 在事务中执行 fn，fn 返回错误时回滚
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Path 数据库文件路径
func (s *Store) Path() string {
	return s.path
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
