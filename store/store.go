// Package store는 실행 간에 기억해야 하는 값(최근 회차, 구매 이력)을
// 보관하는 단순한 네임스페이스 키-값 저장소입니다.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	ns    TEXT NOT NULL,
	key   TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (ns, key)
);`

// Store는 SQLite 기반 키-값 저장소입니다
type Store struct {
	db *sql.DB
}

// Open은 저장소 파일을 열고 스키마를 준비합니다
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("저장소 디렉토리 생성 실패: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("저장소 열기 실패: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("저장소 스키마 생성 실패: %w", err)
	}
	return &Store{db: db}, nil
}

// Close는 저장소를 닫습니다
func (s *Store) Close() error {
	return s.db.Close()
}

// Set은 값을 저장합니다 (이미 있으면 덮어씁니다)
func (s *Store) Set(ns, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (ns, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (ns, key) DO UPDATE SET value = excluded.value`,
		ns, key, value,
	)
	if err != nil {
		return fmt.Errorf("저장 실패 (%s.%s): %w", ns, key, err)
	}
	return nil
}

// Get은 값을 읽어옵니다. 없으면 두 번째 반환값이 false입니다.
func (s *Store) Get(ns, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE ns = ? AND key = ?`, ns, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("조회 실패 (%s.%s): %w", ns, key, err)
	}
	return value, true, nil
}

// Has는 키 존재 여부를 확인합니다
func (s *Store) Has(ns, key string) (bool, error) {
	_, ok, err := s.Get(ns, key)
	return ok, err
}

// SetJSON은 값을 JSON으로 직렬화하여 저장합니다
func (s *Store) SetJSON(ns, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("직렬화 실패 (%s.%s): %w", ns, key, err)
	}
	return s.Set(ns, key, string(data))
}

// GetJSON은 저장된 JSON 값을 역직렬화합니다. 없으면 false를 반환합니다.
func (s *Store) GetJSON(ns, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ns, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("역직렬화 실패 (%s.%s): %w", ns, key, err)
	}
	return true, nil
}
