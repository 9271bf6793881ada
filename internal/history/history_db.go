package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/blueline/internal/config"
	"github.com/studiowebux/blueline/internal/migrations"
	"github.com/studiowebux/blueline/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// Manager stores executed requests in sqlite.
type Manager struct {
	db  *sql.DB
	now func() time.Time
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, now: time.Now}, nil
}

// Save appends one executed request and its outcome.
func (m *Manager) Save(requestID string, profileName string, req *types.HttpRequest, result *types.RequestResult) error {
	headersJSON, err := json.Marshal(req.Headers)
	if err != nil {
		return fmt.Errorf("failed to marshal headers: %w", err)
	}

	responseHeaders := result.Headers
	if responseHeaders == nil {
		responseHeaders = map[string]string{}
	}
	responseHeadersJSON, err := json.Marshal(responseHeaders)
	if err != nil {
		return fmt.Errorf("failed to marshal response headers: %w", err)
	}

	query := `
		INSERT INTO history (
			timestamp, request_id, profile_name, method, url, headers, body,
			response_status, response_status_text, response_headers, response_body,
			duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = m.db.Exec(query,
		m.now().UTC().Format(timestampLayout),
		requestID,
		profileName,
		req.Method,
		req.URL,
		string(headersJSON),
		req.Body,
		result.Status,
		result.StatusText,
		string(responseHeadersJSON),
		result.Body,
		result.Duration,
		result.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first. An empty profile name
// matches every profile; limit <= 0 means no limit.
func (m *Manager) Recent(profileName string, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, timestamp, request_id, profile_name, method, url, headers, body,
		       response_status, response_status_text, response_headers, response_body,
		       duration_ms, error
		FROM history
		WHERE ? = '' OR profile_name = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, profileName, profileName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.HistoryEntry, error) {
	var entries []types.HistoryEntry

	for rows.Next() {
		var (
			e                   types.HistoryEntry
			timestamp           string
			headersJSON         string
			body                sql.NullString
			responseHeadersJSON string
			errorMsg            sql.NullString
		)

		err := rows.Scan(
			&e.ID,
			&timestamp,
			&e.RequestID,
			&e.Profile,
			&e.Method,
			&e.URL,
			&headersJSON,
			&body,
			&e.ResponseStatus,
			&e.ResponseStatusText,
			&responseHeadersJSON,
			&e.ResponseBody,
			&e.Duration,
			&errorMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		if err := json.Unmarshal([]byte(headersJSON), &e.Headers); err != nil {
			e.Headers = make(map[string]string)
		}
		if err := json.Unmarshal([]byte(responseHeadersJSON), &e.ResponseHeaders); err != nil {
			e.ResponseHeaders = make(map[string]string)
		}

		parsedTime, err := time.ParseInLocation(timestampLayout, timestamp, time.UTC)
		if err != nil {
			// DATETIME columns come back from go-sqlite3 as time.Time
			if parsedTime, err = time.Parse(time.RFC3339, timestamp); err != nil {
				parsedTime = time.Time{}
			}
		}
		e.Timestamp = parsedTime.UTC().Format(time.RFC3339)
		e.Body = body.String
		e.Error = errorMsg.String

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM history")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
