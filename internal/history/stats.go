package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Stats aggregates every recorded call to one method and URL.
type Stats struct {
	Method        string
	URL           string
	TotalCalls    int
	SuccessCount  int
	ErrorCount    int
	NetworkErrors int // transport failures, no status
	AvgDurationMs float64
	MinDurationMs int64
	MaxDurationMs int64
	AvgRespSize   int64 // bytes
	StatusCodes   map[int]int
	LastCalled    time.Time
}

// SuccessRate is the share of 2xx responses, 0 when nothing was recorded.
func (s Stats) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.SuccessCount) / float64(s.TotalCalls)
}

// Codes lists the recorded status codes in ascending order.
func (s Stats) Codes() []int {
	codes := make([]int, 0, len(s.StatusCodes))
	for code := range s.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// StatsPerEndpoint groups the history by method and URL, most recently
// called first. An empty profile name matches every profile.
func (m *Manager) StatsPerEndpoint(profileName string) ([]Stats, error) {
	query := `
		WITH status_codes_agg AS (
			SELECT
				method,
				url,
				json_group_object(CAST(response_status AS TEXT), count) AS status_codes_json
			FROM (
				SELECT method, url, response_status, COUNT(*) AS count
				FROM history
				WHERE (? = '' OR profile_name = ?)
				  AND (error IS NULL OR error = '')
				GROUP BY method, url, response_status
			)
			GROUP BY method, url
		)
		SELECT
			h.method,
			h.url,
			COUNT(*) AS total_calls,
			SUM(CASE WHEN h.response_status >= 200 AND h.response_status < 300 THEN 1 ELSE 0 END),
			SUM(CASE WHEN h.response_status >= 400 THEN 1 ELSE 0 END),
			SUM(CASE WHEN h.error IS NOT NULL AND h.error != '' THEN 1 ELSE 0 END),
			AVG(h.duration_ms),
			MIN(h.duration_ms),
			MAX(h.duration_ms),
			CAST(COALESCE(AVG(LENGTH(h.response_body)), 0) AS INTEGER),
			MAX(h.timestamp) AS last_called,
			COALESCE(s.status_codes_json, '{}')
		FROM history h
		LEFT JOIN status_codes_agg s ON h.method = s.method AND h.url = s.url
		WHERE ? = '' OR h.profile_name = ?
		GROUP BY h.method, h.url
		ORDER BY last_called DESC, h.url
	`

	rows, err := m.db.Query(query, profileName, profileName, profileName, profileName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats per endpoint: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var (
			s               Stats
			lastCalled      string
			statusCodesJSON string
		)
		err := rows.Scan(
			&s.Method,
			&s.URL,
			&s.TotalCalls,
			&s.SuccessCount,
			&s.ErrorCount,
			&s.NetworkErrors,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&s.AvgRespSize,
			&lastCalled,
			&statusCodesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}

		if t, err := time.ParseInLocation(timestampLayout, lastCalled, time.UTC); err == nil {
			s.LastCalled = t
		} else if t, err := time.Parse(time.RFC3339, lastCalled); err == nil {
			s.LastCalled = t.UTC()
		}

		var raw map[string]int
		if err := json.Unmarshal([]byte(statusCodesJSON), &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal status codes: %w", err)
		}
		s.StatusCodes = make(map[int]int, len(raw))
		for codeStr, count := range raw {
			if code, err := strconv.Atoi(codeStr); err == nil {
				s.StatusCodes[code] = count
			}
		}

		statsList = append(statsList, s)
	}

	return statsList, rows.Err()
}
