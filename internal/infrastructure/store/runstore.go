// Package store provides SQLite persistence for training runs.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ZachBeta/neural-rps/internal/domain/rl"
)

// Run is one recorded training run.
type Run struct {
	ID        string         `json:"id"`
	Config    rl.TrainConfig `json:"config"`
	Stats     rl.RunStats    `json:"stats"`
	ModelPath string         `json:"modelPath,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// RewardWindow is the average reward over one update window of a run.
type RewardWindow struct {
	RunID     string  `json:"runId"`
	Index     int     `json:"index"`
	AvgReward float64 `json:"avgReward"`
}

// RunStore persists training runs and their reward windows to SQLite.
type RunStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewRunStore opens (or creates) the database at dbPath. Use ":memory:"
// for an ephemeral store.
func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &RunStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *RunStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			config_json TEXT NOT NULL,
			episodes INTEGER NOT NULL,
			updates INTEGER NOT NULL,
			total_reward REAL NOT NULL,
			avg_reward REAL NOT NULL,
			invalid_steps INTEGER NOT NULL,
			model_path TEXT,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS reward_windows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			window_index INTEGER NOT NULL,
			avg_reward REAL NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
		CREATE INDEX IF NOT EXISTS idx_windows_run ON reward_windows(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun writes a run and its reward windows in one transaction.
func (s *RunStore) SaveRun(run *Run, windows []RewardWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	configJSON, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO runs
		(run_id, config_json, episodes, updates, total_reward, avg_reward,
		 invalid_steps, model_path, started_at, finished_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(configJSON), run.Stats.Episodes, run.Stats.Updates,
		run.Stats.TotalReward, run.Stats.AvgReward, run.Stats.InvalidSteps,
		run.ModelPath, run.Stats.StartedAt.UnixMilli(), run.Stats.FinishedAt.UnixMilli(),
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	_, err = tx.Exec("DELETE FROM reward_windows WHERE run_id = ?", run.ID)
	if err != nil {
		return fmt.Errorf("failed to delete old windows: %w", err)
	}

	for _, w := range windows {
		_, err = tx.Exec(`
			INSERT INTO reward_windows (run_id, window_index, avg_reward)
			VALUES (?, ?, ?)`,
			run.ID, w.Index, w.AvgReward,
		)
		if err != nil {
			return fmt.Errorf("failed to insert window: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID, or nil if absent.
func (s *RunStore) GetRun(runID string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT run_id, config_json, episodes, updates, total_reward, avg_reward,
		       invalid_steps, model_path, started_at, finished_at, created_at
		FROM runs WHERE run_id = ?`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT run_id, config_json, episodes, updates, total_reward, avg_reward,
		       invalid_steps, model_path, started_at, finished_at, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRewardWindows returns a run's reward windows in window order.
func (s *RunStore) GetRewardWindows(runID string) ([]RewardWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT run_id, window_index, avg_reward FROM reward_windows
		WHERE run_id = ? ORDER BY window_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query windows: %w", err)
	}
	defer rows.Close()

	var windows []RewardWindow
	for rows.Next() {
		var w RewardWindow
		if err := rows.Scan(&w.RunID, &w.Index, &w.AvgReward); err != nil {
			return nil, fmt.Errorf("failed to scan window: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// Close closes the store.
func (s *RunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var configJSON string
	var modelPath sql.NullString
	var startedMs, finishedMs, createdMs int64

	err := row.Scan(
		&run.ID, &configJSON, &run.Stats.Episodes, &run.Stats.Updates,
		&run.Stats.TotalReward, &run.Stats.AvgReward, &run.Stats.InvalidSteps,
		&modelPath, &startedMs, &finishedMs, &createdMs,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(configJSON), &run.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	run.ModelPath = modelPath.String
	run.Stats.StartedAt = time.UnixMilli(startedMs)
	run.Stats.FinishedAt = time.UnixMilli(finishedMs)
	run.CreatedAt = time.UnixMilli(createdMs)

	return &run, nil
}
