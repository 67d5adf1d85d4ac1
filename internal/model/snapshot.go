package model

import "time"

type RunSummary struct {
	RunID     string    `json:"run_id"`
	Created   int       `json:"created"`
	Modified  int       `json:"modified"`
	Deleted   int       `json:"deleted"`
	LogPath   string    `json:"log_path"`
	Err       string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

type WatchSnapshot struct {
	Src       string      `json:"src"`
	Dst       string      `json:"dst"`
	Format    Format      `json:"format"`
	StartedAt time.Time   `json:"started_at"`
	Paused    bool        `json:"paused"`
	Runs      int         `json:"runs"`
	Failed    int         `json:"failed"`
	LastRun   *RunSummary `json:"last_run"`
}
