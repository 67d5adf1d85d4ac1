package daemon

import (
	"sync"
	"time"

	"dirsync/internal/model"
)

type State struct {
	mu        sync.RWMutex
	src       string
	dst       string
	format    model.Format
	startedAt time.Time
	paused    bool
	runs      int
	failed    int
	lastRun   *model.RunSummary
}

func NewState(src, dst string, format model.Format) *State {
	return &State{
		src:       src,
		dst:       dst,
		format:    format,
		startedAt: time.Now(),
	}
}

func (s *State) RecordRun(summary model.RunSummary, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs++
	if err != nil {
		s.failed++
	}
	s.lastRun = &summary
}

func (s *State) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

func (s *State) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

func (s *State) Snapshot() model.WatchSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.WatchSnapshot{
		Src:       s.src,
		Dst:       s.dst,
		Format:    s.format,
		StartedAt: s.startedAt,
		Paused:    s.paused,
		Runs:      s.runs,
		Failed:    s.failed,
	}
	if s.lastRun != nil {
		last := *s.lastRun
		snap.LastRun = &last
	}

	return snap
}
