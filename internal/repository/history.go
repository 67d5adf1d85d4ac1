package repository

import (
	"dirsync/internal/db"
	"dirsync/internal/model"
)

type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// SaveRun stores one row per entry of run under runID.
func (r *HistoryRepository) SaveRun(runID, src, dst string, run model.SyncRun, status model.RunStatus) error {
	if len(run) == 0 {
		return nil
	}

	rows := make([]model.History, 0, len(run))
	for _, e := range run {
		rows = append(rows, model.History{
			RunID:    runID,
			Src:      src,
			Dst:      dst,
			FilePath: e.FilePath,
			Action:   e.Action,
			Status:   status,
			SyncedAt: e.Timestamp,
		})
	}

	return db.DB.Create(&rows).Error
}

type Stats struct {
	Runs     int64
	Total    int64
	Created  int64
	Modified int64
	Deleted  int64
}

func (r *HistoryRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.History{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.History{}).
		Distinct("run_id").
		Count(&stats.Runs).Error; err != nil {
		return stats, err
	}

	var rows []struct {
		Action model.Action
		N      int64
	}
	if err := db.DB.Model(&model.History{}).
		Select("action, count(*) as n").
		Group("action").
		Scan(&rows).Error; err != nil {
		return stats, err
	}

	for _, row := range rows {
		switch row.Action {
		case model.ActionCreated:
			stats.Created = row.N
		case model.ActionModified:
			stats.Modified = row.N
		case model.ActionDeleted:
			stats.Deleted = row.N
		}
	}

	return stats, nil
}

func (r *HistoryRepository) GetRecent(limit int) ([]model.History, error) {
	var histories []model.History
	result := db.DB.
		Order("synced_at desc").
		Order("id desc").
		Limit(limit).
		Find(&histories)

	return histories, result.Error
}

// GetRun returns the entries of one run in the order they were applied.
func (r *HistoryRepository) GetRun(runID string) ([]model.History, error) {
	var histories []model.History
	result := db.DB.
		Where("run_id = ?", runID).
		Order("id asc").
		Find(&histories)

	return histories, result.Error
}
