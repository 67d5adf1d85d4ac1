package model

import (
	"time"

	"gorm.io/gorm"
)

type RunStatus string

const (
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusPartial RunStatus = "PARTIAL"
)

// History is one persisted log entry together with the run it belongs to.
type History struct {
	gorm.Model
	RunID    string    `gorm:"not null;index"`
	Src      string    `gorm:"not null"`
	Dst      string    `gorm:"not null"`
	FilePath string    `gorm:"not null"`
	Action   Action    `gorm:"not null"`
	Status   RunStatus `gorm:"not null"`
	SyncedAt time.Time `gorm:"not null;index"`
}
