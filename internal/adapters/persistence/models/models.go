package models

import "time"

// SnapshotRow stores one serialized snapshot per key in the snapshots table
type SnapshotRow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Data      []byte    `gorm:"type:longblob;not null" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SnapshotRow) TableName() string {
	return "snapshots"
}
