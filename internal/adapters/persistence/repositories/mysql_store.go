package repositories

import (
	"context"
	"errors"

	"gatepass/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mysqlStore keeps the snapshot blob in one row of the snapshots table
type mysqlStore struct {
	db  *gorm.DB
	key string
}

// NewMySQLStore creates a store backed by the snapshots table, row selected by key
func NewMySQLStore(db *gorm.DB, key string) SnapshotStore {
	return &mysqlStore{db: db, key: key}
}

// Read loads the row for the key
func (s *mysqlStore) Read(ctx context.Context) ([]byte, error) {
	var row models.SnapshotRow
	err := s.db.WithContext(ctx).Where("name = ?", s.key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotMissing
		}
		return nil, err
	}
	return row.Data, nil
}

// Write upserts the row for the key
func (s *mysqlStore) Write(ctx context.Context, data []byte) error {
	row := models.SnapshotRow{Name: s.key, Data: data}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

// Ping checks the database connection
func (s *mysqlStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
