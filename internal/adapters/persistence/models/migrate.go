package models

import "gorm.io/gorm"

// AutoMigrate creates the tables used by the mysql storage driver
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&SnapshotRow{})
}
