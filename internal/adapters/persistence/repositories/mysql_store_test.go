package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestMySQLStore_Read(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewMySQLStore(db, "gatepass")

	rows := sqlmock.NewRows([]string{"id", "name", "data", "updated_at"}).
		AddRow(1, "gatepass", []byte(`{"users":[],"passes":[]}`), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `snapshots` WHERE name = ?")).
		WillReturnRows(rows)

	data, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"users":[],"passes":[]}`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_ReadMissing(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewMySQLStore(db, "gatepass")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `snapshots` WHERE name = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "data", "updated_at"}))

	_, err := store.Read(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_WriteUpserts(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewMySQLStore(db, "gatepass")

	mock.ExpectExec("INSERT INTO `snapshots` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Write(context.Background(), []byte(`{}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
