// Package testutil provides an in-memory database preloaded with the schema
// for repository and use case tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"repairdesk/internal/infrastructure/persistence/models"
)

var dbSeq atomic.Int64

// NewTestDB opens a private in-memory SQLite database with every table
// migrated. A single connection keeps all statements on the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repairdesk_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// SeedUser inserts a user and returns its id. chatID may be nil.
func SeedUser(t *testing.T, db *gorm.DB, fullName, email, role string, chatID *int64) uint {
	t.Helper()
	u := &models.UserModel{FullName: fullName, Email: email, Role: role, TelegramChatID: chatID}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	c := &models.CategoryModel{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c.ID
}

// Count returns the number of rows in table matching repair_id, or all rows
// when repairID is zero.
func Count(t *testing.T, db *gorm.DB, table string, repairID uint) int64 {
	t.Helper()
	var n int64
	q := db.Table(table)
	if repairID != 0 {
		q = q.Where("repair_id = ?", repairID)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
