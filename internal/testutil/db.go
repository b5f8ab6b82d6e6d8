package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unidash/unidash/internal/infra/db"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns an in-memory sqlite store with foreign keys enforced and the
// full schema applied. The store is discarded when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	d := OpenRaw(t)
	require.NoError(t, db.EnsureSchema(context.Background(), d, zap.NewNop()))
	return d
}

// OpenRaw returns an empty in-memory sqlite store without any schema.
func OpenRaw(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return d
}

func Ptr[T any](v T) *T { return &v }
