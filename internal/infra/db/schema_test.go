package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unidash/unidash/internal/config"
	"github.com/unidash/unidash/internal/modules/model"
)

var addedLater = []string{"font_size", "text_align", "border_color", "border_style", "border_width"}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	return openSQLite(t, "file::memory:")
}

func openSQLite(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	d, err := gorm.Open(sqlite.Open(sqliteDSN(dsn)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := d.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return d
}

func dropColumns(t *testing.T, d *gorm.DB, cols []string) {
	t.Helper()
	for _, c := range cols {
		require.NoError(t, d.Exec("ALTER TABLE cell_formats DROP COLUMN "+c).Error)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)

	require.NoError(t, EnsureSchema(ctx, d, zap.NewNop()))
	require.NoError(t, EnsureSchema(ctx, d, zap.NewNop()))

	for _, m := range model.All() {
		assert.True(t, d.Migrator().HasTable(m), "%T", m)
	}

	require.NoError(t, d.Create(&model.View{Name: "General"}).Error)
	err := d.Create(&model.View{Name: "General"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

// Two processes starting against one fresh store race on every
// existence check and create.
func TestEnsureSchema_ConcurrentStarts(t *testing.T) {
	for round := 0; round < 10; round++ {
		path := filepath.Join(t.TempDir(), fmt.Sprintf("race-%d.db", round))
		handles := []*gorm.DB{openSQLite(t, path), openSQLite(t, path)}

		var wg sync.WaitGroup
		errs := make([]error, len(handles))
		for i, d := range handles {
			wg.Add(1)
			go func(i int, d *gorm.DB) {
				defer wg.Done()
				errs[i] = EnsureSchema(context.Background(), d, zap.NewNop())
			}(i, d)
		}
		wg.Wait()

		for i, err := range errs {
			require.NoError(t, err, "round %d handle %d", round, i)
		}
		for _, m := range model.All() {
			assert.True(t, handles[0].Migrator().HasTable(m), "%T", m)
		}
	}
}

// The first CREATE TABLE fails the way it does when another process created
// the table after the existence check.
func TestMigrateModel_RetriesAfterLostCreateRace(t *testing.T) {
	d := openMemory(t)
	injected := false
	require.NoError(t, d.Callback().Raw().Before("gorm:raw").Register("test:lost_create_race", func(tx *gorm.DB) {
		if injected || !strings.HasPrefix(strings.ToUpper(tx.Statement.SQL.String()), "CREATE TABLE") {
			return
		}
		injected = true
		_ = tx.AddError(errors.New("table `views` already exists"))
	}))

	require.NoError(t, migrateModel(d, &model.View{}, zap.NewNop()))
	assert.True(t, injected)
	assert.True(t, d.Migrator().HasTable(&model.View{}))
	assert.True(t, d.Migrator().HasIndex(&model.View{}, "uq_views_name"))
}

func TestMigrateModel_OtherErrorsPropagate(t *testing.T) {
	d := openMemory(t)
	require.NoError(t, d.Callback().Raw().Before("gorm:raw").Register("test:disk_full", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("disk full"))
	}))

	err := migrateModel(d, &model.View{}, zap.NewNop())
	assert.ErrorContains(t, err, "disk full")
}

func TestEnsureSchema_UpgradesLegacyCellFormats(t *testing.T) {
	ctx := context.Background()
	d := openMemory(t)
	require.NoError(t, EnsureSchema(ctx, d, zap.NewNop()))

	v := model.View{Name: "General"}
	require.NoError(t, d.Create(&v).Error)
	u := model.University{Name: "MIT"}
	require.NoError(t, d.Create(&u).Error)
	bg := "#ffeb3b"
	require.NoError(t, d.Create(&model.CellFormat{UniversityID: u.ID, ColumnKey: "city", ViewID: v.ID, BackgroundColor: &bg}).Error)

	dropColumns(t, d, addedLater)
	for _, c := range addedLater {
		require.False(t, d.Migrator().HasColumn(&model.CellFormat{}, c))
	}

	require.NoError(t, EnsureSchema(ctx, d, zap.NewNop()))
	for _, c := range model.CellFormatAttributeColumns {
		assert.True(t, d.Migrator().HasColumn(&model.CellFormat{}, c), c)
	}

	var got model.CellFormat
	require.NoError(t, d.Where("university_id = ? AND column_key = ?", u.ID, "city").First(&got).Error)
	require.NotNil(t, got.BackgroundColor)
	assert.Equal(t, bg, *got.BackgroundColor)
	assert.Nil(t, got.FontSize)
}

func TestAddMissingColumns(t *testing.T) {
	d := openMemory(t)
	require.NoError(t, d.AutoMigrate(model.All()...))
	dropColumns(t, d, addedLater[:2])

	require.NoError(t, addMissingColumns(d, &model.CellFormat{}, model.CellFormatAttributeColumns, zap.NewNop()))
	assert.True(t, d.Migrator().HasColumn(&model.CellFormat{}, "font_size"))
	assert.True(t, d.Migrator().HasColumn(&model.CellFormat{}, "text_align"))

	err := addMissingColumns(d, &model.CellFormat{}, []string{"shadow"}, zap.NewNop())
	assert.ErrorContains(t, err, "has no column shadow")
}

func TestEnsureSchema_StoreUnavailable(t *testing.T) {
	d := openMemory(t)
	sqlDB, err := d.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = EnsureSchema(context.Background(), d, zap.NewNop())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "unidash.db?_foreign_keys=1", sqliteDSN("unidash.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=1", sqliteDSN("file::memory:?cache=shared"))
	assert.Equal(t, "x.db?_fk=1", sqliteDSN("x.db?_fk=1"))

	assert.Equal(t, "host=db user=u", postgresDSN("host=db user=u", false))
	assert.Equal(t, "host=db user=u sslmode=require", postgresDSN("host=db user=u", true))
	assert.Equal(t, "host=db sslmode=require user=u", postgresDSN("host=db sslmode=disable user=u", true))
}

func TestNew_SQLiteMemoryKeepsItsConnection(t *testing.T) {
	assert.Zero(t, connMaxLifetime(config.DriverSQLite))
	assert.Equal(t, time.Hour, connMaxLifetime(config.DriverPostgres))

	d, err := New(&config.Config{Database: config.DBCfg{Driver: config.DriverSQLite, DSN: "file::memory:"}})
	require.NoError(t, err)
	sqlDB, err := d.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, EnsureSchema(context.Background(), d, zap.NewNop()))
	require.NoError(t, d.Create(&model.View{Name: "General"}).Error)
	var n int64
	require.NoError(t, d.Model(&model.View{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(&config.Config{Database: config.DBCfg{Driver: "mysql", DSN: "x"}})
	assert.ErrorContains(t, err, "unsupported database driver")
}
