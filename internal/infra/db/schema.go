package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/unidash/unidash/internal/modules/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStoreUnavailable is returned when the backing database cannot be reached.
var ErrStoreUnavailable = errors.New("store unavailable")

// EnsureSchema creates every table, uniqueness rule and cascade the
// dashboard relies on, then adds cell format attribute columns missing from
// stores created by older releases. It is additive and safe to run on every
// start, including from several processes at once.
func EnsureSchema(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	tx := db.WithContext(ctx)
	for _, m := range model.All() {
		if err := migrateModel(tx, m, log); err != nil {
			return err
		}
	}

	return addMissingColumns(tx, &model.CellFormat{}, model.CellFormatAttributeColumns, log)
}

// migrateAttempts bounds how often one model is migrated again after another
// process created one of its tables or indexes between check and create.
const migrateAttempts = 3

func migrateModel(tx *gorm.DB, m any, log *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= migrateAttempts; attempt++ {
		err = tx.AutoMigrate(m)
		if err == nil || !isAlreadyExists(err) {
			break
		}
		log.Info("schema object created concurrently, migrating again",
			zap.String("model", fmt.Sprintf("%T", m)),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	if err != nil {
		return fmt.Errorf("auto migrate %T: %w", m, err)
	}
	return nil
}

func addMissingColumns(tx *gorm.DB, m any, columns []string, log *zap.Logger) error {
	migrator := tx.Migrator()
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(m); err != nil {
		return fmt.Errorf("parse model: %w", err)
	}

	for _, col := range columns {
		field := stmt.Schema.LookUpField(col)
		if field == nil {
			return fmt.Errorf("model %s has no column %s", stmt.Schema.Table, col)
		}
		if migrator.HasColumn(m, col) {
			continue
		}
		if err := migrator.AddColumn(m, field.Name); err != nil {
			if isAlreadyExists(err) {
				log.Info("column already exists, skipping", zap.String("table", stmt.Schema.Table), zap.String("column", col))
				continue
			}
			return fmt.Errorf("add column %s.%s: %w", stmt.Schema.Table, col, err)
		}
		log.Info("column added", zap.String("table", stmt.Schema.Table), zap.String("column", col))
	}
	return nil
}

func isAlreadyExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column")
}
