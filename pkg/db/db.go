package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"trinetra.xyz/crowd-alerts/pkg/common"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

// Open connects, migrates and tunes the store behind dialector. The returned
// handle owns the connection pool until Close.
func Open(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLogger()

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql handle")
	}
	if dialector.Name() == "sqlite" {
		// single writer per device; one connection also keeps the pragmas
		// below and a shared in-memory database alive for the handle's life
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			_ = sqlDB.Close()
			return nil, errors.Wrap(err, "failed to enable sqlite foreign key support")
		}

		if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			_ = sqlDB.Close()
			return nil, errors.Wrap(err, "failed to set sqlite journal mode")
		}
	}

	instance := &DB{Conn: conn}

	if err := instance.Conn.AutoMigrate(&models.AlertRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	logger.Info("Database migration completed")

	return instance, nil
}

func (d *DB) Close() error {
	if d == nil || d.Conn == nil {
		return nil
	}
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func UseSqliteDialector(dbPath string) gorm.Dialector {
	if dbPath == "" {
		dbPath = "alerts.db"
	}
	return sqlite.Open(dbPath)
}

// UseMemorySqliteDialector returns a private in-memory database: every call
// gets its own name so handles never see each other's rows.
func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}
