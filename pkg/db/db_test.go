package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

type sample struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestDSN(t *testing.T) {
	opts := &Options{Host: "127.0.0.1:3306", Username: "feed", Password: "secret", Database: "feed"}
	assert.Equal(t,
		"feed:secret@tcp(127.0.0.1:3306)/feed?charset=utf8mb4&parseTime=true&loc=Local&timeout=10s&readTimeout=30s&writeTimeout=30s",
		opts.DSN())
}

func TestOpenSQLite(t *testing.T) {
	opts := &Options{TablePrefix: "t_", MaxOpenConnections: 1}
	db, err := Open(sqlite.Open("file::memory:"), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.Equal(t, 20, opts.MaxIdleConnections)
	assert.Equal(t, 3*time.Second, opts.Timeout)
	assert.NotNil(t, opts.Logger)

	require.NoError(t, db.AutoMigrate(&sample{}))
	assert.True(t, db.Migrator().HasTable("t_sample"))

	require.NoError(t, db.WithContext(context.Background()).Create(&sample{Name: "a"}).Error)
	var got sample
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "a", got.Name)
}

func TestToGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, toGormLogLevel(0))
	assert.Equal(t, logger.Error, toGormLogLevel(1))
	assert.Equal(t, logger.Warn, toGormLogLevel(2))
	assert.Equal(t, logger.Info, toGormLogLevel(3))
	assert.Equal(t, logger.Info, toGormLogLevel(9))

	l := newGormLogger(&Options{LogLevel: 1}).LogMode(logger.Warn)
	assert.Equal(t, logger.Warn, l.(*gormLoggerAdapter).config.LogLevel)
}
