package service

import (
	"testing"

	"edubook-be/internal/model"
	"edubook-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Session{},
		&model.Document{},
		&model.GeneratedContent{},
		&model.AgentLog{},
		&model.ProcessingEvent{},
		&model.RevisionHistory{},
	))
	return db
}

func testUowFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(testDB(t))
}
