package implementation

import (
	"testing"

	"edubook-be/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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
