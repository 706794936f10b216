package usecase

import (
	"testing"
	"time"

	"employee-portal/config"
	"employee-portal/internal/model"
	"employee-portal/internal/token"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDB(&config.Config{DBDriver: "sqlite", DatabaseDSN: ":memory:", AppEnv: "test"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fakeClock struct{ t time.Time }

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Set(t time.Time)         { c.t = t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func identity(id uint, username string) token.Identity {
	return token.Identity{UserID: id, Username: username, Role: model.RoleUser}
}

func adminIdentity(id uint) token.Identity {
	return token.Identity{UserID: id, Username: "admin", Role: model.RoleAdmin}
}
