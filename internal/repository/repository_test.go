package repository

import (
	"testing"
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(&admin.User{}, &audit.AuditLog{}))
	return conn
}

// --------------------- Admin users ---------------------

func TestAdminRepo(t *testing.T) {
	repo := NewAdminRepo(openSQLite(t))

	u := &admin.User{Username: "alice", Password: "hash", Role: admin.RoleAdmin, Active: true}
	require.NoError(t, repo.SaveUser(u))
	require.NotZero(t, u.ID)

	exists, err := repo.UsernameExists("alice")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.UsernameExists("bob")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.IsAdmin())

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TouchLastLogin(u.ID, at))
	got, err = repo.GetByID(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, got.LastLoginAt.Equal(at))

	require.NoError(t, repo.SaveUser(&admin.User{Username: "aaron", Password: "hash", Role: admin.RoleRecruiter, Active: true}))
	users, err := repo.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "aaron", users[0].Username)
}

// --------------------- Audit logs ---------------------

func TestAuditRepo_SearchAndPrune(t *testing.T) {
	conn := openSQLite(t)
	repo := NewAuditRepo(conn)

	old := &audit.AuditLog{UserID: 1, Action: audit.ActionStatusChange, ResourceType: audit.ResourceApplication, ResourceID: "a1"}
	require.NoError(t, repo.Record(old))
	require.NoError(t, conn.Model(old).Update("created_at", time.Now().AddDate(0, 0, -120)).Error)

	require.NoError(t, repo.Record(&audit.AuditLog{UserID: 1, Action: audit.ActionStatusEmail, ResourceType: audit.ResourceApplication, ResourceID: "a1"}))
	require.NoError(t, repo.Record(&audit.AuditLog{UserID: 2, Action: audit.ActionUpdateDetails, ResourceType: audit.ResourceApplication, ResourceID: "a2"}))

	rid := "a1"
	logs, err := repo.Search(AuditQueryParams{ResourceID: &rid})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, audit.ActionStatusEmail, logs[0].Action)

	uid := uint(2)
	logs, err = repo.Search(AuditQueryParams{UserID: &uid})
	require.NoError(t, err)
	require.Len(t, logs, 1)

	logs, err = repo.Search(AuditQueryParams{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	n, err := repo.Prune(time.Now().AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	logs, err = repo.Search(AuditQueryParams{})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestAuditRepo_HistoryIsChronological(t *testing.T) {
	conn := openSQLite(t)
	repo := NewAuditRepo(conn)

	first := &audit.AuditLog{UserID: 1, Action: audit.ActionStatusChange, ResourceType: audit.ResourceApplication, ResourceID: "a1"}
	require.NoError(t, repo.Record(first))
	require.NoError(t, conn.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, repo.Record(&audit.AuditLog{UserID: 1, Action: audit.ActionStatusEmail, ResourceType: audit.ResourceApplication, ResourceID: "a1"}))
	require.NoError(t, repo.Record(&audit.AuditLog{UserID: 1, Action: audit.ActionStatusChange, ResourceType: "admin_user", ResourceID: "a1"}))

	logs, err := repo.History(audit.ResourceApplication, "a1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, audit.ActionStatusChange, logs[0].Action)
	assert.Equal(t, audit.ActionStatusEmail, logs[1].Action)

	logs, err = repo.History(audit.ResourceApplication, "missing")
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestRepos_ExecTxRollsBack(t *testing.T) {
	conn := openSQLite(t)
	repos := &Repos{
		Application: NewApplicationRepo(conn),
		Admin:       NewAdminRepo(conn),
		Audit:       NewAuditRepo(conn),
		db:          conn,
	}

	err := repos.ExecTx(func(tx *Repos) error {
		if err := tx.Admin.SaveUser(&admin.User{Username: "temp", Password: "x", Role: admin.RoleRecruiter}); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	require.Error(t, err)

	exists, err := repos.Admin.UsernameExists("temp")
	require.NoError(t, err)
	assert.False(t, exists)
}
