package seed

import (
	"testing"

	"github.com/klsociety/governance-records-api/internal/config"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.User{}))
	return db
}

func TestEnsureRoles_Idempotent(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, EnsureRoles(db))
	require.NoError(t, EnsureRoles(db))

	var count int64
	db.Model(&models.Role{}).Count(&count)
	require.Equal(t, int64(len(models.DefaultRoles)), count)

	var president models.Role
	require.NoError(t, db.Where("name = ?", models.RoleNamePresident).First(&president).Error)
}

func TestEnsureAdmin_CreatesAccount(t *testing.T) {
	db := setupDB(t)
	cfg := &config.Config{AdminEmail: "admin@example.com", AdminPassword: "bootstrap-secret"}

	require.NoError(t, EnsureAdmin(db, cfg))

	var admin models.User
	require.NoError(t, db.Where("username = ?", cfg.AdminEmail).First(&admin).Error)
	require.Equal(t, models.UserTypeAdmin, admin.UserType)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(cfg.AdminPassword)))

	// A second run leaves the existing account untouched.
	require.NoError(t, EnsureAdmin(db, cfg))
	var count int64
	db.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestEnsureAdmin_SkippedWithoutPassword(t *testing.T) {
	db := setupDB(t)
	cfg := &config.Config{AdminEmail: "admin@example.com"}

	require.NoError(t, EnsureAdmin(db, cfg))

	var count int64
	db.Model(&models.User{}).Count(&count)
	require.Equal(t, int64(0), count)
}
