package seed

import (
	"errors"
	"log"

	"github.com/klsociety/governance-records-api/internal/config"
	"github.com/klsociety/governance-records-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureRoles inserts the static role reference data if missing.
func EnsureRoles(db *gorm.DB) error {
	for _, name := range models.DefaultRoles {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account from configuration. A
// blank admin password skips seeding; an existing account is left alone.
func EnsureAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin account seed")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     cfg.AdminEmail,
		PasswordHash: string(hashedPassword),
		UserType:     models.UserTypeAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("seeded admin account %s", cfg.AdminEmail)
	return nil
}
