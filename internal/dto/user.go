package dto

import (
	"github.com/klsociety/governance-records-api/internal/models"
)

// UserDTO represents a user account in API responses
type UserDTO struct {
	ID          uint64          `json:"id"`
	Username    string          `json:"username"`
	UserType    models.UserType `json:"usertype"`
	InstituteID *uint64         `json:"institute_id,omitempty"`
}

// LoginResponse carries the issued token plus the role summary the browser
// application renders its navigation from
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserDTO  `json:"user"`
	Roles []string `json:"roles"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		UserType:    user.UserType,
		InstituteID: user.InstituteID,
	}
}
