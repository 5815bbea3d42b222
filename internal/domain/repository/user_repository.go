package repository

import (
	"preventive-care-tracker/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
}

type RoleRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
}

type UserProfileRepository interface {
	Create(db *gorm.DB, profile *entity.UserProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.UserProfile, error)
	Update(db *gorm.DB, profile *entity.UserProfile) error
}
