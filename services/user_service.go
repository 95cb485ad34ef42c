package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hmdno/salahtrack/models"
	"github.com/hmdno/salahtrack/utils"
)

// UserService owns user identity: registration, lookup, profile and password
// updates. It is constructed once at startup and injected into controllers.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService backed by db.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// NewUserInput carries the fields accepted at registration.
type NewUserInput struct {
	Name     string
	Age      int
	Email    string
	Password string
	Country  string
	Timezone string
	Gender   string
}

// Create registers a user, hashing the password with bcrypt before storing.
func (s *UserService) Create(in NewUserInput) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         in.Name,
		Age:          in.Age,
		Email:        in.Email,
		PasswordHash: hash,
		Country:      in.Country,
		Timezone:     in.Timezone,
		Gender:       in.Gender,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID fetches a user by primary key.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by unique email.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the optional fields of a profile patch. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	Name   *string
	Age    *int
	Gender *string
}

// UpdateProfile applies a partial profile update and returns the fresh row.
func (s *UserService) UpdateProfile(id uint, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Age != nil {
		user.Age = *upd.Age
	}
	if upd.Gender != nil {
		user.Gender = *upd.Gender
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password against the stored bcrypt
// hash, then replaces it with the hash of the new one. The plaintext is never
// persisted.
func (s *UserService) ChangePassword(id uint, currentPassword, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, currentPassword) {
		return ErrIncorrectPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Model(user).Update("password_hash", hash).Error
}

// Count returns the total number of registered users.
func (s *UserService) Count() (int64, error) {
	var n int64
	err := s.db.Model(&models.User{}).Count(&n).Error
	return n, err
}
