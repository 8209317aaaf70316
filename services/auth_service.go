package services

import (
	"errors"
	"strings"

	"github.com/999NK/teste2nutria-sub000/config"
	"github.com/999NK/teste2nutria-sub000/models"
	"github.com/999NK/teste2nutria-sub000/utils"

	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

func RegisterUser(email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	var existing models.User
	err := config.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, Password: hash, Name: name}
	if err := config.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := config.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func FindUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := config.DB.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MigrateHash rewrites a legacy password hash to the current scheme. Called
// after a successful login, when the plaintext is briefly available.
func MigrateHash(user *models.User, password string) {
	if !utils.NeedsRehash(user.Password) {
		return
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return
	}
	user.Password = hash
	config.DB.Save(user)
}
