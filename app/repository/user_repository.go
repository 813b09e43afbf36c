package repository

import (
	"errors"

	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository mendefinisikan kontrak operasi database untuk entity User.
type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)

	// FindActorByID mengambil user beserta seluruh profil role-nya
	// (Student, Lecturer + capability Supervisor/Examiner). Dipakai
	// middleware untuk membangun actor permission di tiap request.
	FindActorByID(id uuid.UUID) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository membuat instance baru userRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByEmail mencari user berdasarkan email (dipakai saat login).
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActorByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.
		Preload("Student").
		Preload("Lecturer").
		Preload("Lecturer.Supervisor").
		Preload("Lecturer.Examiner").
		Where("id = ?", id).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
