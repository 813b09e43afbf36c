package service

import (
	"errors"
	"strings"

	"thesis-management-backend/app/model"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput menampung data pendaftaran akun baru.
// MatricNumber diisi untuk akun mahasiswa, StaffNumber untuk akun dosen
// (tepat salah satu yang boleh terisi).
type RegisterInput struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	MatricNumber string `json:"matricNumber"`
	StaffNumber  string `json:"staffNumber"`
}

// Interface AuthService mendefinisikan operasi autentikasi.
type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(email, password string) (*model.User, string, error)
}

type authService struct {
	store repository.Store
}

// NewAuthService menghubungkan Service dengan Store.
func NewAuthService(store repository.Store) AuthService {
	return &authService{store: store}
}

// Register mendaftarkan user baru beserta profil role-nya
// (Student atau Lecturer) dalam 1 transaksi.
func (s *authService) Register(input RegisterInput) (*model.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	hasMatric := input.MatricNumber != ""
	hasStaff := input.StaffNumber != ""
	if hasMatric == hasStaff {
		return nil, utils.NewValidationError(
			"Provide exactly one of matricNumber (student) or staffNumber (lecturer)")
	}

	// Cek duplikasi email lebih dulu supaya pesannya jelas,
	// bukan error unique-constraint mentah.
	if _, err := s.store.Users().FindByEmail(input.Email); err == nil {
		return nil, utils.NewConflictError("Email is already registered")
	} else {
		var nErr *utils.NotFoundError
		if !errors.As(err, &nErr) {
			return nil, err
		}
	}

	// Hash password agar admin database pun tidak tahu password asli user.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if hasMatric {
		user.Student = &model.Student{MatricNumber: input.MatricNumber}
	} else {
		user.Lecturer = &model.Lecturer{StaffNumber: input.StaffNumber}
	}

	if err := s.store.Users().Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login memeriksa email + password, lalu menerbitkan JWT access token.
func (s *authService) Login(email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.Users().FindByEmail(email)
	if err != nil {
		var nErr *utils.NotFoundError
		if errors.As(err, &nErr) || errors.Is(err, gorm.ErrRecordNotFound) {
			// Pesan disamakan dengan password salah supaya tidak membocorkan
			// email mana yang terdaftar.
			return nil, "", utils.NewValidationError("Invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", utils.NewValidationError("Invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
