package repository

import (
	"errors"

	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentRepository mendefinisikan kontrak operasi database untuk entity Student.
type StudentRepository interface {
	FindAll() ([]model.Student, error)
	FindByID(id uuid.UUID) (*model.Student, error)
	FindByUserEmail(email string) (*model.Student, error)
	FindBySupervisor(supervisorID uuid.UUID) ([]model.Student, error)
	UpdateSupervisor(studentID, supervisorID uuid.UUID) error

	// FindByIDForUpdate mengambil baris student dengan row-level lock
	// (SELECT ... FOR UPDATE). Dipanggil di dalam Store.Atomic untuk
	// men-serialisasi pengecekan kuota submission per mahasiswa.
	FindByIDForUpdate(id uuid.UUID) (*model.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository membuat instance baru studentRepository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db}
}

func (r *studentRepository) FindAll() ([]model.Student, error) {
	var students []model.Student
	err := r.db.Preload("User").Find(&students).Error
	return students, err
}

func (r *studentRepository) FindByID(id uuid.UUID) (*model.Student, error) {
	var st model.Student
	err := r.db.Preload("User").Where("id = ?", id).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("student")
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// FindByUserEmail mencari student lewat email user-nya
// (endpoint submission memakai email sebagai pengenal mahasiswa).
func (r *studentRepository) FindByUserEmail(email string) (*model.Student, error) {
	var st model.Student
	err := r.db.
		Joins("JOIN users ON users.id = students.user_id").
		Where("users.email = ?", email).
		First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("student")
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *studentRepository) FindBySupervisor(supervisorID uuid.UUID) ([]model.Student, error) {
	var students []model.Student
	err := r.db.Preload("User").Where("supervisor_id = ?", supervisorID).Find(&students).Error
	return students, err
}

func (r *studentRepository) UpdateSupervisor(studentID, supervisorID uuid.UUID) error {
	res := r.db.Model(&model.Student{}).
		Where("id = ?", studentID).
		Update("supervisor_id", supervisorID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("student")
	}
	return nil
}

func (r *studentRepository) FindByIDForUpdate(id uuid.UUID) (*model.Student, error) {
	var st model.Student
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("student")
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}
