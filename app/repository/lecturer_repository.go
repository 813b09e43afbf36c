package repository

import (
	"errors"

	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LecturerRepository mendefinisikan operasi database untuk entity Lecturer
// beserta kedua capability-nya (Supervisor dan Examiner). Digabung dalam satu
// repository karena promosi role selalu menyentuh ketiganya bersama-sama.
type LecturerRepository interface {
	FindAll() ([]model.Lecturer, error)
	FindByID(id uuid.UUID) (*model.Lecturer, error)

	// FindByIDForUpdate mengunci baris lecturer selama transaksi promosi,
	// supaya dua promosi konkuren tidak sama-sama lolos existence check.
	FindByIDForUpdate(id uuid.UUID) (*model.Lecturer, error)

	FindAllSupervisors() ([]model.Supervisor, error)
	FindSupervisorByID(id uuid.UUID) (*model.Supervisor, error)
	FindSupervisorByLecturer(lecturerID uuid.UUID) (*model.Supervisor, error)
	CreateSupervisor(sup *model.Supervisor) error

	FindAllExaminers() ([]model.Examiner, error)
	FindExaminerByID(id uuid.UUID) (*model.Examiner, error)
	FindExaminerByLecturer(lecturerID uuid.UUID) (*model.Examiner, error)
	FindExaminersByIDs(ids []uuid.UUID) ([]model.Examiner, error)
	CreateExaminer(ex *model.Examiner) error
}

type lecturerRepository struct {
	db *gorm.DB
}

// NewLecturerRepository membuat instance baru lecturerRepository.
func NewLecturerRepository(db *gorm.DB) LecturerRepository {
	return &lecturerRepository{db}
}

// FindAll mengambil semua dosen beserta capability-nya, supaya client bisa
// menandai siapa yang sudah menjadi supervisor/examiner.
func (r *lecturerRepository) FindAll() ([]model.Lecturer, error) {
	var lects []model.Lecturer
	err := r.db.
		Preload("User").
		Preload("Supervisor").
		Preload("Examiner").
		Find(&lects).Error
	return lects, err
}

func (r *lecturerRepository) FindByID(id uuid.UUID) (*model.Lecturer, error) {
	var lect model.Lecturer
	err := r.db.
		Preload("User").
		Preload("Supervisor").
		Preload("Examiner").
		Where("id = ?", id).
		First(&lect).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("lecturer")
	}
	if err != nil {
		return nil, err
	}
	return &lect, nil
}

func (r *lecturerRepository) FindByIDForUpdate(id uuid.UUID) (*model.Lecturer, error) {
	var lect model.Lecturer
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&lect).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("lecturer")
	}
	if err != nil {
		return nil, err
	}
	return &lect, nil
}

// ===============================
//  SUPERVISOR CAPABILITY
// ===============================

func (r *lecturerRepository) FindAllSupervisors() ([]model.Supervisor, error) {
	var sups []model.Supervisor
	err := r.db.
		Preload("Lecturer").
		Preload("Lecturer.User").
		Preload("Students").
		Find(&sups).Error
	return sups, err
}

func (r *lecturerRepository) FindSupervisorByID(id uuid.UUID) (*model.Supervisor, error) {
	var sup model.Supervisor
	err := r.db.
		Preload("Lecturer").
		Preload("Lecturer.User").
		Where("id = ?", id).
		First(&sup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("supervisor")
	}
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

func (r *lecturerRepository) FindSupervisorByLecturer(lecturerID uuid.UUID) (*model.Supervisor, error) {
	var sup model.Supervisor
	err := r.db.Where("lecturer_id = ?", lecturerID).First(&sup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("supervisor")
	}
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

func (r *lecturerRepository) CreateSupervisor(sup *model.Supervisor) error {
	return r.db.Create(sup).Error
}

// ===============================
//  EXAMINER CAPABILITY
// ===============================

func (r *lecturerRepository) FindAllExaminers() ([]model.Examiner, error) {
	var exs []model.Examiner
	err := r.db.
		Preload("Lecturer").
		Preload("Lecturer.User").
		Find(&exs).Error
	return exs, err
}

func (r *lecturerRepository) FindExaminerByID(id uuid.UUID) (*model.Examiner, error) {
	var ex model.Examiner
	err := r.db.
		Preload("Lecturer").
		Preload("Lecturer.User").
		Where("id = ?", id).
		First(&ex).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("examiner")
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *lecturerRepository) FindExaminerByLecturer(lecturerID uuid.UUID) (*model.Examiner, error) {
	var ex model.Examiner
	err := r.db.Where("lecturer_id = ?", lecturerID).First(&ex).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("examiner")
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *lecturerRepository) FindExaminersByIDs(ids []uuid.UUID) ([]model.Examiner, error) {
	var exs []model.Examiner
	err := r.db.Where("id IN ?", ids).Find(&exs).Error
	return exs, err
}

func (r *lecturerRepository) CreateExaminer(ex *model.Examiner) error {
	return r.db.Create(ex).Error
}
