package repository

import (
	"errors"

	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VivaRepository mendefinisikan operasi database untuk entity Viva.
type VivaRepository interface {
	Create(viva *model.Viva) error
	FindByID(id uuid.UUID) (*model.Viva, error)

	// FindByIDForUpdate mengunci baris viva selama transaksi evaluasi,
	// supaya dua evaluasi konkuren tidak sama-sama melihat state belum-dievaluasi.
	FindByIDForUpdate(id uuid.UUID) (*model.Viva, error)

	Update(viva *model.Viva) error

	// AppendExaminers menambahkan penguji ke relasi many-to-many
	// viva_examiners. Penguji yang sudah terdaftar tidak diduplikasi.
	AppendExaminers(viva *model.Viva, examiners []model.Examiner) error

	FindByStudent(studentID uuid.UUID) (*model.Viva, error)
	FindByExaminer(examinerID uuid.UUID) ([]model.Viva, error)
}

type vivaRepository struct {
	db *gorm.DB
}

// NewVivaRepository membuat instance baru vivaRepository.
func NewVivaRepository(db *gorm.DB) VivaRepository {
	return &vivaRepository{db}
}

func (r *vivaRepository) Create(viva *model.Viva) error {
	return r.db.Create(viva).Error
}

func (r *vivaRepository) FindByID(id uuid.UUID) (*model.Viva, error) {
	var viva model.Viva
	err := r.db.
		Preload("Student").
		Preload("Student.User").
		Preload("Examiners").
		Preload("Examiners.Lecturer").
		Where("id = ?", id).
		First(&viva).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("viva")
	}
	if err != nil {
		return nil, err
	}
	return &viva, nil
}

func (r *vivaRepository) FindByIDForUpdate(id uuid.UUID) (*model.Viva, error) {
	var viva model.Viva
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&viva).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("viva")
	}
	if err != nil {
		return nil, err
	}
	return &viva, nil
}

func (r *vivaRepository) Update(viva *model.Viva) error {
	// Save supaya Passed bernilai false (tidak lulus) tetap ter-persist.
	return r.db.Save(viva).Error
}

func (r *vivaRepository) AppendExaminers(viva *model.Viva, examiners []model.Examiner) error {
	return r.db.Model(viva).Association("Examiners").Append(examiners)
}

func (r *vivaRepository) FindByStudent(studentID uuid.UUID) (*model.Viva, error) {
	var viva model.Viva
	err := r.db.
		Preload("Examiners").
		Preload("Examiners.Lecturer").
		Preload("Examiners.Lecturer.User").
		Where("student_id = ?", studentID).
		First(&viva).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("viva")
	}
	if err != nil {
		return nil, err
	}
	return &viva, nil
}

func (r *vivaRepository) FindByExaminer(examinerID uuid.UUID) ([]model.Viva, error) {
	var vivas []model.Viva
	err := r.db.
		Preload("Student").
		Preload("Student.User").
		Preload("Examiners").
		Joins("JOIN viva_examiners ON viva_examiners.viva_id = vivas.id").
		Where("viva_examiners.examiner_id = ?", examinerID).
		Order("vivas.viva_date ASC").
		Find(&vivas).Error
	return vivas, err
}
