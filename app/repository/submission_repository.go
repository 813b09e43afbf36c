package repository

import (
	"errors"

	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionRepository mendefinisikan operasi database untuk entity Submission.
type SubmissionRepository interface {
	Create(sub *model.Submission) error
	FindByID(id uuid.UUID) (*model.Submission, error)
	FindByStudent(studentID uuid.UUID) ([]model.Submission, error)
	FindByStudentIDs(studentIDs []uuid.UUID) ([]model.Submission, error)

	// CountByStudent dipanggil di dalam transaksi kuota, SETELAH baris
	// student dikunci, supaya dua request konkuren tidak sama-sama melihat
	// count yang sama.
	CountByStudent(studentID uuid.UUID) (int64, error)

	// FindLatestByStudent mengambil submission terbaru (created_at DESC),
	// sumber judul project saat arsip.
	FindLatestByStudent(studentID uuid.UUID) (*model.Submission, error)

	Delete(id uuid.UUID) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository membuat instance baru submissionRepository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db}
}

func (r *submissionRepository) Create(sub *model.Submission) error {
	return r.db.Create(sub).Error
}

func (r *submissionRepository) FindByID(id uuid.UUID) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.
		Preload("Student").
		Preload("File").
		Where("id = ?", id).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("submission")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) FindByStudent(studentID uuid.UUID) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.
		Preload("File").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) FindByStudentIDs(studentIDs []uuid.UUID) ([]model.Submission, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var subs []model.Submission
	err := r.db.
		Where("student_id IN ?", studentIDs).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) CountByStudent(studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Submission{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}

func (r *submissionRepository) FindLatestByStudent(studentID uuid.UUID) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("submission")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Submission{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("submission")
	}
	return nil
}
