package service

import (
	"context"
	"errors"
	"log"

	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
)

// AddSubmissionInput menampung data pengumpulan dokumen tesis.
// FileID menunjuk file yang sudah diupload lewat FileService (opsional).
type AddSubmissionInput struct {
	StudentEmail   string
	Title          string
	SubmissionType string
	FileID         *uuid.UUID
}

// StudentService menangani operasi milik mahasiswa: pengumpulan dokumen
// (dengan kuota keras 4 per mahasiswa), progress bar, dan proyeksi read.
type StudentService interface {
	AddSubmission(ctx context.Context, actor permission.Actor, input AddSubmissionInput) (*model.Submission, error)
	DeleteSubmission(ctx context.Context, actor permission.Actor, submissionID uuid.UUID) error
	Progress(actor permission.Actor, studentID uuid.UUID) (float64, error)

	FindAll(actor permission.Actor) ([]model.Student, error)
	FindByID(actor permission.Actor, studentID uuid.UUID) (*model.Student, error)
	FindSubmissions(actor permission.Actor, studentID uuid.UUID) ([]model.Submission, error)
}

type studentService struct {
	store repository.Store
}

// NewStudentService menghubungkan Service dengan Store.
func NewStudentService(store repository.Store) StudentService {
	return &studentService{store: store}
}

// AddSubmission menyimpan 1 dokumen tesis. Kuota 4 submission per mahasiswa
// dicek DI DALAM transaksi, setelah baris student dikunci, supaya dua request
// konkuren pada kuota ke-4 tidak sama-sama lolos.
func (s *studentService) AddSubmission(ctx context.Context, actor permission.Actor, input AddSubmissionInput) (*model.Submission, error) {
	if input.Title == "" {
		return nil, utils.NewValidationError("Submission title is required")
	}
	if !model.ValidSubmissionTypes[input.SubmissionType] {
		return nil, utils.NewValidationError(
			"Submission type must be one of: proposal, progress-1, progress-2, final")
	}

	var result *model.Submission
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		student, err := tx.Students().FindByUserEmail(input.StudentEmail)
		if err != nil {
			return err
		}

		sub := model.Submission{
			StudentID:      student.ID,
			Title:          input.Title,
			SubmissionType: input.SubmissionType,
			FileID:         input.FileID,
		}
		if err := actor.Require(permission.ActionCreate, permission.SubjectSubmission, sub); err != nil {
			return err
		}

		if input.FileID != nil {
			if _, err := tx.Files().FindByID(*input.FileID); err != nil {
				var nErr *utils.NotFoundError
				if errors.As(err, &nErr) {
					return utils.NewValidationError("Referenced file does not exist")
				}
				return err
			}
		}

		// Lock baris student, baru hitung kuota.
		if _, err := tx.Students().FindByIDForUpdate(student.ID); err != nil {
			return err
		}
		count, err := tx.Submissions().CountByStudent(student.ID)
		if err != nil {
			return err
		}
		if count >= model.MaxSubmissions {
			return utils.NewConflictError("Submission quota exceeded (maximum 4 per student)")
		}

		if err := tx.Submissions().Create(&sub); err != nil {
			return err
		}
		result = &sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSubmission menghapus 1 dokumen milik mahasiswa (mengembalikan kuota).
func (s *studentService) DeleteSubmission(ctx context.Context, actor permission.Actor, submissionID uuid.UUID) error {
	sub, err := s.store.Submissions().FindByID(submissionID)
	if err != nil {
		return err
	}
	if err := actor.Require(permission.ActionDelete, permission.SubjectSubmission, *sub); err != nil {
		return err
	}
	return s.store.Submissions().Delete(submissionID)
}

// Progress menghitung persentase progress mahasiswa: count/4 * 100.
// Aksesnya ber-scope record: mahasiswa hanya untuk dirinya sendiri.
// Count di atas kuota seharusnya tidak mungkin; kalau terjadi berarti ada
// data bermasalah, di-log sebagai warning tapi nilainya tetap dikembalikan.
func (s *studentService) Progress(actor permission.Actor, studentID uuid.UUID) (float64, error) {
	student, err := s.store.Students().FindByID(studentID)
	if err != nil {
		return 0, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectStudent, *student); err != nil {
		return 0, err
	}
	count, err := s.store.Submissions().CountByStudent(studentID)
	if err != nil {
		return 0, err
	}
	if count > model.MaxSubmissions {
		log.Printf("[WARN] student %s has %d submissions, above the quota of %d",
			studentID, count, model.MaxSubmissions)
	}
	return float64(count) / model.MaxSubmissions * 100, nil
}

func (s *studentService) FindAll(actor permission.Actor) ([]model.Student, error) {
	if err := actor.Require(permission.ActionRead, permission.SubjectStudent, nil); err != nil {
		return nil, err
	}
	return s.store.Students().FindAll()
}

func (s *studentService) FindByID(actor permission.Actor, studentID uuid.UUID) (*model.Student, error) {
	student, err := s.store.Students().FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectStudent, *student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentService) FindSubmissions(actor permission.Actor, studentID uuid.UUID) ([]model.Submission, error) {
	if _, err := s.store.Students().FindByID(studentID); err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectSubmission,
		model.Submission{StudentID: studentID}); err != nil {
		return nil, err
	}
	return s.store.Submissions().FindByStudent(studentID)
}
