package service

import (
	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"

	"github.com/google/uuid"
)

// LecturerService menangani proyeksi read daftar dosen (dengan flag
// capability supervisor/examiner) dan daftar penguji.
type LecturerService interface {
	FindAll(actor permission.Actor) ([]model.Lecturer, error)
	FindByID(actor permission.Actor, lecturerID uuid.UUID) (*model.Lecturer, error)
	FindAllExaminers(actor permission.Actor) ([]model.Examiner, error)
}

type lecturerService struct {
	store repository.Store
}

// NewLecturerService menghubungkan Service dengan Store.
func NewLecturerService(store repository.Store) LecturerService {
	return &lecturerService{store: store}
}

func (s *lecturerService) FindAll(actor permission.Actor) ([]model.Lecturer, error) {
	if err := actor.Require(permission.ActionRead, permission.SubjectLecturer, nil); err != nil {
		return nil, err
	}
	return s.store.Lecturers().FindAll()
}

func (s *lecturerService) FindByID(actor permission.Actor, lecturerID uuid.UUID) (*model.Lecturer, error) {
	lect, err := s.store.Lecturers().FindByID(lecturerID)
	if err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectLecturer, *lect); err != nil {
		return nil, err
	}
	return lect, nil
}

func (s *lecturerService) FindAllExaminers(actor permission.Actor) ([]model.Examiner, error) {
	if err := actor.Require(permission.ActionRead, permission.SubjectExaminer, nil); err != nil {
		return nil, err
	}
	return s.store.Lecturers().FindAllExaminers()
}
