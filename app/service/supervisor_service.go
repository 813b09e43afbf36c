package service

import (
	"context"

	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
)

// SupervisorService menangani dashboard pembimbing: daftar mahasiswa
// bimbingan, progress mereka, dokumen mereka, dan arsip project-nya.
type SupervisorService interface {
	FindAll(actor permission.Actor) ([]model.Supervisor, error)
	AssignStudent(ctx context.Context, actor permission.Actor, supervisorID, studentID uuid.UUID) error
	AssignedStudents(actor permission.Actor, supervisorID uuid.UUID) ([]model.Student, error)

	// StudentProgress menghitung progress 1 mahasiswa bimbingan.
	// Mahasiswa yang tidak dibimbing supervisor tersebut = AuthorizationError.
	StudentProgress(actor permission.Actor, supervisorID, studentID uuid.UUID) (float64, error)

	SupervisedSubmissions(actor permission.Actor, supervisorID uuid.UUID) ([]model.Submission, error)
	ProjectArchive(actor permission.Actor, supervisorID uuid.UUID) ([]model.Project, error)
}

type supervisorService struct {
	store      repository.Store
	studentSvc StudentService
}

// NewSupervisorService menghubungkan Service dengan Store.
func NewSupervisorService(store repository.Store, studentSvc StudentService) SupervisorService {
	return &supervisorService{store: store, studentSvc: studentSvc}
}

func (s *supervisorService) FindAll(actor permission.Actor) ([]model.Supervisor, error) {
	if err := actor.Require(permission.ActionRead, permission.SubjectSupervisor, nil); err != nil {
		return nil, err
	}
	return s.store.Lecturers().FindAllSupervisors()
}

// AssignStudent menempelkan mahasiswa ke pembimbing.
func (s *supervisorService) AssignStudent(ctx context.Context, actor permission.Actor, supervisorID, studentID uuid.UUID) error {
	sup, err := s.store.Lecturers().FindSupervisorByID(supervisorID)
	if err != nil {
		return err
	}
	// Hanya supervisor yang bersangkutan yang boleh mengambil mahasiswa
	// ke dalam bimbingannya sendiri.
	if !actor.IsSupervisor() || actor.Lecturer.Supervisor.ID != sup.ID {
		return utils.NewAuthorizationError("Only the supervisor can take on a student")
	}
	if _, err := s.store.Students().FindByID(studentID); err != nil {
		return err
	}
	return s.store.Students().UpdateSupervisor(studentID, sup.ID)
}

func (s *supervisorService) AssignedStudents(actor permission.Actor, supervisorID uuid.UUID) ([]model.Student, error) {
	if _, err := s.store.Lecturers().FindSupervisorByID(supervisorID); err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectStudent, nil); err != nil {
		return nil, err
	}
	return s.store.Students().FindBySupervisor(supervisorID)
}

func (s *supervisorService) StudentProgress(actor permission.Actor, supervisorID, studentID uuid.UUID) (float64, error) {
	if _, err := s.store.Lecturers().FindSupervisorByID(supervisorID); err != nil {
		return 0, err
	}
	student, err := s.store.Students().FindByID(studentID)
	if err != nil {
		return 0, err
	}
	if student.SupervisorID == nil || *student.SupervisorID != supervisorID {
		return 0, utils.NewAuthorizationError("Student is not supervised by this supervisor")
	}
	return s.studentSvc.Progress(actor, studentID)
}

// SupervisedSubmissions mengambil semua dokumen milik mahasiswa bimbingan
// seorang supervisor.
func (s *supervisorService) SupervisedSubmissions(actor permission.Actor, supervisorID uuid.UUID) ([]model.Submission, error) {
	if err := actor.Require(permission.ActionRead, permission.SubjectSubmission, nil); err != nil {
		return nil, err
	}
	studentIDs, err := s.supervisedStudentIDs(supervisorID)
	if err != nil {
		return nil, err
	}
	return s.store.Submissions().FindByStudentIDs(studentIDs)
}

// ProjectArchive mengambil arsip project mahasiswa bimbingan.
func (s *supervisorService) ProjectArchive(actor permission.Actor, supervisorID uuid.UUID) ([]model.Project, error) {
	if err := actor.Require(permission.ActionRead, permission.SubjectProject, nil); err != nil {
		return nil, err
	}
	studentIDs, err := s.supervisedStudentIDs(supervisorID)
	if err != nil {
		return nil, err
	}
	return s.store.Projects().FindByStudentIDs(studentIDs)
}

func (s *supervisorService) supervisedStudentIDs(supervisorID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.store.Lecturers().FindSupervisorByID(supervisorID); err != nil {
		return nil, err
	}
	students, err := s.store.Students().FindBySupervisor(supervisorID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	return ids, nil
}
