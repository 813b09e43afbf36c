package service

import (
	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"

	"github.com/google/uuid"
)

// ProjectService menangani arsip project (read-only: project hanya
// dibuat sebagai efek samping evaluasi sidang yang lulus).
type ProjectService interface {
	FindAll(actor permission.Actor) ([]model.Project, error)
	FindByID(actor permission.Actor, projectID uuid.UUID) (*model.Project, error)
	FindForStudent(actor permission.Actor, studentID uuid.UUID) (*model.Project, error)
}

type projectService struct {
	store repository.Store
}

// NewProjectService menghubungkan Service dengan Store.
func NewProjectService(store repository.Store) ProjectService {
	return &projectService{store: store}
}

func (s *projectService) FindAll(actor permission.Actor) ([]model.Project, error) {
	if err := actor.Require(permission.ActionRead, permission.SubjectProject, nil); err != nil {
		return nil, err
	}
	return s.store.Projects().FindAll()
}

func (s *projectService) FindByID(actor permission.Actor, projectID uuid.UUID) (*model.Project, error) {
	project, err := s.store.Projects().FindByID(projectID)
	if err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectProject, *project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) FindForStudent(actor permission.Actor, studentID uuid.UUID) (*model.Project, error) {
	project, err := s.store.Projects().FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectProject, *project); err != nil {
		return nil, err
	}
	return project, nil
}
