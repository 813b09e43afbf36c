package repository

import (
	"errors"

	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository mendefinisikan operasi database untuk arsip Project.
// Project hanya dibuat lewat evaluasi viva, tidak ada update/delete.
type ProjectRepository interface {
	Create(project *model.Project) error
	FindAll() ([]model.Project, error)
	FindByID(id uuid.UUID) (*model.Project, error)
	FindByStudent(studentID uuid.UUID) (*model.Project, error)
	FindByStudentIDs(studentIDs []uuid.UUID) ([]model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository membuat instance baru projectRepository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db}
}

func (r *projectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) FindAll() ([]model.Project, error) {
	var projects []model.Project
	err := r.db.
		Preload("Student").
		Preload("Student.User").
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) FindByID(id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.
		Preload("Student").
		Preload("Student.User").
		Preload("Viva").
		Where("id = ?", id).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByStudent(studentID uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.
		Preload("Viva").
		Where("student_id = ?", studentID).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByStudentIDs(studentIDs []uuid.UUID) ([]model.Project, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var projects []model.Project
	err := r.db.
		Preload("Student").
		Preload("Student.User").
		Where("student_id IN ?", studentIDs).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}
