package service

import (
	"context"
	"errors"

	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
)

// RoleService menangani promosi capability dosen (supervisor / examiner).
// Kedua operasi idempoten: promosi ulang mengembalikan capability yang
// sudah ada tanpa error. Promosi hanya boleh dilakukan oleh dosen;
// mahasiswa ditolak dengan AuthorizationError.
type RoleService interface {
	PromoteToSupervisor(ctx context.Context, actor permission.Actor, lecturerID uuid.UUID) (*model.Supervisor, error)
	PromoteToExaminer(ctx context.Context, actor permission.Actor, lecturerID uuid.UUID) (*model.Examiner, error)
}

type roleService struct {
	store repository.Store
}

// NewRoleService menghubungkan Service dengan Store.
func NewRoleService(store repository.Store) RoleService {
	return &roleService{store: store}
}

// PromoteToSupervisor menjadikan dosen sebagai pembimbing.
// Find-or-create berjalan di dalam transaksi dengan lock baris lecturer,
// supaya dua promosi konkuren tidak membuat capability ganda.
func (s *roleService) PromoteToSupervisor(ctx context.Context, actor permission.Actor, lecturerID uuid.UUID) (*model.Supervisor, error) {
	if !actor.IsLecturer() {
		return nil, utils.NewAuthorizationError("Only lecturers can assign roles")
	}

	var result *model.Supervisor
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		if _, err := tx.Lecturers().FindByIDForUpdate(lecturerID); err != nil {
			return err
		}

		existing, err := tx.Lecturers().FindSupervisorByLecturer(lecturerID)
		if err == nil {
			result = existing
			return nil
		}
		var nErr *utils.NotFoundError
		if !errors.As(err, &nErr) {
			return err
		}

		sup := &model.Supervisor{LecturerID: lecturerID}
		if err := tx.Lecturers().CreateSupervisor(sup); err != nil {
			return err
		}
		result = sup
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PromoteToExaminer menjadikan dosen sebagai penguji, pola yang sama
// dengan PromoteToSupervisor.
func (s *roleService) PromoteToExaminer(ctx context.Context, actor permission.Actor, lecturerID uuid.UUID) (*model.Examiner, error) {
	if !actor.IsLecturer() {
		return nil, utils.NewAuthorizationError("Only lecturers can assign roles")
	}

	var result *model.Examiner
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		if _, err := tx.Lecturers().FindByIDForUpdate(lecturerID); err != nil {
			return err
		}

		existing, err := tx.Lecturers().FindExaminerByLecturer(lecturerID)
		if err == nil {
			result = existing
			return nil
		}
		var nErr *utils.NotFoundError
		if !errors.As(err, &nErr) {
			return err
		}

		ex := &model.Examiner{LecturerID: lecturerID}
		if err := tx.Lecturers().CreateExaminer(ex); err != nil {
			return err
		}
		result = ex
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
