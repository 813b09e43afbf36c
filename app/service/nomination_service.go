package service

import (
	"context"
	"errors"
	"fmt"

	"thesis-management-backend/app/mailer"
	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
)

// NominationService menangani alur nominasi penguji:
// supervisor mengajukan -> dosen yang dinominasikan menerima/menolak ->
// penerimaan otomatis memberi capability examiner.
type NominationService interface {
	Nominate(ctx context.Context, actor permission.Actor, lecturerID uuid.UUID, details string) (*model.Nomination, error)
	Accept(ctx context.Context, actor permission.Actor, nominationID uuid.UUID) (*model.Nomination, error)
	Reject(ctx context.Context, actor permission.Actor, nominationID uuid.UUID) (*model.Nomination, error)
	ListForExaminer(actor permission.Actor, examinerID uuid.UUID) ([]model.Nomination, error)

	// ListForLecturer adalah inbox untuk dosen yang BELUM punya capability
	// examiner (nominasi pertamanya masih pending).
	ListForLecturer(actor permission.Actor, lecturerID uuid.UUID) ([]model.Nomination, error)
}

type nominationService struct {
	store repository.Store
	mail  mailer.Mailer
}

// NewNominationService menghubungkan Service dengan Store dan Mailer.
func NewNominationService(store repository.Store, mail mailer.Mailer) NominationService {
	return &nominationService{store: store, mail: mail}
}

// Nominate membuat nominasi pending untuk seorang dosen.
// Dosen yang tidak ada = ValidationError (referensi input salah, bukan 404).
func (s *nominationService) Nominate(ctx context.Context, actor permission.Actor, lecturerID uuid.UUID, details string) (*model.Nomination, error) {
	if err := actor.Require(permission.ActionCreate, permission.SubjectNomination, nil); err != nil {
		return nil, err
	}
	if details == "" {
		return nil, utils.NewValidationError("Nomination details are required")
	}

	lect, err := s.store.Lecturers().FindByID(lecturerID)
	if err != nil {
		var nErr *utils.NotFoundError
		if errors.As(err, &nErr) {
			return nil, utils.NewValidationError("Nominated lecturer does not exist")
		}
		return nil, err
	}

	nom := &model.Nomination{
		LecturerID: lecturerID,
		Details:    details,
	}
	if err := s.store.Nominations().Create(nom); err != nil {
		return nil, err
	}

	if lect.User != nil {
		s.mail.Send(lect.User.Name, lect.User.Email,
			"Nominasi penguji baru",
			fmt.Sprintf("Anda dinominasikan sebagai penguji oleh %s.\n\nDetail: %s", actor.User.Name, details))
	}
	return nom, nil
}

// Accept mengubah nominasi pending menjadi accepted dan memastikan dosen
// yang bersangkutan punya capability examiner, semuanya dalam 1 transaksi.
// Menerima nominasi yang sudah accepted = no-op idempoten;
// menerima nominasi yang sudah rejected = ConflictError.
func (s *nominationService) Accept(ctx context.Context, actor permission.Actor, nominationID uuid.UUID) (*model.Nomination, error) {
	var result *model.Nomination
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		nom, err := tx.Nominations().FindByIDForUpdate(nominationID)
		if err != nil {
			return err
		}
		if err := actor.Require(permission.ActionUpdate, permission.SubjectNomination, *nom); err != nil {
			return err
		}

		switch nom.Status() {
		case "accepted":
			// Sudah diterima sebelumnya: kembalikan apa adanya.
			result = nom
			return nil
		case "rejected":
			return utils.NewConflictError("Nomination has already been rejected")
		}

		accepted := true
		nom.Accepted = &accepted
		if err := tx.Nominations().Update(nom); err != nil {
			return err
		}

		// Pastikan capability examiner ada. Existence check dilakukan di
		// transaksi yang sama dengan insert, bukan mengandalkan
		// unique-constraint.
		_, err = tx.Lecturers().FindExaminerByLecturer(nom.LecturerID)
		if err != nil {
			var nErr *utils.NotFoundError
			if !errors.As(err, &nErr) {
				return err
			}
			if err := tx.Lecturers().CreateExaminer(&model.Examiner{LecturerID: nom.LecturerID}); err != nil {
				return err
			}
		}

		result = nom
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reject mengubah nominasi pending menjadi rejected.
// Menolak nominasi yang sudah rejected = no-op idempoten;
// menolak nominasi yang sudah accepted = ConflictError.
func (s *nominationService) Reject(ctx context.Context, actor permission.Actor, nominationID uuid.UUID) (*model.Nomination, error) {
	var result *model.Nomination
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		nom, err := tx.Nominations().FindByIDForUpdate(nominationID)
		if err != nil {
			return err
		}
		if err := actor.Require(permission.ActionUpdate, permission.SubjectNomination, *nom); err != nil {
			return err
		}

		switch nom.Status() {
		case "rejected":
			result = nom
			return nil
		case "accepted":
			return utils.NewConflictError("Nomination has already been accepted")
		}

		rejected := false
		nom.Accepted = &rejected
		if err := tx.Nominations().Update(nom); err != nil {
			return err
		}
		result = nom
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListForExaminer mengambil inbox nominasi seorang penguji
// (semua nominasi yang menyasar dosen pemilik capability tersebut).
func (s *nominationService) ListForExaminer(actor permission.Actor, examinerID uuid.UUID) ([]model.Nomination, error) {
	ex, err := s.store.Lecturers().FindExaminerByID(examinerID)
	if err != nil {
		return nil, err
	}
	// Dicek sebagai read Nomination: penguji boleh membaca semua nominasi,
	// dosen biasa hanya nominasi yang menyasar dirinya.
	if err := actor.Require(permission.ActionRead, permission.SubjectNomination,
		model.Nomination{LecturerID: ex.LecturerID}); err != nil {
		return nil, err
	}
	return s.store.Nominations().FindByLecturer(ex.LecturerID)
}

func (s *nominationService) ListForLecturer(actor permission.Actor, lecturerID uuid.UUID) ([]model.Nomination, error) {
	if _, err := s.store.Lecturers().FindByID(lecturerID); err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectNomination,
		model.Nomination{LecturerID: lecturerID}); err != nil {
		return nil, err
	}
	return s.store.Nominations().FindByLecturer(lecturerID)
}
