package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"thesis-management-backend/app/mailer"
	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
)

// VivaService menangani siklus hidup sidang:
// dibuat -> penguji ditugaskan -> dievaluasi sekali (terminal) ->
// kalau lulus, project otomatis diarsipkan.
type VivaService interface {
	Create(ctx context.Context, actor permission.Actor, input CreateVivaInput) (*model.Viva, error)
	AssignExaminers(ctx context.Context, actor permission.Actor, vivaID uuid.UUID, examinerIDs []uuid.UUID) (*model.Viva, error)
	Evaluate(ctx context.Context, actor permission.Actor, vivaID uuid.UUID, evaluation string, passed bool) (*model.Viva, error)

	FindByID(actor permission.Actor, vivaID uuid.UUID) (*model.Viva, error)
	FindForStudent(actor permission.Actor, studentID uuid.UUID) (*model.Viva, error)
	FindForExaminer(actor permission.Actor, examinerID uuid.UUID) ([]model.Viva, error)

	// FindAssignedForSupervisor mengambil sidang yang diuji oleh seorang
	// supervisor lewat capability examiner dosen yang sama (capability
	// bersifat aditif, dosen boleh membimbing sekaligus menguji).
	FindAssignedForSupervisor(actor permission.Actor, supervisorID uuid.UUID) ([]model.Viva, error)
}

// CreateVivaInput menampung data pembuatan sidang baru.
type CreateVivaInput struct {
	StudentID   uuid.UUID
	Topic       string
	VivaDate    time.Time
	ExaminerIDs []uuid.UUID
}

type vivaService struct {
	store repository.Store
	mail  mailer.Mailer
}

// NewVivaService menghubungkan Service dengan Store dan Mailer.
func NewVivaService(store repository.Store, mail mailer.Mailer) VivaService {
	return &vivaService{store: store, mail: mail}
}

// Create membuat sidang untuk seorang mahasiswa. Satu mahasiswa hanya punya
// 1 sidang (unique index student_id); pembuatan kedua = ConflictError.
func (s *vivaService) Create(ctx context.Context, actor permission.Actor, input CreateVivaInput) (*model.Viva, error) {
	if err := actor.Require(permission.ActionCreate, permission.SubjectViva, nil); err != nil {
		return nil, err
	}
	if input.Topic == "" {
		return nil, utils.NewValidationError("Viva topic is required")
	}
	if input.VivaDate.IsZero() {
		return nil, utils.NewValidationError("Viva date is required")
	}

	if _, err := s.store.Students().FindByID(input.StudentID); err != nil {
		var nErr *utils.NotFoundError
		if errors.As(err, &nErr) {
			return nil, utils.NewValidationError("Student does not exist")
		}
		return nil, err
	}

	examiners, err := s.resolveExaminers(input.ExaminerIDs)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Vivas().FindByStudent(input.StudentID); err == nil {
		return nil, utils.NewConflictError("Student already has a viva scheduled")
	} else {
		var nErr *utils.NotFoundError
		if !errors.As(err, &nErr) {
			return nil, err
		}
	}

	viva := &model.Viva{
		StudentID: input.StudentID,
		Topic:     input.Topic,
		VivaDate:  input.VivaDate,
		Examiners: examiners,
	}
	if err := s.store.Vivas().Create(viva); err != nil {
		return nil, err
	}
	return viva, nil
}

// AssignExaminers menambahkan penguji ke sidang yang sudah ada.
// Penguji yang sudah terdaftar tidak diduplikasi (no-op).
func (s *vivaService) AssignExaminers(ctx context.Context, actor permission.Actor, vivaID uuid.UUID, examinerIDs []uuid.UUID) (*model.Viva, error) {
	viva, err := s.store.Vivas().FindByID(vivaID)
	if err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionUpdate, permission.SubjectViva, *viva); err != nil {
		return nil, err
	}
	if viva.Evaluated() {
		return nil, utils.NewConflictError("Viva has already been evaluated")
	}

	examiners, err := s.resolveExaminers(examinerIDs)
	if err != nil {
		return nil, err
	}

	// Saring yang sudah terdaftar supaya Append tidak mencoba insert ganda.
	existing := make(map[uuid.UUID]bool, len(viva.Examiners))
	for _, ex := range viva.Examiners {
		existing[ex.ID] = true
	}
	var toAdd []model.Examiner
	for _, ex := range examiners {
		if !existing[ex.ID] {
			toAdd = append(toAdd, ex)
		}
	}
	if len(toAdd) > 0 {
		if err := s.store.Vivas().AppendExaminers(viva, toAdd); err != nil {
			return nil, err
		}
	}

	return s.store.Vivas().FindByID(vivaID)
}

// Evaluate menutup sebuah sidang dengan hasil lulus/tidak. Berjalan dalam
// 1 transaksi dengan lock baris viva:
//   - sidang yang sudah dievaluasi tidak bisa dievaluasi ulang (ConflictError,
//     tidak ada silent overwrite);
//   - hasil lulus mengarsipkan Project dari submission TERBARU mahasiswa;
//     tanpa submission sama sekali, kelulusan ditolak (ConflictError);
//   - hasil tidak lulus bersifat terminal tanpa project.
func (s *vivaService) Evaluate(ctx context.Context, actor permission.Actor, vivaID uuid.UUID, evaluation string, passed bool) (*model.Viva, error) {
	if evaluation == "" {
		return nil, utils.NewValidationError("Evaluation text is required")
	}

	var result *model.Viva
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		viva, err := tx.Vivas().FindByIDForUpdate(vivaID)
		if err != nil {
			return err
		}

		// Permission dicek terhadap viva lengkap (dengan daftar penguji),
		// baris hasil lock tidak membawa relasi m2m.
		full, err := tx.Vivas().FindByID(vivaID)
		if err != nil {
			return err
		}
		if err := actor.Require(permission.ActionUpdate, permission.SubjectViva, *full); err != nil {
			return err
		}

		if viva.Evaluated() {
			return utils.NewConflictError("Viva has already been evaluated")
		}

		if passed {
			latest, err := tx.Submissions().FindLatestByStudent(viva.StudentID)
			if err != nil {
				var nErr *utils.NotFoundError
				if errors.As(err, &nErr) {
					return utils.NewConflictError(
						"Cannot archive a project for a student with no submission on record")
				}
				return err
			}
			project := &model.Project{
				StudentID:   viva.StudentID,
				VivaID:      viva.ID,
				Title:       latest.Title,
				ProjectType: model.ProjectTypeThesis,
				SubjectArea: viva.Topic,
			}
			if err := tx.Projects().Create(project); err != nil {
				return err
			}
		}

		viva.Evaluation = &evaluation
		viva.Passed = &passed
		if err := tx.Vivas().Update(viva); err != nil {
			return err
		}
		result = viva
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyEvaluated(result, passed)
	return result, nil
}

// notifyEvaluated mengirim email hasil sidang ke mahasiswa, di luar transaksi.
func (s *vivaService) notifyEvaluated(viva *model.Viva, passed bool) {
	st, err := s.store.Students().FindByID(viva.StudentID)
	if err != nil || st.User == nil {
		return
	}
	outcome := "tidak lulus"
	if passed {
		outcome = "lulus"
	}
	s.mail.Send(st.User.Name, st.User.Email,
		"Hasil sidang tesis",
		fmt.Sprintf("Sidang Anda telah dievaluasi dengan hasil: %s.", outcome))
}

func (s *vivaService) FindByID(actor permission.Actor, vivaID uuid.UUID) (*model.Viva, error) {
	viva, err := s.store.Vivas().FindByID(vivaID)
	if err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectViva, *viva); err != nil {
		return nil, err
	}
	return viva, nil
}

func (s *vivaService) FindForStudent(actor permission.Actor, studentID uuid.UUID) (*model.Viva, error) {
	viva, err := s.store.Vivas().FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectViva, *viva); err != nil {
		return nil, err
	}
	return viva, nil
}

func (s *vivaService) FindForExaminer(actor permission.Actor, examinerID uuid.UUID) ([]model.Viva, error) {
	if _, err := s.store.Lecturers().FindExaminerByID(examinerID); err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectViva, nil); err != nil {
		return nil, err
	}
	return s.store.Vivas().FindByExaminer(examinerID)
}

func (s *vivaService) FindAssignedForSupervisor(actor permission.Actor, supervisorID uuid.UUID) ([]model.Viva, error) {
	sup, err := s.store.Lecturers().FindSupervisorByID(supervisorID)
	if err != nil {
		return nil, err
	}
	if err := actor.Require(permission.ActionRead, permission.SubjectViva, nil); err != nil {
		return nil, err
	}

	// Sidang "ditugaskan ke supervisor" berarti ditugaskan ke capability
	// examiner dosen yang sama. Tanpa capability itu, daftarnya kosong.
	ex, err := s.store.Lecturers().FindExaminerByLecturer(sup.LecturerID)
	if err != nil {
		var nErr *utils.NotFoundError
		if errors.As(err, &nErr) {
			return nil, nil
		}
		return nil, err
	}
	return s.store.Vivas().FindByExaminer(ex.ID)
}

// resolveExaminers memvalidasi seluruh examinerIDs ada di database.
// ID yang tidak dikenal = ValidationError yang menyebut ID-nya.
func (s *vivaService) resolveExaminers(examinerIDs []uuid.UUID) ([]model.Examiner, error) {
	if len(examinerIDs) == 0 {
		return nil, nil
	}
	examiners, err := s.store.Lecturers().FindExaminersByIDs(examinerIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[uuid.UUID]bool, len(examiners))
	for _, ex := range examiners {
		found[ex.ID] = true
	}
	for _, id := range examinerIDs {
		if !found[id] {
			return nil, utils.NewValidationError("Examiner " + id.String() + " does not exist")
		}
	}
	return examiners, nil
}
