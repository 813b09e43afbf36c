package repository

import (
	"errors"

	"thesis-management-backend/app/model"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NominationRepository mendefinisikan operasi database untuk entity Nomination.
type NominationRepository interface {
	Create(nom *model.Nomination) error
	FindByID(id uuid.UUID) (*model.Nomination, error)

	// FindByIDForUpdate mengunci baris nominasi selama transaksi accept/reject,
	// supaya dua keputusan konkuren atas nominasi yang sama ter-serialisasi.
	FindByIDForUpdate(id uuid.UUID) (*model.Nomination, error)

	Update(nom *model.Nomination) error

	// FindByLecturer mengambil inbox nominasi milik seorang dosen
	// (pending, accepted, maupun rejected).
	FindByLecturer(lecturerID uuid.UUID) ([]model.Nomination, error)
}

type nominationRepository struct {
	db *gorm.DB
}

// NewNominationRepository membuat instance baru nominationRepository.
func NewNominationRepository(db *gorm.DB) NominationRepository {
	return &nominationRepository{db}
}

func (r *nominationRepository) Create(nom *model.Nomination) error {
	return r.db.Create(nom).Error
}

func (r *nominationRepository) FindByID(id uuid.UUID) (*model.Nomination, error) {
	var nom model.Nomination
	err := r.db.
		Preload("Lecturer").
		Preload("Lecturer.User").
		Where("id = ?", id).
		First(&nom).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("nomination")
	}
	if err != nil {
		return nil, err
	}
	return &nom, nil
}

func (r *nominationRepository) FindByIDForUpdate(id uuid.UUID) (*model.Nomination, error) {
	var nom model.Nomination
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&nom).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("nomination")
	}
	if err != nil {
		return nil, err
	}
	return &nom, nil
}

func (r *nominationRepository) Update(nom *model.Nomination) error {
	// Save dipakai (bukan Updates) supaya Accepted bernilai false tetap
	// ter-persist; Updates men-skip zero value.
	return r.db.Save(nom).Error
}

func (r *nominationRepository) FindByLecturer(lecturerID uuid.UUID) ([]model.Nomination, error) {
	var noms []model.Nomination
	err := r.db.
		Where("lecturer_id = ?", lecturerID).
		Order("created_at DESC").
		Find(&noms).Error
	return noms, err
}
