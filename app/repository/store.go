package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Store menggabungkan seluruh repository di balik satu handle, plus batas
// transaksi Atomic. Workflow yang menggabungkan read-check dengan write
// (kuota submission, accept nominasi, evaluasi viva, promosi role) WAJIB
// berjalan di dalam Atomic supaya pengecekan ulang kondisinya terjadi di
// dalam transaksi yang sama dengan mutasinya.
type Store interface {
	Users() UserRepository
	Students() StudentRepository
	Lecturers() LecturerRepository
	Submissions() SubmissionRepository
	Nominations() NominationRepository
	Vivas() VivaRepository
	Projects() ProjectRepository
	Files() FileRepository

	// Atomic menjalankan fn di dalam satu transaksi database. Store yang
	// diterima fn terikat ke transaksi tersebut; error dari fn membuat
	// seluruh transaksi di-rollback.
	Atomic(ctx context.Context, fn func(tx Store) error) error
}

// store adalah implementasi Store berbasis GORM (+ MongoDB untuk blob file).
type store struct {
	db    *gorm.DB
	mongo *mongo.Database
}

// NewStore membuat Store dari koneksi Postgres (GORM) dan MongoDB.
func NewStore(db *gorm.DB, mongoDB *mongo.Database) Store {
	return &store{db: db, mongo: mongoDB}
}

func (s *store) Users() UserRepository             { return NewUserRepository(s.db) }
func (s *store) Students() StudentRepository       { return NewStudentRepository(s.db) }
func (s *store) Lecturers() LecturerRepository     { return NewLecturerRepository(s.db) }
func (s *store) Submissions() SubmissionRepository { return NewSubmissionRepository(s.db) }
func (s *store) Nominations() NominationRepository { return NewNominationRepository(s.db) }
func (s *store) Vivas() VivaRepository             { return NewVivaRepository(s.db) }
func (s *store) Projects() ProjectRepository       { return NewProjectRepository(s.db) }
func (s *store) Files() FileRepository             { return NewFileRepository(s.db, s.mongo) }

func (s *store) Atomic(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx, mongo: s.mongo})
	})
}
