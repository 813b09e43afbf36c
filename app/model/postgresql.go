package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipe submission yang diperbolehkan (4 fase penulisan tesis).
const (
	SubmissionProposal  = "proposal"
	SubmissionProgress1 = "progress-1"
	SubmissionProgress2 = "progress-2"
	SubmissionFinal     = "final"
)

// MaxSubmissions adalah kuota submission per mahasiswa untuk 1 siklus tesis.
const MaxSubmissions = 4

// ProjectTypeThesis adalah tag generik untuk project hasil arsip sidang tesis.
const ProjectTypeThesis = "thesis"

// ValidSubmissionTypes dipakai service untuk validasi input submission.
var ValidSubmissionTypes = map[string]bool{
	SubmissionProposal:  true,
	SubmissionProgress1: true,
	SubmissionProgress2: true,
	SubmissionFinal:     true,
}

// User merepresentasikan akun pengguna sistem.
// Satu user bisa punya profil Student, profil Lecturer, atau keduanya
// (walaupun alur bisnis normal memakai salah satu saja).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	RefreshToken *string   `json:"-"`
	Student      *Student  `gorm:"foreignKey:UserID" json:"student,omitempty"`
	Lecturer     *Lecturer `gorm:"foreignKey:UserID" json:"lecturer,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Student merepresentasikan profil mahasiswa pascasarjana.
type Student struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	User         *User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	MatricNumber string       `gorm:"unique;not null" json:"matricNumber"`
	SupervisorID *uuid.UUID   `gorm:"type:uuid" json:"supervisorId"`
	Supervisor   *Supervisor  `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Submissions  []Submission `gorm:"foreignKey:StudentID" json:"submissions,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Lecturer merepresentasikan profil dosen.
// Supervisor dan Examiner adalah capability tambahan (boleh dua-duanya sekaligus).
type Lecturer struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	User        *User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	StaffNumber string      `gorm:"unique;not null" json:"staffNumber"`
	Supervisor  *Supervisor `gorm:"foreignKey:LecturerID" json:"supervisor,omitempty"`
	Examiner    *Examiner   `gorm:"foreignKey:LecturerID" json:"examiner,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"createdAt"`
}

// Supervisor adalah capability "pembimbing" yang menempel ke tepat 1 dosen.
type Supervisor struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LecturerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lecturerId"`
	Lecturer   *Lecturer `gorm:"foreignKey:LecturerID" json:"lecturer,omitempty"`
	Students   []Student `gorm:"foreignKey:SupervisorID" json:"students,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Examiner adalah capability "penguji" yang menempel ke tepat 1 dosen.
// Relasi ke Viva berbentuk many-to-many lewat tabel viva_examiners.
type Examiner struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LecturerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lecturerId"`
	Lecturer   *Lecturer `gorm:"foreignKey:LecturerID" json:"lecturer,omitempty"`
	Vivas      []Viva    `gorm:"many2many:viva_examiners;" json:"vivas,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Submission merepresentasikan 1 dokumen yang dikumpulkan mahasiswa.
// Urutan created_at dipakai untuk query "submission terbaru".
type Submission struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"studentId"`
	Student        *Student   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Title          string     `gorm:"not null" json:"title"`
	SubmissionType string     `gorm:"type:varchar(20);not null;check:submission_type IN ('proposal','progress-1','progress-2','final')" json:"submissionType"`
	FileID         *uuid.UUID `gorm:"type:uuid" json:"fileId"`
	File           *File      `gorm:"foreignKey:FileID" json:"file,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Nomination merepresentasikan pengajuan seorang dosen sebagai penguji.
// Accepted bersifat tri-state: nil = pending, true = accepted, false = rejected.
type Nomination struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LecturerID uuid.UUID `gorm:"type:uuid;not null;index" json:"lecturerId"`
	Lecturer   *Lecturer `gorm:"foreignKey:LecturerID" json:"lecturer,omitempty"`
	Details    string    `gorm:"not null" json:"details"`
	Accepted   *bool     `json:"accepted"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Status mengembalikan status nominasi turunan dari flag Accepted, untuk respons API.
func (n Nomination) Status() string {
	switch {
	case n.Accepted == nil:
		return "pending"
	case *n.Accepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// Viva merepresentasikan sidang (oral defense) seorang mahasiswa.
// Passed bernilai nil sampai sidang dievaluasi; setelah terisi tidak boleh diubah lagi.
type Viva struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"studentId"`
	Student    *Student   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Topic      string     `gorm:"not null" json:"topic"`
	VivaDate   time.Time  `json:"vivaDate"`
	Examiners  []Examiner `gorm:"many2many:viva_examiners;" json:"examiners,omitempty"`
	Evaluation *string    `json:"evaluation"`
	Passed     *bool      `json:"passed"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Evaluated menandakan viva sudah pernah dievaluasi (state terminal).
func (v Viva) Evaluated() bool { return v.Passed != nil }

// Project adalah arsip tesis yang sudah lulus sidang.
// Dibuat otomatis sebagai efek samping evaluasi viva dengan hasil lulus.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"studentId"`
	Student     *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	VivaID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"vivaId"`
	Viva        *Viva     `gorm:"foreignKey:VivaID" json:"viva,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	ProjectType string    `gorm:"type:varchar(50)" json:"projectType"`
	SubjectArea string    `gorm:"type:varchar(100)" json:"subjectArea"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// File adalah referensi dokumen yang diupload mahasiswa.
// Isi file disimpan sebagai dokumen di MongoDB; baris ini hanya metadata + pointer
// ke _id dokumen Mongo (hex string).
type File struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Filename    string    `gorm:"not null" json:"filename"`
	Mimetype    string    `gorm:"not null" json:"mimetype"`
	MongoFileID string    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
