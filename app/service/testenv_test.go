package service

import (
	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"

	"github.com/google/uuid"
)

// Helper seed untuk test service. Semua mengembalikan actor yang profil
// role-nya sudah lengkap, seperti hasil resolve middleware.

func seedStudentActor(s *fakeStore, email, matric string) (permission.Actor, *model.Student) {
	user := &model.User{
		Name:         "Student " + matric,
		Email:        email,
		PasswordHash: "x",
		Student:      &model.Student{MatricNumber: matric},
	}
	if err := s.Users().Create(user); err != nil {
		panic(err)
	}
	st, err := s.Students().FindByID(user.Student.ID)
	if err != nil {
		panic(err)
	}
	return permission.Actor{User: *user, Student: st}, st
}

func seedLecturerActor(s *fakeStore, email, staff string) (permission.Actor, *model.Lecturer) {
	user := &model.User{
		Name:         "Lecturer " + staff,
		Email:        email,
		PasswordHash: "x",
		Lecturer:     &model.Lecturer{StaffNumber: staff},
	}
	if err := s.Users().Create(user); err != nil {
		panic(err)
	}
	lect, err := s.Lecturers().FindByID(user.Lecturer.ID)
	if err != nil {
		panic(err)
	}
	return permission.Actor{User: *user, Lecturer: lect}, lect
}

func seedSupervisorActor(s *fakeStore, email, staff string) (permission.Actor, *model.Supervisor) {
	_, lect := seedLecturerActor(s, email, staff)
	sup := &model.Supervisor{LecturerID: lect.ID}
	if err := s.Lecturers().CreateSupervisor(sup); err != nil {
		panic(err)
	}
	return refreshLecturerActor(s, lect.ID), sup
}

func seedExaminerActor(s *fakeStore, email, staff string) (permission.Actor, *model.Examiner) {
	_, lect := seedLecturerActor(s, email, staff)
	ex := &model.Examiner{LecturerID: lect.ID}
	if err := s.Lecturers().CreateExaminer(ex); err != nil {
		panic(err)
	}
	return refreshLecturerActor(s, lect.ID), ex
}

// refreshLecturerActor membangun ulang actor dosen dengan capability terkini,
// meniru resolve ulang middleware pada request berikutnya.
func refreshLecturerActor(s *fakeStore, lecturerID uuid.UUID) permission.Actor {
	lect, err := s.Lecturers().FindByID(lecturerID)
	if err != nil {
		panic(err)
	}
	user, err := s.Users().FindByID(lect.UserID)
	if err != nil {
		panic(err)
	}
	return permission.Actor{User: *user, Lecturer: lect}
}

func seedSubmission(s *fakeStore, studentID uuid.UUID, title, subType string) *model.Submission {
	sub := &model.Submission{
		StudentID:      studentID,
		Title:          title,
		SubmissionType: subType,
	}
	if err := s.Submissions().Create(sub); err != nil {
		panic(err)
	}
	return sub
}

// noopMailer menelan semua email; cukup untuk test workflow.
type noopMailer struct{}

func (noopMailer) Send(toName, toEmail, subject, body string) {}
