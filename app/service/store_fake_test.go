package service

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"thesis-management-backend/app/model"
	"thesis-management-backend/app/repository"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
)

/*
 fakeStore adalah implementasi in-memory repository.Store untuk test service.

 Semantik yang dijaga supaya setara dengan implementasi GORM:
 - Atomic men-serialisasi transaksi lewat mutex (setara isolasi
   SELECT ... FOR UPDATE pada alur yang diuji) dan me-rollback seluruh
   perubahan ketika fn mengembalikan error.
 - Setiap Find* mengembalikan COPY, setiap Create/Update menyimpan COPY,
   meniru scan GORM ke struct baru. Mutasi pada hasil Find tidak bocor
   ke store sebelum Update dipanggil.
*/
type fakeData struct {
	mu sync.Mutex // serialisasi Atomic

	users       map[uuid.UUID]model.User
	students    map[uuid.UUID]model.Student
	lecturers   map[uuid.UUID]model.Lecturer
	supervisors map[uuid.UUID]model.Supervisor
	examiners   map[uuid.UUID]model.Examiner
	submissions []model.Submission // urutan insert = urutan created_at
	nominations map[uuid.UUID]model.Nomination
	vivas       map[uuid.UUID]model.Viva
	projects    map[uuid.UUID]model.Project
	files       map[uuid.UUID]model.File
	documents   map[string]model.FileDocument
}

type fakeStore struct {
	d *fakeData
}

func newFakeStore() *fakeStore {
	return &fakeStore{d: &fakeData{
		users:       make(map[uuid.UUID]model.User),
		students:    make(map[uuid.UUID]model.Student),
		lecturers:   make(map[uuid.UUID]model.Lecturer),
		supervisors: make(map[uuid.UUID]model.Supervisor),
		examiners:   make(map[uuid.UUID]model.Examiner),
		nominations: make(map[uuid.UUID]model.Nomination),
		vivas:       make(map[uuid.UUID]model.Viva),
		projects:    make(map[uuid.UUID]model.Project),
		files:       make(map[uuid.UUID]model.File),
		documents:   make(map[string]model.FileDocument),
	}}
}

var _ repository.Store = (*fakeStore)(nil)

func (s *fakeStore) Users() repository.UserRepository             { return (*fakeUsers)(s) }
func (s *fakeStore) Students() repository.StudentRepository       { return (*fakeStudents)(s) }
func (s *fakeStore) Lecturers() repository.LecturerRepository     { return (*fakeLecturers)(s) }
func (s *fakeStore) Submissions() repository.SubmissionRepository { return (*fakeSubmissions)(s) }
func (s *fakeStore) Nominations() repository.NominationRepository { return (*fakeNominations)(s) }
func (s *fakeStore) Vivas() repository.VivaRepository             { return (*fakeVivas)(s) }
func (s *fakeStore) Projects() repository.ProjectRepository       { return (*fakeProjects)(s) }
func (s *fakeStore) Files() repository.FileRepository             { return (*fakeFiles)(s) }

func (s *fakeStore) Atomic(ctx context.Context, fn func(tx repository.Store) error) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	snapshot := s.d.clone()
	if err := fn(s); err != nil {
		s.d.restore(snapshot)
		return err
	}
	return nil
}

// restore mengembalikan isi data ke snapshot (mutex tidak disentuh,
// masih dipegang Atomic).
func (d *fakeData) restore(snap *fakeData) {
	d.users = snap.users
	d.students = snap.students
	d.lecturers = snap.lecturers
	d.supervisors = snap.supervisors
	d.examiners = snap.examiners
	d.submissions = snap.submissions
	d.nominations = snap.nominations
	d.vivas = snap.vivas
	d.projects = snap.projects
	d.files = snap.files
	d.documents = snap.documents
}

func (d *fakeData) clone() *fakeData {
	c := &fakeData{
		users:       make(map[uuid.UUID]model.User, len(d.users)),
		students:    make(map[uuid.UUID]model.Student, len(d.students)),
		lecturers:   make(map[uuid.UUID]model.Lecturer, len(d.lecturers)),
		supervisors: make(map[uuid.UUID]model.Supervisor, len(d.supervisors)),
		examiners:   make(map[uuid.UUID]model.Examiner, len(d.examiners)),
		submissions: append([]model.Submission(nil), d.submissions...),
		nominations: make(map[uuid.UUID]model.Nomination, len(d.nominations)),
		vivas:       make(map[uuid.UUID]model.Viva, len(d.vivas)),
		projects:    make(map[uuid.UUID]model.Project, len(d.projects)),
		files:       make(map[uuid.UUID]model.File, len(d.files)),
		documents:   make(map[string]model.FileDocument, len(d.documents)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.students {
		c.students[k] = v
	}
	for k, v := range d.lecturers {
		c.lecturers[k] = v
	}
	for k, v := range d.supervisors {
		c.supervisors[k] = v
	}
	for k, v := range d.examiners {
		c.examiners[k] = v
	}
	for k, v := range d.nominations {
		c.nominations[k] = v
	}
	for k, v := range d.vivas {
		c.vivas[k] = v
	}
	for k, v := range d.projects {
		c.projects[k] = v
	}
	for k, v := range d.files {
		c.files[k] = v
	}
	for k, v := range d.documents {
		c.documents[k] = v
	}
	return c
}

// ===============================
//  USERS
// ===============================

type fakeUsers fakeStore

func (r *fakeUsers) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Student != nil {
		if user.Student.ID == uuid.Nil {
			user.Student.ID = uuid.New()
		}
		user.Student.UserID = user.ID
		r.d.students[user.Student.ID] = *user.Student
	}
	if user.Lecturer != nil {
		if user.Lecturer.ID == uuid.Nil {
			user.Lecturer.ID = uuid.New()
		}
		user.Lecturer.UserID = user.ID
		r.d.lecturers[user.Lecturer.ID] = *user.Lecturer
	}
	stored := *user
	stored.Student = nil
	stored.Lecturer = nil
	r.d.users[user.ID] = stored
	return nil
}

func (r *fakeUsers) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.d.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("user")
}

func (r *fakeUsers) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.d.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("user")
	}
	c := u
	return &c, nil
}

func (r *fakeUsers) FindActorByID(id uuid.UUID) (*model.User, error) {
	u, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	for _, st := range r.d.students {
		if st.UserID == id {
			c := st
			u.Student = &c
		}
	}
	for _, l := range r.d.lecturers {
		if l.UserID == id {
			c := l
			for _, sup := range r.d.supervisors {
				if sup.LecturerID == l.ID {
					sc := sup
					c.Supervisor = &sc
				}
			}
			for _, ex := range r.d.examiners {
				if ex.LecturerID == l.ID {
					ec := ex
					c.Examiner = &ec
				}
			}
			u.Lecturer = &c
		}
	}
	return u, nil
}

// ===============================
//  STUDENTS
// ===============================

type fakeStudents fakeStore

func (r *fakeStudents) FindAll() ([]model.Student, error) {
	out := make([]model.Student, 0, len(r.d.students))
	for _, st := range r.d.students {
		out = append(out, st)
	}
	return out, nil
}

func (r *fakeStudents) FindByID(id uuid.UUID) (*model.Student, error) {
	st, ok := r.d.students[id]
	if !ok {
		return nil, utils.NewNotFoundError("student")
	}
	c := st
	if u, ok := r.d.users[st.UserID]; ok {
		uc := u
		c.User = &uc
	}
	return &c, nil
}

func (r *fakeStudents) FindByUserEmail(email string) (*model.Student, error) {
	for _, st := range r.d.students {
		if u, ok := r.d.users[st.UserID]; ok && u.Email == email {
			c := st
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("student")
}

func (r *fakeStudents) FindBySupervisor(supervisorID uuid.UUID) ([]model.Student, error) {
	var out []model.Student
	for _, st := range r.d.students {
		if st.SupervisorID != nil && *st.SupervisorID == supervisorID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *fakeStudents) UpdateSupervisor(studentID, supervisorID uuid.UUID) error {
	st, ok := r.d.students[studentID]
	if !ok {
		return utils.NewNotFoundError("student")
	}
	sid := supervisorID
	st.SupervisorID = &sid
	r.d.students[studentID] = st
	return nil
}

func (r *fakeStudents) FindByIDForUpdate(id uuid.UUID) (*model.Student, error) {
	return r.FindByID(id)
}

// ===============================
//  LECTURERS + CAPABILITIES
// ===============================

type fakeLecturers fakeStore

func (r *fakeLecturers) FindAll() ([]model.Lecturer, error) {
	out := make([]model.Lecturer, 0, len(r.d.lecturers))
	for id := range r.d.lecturers {
		l, _ := r.FindByID(id)
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeLecturers) FindByID(id uuid.UUID) (*model.Lecturer, error) {
	l, ok := r.d.lecturers[id]
	if !ok {
		return nil, utils.NewNotFoundError("lecturer")
	}
	c := l
	if u, ok := r.d.users[l.UserID]; ok {
		uc := u
		c.User = &uc
	}
	for _, sup := range r.d.supervisors {
		if sup.LecturerID == id {
			sc := sup
			c.Supervisor = &sc
		}
	}
	for _, ex := range r.d.examiners {
		if ex.LecturerID == id {
			ec := ex
			c.Examiner = &ec
		}
	}
	return &c, nil
}

func (r *fakeLecturers) FindByIDForUpdate(id uuid.UUID) (*model.Lecturer, error) {
	l, ok := r.d.lecturers[id]
	if !ok {
		return nil, utils.NewNotFoundError("lecturer")
	}
	c := l
	return &c, nil
}

func (r *fakeLecturers) FindAllSupervisors() ([]model.Supervisor, error) {
	out := make([]model.Supervisor, 0, len(r.d.supervisors))
	for _, sup := range r.d.supervisors {
		out = append(out, sup)
	}
	return out, nil
}

func (r *fakeLecturers) FindSupervisorByID(id uuid.UUID) (*model.Supervisor, error) {
	sup, ok := r.d.supervisors[id]
	if !ok {
		return nil, utils.NewNotFoundError("supervisor")
	}
	c := sup
	return &c, nil
}

func (r *fakeLecturers) FindSupervisorByLecturer(lecturerID uuid.UUID) (*model.Supervisor, error) {
	for _, sup := range r.d.supervisors {
		if sup.LecturerID == lecturerID {
			c := sup
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("supervisor")
}

func (r *fakeLecturers) CreateSupervisor(sup *model.Supervisor) error {
	if sup.ID == uuid.Nil {
		sup.ID = uuid.New()
	}
	r.d.supervisors[sup.ID] = *sup
	return nil
}

func (r *fakeLecturers) FindAllExaminers() ([]model.Examiner, error) {
	out := make([]model.Examiner, 0, len(r.d.examiners))
	for _, ex := range r.d.examiners {
		out = append(out, ex)
	}
	return out, nil
}

func (r *fakeLecturers) FindExaminerByID(id uuid.UUID) (*model.Examiner, error) {
	ex, ok := r.d.examiners[id]
	if !ok {
		return nil, utils.NewNotFoundError("examiner")
	}
	c := ex
	return &c, nil
}

func (r *fakeLecturers) FindExaminerByLecturer(lecturerID uuid.UUID) (*model.Examiner, error) {
	for _, ex := range r.d.examiners {
		if ex.LecturerID == lecturerID {
			c := ex
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("examiner")
}

func (r *fakeLecturers) FindExaminersByIDs(ids []uuid.UUID) ([]model.Examiner, error) {
	var out []model.Examiner
	for _, id := range ids {
		if ex, ok := r.d.examiners[id]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeLecturers) CreateExaminer(ex *model.Examiner) error {
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	r.d.examiners[ex.ID] = *ex
	return nil
}

// ===============================
//  SUBMISSIONS
// ===============================

type fakeSubmissions fakeStore

func (r *fakeSubmissions) Create(sub *model.Submission) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	r.d.submissions = append(r.d.submissions, *sub)
	return nil
}

func (r *fakeSubmissions) FindByID(id uuid.UUID) (*model.Submission, error) {
	for _, sub := range r.d.submissions {
		if sub.ID == id {
			c := sub
			if st, ok := r.d.students[sub.StudentID]; ok {
				sc := st
				c.Student = &sc
			}
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("submission")
}

func (r *fakeSubmissions) FindByStudent(studentID uuid.UUID) ([]model.Submission, error) {
	var out []model.Submission
	for _, sub := range r.d.submissions {
		if sub.StudentID == studentID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubmissions) FindByStudentIDs(studentIDs []uuid.UUID) ([]model.Submission, error) {
	want := make(map[uuid.UUID]bool, len(studentIDs))
	for _, id := range studentIDs {
		want[id] = true
	}
	var out []model.Submission
	for _, sub := range r.d.submissions {
		if want[sub.StudentID] {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubmissions) CountByStudent(studentID uuid.UUID) (int64, error) {
	var count int64
	for _, sub := range r.d.submissions {
		if sub.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

// FindLatestByStudent: slice dijaga dalam urutan insert, jadi entri terakhir
// yang cocok adalah yang terbaru.
func (r *fakeSubmissions) FindLatestByStudent(studentID uuid.UUID) (*model.Submission, error) {
	for i := len(r.d.submissions) - 1; i >= 0; i-- {
		if r.d.submissions[i].StudentID == studentID {
			c := r.d.submissions[i]
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("submission")
}

func (r *fakeSubmissions) Delete(id uuid.UUID) error {
	for i, sub := range r.d.submissions {
		if sub.ID == id {
			r.d.submissions = append(r.d.submissions[:i], r.d.submissions[i+1:]...)
			return nil
		}
	}
	return utils.NewNotFoundError("submission")
}

// ===============================
//  NOMINATIONS
// ===============================

type fakeNominations fakeStore

func (r *fakeNominations) Create(nom *model.Nomination) error {
	if nom.ID == uuid.Nil {
		nom.ID = uuid.New()
	}
	if nom.CreatedAt.IsZero() {
		nom.CreatedAt = time.Now()
	}
	r.d.nominations[nom.ID] = *nom
	return nil
}

func (r *fakeNominations) FindByID(id uuid.UUID) (*model.Nomination, error) {
	nom, ok := r.d.nominations[id]
	if !ok {
		return nil, utils.NewNotFoundError("nomination")
	}
	c := nom
	return &c, nil
}

func (r *fakeNominations) FindByIDForUpdate(id uuid.UUID) (*model.Nomination, error) {
	return r.FindByID(id)
}

func (r *fakeNominations) Update(nom *model.Nomination) error {
	if _, ok := r.d.nominations[nom.ID]; !ok {
		return utils.NewNotFoundError("nomination")
	}
	r.d.nominations[nom.ID] = *nom
	return nil
}

func (r *fakeNominations) FindByLecturer(lecturerID uuid.UUID) ([]model.Nomination, error) {
	var out []model.Nomination
	for _, nom := range r.d.nominations {
		if nom.LecturerID == lecturerID {
			out = append(out, nom)
		}
	}
	return out, nil
}

// ===============================
//  VIVAS
// ===============================

type fakeVivas fakeStore

func (r *fakeVivas) Create(viva *model.Viva) error {
	if viva.ID == uuid.Nil {
		viva.ID = uuid.New()
	}
	r.d.vivas[viva.ID] = *viva
	return nil
}

func (r *fakeVivas) FindByID(id uuid.UUID) (*model.Viva, error) {
	viva, ok := r.d.vivas[id]
	if !ok {
		return nil, utils.NewNotFoundError("viva")
	}
	c := viva
	c.Examiners = append([]model.Examiner(nil), viva.Examiners...)
	return &c, nil
}

func (r *fakeVivas) FindByIDForUpdate(id uuid.UUID) (*model.Viva, error) {
	return r.FindByID(id)
}

func (r *fakeVivas) Update(viva *model.Viva) error {
	existing, ok := r.d.vivas[viva.ID]
	if !ok {
		return utils.NewNotFoundError("viva")
	}
	c := *viva
	if c.Examiners == nil {
		c.Examiners = existing.Examiners
	}
	r.d.vivas[viva.ID] = c
	return nil
}

func (r *fakeVivas) AppendExaminers(viva *model.Viva, examiners []model.Examiner) error {
	stored, ok := r.d.vivas[viva.ID]
	if !ok {
		return utils.NewNotFoundError("viva")
	}
	stored.Examiners = append(stored.Examiners, examiners...)
	r.d.vivas[viva.ID] = stored
	return nil
}

func (r *fakeVivas) FindByStudent(studentID uuid.UUID) (*model.Viva, error) {
	for id, viva := range r.d.vivas {
		if viva.StudentID == studentID {
			return r.FindByID(id)
		}
	}
	return nil, utils.NewNotFoundError("viva")
}

func (r *fakeVivas) FindByExaminer(examinerID uuid.UUID) ([]model.Viva, error) {
	var out []model.Viva
	for id, viva := range r.d.vivas {
		for _, ex := range viva.Examiners {
			if ex.ID == examinerID {
				c, _ := r.FindByID(id)
				out = append(out, *c)
				break
			}
		}
	}
	return out, nil
}

// ===============================
//  PROJECTS
// ===============================

type fakeProjects fakeStore

func (r *fakeProjects) Create(project *model.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	// Tiru unique index student_id + viva_id.
	for _, p := range r.d.projects {
		if p.StudentID == project.StudentID || p.VivaID == project.VivaID {
			return utils.NewConflictError("project already archived for this student")
		}
	}
	r.d.projects[project.ID] = *project
	return nil
}

func (r *fakeProjects) FindAll() ([]model.Project, error) {
	out := make([]model.Project, 0, len(r.d.projects))
	for _, p := range r.d.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjects) FindByID(id uuid.UUID) (*model.Project, error) {
	p, ok := r.d.projects[id]
	if !ok {
		return nil, utils.NewNotFoundError("project")
	}
	c := p
	return &c, nil
}

func (r *fakeProjects) FindByStudent(studentID uuid.UUID) (*model.Project, error) {
	for _, p := range r.d.projects {
		if p.StudentID == studentID {
			c := p
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("project")
}

func (r *fakeProjects) FindByStudentIDs(studentIDs []uuid.UUID) ([]model.Project, error) {
	want := make(map[uuid.UUID]bool, len(studentIDs))
	for _, id := range studentIDs {
		want[id] = true
	}
	var out []model.Project
	for _, p := range r.d.projects {
		if want[p.StudentID] {
			out = append(out, p)
		}
	}
	return out, nil
}

// ===============================
//  FILES
// ===============================

type fakeFiles fakeStore

func (r *fakeFiles) Create(ctx context.Context, pgData *model.File, mongoData *model.FileDocument) error {
	if pgData.ID == uuid.Nil {
		pgData.ID = uuid.New()
	}
	pgData.MongoFileID = hex.EncodeToString(pgData.ID[:12])
	r.d.files[pgData.ID] = *pgData
	r.d.documents[pgData.MongoFileID] = *mongoData
	return nil
}

func (r *fakeFiles) FindByID(id uuid.UUID) (*model.File, error) {
	f, ok := r.d.files[id]
	if !ok {
		return nil, utils.NewNotFoundError("file")
	}
	c := f
	return &c, nil
}

func (r *fakeFiles) FetchDocument(ctx context.Context, mongoID string) (*model.FileDocument, error) {
	doc, ok := r.d.documents[mongoID]
	if !ok {
		return nil, utils.NewNotFoundError("file document")
	}
	c := doc
	return &c, nil
}
