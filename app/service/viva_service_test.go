package service

import (
	"context"
	"testing"
	"time"

	"thesis-management-backend/app/model"
	"thesis-management-backend/app/permission"
	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vivaTestEnv struct {
	store   *fakeStore
	svc     VivaService
	student *model.Student
	exActor permission.Actor
	ex      *model.Examiner
}

func newVivaTestEnv(t *testing.T) *vivaTestEnv {
	store := newFakeStore()
	svc := NewVivaService(store, noopMailer{})
	_, student := seedStudentActor(store, "student@kampus.ac.id", "P230001")
	exActor, ex := seedExaminerActor(store, "ex@kampus.ac.id", "L001")
	return &vivaTestEnv{store: store, svc: svc, student: student, exActor: exActor, ex: ex}
}

func (e *vivaTestEnv) createViva(t *testing.T) *model.Viva {
	viva, err := e.svc.Create(context.Background(), e.exActor, CreateVivaInput{
		StudentID:   e.student.ID,
		Topic:       "Analisis beban kerja basis data",
		VivaDate:    time.Now().Add(14 * 24 * time.Hour),
		ExaminerIDs: []uuid.UUID{e.ex.ID},
	})
	require.NoError(t, err)
	return viva
}

func TestCreateViva(t *testing.T) {
	ctx := context.Background()

	t.Run("penguji membuat sidang dengan daftar penguji", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)
		assert.Equal(t, env.student.ID, viva.StudentID)
		assert.Len(t, viva.Examiners, 1)
		assert.False(t, viva.Evaluated())
	})

	t.Run("mahasiswa tidak boleh membuat sidang", func(t *testing.T) {
		env := newVivaTestEnv(t)
		stActor, _ := seedStudentActor(env.store, "other@kampus.ac.id", "P230002")

		_, err := env.svc.Create(ctx, stActor, CreateVivaInput{
			StudentID: env.student.ID,
			Topic:     "topic",
			VivaDate:  time.Now(),
		})
		var aErr *utils.AuthorizationError
		assert.ErrorAs(t, err, &aErr)
	})

	t.Run("penguji tidak dikenal = validation error", func(t *testing.T) {
		env := newVivaTestEnv(t)
		_, err := env.svc.Create(ctx, env.exActor, CreateVivaInput{
			StudentID:   env.student.ID,
			Topic:       "topic",
			VivaDate:    time.Now(),
			ExaminerIDs: []uuid.UUID{uuid.New()},
		})
		var vErr *utils.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("sidang kedua untuk mahasiswa yang sama = conflict", func(t *testing.T) {
		env := newVivaTestEnv(t)
		env.createViva(t)

		_, err := env.svc.Create(ctx, env.exActor, CreateVivaInput{
			StudentID: env.student.ID,
			Topic:     "topik lain",
			VivaDate:  time.Now(),
		})
		var cErr *utils.ConflictError
		assert.ErrorAs(t, err, &cErr)
	})
}

func TestAssignExaminers(t *testing.T) {
	ctx := context.Background()

	t.Run("penguji baru ditambahkan, duplikat di-skip", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)
		_, ex2 := seedExaminerActor(env.store, "ex2@kampus.ac.id", "L002")

		updated, err := env.svc.AssignExaminers(ctx, env.exActor, viva.ID,
			[]uuid.UUID{env.ex.ID, ex2.ID})
		require.NoError(t, err)
		assert.Len(t, updated.Examiners, 2, "penguji yang sudah terdaftar tidak diduplikasi")
	})

	t.Run("sidang yang sudah dievaluasi tidak bisa diubah", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)
		seedSubmission(env.store, env.student.ID, "Judul Final", model.SubmissionFinal)

		_, err := env.svc.Evaluate(ctx, env.exActor, viva.ID, "bagus", true)
		require.NoError(t, err)

		_, ex2 := seedExaminerActor(env.store, "ex2@kampus.ac.id", "L002")
		_, err = env.svc.AssignExaminers(ctx, env.exActor, viva.ID, []uuid.UUID{ex2.ID})
		var cErr *utils.ConflictError
		assert.ErrorAs(t, err, &cErr)
	})
}

func TestEvaluateViva(t *testing.T) {
	ctx := context.Background()

	t.Run("lulus mengarsipkan project dari submission terbaru", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)
		seedSubmission(env.store, env.student.ID, "Draf Proposal", model.SubmissionProposal)
		seedSubmission(env.store, env.student.ID, "Naskah Final", model.SubmissionFinal)

		evaluated, err := env.svc.Evaluate(ctx, env.exActor, viva.ID, "Dipertahankan dengan baik", true)
		require.NoError(t, err)
		require.NotNil(t, evaluated.Passed)
		assert.True(t, *evaluated.Passed)

		project, err := env.store.Projects().FindByStudent(env.student.ID)
		require.NoError(t, err)
		assert.Equal(t, "Naskah Final", project.Title, "judul dari submission terbaru")
		assert.Equal(t, viva.ID, project.VivaID)
		assert.Equal(t, model.ProjectTypeThesis, project.ProjectType)
		assert.Equal(t, viva.Topic, project.SubjectArea)

		all, err := env.store.Projects().FindAll()
		require.NoError(t, err)
		assert.Len(t, all, 1, "tepat satu project")
	})

	t.Run("tidak lulus = terminal tanpa project", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)
		seedSubmission(env.store, env.student.ID, "Naskah", model.SubmissionFinal)

		evaluated, err := env.svc.Evaluate(ctx, env.exActor, viva.ID, "Revisi mayor", false)
		require.NoError(t, err)
		require.NotNil(t, evaluated.Passed)
		assert.False(t, *evaluated.Passed)

		_, err = env.store.Projects().FindByStudent(env.student.ID)
		var nErr *utils.NotFoundError
		assert.ErrorAs(t, err, &nErr)

		// Terminal: evaluasi ulang (termasuk mencoba membalik hasil) ditolak.
		_, err = env.svc.Evaluate(ctx, env.exActor, viva.ID, "coba lagi", true)
		var cErr *utils.ConflictError
		assert.ErrorAs(t, err, &cErr)
	})

	t.Run("lulus tanpa submission = conflict, viva tetap belum dievaluasi", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)

		_, err := env.svc.Evaluate(ctx, env.exActor, viva.ID, "bagus", true)
		var cErr *utils.ConflictError
		require.ErrorAs(t, err, &cErr)

		// Transaksi di-rollback: viva masih bisa dievaluasi setelah ada submission.
		current, err := env.store.Vivas().FindByID(viva.ID)
		require.NoError(t, err)
		assert.False(t, current.Evaluated())

		seedSubmission(env.store, env.student.ID, "Naskah", model.SubmissionFinal)
		_, err = env.svc.Evaluate(ctx, env.exActor, viva.ID, "bagus", true)
		assert.NoError(t, err)
	})

	t.Run("evaluasi kedua = conflict", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)
		seedSubmission(env.store, env.student.ID, "Naskah", model.SubmissionFinal)

		_, err := env.svc.Evaluate(ctx, env.exActor, viva.ID, "bagus", true)
		require.NoError(t, err)

		_, err = env.svc.Evaluate(ctx, env.exActor, viva.ID, "lagi", true)
		var cErr *utils.ConflictError
		assert.ErrorAs(t, err, &cErr)
	})

	t.Run("penguji yang tidak ditugaskan tidak boleh mengevaluasi", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)
		otherActor, _ := seedExaminerActor(env.store, "other@kampus.ac.id", "L009")

		_, err := env.svc.Evaluate(ctx, otherActor, viva.ID, "bagus", true)
		var aErr *utils.AuthorizationError
		assert.ErrorAs(t, err, &aErr)
	})

	t.Run("evaluasi tanpa teks ditolak", func(t *testing.T) {
		env := newVivaTestEnv(t)
		viva := env.createViva(t)

		_, err := env.svc.Evaluate(ctx, env.exActor, viva.ID, "", true)
		var vErr *utils.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

// Skenario lengkap: nominasi -> accept (dapat capability examiner) ->
// sidang dibuat dan ditugaskan -> evaluasi lulus -> project terarsip.
func TestThesisWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	nomSvc := NewNominationService(store, noopMailer{})
	vivaSvc := NewVivaService(store, noopMailer{})
	studentSvc := NewStudentService(store)

	stActor, student := seedStudentActor(store, "student@kampus.ac.id", "P230001")
	supActor, sup := seedSupervisorActor(store, "sup@kampus.ac.id", "L001")
	_, targetLect := seedLecturerActor(store, "target@kampus.ac.id", "L002")

	require.NoError(t, store.Students().UpdateSupervisor(student.ID, sup.ID))

	// 1. Supervisor menominasikan dosen sebagai penguji.
	nom, err := nomSvc.Nominate(ctx, supActor, targetLect.ID, "Pakar bidang terkait")
	require.NoError(t, err)
	assert.Equal(t, "pending", nom.Status())

	// 2. Dosen menerima; capability examiner muncul.
	targetActor := refreshLecturerActor(store, targetLect.ID)
	nom, err = nomSvc.Accept(ctx, targetActor, nom.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", nom.Status())

	ex, err := store.Lecturers().FindExaminerByLecturer(targetLect.ID)
	require.NoError(t, err)

	// 3. Mahasiswa mengumpulkan dokumen.
	_, err = studentSvc.AddSubmission(ctx, stActor, AddSubmissionInput{
		StudentEmail:   "student@kampus.ac.id",
		Title:          "Proposal Tesis",
		SubmissionType: model.SubmissionProposal,
	})
	require.NoError(t, err)
	_, err = studentSvc.AddSubmission(ctx, stActor, AddSubmissionInput{
		StudentEmail:   "student@kampus.ac.id",
		Title:          "Naskah Final Tesis",
		SubmissionType: model.SubmissionFinal,
	})
	require.NoError(t, err)

	// 4. Penguji baru menjadwalkan sidang dan ditugaskan.
	targetActor = refreshLecturerActor(store, targetLect.ID)
	viva, err := vivaSvc.Create(ctx, targetActor, CreateVivaInput{
		StudentID:   student.ID,
		Topic:       "Sidang tesis",
		VivaDate:    time.Now().Add(7 * 24 * time.Hour),
		ExaminerIDs: []uuid.UUID{ex.ID},
	})
	require.NoError(t, err)

	// 5. Evaluasi lulus mengarsipkan project dari submission terbaru.
	evaluated, err := vivaSvc.Evaluate(ctx, targetActor, viva.ID, "Lulus tanpa revisi", true)
	require.NoError(t, err)
	require.NotNil(t, evaluated.Passed)
	assert.True(t, *evaluated.Passed)

	project, err := store.Projects().FindByStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Naskah Final Tesis", project.Title)
	assert.Equal(t, viva.ID, project.VivaID)
}
