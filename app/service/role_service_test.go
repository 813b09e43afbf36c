package service

import (
	"context"
	"sync"
	"testing"

	"thesis-management-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteToSupervisor(t *testing.T) {
	ctx := context.Background()

	t.Run("promosi pertama membuat capability", func(t *testing.T) {
		store := newFakeStore()
		svc := NewRoleService(store)
		actor, lect := seedLecturerActor(store, "lect@kampus.ac.id", "L001")

		sup, err := svc.PromoteToSupervisor(ctx, actor, lect.ID)
		require.NoError(t, err)
		assert.Equal(t, lect.ID, sup.LecturerID)
	})

	t.Run("promosi ulang idempoten", func(t *testing.T) {
		store := newFakeStore()
		svc := NewRoleService(store)
		actor, lect := seedLecturerActor(store, "lect@kampus.ac.id", "L001")

		first, err := svc.PromoteToSupervisor(ctx, actor, lect.ID)
		require.NoError(t, err)
		second, err := svc.PromoteToSupervisor(ctx, actor, lect.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID, "capability yang sama dikembalikan")

		sups, err := store.Lecturers().FindAllSupervisors()
		require.NoError(t, err)
		assert.Len(t, sups, 1)
	})

	t.Run("dosen tidak dikenal = not found", func(t *testing.T) {
		store := newFakeStore()
		svc := NewRoleService(store)
		actor, _ := seedLecturerActor(store, "lect@kampus.ac.id", "L001")

		_, err := svc.PromoteToSupervisor(ctx, actor, uuid.New())
		var nErr *utils.NotFoundError
		assert.ErrorAs(t, err, &nErr)
	})

	t.Run("promosi konkuren tidak membuat capability ganda", func(t *testing.T) {
		store := newFakeStore()
		svc := NewRoleService(store)
		actor, lect := seedLecturerActor(store, "lect@kampus.ac.id", "L001")

		const attempts = 8
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.PromoteToSupervisor(ctx, actor, lect.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		sups, err := store.Lecturers().FindAllSupervisors()
		require.NoError(t, err)
		assert.Len(t, sups, 1)
	})
}

func TestPromoteToExaminer(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewRoleService(store)
	actor, lect := seedLecturerActor(store, "lect@kampus.ac.id", "L001")

	first, err := svc.PromoteToExaminer(ctx, actor, lect.ID)
	require.NoError(t, err)
	assert.Equal(t, lect.ID, first.LecturerID)

	second, err := svc.PromoteToExaminer(ctx, actor, lect.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	exs, err := store.Lecturers().FindAllExaminers()
	require.NoError(t, err)
	assert.Len(t, exs, 1)
}

// Promosi role hanya untuk dosen: mahasiswa (atau user tanpa profil dosen)
// ditolak sebelum menyentuh store.
func TestPromoteRequiresLecturerActor(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewRoleService(store)
	stActor, _ := seedStudentActor(store, "student@kampus.ac.id", "P230001")
	_, lect := seedLecturerActor(store, "lect@kampus.ac.id", "L001")

	_, err := svc.PromoteToSupervisor(ctx, stActor, lect.ID)
	var aErr *utils.AuthorizationError
	assert.ErrorAs(t, err, &aErr)

	_, err = svc.PromoteToExaminer(ctx, stActor, lect.ID)
	assert.ErrorAs(t, err, &aErr)

	sups, err := store.Lecturers().FindAllSupervisors()
	require.NoError(t, err)
	assert.Empty(t, sups, "tidak ada capability yang terlanjur dibuat")
	exs, err := store.Lecturers().FindAllExaminers()
	require.NoError(t, err)
	assert.Empty(t, exs)
}

// Dosen boleh memegang kedua capability sekaligus.
func TestPromoteBothCapabilities(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewRoleService(store)
	actor, lect := seedLecturerActor(store, "lect@kampus.ac.id", "L001")

	_, err := svc.PromoteToSupervisor(ctx, actor, lect.ID)
	require.NoError(t, err)
	_, err = svc.PromoteToExaminer(ctx, actor, lect.ID)
	require.NoError(t, err)

	full, err := store.Lecturers().FindByID(lect.ID)
	require.NoError(t, err)
	assert.NotNil(t, full.Supervisor)
	assert.NotNil(t, full.Examiner)
}
