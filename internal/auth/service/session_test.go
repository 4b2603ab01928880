package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kowapp/internal/auth/token"
	"kowapp/internal/common/apperr"
)

type fakeSessionRow struct {
	tutorID  int
	isActive bool
}

type fakeSessionRepo struct {
	rows []fakeSessionRow
}

func (f *fakeSessionRepo) Replace(_ context.Context, tutorID int) error {
	for i := range f.rows {
		if f.rows[i].tutorID == tutorID {
			f.rows[i].isActive = false
		}
	}
	f.rows = append(f.rows, fakeSessionRow{tutorID: tutorID, isActive: true})
	return nil
}

func (f *fakeSessionRepo) DeleteByTutor(_ context.Context, tutorID int) error {
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.tutorID != tutorID {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeSessionRepo) HasActive(_ context.Context, tutorID int) (bool, error) {
	for _, row := range f.rows {
		if row.tutorID == tutorID && row.isActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessionRepo) activeCount(tutorID int) int {
	n := 0
	for _, row := range f.rows {
		if row.tutorID == tutorID && row.isActive {
			n++
		}
	}
	return n
}

func newTestSessionService(repo *fakeSessionRepo) *SessionService {
	return NewSessionService(repo, token.NewManager("test-secret", time.Hour))
}

func TestEstablishSessionSingleActive(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestSessionService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.EstablishSession(ctx, 7)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, repo.activeCount(7), "repeated logins must leave exactly one active session")
	assert.Len(t, repo.rows, 3)
}

func TestEstablishSessionScopedPerTutor(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestSessionService(repo)
	ctx := context.Background()

	_, err := svc.EstablishSession(ctx, 1)
	require.NoError(t, err)
	_, err = svc.EstablishSession(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.activeCount(1))
	assert.Equal(t, 1, repo.activeCount(2))
}

func TestEndSessionIdempotent(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestSessionService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EndSession(ctx, 9))

	_, err := svc.EstablishSession(ctx, 9)
	require.NoError(t, err)
	require.NoError(t, svc.EndSession(ctx, 9))
	require.NoError(t, svc.EndSession(ctx, 9))

	assert.Equal(t, 0, repo.activeCount(9))
}

func TestAuthenticate(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestSessionService(repo)
	ctx := context.Background()

	signed, err := svc.EstablishSession(ctx, 5)
	require.NoError(t, err)

	id, err := svc.Authenticate(ctx, signed)
	require.NoError(t, err)
	assert.Equal(t, 5, id)
}

func TestAuthenticateMissingToken(t *testing.T) {
	svc := newTestSessionService(&fakeSessionRepo{})

	_, err := svc.Authenticate(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthMissing, apperr.KindOf(err))
}

func TestAuthenticateRevokedSession(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestSessionService(repo)
	ctx := context.Background()

	signed, err := svc.EstablishSession(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, svc.EndSession(ctx, 5))

	// Token is still cryptographically valid, but the session row is gone.
	_, err = svc.Authenticate(ctx, signed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthInvalid, apperr.KindOf(err))
}

func TestAuthenticateForeignSecret(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := newTestSessionService(repo)
	ctx := context.Background()

	foreign, err := token.NewManager("other-secret", time.Hour).Sign(5)
	require.NoError(t, err)
	require.NoError(t, repo.Replace(ctx, 5))

	_, err = svc.Authenticate(ctx, foreign)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthInvalid, apperr.KindOf(err))
}
