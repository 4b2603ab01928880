package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kowapp/internal/common/apperr"
	"kowapp/internal/common/crypto"
	"kowapp/internal/mail"
	"kowapp/internal/tutor/model"
	vmodel "kowapp/internal/verification/model"
)

type fakeCodeRepo struct {
	verification []vmodel.Code
	recovery     []vmodel.Code
	nextID       int
}

func (f *fakeCodeRepo) InsertVerification(_ context.Context, email, code string, expiry time.Time) error {
	f.nextID++
	f.verification = append(f.verification, vmodel.Code{ID: f.nextID, Email: email, Code: code, ExpiryDate: expiry})
	return nil
}

func (f *fakeCodeRepo) InsertRecovery(_ context.Context, email, code string, expiry time.Time) error {
	f.nextID++
	f.recovery = append(f.recovery, vmodel.Code{ID: f.nextID, Email: email, Code: code, ExpiryDate: expiry})
	return nil
}

func findCode(codes []vmodel.Code, email, code string) (vmodel.Code, error) {
	for i := len(codes) - 1; i >= 0; i-- {
		if codes[i].Email == email && codes[i].Code == code {
			return codes[i], nil
		}
	}
	return vmodel.Code{}, fmt.Errorf("code not found: %w", pgx.ErrNoRows)
}

func (f *fakeCodeRepo) FindVerification(_ context.Context, email, code string) (vmodel.Code, error) {
	return findCode(f.verification, email, code)
}

func (f *fakeCodeRepo) FindRecovery(_ context.Context, email, code string) (vmodel.Code, error) {
	return findCode(f.recovery, email, code)
}

func (f *fakeCodeRepo) LatestRecovery(_ context.Context, email string) (vmodel.Code, error) {
	var latest *vmodel.Code
	for i := range f.recovery {
		if f.recovery[i].Email != email {
			continue
		}
		if latest == nil || f.recovery[i].ExpiryDate.After(latest.ExpiryDate) {
			latest = &f.recovery[i]
		}
	}
	if latest == nil {
		return vmodel.Code{}, fmt.Errorf("code not found: %w", pgx.ErrNoRows)
	}
	return *latest, nil
}

func deleteCode(codes []vmodel.Code, id int) []vmodel.Code {
	kept := codes[:0]
	for _, c := range codes {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return kept
}

func (f *fakeCodeRepo) DeleteVerification(_ context.Context, id int) error {
	f.verification = deleteCode(f.verification, id)
	return nil
}

func (f *fakeCodeRepo) DeleteRecovery(_ context.Context, id int) error {
	f.recovery = deleteCode(f.recovery, id)
	return nil
}

type fakeTutorStore struct {
	tutors map[string]*model.Tutor
}

func (f *fakeTutorStore) GetByEmail(_ context.Context, email string) (model.Tutor, error) {
	if t, ok := f.tutors[email]; ok {
		return *t, nil
	}
	return model.Tutor{}, fmt.Errorf("tutor not found: %w", pgx.ErrNoRows)
}

func (f *fakeTutorStore) SetEmailVerified(_ context.Context, email string) error {
	if t, ok := f.tutors[email]; ok {
		t.EmailVerified = true
	}
	return nil
}

func (f *fakeTutorStore) UpdatePassword(_ context.Context, email, passwordHash string) error {
	if t, ok := f.tutors[email]; ok {
		t.Password = passwordHash
	}
	return nil
}

type fakeQueue struct {
	sent []mail.Message
}

func (f *fakeQueue) Enqueue(msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

const testEmail = "tutor@example.com"

func newFixture(verificationTTL, recoveryTTL time.Duration) (*CodeService, *fakeCodeRepo, *fakeTutorStore, *fakeQueue) {
	repo := &fakeCodeRepo{}
	tutors := &fakeTutorStore{tutors: map[string]*model.Tutor{
		testEmail: {ID: 1, Email: testEmail, Password: "old-hash"},
	}}
	queue := &fakeQueue{}
	svc := NewCodeService(repo, tutors, queue, verificationTTL, recoveryTTL)
	return svc, repo, tutors, queue
}

func TestIssueVerificationCodeSixDigits(t *testing.T) {
	svc, repo, _, queue := newFixture(3*time.Minute, 2*time.Minute)

	require.NoError(t, svc.IssueVerificationCode(context.Background(), testEmail))

	require.Len(t, repo.verification, 1)
	assert.Len(t, repo.verification[0].Code, 6, "verification codes are fixed at six digits")
	require.Len(t, queue.sent, 1)
	assert.Equal(t, testEmail, queue.sent[0].To)
	assert.Contains(t, queue.sent[0].Body, repo.verification[0].Code)
}

func TestRedeemVerificationCode(t *testing.T) {
	svc, repo, tutors, _ := newFixture(3*time.Minute, 2*time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.IssueVerificationCode(ctx, testEmail))
	code := repo.verification[0].Code

	ok, err := svc.RedeemVerificationCode(ctx, testEmail, code)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, tutors.tutors[testEmail].EmailVerified)

	// The code is consumed on redemption; replaying it must fail.
	ok, err = svc.RedeemVerificationCode(ctx, testEmail, code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedeemVerificationCodeWrongCode(t *testing.T) {
	svc, _, tutors, _ := newFixture(3*time.Minute, 2*time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.IssueVerificationCode(ctx, testEmail))

	ok, err := svc.RedeemVerificationCode(ctx, testEmail, "000000x")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, tutors.tutors[testEmail].EmailVerified)
}

func TestRedeemVerificationCodeExpired(t *testing.T) {
	svc, repo, tutors, _ := newFixture(-time.Second, 2*time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.IssueVerificationCode(ctx, testEmail))
	code := repo.verification[0].Code

	ok, err := svc.RedeemVerificationCode(ctx, testEmail, code)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, tutors.tutors[testEmail].EmailVerified)
}

func TestIssueRecoveryCodeConflictWhileOutstanding(t *testing.T) {
	svc, _, _, _ := newFixture(3*time.Minute, 2*time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.IssueRecoveryCode(ctx, testEmail))

	err := svc.IssueRecoveryCode(ctx, testEmail)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestIssueRecoveryCodeAfterExpiry(t *testing.T) {
	svc, repo, _, _ := newFixture(3*time.Minute, -time.Second)
	ctx := context.Background()

	require.NoError(t, svc.IssueRecoveryCode(ctx, testEmail))
	require.NoError(t, svc.IssueRecoveryCode(ctx, testEmail))
	assert.Len(t, repo.recovery, 2)
}

func TestIssueRecoveryCodeUnknownEmail(t *testing.T) {
	svc, _, _, _ := newFixture(3*time.Minute, 2*time.Minute)

	err := svc.IssueRecoveryCode(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRedeemRecoveryCodeRotatesPassword(t *testing.T) {
	svc, repo, tutors, queue := newFixture(3*time.Minute, 2*time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.IssueRecoveryCode(ctx, testEmail))
	code := repo.recovery[0].Code

	tempPassword, err := svc.RedeemRecoveryCode(ctx, testEmail, code)
	require.NoError(t, err)
	assert.Len(t, tempPassword, 10)

	// The stored hash changed and verifies against the returned plaintext.
	assert.NotEqual(t, "old-hash", tutors.tutors[testEmail].Password)
	assert.NoError(t, crypto.CheckPassword(tutors.tutors[testEmail].Password, tempPassword))

	// The plaintext went out by email.
	found := false
	for _, msg := range queue.sent {
		if msg.Subject == "Tu nueva contraseña temporal" {
			assert.Contains(t, msg.Body, tempPassword)
			found = true
		}
	}
	assert.True(t, found, "temporary password email not queued")

	// Redemption succeeds exactly once.
	_, err = svc.RedeemRecoveryCode(ctx, testEmail, code)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthInvalid, apperr.KindOf(err))
}

func TestRedeemRecoveryCodeExpired(t *testing.T) {
	svc, repo, _, _ := newFixture(3*time.Minute, -time.Second)
	ctx := context.Background()

	require.NoError(t, svc.IssueRecoveryCode(ctx, testEmail))
	code := repo.recovery[0].Code

	_, err := svc.RedeemRecoveryCode(ctx, testEmail, code)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthInvalid, apperr.KindOf(err))
}
