package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/auth"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

func newAuthService() (*AuthService, *fakeUserRepo) {
	users := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tokens), users
}

func TestRegisterIssuesTokenAndHashesPassword(t *testing.T) {
	svc, users := newAuthService()

	res, err := svc.Register(context.Background(), RegisterInput{
		Name: "Dr. Mehta", Email: "  Mehta@Example.COM ", Password: "s3cret1", Role: models.RoleDoctor,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "mehta@example.com", res.User.Email)
	assert.NotEqual(t, "s3cret1", res.User.PasswordHash)
	assert.True(t, res.User.IsAvailable, "doctors start available")
	assert.Equal(t, "en", res.User.Language)
	assert.Len(t, users.users, 1)

	claims, err := auth.NewTokenManager("test-secret", time.Hour).Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleDoctor, claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.c", Password: "longenough", Role: models.RolePatient}},
		{"bad email", RegisterInput{Name: "A", Email: "nope", Password: "longenough", Role: models.RolePatient}},
		{"short password", RegisterInput{Name: "A", Email: "a@b.c", Password: "ab", Role: models.RolePatient}},
		{"bad role", RegisterInput{Name: "A", Email: "a@b.c", Password: "longenough", Role: "admin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	in := RegisterInput{Name: "A", Email: "a@b.c", Password: "longenough", Role: models.RolePatient}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ravi", Email: "ravi@b.c", Password: "longenough", Role: models.RolePatient})
	require.NoError(t, err)

	res, err := svc.Login(ctx, "RAVI@b.c", "longenough")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, "ravi@b.c", "wrongpass")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@b.c", "longenough")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSetAvailabilityDoctorsOnly(t *testing.T) {
	users := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	doctor, _ := users.Insert(context.Background(), &models.User{Name: "D", Role: models.RoleDoctor, IsAvailable: true})
	patient, _ := users.Insert(context.Background(), &models.User{Name: "P", Role: models.RolePatient})
	svc := NewUserService(users)

	u, err := svc.SetAvailability(context.Background(), doctor.ID, models.RoleDoctor, false)
	require.NoError(t, err)
	assert.False(t, u.IsAvailable)

	_, err = svc.SetAvailability(context.Background(), patient.ID, models.RolePatient, true)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSetLanguage(t *testing.T) {
	users := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	u, _ := users.Insert(context.Background(), &models.User{Name: "P", Role: models.RolePatient, Language: "en"})
	svc := NewUserService(users)

	updated, err := svc.SetLanguage(context.Background(), u.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", updated.Language)

	_, err = svc.SetLanguage(context.Background(), u.ID, "")
	assert.True(t, apperrors.IsValidation(err))
}
