package usecase

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

const (
	testJWTSecret = "test-secret"
	testResetLink = "https://app.example.com/reset-password"
)

type authFixture struct {
	usecase       domain.AuthUsecase
	users         *fakeUserRepo
	verifications *fakeTokenRepo
	resets        *fakeTokenRepo
	mail          *fakeMailer
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	verifications := newFakeTokenRepo()
	resets := newFakeTokenRepo()
	mail := &fakeMailer{}
	return &authFixture{
		usecase:       NewAuthUsecase(users, verifications, resets, mail, nil, testJWTSecret, testResetLink, testTimeout),
		users:         users,
		verifications: verifications,
		resets:        resets,
		mail:          mail,
	}
}

func (fx *authFixture) signup(t *testing.T) domain.Profile {
	t.Helper()
	profile, err := fx.usecase.Signup(context.Background(), domain.SignupRequest{
		Name:     "ana",
		Email:    "ana@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return profile
}

func TestSignupHashesPasswordAndSendsCode(t *testing.T) {
	fx := newAuthFixture()

	profile := fx.signup(t)
	assert.Equal(t, "ana", profile.Name)
	assert.False(t, profile.Verified)

	user, err := fx.users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct horse")))

	require.Len(t, fx.mail.welcomeTokens, 1)
	code := fx.mail.welcomeTokens[0]
	assert.Len(t, code, 12)

	stored, err := fx.verifications.GetByOwner(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, code, stored.Token, "the code must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Token), []byte(code)))
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	fx := newAuthFixture()
	fx.signup(t)

	_, err := fx.usecase.Signup(context.Background(), domain.SignupRequest{
		Name:     "imposter",
		Email:    "ana@example.com",
		Password: "another pass",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestVerifyEmailFlow(t *testing.T) {
	fx := newAuthFixture()
	profile := fx.signup(t)
	code := fx.mail.welcomeTokens[0]

	err := fx.usecase.VerifyEmail(context.Background(), domain.VerifyEmailRequest{
		UserID: profile.ID,
		Token:  "000000000000",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = fx.usecase.VerifyEmail(context.Background(), domain.VerifyEmailRequest{
		UserID: profile.ID,
		Token:  code,
	})
	require.NoError(t, err)

	user, err := fx.users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.True(t, user.Verified)

	_, err = fx.verifications.GetByOwner(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "a used code must be gone")
}

func TestReVerifyEmailIssuesFreshCode(t *testing.T) {
	fx := newAuthFixture()
	profile := fx.signup(t)

	require.NoError(t, fx.usecase.ReVerifyEmail(context.Background(), profile.ID))
	require.Len(t, fx.mail.welcomeTokens, 2)

	// The first code is superseded.
	err := fx.usecase.VerifyEmail(context.Background(), domain.VerifyEmailRequest{
		UserID: profile.ID,
		Token:  fx.mail.welcomeTokens[0],
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = fx.usecase.VerifyEmail(context.Background(), domain.VerifyEmailRequest{
		UserID: profile.ID,
		Token:  fx.mail.welcomeTokens[1],
	})
	assert.NoError(t, err)
}

func TestSigninIssuesSessionToken(t *testing.T) {
	fx := newAuthFixture()
	fx.signup(t)

	profile, token, err := fx.usecase.Signin(context.Background(), domain.SigninRequest{
		Email:    "ana@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "ana", profile.Name)

	user, err := fx.users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, user.Tokens, token)
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	fx := newAuthFixture()
	fx.signup(t)

	_, _, err := fx.usecase.Signin(context.Background(), domain.SigninRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = fx.usecase.Signin(context.Background(), domain.SigninRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	fx := newAuthFixture()
	fx.signup(t)

	_, first, err := fx.usecase.Signin(context.Background(), domain.SigninRequest{
		Email: "ana@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	_, second, err := fx.usecase.Signin(context.Background(), domain.SigninRequest{
		Email: "ana@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	user, err := fx.users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, user.Tokens, 2)

	require.NoError(t, fx.usecase.Logout(context.Background(), user.ID, first, false))
	user, _ = fx.users.GetByID(context.Background(), user.ID)
	assert.Equal(t, []string{second}, user.Tokens)

	require.NoError(t, fx.usecase.Logout(context.Background(), user.ID, second, true))
	user, _ = fx.users.GetByID(context.Background(), user.ID)
	assert.Empty(t, user.Tokens)
}

func TestPasswordResetFlow(t *testing.T) {
	fx := newAuthFixture()
	profile := fx.signup(t)

	require.NoError(t, fx.usecase.ForgetPassword(context.Background(), "ana@example.com"))
	require.Len(t, fx.mail.resetLinks, 1)

	link, err := url.Parse(fx.mail.resetLinks[0])
	require.NoError(t, err)
	token := link.Query().Get("token")
	userID := link.Query().Get("userId")
	require.NotEmpty(t, token)
	assert.Equal(t, profile.ID, userID)

	require.NoError(t, fx.usecase.ValidResetToken(context.Background(), userID, token))
	assert.ErrorIs(t,
		fx.usecase.ValidResetToken(context.Background(), userID, "bogus"),
		domain.ErrUnauthorized)

	// Re-using the old password is rejected.
	err = fx.usecase.UpdatePassword(context.Background(), domain.UpdatePasswordRequest{
		UserID: userID, Token: token, Password: "correct horse",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, fx.usecase.UpdatePassword(context.Background(), domain.UpdatePasswordRequest{
		UserID: userID, Token: token, Password: "brand new pass",
	}))
	assert.Equal(t, 1, fx.mail.successMails)

	oid, err := primitive.ObjectIDFromHex(userID)
	require.NoError(t, err)
	_, err = fx.resets.GetByOwner(context.Background(), oid)
	assert.ErrorIs(t, err, domain.ErrNotFound, "a used reset token must be gone")

	_, _, err = fx.usecase.Signin(context.Background(), domain.SigninRequest{
		Email: "ana@example.com", Password: "correct horse",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = fx.usecase.Signin(context.Background(), domain.SigninRequest{
		Email: "ana@example.com", Password: "brand new pass",
	})
	assert.NoError(t, err)
}

func TestForgetPasswordUnknownEmail(t *testing.T) {
	fx := newAuthFixture()

	err := fx.usecase.ForgetPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
