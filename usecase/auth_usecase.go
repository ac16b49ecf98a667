package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/internal/mailer"
	"github.com/wavelength-audio/wavelength-backend/internal/storage"
	"github.com/wavelength-audio/wavelength-backend/internal/tokenutil"
)

const bcryptCost = 12

type authUsecase struct {
	userRepository     domain.UserRepository
	verificationTokens domain.OwnedTokenRepository
	resetTokens        domain.OwnedTokenRepository
	mail               mailer.Mailer
	media              storage.Provider
	jwtSecret          string
	passwordResetLink  string
	contextTimeout     time.Duration
}

func NewAuthUsecase(
	userRepository domain.UserRepository,
	verificationTokens domain.OwnedTokenRepository,
	resetTokens domain.OwnedTokenRepository,
	mail mailer.Mailer,
	media storage.Provider,
	jwtSecret string,
	passwordResetLink string,
	timeout time.Duration,
) domain.AuthUsecase {
	return &authUsecase{
		userRepository:     userRepository,
		verificationTokens: verificationTokens,
		resetTokens:        resetTokens,
		mail:               mail,
		media:              media,
		jwtSecret:          jwtSecret,
		passwordResetLink:  passwordResetLink,
		contextTimeout:     timeout,
	}
}

// generateDigits returns an n-digit verification code.
func generateDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%d", d.Int64())
	}
	return b.String(), nil
}

func generateSecret(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (au *authUsecase) Signup(ctx context.Context, req domain.SignupRequest) (domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	if _, err := au.userRepository.GetByEmail(ctx, req.Email); err == nil {
		return domain.Profile{}, domain.ErrEmailTaken
	} else if err != domain.ErrNotFound {
		return domain.Profile{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return domain.Profile{}, err
	}

	user := domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := au.userRepository.Create(ctx, &user); err != nil {
		return domain.Profile{}, err
	}

	if err := au.issueVerification(ctx, &user); err != nil {
		return domain.Profile{}, err
	}
	return user.Profile(), nil
}

func (au *authUsecase) issueVerification(ctx context.Context, user *domain.User) error {
	code, err := generateDigits(12)
	if err != nil {
		return err
	}
	hashedCode, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	if err != nil {
		return err
	}
	if err := au.verificationTokens.Replace(ctx, user.ID, string(hashedCode)); err != nil {
		return err
	}
	return au.mail.SendWelcome(user.Name, user.Email, code)
}

func (au *authUsecase) VerifyEmail(ctx context.Context, req domain.VerifyEmailRequest) error {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	userID, err := primitiveIDFromHex(req.UserID)
	if err != nil {
		return err
	}

	stored, err := au.verificationTokens.GetByOwner(ctx, userID)
	if err == domain.ErrNotFound {
		return domain.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Token), []byte(req.Token)) != nil {
		return domain.ErrUnauthorized
	}

	if err := au.userRepository.SetVerified(ctx, userID); err != nil {
		return err
	}
	return au.verificationTokens.DeleteByOwner(ctx, userID)
}

func (au *authUsecase) ReVerifyEmail(ctx context.Context, rawUserID string) error {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	userID, err := primitiveIDFromHex(rawUserID)
	if err != nil {
		return err
	}

	user, err := au.userRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Verified {
		return fmt.Errorf("account is already verified: %w", domain.ErrInvalidID)
	}
	return au.issueVerification(ctx, &user)
}

func (au *authUsecase) ForgetPassword(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	user, err := au.userRepository.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := generateSecret(18)
	if err != nil {
		return err
	}
	hashedToken, err := bcrypt.GenerateFromPassword([]byte(token), bcryptCost)
	if err != nil {
		return err
	}
	if err := au.resetTokens.Replace(ctx, user.ID, string(hashedToken)); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s?token=%s&userId=%s", au.passwordResetLink, token, user.ID.Hex())
	return au.mail.SendForgetPasswordLink(user.Name, user.Email, resetLink)
}

func (au *authUsecase) ValidResetToken(ctx context.Context, rawUserID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()
	return au.checkResetToken(ctx, rawUserID, token)
}

func (au *authUsecase) checkResetToken(ctx context.Context, rawUserID, token string) error {
	userID, err := primitiveIDFromHex(rawUserID)
	if err != nil {
		return err
	}

	stored, err := au.resetTokens.GetByOwner(ctx, userID)
	if err == domain.ErrNotFound {
		return domain.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Token), []byte(token)) != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

func (au *authUsecase) UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest) error {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	if err := au.checkResetToken(ctx, req.UserID, req.Token); err != nil {
		return err
	}
	userID, err := primitiveIDFromHex(req.UserID)
	if err != nil {
		return err
	}

	user, err := au.userRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) == nil {
		return fmt.Errorf("the new password must be different: %w", domain.ErrInvalidID)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}
	if err := au.userRepository.SetPassword(ctx, userID, string(hashed)); err != nil {
		return err
	}
	if err := au.resetTokens.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	return au.mail.SendPasswordResetSuccess(user.Name, user.Email)
}

func (au *authUsecase) Signin(ctx context.Context, req domain.SigninRequest) (domain.Profile, string, error) {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	user, err := au.userRepository.GetByEmail(ctx, req.Email)
	if err == domain.ErrNotFound {
		return domain.Profile{}, "", domain.ErrUnauthorized
	}
	if err != nil {
		return domain.Profile{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return domain.Profile{}, "", domain.ErrUnauthorized
	}

	token, err := tokenutil.CreateAccessToken(&user, au.jwtSecret)
	if err != nil {
		return domain.Profile{}, "", err
	}
	if err := au.userRepository.AddToken(ctx, user.ID, token); err != nil {
		return domain.Profile{}, "", err
	}
	return user.Profile(), token, nil
}

func (au *authUsecase) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string, avatar *multipart.FileHeader) (domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	if len(strings.TrimSpace(name)) < 3 {
		return domain.Profile{}, fmt.Errorf("invalid name: %w", domain.ErrInvalidID)
	}

	user, err := au.userRepository.GetByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	var avatarRef *domain.MediaRef
	if avatar != nil {
		f, kind, err := sniffUpload(avatar, filetype.IsImage)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("avatar rejected: %w", err)
		}
		defer f.Close()

		if user.Avatar != nil && user.Avatar.PublicID != "" {
			_ = au.media.Delete(ctx, user.Avatar.PublicID)
		}

		ref, err := au.media.Put(ctx, "avatars", filepath.Ext(avatar.Filename), kind.MIME.Value, f)
		if err != nil {
			return domain.Profile{}, err
		}
		avatarRef = &ref
	}

	if err := au.userRepository.UpdateProfile(ctx, userID, name, avatarRef); err != nil {
		return domain.Profile{}, err
	}

	updated, err := au.userRepository.GetByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return updated.Profile(), nil
}

func (au *authUsecase) Logout(ctx context.Context, userID primitive.ObjectID, token string, fromAll bool) error {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	if fromAll {
		return au.userRepository.ClearTokens(ctx, userID)
	}
	return au.userRepository.PullToken(ctx, userID, token)
}
