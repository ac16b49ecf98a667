package domain

import (
	"context"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	UserID string `json:"userId" binding:"required"`
	Token  string `json:"token" binding:"required"`
}

type ReVerifyEmailRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdatePasswordRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type SigninResponse struct {
	Status  string  `json:"status"`
	Profile Profile `json:"profile"`
	Token   string  `json:"token"`
}

type AuthUsecase interface {
	Signup(ctx context.Context, req SignupRequest) (Profile, error)
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) error
	ReVerifyEmail(ctx context.Context, userID string) error
	ForgetPassword(ctx context.Context, email string) error
	// ValidResetToken reports whether the (user, token) pair matches a
	// stored reset token.
	ValidResetToken(ctx context.Context, userID, token string) error
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error
	Signin(ctx context.Context, req SigninRequest) (Profile, string, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string, avatar *multipart.FileHeader) (Profile, error)
	Logout(ctx context.Context, userID primitive.ObjectID, token string, fromAll bool) error
}
