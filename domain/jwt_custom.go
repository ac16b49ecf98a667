package domain

import (
	"github.com/golang-jwt/jwt/v4"
)

type JwtCustomClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
