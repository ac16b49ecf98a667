package tokenutil

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

// CreateAccessToken mints a session token carrying the user id. Tokens have
// no expiry of their own; they stay valid while present in the user's token
// set and die on logout.
func CreateAccessToken(user *domain.User, secret string) (string, error) {
	claims := &domain.JwtCustomClaims{
		UserID: user.ID.Hex(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ExtractUserID verifies the signature and returns the embedded user id.
func ExtractUserID(requestToken string, secret string) (string, error) {
	claims := &domain.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(requestToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}
