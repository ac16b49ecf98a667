package tokenutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID()}

	token, err := CreateAccessToken(user, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := ExtractUserID(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), id)
}

func TestExtractUserIDRejectsWrongSecret(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID()}

	token, err := CreateAccessToken(user, "secret")
	require.NoError(t, err)

	_, err = ExtractUserID(token, "other-secret")
	assert.Error(t, err)
}

func TestExtractUserIDRejectsGarbage(t *testing.T) {
	_, err := ExtractUserID("not-a-token", "secret")
	assert.Error(t, err)
}
