package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

func TestToggleFavoriteKeepsLikesInSync(t *testing.T) {
	owner := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	uploader := domain.User{ID: primitive.NewObjectID(), Name: "dj"}
	audio := domain.Audio{ID: primitive.NewObjectID(), Title: "hit", Owner: uploader.ID}

	favorites := newFakeFavoriteRepo()
	audios := newFakeAudioRepo(audio)
	fu := NewFavoriteUsecase(favorites, audios, newFakeUserRepo(owner, uploader), testTimeout)

	status, err := fu.Toggle(context.Background(), owner.ID, audio.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.FavoriteStatusAdded, status)

	got, _ := audios.GetByID(context.Background(), audio.ID)
	assert.Equal(t, []primitive.ObjectID{owner.ID}, got.Likes)

	ok, err := fu.IsFavorite(context.Background(), owner.ID, audio.ID.Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	status, err = fu.Toggle(context.Background(), owner.ID, audio.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.FavoriteStatusRemoved, status)

	got, _ = audios.GetByID(context.Background(), audio.ID)
	assert.Empty(t, got.Likes)
}

func TestToggleFavoriteUnknownAudio(t *testing.T) {
	owner := domain.User{ID: primitive.NewObjectID()}
	fu := NewFavoriteUsecase(newFakeFavoriteRepo(), newFakeAudioRepo(), newFakeUserRepo(owner), testTimeout)

	_, err := fu.Toggle(context.Background(), owner.ID, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = fu.Toggle(context.Background(), owner.ID, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestGetFavoritesKeepsInsertionOrder(t *testing.T) {
	owner := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	uploader := domain.User{ID: primitive.NewObjectID(), Name: "dj"}

	first := domain.Audio{ID: primitive.NewObjectID(), Title: "first", Owner: uploader.ID}
	second := domain.Audio{ID: primitive.NewObjectID(), Title: "second", Owner: uploader.ID}
	gone := primitive.NewObjectID()

	favorites := newFakeFavoriteRepo()
	require.NoError(t, favorites.AddItem(context.Background(), owner.ID, first.ID))
	require.NoError(t, favorites.AddItem(context.Background(), owner.ID, gone))
	require.NoError(t, favorites.AddItem(context.Background(), owner.ID, second.ID))

	fu := NewFavoriteUsecase(favorites, newFakeAudioRepo(first, second), newFakeUserRepo(owner, uploader), testTimeout)

	cards, err := fu.GetFavorites(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, cards, 2, "deleted audio drops out of the list")
	assert.Equal(t, "first", cards[0].Title)
	assert.Equal(t, "second", cards[1].Title)
	assert.Equal(t, "dj", cards[0].Owner.Name)
}

func TestGetFavoritesWithoutDocument(t *testing.T) {
	fu := NewFavoriteUsecase(newFakeFavoriteRepo(), newFakeAudioRepo(), newFakeUserRepo(), testTimeout)

	cards, err := fu.GetFavorites(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, cards)
}
