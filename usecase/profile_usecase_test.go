package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

func newProfileUsecaseForTest(
	users *fakeUserRepo,
	audios *fakeAudioRepo,
	histories *fakeHistoryRepo,
	playlists *fakePlaylistRepo,
	autos *fakeAutoPlaylistRepo,
) domain.ProfileUsecase {
	return NewProfileUsecase(users, audios, histories, playlists, autos, testTimeout)
}

func TestToggleFollowerKeepsBothSidesInSync(t *testing.T) {
	follower := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	profile := domain.User{ID: primitive.NewObjectID(), Name: "ben"}
	users := newFakeUserRepo(follower, profile)

	pu := newProfileUsecaseForTest(users, newFakeAudioRepo(), newFakeHistoryRepo(), newFakePlaylistRepo(), &fakeAutoPlaylistRepo{})

	status, err := pu.ToggleFollower(context.Background(), follower.ID, profile.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.FollowerStatusAdded, status)

	gotProfile, _ := users.GetByID(context.Background(), profile.ID)
	gotFollower, _ := users.GetByID(context.Background(), follower.ID)
	assert.Equal(t, []primitive.ObjectID{follower.ID}, gotProfile.Followers)
	assert.Equal(t, []primitive.ObjectID{profile.ID}, gotFollower.Followings)

	status, err = pu.ToggleFollower(context.Background(), follower.ID, profile.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.FollowerStatusRemoved, status)

	gotProfile, _ = users.GetByID(context.Background(), profile.ID)
	gotFollower, _ = users.GetByID(context.Background(), follower.ID)
	assert.Empty(t, gotProfile.Followers)
	assert.Empty(t, gotFollower.Followings)
}

func TestToggleFollowerRollsBackOnPartialFailure(t *testing.T) {
	follower := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	profile := domain.User{ID: primitive.NewObjectID(), Name: "ben"}
	users := newFakeUserRepo(follower, profile)
	users.failAddFollowing = true

	pu := newProfileUsecaseForTest(users, newFakeAudioRepo(), newFakeHistoryRepo(), newFakePlaylistRepo(), &fakeAutoPlaylistRepo{})

	_, err := pu.ToggleFollower(context.Background(), follower.ID, profile.ID.Hex())
	require.Error(t, err)

	gotProfile, _ := users.GetByID(context.Background(), profile.ID)
	assert.Empty(t, gotProfile.Followers, "the follower write must be rolled back")
}

func TestToggleFollowerUnknownProfile(t *testing.T) {
	follower := domain.User{ID: primitive.NewObjectID()}
	pu := newProfileUsecaseForTest(newFakeUserRepo(follower), newFakeAudioRepo(), newFakeHistoryRepo(), newFakePlaylistRepo(), &fakeAutoPlaylistRepo{})

	_, err := pu.ToggleFollower(context.Background(), follower.ID, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = pu.ToggleFollower(context.Background(), follower.ID, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestRecommendationsForAnonymousUseGlobalRanking(t *testing.T) {
	uploader := domain.User{ID: primitive.NewObjectID(), Name: "dj"}
	audios := newFakeAudioRepo()
	audios.topLiked = []domain.Audio{
		{ID: primitive.NewObjectID(), Title: "hit", Owner: uploader.ID, Category: "Music"},
	}

	pu := newProfileUsecaseForTest(newFakeUserRepo(uploader), audios, newFakeHistoryRepo(), newFakePlaylistRepo(), &fakeAutoPlaylistRepo{})

	cards, err := pu.GetRecommendations(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "hit", cards[0].Title)
	assert.Equal(t, "dj", cards[0].Owner.Name)
	assert.Empty(t, audios.topCategories)
}

func TestRecommendationsFollowRecentListening(t *testing.T) {
	listener := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	uploader := domain.User{ID: primitive.NewObjectID(), Name: "dj"}

	musicAudio := domain.Audio{ID: primitive.NewObjectID(), Owner: uploader.ID, Category: "Music"}
	newsAudio := domain.Audio{ID: primitive.NewObjectID(), Owner: uploader.ID, Category: "News"}
	staleAudio := domain.Audio{ID: primitive.NewObjectID(), Owner: uploader.ID, Category: "Sports"}

	histories := newFakeHistoryRepo()
	now := time.Now()
	require.NoError(t, histories.Create(context.Background(), &domain.History{
		Owner: listener.ID,
		All: []domain.HistoryEntry{
			{ID: primitive.NewObjectID(), Audio: musicAudio.ID, Date: now.AddDate(0, 0, -1)},
			{ID: primitive.NewObjectID(), Audio: newsAudio.ID, Date: now.AddDate(0, 0, -15)},
			{ID: primitive.NewObjectID(), Audio: staleAudio.ID, Date: now.AddDate(0, 0, -45)},
		},
	}))

	audios := newFakeAudioRepo(musicAudio, newsAudio, staleAudio)
	audios.topLiked = []domain.Audio{musicAudio}

	pu := newProfileUsecaseForTest(newFakeUserRepo(listener, uploader), audios, histories, newFakePlaylistRepo(), &fakeAutoPlaylistRepo{})

	_, err := pu.GetRecommendations(context.Background(), &listener)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Music", "News"}, audios.topCategories,
		"plays older than the affinity window must not contribute")
}

func TestRecommendationsWithoutHistoryFallBack(t *testing.T) {
	listener := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	audios := newFakeAudioRepo()

	pu := newProfileUsecaseForTest(newFakeUserRepo(listener), audios, newFakeHistoryRepo(), newFakePlaylistRepo(), &fakeAutoPlaylistRepo{})

	_, err := pu.GetRecommendations(context.Background(), &listener)
	require.NoError(t, err)
	assert.Equal(t, 1, audios.topCalls)
	assert.Empty(t, audios.topCategories)
}

func TestAutoGeneratedPlaylistsMixComesLast(t *testing.T) {
	listener := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	uploader := domain.User{ID: primitive.NewObjectID(), Name: "dj"}

	played := make([]domain.Audio, 0, 3)
	entries := make([]domain.HistoryEntry, 0, 3)
	now := time.Now()
	for i := 0; i < 3; i++ {
		a := domain.Audio{ID: primitive.NewObjectID(), Owner: uploader.ID, Category: "Music"}
		played = append(played, a)
		entries = append(entries, domain.HistoryEntry{
			ID:    primitive.NewObjectID(),
			Audio: a.ID,
			Date:  now.AddDate(0, 0, -i),
		})
	}

	histories := newFakeHistoryRepo()
	require.NoError(t, histories.Create(context.Background(), &domain.History{Owner: listener.ID, All: entries}))

	autos := &fakeAutoPlaylistRepo{sampled: []domain.AutoGeneratedPlaylist{
		{ID: primitive.NewObjectID(), Title: "Morning Music", Items: []primitive.ObjectID{played[0].ID}},
		{ID: primitive.NewObjectID(), Title: "Deep Focus", Items: []primitive.ObjectID{played[1].ID}},
	}}
	playlists := newFakePlaylistRepo()

	pu := newProfileUsecaseForTest(newFakeUserRepo(listener, uploader), newFakeAudioRepo(played...), histories, playlists, autos)

	infos, err := pu.GetAutoGeneratedPlaylists(context.Background(), listener.ID)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, "Morning Music", infos[0].Title)
	assert.Equal(t, "Deep Focus", infos[1].Title)

	mix := infos[2]
	assert.Equal(t, domain.MixPlaylistTitle, mix.Title)
	assert.Empty(t, mix.Visibility)
	assert.Equal(t, 3, mix.ItemsCount)

	assert.ElementsMatch(t, []string{"Music"}, autos.sampleTitles)
}

func TestAutoGeneratedPlaylistsUpsertSingleMix(t *testing.T) {
	listener := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	uploader := domain.User{ID: primitive.NewObjectID(), Name: "dj"}
	audio := domain.Audio{ID: primitive.NewObjectID(), Owner: uploader.ID, Category: "News"}

	histories := newFakeHistoryRepo()
	require.NoError(t, histories.Create(context.Background(), &domain.History{
		Owner: listener.ID,
		All: []domain.HistoryEntry{{
			ID:    primitive.NewObjectID(),
			Audio: audio.ID,
			Date:  time.Now(),
		}},
	}))

	playlists := newFakePlaylistRepo()
	pu := newProfileUsecaseForTest(newFakeUserRepo(listener, uploader), newFakeAudioRepo(audio), histories, playlists, &fakeAutoPlaylistRepo{})

	_, err := pu.GetAutoGeneratedPlaylists(context.Background(), listener.ID)
	require.NoError(t, err)
	_, err = pu.GetAutoGeneratedPlaylists(context.Background(), listener.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, playlists.upsertCalls)
	assert.Len(t, playlists.playlists, 1, "regeneration must reuse the owner's mix document")
}

func TestAutoGeneratedPlaylistsWithoutHistory(t *testing.T) {
	listener := domain.User{ID: primitive.NewObjectID(), Name: "ana"}
	playlists := newFakePlaylistRepo()

	pu := newProfileUsecaseForTest(newFakeUserRepo(listener), newFakeAudioRepo(), newFakeHistoryRepo(), playlists, &fakeAutoPlaylistRepo{})

	infos, err := pu.GetAutoGeneratedPlaylists(context.Background(), listener.ID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, domain.MixPlaylistTitle, infos[0].Title)
	assert.Zero(t, infos[0].ItemsCount)
}

func TestGetFollowersPagesProfileList(t *testing.T) {
	followers := make([]domain.User, 0, 3)
	followerIDs := make([]primitive.ObjectID, 0, 3)
	for _, name := range []string{"one", "two", "three"} {
		u := domain.User{ID: primitive.NewObjectID(), Name: name}
		followers = append(followers, u)
		followerIDs = append(followerIDs, u.ID)
	}
	owner := domain.User{ID: primitive.NewObjectID(), Name: "owner", Followers: followerIDs}

	users := newFakeUserRepo(append(followers, owner)...)
	pu := newProfileUsecaseForTest(users, newFakeAudioRepo(), newFakeHistoryRepo(), newFakePlaylistRepo(), &fakeAutoPlaylistRepo{})

	first, err := pu.GetFollowers(context.Background(), owner.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "one", first[0].Name)
	assert.Equal(t, "two", first[1].Name)

	second, err := pu.GetFollowers(context.Background(), owner.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "three", second[0].Name)

	empty, err := pu.GetFollowers(context.Background(), owner.ID, 2, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestIsFollowing(t *testing.T) {
	follower := domain.User{ID: primitive.NewObjectID()}
	profile := domain.User{ID: primitive.NewObjectID(), Followers: []primitive.ObjectID{follower.ID}}
	users := newFakeUserRepo(follower, profile)

	pu := newProfileUsecaseForTest(users, newFakeAudioRepo(), newFakeHistoryRepo(), newFakePlaylistRepo(), &fakeAutoPlaylistRepo{})

	ok, err := pu.IsFollowing(context.Background(), follower.ID, profile.ID.Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pu.IsFollowing(context.Background(), profile.ID, follower.ID.Hex())
	require.NoError(t, err)
	assert.False(t, ok)
}
