package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

// In-memory repository fakes. They keep only the behavior the usecases
// rely on; the fail* switches simulate a write error mid-operation.

var errWriteFailed = errors.New("simulated write failure")

type fakeHistoryRepo struct {
	byOwner map[primitive.ObjectID]*domain.History
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{byOwner: make(map[primitive.ObjectID]*domain.History)}
}

func (f *fakeHistoryRepo) GetByOwner(_ context.Context, owner primitive.ObjectID) (domain.History, error) {
	h, ok := f.byOwner[owner]
	if !ok {
		return domain.History{}, domain.ErrNotFound
	}
	return *h, nil
}

func (f *fakeHistoryRepo) Create(_ context.Context, history *domain.History) error {
	if history.ID.IsZero() {
		history.ID = primitive.NewObjectID()
	}
	cp := *history
	f.byOwner[history.Owner] = &cp
	return nil
}

func (f *fakeHistoryRepo) UpdateEntry(_ context.Context, owner, audio primitive.ObjectID, progress float64, date time.Time) error {
	h, ok := f.byOwner[owner]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range h.All {
		if h.All[i].Audio == audio {
			h.All[i].Progress = progress
			h.All[i].Date = date
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeHistoryRepo) PrependEntry(_ context.Context, id primitive.ObjectID, entry domain.HistoryEntry) error {
	for _, h := range f.byOwner {
		if h.ID == id {
			h.All = append([]domain.HistoryEntry{entry}, h.All...)
			h.Last = &entry
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeHistoryRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) error {
	delete(f.byOwner, owner)
	return nil
}

func (f *fakeHistoryRepo) PullEntries(_ context.Context, owner primitive.ObjectID, entryIDs []primitive.ObjectID) error {
	h, ok := f.byOwner[owner]
	if !ok {
		return domain.ErrNotFound
	}
	drop := make(map[primitive.ObjectID]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		drop[id] = struct{}{}
	}
	kept := make([]domain.HistoryEntry, 0, len(h.All))
	for _, e := range h.All {
		if _, ok := drop[e.ID]; !ok {
			kept = append(kept, e)
		}
	}
	h.All = kept
	return nil
}

func (f *fakeHistoryRepo) SetLast(_ context.Context, owner primitive.ObjectID, last *domain.HistoryEntry) error {
	h, ok := f.byOwner[owner]
	if !ok {
		return domain.ErrNotFound
	}
	h.Last = last
	return nil
}

type fakeAudioRepo struct {
	audios map[primitive.ObjectID]domain.Audio

	topLiked      []domain.Audio
	topCategories []string
	topCalls      int
}

func newFakeAudioRepo(audios ...domain.Audio) *fakeAudioRepo {
	f := &fakeAudioRepo{audios: make(map[primitive.ObjectID]domain.Audio)}
	for _, a := range audios {
		f.audios[a.ID] = a
	}
	return f
}

func (f *fakeAudioRepo) Create(_ context.Context, audio *domain.Audio) error {
	if audio.ID.IsZero() {
		audio.ID = primitive.NewObjectID()
	}
	f.audios[audio.ID] = *audio
	return nil
}

func (f *fakeAudioRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.Audio, error) {
	a, ok := f.audios[id]
	if !ok {
		return domain.Audio{}, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeAudioRepo) GetManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Audio, error) {
	out := make([]domain.Audio, 0, len(ids))
	for _, id := range ids {
		if a, ok := f.audios[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAudioRepo) UpdateByOwner(_ context.Context, id, owner primitive.ObjectID, update domain.AudioUpdate) (domain.Audio, error) {
	a, ok := f.audios[id]
	if !ok || a.Owner != owner {
		return domain.Audio{}, domain.ErrNotFound
	}
	a.Title = update.Title
	a.About = update.About
	a.Category = update.Category
	f.audios[id] = a
	return a, nil
}

func (f *fakeAudioRepo) SetPoster(_ context.Context, id primitive.ObjectID, poster *domain.MediaRef) error {
	a, ok := f.audios[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Poster = poster
	f.audios[id] = a
	return nil
}

func (f *fakeAudioRepo) GetByOwner(_ context.Context, owner primitive.ObjectID, skip, limit int64) ([]domain.Audio, error) {
	out := make([]domain.Audio, 0)
	for _, a := range f.audios {
		if a.Owner == owner {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAudioRepo) GetLatest(_ context.Context, limit int64) ([]domain.Audio, error) {
	return f.topLiked, nil
}

func (f *fakeAudioRepo) GetTopLiked(_ context.Context, categories []string, limit int64) ([]domain.Audio, error) {
	f.topCalls++
	f.topCategories = categories
	return f.topLiked, nil
}

func (f *fakeAudioRepo) AddLike(_ context.Context, id, userID primitive.ObjectID) error {
	a, ok := f.audios[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Likes = append(a.Likes, userID)
	f.audios[id] = a
	return nil
}

func (f *fakeAudioRepo) PullLike(_ context.Context, id, userID primitive.ObjectID) error {
	a, ok := f.audios[id]
	if !ok {
		return domain.ErrNotFound
	}
	kept := make([]primitive.ObjectID, 0, len(a.Likes))
	for _, l := range a.Likes {
		if l != userID {
			kept = append(kept, l)
		}
	}
	a.Likes = kept
	f.audios[id] = a
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User

	failAddFollowing  bool
	failPullFollowing bool
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByIDAndToken(_ context.Context, id primitive.ObjectID, token string) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	for _, t := range u.Tokens {
		if t == token {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) GetManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, name string, avatar *domain.MediaRef) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Name = name
	if avatar != nil {
		u.Avatar = avatar
	}
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) SetVerified(_ context.Context, id primitive.ObjectID) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Verified = true
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) SetPassword(_ context.Context, id primitive.ObjectID, hashed string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Password = hashed
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) AddToken(_ context.Context, id primitive.ObjectID, token string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Tokens = append(u.Tokens, token)
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) PullToken(_ context.Context, id primitive.ObjectID, token string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	kept := make([]string, 0, len(u.Tokens))
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) ClearTokens(_ context.Context, id primitive.ObjectID) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Tokens = nil
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) AddFollower(_ context.Context, profileID, followerID primitive.ObjectID) error {
	u, ok := f.users[profileID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Followers = append(u.Followers, followerID)
	f.users[profileID] = u
	return nil
}

func (f *fakeUserRepo) PullFollower(_ context.Context, profileID, followerID primitive.ObjectID) error {
	u, ok := f.users[profileID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Followers = pullID(u.Followers, followerID)
	f.users[profileID] = u
	return nil
}

func (f *fakeUserRepo) AddFollowing(_ context.Context, userID, profileID primitive.ObjectID) error {
	if f.failAddFollowing {
		return errWriteFailed
	}
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Followings = append(u.Followings, profileID)
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) PullFollowing(_ context.Context, userID, profileID primitive.ObjectID) error {
	if f.failPullFollowing {
		return errWriteFailed
	}
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Followings = pullID(u.Followings, profileID)
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) IsFollower(_ context.Context, profileID, followerID primitive.ObjectID) (bool, error) {
	u, ok := f.users[profileID]
	if !ok {
		return false, domain.ErrNotFound
	}
	for _, id := range u.Followers {
		if id == followerID {
			return true, nil
		}
	}
	return false, nil
}

func pullID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	kept := make([]primitive.ObjectID, 0, len(ids))
	for _, cur := range ids {
		if cur != id {
			kept = append(kept, cur)
		}
	}
	return kept
}

type fakePlaylistRepo struct {
	playlists map[primitive.ObjectID]domain.Playlist

	upsertCalls int
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: make(map[primitive.ObjectID]domain.Playlist)}
}

func (f *fakePlaylistRepo) Create(_ context.Context, playlist *domain.Playlist) error {
	if playlist.ID.IsZero() {
		playlist.ID = primitive.NewObjectID()
	}
	f.playlists[playlist.ID] = *playlist
	return nil
}

func (f *fakePlaylistRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return domain.Playlist{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePlaylistRepo) GetByIDAndOwner(_ context.Context, id, owner primitive.ObjectID) (domain.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok || p.Owner != owner {
		return domain.Playlist{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePlaylistRepo) UpdateInfo(_ context.Context, id, owner primitive.ObjectID, title, visibility string) (domain.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok || p.Owner != owner {
		return domain.Playlist{}, domain.ErrNotFound
	}
	p.Title = title
	p.Visibility = visibility
	f.playlists[id] = p
	return p, nil
}

func (f *fakePlaylistRepo) AddItem(_ context.Context, id, item primitive.ObjectID) error {
	p, ok := f.playlists[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Items = append(p.Items, item)
	f.playlists[id] = p
	return nil
}

func (f *fakePlaylistRepo) PullItem(_ context.Context, id, owner, item primitive.ObjectID) error {
	p, ok := f.playlists[id]
	if !ok || p.Owner != owner {
		return domain.ErrNotFound
	}
	p.Items = pullID(p.Items, item)
	f.playlists[id] = p
	return nil
}

func (f *fakePlaylistRepo) DeleteByIDAndOwner(_ context.Context, id, owner primitive.ObjectID) error {
	p, ok := f.playlists[id]
	if !ok || p.Owner != owner {
		return domain.ErrNotFound
	}
	delete(f.playlists, id)
	return nil
}

func (f *fakePlaylistRepo) GetByOwner(_ context.Context, owner primitive.ObjectID, skip, limit int64) ([]domain.Playlist, error) {
	out := make([]domain.Playlist, 0)
	for _, p := range f.playlists {
		if p.Owner == owner && p.Visibility != domain.PlaylistVisibilityAuto {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlaylistRepo) GetPublicByOwner(_ context.Context, owner primitive.ObjectID, skip, limit int64) ([]domain.Playlist, error) {
	out := make([]domain.Playlist, 0)
	for _, p := range f.playlists {
		if p.Owner == owner && p.Visibility == domain.PlaylistVisibilityPublic {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlaylistRepo) UpsertMix(_ context.Context, owner primitive.ObjectID, title string, items []primitive.ObjectID) (domain.Playlist, error) {
	f.upsertCalls++
	for id, p := range f.playlists {
		if p.Owner == owner && p.Title == title && p.Visibility == domain.PlaylistVisibilityAuto {
			p.Items = items
			f.playlists[id] = p
			return p, nil
		}
	}
	p := domain.Playlist{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Owner:      owner,
		Items:      items,
		Visibility: domain.PlaylistVisibilityAuto,
	}
	f.playlists[p.ID] = p
	return p, nil
}

type fakeAutoPlaylistRepo struct {
	sampled      []domain.AutoGeneratedPlaylist
	sampleTitles []string
}

func (f *fakeAutoPlaylistRepo) Sample(_ context.Context, titles []string, n int64) ([]domain.AutoGeneratedPlaylist, error) {
	f.sampleTitles = titles
	if int64(len(f.sampled)) > n {
		return f.sampled[:n], nil
	}
	return f.sampled, nil
}

type fakeFavoriteRepo struct {
	byOwner map[primitive.ObjectID]*domain.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{byOwner: make(map[primitive.ObjectID]*domain.Favorite)}
}

func (f *fakeFavoriteRepo) GetByOwner(_ context.Context, owner primitive.ObjectID) (domain.Favorite, error) {
	fav, ok := f.byOwner[owner]
	if !ok {
		return domain.Favorite{}, domain.ErrNotFound
	}
	return *fav, nil
}

func (f *fakeFavoriteRepo) AddItem(_ context.Context, owner, item primitive.ObjectID) error {
	fav, ok := f.byOwner[owner]
	if !ok {
		fav = &domain.Favorite{ID: primitive.NewObjectID(), Owner: owner}
		f.byOwner[owner] = fav
	}
	fav.Items = append(fav.Items, item)
	return nil
}

func (f *fakeFavoriteRepo) PullItem(_ context.Context, owner, item primitive.ObjectID) error {
	fav, ok := f.byOwner[owner]
	if !ok {
		return domain.ErrNotFound
	}
	fav.Items = pullID(fav.Items, item)
	return nil
}

func (f *fakeFavoriteRepo) Exists(_ context.Context, owner, item primitive.ObjectID) (bool, error) {
	fav, ok := f.byOwner[owner]
	if !ok {
		return false, nil
	}
	for _, cur := range fav.Items {
		if cur == item {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokenRepo struct {
	byOwner map[primitive.ObjectID]domain.OwnedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byOwner: make(map[primitive.ObjectID]domain.OwnedToken)}
}

func (f *fakeTokenRepo) Replace(_ context.Context, owner primitive.ObjectID, token string) error {
	f.byOwner[owner] = domain.OwnedToken{Owner: owner, Token: token, CreatedAt: time.Now()}
	return nil
}

func (f *fakeTokenRepo) GetByOwner(_ context.Context, owner primitive.ObjectID) (domain.OwnedToken, error) {
	t, ok := f.byOwner[owner]
	if !ok {
		return domain.OwnedToken{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeTokenRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) error {
	delete(f.byOwner, owner)
	return nil
}

type fakeMailer struct {
	welcomeTokens []string
	resetLinks    []string
	successMails  int
}

func (f *fakeMailer) SendWelcome(name, email, verificationToken string) error {
	f.welcomeTokens = append(f.welcomeTokens, verificationToken)
	return nil
}

func (f *fakeMailer) SendForgetPasswordLink(name, email, resetLink string) error {
	f.resetLinks = append(f.resetLinks, resetLink)
	return nil
}

func (f *fakeMailer) SendPasswordResetSuccess(name, email string) error {
	f.successMails++
	return nil
}
