package usecase

import (
	"context"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/domain/pipeline"
)

const (
	recommendationLimit = 10
	affinityWindowDays  = 30
	mixSampleSize       = 20
	editorialSampleSize = 4
)

type profileUsecase struct {
	userRepository         domain.UserRepository
	audioRepository        domain.AudioRepository
	historyRepository      domain.HistoryRepository
	playlistRepository     domain.PlaylistRepository
	autoPlaylistRepository domain.AutoGeneratedPlaylistRepository
	contextTimeout         time.Duration
}

func NewProfileUsecase(
	userRepository domain.UserRepository,
	audioRepository domain.AudioRepository,
	historyRepository domain.HistoryRepository,
	playlistRepository domain.PlaylistRepository,
	autoPlaylistRepository domain.AutoGeneratedPlaylistRepository,
	timeout time.Duration,
) domain.ProfileUsecase {
	return &profileUsecase{
		userRepository:         userRepository,
		audioRepository:        audioRepository,
		historyRepository:      historyRepository,
		playlistRepository:     playlistRepository,
		autoPlaylistRepository: autoPlaylistRepository,
		contextTimeout:         timeout,
	}
}

// ToggleFollower keeps followers and followings symmetric: both writes
// happen inside this operation, and a failure of the second write rolls
// the first one back.
func (pu *profileUsecase) ToggleFollower(ctx context.Context, userID primitive.ObjectID, profileID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	profileOID, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return "", domain.ErrInvalidID
	}

	if _, err := pu.userRepository.GetByID(ctx, profileOID); err != nil {
		return "", err
	}

	following, err := pu.userRepository.IsFollower(ctx, profileOID, userID)
	if err != nil {
		return "", err
	}

	if following {
		if err := pu.userRepository.PullFollower(ctx, profileOID, userID); err != nil {
			return "", err
		}
		if err := pu.userRepository.PullFollowing(ctx, userID, profileOID); err != nil {
			_ = pu.userRepository.AddFollower(ctx, profileOID, userID)
			return "", err
		}
		return domain.FollowerStatusRemoved, nil
	}

	if err := pu.userRepository.AddFollower(ctx, profileOID, userID); err != nil {
		return "", err
	}
	if err := pu.userRepository.AddFollowing(ctx, userID, profileOID); err != nil {
		_ = pu.userRepository.PullFollower(ctx, profileOID, userID)
		return "", err
	}
	return domain.FollowerStatusAdded, nil
}

func (pu *profileUsecase) GetUploads(ctx context.Context, user domain.User, page, pageSize int64) ([]domain.AudioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	audios, err := pu.audioRepository.GetByOwner(ctx, user.ID, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.AudioCard, 0, len(audios))
	for i := range audios {
		card := audios[i].Card(user.Name)
		date := audios[i].CreatedAt
		card.Date = &date
		cards = append(cards, card)
	}
	return cards, nil
}

func (pu *profileUsecase) GetPublicUploads(ctx context.Context, profileID string, page, pageSize int64) ([]domain.AudioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	owner, oid, err := pu.profileByHex(ctx, profileID)
	if err != nil {
		return nil, err
	}

	audios, err := pu.audioRepository.GetByOwner(ctx, oid, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.AudioCard, 0, len(audios))
	for i := range audios {
		card := audios[i].Card(owner.Name)
		date := audios[i].CreatedAt
		card.Date = &date
		cards = append(cards, card)
	}
	return cards, nil
}

func (pu *profileUsecase) GetPublicProfile(ctx context.Context, profileID string) (domain.PublicProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	user, _, err := pu.profileByHex(ctx, profileID)
	if err != nil {
		return domain.PublicProfile{}, err
	}
	return publicProfile(user), nil
}

func (pu *profileUsecase) GetPublicPlaylists(ctx context.Context, profileID string, page, pageSize int64) ([]domain.PlaylistInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	_, oid, err := pu.profileByHex(ctx, profileID)
	if err != nil {
		return nil, err
	}

	playlists, err := pu.playlistRepository.GetPublicByOwner(ctx, oid, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		infos = append(infos, playlists[i].Info())
	}
	return infos, nil
}

// GetRecommendations ranks the candidate pool by like count and biases it
// to the caller's recent listening categories. Anonymous callers and users
// without recent history get the global ranking.
func (pu *profileUsecase) GetRecommendations(ctx context.Context, user *domain.User) ([]domain.AudioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	var categories []string
	if user != nil {
		var err error
		categories, err = pu.affinity(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	audios, err := pu.audioRepository.GetTopLiked(ctx, categories, recommendationLimit)
	if err != nil {
		return nil, err
	}

	return pu.shapeWithOwners(ctx, audios, nil)
}

// GetAutoGeneratedPlaylists regenerates the user's mix from a random
// sample of listened audio, then returns up to four sampled editorial
// playlists with the mix appended last.
func (pu *profileUsecase) GetAutoGeneratedPlaylists(ctx context.Context, userID primitive.ObjectID) ([]domain.PlaylistInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	history, err := pu.historyRepository.GetByOwner(ctx, userID)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	sampled := pipeline.SampleIDs(r, pipeline.DistinctAudioIDs(history.All), mixSampleSize)

	mix, err := pu.playlistRepository.UpsertMix(ctx, userID, domain.MixPlaylistTitle, sampled)
	if err != nil {
		return nil, err
	}

	categories, err := pu.affinityOf(ctx, history)
	if err != nil {
		return nil, err
	}

	editorial, err := pu.autoPlaylistRepository.Sample(ctx, categories, editorialSampleSize)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.PlaylistInfo, 0, len(editorial)+1)
	for _, p := range editorial {
		infos = append(infos, domain.PlaylistInfo{
			ID:         p.ID.Hex(),
			Title:      p.Title,
			ItemsCount: len(p.Items),
		})
	}
	info := mix.Info()
	info.Visibility = ""
	return append(infos, info), nil
}

func (pu *profileUsecase) GetFollowers(ctx context.Context, userID primitive.ObjectID, page, pageSize int64) ([]domain.PublicProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	user, err := pu.userRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pu.profileList(ctx, user.Followers, page, pageSize)
}

func (pu *profileUsecase) GetPublicFollowers(ctx context.Context, profileID string, page, pageSize int64) ([]domain.PublicProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	user, _, err := pu.profileByHex(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return pu.profileList(ctx, user.Followers, page, pageSize)
}

func (pu *profileUsecase) GetFollowings(ctx context.Context, userID primitive.ObjectID, page, pageSize int64) ([]domain.PublicProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	user, err := pu.userRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return pu.profileList(ctx, user.Followings, page, pageSize)
}

func (pu *profileUsecase) IsFollowing(ctx context.Context, userID primitive.ObjectID, profileID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.contextTimeout)
	defer cancel()

	profileOID, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return false, domain.ErrInvalidID
	}
	return pu.userRepository.IsFollower(ctx, profileOID, userID)
}

// affinity resolves the distinct categories the user listened to within
// the last 30 days. A user with no history has no affinity.
func (pu *profileUsecase) affinity(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	history, err := pu.historyRepository.GetByOwner(ctx, userID)
	if err == domain.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pu.affinityOf(ctx, history)
}

func (pu *profileUsecase) affinityOf(ctx context.Context, history domain.History) ([]string, error) {
	if len(history.All) == 0 {
		return nil, nil
	}

	audios, err := pu.audioRepository.GetManyByIDs(ctx, pipeline.DistinctAudioIDs(history.All))
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -affinityWindowDays)
	return pipeline.Affinity(history.All, pipeline.AudioMap(audios), since), nil
}

func (pu *profileUsecase) profileByHex(ctx context.Context, profileID string) (domain.User, primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return domain.User{}, primitive.NilObjectID, domain.ErrInvalidID
	}
	user, err := pu.userRepository.GetByID(ctx, oid)
	if err != nil {
		return domain.User{}, primitive.NilObjectID, err
	}
	return user, oid, nil
}

func (pu *profileUsecase) profileList(ctx context.Context, ids []primitive.ObjectID, page, pageSize int64) ([]domain.PublicProfile, error) {
	if pageSize <= 0 || page < 0 {
		return []domain.PublicProfile{}, nil
	}
	from := page * pageSize
	if from >= int64(len(ids)) {
		return []domain.PublicProfile{}, nil
	}
	to := from + pageSize
	if to > int64(len(ids)) {
		to = int64(len(ids))
	}

	users, err := pu.userRepository.GetManyByIDs(ctx, ids[from:to])
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, publicProfile(users[i]))
	}
	return profiles, nil
}

func (pu *profileUsecase) shapeWithOwners(ctx context.Context, audios []domain.Audio, date func(domain.Audio) *time.Time) ([]domain.AudioCard, error) {
	ownerIDs := make([]primitive.ObjectID, 0, len(audios))
	seen := make(map[primitive.ObjectID]struct{}, len(audios))
	for _, a := range audios {
		if _, ok := seen[a.Owner]; ok {
			continue
		}
		seen[a.Owner] = struct{}{}
		ownerIDs = append(ownerIDs, a.Owner)
	}

	owners, err := pu.userRepository.GetManyByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(owners))
	for _, o := range owners {
		names[o.ID] = o.Name
	}

	cards := make([]domain.AudioCard, 0, len(audios))
	for i := range audios {
		card := audios[i].Card(names[audios[i].Owner])
		if date != nil {
			card.Date = date(audios[i])
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func publicProfile(user domain.User) domain.PublicProfile {
	p := domain.PublicProfile{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Followers: len(user.Followers),
	}
	if user.Avatar != nil {
		p.Avatar = user.Avatar.URL
	}
	return p
}
