package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

type playlistUsecase struct {
	playlistRepository domain.PlaylistRepository
	audioRepository    domain.AudioRepository
	userRepository     domain.UserRepository
	contextTimeout     time.Duration
}

func NewPlaylistUsecase(
	playlistRepository domain.PlaylistRepository,
	audioRepository domain.AudioRepository,
	userRepository domain.UserRepository,
	timeout time.Duration,
) domain.PlaylistUsecase {
	return &playlistUsecase{
		playlistRepository: playlistRepository,
		audioRepository:    audioRepository,
		userRepository:     userRepository,
		contextTimeout:     timeout,
	}
}

func (plu *playlistUsecase) Create(ctx context.Context, owner primitive.ObjectID, req domain.CreatePlaylistRequest) (domain.PlaylistInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, plu.contextTimeout)
	defer cancel()

	playlist := domain.Playlist{
		Title:      req.Title,
		Owner:      owner,
		Visibility: req.Visibility,
	}

	if req.ResID != "" {
		audioID, err := primitive.ObjectIDFromHex(req.ResID)
		if err != nil {
			return domain.PlaylistInfo{}, domain.ErrInvalidID
		}
		if _, err := plu.audioRepository.GetByID(ctx, audioID); err != nil {
			return domain.PlaylistInfo{}, err
		}
		playlist.Items = []primitive.ObjectID{audioID}
	}

	if err := plu.playlistRepository.Create(ctx, &playlist); err != nil {
		return domain.PlaylistInfo{}, err
	}
	return playlist.Info(), nil
}

func (plu *playlistUsecase) Update(ctx context.Context, owner primitive.ObjectID, req domain.UpdatePlaylistRequest) (domain.PlaylistInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, plu.contextTimeout)
	defer cancel()

	playlistID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return domain.PlaylistInfo{}, domain.ErrInvalidID
	}

	playlist, err := plu.playlistRepository.UpdateInfo(ctx, playlistID, owner, req.Title, req.Visibility)
	if err != nil {
		return domain.PlaylistInfo{}, err
	}

	if req.Item != "" {
		audioID, err := primitive.ObjectIDFromHex(req.Item)
		if err != nil {
			return domain.PlaylistInfo{}, domain.ErrInvalidID
		}
		if _, err := plu.audioRepository.GetByID(ctx, audioID); err != nil {
			return domain.PlaylistInfo{}, err
		}
		if err := plu.playlistRepository.AddItem(ctx, playlist.ID, audioID); err != nil {
			return domain.PlaylistInfo{}, err
		}
	}

	return playlist.Info(), nil
}

func (plu *playlistUsecase) Remove(ctx context.Context, owner primitive.ObjectID, playlistID, resID string, all bool) error {
	ctx, cancel := context.WithTimeout(ctx, plu.contextTimeout)
	defer cancel()

	playlistOID, err := primitive.ObjectIDFromHex(playlistID)
	if err != nil {
		return domain.ErrInvalidID
	}

	if all {
		return plu.playlistRepository.DeleteByIDAndOwner(ctx, playlistOID, owner)
	}

	if resID != "" {
		audioOID, err := primitive.ObjectIDFromHex(resID)
		if err != nil {
			return domain.ErrInvalidID
		}
		return plu.playlistRepository.PullItem(ctx, playlistOID, owner, audioOID)
	}
	return nil
}

func (plu *playlistUsecase) GetByProfile(ctx context.Context, owner primitive.ObjectID, page, pageSize int64) ([]domain.PlaylistInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, plu.contextTimeout)
	defer cancel()

	playlists, err := plu.playlistRepository.GetByOwner(ctx, owner, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		infos = append(infos, playlists[i].Info())
	}
	return infos, nil
}

func (plu *playlistUsecase) GetAudios(ctx context.Context, owner primitive.ObjectID, playlistID string) (domain.PlaylistAudios, error) {
	ctx, cancel := context.WithTimeout(ctx, plu.contextTimeout)
	defer cancel()

	playlistOID, err := primitive.ObjectIDFromHex(playlistID)
	if err != nil {
		return domain.PlaylistAudios{}, domain.ErrInvalidID
	}

	playlist, err := plu.playlistRepository.GetByIDAndOwner(ctx, playlistOID, owner)
	if err != nil {
		return domain.PlaylistAudios{}, err
	}

	audios, err := plu.audioRepository.GetManyByIDs(ctx, playlist.Items)
	if err != nil {
		return domain.PlaylistAudios{}, err
	}
	byID := make(map[primitive.ObjectID]domain.Audio, len(audios))
	for _, a := range audios {
		byID[a.ID] = a
	}

	ownerIDs := make([]primitive.ObjectID, 0, len(audios))
	seen := make(map[primitive.ObjectID]struct{}, len(audios))
	for _, a := range audios {
		if _, ok := seen[a.Owner]; ok {
			continue
		}
		seen[a.Owner] = struct{}{}
		ownerIDs = append(ownerIDs, a.Owner)
	}
	owners, err := plu.userRepository.GetManyByIDs(ctx, ownerIDs)
	if err != nil {
		return domain.PlaylistAudios{}, err
	}
	names := make(map[primitive.ObjectID]string, len(owners))
	for _, o := range owners {
		names[o.ID] = o.Name
	}

	// Keep the playlist's item order; deleted audio drops out.
	cards := make([]domain.AudioCard, 0, len(playlist.Items))
	for _, id := range playlist.Items {
		audio, ok := byID[id]
		if !ok {
			continue
		}
		cards = append(cards, audio.Card(names[audio.Owner]))
	}

	return domain.PlaylistAudios{
		ID:     playlist.ID.Hex(),
		Title:  playlist.Title,
		Audios: cards,
	}, nil
}
