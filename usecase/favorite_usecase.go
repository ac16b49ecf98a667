package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

type favoriteUsecase struct {
	favoriteRepository domain.FavoriteRepository
	audioRepository    domain.AudioRepository
	userRepository     domain.UserRepository
	contextTimeout     time.Duration
}

func NewFavoriteUsecase(
	favoriteRepository domain.FavoriteRepository,
	audioRepository domain.AudioRepository,
	userRepository domain.UserRepository,
	timeout time.Duration,
) domain.FavoriteUsecase {
	return &favoriteUsecase{
		favoriteRepository: favoriteRepository,
		audioRepository:    audioRepository,
		userRepository:     userRepository,
		contextTimeout:     timeout,
	}
}

// Toggle flips the favorite pair and keeps audio.likes in sync with the
// owner's favorite set.
func (fu *favoriteUsecase) Toggle(ctx context.Context, owner primitive.ObjectID, audioID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.contextTimeout)
	defer cancel()

	audioOID, err := primitive.ObjectIDFromHex(audioID)
	if err != nil {
		return "", domain.ErrInvalidID
	}

	if _, err := fu.audioRepository.GetByID(ctx, audioOID); err != nil {
		return "", err
	}

	exists, err := fu.favoriteRepository.Exists(ctx, owner, audioOID)
	if err != nil {
		return "", err
	}

	if exists {
		if err := fu.favoriteRepository.PullItem(ctx, owner, audioOID); err != nil {
			return "", err
		}
		if err := fu.audioRepository.PullLike(ctx, audioOID, owner); err != nil {
			return "", err
		}
		return domain.FavoriteStatusRemoved, nil
	}

	if err := fu.favoriteRepository.AddItem(ctx, owner, audioOID); err != nil {
		return "", err
	}
	if err := fu.audioRepository.AddLike(ctx, audioOID, owner); err != nil {
		return "", err
	}
	return domain.FavoriteStatusAdded, nil
}

func (fu *favoriteUsecase) GetFavorites(ctx context.Context, owner primitive.ObjectID) ([]domain.AudioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.contextTimeout)
	defer cancel()

	favorite, err := fu.favoriteRepository.GetByOwner(ctx, owner)
	if err == domain.ErrNotFound {
		return []domain.AudioCard{}, nil
	}
	if err != nil {
		return nil, err
	}

	audios, err := fu.audioRepository.GetManyByIDs(ctx, favorite.Items)
	if err != nil {
		return nil, err
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
	owners, err := fu.userRepository.GetManyByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(owners))
	for _, o := range owners {
		names[o.ID] = o.Name
	}

	// Shape in the order of the favorite set; deleted audio drops out.
	cards := make([]domain.AudioCard, 0, len(favorite.Items))
	for _, id := range favorite.Items {
		audio, ok := byID[id]
		if !ok {
			continue
		}
		cards = append(cards, audio.Card(names[audio.Owner]))
	}
	return cards, nil
}

func (fu *favoriteUsecase) IsFavorite(ctx context.Context, owner primitive.ObjectID, audioID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, fu.contextTimeout)
	defer cancel()

	audioOID, err := primitive.ObjectIDFromHex(audioID)
	if err != nil {
		return false, domain.ErrInvalidID
	}
	return fu.favoriteRepository.Exists(ctx, owner, audioOID)
}
