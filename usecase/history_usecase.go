package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/domain/pipeline"
)

const recentlyPlayedLimit = 5

type historyUsecase struct {
	historyRepository domain.HistoryRepository
	audioRepository   domain.AudioRepository
	userRepository    domain.UserRepository
	contextTimeout    time.Duration
}

func NewHistoryUsecase(
	historyRepository domain.HistoryRepository,
	audioRepository domain.AudioRepository,
	userRepository domain.UserRepository,
	timeout time.Duration,
) domain.HistoryUsecase {
	return &historyUsecase{
		historyRepository: historyRepository,
		audioRepository:   audioRepository,
		userRepository:    userRepository,
		contextTimeout:    timeout,
	}
}

// RecordPlay appends or updates a play event. A replay of the same audio
// within the same calendar day updates the existing entry instead of
// growing the array. The audio reference is deliberately not validated
// here; broken references fall out of the join stages later.
func (hu *historyUsecase) RecordPlay(ctx context.Context, userID primitive.ObjectID, req domain.UpdateHistoryRequest) error {
	ctx, cancel := context.WithTimeout(ctx, hu.contextTimeout)
	defer cancel()

	audioID, err := primitive.ObjectIDFromHex(req.Audio)
	if err != nil {
		return domain.ErrInvalidID
	}

	entry := domain.HistoryEntry{
		ID:       primitive.NewObjectID(),
		Audio:    audioID,
		Progress: req.Progress,
		Date:     req.Date,
	}

	history, err := hu.historyRepository.GetByOwner(ctx, userID)
	if err == domain.ErrNotFound {
		return hu.historyRepository.Create(ctx, &domain.History{
			Owner: userID,
			Last:  &entry,
			All:   []domain.HistoryEntry{entry},
		})
	}
	if err != nil {
		return err
	}

	if pipeline.HasSameDayEntry(history.All, audioID, req.Date) {
		if err := hu.historyRepository.UpdateEntry(ctx, userID, audioID, req.Progress, req.Date); err != nil {
			return err
		}
		// Last mirrors the most recent event on both branches.
		return hu.historyRepository.SetLast(ctx, userID, &entry)
	}

	return hu.historyRepository.PrependEntry(ctx, history.ID, entry)
}

func (hu *historyUsecase) Remove(ctx context.Context, userID primitive.ObjectID, all bool, entryIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, hu.contextTimeout)
	defer cancel()

	if all {
		return hu.historyRepository.DeleteByOwner(ctx, userID)
	}

	ids := make([]primitive.ObjectID, 0, len(entryIDs))
	for _, raw := range entryIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return domain.ErrInvalidID
		}
		ids = append(ids, id)
	}

	if err := hu.historyRepository.PullEntries(ctx, userID, ids); err != nil {
		return err
	}

	// Recompute last from the surviving head so it keeps meaning "most
	// recent play" even when that entry was just removed.
	history, err := hu.historyRepository.GetByOwner(ctx, userID)
	if err == domain.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var last *domain.HistoryEntry
	if len(history.All) > 0 {
		last = &history.All[0]
	}
	return hu.historyRepository.SetLast(ctx, userID, last)
}

// GetHistories returns the requested page of play events grouped by
// calendar day. Paging slices the raw entry order before grouping, so one
// day's entries can straddle two pages.
func (hu *historyUsecase) GetHistories(ctx context.Context, userID primitive.ObjectID, page, pageSize int64) ([]domain.HistoryDay, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.contextTimeout)
	defer cancel()

	history, err := hu.historyRepository.GetByOwner(ctx, userID)
	if err == domain.ErrNotFound {
		return []domain.HistoryDay{}, nil
	}
	if err != nil {
		return nil, err
	}

	window := pipeline.Page(history.All, page, pageSize)

	audios, err := hu.audioRepository.GetManyByIDs(ctx, pipeline.DistinctAudioIDs(window))
	if err != nil {
		return nil, err
	}

	joined := pipeline.JoinAudio(window, pipeline.AudioMap(audios))
	return pipeline.GroupByDay(joined), nil
}

// GetRecentlyPlayed shapes the five most recent plays into feed cards.
// Entries whose audio has been deleted are dropped, so the result may be
// shorter than five.
func (hu *historyUsecase) GetRecentlyPlayed(ctx context.Context, userID primitive.ObjectID) ([]domain.AudioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, hu.contextTimeout)
	defer cancel()

	history, err := hu.historyRepository.GetByOwner(ctx, userID)
	if err == domain.ErrNotFound {
		return []domain.AudioCard{}, nil
	}
	if err != nil {
		return nil, err
	}

	head := history.All
	if len(head) > recentlyPlayedLimit {
		head = head[:recentlyPlayedLimit]
	}
	head = pipeline.SortByDateDesc(head)

	audios, err := hu.audioRepository.GetManyByIDs(ctx, pipeline.DistinctAudioIDs(head))
	if err != nil {
		return nil, err
	}
	audioMap := pipeline.AudioMap(audios)

	ownerNames, err := hu.ownerNames(ctx, audios)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.AudioCard, 0, len(head))
	for _, joined := range pipeline.JoinAudio(head, audioMap) {
		audio := joined.Audio
		card := audio.Card(ownerNames[audio.Owner])
		date := joined.Entry.Date
		progress := joined.Entry.Progress
		card.Date = &date
		card.Progress = &progress
		cards = append(cards, card)
	}
	return cards, nil
}

func (hu *historyUsecase) ownerNames(ctx context.Context, audios []domain.Audio) (map[primitive.ObjectID]string, error) {
	ownerIDs := make([]primitive.ObjectID, 0, len(audios))
	seen := make(map[primitive.ObjectID]struct{}, len(audios))
	for _, a := range audios {
		if _, ok := seen[a.Owner]; ok {
			continue
		}
		seen[a.Owner] = struct{}{}
		ownerIDs = append(ownerIDs, a.Owner)
	}

	owners, err := hu.userRepository.GetManyByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(owners))
	for _, o := range owners {
		names[o.ID] = o.Name
	}
	return names, nil
}
