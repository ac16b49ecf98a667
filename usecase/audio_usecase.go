package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/internal/storage"
)

const latestUploadsLimit = 10

type audioUsecase struct {
	audioRepository domain.AudioRepository
	userRepository  domain.UserRepository
	media           storage.Provider
	contextTimeout  time.Duration
}

func NewAudioUsecase(
	audioRepository domain.AudioRepository,
	userRepository domain.UserRepository,
	media storage.Provider,
	timeout time.Duration,
) domain.AudioUsecase {
	return &audioUsecase{
		audioRepository: audioRepository,
		userRepository:  userRepository,
		media:           media,
		contextTimeout:  timeout,
	}
}

// sniffUpload opens the part, checks its real type against accept, and
// leaves the reader rewound for the subsequent upload.
func sniffUpload(fh *multipart.FileHeader, accept func([]byte) bool) (multipart.File, types.Type, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, types.Unknown, err
	}

	head := make([]byte, 261)
	n, _ := f.Read(head)
	head = head[:n]

	if !accept(head) {
		f.Close()
		return nil, types.Unknown, domain.ErrInvalidID
	}

	kind, _ := filetype.Match(head)
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		return nil, types.Unknown, err
	}
	return f, kind, nil
}

func isAudioUpload(head []byte) bool {
	// Some encoders ship audio in mp4/m4a containers that sniff as video.
	return filetype.IsAudio(head) || filetype.IsVideo(head)
}

func (au *audioUsecase) Create(ctx context.Context, owner domain.User, title, about, category string, file, poster *multipart.FileHeader) (domain.AudioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	if file == nil {
		return domain.AudioCard{}, fmt.Errorf("audio file is missing: %w", domain.ErrInvalidID)
	}

	f, kind, err := sniffUpload(file, isAudioUpload)
	if err != nil {
		return domain.AudioCard{}, fmt.Errorf("audio file rejected: %w", err)
	}
	defer f.Close()

	// Fall back to embedded tags when the client sent no title.
	if strings.TrimSpace(title) == "" {
		if meta, err := tag.ReadFrom(f); err == nil && meta.Title() != "" {
			title = meta.Title()
		}
		if _, err := f.Seek(0, 0); err != nil {
			return domain.AudioCard{}, err
		}
	}
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}

	fileRef, err := au.media.Put(ctx, "audio", filepath.Ext(file.Filename), kind.MIME.Value, f)
	if err != nil {
		return domain.AudioCard{}, err
	}

	audio := domain.Audio{
		Title:    title,
		About:    about,
		Owner:    owner.ID,
		File:     fileRef,
		Category: domain.NormalizeCategory(category),
	}

	if poster != nil {
		posterRef, err := au.uploadPoster(ctx, poster)
		if err != nil {
			return domain.AudioCard{}, err
		}
		audio.Poster = posterRef
	}

	if err := au.audioRepository.Create(ctx, &audio); err != nil {
		return domain.AudioCard{}, err
	}
	return audio.Card(owner.Name), nil
}

func (au *audioUsecase) Update(ctx context.Context, owner domain.User, audioID string, update domain.AudioUpdate, poster *multipart.FileHeader) (domain.AudioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	oid, err := primitiveIDFromHex(audioID)
	if err != nil {
		return domain.AudioCard{}, err
	}

	update.Category = domain.NormalizeCategory(update.Category)
	audio, err := au.audioRepository.UpdateByOwner(ctx, oid, owner.ID, update)
	if err != nil {
		return domain.AudioCard{}, err
	}

	if poster != nil {
		if audio.Poster != nil && audio.Poster.PublicID != "" {
			_ = au.media.Delete(ctx, audio.Poster.PublicID)
		}
		posterRef, err := au.uploadPoster(ctx, poster)
		if err != nil {
			return domain.AudioCard{}, err
		}
		if err := au.audioRepository.SetPoster(ctx, audio.ID, posterRef); err != nil {
			return domain.AudioCard{}, err
		}
		audio.Poster = posterRef
	}

	return audio.Card(owner.Name), nil
}

func (au *audioUsecase) GetLatest(ctx context.Context) ([]domain.AudioCard, error) {
	ctx, cancel := context.WithTimeout(ctx, au.contextTimeout)
	defer cancel()

	audios, err := au.audioRepository.GetLatest(ctx, latestUploadsLimit)
	if err != nil {
		return nil, err
	}

	ownerIDs := ownerIDSet(audios)
	owners, err := au.userRepository.GetManyByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(owners))
	for _, o := range owners {
		names[o.ID.Hex()] = o.Name
	}

	cards := make([]domain.AudioCard, 0, len(audios))
	for i := range audios {
		cards = append(cards, audios[i].Card(names[audios[i].Owner.Hex()]))
	}
	return cards, nil
}

func (au *audioUsecase) uploadPoster(ctx context.Context, poster *multipart.FileHeader) (*domain.MediaRef, error) {
	p, kind, err := sniffUpload(poster, filetype.IsImage)
	if err != nil {
		return nil, fmt.Errorf("poster rejected: %w", err)
	}
	defer p.Close()

	ref, err := au.media.Put(ctx, "posters", filepath.Ext(poster.Filename), kind.MIME.Value, p)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
