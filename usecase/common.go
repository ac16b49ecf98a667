package usecase

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

func primitiveIDFromHex(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return id, nil
}

func ownerIDSet(audios []domain.Audio) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(audios))
	ids := make([]primitive.ObjectID, 0, len(audios))
	for _, a := range audios {
		if _, ok := seen[a.Owner]; ok {
			continue
		}
		seen[a.Owner] = struct{}{}
		ids = append(ids, a.Owner)
	}
	return ids
}
