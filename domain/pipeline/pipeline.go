// Package pipeline holds the pure set operations behind the history,
// recommendation, and auto-playlist views. Every function works on
// in-memory slices so the store layer stays reduced to fetch primitives
// and the transformations stay unit-testable without a database.
package pipeline

import (
	"math/rand"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

// DayWindow returns the [start, end) local-midnight bounds of the calendar
// day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// HasSameDayEntry reports whether entries already holds a play of audio
// within the calendar day containing at.
func HasSameDayEntry(entries []domain.HistoryEntry, audio primitive.ObjectID, at time.Time) bool {
	start, end := DayWindow(at)
	for _, e := range entries {
		if e.Audio != audio {
			continue
		}
		if !e.Date.Before(start) && e.Date.Before(end) {
			return true
		}
	}
	return false
}

// Page slices entries to the window [page*size, page*size+size) of the raw
// order. Grouping happens after paging, so a day's entries may straddle two
// pages; that is the documented behavior.
func Page(entries []domain.HistoryEntry, page, size int64) []domain.HistoryEntry {
	if size <= 0 || page < 0 {
		return nil
	}
	from := page * size
	if from >= int64(len(entries)) {
		return nil
	}
	to := from + size
	if to > int64(len(entries)) {
		to = int64(len(entries))
	}
	return entries[from:to]
}

// SortByDateDesc re-sorts a copy of entries newest first. The list is
// prepend-ordered by construction, but the recently-played view re-sorts
// its head slice anyway to defend against ordering drift.
func SortByDateDesc(entries []domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// JoinedEntry is a history entry resolved against its audio document.
type JoinedEntry struct {
	Entry domain.HistoryEntry
	Audio domain.Audio
}

// JoinAudio resolves entries against audios by id. Entries whose audio is
// missing (deleted uploads) are dropped, not errors.
func JoinAudio(entries []domain.HistoryEntry, audios map[primitive.ObjectID]domain.Audio) []JoinedEntry {
	joined := make([]JoinedEntry, 0, len(entries))
	for _, e := range entries {
		audio, ok := audios[e.Audio]
		if !ok {
			continue
		}
		joined = append(joined, JoinedEntry{Entry: e, Audio: audio})
	}
	return joined
}

// GroupByDay buckets joined entries by calendar date, one bucket per
// YYYY-MM-DD, buckets sorted descending by date string.
func GroupByDay(entries []JoinedEntry) []domain.HistoryDay {
	buckets := make(map[string][]domain.HistoryDayItem)
	for _, e := range entries {
		key := e.Entry.Date.Format("2006-01-02")
		buckets[key] = append(buckets[key], domain.HistoryDayItem{
			ID:      e.Entry.ID.Hex(),
			AudioID: e.Audio.ID.Hex(),
			Title:   e.Audio.Title,
			Date:    e.Entry.Date,
		})
	}

	days := make([]domain.HistoryDay, 0, len(buckets))
	for date, items := range buckets {
		days = append(days, domain.HistoryDay{Date: date, Audios: items})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}

// DistinctAudioIDs flattens entries to their audio ids, first occurrence
// wins.
func DistinctAudioIDs(entries []domain.HistoryEntry) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(entries))
	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Audio]; ok {
			continue
		}
		seen[e.Audio] = struct{}{}
		ids = append(ids, e.Audio)
	}
	return ids
}

// SampleIDs draws up to n ids without replacement. When fewer than n
// candidates exist the whole set is returned in random order.
func SampleIDs(r *rand.Rand, ids []primitive.ObjectID, n int) []primitive.ObjectID {
	if n > len(ids) {
		n = len(ids)
	}
	out := make([]primitive.ObjectID, 0, n)
	for _, idx := range r.Perm(len(ids))[:n] {
		out = append(out, ids[idx])
	}
	return out
}

// Affinity collects the distinct categories of entries dated at or after
// since, resolved through the audio map. Missing audio references are
// skipped.
func Affinity(entries []domain.HistoryEntry, audios map[primitive.ObjectID]domain.Audio, since time.Time) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, e := range entries {
		if e.Date.Before(since) {
			continue
		}
		audio, ok := audios[e.Audio]
		if !ok {
			continue
		}
		if _, dup := seen[audio.Category]; dup {
			continue
		}
		seen[audio.Category] = struct{}{}
		categories = append(categories, audio.Category)
	}
	return categories
}

// AudioMap indexes audios by id for the join helpers.
func AudioMap(audios []domain.Audio) map[primitive.ObjectID]domain.Audio {
	m := make(map[primitive.ObjectID]domain.Audio, len(audios))
	for _, a := range audios {
		m[a.ID] = a
	}
	return m
}
