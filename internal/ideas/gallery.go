package ideas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/waveup-app/waveup-api/internal/clock"
	"github.com/waveup-app/waveup-api/internal/settings"
	"github.com/waveup-app/waveup-api/internal/store"

	log "github.com/sirupsen/logrus"
)

// Saved idea content types.
var ideaTypes = map[string]struct{}{
	"bio":     {},
	"comment": {},
	"dm":      {},
	"caption": {},
	"script":  {},
}

// ErrUnknownIdeaType signals a saved-idea type outside the closed set.
var ErrUnknownIdeaType = errors.New("unknown idea type")

// ErrIdeaNotFound signals the requested saved idea does not exist.
var ErrIdeaNotFound = errors.New("idea not found")

// SavedIdea is an idea the creator kept in their gallery.
type SavedIdea struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Type    string    `json:"type"` // bio, comment, dm, caption or script.
	SavedAt time.Time `json:"saved_at"`
	Rating  int       `json:"rating"` // 0..5 stars.
}

// Gallery stores each creator's saved ideas as one blob in the key-value
// store, mutated through atomic updates.
type Gallery struct {
	store store.Store
	clock clock.Clock
}

// NewGallery constructs a Gallery on the given store and clock.
func NewGallery(st store.Store, clk clock.Clock) *Gallery {
	if clk == nil {
		clk = clock.System{}
	}
	return &Gallery{store: st, clock: clk}
}

func galleryKey(creatorID string) string {
	return settings.SavedIdeasKeyPrefix + creatorID
}

// decodeList parses a stored gallery blob, treating corrupt data as empty.
func decodeList(raw string, ok bool) []SavedIdea {
	if !ok {
		return []SavedIdea{}
	}
	var list []SavedIdea
	if errUnmarshal := json.Unmarshal([]byte(raw), &list); errUnmarshal != nil {
		log.WithError(errUnmarshal).Warn("ideas: corrupt gallery record, starting empty")
		return []SavedIdea{}
	}
	return list
}

// List returns the creator's saved ideas, oldest first.
func (g *Gallery) List(ctx context.Context, creatorID string) ([]SavedIdea, error) {
	raw, ok, err := g.store.Get(ctx, galleryKey(creatorID))
	if err != nil {
		return nil, fmt.Errorf("ideas: load gallery: %w", err)
	}
	return decodeList(raw, ok), nil
}

// Save appends a new idea to the creator's gallery and returns it.
func (g *Gallery) Save(ctx context.Context, creatorID, title, content, ideaType string) (SavedIdea, error) {
	if _, ok := ideaTypes[ideaType]; !ok {
		return SavedIdea{}, ErrUnknownIdeaType
	}
	idea := SavedIdea{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Type:    ideaType,
		SavedAt: g.clock.Now().UTC(),
	}
	errUpdate := g.store.Update(ctx, galleryKey(creatorID), func(old string, ok bool) (string, error) {
		list := append(decodeList(old, ok), idea)
		payload, errMarshal := json.Marshal(list)
		if errMarshal != nil {
			return "", fmt.Errorf("ideas: marshal gallery: %w", errMarshal)
		}
		return string(payload), nil
	})
	if errUpdate != nil {
		return SavedIdea{}, errUpdate
	}
	return idea, nil
}

// Delete removes the idea with the given id from the creator's gallery.
func (g *Gallery) Delete(ctx context.Context, creatorID, ideaID string) error {
	return g.store.Update(ctx, galleryKey(creatorID), func(old string, ok bool) (string, error) {
		list := decodeList(old, ok)
		kept := make([]SavedIdea, 0, len(list))
		found := false
		for _, idea := range list {
			if idea.ID == ideaID {
				found = true
				continue
			}
			kept = append(kept, idea)
		}
		if !found {
			return "", ErrIdeaNotFound
		}
		payload, errMarshal := json.Marshal(kept)
		if errMarshal != nil {
			return "", fmt.Errorf("ideas: marshal gallery: %w", errMarshal)
		}
		return string(payload), nil
	})
}

// Rate stores a star rating on the idea, clamped into 0..5.
func (g *Gallery) Rate(ctx context.Context, creatorID, ideaID string, rating int) (SavedIdea, error) {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	var rated SavedIdea
	errUpdate := g.store.Update(ctx, galleryKey(creatorID), func(old string, ok bool) (string, error) {
		list := decodeList(old, ok)
		found := false
		for i := range list {
			if list[i].ID == ideaID {
				list[i].Rating = rating
				rated = list[i]
				found = true
				break
			}
		}
		if !found {
			return "", ErrIdeaNotFound
		}
		payload, errMarshal := json.Marshal(list)
		if errMarshal != nil {
			return "", fmt.Errorf("ideas: marshal gallery: %w", errMarshal)
		}
		return string(payload), nil
	})
	if errUpdate != nil {
		return SavedIdea{}, errUpdate
	}
	return rated, nil
}
