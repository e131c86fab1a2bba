package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/claude/sweatlog/internal/kv"
	"github.com/claude/sweatlog/internal/models"
)

const playlistKey = "playlist_items"

// ErrDuplicateVideo is returned when the playlist already holds an
// entry for the same video.
var ErrDuplicateVideo = errors.New("store: video already in playlist")

// Playlist is the persisted collection of favorite videos.
type Playlist struct {
	mu    sync.RWMutex
	store kv.Store
	items []models.PlaylistItem
}

// OpenPlaylist loads the collection from the store. An absent key
// means an empty collection.
func OpenPlaylist(store kv.Store) (*Playlist, error) {
	p := &Playlist{store: store}

	data, err := store.Get(playlistKey)
	if errors.Is(err, kv.ErrNotFound) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading playlist: %w", err)
	}
	if err := json.Unmarshal(data, &p.items); err != nil {
		return nil, fmt.Errorf("decoding playlist: %w", err)
	}
	return p, nil
}

// Append validates and stores a new item. Video IDs are unique within
// the collection; duplicates are rejected with ErrDuplicateVideo and
// leave the collection unchanged.
func (p *Playlist) Append(item models.PlaylistItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.items {
		if existing.VideoID == item.VideoID {
			return ErrDuplicateVideo
		}
	}

	next := append(append([]models.PlaylistItem(nil), p.items...), item)
	if err := p.save(next); err != nil {
		return err
	}
	p.items = next
	return nil
}

// Remove deletes an item by ID. Removing an absent ID is a no-op and
// reports false.
func (p *Playlist) Remove(id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := make([]models.PlaylistItem, 0, len(p.items))
	removed := false
	for _, item := range p.items {
		if item.ID == id {
			removed = true
			continue
		}
		next = append(next, item)
	}
	if !removed {
		return false, nil
	}
	if err := p.save(next); err != nil {
		return false, err
	}
	p.items = next
	return true, nil
}

// Get returns the item with the given ID.
func (p *Playlist) Get(id string) (models.PlaylistItem, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, item := range p.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.PlaylistItem{}, ErrNotFound
}

// ContainsVideo reports whether a video ID is already saved.
func (p *Playlist) ContainsVideo(videoID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, item := range p.items {
		if item.VideoID == videoID {
			return true
		}
	}
	return false
}

// List returns a snapshot sorted by added date, newest first.
func (p *Playlist) List() []models.PlaylistItem {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := append([]models.PlaylistItem(nil), p.items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedDate.After(out[j].AddedDate)
	})
	return out
}

// Len returns the number of stored items.
func (p *Playlist) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

func (p *Playlist) save(items []models.PlaylistItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding playlist: %w", err)
	}
	if err := p.store.Put(playlistKey, data); err != nil {
		return fmt.Errorf("saving playlist: %w", err)
	}
	return nil
}
