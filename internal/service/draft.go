package service

import (
	"sync"

	"github.com/decioext/quotes-service/internal/model"
)

// DraftStore keeps the per-user in-progress item list. Drafts live only in
// memory; a draft becomes durable when Save persists it.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string][]model.LineItem
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string][]model.LineItem)}
}

func (d *DraftStore) Add(username string, item model.LineItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drafts[username] = append(d.drafts[username], item)
}

func (d *DraftStore) Remove(username string, index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := d.drafts[username]
	if index < 0 || index >= len(items) {
		return false
	}
	d.drafts[username] = append(items[:index], items[index+1:]...)
	return true
}

func (d *DraftStore) Items(username string) []model.LineItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := d.drafts[username]
	out := make([]model.LineItem, len(items))
	copy(out, items)
	return out
}

func (d *DraftStore) Clear(username string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drafts, username)
}
