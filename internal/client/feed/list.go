// Package feed holds the in-memory ordered view model backing the visible
// feed, and the pagination cursor driving load-more requests.
//
// The List is the single serialization point for all structural changes to
// the feed: paginated merges, the confirmed-post splice and optimistic user
// mutations all funnel through its methods, so page-append and
// optimistic-update events cannot interleave into lost updates.
package feed

import (
	"sync"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/common"
)

// DeltaOp classifies a list change for the view layer.
type DeltaOp int

const (
	// DeltaReset replaces the whole list; Index is not meaningful.
	DeltaReset DeltaOp = iota
	// DeltaInsert inserts Item at Index.
	DeltaInsert
	// DeltaUpdate replaces the item at Index with Item.
	DeltaUpdate
	// DeltaRemove removes the item at Index.
	DeltaRemove
)

// Delta is an index-addressed list change. The view layer applies deltas
// instead of re-rendering the whole list.
type Delta struct {
	Op    DeltaOp
	Index int
	Item  models.PostView
}

// List is the ordered sequence of confirmed posts backing the feed.
// All methods are safe for concurrent use; outside callers never manipulate
// indices directly.
type List struct {
	mu    sync.Mutex
	items []models.PostView
}

func NewList() *List {
	return &List{}
}

// Replace discards the current content and installs items. Used on refresh
// and on a page-1 load: the reconciled list is exactly the server's page,
// with no merge against stale state.
func (l *List) Replace(items []models.PostView) Delta {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]models.PostView, len(items))
	copy(l.items, items)
	return Delta{Op: DeltaReset}
}

// AppendPage appends a page (page >= 2) at the end. Items whose id is
// already present are dropped, so re-delivered pages never introduce
// duplicates.
func (l *List) AppendPage(items []models.PostView) []Delta {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]struct{}, len(l.items))
	for _, it := range l.items {
		seen[it.ID] = struct{}{}
	}

	var deltas []Delta
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		l.items = append(l.items, it)
		deltas = append(deltas, Delta{Op: DeltaInsert, Index: len(l.items) - 1, Item: it})
	}
	return deltas
}

// SpliceConfirmed inserts a freshly confirmed post at the top of the feed.
// If the id is somehow already present the existing item is updated in place
// instead, so a duplicate confirmation cannot double the post.
func (l *List) SpliceConfirmed(item models.PostView) Delta {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(item.ID); i >= 0 {
		l.items[i] = item
		return Delta{Op: DeltaUpdate, Index: i, Item: item}
	}

	l.items = append([]models.PostView{item}, l.items...)
	return Delta{Op: DeltaInsert, Index: 0, Item: item}
}

// ApplyOptimistic locates the post by id, applies mutate and installs the
// result, returning the delta for the view layer. The updated value is
// displayed before the corresponding network call resolves.
// Returns common.ErrorNotFound when the post is no longer in the feed; the
// caller treats that as "feed changed underneath, ignore".
func (l *List) ApplyOptimistic(id string, mutate func(models.PostView) models.PostView) (Delta, error) {
	return l.apply(id, mutate)
}

// Rollback is the symmetric inverse of ApplyOptimistic, used when the
// network call fails: the caller passes a mutator restoring the prior value.
func (l *List) Rollback(id string, mutate func(models.PostView) models.PostView) (Delta, error) {
	return l.apply(id, mutate)
}

func (l *List) apply(id string, mutate func(models.PostView) models.PostView) (Delta, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return Delta{}, common.ErrorNotFound
	}
	l.items[i] = mutate(l.items[i])
	return Delta{Op: DeltaUpdate, Index: i, Item: l.items[i]}, nil
}

// Remove deletes the post by id, returning the removal delta.
func (l *List) Remove(id string) (Delta, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return Delta{}, common.ErrorNotFound
	}
	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return Delta{Op: DeltaRemove, Index: i, Item: item}, nil
}

// ClearTransientFlags drops the animation-suppression flags from the post.
// The view layer applies the returned delta without re-animating the row.
func (l *List) ClearTransientFlags(id string) (Delta, error) {
	return l.apply(id, models.PostView.WithoutTransientFlags)
}

// Get returns the index and current value of the post with the given id.
func (l *List) Get(id string) (int, models.PostView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return 0, models.PostView{}, common.ErrorNotFound
	}
	return i, l.items[i], nil
}

// Items returns a snapshot of the current sequence.
func (l *List) Items() []models.PostView {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.PostView, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of posts currently in the feed.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
