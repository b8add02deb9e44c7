package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/feedclient/internal/client/api"
	"github.com/dmitrijs2005/feedclient/internal/client/feed"
	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/logging"
)

// FeedService owns the visible feed list and its pagination cursor. All
// mutations go through it so that server pages, confirmed posts and
// optimistic toggles converge on one list.
//
// Refresh and LoadMore return nil deltas without error while another fetch
// is outstanding; rapid triggers collapse into the single in-flight request.
type FeedService interface {
	Refresh(ctx context.Context) ([]feed.Delta, error)
	LoadMore(ctx context.Context) ([]feed.Delta, error)

	// ToggleLike flips the like state optimistically and reconciles with the
	// server. On failure the returned delta restores the previous state and
	// the error is reported alongside it.
	ToggleLike(ctx context.Context, postID string) (feed.Delta, error)
	ToggleSave(ctx context.Context, postID string) (feed.Delta, error)
	TogglePin(ctx context.Context, postID string) (feed.Delta, error)

	// Delete removes the post on the server first; the item leaves the list
	// only once the server confirms.
	Delete(ctx context.Context, postID string) (feed.Delta, error)
	Report(ctx context.Context, postID, reason string) error

	// SpliceConfirmed places a freshly confirmed post at the top of the list.
	SpliceConfirmed(post models.PostView) feed.Delta

	// ClearTransientFlags drops the one-shot animation flags from a rendered item.
	ClearTransientFlags(postID string) (feed.Delta, error)

	Items() []models.PostView
}

type feedService struct {
	client   api.Client
	list     *feed.List
	cursor   *feed.Cursor
	pageSize int
	log      logging.Logger

	mu       sync.Mutex
	inFlight bool
}

func NewFeedService(client api.Client, pageSize int, log logging.Logger) FeedService {
	return &feedService{
		client:   client,
		list:     feed.NewList(),
		cursor:   feed.NewCursor(),
		pageSize: pageSize,
		log:      log,
	}
}

// begin marks a fetch as in flight; it reports false when one already is.
func (s *feedService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *feedService) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *feedService) Refresh(ctx context.Context) ([]feed.Delta, error) {
	if !s.begin() {
		return nil, nil
	}
	defer s.end()

	items, err := s.client.FetchFeedPage(ctx, 1, s.pageSize)
	if err != nil {
		return nil, err
	}

	s.cursor.Reset()
	return []feed.Delta{s.list.Replace(items)}, nil
}

func (s *feedService) LoadMore(ctx context.Context) ([]feed.Delta, error) {
	if !s.begin() {
		return nil, nil
	}
	defer s.end()

	page := s.cursor.Next()
	items, err := s.client.FetchFeedPage(ctx, page, s.pageSize)
	if err != nil {
		return nil, err
	}

	// The cursor only moves once the page actually arrived, so a failed
	// fetch is retried against the same page.
	s.cursor.Advance()
	return s.list.AppendPage(items), nil
}

func (s *feedService) ToggleLike(ctx context.Context, postID string) (feed.Delta, error) {
	_, before, err := s.list.Get(postID)
	if err != nil {
		return feed.Delta{}, err
	}

	liked := !before.IsLiked
	count := before.LikesCount
	if liked {
		count++
	} else {
		count--
	}

	d, err := s.list.ApplyOptimistic(postID, func(p models.PostView) models.PostView {
		return p.WithLiked(liked, count)
	})
	if err != nil {
		return feed.Delta{}, err
	}

	call := s.client.LikePost
	if !liked {
		call = s.client.UnlikePost
	}
	if err := call(ctx, postID); err != nil {
		return s.rollback(postID, err, func(p models.PostView) models.PostView {
			return p.WithLiked(before.IsLiked, before.LikesCount)
		})
	}
	return d, nil
}

func (s *feedService) ToggleSave(ctx context.Context, postID string) (feed.Delta, error) {
	_, before, err := s.list.Get(postID)
	if err != nil {
		return feed.Delta{}, err
	}

	saved := !before.IsSaved
	d, err := s.list.ApplyOptimistic(postID, func(p models.PostView) models.PostView {
		return p.WithSaved(saved)
	})
	if err != nil {
		return feed.Delta{}, err
	}

	call := s.client.SavePost
	if !saved {
		call = s.client.UnsavePost
	}
	if err := call(ctx, postID); err != nil {
		return s.rollback(postID, err, func(p models.PostView) models.PostView {
			return p.WithSaved(before.IsSaved)
		})
	}
	return d, nil
}

// TogglePin flips the pin state and swaps the Pin/Unpin menu entry. The item
// keeps its current position; pin ordering is the server's concern and shows
// up on the next refresh.
func (s *feedService) TogglePin(ctx context.Context, postID string) (feed.Delta, error) {
	_, before, err := s.list.Get(postID)
	if err != nil {
		return feed.Delta{}, err
	}

	pinned := !before.IsPinned
	d, err := s.list.ApplyOptimistic(postID, func(p models.PostView) models.PostView {
		return p.WithPinned(pinned)
	})
	if err != nil {
		return feed.Delta{}, err
	}

	call := s.client.PinPost
	if !pinned {
		call = s.client.UnpinPost
	}
	if err := call(ctx, postID); err != nil {
		return s.rollback(postID, err, func(p models.PostView) models.PostView {
			return p.WithPinned(before.IsPinned)
		})
	}
	return d, nil
}

func (s *feedService) Delete(ctx context.Context, postID string) (feed.Delta, error) {
	if err := s.client.DeletePost(ctx, postID); err != nil {
		return feed.Delta{}, err
	}
	return s.list.Remove(postID)
}

func (s *feedService) Report(ctx context.Context, postID, reason string) error {
	return s.client.ReportPost(ctx, postID, reason)
}

func (s *feedService) SpliceConfirmed(post models.PostView) feed.Delta {
	return s.list.SpliceConfirmed(post)
}

func (s *feedService) ClearTransientFlags(postID string) (feed.Delta, error) {
	return s.list.ClearTransientFlags(postID)
}

func (s *feedService) Items() []models.PostView {
	return s.list.Items()
}

// rollback restores the pre-toggle state and returns the restoring delta
// together with the server error, so the caller can both repaint and notify.
func (s *feedService) rollback(postID string, cause error, restore func(models.PostView) models.PostView) (feed.Delta, error) {
	d, err := s.list.Rollback(postID, restore)
	if err != nil {
		// The item vanished between toggle and rollback; the server error
		// still matters more.
		s.log.Warn(context.Background(), "rollback target missing", "post_id", postID, "error", err)
		return feed.Delta{}, cause
	}
	return d, cause
}
