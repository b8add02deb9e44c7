package cli

import (
	"context"
	"fmt"
	"strings"
)

// Feed prints the feed as currently loaded, without touching the network.
func (a *App) Feed(ctx context.Context) error {
	items := a.feed.Items()
	if len(items) == 0 {
		printlnFn("feed is empty; try 'refresh'")
		return nil
	}
	for i, p := range items {
		markers := make([]string, 0, 3)
		if p.IsPinned {
			markers = append(markers, "pinned")
		}
		if p.IsLiked {
			markers = append(markers, "liked")
		}
		if p.IsSaved {
			markers = append(markers, "saved")
		}
		suffix := ""
		if len(markers) > 0 {
			suffix = " [" + strings.Join(markers, ",") + "]"
		}
		printlnFn(fmt.Sprintf("%2d. %s  (%d likes, %d comments)%s", i+1, p.Text, p.LikesCount, p.CommentsCount, suffix))
	}
	return nil
}

// Refresh reloads the feed from page 1.
func (a *App) Refresh(ctx context.Context) error {
	if _, err := a.feed.Refresh(ctx); err != nil {
		printlnFn("refresh failed:", err)
		return err
	}
	return a.Feed(ctx)
}

// LoadMore fetches the next feed page. While a fetch is already in flight
// the command is a quiet no-op.
func (a *App) LoadMore(ctx context.Context) error {
	deltas, err := a.feed.LoadMore(ctx)
	if err != nil {
		printlnFn("load failed:", err)
		return err
	}
	printlnFn(fmt.Sprintf("%d new post(s)", len(deltas)))
	return nil
}
