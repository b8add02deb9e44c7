package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/feedclient/internal/common"
)

// Like toggles the like state of the post at the given feed position. The
// change is shown immediately; if the server refuses it the printed error
// means the visible state has already snapped back.
func (a *App) Like(ctx context.Context, pos int) error {
	p, ok := a.resolve(pos)
	if !ok {
		return nil
	}
	d, err := a.feed.ToggleLike(ctx, p.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("post is no longer in the feed")
			return nil
		}
		printlnFn("like failed, reverted:", err)
		return err
	}
	if d.Item.IsLiked {
		printlnFn("liked")
	} else {
		printlnFn("unliked")
	}
	return nil
}

func (a *App) Save(ctx context.Context, pos int) error {
	p, ok := a.resolve(pos)
	if !ok {
		return nil
	}
	d, err := a.feed.ToggleSave(ctx, p.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("post is no longer in the feed")
			return nil
		}
		printlnFn("save failed, reverted:", err)
		return err
	}
	if d.Item.IsSaved {
		printlnFn("saved")
	} else {
		printlnFn("unsaved")
	}
	return nil
}

func (a *App) Pin(ctx context.Context, pos int) error {
	p, ok := a.resolve(pos)
	if !ok {
		return nil
	}
	d, err := a.feed.TogglePin(ctx, p.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("post is no longer in the feed")
			return nil
		}
		printlnFn("pin failed, reverted:", err)
		return err
	}
	if d.Item.IsPinned {
		printlnFn("pinned")
	} else {
		printlnFn("unpinned")
	}
	return nil
}

// Delete removes the post on the server; the item leaves the list only once
// the server confirms.
func (a *App) Delete(ctx context.Context, pos int) error {
	p, ok := a.resolve(pos)
	if !ok {
		return nil
	}
	if _, err := a.feed.Delete(ctx, p.ID); err != nil {
		printlnFn("delete failed:", err)
		return err
	}
	printlnFn("deleted")
	return nil
}

func (a *App) Report(ctx context.Context, pos int) error {
	p, ok := a.resolve(pos)
	if !ok {
		return nil
	}
	reason, err := GetSimpleText(a.reader, "Reason for reporting", stdout())
	if err != nil {
		return err
	}
	if err := a.feed.Report(ctx, p.ID, reason); err != nil {
		printlnFn("report failed:", err)
		return err
	}
	printlnFn("reported")
	return nil
}
