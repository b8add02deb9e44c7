package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/common"
)

// Post composes a new post interactively and hands it to the posting
// pipeline. The command returns as soon as the draft is saved; upload
// progress and the final outcome arrive as notifications.
func (a *App) Post(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Post text", stdout())
	if err != nil {
		return err
	}

	paths, err := GetAttachmentPaths(a.reader)
	if err != nil {
		return err
	}

	atts := make([]models.Attachment, 0, len(paths))
	for i, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			printlnFn("cannot read attachment:", err)
			return err
		}
		atts = append(atts, models.Attachment{
			Index:      i,
			LocalURI:   "file://" + p,
			TotalBytes: fi.Size(),
		})
	}

	if strings.TrimSpace(text) == "" && len(atts) == 0 {
		printlnFn("nothing to post")
		return nil
	}

	id, err := a.posts.CreatePost(ctx, text, "", atts)
	if err != nil {
		if errors.Is(err, common.ErrorPostingInProgress) {
			printlnFn("a post is already uploading; wait for it to finish or 'abandon' it")
			return nil
		}
		printlnFn("could not save the post:", err)
		return err
	}

	printlnFn("posting in the background, draft", id)
	return nil
}

// Retry re-attempts whatever failed for the pending draft: a failed upload
// re-enqueues only the attachments that did not make it, a failed submission
// is sent again.
func (a *App) Retry(ctx context.Context) error {
	draft, err := a.drafts.GetPending(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("nothing to retry")
			return nil
		}
		return err
	}

	switch draft.State {
	case models.DraftStateUploadFailed:
		return a.posts.RetryUpload(ctx, draft.TemporaryID)
	case models.DraftStateSubmitFailed:
		return a.posts.RetrySubmit(ctx, draft.TemporaryID)
	default:
		printlnFn("draft is", string(draft.State)+",", "nothing to retry")
		return nil
	}
}

// Abandon discards the pending draft and cancels its upload.
func (a *App) Abandon(ctx context.Context) error {
	draft, err := a.drafts.GetPending(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("no pending draft")
			return nil
		}
		return err
	}
	if err := a.posts.Abandon(ctx, draft.TemporaryID); err != nil {
		printlnFn("could not abandon the draft:", err)
		return err
	}
	printlnFn("draft abandoned")
	return nil
}
