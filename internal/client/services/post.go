// Package services contains the orchestration layer of the feed client: the
// post lifecycle controller driving a draft from local persistence through
// upload and submission into the feed, and the feed service applying
// paginated loads and optimistic mutations to the visible list.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/feedclient/internal/client/api"
	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/feedclient/internal/client/uploads"
	"github.com/dmitrijs2005/feedclient/internal/common"
	"github.com/dmitrijs2005/feedclient/internal/logging"
	"github.com/sethvargo/go-retry"
)

// EventKind classifies a lifecycle notification.
type EventKind int

const (
	// EventProgress carries the current upload percentage for the active draft.
	EventProgress EventKind = iota
	// EventPosted carries the confirmed post; the draft is gone from the store.
	EventPosted
	// EventUploadFailed carries the indices of the attachments that failed.
	EventUploadFailed
	// EventSubmitFailed means the upload succeeded but the server submission
	// did not; the draft is retained for retry.
	EventSubmitFailed
)

// Event is a lifecycle notification for the active draft. Events for a
// single temporary id are delivered in the order they were produced.
type Event struct {
	Kind          EventKind
	TemporaryID   int64
	Percent       int
	Post          models.PostView
	FailedIndices []int
	Err           error
}

// UploadTracker is the slice of the upload tracker the controller needs.
// *uploads.Tracker satisfies it.
type UploadTracker interface {
	Enqueue(ctx context.Context, temporaryID int64, atts []models.Attachment) (string, error)
	Observe(handle string) (<-chan uploads.Status, func(), error)
	Handle(temporaryID int64) (string, bool)
	Cancel(handle string)
}

// PostService is the post lifecycle controller. It owns the draft state
// machine and the retry policy; all outcomes are reported through Events,
// never by blocking the caller.
type PostService interface {
	// CreatePost persists a new draft and starts its upload. Returns the
	// temporary id, or common.ErrorPostingInProgress when another draft is
	// still active.
	CreatePost(ctx context.Context, text, thumbnail string, atts []models.Attachment) (int64, error)

	// Resume re-attaches to a pending draft after process or screen
	// recreation. A draft mid-upload is observed, not restarted.
	Resume(ctx context.Context) error

	// RetryUpload re-enqueues only the attachments that failed.
	RetryUpload(ctx context.Context, temporaryID int64) error

	// RetrySubmit re-attempts the server submission of a fully uploaded draft.
	RetrySubmit(ctx context.Context, temporaryID int64) error

	// Abandon discards the draft and cancels any in-flight upload.
	Abandon(ctx context.Context, temporaryID int64) error

	// Events is the stream of lifecycle notifications.
	Events() <-chan Event
}

type postService struct {
	drafts  drafts.Repository
	tracker UploadTracker
	client  api.Client
	log     logging.Logger
	events  chan Event
}

func NewPostService(repo drafts.Repository, tracker UploadTracker, client api.Client, log logging.Logger) PostService {
	return &postService{
		drafts:  repo,
		tracker: tracker,
		client:  client,
		log:     log,
		events:  make(chan Event, 64),
	}
}

func (s *postService) Events() <-chan Event {
	return s.events
}

func (s *postService) CreatePost(ctx context.Context, text, thumbnail string, atts []models.Attachment) (int64, error) {
	_, err := s.drafts.GetPending(ctx)
	if err == nil {
		return 0, common.ErrorPostingInProgress
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return 0, err
	}

	draft := &models.DraftPost{
		Text:        text,
		Thumbnail:   thumbnail,
		State:       models.DraftStateDrafted,
		Attachments: atts,
		CreatedAt:   time.Now().Unix(),
	}
	id, err := s.drafts.Create(ctx, draft)
	if err != nil {
		return 0, err
	}

	if err := s.startUpload(ctx, id, models.DraftStateDrafted); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *postService) RetryUpload(ctx context.Context, temporaryID int64) error {
	return s.startUpload(ctx, temporaryID, models.DraftStateUploadFailed)
}

func (s *postService) RetrySubmit(ctx context.Context, temporaryID int64) error {
	go s.submit(context.Background(), temporaryID, models.DraftStateSubmitFailed)
	return nil
}

func (s *postService) Abandon(ctx context.Context, temporaryID int64) error {
	if handle, ok := s.tracker.Handle(temporaryID); ok {
		s.tracker.Cancel(handle)
	}
	err := s.drafts.DeleteByID(ctx, temporaryID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func (s *postService) Resume(ctx context.Context) error {
	draft, err := s.drafts.GetPending(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	id := draft.TemporaryID
	s.log.Info(ctx, "resuming pending draft", "temporary_id", id, "state", string(draft.State))

	switch draft.State {
	case models.DraftStateDrafted:
		return s.startUpload(ctx, id, models.DraftStateDrafted)

	case models.DraftStateUploading:
		if handle, ok := s.tracker.Handle(id); ok {
			// The task outlived the foreground; just observe it again.
			return s.watchHandle(id, handle)
		}
		return s.enqueuePending(ctx, draft)

	case models.DraftStateUploadFailed:
		s.emit(Event{
			Kind:          EventUploadFailed,
			TemporaryID:   id,
			FailedIndices: pendingIndices(draft),
			Err:           &uploads.UploadError{FailedIndices: pendingIndices(draft)},
		})
		return nil

	case models.DraftStateSubmitting:
		// The process died while the submission was in flight; its outcome is
		// unknown, so hand the decision back to the user.
		if _, err := s.drafts.TransitionState(ctx, id, models.DraftStateSubmitting, models.DraftStateSubmitFailed); err != nil {
			return err
		}
		s.emit(Event{Kind: EventSubmitFailed, TemporaryID: id, Err: common.ErrorNetwork})
		return nil

	case models.DraftStateSubmitFailed:
		s.emit(Event{Kind: EventSubmitFailed, TemporaryID: id, Err: common.ErrorSubmitRejected})
		return nil
	}
	return nil
}

// startUpload moves the draft into UPLOADING and hands its pending
// attachments to the tracker. A draft that is not in the expected source
// state makes this a no-op.
func (s *postService) startUpload(ctx context.Context, id int64, from models.DraftState) error {
	ok, err := s.drafts.TransitionState(ctx, id, from, models.DraftStateUploading)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.enqueuePending(ctx, draft)
}

func (s *postService) enqueuePending(ctx context.Context, draft *models.DraftPost) error {
	id := draft.TemporaryID
	pending := draft.PendingAttachments()
	if len(pending) == 0 {
		// Text-only post, or every attachment already made it on a previous
		// attempt: go straight to submission.
		go s.submit(context.Background(), id, models.DraftStateUploading)
		return nil
	}

	handle, err := s.tracker.Enqueue(ctx, id, pending)
	if err != nil {
		return err
	}
	return s.watchHandle(id, handle)
}

func (s *postService) watchHandle(id int64, handle string) error {
	ch, stop, err := s.tracker.Observe(handle)
	if err != nil {
		return err
	}
	go s.watch(id, ch, stop)
	return nil
}

// watch consumes one upload task's statuses and advances the state machine.
// It runs in the background and terminates with the task.
func (s *postService) watch(id int64, ch <-chan uploads.Status, stop func()) {
	defer stop()
	ctx := context.Background()

	for st := range ch {
		switch st.Phase {
		case uploads.PhaseRunning:
			s.emit(Event{
				Kind:        EventProgress,
				TemporaryID: id,
				Percent:     uploads.Percent(st.BytesUploaded, st.BytesTotal),
			})

		case uploads.PhaseSucceeded:
			s.submit(ctx, id, models.DraftStateUploading)
			return

		case uploads.PhaseFailed:
			ok, err := s.drafts.TransitionState(ctx, id, models.DraftStateUploading, models.DraftStateUploadFailed)
			if err != nil {
				s.log.Error(ctx, "failed to record upload failure", "temporary_id", id, "error", err)
				return
			}
			if ok {
				s.emit(Event{
					Kind:          EventUploadFailed,
					TemporaryID:   id,
					FailedIndices: st.FailedIndices,
					Err:           &uploads.UploadError{FailedIndices: st.FailedIndices},
				})
			}
			return
		}
	}
}

// submit sends the draft to the server exactly once per successful upload.
// The compare-and-swap into SUBMITTING is the double-submit guard: a
// duplicate success notification finds the draft already past UPLOADING and
// becomes a no-op.
func (s *postService) submit(ctx context.Context, id int64, from models.DraftState) {
	ok, err := s.drafts.TransitionState(ctx, id, from, models.DraftStateSubmitting)
	if err != nil {
		s.log.Error(ctx, "failed to enter submitting state", "temporary_id", id, "error", err)
		return
	}
	if !ok {
		return
	}

	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		s.log.Error(ctx, "failed to load draft for submission", "temporary_id", id, "error", err)
		return
	}

	var view models.PostView
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, serr := s.client.SubmitPost(ctx, *draft)
		if serr != nil {
			if errors.Is(serr, common.ErrorNetwork) {
				return retry.RetryableError(serr)
			}
			return serr
		}
		view = v
		return nil
	})
	if err != nil {
		if _, terr := s.drafts.TransitionState(ctx, id, models.DraftStateSubmitting, models.DraftStateSubmitFailed); terr != nil {
			s.log.Error(ctx, "failed to record submit failure", "temporary_id", id, "error", terr)
		}
		s.emit(Event{Kind: EventSubmitFailed, TemporaryID: id, Err: err})
		return
	}

	if err := s.drafts.SetServerID(ctx, id, view.ID); err != nil {
		s.log.Warn(ctx, "failed to record server id", "temporary_id", id, "error", err)
	}
	ok, err = s.drafts.TransitionState(ctx, id, models.DraftStateSubmitting, models.DraftStateConfirmed)
	if err != nil {
		s.log.Error(ctx, "failed to confirm draft", "temporary_id", id, "error", err)
		return
	}
	if !ok {
		return
	}
	if err := s.drafts.DeleteByID(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to remove confirmed draft", "temporary_id", id, "error", err)
	}

	s.emit(Event{Kind: EventPosted, TemporaryID: id, Post: view})
}

func (s *postService) emit(e Event) {
	s.events <- e
}

func pendingIndices(draft *models.DraftPost) []int {
	var out []int
	for _, a := range draft.PendingAttachments() {
		out = append(out, a.Index)
	}
	return out
}
