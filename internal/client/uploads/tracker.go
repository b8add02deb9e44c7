package uploads

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/logging"
	"github.com/google/uuid"
)

// Phase is the coarse state of an upload task.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseSucceeded
	PhaseFailed
)

// Status is one observation of an upload task. BytesUploaded/BytesTotal are
// cumulative across all attachments of the current attempt; FailedIndices is
// set only on PhaseFailed.
type Status struct {
	Phase         Phase
	BytesUploaded int64
	BytesTotal    int64
	FailedIndices []int
}

// AttachmentStore is the slice of the draft store the tracker needs: it
// records per-attachment progress and the remote location once an attachment
// upload succeeds.
type AttachmentStore interface {
	UpdateAttachment(ctx context.Context, temporaryID int64, att models.Attachment) error
}

// Tracker maps a draft's temporary id to its background upload task. At most
// one live task exists per temporary id; enqueueing an id that already has a
// live task returns the existing handle instead of starting a duplicate.
type Tracker struct {
	mu       sync.Mutex
	byID     map[int64]*task
	byHandle map[string]*task

	uploader Uploader
	store    AttachmentStore
	log      logging.Logger
}

func NewTracker(uploader Uploader, store AttachmentStore, log logging.Logger) *Tracker {
	return &Tracker{
		byID:     make(map[int64]*task),
		byHandle: make(map[string]*task),
		uploader: uploader,
		store:    store,
		log:      log,
	}
}

type task struct {
	handle      string
	temporaryID int64
	cancel      context.CancelFunc

	mu      sync.Mutex
	last    Status
	started bool
	done    bool
	subs    map[int]chan Status
	nextSub int
}

// Enqueue starts a background upload of the given attachments for the draft
// identified by temporaryID and returns the task handle. If a live task for
// the id already exists its handle is returned and nothing new is started.
// The task runs on its own context and survives the caller's.
func (tr *Tracker) Enqueue(ctx context.Context, temporaryID int64, atts []models.Attachment) (string, error) {
	if len(atts) == 0 {
		return "", fmt.Errorf("nothing to upload for draft %d", temporaryID)
	}

	tr.mu.Lock()
	if existing, ok := tr.byID[temporaryID]; ok && !existing.isDone() {
		tr.mu.Unlock()
		return existing.handle, nil
	}

	runCtx, cancel := context.WithCancel(context.Background())
	t := &task{
		handle:      uuid.NewString(),
		temporaryID: temporaryID,
		cancel:      cancel,
		subs:        make(map[int]chan Status),
	}
	tr.byID[temporaryID] = t
	tr.byHandle[t.handle] = t
	tr.mu.Unlock()

	tr.log.Info(ctx, "upload task enqueued",
		"temporary_id", temporaryID, "handle", t.handle, "attachments", len(atts))

	go tr.run(runCtx, t, atts)
	return t.handle, nil
}

// Handle returns the live task handle for a temporary id, if any. Used when
// the foreground is recreated and wants to re-attach to work already in
// flight.
func (tr *Tracker) Handle(temporaryID int64) (string, bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	t, ok := tr.byID[temporaryID]
	if !ok {
		return "", false
	}
	return t.handle, true
}

// Observe subscribes to a task's statuses. The last known status is replayed
// immediately, so re-subscription after foreground recreation attaches to
// the existing task rather than starting a second one. The returned stop
// function releases the subscription.
func (tr *Tracker) Observe(handle string) (<-chan Status, func(), error) {
	tr.mu.Lock()
	t, ok := tr.byHandle[handle]
	tr.mu.Unlock()
	if !ok {
		return nil, nil, fmt.Errorf("unknown upload task %q", handle)
	}

	ch := make(chan Status, 1)

	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = ch
	if t.started {
		ch <- t.last
	}
	t.mu.Unlock()

	stop := func() {
		t.mu.Lock()
		if _, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(ch)
		}
		t.mu.Unlock()
	}
	return ch, stop, nil
}

// Cancel aborts the task's in-flight work. Observers receive the terminal
// status produced by the aborted attempt.
func (tr *Tracker) Cancel(handle string) {
	tr.mu.Lock()
	t, ok := tr.byHandle[handle]
	tr.mu.Unlock()
	if ok {
		t.cancel()
	}
}

func (tr *Tracker) run(ctx context.Context, t *task, atts []models.Attachment) {
	defer t.cancel()

	var total int64
	for _, a := range atts {
		total += a.TotalBytes
	}

	var uploaded int64
	t.publish(Status{Phase: PhaseRunning, BytesUploaded: 0, BytesTotal: total})

	var failed []int
	for _, att := range atts {
		if att.Uploaded() {
			uploaded += att.TotalBytes
			t.publish(Status{Phase: PhaseRunning, BytesUploaded: uploaded, BytesTotal: total})
			continue
		}

		key := fmt.Sprintf("posts/%d/%d/%s", t.temporaryID, att.Index, path.Base(att.LocalURI))
		remote, err := tr.uploader.Upload(ctx, key, att.LocalURI, func(n int64) {
			uploaded += n
			t.publish(Status{Phase: PhaseRunning, BytesUploaded: uploaded, BytesTotal: total})
		})
		if err != nil {
			tr.log.Error(ctx, "attachment upload failed",
				"temporary_id", t.temporaryID, "index", att.Index, "error", err)
			failed = append(failed, att.Index)
			continue
		}

		att.RemoteURI = remote
		att.ProgressBytes = att.TotalBytes
		if err := tr.store.UpdateAttachment(ctx, t.temporaryID, att); err != nil {
			tr.log.Error(ctx, "failed to persist attachment result",
				"temporary_id", t.temporaryID, "index", att.Index, "error", err)
			failed = append(failed, att.Index)
		}
	}

	if len(failed) > 0 {
		t.publish(Status{Phase: PhaseFailed, BytesUploaded: uploaded, BytesTotal: total, FailedIndices: failed})
		return
	}
	t.publish(Status{Phase: PhaseSucceeded, BytesUploaded: total, BytesTotal: total})
}

func (t *task) publish(st Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		// Nothing may follow a terminal status.
		return
	}

	t.started = true
	t.last = st
	if st.Phase != PhaseRunning {
		t.done = true
	}

	for _, ch := range t.subs {
		// Latest-value delivery: a slow observer sees fewer intermediate
		// progress points, never stale ones, and always the terminal status.
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

func (t *task) isDone() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}
