package drafts

import (
	"context"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
)

// Repository describes the durable draft store. A draft and its attachments
// are always written together: a partial write must never leave the
// attachment list inconsistent with its parent record.
type Repository interface {
	// Create persists a new draft with its attachments in one transaction and
	// returns the assigned temporary id. Temporary ids are monotonic and
	// never reused.
	Create(ctx context.Context, draft *models.DraftPost) (int64, error)

	// GetByID returns the draft with its attachments, ordered by index.
	// Returns common.ErrorNotFound when the id is unknown, which callers
	// treat as "nothing to resume".
	GetByID(ctx context.Context, temporaryID int64) (*models.DraftPost, error)

	// GetPending returns the active (non-confirmed) draft, if any. At most
	// one draft is active per session. Returns common.ErrorNotFound when
	// there is none.
	GetPending(ctx context.Context) (*models.DraftPost, error)

	// Update rewrites the draft record and all of its attachments in one
	// transaction.
	Update(ctx context.Context, draft *models.DraftPost) error

	// TransitionState moves the draft from one lifecycle state to another,
	// but only when the current state matches from. It reports whether the
	// transition happened; a false result with nil error means the draft was
	// not in the expected source state and the caller should treat the event
	// as stale.
	TransitionState(ctx context.Context, temporaryID int64, from, to models.DraftState) (bool, error)

	// SetServerID records the server-assigned id on the draft. It is set
	// exactly once, at confirmation.
	SetServerID(ctx context.Context, temporaryID int64, serverID string) error

	// UpdateAttachment rewrites a single attachment row identified by the
	// draft's temporary id and the attachment index.
	UpdateAttachment(ctx context.Context, temporaryID int64, att models.Attachment) error

	// DeleteByID removes the draft and its attachments.
	DeleteByID(ctx context.Context, temporaryID int64) error
}
