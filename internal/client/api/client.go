// Package api defines the boundary to the feed backend. The pipeline only
// ever sees the Client interface; the HTTP implementation lives alongside it
// and maps every transport failure to common.ErrorNetwork.
package api

import (
	"context"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
)

// Client is the request/response connection to the feed backend.
//
// Error contract: transport failures of any kind surface as
// common.ErrorNetwork; a 404 surfaces as common.ErrorNotFound; a rejected
// post submission surfaces as common.ErrorSubmitRejected. Callers match with
// errors.Is.
type Client interface {
	Close() error

	// SubmitPost sends a fully uploaded draft to the server and returns the
	// confirmed post as it should appear in the feed.
	SubmitPost(ctx context.Context, draft models.DraftPost) (models.PostView, error)

	// FetchFeedPage returns one page of the feed, 1-based.
	FetchFeedPage(ctx context.Context, page, pageSize int) ([]models.PostView, error)

	LikePost(ctx context.Context, postID string) error
	UnlikePost(ctx context.Context, postID string) error
	SavePost(ctx context.Context, postID string) error
	UnsavePost(ctx context.Context, postID string) error
	PinPost(ctx context.Context, postID string) error
	UnpinPost(ctx context.Context, postID string) error
	DeletePost(ctx context.Context, postID string) error
	ReportPost(ctx context.Context, postID string, reason string) error
}
