// Package common defines shared constants and sentinel errors used across
// the feed client pipeline. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Transport-level errors. Every transport failure, regardless of cause,
	// is reported as ErrorNetwork.
	ErrorNetwork = errors.New("network error")

	// Pipeline flow-control errors.
	ErrorPostingInProgress = errors.New("a post is already uploading")
	ErrorSubmitRejected    = errors.New("post rejected by server")

	// Generic/internal errors.
	ErrorInternal = errors.New("internal error")
)
