// Package cli provides the interactive feed command-line client.
//
// It wires configuration, the local draft store, the backend API client and
// the upload tracker into an interactive REPL. Lifecycle notifications from
// the posting pipeline (upload progress, confirmation, failures) arrive on a
// background channel and are printed as they happen, independent of the
// command the user is currently typing.
//
// Key features:
//   - Browse the feed page by page (refresh / more)
//   - Like, save, pin, delete and report posts
//   - Compose a post with media attachments; uploads continue in the
//     background and survive the compose prompt
//   - Retry a failed upload or submission, or abandon the draft
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
