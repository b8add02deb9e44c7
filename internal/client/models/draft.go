// Package models defines the value objects flowing through the feed client
// pipeline: local post drafts with their attachments, and confirmed posts as
// they appear in the feed.
package models

// DraftState is the lifecycle state of a locally authored post.
type DraftState string

const (
	DraftStateDrafted      DraftState = "drafted"
	DraftStateUploading    DraftState = "uploading"
	DraftStateUploadFailed DraftState = "upload_failed"
	DraftStateSubmitting   DraftState = "submitting"
	DraftStateConfirmed    DraftState = "confirmed"
	DraftStateSubmitFailed DraftState = "submit_failed"
)

// Active reports whether the state still needs pipeline work. A confirmed
// draft is terminal and about to be removed from the store.
func (s DraftState) Active() bool {
	return s != DraftStateConfirmed
}

// Attachment is a single media file belonging to a draft. It is owned
// exclusively by its parent draft and never shared between drafts.
type Attachment struct {
	Index         int
	LocalURI      string
	RemoteURI     string // empty until the upload for this attachment succeeds
	ProgressBytes int64
	TotalBytes    int64
}

// Uploaded reports whether this attachment already has a remote location.
func (a Attachment) Uploaded() bool {
	return a.RemoteURI != ""
}

// DraftPost is a post-in-progress persisted in the local draft store.
// TemporaryID is the client-generated identity; ServerID stays empty until
// the server confirms the post, and is set exactly once.
type DraftPost struct {
	TemporaryID int64
	ServerID    string
	Text        string
	Thumbnail   string
	State       DraftState
	Attachments []Attachment
	CreatedAt   int64
}

// PendingAttachments returns the attachments that still have to be uploaded,
// in their original order.
func (d DraftPost) PendingAttachments() []Attachment {
	var out []Attachment
	for _, a := range d.Attachments {
		if !a.Uploaded() {
			out = append(out, a)
		}
	}
	return out
}

// WithState returns a copy of the draft in the given state.
func (d DraftPost) WithState(s DraftState) DraftPost {
	c := d.clone()
	c.State = s
	return c
}

// WithServerID returns a copy of the draft carrying the server-assigned id.
func (d DraftPost) WithServerID(id string) DraftPost {
	c := d.clone()
	c.ServerID = id
	return c
}

// WithAttachment returns a copy of the draft with the attachment at
// a.Index replaced. Unknown indices leave the draft unchanged.
func (d DraftPost) WithAttachment(a Attachment) DraftPost {
	c := d.clone()
	for i := range c.Attachments {
		if c.Attachments[i].Index == a.Index {
			c.Attachments[i] = a
		}
	}
	return c
}

func (d DraftPost) clone() DraftPost {
	c := d
	c.Attachments = make([]Attachment, len(d.Attachments))
	copy(c.Attachments, d.Attachments)
	return c
}
