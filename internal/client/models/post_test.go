package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func samplePost() PostView {
	return PostView{
		ID:         "p1",
		UserID:     "u1",
		Text:       "hello",
		LikesCount: 5,
		MenuItems:  DefaultMenuItems(false),
	}
}

func TestWithLiked_DoesNotMutateOriginal(t *testing.T) {
	p := samplePost()

	updated := p.WithLiked(true, p.LikesCount+1)

	require.True(t, updated.IsLiked)
	require.Equal(t, 6, updated.LikesCount)
	require.True(t, updated.FromPostLiked)

	require.False(t, p.IsLiked, "original must stay unchanged")
	require.Equal(t, 5, p.LikesCount)
	require.False(t, p.FromPostLiked)
}

func TestWithPinned_SwapsMenuEntryWithoutAliasing(t *testing.T) {
	p := samplePost()

	pinned := p.WithPinned(true)

	require.True(t, pinned.IsPinned)
	require.Equal(t, MenuItemUnpin, pinned.MenuItems[0].Title)
	require.Equal(t, MenuItemPin, p.MenuItems[0].Title, "original menu must not change")

	unpinned := pinned.WithPinned(false)
	require.False(t, unpinned.IsPinned)
	require.Equal(t, MenuItemPin, unpinned.MenuItems[0].Title)
}

func TestWithoutTransientFlags(t *testing.T) {
	p := samplePost().WithLiked(true, 6).WithSaved(true)
	require.True(t, p.FromPostLiked)
	require.True(t, p.FromPostSaved)

	cleared := p.WithoutTransientFlags()
	require.False(t, cleared.FromPostLiked)
	require.False(t, cleared.FromPostSaved)
	require.False(t, cleared.FromVideoAction)
	require.True(t, cleared.IsLiked, "domain state must survive flag reset")
	require.True(t, cleared.IsSaved)
}

func TestDraftWithAttachment_ReplacesByIndex(t *testing.T) {
	d := DraftPost{
		TemporaryID: 1,
		State:       DraftStateUploading,
		Attachments: []Attachment{
			{Index: 0, LocalURI: "file:///a.jpg", TotalBytes: 200},
			{Index: 1, LocalURI: "file:///b.mp4", TotalBytes: 800},
		},
	}

	updated := d.WithAttachment(Attachment{
		Index: 1, LocalURI: "file:///b.mp4", RemoteURI: "https://cdn/b.mp4",
		ProgressBytes: 800, TotalBytes: 800,
	})

	require.True(t, updated.Attachments[1].Uploaded())
	require.False(t, d.Attachments[1].Uploaded(), "original must stay unchanged")
	require.Len(t, updated.PendingAttachments(), 1)
	require.Equal(t, 0, updated.PendingAttachments()[0].Index)
}

func TestDraftStateActive(t *testing.T) {
	require.True(t, DraftStateUploading.Active())
	require.True(t, DraftStateSubmitFailed.Active())
	require.False(t, DraftStateConfirmed.Active())
}
