package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/common"
	"github.com/stretchr/testify/require"
)

func TestFetchFeedPage_DecodesAndBuildsMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feed", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "20", r.URL.Query().Get("page_size"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]postDTO{
			{ID: "p1", LikesCount: 3, IsPinned: true},
			{ID: "p2"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "tok")
	items, err := c.FetchFeedPage(context.Background(), 2, 20)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, models.MenuItemUnpin, items[0].MenuItems[0].Title)
	require.Equal(t, models.MenuItemPin, items[1].MenuItems[0].Title)
}

func TestSubmitPost_SendsUploadedAttachments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/feed/posts", r.URL.Path)

		var in submitPostDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "hello", in.Text)
		require.Len(t, in.Attachments, 1)
		require.Equal(t, "https://cdn/a.jpg", in.Attachments[0].RemoteURI)

		_ = json.NewEncoder(w).Encode(postDTO{ID: "srv-1", Text: in.Text})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	view, err := c.SubmitPost(context.Background(), models.DraftPost{
		Text: "hello",
		Attachments: []models.Attachment{
			{Index: 0, RemoteURI: "https://cdn/a.jpg"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "srv-1", view.ID)
}

func TestSubmitPost_RejectionIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	_, err := c.SubmitPost(context.Background(), models.DraftPost{Text: "x"})
	require.ErrorIs(t, err, common.ErrorSubmitRejected)
}

func TestMutations_MapStatusesToSentinels(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	ctx := context.Background()

	require.NoError(t, c.LikePost(ctx, "p1"))

	status = http.StatusNotFound
	require.ErrorIs(t, c.PinPost(ctx, "p1"), common.ErrorNotFound)

	status = http.StatusInternalServerError
	require.ErrorIs(t, c.DeletePost(ctx, "p1"), common.ErrorNetwork)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewHTTPClient(srv.URL, "")
	_, err := c.FetchFeedPage(context.Background(), 1, 20)
	require.ErrorIs(t, err, common.ErrorNetwork)
}
