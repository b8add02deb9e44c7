package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/common"
)

// HTTPClient implements Client over the backend's JSON API, authenticating
// with an opaque bearer token.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

type attachmentDTO struct {
	Index     int    `json:"index"`
	RemoteURI string `json:"remote_uri"`
}

type submitPostDTO struct {
	Text        string          `json:"text"`
	Attachments []attachmentDTO `json:"attachments,omitempty"`
}

type postDTO struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	Text          string `json:"text"`
	CreatedAt     int64  `json:"created_at"`
	LikesCount    int    `json:"likes_count"`
	CommentsCount int    `json:"comments_count"`
	IsLiked       bool   `json:"is_liked"`
	IsSaved       bool   `json:"is_saved"`
	IsPinned      bool   `json:"is_pinned"`
}

func (d postDTO) toView() models.PostView {
	return models.PostView{
		ID:            d.ID,
		UserID:        d.UserID,
		Text:          d.Text,
		CreatedAt:     d.CreatedAt,
		LikesCount:    d.LikesCount,
		CommentsCount: d.CommentsCount,
		IsLiked:       d.IsLiked,
		IsSaved:       d.IsSaved,
		IsPinned:      d.IsPinned,
		MenuItems:     models.DefaultMenuItems(d.IsPinned),
	}
}

func (c *HTTPClient) SubmitPost(ctx context.Context, draft models.DraftPost) (models.PostView, error) {
	body := submitPostDTO{Text: draft.Text}
	for _, a := range draft.Attachments {
		body.Attachments = append(body.Attachments, attachmentDTO{Index: a.Index, RemoteURI: a.RemoteURI})
	}

	var out postDTO
	if err := c.do(ctx, http.MethodPost, "/feed/posts", body, &out); err != nil {
		return models.PostView{}, err
	}
	return out.toView(), nil
}

func (c *HTTPClient) FetchFeedPage(ctx context.Context, page, pageSize int) ([]models.PostView, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var out []postDTO
	if err := c.do(ctx, http.MethodGet, "/feed?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}

	items := make([]models.PostView, 0, len(out))
	for _, d := range out {
		items = append(items, d.toView())
	}
	return items, nil
}

func (c *HTTPClient) LikePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodPost, "/feed/posts/"+postID+"/like", nil, nil)
}

func (c *HTTPClient) UnlikePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/feed/posts/"+postID+"/like", nil, nil)
}

func (c *HTTPClient) SavePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodPost, "/feed/posts/"+postID+"/save", nil, nil)
}

func (c *HTTPClient) UnsavePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/feed/posts/"+postID+"/save", nil, nil)
}

func (c *HTTPClient) PinPost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodPost, "/feed/posts/"+postID+"/pin", nil, nil)
}

func (c *HTTPClient) UnpinPost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/feed/posts/"+postID+"/pin", nil, nil)
}

func (c *HTTPClient) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/feed/posts/"+postID, nil, nil)
}

func (c *HTTPClient) ReportPost(ctx context.Context, postID string, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPost, "/feed/posts/"+postID+"/report", body, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorNetwork, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(method, path, resp.StatusCode); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", common.ErrorNetwork, err)
	}
	return nil
}

func checkStatus(method, path string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return common.ErrorNotFound
	case method == http.MethodPost && path == "/feed/posts":
		// The server looked at the post and said no.
		return fmt.Errorf("%w: status %d", common.ErrorSubmitRejected, status)
	default:
		return fmt.Errorf("%w: status %d", common.ErrorNetwork, status)
	}
}
