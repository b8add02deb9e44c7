package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/feedclient/internal/client/api"
	"github.com/dmitrijs2005/feedclient/internal/client/config"
	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/feedclient/internal/client/services"
	"github.com/dmitrijs2005/feedclient/internal/client/storage"
	"github.com/dmitrijs2005/feedclient/internal/client/uploads"
	"github.com/dmitrijs2005/feedclient/internal/logging"
)

type App struct {
	config *config.Config
	client api.Client
	drafts drafts.Repository
	posts  services.PostService
	feed   services.FeedService
	log    logging.Logger
	reader *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	repos, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIEndpointAddr, c.APIToken)

	uploader, err := uploads.NewS3Uploader(ctx, uploads.S3Config{
		Endpoint:      c.S3Endpoint,
		Region:        c.S3Region,
		Bucket:        c.S3Bucket,
		AccessKey:     c.S3AccessKey,
		SecretKey:     c.S3SecretKey,
		PublicBaseURL: c.S3PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}

	tracker := uploads.NewTracker(uploader, repos.Drafts, log)

	return &App{
		config: c,
		client: apiClient,
		drafts: repos.Drafts,
		posts:  services.NewPostService(repos.Drafts, tracker, apiClient, log),
		feed:   services.NewFeedService(apiClient, c.PageSize, log),
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	go a.consumeEvents(ctx)

	// Pick up a draft left over from a previous run.
	if err := a.posts.Resume(ctx); err != nil {
		a.log.Error(ctx, "failed to resume pending draft", "error", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status summarizes the pending draft for the prompt, or "ready" when
// nothing is in flight.
func (a *App) status() string {
	draft, err := a.drafts.GetPending(context.Background())
	if err != nil {
		return "ready"
	}
	return string(draft.State)
}

// consumeEvents prints lifecycle notifications and splices confirmed posts
// into the feed as they arrive.
func (a *App) consumeEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-a.posts.Events():
			switch e.Kind {
			case services.EventProgress:
				printlnFn(fmt.Sprintf("uploading... %d%%", e.Percent))
			case services.EventPosted:
				a.feed.SpliceConfirmed(e.Post)
				printlnFn(fmt.Sprintf("posted! %q is now at the top of your feed", e.Post.Text))
			case services.EventUploadFailed:
				printlnFn(fmt.Sprintf("upload failed for attachments %v; type 'retry' to try again", e.FailedIndices))
			case services.EventSubmitFailed:
				printlnFn(fmt.Sprintf("could not publish the post (%v); type 'retry' to try again", e.Err))
			}
		}
	}
}

// resolve maps a 1-based feed position to the post currently shown there.
func (a *App) resolve(pos int) (models.PostView, bool) {
	items := a.feed.Items()
	if pos < 1 || pos > len(items) {
		printlnFn("no post at position", pos)
		return models.PostView{}, false
	}
	return items[pos-1], true
}
