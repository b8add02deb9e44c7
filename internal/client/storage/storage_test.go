package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_MigratesAndOpensRepositories(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.DB.Close() })

	id, err := repos.Drafts.Create(ctx, &models.DraftPost{
		Text: "hello", State: models.DraftStateDrafted, CreatedAt: 1700000000,
		Attachments: []models.Attachment{{Index: 0, LocalURI: "file:///a.jpg", TotalBytes: 10}},
	})
	require.NoError(t, err)

	got, err := repos.Drafts.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Text)
	require.Len(t, got.Attachments, 1)

	// Migrations are idempotent on an up-to-date database.
	require.NoError(t, RunMigrations(ctx, repos.DB))
}
