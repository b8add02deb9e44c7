package feed

import (
	"testing"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/common"
	"github.com/stretchr/testify/require"
)

func post(id string, likes int) models.PostView {
	return models.PostView{ID: id, LikesCount: likes, MenuItems: models.DefaultMenuItems(false)}
}

func ids(items []models.PostView) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestReplace_DiscardsPriorContent(t *testing.T) {
	l := NewList()
	l.Replace([]models.PostView{post("A", 0), post("B", 0), post("C", 0)})

	// Pull-to-refresh: the reconciled list is exactly the new page.
	d := l.Replace([]models.PostView{post("C", 0), post("B", 0), post("D", 0)})
	require.Equal(t, DeltaReset, d.Op)
	require.Equal(t, []string{"C", "B", "D"}, ids(l.Items()))
}

func TestAppendPage_DropsDuplicateIDs(t *testing.T) {
	l := NewList()
	l.Replace([]models.PostView{post("A", 0), post("B", 0)})

	deltas := l.AppendPage([]models.PostView{post("B", 0), post("C", 0), post("C", 0), post("D", 0)})

	require.Len(t, deltas, 2)
	require.Equal(t, []string{"A", "B", "C", "D"}, ids(l.Items()))
	require.Equal(t, DeltaInsert, deltas[0].Op)
	require.Equal(t, 2, deltas[0].Index)
	require.Equal(t, 3, deltas[1].Index)
}

func TestSpliceConfirmed_InsertsAtTop(t *testing.T) {
	l := NewList()
	l.Replace([]models.PostView{post("A", 0)})

	d := l.SpliceConfirmed(post("NEW", 0))
	require.Equal(t, DeltaInsert, d.Op)
	require.Zero(t, d.Index)
	require.Equal(t, []string{"NEW", "A"}, ids(l.Items()))

	// A duplicate confirmation updates in place instead of doubling the post.
	d = l.SpliceConfirmed(post("NEW", 3))
	require.Equal(t, DeltaUpdate, d.Op)
	require.Zero(t, d.Index)
	require.Equal(t, []string{"NEW", "A"}, ids(l.Items()))
	require.Equal(t, 3, l.Items()[0].LikesCount)
}

func TestApplyOptimistic_ThenRollback_RoundTrips(t *testing.T) {
	l := NewList()
	l.Replace([]models.PostView{post("P", 5)})

	_, before, err := l.Get("P")
	require.NoError(t, err)

	d, err := l.ApplyOptimistic("P", func(p models.PostView) models.PostView {
		return p.WithLiked(true, p.LikesCount+1)
	})
	require.NoError(t, err)
	require.Equal(t, DeltaUpdate, d.Op)
	require.True(t, d.Item.IsLiked)
	require.Equal(t, 6, d.Item.LikesCount)

	// The network call failed: undo the like and restore the count.
	d, err = l.Rollback("P", func(p models.PostView) models.PostView {
		return p.WithLiked(false, p.LikesCount-1)
	})
	require.NoError(t, err)

	got := d.Item.WithoutTransientFlags()
	require.Equal(t, before, got, "rollback must restore the pre-update value")
	require.Equal(t, 5, got.LikesCount)
	require.False(t, got.IsLiked)
}

func TestApplyOptimistic_NotFoundIsReported(t *testing.T) {
	l := NewList()
	l.Replace([]models.PostView{post("A", 0)})

	_, err := l.ApplyOptimistic("gone", func(p models.PostView) models.PostView { return p })
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRemove_ReturnsIndexedDelta(t *testing.T) {
	l := NewList()
	l.Replace([]models.PostView{post("A", 0), post("B", 0), post("C", 0)})

	d, err := l.Remove("B")
	require.NoError(t, err)
	require.Equal(t, DeltaRemove, d.Op)
	require.Equal(t, 1, d.Index)
	require.Equal(t, []string{"A", "C"}, ids(l.Items()))

	_, err = l.Remove("B")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClearTransientFlags(t *testing.T) {
	l := NewList()
	l.Replace([]models.PostView{post("A", 1)})

	_, err := l.ApplyOptimistic("A", func(p models.PostView) models.PostView {
		return p.WithLiked(true, 2)
	})
	require.NoError(t, err)

	d, err := l.ClearTransientFlags("A")
	require.NoError(t, err)
	require.False(t, d.Item.FromPostLiked)
	require.True(t, d.Item.IsLiked)
}

func TestPinToggle_DoesNotResortList(t *testing.T) {
	l := NewList()
	l.Replace([]models.PostView{post("A", 0), post("B", 0)})

	d, err := l.ApplyOptimistic("B", func(p models.PostView) models.PostView {
		return p.WithPinned(true)
	})
	require.NoError(t, err)
	require.Equal(t, 1, d.Index, "pinning is a local flag flip, not a resort")
	require.Equal(t, []string{"A", "B"}, ids(l.Items()))
	require.Equal(t, models.MenuItemUnpin, d.Item.MenuItems[0].Title)
}
