package catalog_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/mediacat/internal/catalog"
	"github.com/vmunix/mediacat/internal/storage"
)

func newTestCatalog(t *testing.T, policy catalog.Policy) *catalog.Catalog {
	t.Helper()
	store, err := storage.Open(context.Background(), storage.Options{
		Path: filepath.Join(t.TempDir(), "managed.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return catalog.New(store, policy, nil)
}

func ptr[T any](v T) *T {
	return &v
}

func episode(show, season, number string) *catalog.Episode {
	return &catalog.Episode{
		Directory:     fmt.Sprintf("/tv/%s/S%sE%s.strm", show, season, number),
		Title:         fmt.Sprintf("Episode %s", number),
		ShowTitle:     show,
		Season:        season,
		EpisodeNumber: number,
	}
}

func stage(t *testing.T, c *catalog.Catalog, items ...catalog.Item) {
	t.Helper()
	for _, item := range items {
		created, err := c.AddContentItem(context.Background(), item)
		require.NoError(t, err)
		require.True(t, created, "stage %s", item.Key())
	}
}

func collect(t *testing.T, c *catalog.Catalog, q catalog.Query) []catalog.Item {
	t.Helper()
	items, err := c.Items(context.Background(), q)
	require.NoError(t, err)
	return items
}

func TestAddContentItem_Idempotent(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()

	movie := &catalog.Movie{Directory: "/m/heat.strm", Title: "Heat", Year: 1995}
	created, err := c.AddContentItem(ctx, movie)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, catalog.StatusStaged, movie.Status)

	require.NoError(t, c.SetStatus(ctx, movie, catalog.StatusManaged))

	again := &catalog.Movie{Directory: "/m/heat.strm", Title: "Heat (Director's Cut)", Year: 1995}
	created, err = c.AddContentItem(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := c.GetContentItem(ctx, catalog.MediaMovie, "/m/heat.strm")
	require.NoError(t, err)
	assert.Equal(t, &catalog.Movie{Directory: "/m/heat.strm", Title: "Heat", Year: 1995, Status: catalog.StatusManaged}, got)

	assert.Len(t, collect(t, c, catalog.Query{Status: catalog.StatusManaged, MediaType: catalog.MediaMovie}), 1)
	assert.Empty(t, collect(t, c, catalog.Query{Status: catalog.StatusStaged, MediaType: catalog.MediaMovie}))
}

func TestAddContentItem_InvalidItem(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})

	_, err := c.AddContentItem(context.Background(), &catalog.Movie{Title: "No Path"})
	assert.ErrorIs(t, err, catalog.ErrInvalidItem)

	_, err = c.AddContentItem(context.Background(), catalog.Season(2))
	assert.ErrorIs(t, err, catalog.ErrInvalidItem)
}

func TestRoundTrip(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()

	movie := &catalog.Movie{Directory: "/m/amélie.strm", Title: "Le Fabuleux Destin d'Amélie Poulain", Year: 2001}
	ep := &catalog.Episode{
		Directory: "/tv/dark/s01e01.strm", Title: "Geheimnisse", Year: 2017,
		ShowTitle: "Dark", Season: "1", EpisodeNumber: "1",
	}
	stage(t, c, movie, ep)

	got, err := c.GetContentItem(ctx, catalog.MediaMovie, movie.Directory)
	require.NoError(t, err)
	assert.Equal(t, movie, got)

	items := collect(t, c, catalog.Query{Status: catalog.StatusStaged, MediaType: catalog.MediaTVShow})
	require.Len(t, items, 1)
	assert.Equal(t, ep, items[0])
}

func TestGetContentItem_NotFound(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})

	_, err := c.GetContentItem(context.Background(), catalog.MediaTVShow, "/nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestHasContentItem(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()
	stage(t, c, &catalog.Movie{Directory: "/m/alien.strm", Title: "Alien", Year: 1979})

	ok, err := c.HasContentItem(ctx, catalog.MediaMovie, "/m/alien.strm", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.HasContentItem(ctx, catalog.MediaMovie, "/m/alien.strm", catalog.StatusManaged)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.HasContentItem(ctx, catalog.MediaTVShow, "/m/alien.strm", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuery_NumericEpisodeOrdering(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	stage(t, c,
		episode("Breaking Bad", "2", "10"),
		episode("Breaking Bad", "10", "1"),
		episode("Breaking Bad", "2", "2"),
		episode("Breaking Bad", "1", "7"),
	)

	items := collect(t, c, catalog.Query{
		Status: catalog.StatusStaged, MediaType: catalog.MediaTVShow,
		Order: catalog.OrderByShowTitle, ShowTitle: "Breaking Bad",
	})
	var ids []string
	for _, item := range items {
		ids = append(ids, item.(*catalog.Episode).EpisodeID())
	}
	assert.Equal(t, []string{"S01E07", "S02E02", "S02E10", "S10E01"}, ids)
}

func TestQuery_ByShowTitleGroupsShows(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	stage(t, c,
		episode("The Wire", "1", "1"),
		episode("Breaking Bad", "1", "2"),
		episode("Breaking Bad", "1", "1"),
	)

	items := collect(t, c, catalog.Query{
		Status: catalog.StatusStaged, MediaType: catalog.MediaTVShow, Order: catalog.OrderByShowTitle,
	})
	require.Len(t, items, 3)
	assert.Equal(t, "Breaking Bad", items[0].(*catalog.Episode).ShowTitle)
	assert.Equal(t, "1", items[0].(*catalog.Episode).EpisodeNumber)
	assert.Equal(t, "The Wire", items[2].(*catalog.Episode).ShowTitle)
}

func TestQuery_SeasonFilter(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	stage(t, c,
		episode("Dark", "1", "1"),
		episode("Dark", "2", "1"),
		episode("Dark", "2", "2"),
	)

	items := collect(t, c, catalog.Query{
		Status: catalog.StatusStaged, MediaType: catalog.MediaTVShow,
		Order: catalog.OrderByShowTitle, ShowTitle: "Dark", Season: ptr(2),
	})
	assert.Len(t, items, 2)
}

func TestQuery_BySeasonDistinct(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	stage(t, c,
		episode("Dark", "10", "1"),
		episode("Dark", "2", "1"),
		episode("Dark", "2", "2"),
		episode("Dark", "1", "1"),
		episode("Other", "5", "1"),
	)

	items := collect(t, c, catalog.Query{
		Status: catalog.StatusStaged, MediaType: catalog.MediaTVShow,
		Order: catalog.OrderBySeason, ShowTitle: "Dark",
	})
	assert.Equal(t, []catalog.Item{catalog.Season(1), catalog.Season(2), catalog.Season(10)}, items)
}

func TestQuery_ByTitle(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	stage(t, c,
		&catalog.Movie{Directory: "/m/3", Title: "Zodiac"},
		&catalog.Movie{Directory: "/m/1", Title: "Alien"},
		&catalog.Movie{Directory: "/m/2", Title: "Heat"},
	)

	items := collect(t, c, catalog.Query{Status: catalog.StatusStaged, MediaType: catalog.MediaMovie, Order: catalog.OrderByTitle})
	var titles []string
	for _, item := range items {
		titles = append(titles, catalog.TitleOf(item))
	}
	assert.Equal(t, []string{"Alien", "Heat", "Zodiac"}, titles)
}

func TestCursor_SinglePass(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()
	stage(t, c, &catalog.Movie{Directory: "/m/1", Title: "Alien"}, &catalog.Movie{Directory: "/m/2", Title: "Heat"})

	cur, err := c.QueryContentItems(ctx, catalog.Query{Status: catalog.StatusStaged, MediaType: catalog.MediaMovie})
	require.NoError(t, err)

	count := 0
	for cur.Next() {
		assert.NotNil(t, cur.Item())
		count++
	}
	require.NoError(t, cur.Err())
	assert.Equal(t, 2, count)

	assert.False(t, cur.Next(), "exhausted cursor must not restart")
	assert.NoError(t, cur.Close())
}

func TestCursor_CloseEarly(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()
	stage(t, c, &catalog.Movie{Directory: "/m/1", Title: "Alien"}, &catalog.Movie{Directory: "/m/2", Title: "Heat"})

	cur, err := c.QueryContentItems(ctx, catalog.Query{Status: catalog.StatusStaged, MediaType: catalog.MediaMovie})
	require.NoError(t, err)
	for range cur.All() {
		break
	}
	assert.False(t, cur.Next())
	assert.NoError(t, cur.Close())
}

func TestGetAllShowTitles_ArticleInsensitive(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	stage(t, c,
		episode("The Wire", "1", "1"),
		episode("Breaking Bad", "1", "1"),
		episode("Breaking Bad", "1", "2"),
		episode("the office", "1", "1"),
		episode("Theodosia", "1", "1"),
	)

	titles, err := c.GetAllShowTitles(context.Background(), catalog.StatusStaged)
	require.NoError(t, err)
	assert.Equal(t, []string{"Breaking Bad", "the office", "Theodosia", "The Wire"}, titles)
}

func TestGetAllShowTitles_InvalidStatus(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	_, err := c.GetAllShowTitles(context.Background(), "archived")
	assert.ErrorIs(t, err, catalog.ErrInvalidStatus)
}

func TestUpdateField(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()
	stage(t, c, &catalog.Movie{Directory: "/m/heat.strm", Title: "heat", Year: 1995})

	require.NoError(t, c.UpdateField(ctx, catalog.MediaMovie, "/m/heat.strm", catalog.FieldTitle, "Heat"))
	require.NoError(t, c.UpdateField(ctx, catalog.MediaMovie, "/m/heat.strm", catalog.FieldStatus, "managed"))

	got, err := c.GetContentItem(ctx, catalog.MediaMovie, "/m/heat.strm")
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.(*catalog.Movie).Title)
	assert.Equal(t, catalog.StatusManaged, got.(*catalog.Movie).Status)

	// Unknown directory is a no-op.
	assert.NoError(t, c.UpdateField(ctx, catalog.MediaMovie, "/m/missing", catalog.FieldTitle, "X"))

	assert.ErrorIs(t, c.UpdateField(ctx, catalog.MediaMovie, "/m/heat.strm", catalog.FieldStatus, "archived"), catalog.ErrInvalidStatus)
	assert.ErrorIs(t, c.UpdateField(ctx, catalog.MediaMovie, "/m/heat.strm", "year", "1996"), catalog.ErrInvalidField)
	assert.ErrorIs(t, c.UpdateField(ctx, catalog.MediaMusic, "/m/heat.strm", catalog.FieldTitle, "X"), catalog.ErrUnsupportedMediaType)
}

func TestRemoveContent_DirectoryWins(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()
	row1, row2 := episode("Foo", "2", "1"), episode("Foo", "2", "2")
	stage(t, c, row1, row2)

	n, err := c.RemoveContent(ctx, catalog.RemoveRequest{
		MediaType: catalog.MediaTVShow,
		Directory: row1.Directory,
		ShowTitle: "Foo",
		Season:    ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items := collect(t, c, catalog.Query{Status: catalog.StatusStaged, MediaType: catalog.MediaTVShow})
	require.Len(t, items, 1)
	assert.Equal(t, row2.Directory, items[0].Key())
}

func TestRemoveContent_Modes(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()
	stage(t, c,
		episode("Foo", "1", "1"),
		episode("Foo", "2", "1"),
		episode("Foo", "2", "2"),
		episode("Bar", "1", "1"),
		&catalog.Movie{Directory: "/m/heat.strm", Title: "Heat"},
	)

	n, err := c.RemoveSeason(ctx, catalog.StatusStaged, "Foo", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = c.RemoveShow(ctx, catalog.StatusManaged, "Foo")
	require.NoError(t, err)
	assert.Zero(t, n, "status filter applies to show removal")

	n, err = c.RemoveShow(ctx, catalog.StatusStaged, "Foo")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.RemoveAll(ctx, catalog.StatusStaged, catalog.MediaTVShow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Movies are a separate set.
	ok, err := c.HasContentItem(ctx, catalog.MediaMovie, "/m/heat.strm", catalog.StatusStaged)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = c.RemoveContent(ctx, catalog.RemoveRequest{MediaType: catalog.MediaMovie, Directory: "/m/missing"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRemoveContent_Validation(t *testing.T) {
	c := newTestCatalog(t, catalog.Policy{})
	ctx := context.Background()

	_, err := c.RemoveContent(ctx, catalog.RemoveRequest{MediaType: catalog.MediaTVShow})
	assert.ErrorIs(t, err, catalog.ErrInvalidStatus)

	_, err = c.RemoveContent(ctx, catalog.RemoveRequest{MediaType: catalog.MediaTVShow, Status: catalog.StatusStaged, Season: ptr(1)})
	assert.ErrorIs(t, err, catalog.ErrInvalidQuery)

	_, err = c.RemoveContent(ctx, catalog.RemoveRequest{MediaType: catalog.MediaMovie, Status: catalog.StatusStaged, ShowTitle: "Foo"})
	assert.ErrorIs(t, err, catalog.ErrInvalidQuery)

	_, err = c.RemoveContent(ctx, catalog.RemoveRequest{MediaType: catalog.MediaMusic, Status: catalog.StatusStaged})
	assert.ErrorIs(t, err, catalog.ErrUnsupportedMediaType)
}
