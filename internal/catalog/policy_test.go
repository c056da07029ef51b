package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/mediacat/internal/catalog"
	"github.com/vmunix/mediacat/internal/catalog/mocks"
)

func TestPolicy_Decide(t *testing.T) {
	modes := []catalog.AutoAdd{
		catalog.AutoAddNever, catalog.AutoAddAlways, catalog.AutoAddWithMetadata, catalog.AutoAddWithEpisodeID,
	}
	want := map[catalog.MediaType][]catalog.Action{
		catalog.MediaMovie:  {catalog.ActionNone, catalog.ActionAdd, catalog.ActionAddIfMetadata, catalog.ActionNone},
		catalog.MediaTVShow: {catalog.ActionNone, catalog.ActionNone, catalog.ActionAddIfMetadata, catalog.ActionAdd},
	}
	for m, actions := range want {
		for i, mode := range modes {
			p := catalog.Policy{Movies: mode, TVShows: mode}
			assert.Equal(t, actions[i], p.Decide(m), "%s with %s", m, mode)
		}
	}
	assert.Equal(t, catalog.ActionNone, catalog.Policy{Movies: catalog.AutoAddAlways}.Decide(catalog.MediaMusic))
}

func TestParseAutoAdd(t *testing.T) {
	a, err := catalog.ParseAutoAdd(" With_Metadata ")
	require.NoError(t, err)
	assert.Equal(t, catalog.AutoAddWithMetadata, a)

	a, err = catalog.ParseAutoAdd("")
	require.NoError(t, err)
	assert.Equal(t, catalog.AutoAddNever, a)

	_, err = catalog.ParseAutoAdd("sometimes")
	assert.Error(t, err)
}

func TestAddContentItem_PolicyMatrix(t *testing.T) {
	tests := []struct {
		name      string
		item      func() catalog.Item
		mode      catalog.AutoAdd
		metadata  bool // HasMetadata is consulted
		wantAdded bool
	}{
		{"movie never", movieItem, catalog.AutoAddNever, false, false},
		{"movie always", movieItem, catalog.AutoAddAlways, false, true},
		{"movie with metadata", movieItem, catalog.AutoAddWithMetadata, true, true},
		{"movie with episode id", movieItem, catalog.AutoAddWithEpisodeID, false, false},
		{"tvshow never", episodeItem, catalog.AutoAddNever, false, false},
		{"tvshow always", episodeItem, catalog.AutoAddAlways, false, false},
		{"tvshow with metadata", episodeItem, catalog.AutoAddWithMetadata, true, true},
		{"tvshow with episode id", episodeItem, catalog.AutoAddWithEpisodeID, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			library := mocks.NewMockLibraryAction(ctrl)
			resolver := mocks.NewMockMetadataResolver(ctrl)

			c := newTestCatalog(t, catalog.Policy{Movies: tt.mode, TVShows: tt.mode})
			c.SetLibrary(library)
			c.SetMetadata(resolver)

			if tt.metadata {
				resolver.EXPECT().HasMetadata(gomock.Any(), gomock.Any()).Return(true, nil)
			}
			if tt.wantAdded {
				library.EXPECT().AddToLibrary(gomock.Any(), gomock.Any()).Return(nil)
			}

			item := tt.item()
			created, err := c.AddContentItem(context.Background(), item)
			require.NoError(t, err)
			assert.True(t, created)

			want := catalog.StatusStaged
			if tt.wantAdded {
				want = catalog.StatusManaged
			}
			got, err := c.GetContentItem(context.Background(), item.MediaType(), item.Key())
			require.NoError(t, err)
			assert.Equal(t, want, statusOf(got))
		})
	}
}

func TestAddContentItem_NoMetadataSkipsAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	library := mocks.NewMockLibraryAction(ctrl)
	resolver := mocks.NewMockMetadataResolver(ctrl)

	c := newTestCatalog(t, catalog.Policy{Movies: catalog.AutoAddWithMetadata})
	c.SetLibrary(library)
	c.SetMetadata(resolver)

	resolver.EXPECT().HasMetadata(gomock.Any(), gomock.Any()).Return(false, nil)

	created, err := c.AddContentItem(context.Background(), movieItem())
	require.NoError(t, err)
	assert.True(t, created)
}

func TestAddContentItem_ExistingRowSkipsPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	library := mocks.NewMockLibraryAction(ctrl)

	c := newTestCatalog(t, catalog.Policy{Movies: catalog.AutoAddAlways})
	c.SetLibrary(library)

	library.EXPECT().AddToLibrary(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := c.AddContentItem(context.Background(), movieItem())
	require.NoError(t, err)
	created, err := c.AddContentItem(context.Background(), movieItem())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAddContentItem_LibraryFailureKeepsRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	library := mocks.NewMockLibraryAction(ctrl)

	c := newTestCatalog(t, catalog.Policy{TVShows: catalog.AutoAddWithEpisodeID})
	c.SetLibrary(library)

	boom := errors.New("host refused")
	library.EXPECT().AddToLibrary(gomock.Any(), gomock.Any()).Return(boom)

	item := episodeItem()
	created, err := c.AddContentItem(context.Background(), item)
	assert.True(t, created)
	assert.ErrorIs(t, err, catalog.ErrLibraryAction)
	assert.ErrorIs(t, err, boom)

	got, err := c.GetContentItem(context.Background(), catalog.MediaTVShow, item.Key())
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusStaged, statusOf(got))
}

func TestAddContentItem_FailingNotifierTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)

	c := newTestCatalog(t, catalog.Policy{})
	c.SetNotifier(notifier)

	notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("bus down")).AnyTimes()

	created, err := c.AddContentItem(context.Background(), movieItem())
	require.NoError(t, err)
	assert.True(t, created)
}

func movieItem() catalog.Item {
	return &catalog.Movie{Directory: "/m/heat.strm", Title: "Heat", Year: 1995}
}

func episodeItem() catalog.Item {
	return episode("Severance", "1", "1")
}

func statusOf(item catalog.Item) catalog.Status {
	switch v := item.(type) {
	case *catalog.Movie:
		return v.Status
	case *catalog.Episode:
		return v.Status
	}
	return ""
}
