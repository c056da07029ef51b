package hostlib

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/mediacat/internal/catalog"
	"github.com/vmunix/mediacat/internal/events"
)

func TestBridge_PublishesRequests(t *testing.T) {
	bus := events.NewBus(nil, nil)
	defer bus.Close()
	adds := bus.Subscribe(events.EventLibraryAddRequested, 1)
	removes := bus.Subscribe(events.EventLibraryRemoveRequested, 1)

	b := NewBridge(bus, nil)
	ep := &catalog.Episode{Directory: "/tv/dark/s01e02.strm", Title: "Lies", ShowTitle: "Dark", Season: "1", EpisodeNumber: "2"}

	require.NoError(t, b.AddToLibrary(context.Background(), ep))
	require.NoError(t, b.RemoveFromLibrary(context.Background(), &catalog.Movie{Directory: "/m/heat.strm", Title: "Heat"}))

	select {
	case e := <-adds:
		req, ok := e.(*events.LibraryRequest)
		require.True(t, ok)
		assert.Equal(t, "Dark", req.ShowTitle)
		assert.Equal(t, "2", req.Episode)
		assert.Equal(t, events.EntityTVShow, req.EntityType())
		assert.Equal(t, ep.Directory, req.EntityKey())
	case <-time.After(time.Second):
		t.Fatal("no add request")
	}

	select {
	case e := <-removes:
		assert.Equal(t, "/m/heat.strm", e.EntityKey())
		assert.Equal(t, events.EntityMovie, e.EntityType())
	case <-time.After(time.Second):
		t.Fatal("no remove request")
	}
}

func TestBridge_RejectsProjection(t *testing.T) {
	b := NewBridge(events.NewBus(nil, nil), nil)
	err := b.AddToLibrary(context.Background(), catalog.Season(1))
	assert.ErrorIs(t, err, catalog.ErrInvalidItem)
}

type failingBus struct{}

func (failingBus) Publish(context.Context, events.Event) error { return errors.New("closed") }

func TestBridge_PublishError(t *testing.T) {
	b := NewBridge(failingBus{}, nil)
	err := b.AddToLibrary(context.Background(), &catalog.Movie{Directory: "/m/a", Title: "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish library.add_requested")
}
