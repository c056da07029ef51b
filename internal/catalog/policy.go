package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/vmunix/mediacat/internal/events"
)

// AutoAdd is the per-mediatype auto-add setting.
type AutoAdd string

const (
	AutoAddNever         AutoAdd = "never"
	AutoAddAlways        AutoAdd = "always"
	AutoAddWithMetadata  AutoAdd = "with_metadata"
	AutoAddWithEpisodeID AutoAdd = "with_episode_id" // tvshows only
)

// ParseAutoAdd accepts the config spelling of an AutoAdd value.
func ParseAutoAdd(s string) (AutoAdd, error) {
	switch a := AutoAdd(strings.ToLower(strings.TrimSpace(s))); a {
	case AutoAddNever, AutoAddAlways, AutoAddWithMetadata, AutoAddWithEpisodeID:
		return a, nil
	case "":
		return AutoAddNever, nil
	default:
		return "", fmt.Errorf("unknown auto-add mode %q", s)
	}
}

// Action is what happens to a newly created row.
type Action int

const (
	ActionNone Action = iota
	ActionAdd
	ActionAddIfMetadata
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionAddIfMetadata:
		return "add_if_metadata"
	default:
		return "none"
	}
}

// Policy holds the two independent auto-add settings.
type Policy struct {
	Movies  AutoAdd
	TVShows AutoAdd
}

// Decide maps a mediatype to the post-insert action. Movies are promoted
// by Always; episodes by WithEpisodeID. Modes that don't apply to a
// mediatype mean no action.
func (p Policy) Decide(m MediaType) Action {
	switch m {
	case MediaMovie:
		switch p.Movies {
		case AutoAddAlways:
			return ActionAdd
		case AutoAddWithMetadata:
			return ActionAddIfMetadata
		}
	case MediaTVShow:
		switch p.TVShows {
		case AutoAddWithEpisodeID:
			return ActionAdd
		case AutoAddWithMetadata:
			return ActionAddIfMetadata
		}
	}
	return ActionNone
}

// applyPolicy runs the auto-add decision for a freshly staged item and,
// when the library accepts it, marks the row managed.
func (c *Catalog) applyPolicy(ctx context.Context, item Item) error {
	action := c.policy.Decide(item.MediaType())
	if action == ActionNone {
		return nil
	}
	if action == ActionAddIfMetadata {
		ok, err := c.hasMetadata(ctx, item)
		if err != nil {
			c.logger.Warn("metadata lookup failed", "directory", item.Key(), "error", err)
		}
		if !ok {
			c.logger.Debug("auto-add skipped, no metadata", "directory", item.Key())
			return nil
		}
	}
	if c.library == nil {
		c.logger.Debug("auto-add skipped, no library", "directory", item.Key())
		return nil
	}

	if err := c.library.AddToLibrary(ctx, item); err != nil {
		return fmt.Errorf("auto-add %s: %w: %w", item.Key(), ErrLibraryAction, err)
	}
	if err := c.setStatus(ctx, c.store, item.MediaType(), item.Key(), StatusManaged); err != nil {
		return fmt.Errorf("auto-add %s: %w", item.Key(), err)
	}
	setItemStatus(item, StatusManaged)
	c.notify(ctx, &events.ItemStatusChanged{
		BaseEvent: events.NewBaseEvent(events.EventItemStatusChanged, entityOf(item.MediaType()), item.Key()),
		Title:     TitleOf(item),
		NewStatus: string(StatusManaged),
		Auto:      true,
	})
	c.logger.Info("auto-added to library", "directory", item.Key(), "action", action)
	return nil
}

func (c *Catalog) hasMetadata(ctx context.Context, item Item) (bool, error) {
	if c.metadata == nil {
		return false, nil
	}
	return c.metadata.HasMetadata(ctx, item)
}
