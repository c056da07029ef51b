package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediacat/internal/catalog"
	"github.com/vmunix/mediacat/pkg/release"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	stageCmd := &cobra.Command{
		Use:   "stage",
		Short: "Add an item to the catalog as staged",
	}

	var movieTitle string
	var movieYear int
	movieCmd := &cobra.Command{
		Use:   "movie <directory>",
		Short: "Stage a movie (title and year default to the parsed file name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := release.Parse(args[0])
			movie := &catalog.Movie{Directory: args[0], Title: info.Title, Year: info.Year}
			if movieTitle != "" {
				movie.Title = movieTitle
			}
			if cmd.Flags().Changed("year") {
				movie.Year = movieYear
			}
			if movie.Title == "" {
				return errors.New("no title: pass --title")
			}
			return ctx.withApp(cmd, func(a *app) error {
				return stageItem(cmd, ctx, a, movie)
			})
		},
	}
	movieCmd.Flags().StringVar(&movieTitle, "title", "", "Movie title")
	movieCmd.Flags().IntVar(&movieYear, "year", 0, "Release year")

	var show, season, episode, epTitle string
	episodeCmd := &cobra.Command{
		Use:   "episode <directory>",
		Short: "Stage a TV episode (fields default to the parsed file name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep := episodeFromName(args[0])
			if show != "" {
				ep.ShowTitle = show
			}
			if season != "" {
				ep.Season = season
			}
			if episode != "" {
				ep.EpisodeNumber = episode
			}
			if epTitle != "" {
				ep.Title = epTitle
			}
			if ep.ShowTitle == "" || ep.Season == "" || ep.EpisodeNumber == "" {
				return errors.New("show, season and episode are required: pass --show, --season, --episode")
			}
			return ctx.withApp(cmd, func(a *app) error {
				return stageItem(cmd, ctx, a, ep)
			})
		},
	}
	episodeCmd.Flags().StringVar(&show, "show", "", "Show title")
	episodeCmd.Flags().StringVar(&season, "season", "", "Season number")
	episodeCmd.Flags().StringVar(&episode, "episode", "", "Episode number")
	episodeCmd.Flags().StringVar(&epTitle, "title", "", "Episode title")

	stageCmd.AddCommand(movieCmd, episodeCmd)
	return stageCmd
}

func episodeFromName(name string) *catalog.Episode {
	info := release.Parse(name)
	ep := &catalog.Episode{Directory: name, ShowTitle: info.Title, Title: info.EpisodeTitle, Year: info.Year}
	if info.HasEpisode {
		ep.Season = strconv.Itoa(info.Season)
		ep.EpisodeNumber = strconv.Itoa(info.Episode)
	}
	return ep
}

// stageItem refuses items the blocked set keeps out, then inserts item.
func stageItem(cmd *cobra.Command, ctx *commandContext, a *app, item catalog.Item) error {
	c := cmd.Context()
	key, blocked, err := catalog.BlockedBy(c, a.catalog, item)
	if err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("%s %q is blocked", key.Type, key.Value)
	}

	created, err := a.catalog.AddContentItem(c, item)
	if err != nil && !errors.Is(err, catalog.ErrLibraryAction) {
		return err
	}

	if ctx.json() {
		return printJSON(cmd.OutOrStdout(), struct {
			Created bool     `json:"created"`
			Item    itemView `json:"item"`
		}{created, viewOf(item)})
	}
	switch {
	case !created:
		cmd.Printf("Already in catalog: %s\n", describe(item))
	case err != nil:
		cmd.Printf("Staged: %s (auto-add failed: %v)\n", describe(item), err)
	default:
		cmd.Printf("%s: %s\n", statusLabel(item), describe(item))
	}
	return nil
}

func statusLabel(item catalog.Item) string {
	switch v := item.(type) {
	case *catalog.Movie:
		if v.Status == catalog.StatusManaged {
			return "Managed"
		}
	case *catalog.Episode:
		if v.Status == catalog.StatusManaged {
			return "Managed"
		}
	}
	return "Staged"
}

type listFlags struct {
	status    string
	mediaType string
	show      string
	season    int
	order     string
}

func (f *listFlags) register(cmd *cobra.Command, defaultStatus string) {
	cmd.Flags().StringVarP(&f.status, "status", "s", defaultStatus, "Status: staged or managed")
	cmd.Flags().StringVarP(&f.mediaType, "type", "t", "movie", "Mediatype: movie or tvshow")
	cmd.Flags().StringVar(&f.show, "show", "", "Only this show (tvshow)")
	cmd.Flags().IntVar(&f.season, "season", 0, "Only this season (tvshow, needs --show)")
	cmd.Flags().StringVar(&f.order, "order", "", "Ordering: title, show or none (default by type)")
}

// query builds the catalog query the flags describe.
func (f *listFlags) query(cmd *cobra.Command) (catalog.Query, error) {
	status, err := catalog.ParseStatus(f.status)
	if err != nil {
		return catalog.Query{}, err
	}
	m, err := catalog.ParseMediaType(f.mediaType)
	if err != nil {
		return catalog.Query{}, err
	}

	q := catalog.Query{Status: status, MediaType: m, ShowTitle: f.show}
	if cmd.Flags().Changed("season") {
		if f.show == "" {
			return catalog.Query{}, fmt.Errorf("%w: --season needs --show", catalog.ErrInvalidQuery)
		}
		season := f.season
		q.Season = &season
	}

	switch f.order {
	case "":
		q.Order = catalog.OrderByTitle
		if m == catalog.MediaTVShow {
			q.Order = catalog.OrderByShowTitle
		}
	case "title":
		q.Order = catalog.OrderByTitle
	case "show":
		q.Order = catalog.OrderByShowTitle
	case "none":
		q.Order = catalog.OrderNone
	default:
		return catalog.Query{}, fmt.Errorf("%w: unknown order %q", catalog.ErrInvalidQuery, f.order)
	}
	if q.Order != catalog.OrderByShowTitle && (q.ShowTitle != "" || q.Season != nil) {
		q.Order = catalog.OrderByShowTitle
	}
	return q, nil
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.query(cmd)
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(a *app) error {
				items, err := a.catalog.Items(cmd.Context(), q)
				if err != nil {
					return err
				}
				if ctx.json() {
					return printJSON(cmd.OutOrStdout(), viewsOf(items))
				}
				if len(items) == 0 {
					cmd.Printf("No %s %s items\n", q.Status, q.MediaType)
					return nil
				}
				printItems(cmd, q.MediaType, items)
				return nil
			})
		},
	}
	flags.register(cmd, string(catalog.StatusStaged))
	return cmd
}

func printItems(cmd *cobra.Command, m catalog.MediaType, items []catalog.Item) {
	if m == catalog.MediaMovie {
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			mv, ok := item.(*catalog.Movie)
			if !ok {
				continue
			}
			year := ""
			if mv.Year > 0 {
				year = strconv.Itoa(mv.Year)
			}
			rows = append(rows, []string{mv.Title, year, mv.Directory})
		}
		renderTable(cmd.OutOrStdout(), []string{"TITLE", "YEAR", "DIRECTORY"}, rows)
		return
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		ep, ok := item.(*catalog.Episode)
		if !ok {
			continue
		}
		rows = append(rows, []string{ep.ShowTitle, ep.EpisodeID(), ep.Title, ep.Directory})
	}
	renderTable(cmd.OutOrStdout(), []string{"SHOW", "EPISODE", "TITLE", "DIRECTORY"}, rows)
}

func newShowsCommand(ctx *commandContext) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "shows",
		Short: "List show titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := catalog.ParseStatus(status)
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(a *app) error {
				titles, err := a.catalog.GetAllShowTitles(cmd.Context(), st)
				if err != nil {
					return err
				}
				if ctx.json() {
					return printJSON(cmd.OutOrStdout(), titles)
				}
				for _, t := range titles {
					cmd.Println(t)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", string(catalog.StatusStaged), "Status: staged or managed")
	return cmd
}

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "seasons <show>",
		Short: "List the seasons of a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := catalog.ParseStatus(status)
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(a *app) error {
				items, err := a.catalog.Items(cmd.Context(), catalog.Query{
					Status: st, MediaType: catalog.MediaTVShow, Order: catalog.OrderBySeason, ShowTitle: args[0],
				})
				if err != nil {
					return err
				}
				seasons := make([]int, 0, len(items))
				for _, item := range items {
					if s, ok := item.(catalog.Season); ok {
						seasons = append(seasons, int(s))
					}
				}
				if ctx.json() {
					return printJSON(cmd.OutOrStdout(), seasons)
				}
				for _, s := range seasons {
					cmd.Printf("Season %d\n", s)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", string(catalog.StatusStaged), "Status: staged or managed")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var mediaType string
	cmd := &cobra.Command{
		Use:   "show <directory>",
		Short: "Show one catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				item, err := lookupItem(cmd.Context(), a.catalog, mediaType, args[0])
				if err != nil {
					return err
				}
				v := viewOf(item)
				if ctx.json() {
					return printJSON(cmd.OutOrStdout(), v)
				}
				cmd.Printf("Type:      %s\n", v.Type)
				cmd.Printf("Title:     %s\n", describe(item))
				cmd.Printf("Status:    %s\n", v.Status)
				cmd.Printf("Directory: %s\n", v.Directory)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&mediaType, "type", "t", "", "Mediatype: movie or tvshow (default: try both)")
	return cmd
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var mediaType string
	cmd := &cobra.Command{
		Use:   "rename <directory> <title>",
		Short: "Change the title of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				item, err := lookupItem(cmd.Context(), a.catalog, mediaType, args[0])
				if err != nil {
					return err
				}
				if err := a.catalog.UpdateField(cmd.Context(), item.MediaType(), item.Key(), catalog.FieldTitle, args[1]); err != nil {
					return err
				}
				cmd.Printf("Renamed: %s\n", args[1])
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&mediaType, "type", "t", "", "Mediatype: movie or tvshow (default: try both)")
	return cmd
}

// lookupItem loads the item at directory, trying movies then episodes
// when no mediatype is given.
func lookupItem(ctx context.Context, c *catalog.Catalog, mediaType, directory string) (catalog.Item, error) {
	types := []catalog.MediaType{catalog.MediaMovie, catalog.MediaTVShow}
	if mediaType != "" {
		m, err := catalog.ParseMediaType(mediaType)
		if err != nil {
			return nil, err
		}
		types = []catalog.MediaType{m}
	}
	for _, m := range types {
		item, err := c.GetContentItem(ctx, m, directory)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", directory, catalog.ErrNotFound)
}
