package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/idilsaglam/mediafeed/internal/config"
	"github.com/idilsaglam/mediafeed/internal/feed"
	"github.com/idilsaglam/mediafeed/internal/logging"
	"github.com/idilsaglam/mediafeed/internal/metrics"
	"github.com/idilsaglam/mediafeed/internal/model"
	"github.com/idilsaglam/mediafeed/internal/tui"
	"github.com/idilsaglam/mediafeed/internal/ui"
)

// usageError marks errors caused by how the program was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// browseScreen runs the interactive screen; tests swap it out.
var browseScreen = tui.Run

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	app := App(stdout, stderr)
	err := app.Run(append([]string{app.Name}, args...))
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// App builds the command tree.
func App(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  "mediafeed",
		Usage: "A scrollable media feed in your terminal",
		Description: `Browse a feed of generated media posts: like them, pull a fresh batch,
and scroll to load more.

Settings come from mediafeed.toml, then MEDIAFEED_* environment variables,
then flags, e.g.:

--theme => MEDIAFEED_THEME=neon
--log-level => MEDIAFEED_LOG_LEVEL=debug`,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to the TOML config file (default: " + config.DefaultPath + " if present)"},
			&cli.StringFlag{Name: "log-level", Usage: "panic, fatal, error, warn, info, debug or trace"},
			&cli.StringFlag{Name: "log-file", Usage: "append logs to this file"},
			&cli.StringFlag{Name: "theme", Usage: "classic, neon or mono"},
		},
		Commands: []*cli.Command{
			browseCmd(),
			printCmd(),
		},
		Action: browse,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return usageError{err}
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func layoutFlag() cli.Flag {
	return &cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Usage: "double or single"}
}

func browseCmd() *cli.Command {
	return &cli.Command{
		Name:   "browse",
		Usage:  "Open the interactive feed (default)",
		Flags:  []cli.Flag{layoutFlag()},
		Action: browse,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return usageError{err}
		},
	}
}

func printCmd() *cli.Command {
	return &cli.Command{
		Name:  "print",
		Usage: "Print one generated batch and exit",
		Flags: []cli.Flag{
			layoutFlag(),
			&cli.BoolFlag{Name: "json", Usage: "print the items as JSON"},
			&cli.IntFlag{Name: "width", Value: 80, Usage: "output width in cells"},
			&cli.IntSliceFlag{Name: "like", Usage: "like the item at this 1-based index before printing (repeatable)"},
		},
		Action: printFeed,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return usageError{err}
		},
	}
}

// setup loads configuration, applies global flags, validates the result and
// configures logging. Logs go to fallback unless a log file is configured.
func setup(c *cli.Context, fallback io.Writer) (config.Config, func(), error) {
	cfg, err := config.Load(c.Context, c.String("config"))
	if err != nil {
		return config.Config{}, nil, err
	}
	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := c.String("log-file"); v != "" {
		cfg.Log.File = v
	}
	if v := c.String("theme"); v != "" {
		cfg.UI.Theme = v
	}
	if v := c.String("layout"); v != "" {
		cfg.UI.Layout = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, usageError{err}
	}

	closeLog, err := logging.Setup(cfg.Log.Level, cfg.Log.File, fallback)
	if errors.Is(err, logging.ErrLevel) {
		return config.Config{}, nil, usageError{err}
	}
	if err != nil {
		return config.Config{}, nil, err
	}
	ui.SetTheme(cfg.UI.Theme)

	cleanup := func() {
		if err := closeLog(); err != nil {
			ui.Fail(c.App.ErrWriter, "close log: "+err.Error())
		}
	}
	return cfg, cleanup, nil
}

func browse(c *cli.Context) error {
	if c.Args().Present() {
		return usagef("unknown command %q", c.Args().First())
	}
	// The alternate screen owns the terminal, so logs need a file.
	cfg, cleanup, err := setup(c, io.Discard)
	if err != nil {
		return err
	}
	defer cleanup()

	if srv := metrics.StartServer(cfg.Metrics.Addr); srv != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	layout, _ := ui.ParseLayout(cfg.UI.Layout)
	ctrl := feed.NewController(cfg.ControllerOptions())
	defer ctrl.Close()

	log.WithFields(log.Fields{
		"layout": layout,
		"items":  len(ctrl.Items()),
	}).Info("Opening feed")
	return browseScreen(ctrl, tui.Options{
		Layout:            layout,
		LoadMoreThreshold: cfg.Feed.LoadMoreThreshold,
	})
}

func printFeed(c *cli.Context) error {
	width := c.Int("width")
	if width < 24 {
		return usagef("width must be at least 24, got %d", width)
	}
	cfg, cleanup, err := setup(c, c.App.ErrWriter)
	if err != nil {
		return err
	}
	defer cleanup()

	ctrl := feed.NewController(cfg.ControllerOptions())
	defer ctrl.Close()

	likes := c.IntSlice("like")
	for _, n := range likes {
		// out of range indexes are ignored, same as on screen
		if !ctrl.ToggleLike(n - 1) {
			log.WithField("index", n).Warn("No item at index, like ignored")
		}
	}
	items := ctrl.Items()
	if len(likes) > 0 && !c.Bool("json") {
		liked := lo.CountBy(items, func(it model.FeedItem) bool { return it.IsLiked })
		ui.OK(c.App.ErrWriter, fmt.Sprintf("liked %d of %d", liked, len(items)))
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode items: %w", err)
		}
		return nil
	}

	layout, _ := ui.ParseLayout(cfg.UI.Layout)
	fmt.Fprintln(c.App.Writer, renderPanel(items, layout, width))
	return nil
}

func renderPanel(items []model.FeedItem, layout ui.Layout, width int) string {
	t := ui.Current()
	liked := lo.CountBy(items, func(it model.FeedItem) bool { return it.IsLiked })
	header := fmt.Sprintf("%s  %s  %s %s",
		t.Title.Render("Feed"),
		t.Muted.Render("["+layout.String()+"]"),
		t.Liked.Render(t.HeartOn),
		t.Muted.Render(ui.ProgressBar(liked, len(items), 16)),
	)

	// panel border and padding take four cells
	inner := width - 4
	r := ui.NewCardRenderer()
	cw := ui.CardWidth(inner, layout, 1)
	cards := make([]string, 0, len(items))
	for _, it := range items {
		cards = append(cards, r.Render(it, cw, layout, false))
	}

	lines := []string{header, "", ui.Grid(cards, layout.Columns(), 1)}
	lines = append(lines, "", t.Muted.Render("Tip: run `mediafeed` to browse interactively"))
	return ui.Panel(lines)
}
