package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"

	"github.com/idilsaglam/mediafeed/internal/feed"
)

// DefaultPath is where the config file is looked up when no path is given.
const DefaultPath = "mediafeed.toml"

// EnvPrefix prefixes every environment override, e.g. MEDIAFEED_THEME.
const EnvPrefix = "MEDIAFEED_"

// Config is the whole program configuration. File values are loaded first,
// environment variables win over them.
type Config struct {
	Feed    FeedConfig    `toml:"feed"`
	UI      UIConfig      `toml:"ui"`
	Metrics MetricsConfig `toml:"metrics"`
	Log     LogConfig     `toml:"log"`
}

type FeedConfig struct {
	RefreshDelay  time.Duration `toml:"refresh_delay" env:"REFRESH_DELAY, overwrite"`
	LoadMoreDelay time.Duration `toml:"load_more_delay" env:"LOAD_MORE_DELAY, overwrite"`
	InitialBatch  int           `toml:"initial_batch" env:"INITIAL_BATCH, overwrite"`
	PageSize      int           `toml:"page_size" env:"PAGE_SIZE, overwrite"`
	RefreshPolicy string        `toml:"refresh_policy" env:"REFRESH_POLICY, overwrite"`
	// Items from the end of the list at which scrolling asks for more.
	LoadMoreThreshold int      `toml:"load_more_threshold" env:"LOAD_MORE_THRESHOLD, overwrite"`
	ImageBaseURL      string   `toml:"image_base_url" env:"IMAGE_BASE_URL, overwrite"`
	Titles            []string `toml:"titles"`
	Usernames         []string `toml:"usernames"`
}

type UIConfig struct {
	Theme  string `toml:"theme" env:"THEME, overwrite"`   // classic | neon | mono
	Layout string `toml:"layout" env:"LAYOUT, overwrite"` // double | single
}

type MetricsConfig struct {
	Addr string `toml:"addr" env:"METRICS_ADDR, overwrite"` // empty disables the endpoint
}

type LogConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL, overwrite"`
	File  string `toml:"file" env:"LOG_FILE, overwrite"`
}

// Default returns the reference behavior.
func Default() Config {
	return Config{
		Feed: FeedConfig{
			RefreshDelay:      feed.DefaultRefreshDelay,
			LoadMoreDelay:     feed.DefaultLoadMoreDelay,
			InitialBatch:      feed.DefaultInitialBatch,
			PageSize:          feed.DefaultPageSize,
			RefreshPolicy:     string(feed.RefreshRestart),
			LoadMoreThreshold: 5,
			ImageBaseURL:      feed.DefaultImageBaseURL,
		},
		UI:  UIConfig{Theme: "classic", Layout: "double"},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the TOML file at path on top of Default, then applies
// environment overrides. A missing file is fine when it is the default path.
// The result is not validated: callers apply their own overrides first and
// then call Validate.
func Load(ctx context.Context, path string) (Config, error) {
	return load(ctx, path, envconfig.OsLookuper())
}

func load(ctx context.Context, path string, lookuper envconfig.Lookuper) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return Config{}, fmt.Errorf("env config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the program cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Feed.RefreshDelay <= 0 {
		errs = append(errs, fmt.Errorf("feed.refresh_delay must be positive, got %s", c.Feed.RefreshDelay))
	}
	if c.Feed.LoadMoreDelay <= 0 {
		errs = append(errs, fmt.Errorf("feed.load_more_delay must be positive, got %s", c.Feed.LoadMoreDelay))
	}
	if c.Feed.InitialBatch <= 0 {
		errs = append(errs, fmt.Errorf("feed.initial_batch must be positive, got %d", c.Feed.InitialBatch))
	}
	if c.Feed.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("feed.page_size must be positive, got %d", c.Feed.PageSize))
	}
	if c.Feed.LoadMoreThreshold < 0 {
		errs = append(errs, fmt.Errorf("feed.load_more_threshold must not be negative, got %d", c.Feed.LoadMoreThreshold))
	}
	if _, err := feed.ParseRefreshPolicy(c.Feed.RefreshPolicy); err != nil {
		errs = append(errs, fmt.Errorf("feed.refresh_policy: %w", err))
	}
	switch c.UI.Theme {
	case "classic", "neon", "mono":
	default:
		errs = append(errs, fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme))
	}
	switch c.UI.Layout {
	case "double", "single":
	default:
		errs = append(errs, fmt.Errorf("ui.layout: unknown layout %q", c.UI.Layout))
	}
	return errors.Join(errs...)
}

// ControllerOptions turns the feed section into controller options.
func (c Config) ControllerOptions() feed.Options {
	policy, _ := feed.ParseRefreshPolicy(c.Feed.RefreshPolicy)
	return feed.Options{
		Generator: feed.NewGenerator(feed.GeneratorOptions{
			Titles:       c.Feed.Titles,
			Usernames:    c.Feed.Usernames,
			ImageBaseURL: c.Feed.ImageBaseURL,
		}),
		RefreshDelay:  c.Feed.RefreshDelay,
		LoadMoreDelay: c.Feed.LoadMoreDelay,
		InitialBatch:  c.Feed.InitialBatch,
		PageSize:      c.Feed.PageSize,
		RefreshPolicy: policy,
	}
}
