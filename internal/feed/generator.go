package feed

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/idilsaglam/mediafeed/internal/metrics"
	"github.com/idilsaglam/mediafeed/internal/model"
)

const (
	DefaultImageBaseURL = "https://picsum.photos"

	minLikes       = 50
	maxLikes       = 300 // exclusive
	minImageHeight = 300
	maxImageHeight = 600 // exclusive
	imageWidth     = 300
	avatarSize     = 50
)

// GeneratorOptions tune a Generator. Zero values fall back to the defaults.
type GeneratorOptions struct {
	Titles       []string
	Usernames    []string
	ImageBaseURL string
	Rand         *rand.Rand
	Token        func() string // cache-busting token, uuid.NewString when nil
}

// Generator produces batches of synthetic feed items.
type Generator struct {
	titles    []string
	usernames []string
	baseURL   string
	token     func() string

	mu     sync.Mutex // guards rnd and lastID
	rnd    *rand.Rand
	lastID int
}

// NewGenerator builds a generator from opts.
func NewGenerator(opts GeneratorOptions) *Generator {
	g := &Generator{
		titles:    opts.Titles,
		usernames: opts.Usernames,
		baseURL:   strings.TrimRight(opts.ImageBaseURL, "/"),
		rnd:       opts.Rand,
		token:     opts.Token,
	}
	if len(g.titles) == 0 {
		g.titles = DefaultTitles
	}
	if len(g.usernames) == 0 {
		g.usernames = DefaultUsernames
	}
	if g.baseURL == "" {
		g.baseURL = DefaultImageBaseURL
	}
	if g.rnd == nil {
		g.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.token == nil {
		g.token = uuid.NewString
	}
	return g
}

// Batch returns n fresh, unliked items. IDs keep increasing across batches.
func (g *Generator) Batch(n int) []model.FeedItem {
	if n <= 0 {
		return []model.FeedItem{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	items := lo.Times(n, func(int) model.FeedItem {
		g.lastID++
		tok := g.token()
		return model.FeedItem{
			ID:        g.lastID,
			ImageURL:  fmt.Sprintf("%s/%d/%d?random=%s", g.baseURL, imageWidth, g.intn(minImageHeight, maxImageHeight), tok),
			AvatarURL: fmt.Sprintf("%s/%d?random=u%s", g.baseURL, avatarSize, tok),
			Title:     g.titles[g.rnd.Intn(len(g.titles))],
			Username:  g.usernames[g.rnd.Intn(len(g.usernames))],
			LikeCount: g.intn(minLikes, maxLikes),
		}
	})
	metrics.ItemsGenerated.Add(float64(n))
	return items
}

// intn returns a value in [from, to).
func (g *Generator) intn(from, to int) int {
	return from + g.rnd.Intn(to-from)
}
