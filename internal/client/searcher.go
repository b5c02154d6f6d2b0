// Package client requests rankings from a docsearch server and renders
// them onto a display surface.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"docsearch/internal/domain"
	"docsearch/internal/port"
	"github.com/sirupsen/logrus"
)

const (
	SearchPath = "/api/search"

	DefaultRegion    = "results"
	DefaultItemClass = "item"
	DefaultLimit     = 20
)

// Searcher sends queries to the search endpoint and renders the outcome.
//
// A call to Search supersedes any call still in flight on the same
// Searcher: the older call is cancelled and renders nothing.
type Searcher struct {
	endpoint   string
	surface    port.Surface
	httpClient *http.Client
	region     string
	itemClass  string
	limit      int
	logger     logrus.FieldLogger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

type Option func(*Searcher)

func WithHTTPClient(c *http.Client) Option {
	return func(s *Searcher) { s.httpClient = c }
}

func WithRegion(id string) Option {
	return func(s *Searcher) { s.region = id }
}

func WithItemClass(class string) Option {
	return func(s *Searcher) { s.itemClass = class }
}

func WithLimit(n int) Option {
	return func(s *Searcher) { s.limit = n }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Searcher) { s.logger = logger }
}

// New creates a Searcher posting to baseURL + SearchPath and rendering
// onto surface.
func New(baseURL string, surface port.Surface, opts ...Option) *Searcher {
	s := &Searcher{
		endpoint:   strings.TrimRight(baseURL, "/") + SearchPath,
		surface:    surface,
		httpClient: http.DefaultClient,
		region:     DefaultRegion,
		itemClass:  DefaultItemClass,
		limit:      DefaultLimit,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs one request/render cycle. The region is only touched once a
// well-formed ranking has arrived.
func (s *Searcher) Search(ctx context.Context, query string) error {
	ctx, id, done := s.begin(ctx)
	defer done()

	s.logger.Infof("Querying %s...", SearchPath)

	ranking, err := s.fetch(ctx, query)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.seq {
		return context.Canceled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	region, ok := s.surface.Lookup(s.region)
	if !ok {
		return fmt.Errorf("%w: no element with id %q", ErrRenderTargetMissing, s.region)
	}
	Render(region, ranking.Top(s.limit), s.itemClass)
	return nil
}

func (s *Searcher) begin(ctx context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	id := s.seq
	s.cancel = cancel
	s.mu.Unlock()

	return ctx, id, func() {
		cancel()
		s.mu.Lock()
		if s.seq == id {
			s.cancel = nil
		}
		s.mu.Unlock()
	}
}

func (s *Searcher) fetch(ctx context.Context, query string) (domain.Ranking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: reading response: %w", ErrNetwork, err)
	}

	// The status code is not consulted: any body that is a ranking is
	// rendered, anything else is a parse failure.
	var ranking domain.Ranking
	if err := json.Unmarshal(body, &ranking); err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", ErrParse, resp.StatusCode, err)
	}
	return ranking, nil
}

// Render replaces the content of region with one item per rank, in order.
func Render(region port.Region, ranking domain.Ranking, itemClass string) {
	region.Clear()
	for _, rank := range ranking {
		region.Append(itemClass, FormatItem(rank))
	}
}

// FormatItem renders a rank as "<path> (Score: <score>)" with the score
// to three decimals.
func FormatItem(rank domain.Rank) string {
	return fmt.Sprintf("%s (Score: %s)", rank.Path, FormatScore(rank.Score))
}

// FormatScore writes score with three decimals. A value exactly halfway
// between two thousandths rounds away from zero, the way browsers render
// scores, where strconv would round to even.
func FormatScore(score float64) string {
	if score == 0 {
		return "0.000"
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return strconv.FormatFloat(score, 'f', 3, 64)
	}

	// 128 bits hold a float64 mantissa times 1000 exactly.
	scaled := new(big.Float).SetPrec(128).SetFloat64(math.Abs(score))
	scaled.Mul(scaled, big.NewFloat(1000))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return strconv.FormatFloat(score, 'f', 3, 64)
	}

	whole.Add(whole, big.NewInt(1))
	digits := fmt.Sprintf("%04d", whole)
	out := digits[:len(digits)-3] + "." + digits[len(digits)-3:]
	if score < 0 {
		out = "-" + out
	}
	return out
}
