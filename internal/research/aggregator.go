// Package research builds the research bundle that feeds avatar generation:
// competitor pages, static market tables, trends and social platforms.
package research

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	quickCompetitorLimit         = 2
	comprehensiveCompetitorLimit = 5
)

type Aggregator struct {
	fetcher Fetcher
	logger  *zap.Logger
	cache   *Cache
	rand    *rand.Rand
}

type Option func(*Aggregator)

// WithCache serves repeated requests for the same business and mode from c.
func WithCache(c *Cache) Option {
	return func(a *Aggregator) { a.cache = c }
}

// WithRand fixes the source used to sample industry trends.
func WithRand(r *rand.Rand) Option {
	return func(a *Aggregator) { a.rand = r }
}

func NewAggregator(fetcher Fetcher, logger *zap.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{fetcher: fetcher, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CompetitorURLs keeps the entries that look like URLs, capped for the mode.
func CompetitorURLs(competitors []string, mode models.GenerationMode) []string {
	limit := comprehensiveCompetitorLimit
	if mode == models.ModeQuick {
		limit = quickCompetitorLimit
	}

	urls := make([]string, 0, limit)
	for _, c := range competitors {
		if len(urls) == limit {
			break
		}
		if strings.HasPrefix(c, "http") {
			urls = append(urls, c)
		}
	}
	return urls
}

// Aggregate never fails: unreachable competitor pages become generic
// placeholders.
func (a *Aggregator) Aggregate(ctx context.Context, info models.BusinessInfo, mode models.GenerationMode) models.ResearchData {
	var key string
	if a.cache != nil {
		key = CacheKey(info, mode)
		if data, ok, err := a.cache.Get(key); err != nil {
			a.logger.Warn("research cache read failed", zap.Error(err))
		} else if ok {
			a.logger.Debug("research cache hit", zap.String("key", key))
			return data
		}
	}

	competitors, complete := a.analyzeCompetitors(ctx, CompetitorURLs(info.Competitors, mode))
	data := models.ResearchData{
		CompetitorAnalysis: competitors,
		MarketData:         MarketInsights(info),
		SocialInsights:     SocialInsights(info),
		IndustryTrends:     IndustryTrends(info.Industry, a.rand),
	}

	a.logger.Info("research aggregated",
		zap.String("industry", info.Industry),
		zap.Int("competitors", len(data.CompetitorAnalysis)),
		zap.Int("marketInsights", len(data.MarketData)))

	// Placeholders from failed fetches are not cached.
	if a.cache != nil && complete {
		if err := a.cache.Put(key, data); err != nil {
			a.logger.Warn("research cache write failed", zap.Error(err))
		}
	}
	return data
}

// analyzeCompetitors reports complete=false when any page had to be
// replaced by a placeholder.
func (a *Aggregator) analyzeCompetitors(ctx context.Context, urls []string) (insights []models.CompetitorInsight, complete bool) {
	insights = make([]models.CompetitorInsight, len(urls))
	scraped := make([]bool, len(urls))

	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			page, ok := a.scrape(ctx, u)
			insights[i] = AnalyzeCompetitor(u, page)
			scraped[i] = ok
			return nil
		})
	}
	_ = g.Wait()

	complete = true
	for _, ok := range scraped {
		complete = complete && ok
	}
	return insights, complete
}

func (a *Aggregator) scrape(ctx context.Context, pageURL string) (Page, bool) {
	raw, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		a.logger.Warn("error scraping competitor", zap.String("url", pageURL), zap.Error(err))
		return Page{}, false
	}
	page, err := ExtractPage(raw)
	if err != nil {
		a.logger.Warn("error parsing competitor page", zap.String("url", pageURL), zap.Error(err))
		return Page{}, false
	}
	return page, true
}
