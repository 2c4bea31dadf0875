package profiler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/llm"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrGenerationFailed is returned when any model call fails. Partial avatars
// are never returned.
var ErrGenerationFailed = errors.New("avatar generation failed")

type Assembler struct {
	model          llm.Invoker
	logger         *zap.Logger
	now            func() time.Time
	newID          func() string
	maxConcurrency int
}

type Option func(*Assembler)

// WithClock overrides the time source used for names and timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithIDGenerator overrides avatar id generation.
func WithIDGenerator(newID func() string) Option {
	return func(a *Assembler) { a.newID = newID }
}

// WithMaxConcurrency bounds the number of facet calls in flight. Zero or
// less means no bound; 1 issues the calls one after another.
func WithMaxConcurrency(n int) Option {
	return func(a *Assembler) { a.maxConcurrency = n }
}

func NewAssembler(model llm.Invoker, logger *zap.Logger, opts ...Option) *Assembler {
	a := &Assembler{
		model:  model,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// generateFacet invokes the model for one facet and reduces the parsed
// response to a value. Only the model call itself can fail.
func generateFacet[T any](ctx context.Context, a *Assembler, facet, prompt string, fallback func() T) (T, error) {
	raw, err := a.model.Invoke(ctx, SystemPrompt, prompt)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", facet, err)
	}

	out := Parse[T](raw)
	if !out.OK() {
		a.logger.Warn("facet response could not be parsed, using default",
			zap.String("facet", facet),
			zap.Error(out.Err),
			zap.String("response", truncate(raw, 200)))
	}
	return out.Or(fallback()), nil
}

// Assemble generates every facet for the business and builds the avatar.
func (a *Assembler) Assemble(ctx context.Context, info models.BusinessInfo, research models.ResearchData, mode models.GenerationMode) (*models.Avatar, error) {
	a.logger.Info("assembling avatar",
		zap.String("industry", info.Industry),
		zap.String("niche", info.Niche),
		zap.String("mode", string(mode)))

	var (
		narrative      string
		demographics   models.Demographics
		psychographics models.Psychographics
		painPoints     []models.PainPoint
		goals          []models.Goal
		onlineBehavior models.OnlineBehavior
		objections     []models.Objection
		triggers       []models.BuyingTrigger
		communication  models.CommunicationPreference
	)

	g, gctx := errgroup.WithContext(ctx)
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}

	g.Go(func() error {
		text, err := a.model.Invoke(gctx, SystemPrompt, NarrativePrompt(info, research))
		if err != nil {
			return fmt.Errorf("narrative: %w", err)
		}
		narrative = strings.TrimSpace(text)
		return nil
	})
	g.Go(func() (err error) {
		demographics, err = generateFacet(gctx, a, "demographics", DemographicsPrompt(info, research),
			func() models.Demographics { return DefaultDemographics(info) })
		return err
	})
	g.Go(func() (err error) {
		psychographics, err = generateFacet(gctx, a, "psychographics", PsychographicsPrompt(info, research),
			func() models.Psychographics { return DefaultPsychographics(info) })
		return err
	})
	g.Go(func() (err error) {
		painPoints, err = generateFacet(gctx, a, "painPoints", PainPointsPrompt(info, research), DefaultPainPoints)
		return err
	})
	g.Go(func() (err error) {
		goals, err = generateFacet(gctx, a, "goals", GoalsPrompt(info, research), DefaultGoals)
		return err
	})
	g.Go(func() (err error) {
		onlineBehavior, err = generateFacet(gctx, a, "onlineBehavior", OnlineBehaviorPrompt(info, research), DefaultOnlineBehavior)
		return err
	})
	g.Go(func() (err error) {
		objections, err = generateFacet(gctx, a, "objections", ObjectionsPrompt(info, research), DefaultObjections)
		return err
	})
	g.Go(func() (err error) {
		triggers, err = generateFacet(gctx, a, "buyingTriggers", BuyingTriggersPrompt(info, research), DefaultBuyingTriggers)
		return err
	})
	g.Go(func() (err error) {
		communication, err = generateFacet(gctx, a, "communicationPreference", CommunicationPrompt(info, research), DefaultCommunicationPreference)
		return err
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("avatar generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	targeting, err := generateFacet(ctx, a, "platformTargeting",
		PlatformTargetingPrompt(info, research, demographics, psychographics, onlineBehavior),
		func() models.PlatformTargeting { return DefaultPlatformTargeting(info, demographics) })
	if err != nil {
		a.logger.Error("avatar generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	now := a.now()
	createdAt := models.Timestamp(now)

	avatar := &models.Avatar{
		ID:                      a.newID(),
		Name:                    fmt.Sprintf("%s Avatar - %s", info.Niche, now.Format("1/2/2006")),
		CreatedAt:               createdAt,
		UpdatedAt:               createdAt,
		BusinessInfo:            info,
		Narrative:               narrative,
		Demographics:            demographics,
		Psychographics:          psychographics,
		PainPoints:              painPoints,
		Goals:                   goals,
		OnlineBehavior:          onlineBehavior,
		Objections:              objections,
		BuyingTriggers:          triggers,
		CommunicationPreference: communication,
		PlatformTargeting:       targeting,
		Sources:                 BuildSources(research),
		OverallConfidence:       OverallConfidence(demographics, psychographics, onlineBehavior, research),
		GenerationMode:          mode,
		Industry:                info.Industry,
		Tags:                    []string{info.Industry, string(info.BusinessType), info.Niche},
		IsTemplate:              false,
	}

	a.logger.Info("avatar assembled",
		zap.String("id", avatar.ID),
		zap.Float64("overallConfidence", avatar.OverallConfidence),
		zap.Int("sources", len(avatar.Sources)))
	return avatar, nil
}

// BuildSources lists the provenance of the avatar: the model inference
// first, then every competitor page, then every market insight.
func BuildSources(research models.ResearchData) []models.Source {
	sources := make([]models.Source, 0, 1+len(research.CompetitorAnalysis)+len(research.MarketData))
	sources = append(sources, models.Source{
		Type:        models.SourceAIInference,
		Name:        "Claude Analysis",
		Reliability: models.ReliabilityMedium,
		DataPoint:   "Avatar generation",
	})
	for _, c := range research.CompetitorAnalysis {
		sources = append(sources, models.Source{
			Type:        models.SourceWeb,
			Name:        c.Name,
			URL:         c.URL,
			Reliability: models.ReliabilityMedium,
			DataPoint:   "Competitor analysis",
		})
	}
	for _, m := range research.MarketData {
		reliability := models.ReliabilityMedium
		if m.Confidence > 0.8 {
			reliability = models.ReliabilityHigh
		}
		sources = append(sources, models.Source{
			Type:        models.SourceDatabase,
			Name:        m.Source,
			Reliability: reliability,
			DataPoint:   m.DataPoint,
		})
	}
	return sources
}

// OverallConfidence is the mean of the three facet confidences and the mean
// market insight confidence, rounded to two decimals.
func OverallConfidence(demo models.Demographics, psych models.Psychographics, behavior models.OnlineBehavior, research models.ResearchData) float64 {
	scores := []float64{
		demo.Confidence,
		psych.Confidence,
		behavior.Confidence,
		research.MeanMarketConfidence(),
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return math.Round(sum/float64(len(scores))*100) / 100
}
