// Package cli implements avatarctl, which runs research and avatar
// generation from the command line without the HTTP server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/config"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/llm"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/profiler"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/research"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/store"
	"github.com/BerylCAtieno/customer-avatar-agent/internal/templates"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "avatarctl",
	Short:        "Research businesses and generate customer avatars",
	SilenceUsage: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Research a business and generate its customer avatar",
	RunE:  runGenerate,
}

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run competitor and market research only",
	RunE:  runResearch,
}

var templatesCmd = &cobra.Command{
	Use:   "templates [id]",
	Short: "List industry templates, or show one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTemplates,
}

var (
	flagEnvFile     string
	flagVerbose     bool
	flagIndustry    string
	flagNiche       string
	flagProduct     string
	flagType        string
	flagPrice       string
	flagUSP         string
	flagCompetitors []string
	flagGeography   []string
	flagCustomers   string
	flagTemplate    string
	flagMode        string
	flagOutput      string
	flagSave        bool
	flagFilter      string
)

func init() {
	rootCmd.AddCommand(generateCmd, researchCmd, templatesCmd)
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to a .env file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	for _, cmd := range []*cobra.Command{generateCmd, researchCmd} {
		f := cmd.Flags()
		f.StringVar(&flagIndustry, "industry", "", "Industry, e.g. \"Health & Wellness\"")
		f.StringVar(&flagNiche, "niche", "", "Niche within the industry")
		f.StringVar(&flagProduct, "product", "", "Product or service offered")
		f.StringVar(&flagType, "type", "", "Business type: b2b, b2c or both")
		f.StringVar(&flagPrice, "price", "", "Price point")
		f.StringVar(&flagUSP, "usp", "", "Unique selling proposition")
		f.StringSliceVar(&flagCompetitors, "competitor", nil, "Competitor URL (repeatable)")
		f.StringSliceVar(&flagGeography, "geo", nil, "Target geography (repeatable)")
		f.StringVar(&flagCustomers, "customers", "", "Description of existing customers")
		f.StringVarP(&flagTemplate, "template", "t", "", "Industry template id used to fill unset fields")
		f.StringVarP(&flagMode, "mode", "m", string(models.ModeQuick), "Generation mode: quick or comprehensive")
		f.StringVarP(&flagOutput, "output", "o", "", "Write JSON to this file instead of stdout")
	}
	generateCmd.Flags().BoolVar(&flagSave, "save", false, "Save the avatar to DATABASE_PATH")
	templatesCmd.Flags().StringVar(&flagFilter, "industry", "", "Only templates whose industry or name matches")
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(validate bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Read(flagEnvFile)
	if err != nil {
		return nil, nil, err
	}
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}

// businessInfo assembles the business from flags, filling gaps from the
// selected template.
func businessInfo(lib *templates.Library) (models.BusinessInfo, models.GenerationMode, error) {
	info := models.BusinessInfo{
		Industry:                    flagIndustry,
		Niche:                       flagNiche,
		ProductService:              flagProduct,
		BusinessType:                models.BusinessType(flagType),
		PricePoint:                  flagPrice,
		UniqueSellingProposition:    flagUSP,
		Competitors:                 flagCompetitors,
		TargetGeography:             flagGeography,
		ExistingCustomerDescription: flagCustomers,
	}
	if flagTemplate != "" {
		tmpl, ok := lib.ByID(flagTemplate)
		if !ok {
			return info, "", fmt.Errorf("unknown template %q", flagTemplate)
		}
		info = tmpl.Prefill(info)
	}

	if info.Industry == "" || info.Niche == "" {
		return info, "", fmt.Errorf("--industry and --niche are required unless --template supplies them")
	}
	switch info.BusinessType {
	case models.BusinessTypeB2B, models.BusinessTypeB2C, models.BusinessTypeBoth:
	default:
		return info, "", fmt.Errorf("--type must be b2b, b2c or both, got %q", info.BusinessType)
	}

	mode := models.GenerationMode(flagMode)
	if !mode.Valid() {
		return info, "", fmt.Errorf("--mode must be quick or comprehensive, got %q", flagMode)
	}
	return info, mode, nil
}

func newAggregator(cfg *config.Config, logger *zap.Logger) (*research.Aggregator, func(), error) {
	var fetchOpts []research.FetcherOption
	if cfg.ScrapingBeeAPIKey != "" {
		fetchOpts = append(fetchOpts, research.WithScrapingBee(cfg.ScrapingBeeAPIKey))
	}
	var aggOpts []research.Option
	cleanup := func() {}
	if cfg.ResearchCacheDir != "" {
		cache, err := research.OpenCache(cfg.ResearchCacheDir, cfg.ResearchCacheTTL)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { cache.Close() }
		aggOpts = append(aggOpts, research.WithCache(cache))
	}
	fetcher := research.NewHTTPFetcher(cfg.FetchTimeout, fetchOpts...)
	return research.NewAggregator(fetcher, logger.Named("research"), aggOpts...), cleanup, nil
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	lib, err := templates.Load()
	if err != nil {
		return err
	}
	info, mode, err := businessInfo(lib)
	if err != nil {
		return err
	}

	agg, cleanup, err := newAggregator(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return writeJSON(cmd.OutOrStdout(), agg.Aggregate(ctx, info, mode))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	lib, err := templates.Load()
	if err != nil {
		return err
	}
	info, mode, err := businessInfo(lib)
	if err != nil {
		return err
	}

	model, err := llm.New(cfg.ModelProvider, cfg.ModelOptions())
	if err != nil {
		return err
	}
	if closer, ok := model.(io.Closer); ok {
		defer closer.Close()
	}

	agg, cleanup, err := newAggregator(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	data := agg.Aggregate(ctx, info, mode)
	avatar, err := profiler.NewAssembler(model, logger.Named("profiler"), profiler.WithMaxConcurrency(cfg.MaxFacetConcurrency)).Assemble(ctx, info, data, mode)
	if err != nil {
		return err
	}

	if flagSave {
		if err := saveAvatar(ctx, cfg.DatabasePath, avatar); err != nil {
			return err
		}
		logger.Info("avatar saved", zap.String("id", avatar.ID), zap.String("database", cfg.DatabasePath))
	}
	return writeJSON(cmd.OutOrStdout(), avatar)
}

func saveAvatar(ctx context.Context, path string, avatar *models.Avatar) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Save(ctx, avatar)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	lib, err := templates.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		tmpl, ok := lib.ByID(args[0])
		if !ok {
			return fmt.Errorf("unknown template %q", args[0])
		}
		return writeJSON(out, tmpl)
	}

	list := lib.All()
	if flagFilter != "" {
		list = lib.ByIndustry(flagFilter)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINDUSTRY\tNICHE\tTYPE")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Industry, t.DefaultBusinessInfo.Niche, t.DefaultBusinessInfo.BusinessType)
	}
	return w.Flush()
}

func writeJSON(stdout io.Writer, v any) error {
	w := stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
