package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"valu/internal/advisor"
	"valu/internal/config"
	"valu/internal/eventbus"
	"valu/internal/fixtures"
	"valu/internal/logging"
	"valu/internal/market"
	"valu/internal/portfolio"
	"valu/internal/store"
	"valu/internal/ui"
)

// options holds the persistent flags
type options struct {
	configPath string
	statePath  string
	logPath    string
	verbose    bool
	ephemeral  bool
}

// app is built once per invocation by the root command's pre-run hook
type app struct {
	opts      *options
	logger    *zap.Logger
	bus       eventbus.EventBus
	configSvc config.ConfigService
	cfg       *config.Config
	store     store.Store
	data      *fixtures.Data
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "valu",
		Short: "Track the value of physical assets from the terminal",
		Long: `valu is a portfolio dashboard for physical assets.

Run without arguments to open the dashboard: a statistics carousel, an asset
history carousel, the value history and an advisor chat. The marketplace is
one key away.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDashboard(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/valu/config.toml)")
	flags.StringVar(&opts.statePath, "state", "", "state file; a .json extension stores JSON instead of CBOR")
	flags.StringVar(&opts.logPath, "log-file", "", "log file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep state in memory only")

	rootCmd.AddCommand(
		a.newMarketCmd(),
		a.newAskCmd(),
		a.newHistoryCmd(),
		a.newConfigCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	a.configSvc = config.NewConfigService(a.opts.configPath, nil, nil)
	if cmd.Annotations["config"] == "skip" {
		a.cfg = config.DefaultConfig()
	} else {
		cfg, err := a.configSvc.Load()
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	logPath := a.opts.logPath
	if logPath == "" {
		logPath = a.cfg.Log.File
	}
	logger, err := logging.New(logPath, a.opts.verbose || a.cfg.Log.Verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	a.bus = eventbus.New(logger)
	a.configSvc = config.NewConfigService(a.configSvc.Path(), a.bus, logger)

	a.bus.Subscribe(eventbus.EventPortfolioSeeded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.PortfolioSeededEvent); ok {
			logger.Info("portfolio seeded from fixtures", zap.Int("assets", ev.Assets))
		}
	})
	a.bus.Subscribe(eventbus.EventAdvisorReply, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.AdvisorReplyEvent); ok {
			logger.Debug("advisor replied", zap.String("question", ev.Question))
		}
	})

	data, err := fixtures.Load()
	if err != nil {
		return err
	}
	a.data = data

	if a.opts.ephemeral {
		a.store = store.NewMemoryStore()
		return nil
	}
	statePath := a.opts.statePath
	if statePath == "" {
		statePath = a.cfg.Store.Path
	}
	fs, err := store.OpenFile(statePath, a.bus, logger)
	if err != nil {
		return err
	}
	a.store = fs
	logger.Debug("state opened", zap.String("path", fs.Path()))
	return nil
}

func (a *app) teardown() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) loadPortfolio(cmd *cobra.Command) (*portfolio.Portfolio, error) {
	repo := portfolio.NewStoreRepository(a.store, a.data, a.bus, a.logger)
	return repo.Load(cmd.Context())
}

func (a *app) marketService() *market.Service {
	return market.NewService(a.store, a.data.Market, market.Options{
		Count: a.cfg.Market.Count,
		Seed:  a.cfg.Market.Seed,
	}, a.bus, a.logger)
}

func (a *app) newMarketCmd() *cobra.Command {
	var category, sortMode, search string
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Print the marketplace listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := market.ParseSortMode(sortMode)
			if err != nil {
				return err
			}
			svc := a.marketService()
			items, err := svc.Listing(market.Query{Category: category, Sort: mode, Search: search})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				liked, err := svc.Liked(item.Title)
				if err != nil {
					return err
				}
				heart := ""
				if liked {
					heart = "♥"
				}
				rows = append(rows, []string{
					heart,
					item.Title,
					item.Category,
					portfolio.FormatUSD(item.Price),
					portfolio.FormatUSD(item.Est),
					item.Potential,
					item.User,
				})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("", "TITLE", "CATEGORY", "PRICE", "EST", "POTENTIAL", "SELLER").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "%d listings, sorted by %s\n", len(items), strings.ToLower(mode.Label()))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", market.AllCategories, "only show this category")
	cmd.Flags().StringVar(&sortMode, "sort", string(market.SortNewest), "newest, price-asc, price-desc or potential")
	cmd.Flags().StringVar(&search, "search", "", "fuzzy match titles")
	return cmd
}

func (a *app) newAskCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the portfolio advisor a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPortfolio(cmd)
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")
			reply := advisor.New(p).Reply(question)
			a.bus.Publish(eventbus.AdvisorReplyEvent{Question: question, Reply: reply})

			r, err := advisor.NewRenderer(80, style)
			if err != nil {
				a.logger.Warn("markdown renderer unavailable", zap.Error(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Render(reply))
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "glamour style (dark, light, notty); detected when empty")
	return cmd
}

func (a *app) newHistoryCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show transactions and portfolio value in a pager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPortfolio(cmd)
			if err != nil {
				return err
			}
			content := ui.RenderHistory(p)
			if plain {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			return ui.RunPager(strings.NewReader(content))
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print instead of opening the pager")
	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the default configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"config": "skip"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configSvc.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := a.configSvc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file location",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"config": "skip"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.configSvc.Path())
			return nil
		},
	}

	configCmd.AddCommand(initCmd, pathCmd)
	return configCmd
}
