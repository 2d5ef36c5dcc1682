package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/trailfx/app"
	"github.com/lixenwraith/trailfx/config"
	"github.com/lixenwraith/trailfx/logging"
	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/view"
)

// flags holds the command line overrides of the config file
type flags struct {
	configPath string
	debug      bool
	view       string
	feed       string
	audio      bool
	fps        int
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "trailfx",
		Short: "Pointer trail particle showcase for the terminal",
		Long: `trailfx renders an ML portfolio in the terminal with an interactive particle trail.

Move the mouse to spawn particles, hover tabs and cards to grow the follower ring,
click or press tab/1-6 to switch views, q to quit.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.DefaultPath, "config file path")

	rf := root.Flags()
	rf.BoolVar(&f.debug, "debug", false, "write a JSON debug log and show live metrics")
	rf.StringVar(&f.view, "view", view.Home, "initial view slug")
	rf.StringVar(&f.feed, "feed", "", "serve the pointer feed on this address (e.g. :8080)")
	rf.BoolVar(&f.audio, "audio", false, "play spawn cues")
	rf.IntVar(&f.fps, "fps", 0, "frame rate override")

	root.AddCommand(newViewsCmd(), newInitConfigCmd(f))
	return root
}

// loadConfig reads the config file then applies explicitly set flags
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("debug") {
		cfg.Debug = f.debug
	}
	if fl.Changed("view") {
		cfg.View = f.view
	}
	if fl.Changed("feed") {
		cfg.Feed.Addr = f.feed
	}
	if fl.Changed("audio") {
		cfg.Audio = f.audio
	}
	if fl.Changed("fps") {
		cfg.FPS = f.fps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	lh, err := logging.Setup(logging.Options{
		Debug:   cfg.Debug,
		Dir:     cfg.Log.Dir,
		File:    parameter.LogFileName,
		MaxSize: int64(cfg.Log.MaxSizeMB) * 1024 * 1024,
	})
	if err != nil {
		return err
	}
	defer lh.Close()

	log := lh.Logger
	log.Info("starting",
		zap.String("view", cfg.View),
		zap.Int("fps", cfg.FPS),
		zap.Bool("audio", cfg.Audio),
		zap.String("feed", cfg.Feed.Addr))

	host, err := app.New(cfg, log)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := host.Run(cmd.Context()); err != nil {
		log.Error("host failed", zap.Error(err))
		return err
	}
	log.Info("stopped", zap.Duration("uptime", time.Since(start)))
	return nil
}

func newViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the available views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for i, p := range view.Pages() {
				if _, err := fmt.Fprintf(out, "%d  %-20s %s\n", i+1, p.Slug, p.Title); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newInitConfigCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration to the config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.DefaultConfig().Save(f.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", f.configPath)
			return nil
		},
	}
}
