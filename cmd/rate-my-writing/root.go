package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ilkoid/rate-my-writing/internal/ui"
	"github.com/ilkoid/rate-my-writing/pkg/app"
	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/render"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

// globalFlags - флаги, общие для всех команд.
type globalFlags struct {
	configPath string
	model      string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "rate-my-writing",
		Short:         "Get grammar, clarity and style feedback on your writing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "config.yaml", "path to config file")
	root.PersistentFlags().StringVar(&flags.model, "model", "", "model from models.definitions (default: models.default)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(newReviewCmd(flags), newCheckCmd(flags))
	return root
}

// loadConfig находит и загружает конфигурацию, затем включает логгер.
//
// Путь из --config, заданный явно, обязан существовать.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.AppConfig, error) {
	explicit := cmd.Flags().Changed("config")
	finder := &app.DefaultConfigPathFinder{}
	if explicit {
		finder.ConfigFlag = flags.configPath
	}

	cfg, cfgPath, err := app.InitializeConfig(finder, explicit)
	if err != nil {
		return nil, err
	}

	cfg.App.Debug = flags.debug || cfg.App.Debug
	if err := utils.InitLogger(cfg.App.LogFile, cfg.App.Debug); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}

	utils.Info("Application started", "config", cfgPath, "debug", cfg.App.Debug)
	if cfgPath == "" {
		utils.Warn("Running with default config", "default_model", cfg.Models.Default)
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	defer utils.Close()

	ctx, cleanup := utils.SetupGracefulShutdownWithContext()
	defer cleanup()

	comps, err := app.Initialize(ctx, cfg, flags.model)
	if err != nil {
		utils.Error("Initialization failed", "error", err)
		return err
	}
	defer func() {
		if err := comps.Close(); err != nil {
			utils.Warn("Failed to close draft storage", "error", err)
		}
	}()

	if comps.Model.APIKey == "" {
		utils.Warn("No API key configured for the selected model, reviews will fail",
			"model", comps.ModelName)
	}

	model := ui.New(ctx, comps.Controller, comps.Renderer, ui.Options{
		Scheme:   render.GetColorScheme(cfg.App.ColorScheme),
		Debug:    cfg.App.Debug,
		Degraded: comps.Store.Degraded,
	})

	utils.Info("Starting TUI", "model", comps.ModelName)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		// Отмена по сигналу - штатный выход
		if errors.Is(err, tea.ErrProgramKilled) && errors.Is(ctx.Err(), context.Canceled) {
			utils.Info("TUI stopped by signal")
			return nil
		}
		utils.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	utils.Info("Application exited normally")
	return nil
}
