package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show which provider, model and draft storage will be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			defer utils.Close()

			name := flags.model
			if name == "" {
				name = cfg.Models.Default
			}
			m, ok := cfg.GetReviewModel(name)
			if !ok {
				return fmt.Errorf("model %q not found in models.definitions", name)
			}

			key := "set"
			if m.APIKey == "" {
				key = "NOT SET"
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "model\t%s\n", name)
			fmt.Fprintf(w, "provider\t%s\n", m.Provider)
			fmt.Fprintf(w, "model_name\t%s\n", m.ModelName)
			if m.BaseURL != "" {
				fmt.Fprintf(w, "base_url\t%s\n", m.BaseURL)
			}
			fmt.Fprintf(w, "api_key\t%s\n", key)
			fmt.Fprintf(w, "timeout\t%s\n", cfg.EffectiveTimeout(m))
			fmt.Fprintf(w, "rate_limit_window\t%s\n", cfg.Review.RateLimitWindow)
			fmt.Fprintf(w, "draft\t%s %s\n", cfg.Draft.Backend, cfg.Draft.Path)
			return w.Flush()
		},
	}
}
