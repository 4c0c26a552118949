package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ilkoid/rate-my-writing/pkg/app"
	"github.com/ilkoid/rate-my-writing/pkg/draft"
	"github.com/ilkoid/rate-my-writing/pkg/review"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

func newReviewCmd(flags *globalFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "review [file|-]",
		Short: "Review a file or stdin once and print the feedback",
		Long: "Review a file (or stdin with \"-\") without the interactive screen.\n" +
			"Without an argument the saved draft is reviewed. The saved draft is never modified.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			defer utils.Close()

			ctx, cleanup := utils.SetupGracefulShutdownWithContext()
			defer cleanup()

			comps, err := app.Initialize(ctx, cfg, flags.model)
			if err != nil {
				return err
			}
			defer comps.Close()

			text := comps.Store.Load()
			if len(args) == 1 {
				if text, err = readInput(args[0], cmd.InOrStdin()); err != nil {
					return err
				}
			}

			return reviewOnce(ctx, cmd, comps, text, raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the model's markdown without rendering")
	return cmd
}

// reviewOnce отправляет текст через отдельный контроллер с черновиком в памяти:
// сохранённый черновик не трогается.
func reviewOnce(ctx context.Context, cmd *cobra.Command, comps *app.Components, text string, raw bool) error {
	ctrl := review.NewController(comps.Reviewer,
		draft.NewStore(draft.NewMemoryBackend(), "memory"),
		review.WithTimeout(comps.Config.EffectiveTimeout(comps.Model)),
	)
	ctrl.SetDraft(text)

	st, err := ctrl.Submit(ctx, time.Now())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), review.UserMessage(err))
		return fmt.Errorf("review failed: %w", err)
	}

	out := st.Review
	if !raw {
		out = comps.Renderer.Markdown(st.Review)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// readInput читает файл или stdin ("-").
func readInput(arg string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if arg == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return "", fmt.Errorf("read input %s: %w", arg, err)
	}
	return string(data), nil
}
