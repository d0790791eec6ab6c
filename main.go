package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spotdemo4/quick-predict/internal/api"
	"github.com/spotdemo4/quick-predict/internal/logging"
	"github.com/spotdemo4/quick-predict/internal/screen"
	"github.com/spotdemo4/quick-predict/internal/tui"
)

var version = "0.1.0"

var errFailed = errors.New("prediction failed")

func main() {
	loadEnvFile()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			tui.PrintErr("error: %v", err)
		}
		os.Exit(1)
	}
}

type flags struct {
	url     string
	timeout string
	text    string
	check   bool
}

func newRootCmd() *cobra.Command {
	f := flags{}

	cmd := &cobra.Command{
		Use:           "quick-predict",
		Short:         "Send text to a prediction endpoint and show the label",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := getConfig()
			if err != nil {
				return err
			}

			// Flags take precedence over the environment
			if f.url != "" {
				c.url, err = parseURL(f.url)
				if err != nil {
					return err
				}
			}
			if f.timeout != "" {
				c.timeout, err = parseTimeout(f.timeout)
				if err != nil {
					return fmt.Errorf("invalid value for '--timeout': %w", err)
				}
			}

			return run(cmd.Context(), c, f)
		},
	}

	cmd.Flags().StringVar(&f.url, "url", "", "base url of the prediction service (env QP_URL)")
	cmd.Flags().StringVar(&f.timeout, "timeout", "", "request timeout, e.g. 30s (env QP_TIMEOUT)")
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "predict this text once and exit")
	cmd.Flags().BoolVar(&f.check, "check", false, "check the service health before starting")

	return cmd
}

func run(ctx context.Context, c config, f flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	logger, err := logging.New(c.log)
	if err != nil {
		return fmt.Errorf("could not create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	client := api.New(c.url, c.timeout, c.headers, logger)
	logger.Info("starting", zap.String("version", version), zap.String("endpoint", client.URL()), zap.Duration("timeout", c.timeout))

	if f.check {
		checkCtx, checkCancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Health(checkCtx)
		checkCancel()
		if err != nil {
			tui.PrintWarn("warning: health check failed: %v", err)
		}
	}

	controller := screen.New(client, logger)

	// Non-interactive
	if f.text != "" {
		controller.SetInputText(f.text)
		state := controller.Await(ctx)
		fmt.Println(tui.FormatState(state))

		if state.Kind() == screen.KindFailed {
			return errFailed
		}
		return nil
	}

	t := tea.NewProgram(tui.New(ctx, version, client.URL(), controller), tea.WithContext(ctx), tea.WithAltScreen())
	_, err = t.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return err
	}

	return nil
}
