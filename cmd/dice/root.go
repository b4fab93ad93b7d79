package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicepool/internal/config"
)

// cli carries state shared by every subcommand
type cli struct {
	ctx       context.Context
	envFile   string
	cfg       *config.Config
	logCloser io.Closer
}

func newRootCmd(ctx context.Context) *cobra.Command {
	c := &cli{ctx: ctx}

	cmd := &cobra.Command{
		Use:           "dice",
		Short:         "Run pooled-wager dice rounds against a Redis ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if c.envFile != "" {
				files = append(files, c.envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.logCloser != nil {
				return c.logCloser.Close()
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&c.envFile, "env-file", "", "env file to load instead of .env")

	cmd.AddCommand(
		commitCmd(c),
		openCmd(c),
		wagerCmd(c),
		settleCmd(c),
		statusCmd(c),
		bucketCmd(c),
		mintCmd(c),
		balanceCmd(c),
		roundsCmd(c),
		historyCmd(c),
		statsCmd(c),
	)
	return cmd
}

// run wires the app, optionally with the round service, and hands it to fn
func (c *cli) run(withRounds bool, fn func(a *app) error) error {
	logger, closer, err := newLogger(c.cfg)
	if err != nil {
		return err
	}
	c.logCloser = closer

	a, err := newApp(c.ctx, c.cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if withRounds {
		if err := a.withRounds(); err != nil {
			return err
		}
	}

	return fn(a)
}
