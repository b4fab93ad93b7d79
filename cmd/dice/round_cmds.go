package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicepool/internal/commitment"
	"github.com/KirkDiggler/dicepool/internal/models"
	roundService "github.com/KirkDiggler/dicepool/internal/services/round"
)

func commitCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Generate a round secret and its commitment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := commitment.NewSecret()
			if err != nil {
				return err
			}
			pterm.Warning.Println("Keep the secret private until the round is settled")
			return pterm.DefaultTable.WithData(pterm.TableData{
				{"Secret", commitment.FormatSecret(secret)},
				{"Commitment", commitment.Commit(secret)},
			}).Render()
		},
	}
}

func openCmd(c *cli) *cobra.Command {
	var (
		asset       string
		openHeight  uint64
		closeHeight uint64
		commit      string
		duration    uint64
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a round against a published commitment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(true, func(a *app) error {
				// Relative windows start at the next height
				if openHeight == 0 && closeHeight == 0 {
					height, err := a.heights.CurrentHeight(a.ctx)
					if err != nil {
						return err
					}
					openHeight = height + 1
					closeHeight = openHeight + duration
				}

				output, err := a.rounds.OpenRound(a.ctx, &roundService.OpenRoundInput{
					Caller:      c.cfg.Operator,
					AssetRef:    asset,
					OpenHeight:  openHeight,
					CloseHeight: closeHeight,
					Commitment:  commit,
				})
				if err != nil {
					return err
				}

				pterm.Success.Printfln("Round %s is open", output.Round.ID)
				return renderRound(output.Round)
			})
		},
	}
	cmd.Flags().StringVarP(&asset, "asset", "a", "chip", "asset wagers are placed in")
	cmd.Flags().Uint64Var(&openHeight, "open-height", 0, "first height wagers are accepted at")
	cmd.Flags().Uint64Var(&closeHeight, "close-height", 0, "height at which betting closes")
	cmd.Flags().Uint64VarP(&duration, "duration", "d", 40, "heights the round stays open when no explicit window is given")
	cmd.Flags().StringVarP(&commit, "commitment", "c", "", "hex commitment from dice commit")
	cmd.MarkFlagRequired("commitment")
	return cmd
}

func wagerCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "wager <participant> <guess> <amount>",
		Short: "Place a wager on a face of the die",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			guess, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid guess %q: %w", args[1], err)
			}

			return c.run(true, func(a *app) error {
				amount, err := parseAmount(args[2], c.cfg.Decimals)
				if err != nil {
					return err
				}

				output, err := a.rounds.PlaceWager(a.ctx, &roundService.PlaceWagerInput{
					ParticipantID: args[0],
					Guess:         guess,
					Amount:        amount,
				})
				if err != nil {
					return err
				}

				pterm.Success.Printfln("%s staked %s on %d (%d entries)",
					output.Wager.ParticipantID,
					formatAmount(output.Wager.Amount, c.cfg.Decimals),
					output.Wager.Guess,
					output.EntryCount,
				)
				return nil
			})
		},
	}
}

func settleCmd(c *cli) *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Reveal the secret and pay out the open round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(true, func(a *app) error {
				output, err := a.rounds.CloseAndSettle(a.ctx, &roundService.CloseAndSettleInput{
					Caller: c.cfg.Operator,
					Secret: secret,
				})
				if err != nil {
					return err
				}

				if !output.Archived {
					pterm.Warning.Println("Settlement committed but was not archived")
				}
				return renderSettlement(output.Settlement, c.cfg.Decimals)
			})
		},
	}
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "secret generated by dice commit")
	cmd.MarkFlagRequired("secret")
	return cmd
}

func statusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the live round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(true, func(a *app) error {
				output, err := a.rounds.GetRound(a.ctx, &roundService.GetRoundInput{})
				if err != nil {
					return err
				}

				height, err := a.heights.CurrentHeight(a.ctx)
				if err != nil {
					return err
				}

				if output.Round == nil {
					pterm.Info.Printfln("No round has been opened yet (height %d)", height)
					return nil
				}

				if err := renderRound(output.Round); err != nil {
					return err
				}

				pterm.Info.Printfln("Height %d, %d entries, pot %s",
					height,
					output.EntryCount,
					formatAmount(output.Pot, c.cfg.Decimals),
				)

				data := pterm.TableData{{"Face", "Participants", "Total"}}
				for guess := 1; guess <= models.Faces; guess++ {
					bucket, err := a.rounds.GetBucket(a.ctx, &roundService.GetBucketInput{Guess: guess})
					if err != nil {
						return err
					}
					data = append(data, []string{
						strconv.Itoa(bucket.Bucket.Guess),
						strconv.Itoa(len(bucket.Bucket.ParticipantIDs)),
						formatAmount(bucket.Bucket.Total, c.cfg.Decimals),
					})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			})
		},
	}
}

func bucketCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "bucket <guess>",
		Short: "List the wagers placed on one face",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guess, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid guess %q: %w", args[0], err)
			}

			return c.run(true, func(a *app) error {
				output, err := a.rounds.GetBucket(a.ctx, &roundService.GetBucketInput{Guess: guess})
				if err != nil {
					return err
				}

				data := pterm.TableData{{"Participant", "Amount", "Placed"}}
				for _, participantID := range output.Bucket.ParticipantIDs {
					wager, err := a.rounds.GetWager(a.ctx, &roundService.GetWagerInput{ParticipantID: participantID})
					if err != nil {
						return err
					}
					data = append(data, []string{
						participantID,
						formatAmount(wager.Wager.Amount, c.cfg.Decimals),
						wager.Wager.PlacedAt.Format("2006-01-02 15:04:05"),
					})
				}

				pterm.Info.Printfln("Face %d total %s", guess, formatAmount(output.Bucket.Total, c.cfg.Decimals))
				return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			})
		},
	}
}

func renderRound(round *models.Round) error {
	return pterm.DefaultTable.WithData(pterm.TableData{
		{"Round", round.ID},
		{"Status", string(round.Status)},
		{"Completed", strconv.FormatBool(round.Completed)},
		{"Asset", round.AssetRef},
		{"Heights", fmt.Sprintf("%d..%d", round.OpenHeight, round.CloseHeight)},
		{"Commitment", round.Commitment},
	}).Render()
}

func renderSettlement(settlement *models.Settlement, decimals int32) error {
	pterm.Success.Printfln("Round %s settled on %d", settlement.RoundID, settlement.WinningNumber)

	data := pterm.TableData{{"Participant", "Wagered", "Payout"}}
	for _, p := range settlement.Payouts {
		data = append(data, []string{
			p.ParticipantID,
			formatAmount(p.Wagered, decimals),
			formatAmount(p.Amount, decimals),
		})
	}
	if len(settlement.Payouts) > 0 {
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	} else {
		pterm.Info.Println("No winners this round")
	}

	pterm.Info.Printfln("Pot %s, paid %s, fee %s",
		formatAmount(settlement.Pot, decimals),
		formatAmount(settlement.Distributed(), decimals),
		formatAmount(settlement.Fee, decimals),
	)
	return nil
}
