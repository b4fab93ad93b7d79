package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	roundService "github.com/KirkDiggler/dicepool/internal/services/round"
)

func roundsCmd(c *cli) *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:   "rounds",
		Short: "List recent rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(true, func(a *app) error {
				output, err := a.rounds.ListRounds(a.ctx, &roundService.ListRoundsInput{Limit: limit})
				if err != nil {
					return err
				}

				data := pterm.TableData{{"Round", "Status", "Asset", "Heights", "Opened"}}
				for _, round := range output.Rounds {
					status := string(round.Status)
					if round.Completed {
						status = "settled"
					}
					data = append(data, []string{
						round.ID,
						status,
						round.AssetRef,
						fmt.Sprintf("%d..%d", round.OpenHeight, round.CloseHeight),
						round.OpenedAt.Format("2006-01-02 15:04:05"),
					})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			})
		},
	}
	cmd.Flags().Int64VarP(&limit, "limit", "n", 10, "number of rounds to show, 0 for all")
	return cmd
}

func historyCmd(c *cli) *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:   "history [round-id]",
		Short: "Show archived settlements, or one settlement in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(true, func(a *app) error {
				if len(args) == 1 {
					output, err := a.rounds.GetSettlement(a.ctx, &roundService.GetSettlementInput{RoundID: args[0]})
					if err != nil {
						return err
					}
					return renderSettlement(output.Settlement, c.cfg.Decimals)
				}

				output, err := a.rounds.ListSettlements(a.ctx, &roundService.ListSettlementsInput{Limit: limit})
				if err != nil {
					return err
				}

				data := pterm.TableData{{"Round", "Face", "Pot", "Paid", "Fee", "Winners", "Settled"}}
				for _, settlement := range output.Settlements {
					data = append(data, []string{
						settlement.RoundID,
						strconv.Itoa(settlement.WinningNumber),
						formatAmount(settlement.Pot, c.cfg.Decimals),
						formatAmount(settlement.Distributed(), c.cfg.Decimals),
						formatAmount(settlement.Fee, c.cfg.Decimals),
						strconv.Itoa(len(settlement.Payouts)),
						settlement.SettledAt.Format("2006-01-02 15:04:05"),
					})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			})
		},
	}
	cmd.Flags().Int64VarP(&limit, "limit", "n", 10, "number of settlements to show, 0 for all")
	return cmd
}

func statsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <participant>",
		Short: "Show a participant's winnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(true, func(a *app) error {
				output, err := a.rounds.GetParticipantStats(a.ctx, &roundService.GetParticipantStatsInput{
					ParticipantID: args[0],
				})
				if err != nil {
					return err
				}

				return pterm.DefaultTable.WithData(pterm.TableData{
					{"Participant", output.Stats.ParticipantID},
					{"Rounds won", strconv.FormatInt(output.Stats.RoundsWon, 10)},
					{"Total won", formatAmount(output.Stats.TotalWon, c.cfg.Decimals)},
				}).Render()
			})
		},
	}
}
