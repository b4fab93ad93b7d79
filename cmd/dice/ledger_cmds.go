package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dicepool/internal/ledger"
)

func mintCmd(c *cli) *cobra.Command {
	var asset string

	cmd := &cobra.Command{
		Use:   "mint <holder> <amount>",
		Short: "Credit new units to a holder for local play",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(false, func(a *app) error {
				amount, err := parseAmount(args[1], c.cfg.Decimals)
				if err != nil {
					return err
				}

				if err := a.ledger.Mint(a.ctx, &ledger.MintInput{
					Asset:  asset,
					Holder: args[0],
					Amount: amount,
				}); err != nil {
					return err
				}

				a.logger.Info("minted", "asset", asset, "holder", args[0], "amount", amount)
				pterm.Success.Printfln("Minted %s %s to %s", formatAmount(amount, c.cfg.Decimals), asset, args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&asset, "asset", "a", "chip", "asset to mint")
	return cmd
}

func balanceCmd(c *cli) *cobra.Command {
	var assets []string

	cmd := &cobra.Command{
		Use:   "balance <holder>",
		Short: "Show a holder's balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(false, func(a *app) error {
				if len(assets) == 0 {
					assets = []string{"chip", c.cfg.AccessAsset}
				}

				data := pterm.TableData{{"Asset", "Balance"}}
				for _, asset := range assets {
					balance, err := a.ledger.BalanceOf(a.ctx, &ledger.BalanceOfInput{
						Asset:  asset,
						Holder: args[0],
					})
					if err != nil {
						return err
					}
					data = append(data, []string{asset, formatAmount(balance, c.cfg.Decimals)})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
			})
		},
	}
	cmd.Flags().StringSliceVarP(&assets, "asset", "a", nil, "assets to show")
	return cmd
}
