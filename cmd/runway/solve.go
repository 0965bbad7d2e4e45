package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Find what it takes for the money to last a target number of years",
		Long: `Solve for the regular expenses, total corpus or return shift at which the
runway reaches a target number of years. Each target adjusts one input and
keeps everything else unchanged.

Examples:
  runway solve plan.yaml --years 30
  runway solve --target expenses --years 25
  runway solve plan.yaml --target returns --format json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			years, _ := cmd.Flags().GetFloat64("years")
			targetName, _ := cmd.Flags().GetString("target")
			outputFormat, _ := cmd.Flags().GetString("format")
			currency, _ := cmd.Flags().GetString("currency")

			target, err := breakeven.ParseTarget(targetName)
			if err != nil {
				return err
			}
			format := strings.ToLower(outputFormat)
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
			}

			cfg, err := loadInput(cmd, args)
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(newEngine(cmd))
			targetYears := decimal.NewFromFloat(years)
			ctx := context.Background()

			var text string
			if target == breakeven.TargetAll {
				result, err := solver.SolveAll(ctx, cfg, targetYears)
				if err != nil {
					return fmt.Errorf("solve failed: %w", err)
				}
				if format == "json" {
					text, err = (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(result)
					if err != nil {
						return fmt.Errorf("failed to format JSON: %w", err)
					}
				} else {
					text = (&breakeven.TableFormatter{Currency: currency}).FormatMulti(result)
				}
			} else {
				result, err := solver.Solve(ctx, breakeven.Request{
					Config:      cfg,
					Target:      target,
					TargetYears: targetYears,
				})
				if err != nil {
					return fmt.Errorf("solve failed: %w", err)
				}
				if format == "json" {
					text, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
					if err != nil {
						return fmt.Errorf("failed to format JSON: %w", err)
					}
				} else {
					text = (&breakeven.TableFormatter{Currency: currency}).Format(result)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().Float64("years", 30, "Target runway in years")
	cmd.Flags().String("target", "all", "Input to solve for: expenses, corpus, returns, all")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, json")
	cmd.Flags().String("currency", "INR", "Currency code for amounts")

	return cmd
}
