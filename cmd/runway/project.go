package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/spf13/cobra"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Project how long the retirement corpus lasts",
		Long: `Runs the runway projection for a configuration file, or for the saved
configuration when no file is given.

Examples:
  runway project plan.yaml
  runway project plan.yaml --format html -o report.html
  runway project --format json --currency USD
  runway project plan.yaml --save   # also keep plan.yaml as the saved configuration`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadInput(cmd, args)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(outputFormat)
			if formatter == nil {
				return fmt.Errorf("unknown output format: %s (valid: %s)",
					outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			result := newEngine(cmd).RunConfig(*cfg)
			currency, _ := cmd.Flags().GetString("currency")
			report := output.NewReport(cfg.Params(), result, currency)

			outputFile, _ := cmd.Flags().GetString("output")
			if outputFile != "" || formatter.Name() == "pdf" {
				written, err := output.WriteFormatted(formatter, report, outputFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
			} else {
				data, err := formatter.Format(report)
				if err != nil {
					return fmt.Errorf("failed to format report: %w", err)
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}

			save, _ := cmd.Flags().GetBool("save")
			if save && len(args) > 0 {
				store, path, err := openStore(cmd)
				if err != nil {
					return err
				}
				if err := store.Save(*cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s to %s\n", args[0], path)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format (console, markdown, pretty, html, csv, json, pdf)")
	cmd.Flags().String("currency", output.DefaultCurrency, "Currency code for amounts (INR uses lakh/crore notation)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().Bool("save", false, "Save the input file as the configuration used without a file")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d investment buckets, %d one-time expenses)\n",
				args[0], len(cfg.InvestmentBuckets), len(cfg.OneTimeExpenses))
			return nil
		},
	}
}
