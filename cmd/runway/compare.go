package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/compare"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/rgehrsitz/runway/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the runway against what-if scenarios",
		Long: `Compare a base configuration against alternative assumptions.

Examples:
  runway compare plan.yaml --with inflation_plus_1,returns_minus_1
  runway compare plan.yaml --with stress --format csv
  runway compare --transform adjust_returns:delta=2 --transform defer_expense:id=1,years=3
  runway compare --list-templates  # Show all available templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listTemplates, _ := cmd.Flags().GetBool("list-templates")
			if listTemplates {
				out := cmd.OutOrStdout()
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				fmt.Fprintf(out, "\nTransforms for --transform: %s\n",
					strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}

			templatesStr, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			templateNames := transform.ParseTemplateList(templatesStr)
			if len(templateNames) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required (use --list-templates to see available templates)")
			}

			cfg, err := loadInput(cmd, args)
			if err != nil {
				return err
			}

			configPath := "saved configuration"
			if len(args) > 0 {
				configPath = args[0]
			}
			baseScenarioName, _ := cmd.Flags().GetString("base")

			compareEngine := compare.NewCompareEngine(newEngine(cmd))
			comparisonSet, err := compareEngine.Compare(context.Background(), cfg, compare.CompareOptions{
				BaseScenarioName: baseScenarioName,
				Templates:        templateNames,
				Transforms:       transforms,
				ConfigPath:       configPath,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			currency, _ := cmd.Flags().GetString("currency")

			var text string
			switch strings.ToLower(outputFormat) {
			case "csv":
				formatter := &compare.CSVFormatter{}
				text, err = formatter.Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}

			case "json":
				yearly, _ := cmd.Flags().GetBool("yearly")
				formatter := &compare.JSONFormatter{Pretty: true, IncludeYearly: yearly}
				text, err = formatter.Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}

			case "compact":
				formatter := &compare.TableFormatter{Currency: currency}
				text = formatter.FormatCompact(comparisonSet) + "\n"

			case "table", "console", "":
				formatter := &compare.TableFormatter{Currency: currency}
				text = formatter.Format(comparisonSet)

			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}

			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().String("base", "base", "Label for the unmodified configuration")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Ad-hoc transform name:key=value,... (repeatable; combined into one scenario)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("yearly", false, "Include yearly projection rows in JSON output")
	cmd.Flags().String("currency", output.DefaultCurrency, "Currency code for amounts")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	return cmd
}
