package main

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the saved configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			cfg, err := store.Inspect()
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			var data []byte
			if asJSON {
				data, err = storage.EncodeSnapshot(cfg)
				data = append(data, '\n')
			} else {
				data, err = yaml.Marshal(&cfg)
			}
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	show.Flags().Bool("json", false, "Print the stored snapshot as JSON")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved configuration and go back to the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults")
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print where the configuration is saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := openStore(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <input-file>",
		Short: "Validate a configuration file and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			store, p, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Save(*cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into %s\n", args[0], p)
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export <output-file>",
		Short: "Write the saved configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			cfg, err := store.Inspect()
			if err != nil {
				return err
			}
			if err := config.NewInputParser().WriteToFile(args[0], &cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported configuration to %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(show, reset, path, importCmd, export)
	return cmd
}
