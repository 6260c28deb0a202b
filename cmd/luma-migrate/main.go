// Command luma-migrate copies a luma library between storage backends.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpshade/luma/internal/config"
	"github.com/dpshade/luma/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var from, to, dataDir string
	var yes bool

	cmd := &cobra.Command{
		Use:   "luma-migrate",
		Short: "Copy the prompt library and theme between storage backends",
		Example: `  luma-migrate --from json --to sqlite
  luma-migrate --data-dir ~/notes/luma --from sqlite --to json --yes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == to {
				return fmt.Errorf("--from and --to are both %q", from)
			}

			overrides := map[string]string{}
			if dataDir != "" {
				overrides[config.KeyDataDir] = dataDir
			}
			cfg, err := config.Load(config.Options{Overrides: overrides})
			if err != nil {
				return err
			}

			src, err := storage.Open(from, cfg.DataDir)
			if err != nil {
				return fmt.Errorf("failed to open %s store: %w", from, err)
			}
			defer src.Close()

			keys, err := src.Keys(cmd.Context())
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Source store is empty - migration not needed")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Copying %d keys from %s to %s in %s:\n", len(keys), from, to, cfg.DataDir)
			for _, k := range keys {
				fmt.Fprintf(out, "  - %s\n", k)
			}

			if !yes {
				fmt.Fprint(out, "\nProceed with migration? (y/N): ")
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.ToLower(strings.TrimSpace(response)) != "y" {
					fmt.Fprintln(out, "Migration cancelled")
					return nil
				}
			}

			dst, err := storage.Open(to, cfg.DataDir)
			if err != nil {
				return fmt.Errorf("failed to open %s store: %w", to, err)
			}
			defer dst.Close()

			n, err := storage.Copy(cmd.Context(), dst, src)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Migrated %d keys. Set store: %s in config.yaml to use the new backend.\n", n, to)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", storage.BackendJSON, "source backend: json or sqlite")
	cmd.Flags().StringVar(&to, "to", storage.BackendSQLite, "target backend: json or sqlite")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "library directory (default ~/.luma)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
