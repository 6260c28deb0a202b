package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apperrors "github.com/dpshade/luma/internal/errors"
	"github.com/dpshade/luma/internal/renderer"
)

func (c *CLI) listCmd() *cobra.Command {
	var query, template, format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved prompts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts := c.service.FilterPrompts(cmd.Context(), query, template)
			return formatOutput(cmd.OutOrStdout(), prompts, format)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "only prompts whose title or text contains this")
	cmd.Flags().StringVarP(&template, "template", "t", "", `only prompts built from this template name ("all" for any)`)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or ids")
	return cmd
}

func (c *CLI) searchCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Fuzzy-search saved prompts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts := c.service.SearchPrompts(cmd.Context(), strings.Join(args, " "))
			return formatOutput(cmd.OutOrStdout(), prompts, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or ids")
	return cmd
}

func (c *CLI) showCmd() *cobra.Command {
	var machine, raw, asJSON bool

	cmd := &cobra.Command{
		Use:     "show ID",
		Aliases: []string{"get"},
		Short:   "Show a saved prompt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.service.GetPrompt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				doc, err := renderer.JSON(p)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, doc)
				return nil
			}

			if raw || !c.isTTY() {
				if machine {
					fmt.Fprintln(out, p.MachineOptimized)
				} else {
					fmt.Fprintln(out, p.HumanOptimized)
				}
				return nil
			}

			fmt.Fprintln(out, headingStyle.Render(p.Title()))
			fmt.Fprintln(out, p.Description())
			r, err := renderer.NewTermRenderer(80, c.service.Theme(cmd.Context()).IsDark())
			if err != nil {
				c.service.Logger().Debug("glamour unavailable, printing raw", zap.Error(err))
			}
			fmt.Fprint(out, renderer.Preview(r, p, machine))
			printValidation(out, c.service.Validate(p.Data))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&machine, "machine", "m", false, "show the machine-optimized JSON")
	cmd.Flags().BoolVar(&raw, "raw", false, "print without markdown rendering")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full record as JSON")
	return cmd
}

func (c *CLI) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved prompt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.service.DeletePrompt(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *CLI) exportCmd() *cobra.Command {
	var format, dir string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a saved prompt to a .txt or .json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.service.GetPrompt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			path, err := c.service.Export(p, format, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "export format: text or json")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "destination directory (default from config export_dir)")
	return cmd
}

func (c *CLI) copyCmd() *cobra.Command {
	var machine bool

	cmd := &cobra.Command{
		Use:   "copy ID",
		Short: "Copy a saved prompt to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.service.GetPrompt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			text := p.HumanOptimized
			if machine {
				text = p.MachineOptimized
			}
			if err := c.service.Copy(text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&machine, "machine", "m", false, "copy the machine-optimized JSON")
	return cmd
}

func (c *CLI) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import prompts from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.service.ImportPrompts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if n == 0 {
				return apperrors.InvalidInputError("no prompts with an id found in " + args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d prompt(s)\n", n)
			return nil
		},
	}
}
