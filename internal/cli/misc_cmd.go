package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/dpshade/luma/internal/errors"
	"github.com/dpshade/luma/internal/generator"
	"github.com/dpshade/luma/internal/importer"
	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/theme"
)

func (c *CLI) templatesCmd() *cobra.Command {
	var category, format string

	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "List prompt templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := c.service.Templates()
			list := catalog.All()
			categories := catalog.Categories()
			if category != "" {
				list = catalog.ByCategory(category)
				categories = []string{category}
			}
			return formatTemplates(cmd.OutOrStdout(), list, categories, format)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only templates in this category")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format: table or json")
	cmd.AddCommand(c.templateSaveCmd(), c.templateImportClaudeCmd())
	return cmd
}

func (c *CLI) templateSaveCmd() *cobra.Command {
	var ff fieldFlags
	var name, category, description, icon string

	cmd := &cobra.Command{
		Use:   "save ID",
		Short: "Save a field-set as a reusable template",
		Example: `  luma templates save release-notes --name "Release Notes" \
    --role "You are a technical writer" --format "Markdown bullet list"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := ff.resolve()
			if err != nil {
				return err
			}
			if name == "" {
				name = args[0]
			}

			path, err := c.service.SaveTemplate(models.Template{
				ID:       args[0],
				Name:     name,
				Category: category,
				Summary:  description,
				Icon:     icon,
				Fields:   fields,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %s to %s\n", args[0], path)
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "display name (default: the ID)")
	cmd.Flags().StringVar(&category, "category", "Custom", "category")
	cmd.Flags().StringVar(&description, "description", "", "one-line description")
	cmd.Flags().StringVar(&icon, "icon", "", "emoji shown before the name")
	return cmd
}

func (c *CLI) templateImportClaudeCmd() *cobra.Command {
	var user, dryRun bool

	cmd := &cobra.Command{
		Use:   "import-claude [PATH]",
		Short: "Import Claude Code commands and agents as templates",
		Long: `Scans PATH/.claude/commands and PATH/.claude/agents (PATH defaults to the
current directory). Commands become templates whose task is the command body;
agents become templates whose role is the agent prompt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := importer.ImportOptions{UserLevel: user}
			if len(args) == 1 {
				opts.Path = args[0]
			}

			imported, skipped, err := c.service.ImportClaudeCode(opts, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range skipped {
				fmt.Fprintf(out, "  ⚠ %v\n", e)
			}
			if len(imported) == 0 {
				fmt.Fprintln(out, "No Claude Code commands or agents found.")
				return nil
			}
			verb := "Imported"
			if dryRun {
				verb = "Would import"
			}
			fmt.Fprintf(out, "%s %d template(s):\n", verb, len(imported))
			for _, t := range imported {
				fmt.Fprintf(out, "  %s\t%s\n", t.ID, t.Title())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "also scan ~/.claude")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list what would be imported without writing")
	return cmd
}

func (c *CLI) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, c.service.Theme(ctx))
				return nil
			}
			if args[0] == "toggle" {
				fmt.Fprintln(out, c.service.ToggleTheme(ctx))
				return nil
			}

			t, ok := theme.Parse(args[0])
			if !ok {
				return apperrors.InvalidInputError(fmt.Sprintf("unknown theme %q (want light, dark or toggle)", args[0]))
			}
			c.service.SetTheme(ctx, t)
			fmt.Fprintln(out, t)
			return nil
		},
	}
}

func (c *CLI) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "schema",
		Short:       "Print the JSON Schema of the machine-optimized prompt",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoService: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := generator.Schema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return nil
		},
	}
}

func (c *CLI) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoService: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "luma %s\n", Version)
		},
	}
}
