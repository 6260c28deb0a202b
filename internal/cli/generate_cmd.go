package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	apperrors "github.com/dpshade/luma/internal/errors"
	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/templates"
)

// fieldFlags binds the seven framework fields plus --file
type fieldFlags struct {
	file   string
	fields models.FieldSet
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "", "YAML or JSON file with the field-set")
	flags.StringVar(&f.fields.Role, "role", "", "who the AI should act as")
	flags.StringVar(&f.fields.Task, "task", "", "what the AI should do")
	flags.StringVar(&f.fields.Context, "context", "", "background information")
	flags.StringVar(&f.fields.Format, "format", "", "required output format")
	flags.StringVar(&f.fields.Constraints, "constraints", "", "rules and limits")
	flags.StringVar(&f.fields.Examples, "examples", "", "examples to follow")
	flags.StringVar(&f.fields.Iteration, "iteration", "", "follow-up instructions")
}

// resolve reads --file, then lays any field flags over it
func (f *fieldFlags) resolve() (models.FieldSet, error) {
	var base models.FieldSet
	if f.file != "" {
		fs, err := loadFieldSet(f.file)
		if err != nil {
			return models.FieldSet{}, err
		}
		base = fs
	}
	return base.Merge(f.fields), nil
}

// loadFieldSet parses a YAML (or JSON) field-set file
func loadFieldSet(path string) (models.FieldSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FieldSet{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Failed to read field-set file")
	}
	var fs models.FieldSet
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return models.FieldSet{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Failed to parse field-set file").WithDetails(err.Error())
	}
	return fs, nil
}

func (c *CLI) finish(cmd *cobra.Command, p models.GeneratedPrompt, v models.ValidationResult, output string, save bool) error {
	out := cmd.OutOrStdout()
	if err := printPrompt(out, p, output); err != nil {
		return apperrors.InvalidInputError(err.Error())
	}
	fmt.Fprintln(out)
	printValidation(out, v)

	if save {
		if err := c.service.SavePrompt(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", p.ID)
	}
	return nil
}

func (c *CLI) newCmd() *cobra.Command {
	var templateID, output string
	var save bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a prompt step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("template") {
				if err := templateForm(c.service.Templates(), &templateID).Run(); err != nil {
					return abortedOr(err)
				}
			}

			var fields models.FieldSet
			var templateName string
			if templateID != skipTemplate {
				t, err := c.service.GetTemplate(templateID)
				if err != nil {
					return err
				}
				fields = templates.Apply(t, fields)
				templateName = t.Name
			}

			if err := guidedForm(&fields).Run(); err != nil {
				return abortedOr(err)
			}

			p, v, err := c.service.Generate(fields, templateName)
			if err != nil {
				return err
			}
			return c.finish(cmd, p, v, output, save)
		},
	}

	cmd.Flags().StringVarP(&templateID, "template", "t", "", "start from this template ID (empty for none)")
	cmd.Flags().StringVarP(&output, "output", "o", outputBoth, "what to print: human, machine or both")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the result to the library")
	return cmd
}

func abortedOr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func (c *CLI) instantCmd() *cobra.Command {
	var output string
	var save bool

	cmd := &cobra.Command{
		Use:   "instant IDEA...",
		Short: "Expand a one-line idea into a full prompt",
		Example: `  luma instant debug my python script
  luma instant "write a product launch email" --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idea := strings.Join(args, " ")
			if strings.TrimSpace(idea) == "" {
				return apperrors.InvalidInputError("describe what you need")
			}
			p, v, err := c.service.Instant(idea)
			if err != nil {
				return err
			}
			return c.finish(cmd, p, v, output, save)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputBoth, "what to print: human, machine or both")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the result to the library")
	return cmd
}

func (c *CLI) composeCmd() *cobra.Command {
	var ff fieldFlags
	var templateID, output string
	var save bool

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a prompt from flags or a field-set file",
		Example: `  luma compose --role "You are a senior Go reviewer" --task "Review this handler"
  luma compose --file prompt.yaml --output machine`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := ff.resolve()
			if err != nil {
				return err
			}

			var templateName string
			if templateID != "" {
				t, err := c.service.GetTemplate(templateID)
				if err != nil {
					return err
				}
				fields = templates.Apply(t, models.FieldSet{}).Merge(fields)
				templateName = t.Name
			}

			if fields.IsEmpty() {
				return apperrors.InvalidInputError("nothing to compose: pass field flags, --file or --template")
			}

			p, v, err := c.service.Generate(fields, templateName)
			if err != nil {
				return err
			}
			return c.finish(cmd, p, v, output, save)
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "start from this template ID; flags override its fields")
	cmd.Flags().StringVarP(&output, "output", "o", outputHuman, "what to print: human, machine or both")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the result to the library")
	return cmd
}

func (c *CLI) validateCmd() *cobra.Command {
	var ff fieldFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Score a field-set without composing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := ff.resolve()
			if err != nil {
				return err
			}
			v := c.service.Validate(fields)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), v)
			}
			printValidation(cmd.OutOrStdout(), v)
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
