package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linskybing/formpilot/internal/domain/form"
	"github.com/linskybing/formpilot/pkg/utils"
	"github.com/spf13/cobra"
)

var errInvalidForm = errors.New("form definition is invalid")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a form definition",
		Long:  "Check a JSON or YAML form definition against the form rules and list every problem found.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			schema, err := validateDocument(args[0], content)
			var verr *form.ValidationError
			if errors.As(err, &verr) {
				out := cmd.OutOrStdout()
				for _, issue := range verr.Issues {
					fmt.Fprintf(out, "  - [%s] %s\n", issue.Kind, issue.Message)
				}
				return errInvalidForm
			}
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %q with %d fields\n", schema.Title, len(schema.Fields))
			return nil
		},
	}
}

// validateDocument picks the decoder from the file extension.
func validateDocument(name string, content []byte) (*form.Schema, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		doc, err := utils.DecodeYAML(content)
		if err != nil {
			return nil, err
		}
		candidate, ok := doc.(map[string]any)
		if !ok {
			return nil, errors.New("document must be a mapping")
		}
		return form.Validate(candidate)
	default:
		return form.ValidateJSON(content)
	}
}
