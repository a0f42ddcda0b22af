package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strukto/strukto/pkg/controlflow"
	"github.com/strukto/strukto/pkg/errors"
	"github.com/strukto/strukto/pkg/layout"
)

// layoutCommand creates the layout command, which prints the computed
// layout tree as JSON without rendering it. Useful for debugging
// geometry and for clients that draw the structogram themselves.
func (c *CLI) layoutCommand() *cobra.Command {
	var method, output string

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute a structogram layout and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := controlflow.ReadDocumentFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "load %s", args[0])
			}

			m, err := resolveMethod(doc, method)
			if err != nil {
				return err
			}

			d := layout.NewBuilder(nil).BuildMethod(m)
			if d == nil {
				return errors.New(errors.ErrCodeInvalidDocument,
					"method %q has no control-flow tree", m.Name)
			}
			c.Logger.Debugf("Layout computed: %dx%d", d.Root.Width, d.Root.Height)

			data, err := json.MarshalIndent(d, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "", "method to lay out (defaults to the only method)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to stdout)")

	return cmd
}

// resolveMethod selects a method by name, defaulting to the single
// method of a one-method document.
func resolveMethod(doc *controlflow.Document, name string) (*controlflow.Method, error) {
	if name == "" {
		if len(doc.Methods) == 1 {
			return &doc.Methods[0], nil
		}
		return nil, errors.New(errors.ErrCodeMethodNotFound,
			"document has %d methods, select one with --method", len(doc.Methods))
	}
	m, ok := doc.Method(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeMethodNotFound, "no method %q in document", name)
	}
	return m, nil
}
