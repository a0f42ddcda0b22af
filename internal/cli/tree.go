package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strukto/strukto/pkg/controlflow"
	"github.com/strukto/strukto/pkg/errors"
)

// treeCommand creates the tree command, a debug tool that draws the raw
// control-flow tree as a node-link diagram via Graphviz. Useful when a
// structogram looks wrong and the question is whether the parser or the
// layout is at fault.
func (c *CLI) treeCommand() *cobra.Command {
	var method, format, output string

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Visualize the raw control-flow tree via Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", format)
			}

			doc, err := controlflow.ReadDocumentFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "load %s", args[0])
			}

			m, err := resolveMethod(doc, method)
			if err != nil {
				return err
			}
			if m.ControlTree == nil {
				return errors.New(errors.ErrCodeInvalidDocument,
					"method %q has no control-flow tree", m.Name)
			}

			var data []byte
			switch format {
			case "dot":
				data = []byte(controlflow.ToDOT(m.ControlTree))
			case "svg":
				c.Logger.Info("Rendering control-flow tree SVG")
				data, err = controlflow.RenderDOTSVG(m.ControlTree)
				if err != nil {
					return errors.Wrap(errors.ErrCodeRenderFailed, err, "render tree")
				}
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "_tree." + format
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Generated %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "", "method to visualize (defaults to the only method)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <input>_tree.<format>)")

	return cmd
}
