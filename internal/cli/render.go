package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strukto/strukto/pkg/errors"
	"github.com/strukto/strukto/pkg/pipeline"
	"github.com/strukto/strukto/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	method    string  // method to render (optional for single-method documents)
	theme     string  // built-in theme name
	themeFile string  // TOML theme file, overrides --theme
	output    string  // output file path (or base path for multiple formats)
	formats   []string
	pngScale  float64
	noCache   bool
}

// renderCommand creates the render command for generating structograms.
//
// Default settings:
//   - theme: light
//   - format: svg
//   - png-scale: 2.0
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		theme:    pipeline.DefaultTheme,
		pngScale: pipeline.DefaultPNGScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a control-flow document as a structogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "m", "", "method to render (defaults to the only method)")
	cmd.Flags().StringVar(&opts.theme, "theme", opts.theme, fmt.Sprintf("theme: %s", strings.Join(render.ThemeNames(), ", ")))
	cmd.Flags().StringVar(&opts.themeFile, "theme-file", "", "TOML theme file (overrides --theme)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "raster scale factor for PNG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout/artifact cache")

	return cmd
}

// runRender executes the full pipeline and writes the requested artifacts.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", input)
	}

	popts := pipeline.Options{
		Method:   opts.method,
		Theme:    opts.theme,
		Formats:  opts.formats,
		PNGScale: opts.pngScale,
		Logger:   c.Logger,
	}
	if opts.themeFile != "" {
		t, err := render.LoadThemeFile(opts.themeFile)
		if err != nil {
			return err
		}
		popts.ThemeValue = &t
	}

	p := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "rendering structogram")
	spinner.Start()

	result, err := c.newRunner(opts.noCache).Execute(ctx, raw, popts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			return ctx.Err()
		}
		printError("%s", errors.UserMessage(err))
		return err
	}
	p.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	if err := writeArtifacts(input, opts, result); err != nil {
		return err
	}

	printSuccess("Rendered %s", result.Diagram.Title)
	printStats(result.Diagram.Root.Width, result.Diagram.Root.Height, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered artifact to disk. A single format
// goes to --output (or the input name with a new extension); multiple
// formats use --output as a base path.
func writeArtifacts(input string, opts *renderOpts, result *pipeline.Result) error {
	base := basePath(opts.output, input)

	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" && filepath.Ext(opts.output) != "" {
			path = opts.output
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
