package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"csvplot/adapters/chart"
	"csvplot/adapters/decoder"
	"csvplot/app"
	"csvplot/domain/session"
	"csvplot/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "csvplot-cli",
		Short: "Inspect and plot CSV files without the browser",
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newSpecCmd(),
		newPlotCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSummaryCmd() *cobra.Command {
	var asJSON bool
	var policy string

	cmd := &cobra.Command{
		Use:   "summary [files...]",
		Short: "Upload files into a fresh session and print each upload summary",
		Long: `Decode each file the way the dashboard does and print rows, columns and
numeric column statistics.

Example: csvplot-cli summary sales.csv costs.csv --policy replace`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := config.ParseDuplicatePolicy(policy)
			if err != nil {
				return err
			}
			return runSummary(args, parsed, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print summaries as JSON")
	cmd.Flags().StringVar(&policy, "policy", string(config.DuplicateAppend), "Duplicate filename policy: append|replace")
	return cmd
}

func newSpecCmd() *cobra.Command {
	var x string
	var y []string

	cmd := &cobra.Command{
		Use:   "spec [file]",
		Short: "Print the chart specification for an X/Y selection",
		Long: `Print the JSON line-chart specification the dashboard would draw.

Example: csvplot-cli spec sales.csv --x month --y units,price`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, state, err := loadFiles(args, config.DuplicateAppend)
			if err != nil {
				return err
			}
			spec := service.RenderChart(selectionFor(args[0], x, y), state)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(spec)
		},
	}

	cmd.Flags().StringVar(&x, "x", "", "X column")
	cmd.Flags().StringSliceVar(&y, "y", nil, "Y columns (comma separated)")
	return cmd
}

func newPlotCmd() *cobra.Command {
	var x, out string
	var y []string
	var width, height int

	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Render a line chart of a file to PNG",
		Long: `Render the chart for an X/Y selection to a PNG file.

Example: csvplot-cli plot sales.csv --x month --y units -o units.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd.Context(), args[0], selectionFor(args[0], x, y), out, width, height)
		},
	}

	cmd.Flags().StringVar(&x, "x", "", "X column")
	cmd.Flags().StringSliceVar(&y, "y", nil, "Y columns (comma separated)")
	cmd.Flags().StringVarP(&out, "output", "o", "chart.png", "Output PNG path")
	cmd.Flags().IntVar(&width, "width", 960, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 480, "Image height in pixels")
	return cmd
}

func runSummary(paths []string, policy config.DuplicatePolicy, asJSON bool) error {
	service := app.NewDashboardService(decoder.NewDecoder(nil, nil), policy)
	state := session.State{}

	for _, path := range paths {
		up, err := readUpload(path)
		if err != nil {
			return err
		}
		next, summary, err := service.Upload(state, up)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		state = next

		if asJSON {
			b, err := json.Marshal(summary)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			continue
		}

		fmt.Printf("%s\n  %d rows, %d columns\n", summary.Message, summary.Rows, summary.Columns)
		for _, col := range summary.Numeric {
			fmt.Printf("  %-20s n=%-6d missing=%-4d min=%-10.4g max=%-10.4g mean=%-10.4g median=%-10.4g std=%.4g\n",
				col.Name, col.Count, col.Missing, col.Min, col.Max, col.Mean, col.Median, col.StdDev)
		}
	}

	fmt.Printf("Files in session: %s\n", strings.Join(state.Names(), ", "))
	return nil
}

func runPlot(ctx context.Context, path string, sel session.AxisSelection, out string, width, height int) error {
	service, state, err := loadFiles([]string{path}, config.DuplicateAppend)
	if err != nil {
		return err
	}

	// Build the panel as the dashboard would, so unknown columns are reported
	set, err := service.BuildPanels(ctx, []string{sel.Filename}, state, []session.AxisSelection{sel})
	if err != nil {
		return err
	}
	if len(set.Panels) == 0 || set.Panels[0].Chart.IsEmpty() {
		return fmt.Errorf("nothing to plot for x=%q y=%v; numeric columns: %v", sel.X, sel.Y, optionValues(set))
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	if err := chart.NewPNGRasterizer(width, height).RenderPNG(set.Panels[0].Chart, f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	fmt.Printf("Wrote %s (%d series)\n", out, len(set.Panels[0].Chart.Series))
	return nil
}

func loadFiles(paths []string, policy config.DuplicatePolicy) (*app.DashboardService, session.State, error) {
	service := app.NewDashboardService(decoder.NewDecoder(nil, nil), policy)
	state := session.State{}
	for _, path := range paths {
		up, err := readUpload(path)
		if err != nil {
			return nil, state, err
		}
		if state, _, err = service.Upload(state, up); err != nil {
			return nil, state, fmt.Errorf("%s: %w", path, err)
		}
	}
	return service, state, nil
}

func readUpload(path string) (app.Upload, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return app.Upload{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	mediaType := "text/csv"
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		mediaType = decoder.XLSXMediaType
	}
	return app.Upload{
		Contents: decoder.EncodePayload(mediaType, body),
		Filename: filepath.Base(path),
	}, nil
}

func selectionFor(path, x string, y []string) session.AxisSelection {
	return session.AxisSelection{Filename: filepath.Base(path), X: x, Y: y}
}

func optionValues(set app.PanelSet) []string {
	if len(set.Panels) == 0 {
		return nil
	}
	values := make([]string, len(set.Panels[0].YOptions))
	for i, opt := range set.Panels[0].YOptions {
		values[i] = opt.Value
	}
	return values
}
