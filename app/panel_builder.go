package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"csvplot/domain/chart"
	"csvplot/domain/session"
	"csvplot/domain/table"
)

const noSelectionMessage = "No files selected for plotting."

// Panel is the chart placeholder and axis controls of one selected file.
type Panel struct {
	Filename  string                `json:"filename"`
	Title     string                `json:"title"`
	GraphKey  session.PanelKey      `json:"graph_key"`
	XAxisKey  session.PanelKey      `json:"x_axis_key"`
	YAxisKey  session.PanelKey      `json:"y_axis_key"`
	XOptions  []Option              `json:"x_options"`
	YOptions  []Option              `json:"y_options"`
	Selection session.AxisSelection `json:"selection"`
	Chart     chart.Spec            `json:"chart"`
	Error     string                `json:"error,omitempty"`
}

// PanelSet is either a list of panels or a placeholder message
type PanelSet struct {
	Panels      []Panel `json:"panels"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// BuildPanels emits one panel per selected filename, in selection order.
// Selections in prior are carried over for files that stay selected, so a
// deselected file drops only its own panel.
func (s *DashboardService) BuildPanels(ctx context.Context, selected []string, state session.State, prior []session.AxisSelection) (PanelSet, error) {
	names := uniqueNames(selected)
	if len(names) == 0 {
		return PanelSet{Panels: []Panel{}, Placeholder: noSelectionMessage}, nil
	}

	carried := make(map[string]session.AxisSelection, len(prior))
	for _, sel := range prior {
		if _, ok := carried[sel.Filename]; !ok {
			carried[sel.Filename] = sel
		}
	}

	var entries []session.UploadedTable
	for _, name := range names {
		entry, ok := state.Find(name)
		if !ok {
			s.logger.Debug("selected file %s is not in the session; skipping panel", name)
			continue
		}
		entries = append(entries, entry)
	}

	panels := make([]Panel, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			panels[i] = s.buildPanel(entry, carried[entry.Name])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PanelSet{}, err
	}

	return PanelSet{Panels: panels}, nil
}

func (s *DashboardService) buildPanel(entry session.UploadedTable, prior session.AxisSelection) Panel {
	panel := Panel{
		Filename: entry.Name,
		Title:    fmt.Sprintf("Graph for %s", entry.Name),
		GraphKey: session.KeyFor(session.RoleGraph, entry.Name),
		XAxisKey: session.KeyFor(session.RoleXAxis, entry.Name),
		YAxisKey: session.KeyFor(session.RoleYAxis, entry.Name),
		XOptions: []Option{},
		YOptions: []Option{},
		Selection: session.AxisSelection{
			Filename: entry.Name,
			X:        prior.X,
			Y:        prior.Y,
		},
		Chart: chart.Empty(entry.Name),
	}

	tbl, err := table.Unmarshal(entry.Data)
	if err != nil {
		s.logger.Warn("stored table %s could not be read: %v", entry.Name, err)
		panel.Error = parseFailedMessage
		return panel
	}

	panel.XOptions = columnOptions(tbl.ColumnNames())
	panel.YOptions = columnOptions(tbl.NumericColumns())
	if panel.Selection.Complete() {
		panel.Chart = s.plot(entry.Name, tbl, panel.Selection)
	}
	return panel
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
