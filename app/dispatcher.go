package app

import (
	"fmt"

	"csvplot/domain/chart"
	"csvplot/domain/core"
	"csvplot/domain/session"
	"csvplot/internal/errors"
)

// AxisEvent is a change on one panel element. Selection is the panel's
// selection before the change.
type AxisEvent struct {
	Key       session.PanelKey      `json:"key"`
	Value     []string              `json:"value"`
	Selection session.AxisSelection `json:"selection"`
}

// EventResult is the panel's next selection and its re-rendered chart
type EventResult struct {
	Selection session.AxisSelection `json:"selection"`
	Chart     chart.Spec            `json:"chart"`
}

type eventHandler func(sel session.AxisSelection, value []string) session.AxisSelection

// Dispatcher routes panel events by role. The filename half of the key
// picks the panel, so an event never touches another panel's selection.
type Dispatcher struct {
	service  *DashboardService
	handlers map[session.Role]eventHandler
}

// NewDispatcher registers the axis handlers
func NewDispatcher(service *DashboardService) *Dispatcher {
	return &Dispatcher{
		service: service,
		handlers: map[session.Role]eventHandler{
			session.RoleXAxis: setXAxis,
			session.RoleYAxis: setYAxis,
			session.RoleGraph: refresh,
		},
	}
}

// Dispatch applies event to its panel's selection and re-renders that panel
func (d *Dispatcher) Dispatch(event AxisEvent, state session.State) (EventResult, error) {
	handler, ok := d.handlers[event.Key.Role]
	if !ok {
		return EventResult{}, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("%w: %q", core.ErrUnknownRole, event.Key.Role))
	}
	if event.Key.Filename == "" {
		return EventResult{}, errors.InvalidInput("panel key has no filename")
	}

	sel := event.Selection
	if sel.Filename != "" && sel.Filename != event.Key.Filename {
		return EventResult{}, errors.InvalidInput(fmt.Sprintf("selection for %s sent to panel %s", sel.Filename, event.Key.Filename))
	}
	sel.Filename = event.Key.Filename

	next := handler(sel, event.Value)
	return EventResult{
		Selection: next,
		Chart:     d.service.RenderChart(next, state),
	}, nil
}

func setXAxis(sel session.AxisSelection, value []string) session.AxisSelection {
	sel.X = ""
	if len(value) > 0 {
		sel.X = value[0]
	}
	return sel
}

func setYAxis(sel session.AxisSelection, value []string) session.AxisSelection {
	sel.Y = nil
	for _, v := range value {
		if v != "" {
			sel.Y = append(sel.Y, v)
		}
	}
	return sel
}

func refresh(sel session.AxisSelection, _ []string) session.AxisSelection {
	return sel
}
