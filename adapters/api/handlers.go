package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"csvplot/app"
	"csvplot/domain/session"
	"csvplot/internal/errors"
)

type uploadRequest struct {
	Contents string        `json:"contents"`
	Filename string        `json:"filename"`
	State    session.State `json:"state"`
}

type uploadResponse struct {
	State   session.State     `json:"state"`
	Summary app.UploadSummary `json:"summary"`
	Error   string            `json:"error,omitempty"`
}

type optionsRequest struct {
	State session.State `json:"state"`
}

type panelsRequest struct {
	Selected []string                `json:"selected"`
	State    session.State           `json:"state"`
	Prior    []session.AxisSelection `json:"prior"`
}

type eventRequest struct {
	Value     []string              `json:"value"`
	Selection session.AxisSelection `json:"selection"`
	State     session.State         `json:"state"`
}

type chartRequest struct {
	Selection session.AxisSelection `json:"selection"`
	State     session.State         `json:"state"`
	Format    string                `json:"format"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	reqID := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		a.logger.Error("%s %s (%s): %v", r.Method, r.URL.Path, reqID, err)
		writeJSON(w, status, map[string]string{"error": "internal error", "request_id": reqID})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": errors.GetCode(err), "request_id": reqID})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.FromRequestBody(err)
	}
	return nil
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleNotFound(w http.ResponseWriter, r *http.Request) {
	a.writeError(w, r, errors.NotFound("route "+r.URL.Path))
}

// handleUpload returns the next state after decoding one file
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	next, summary, err := a.service.Upload(req.State, app.Upload{Contents: req.Contents, Filename: req.Filename})
	if err != nil {
		status := errors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			a.writeError(w, r, err)
			return
		}
		writeJSON(w, status, uploadResponse{State: next, Summary: summary, Error: summary.Error})
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{State: next, Summary: summary})
}

func (a *App) handleOptions(w http.ResponseWriter, r *http.Request) {
	var req optionsRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]app.Option{"options": app.FileOptions(req.State)})
}

func (a *App) handlePanels(w http.ResponseWriter, r *http.Request) {
	var req panelsRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	set, err := a.service.BuildPanels(r.Context(), req.Selected, req.State, req.Prior)
	if err != nil {
		a.writeError(w, r, errors.Wrap(err, "failed to build panels"))
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// handlePanelEvent takes the panel key from the path, e.g. /v1/panels/y-axis:sales.csv/events
func (a *App) handlePanelEvent(w http.ResponseWriter, r *http.Request) {
	key, err := panelKeyParam(r)
	if err != nil {
		a.writeError(w, r, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}

	var req eventRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	result, err := a.dispatcher.Dispatch(app.AxisEvent{Key: key, Value: req.Value, Selection: req.Selection}, req.State)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleChart returns the chart spec as JSON, or a PNG when format is "png"
func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	spec := a.service.RenderChart(req.Selection, req.State)
	if req.Format != "png" {
		writeJSON(w, http.StatusOK, spec)
		return
	}

	var buf bytes.Buffer
	if err := a.rasterizer.RenderPNG(spec, &buf); err != nil {
		a.writeError(w, r, errors.Wrap(err, "failed to render chart"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// panelKeyParam reads the {key} segment in PanelKey.String form. chi matches
// on the decoded path unless the request carried escapes the default
// encoding would not produce, so the filename half is re-escaped first.
func panelKeyParam(r *http.Request) (session.PanelKey, error) {
	raw := chi.URLParam(r, "key")
	if r.URL.RawPath == "" {
		if role, name, ok := strings.Cut(raw, ":"); ok {
			raw = role + ":" + url.PathEscape(name)
		}
	}
	return session.ParsePanelKey(raw)
}
