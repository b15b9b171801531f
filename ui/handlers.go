package ui

import (
	"bytes"
	"net/http"

	"csvplot/app"
	"csvplot/domain/session"
	"csvplot/internal/errors"

	"github.com/gin-gonic/gin"
)

type uploadRequest struct {
	Contents string        `json:"contents"`
	Filename string        `json:"filename"`
	State    session.State `json:"state"`
}

type stateRequest struct {
	State session.State `json:"state"`
}

type panelsRequest struct {
	Selected []string                `json:"selected"`
	State    session.State           `json:"state"`
	Prior    []session.AxisSelection `json:"prior"`
}

type panelEventRequest struct {
	Key       string                `json:"key" binding:"required"`
	Value     []string              `json:"value"`
	Selection session.AxisSelection `json:"selection"`
	State     session.State         `json:"state"`
}

type chartRequest struct {
	Selection session.AxisSelection `json:"selection"`
	State     session.State         `json:"state"`
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// respondError writes err with the status its code maps to
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal error", "code": errors.GetCode(err)})
		return
	}
	s.logger.Debug("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

// handleIndex serves the dashboard page
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", gin.H{
		"Title":       pageTitle,
		"Intro":       s.intro,
		"Accept":      ".csv",
		"Summary":     app.UploadSummary{Message: "No file uploaded yet."},
		"Placeholder": "No files selected for plotting.",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleNotFound(c *gin.Context) {
	s.respondError(c, errors.NotFound("route "+c.Request.URL.Path))
}

// handleUpload decodes one file and returns the next state with its summary
func (s *Server) handleUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.FromRequestBody(err))
		return
	}

	next, summary, err := s.service.Upload(req.State, app.Upload{Contents: req.Contents, Filename: req.Filename})
	body := gin.H{"state": next, "summary": summary}
	if isHTMX(c) {
		body["html"] = s.renderService.RenderUploadSummary(summary)
	}
	if err != nil {
		status := errors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.respondError(c, err)
			return
		}
		body["error"] = summary.Error
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

// handleFileOptions lists the uploaded files as selector options
func (s *Server) handleFileOptions(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.FromRequestBody(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": app.FileOptions(req.State)})
}

// handlePanels builds one panel per selected file
func (s *Server) handlePanels(c *gin.Context) {
	var req panelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.FromRequestBody(err))
		return
	}

	set, err := s.service.BuildPanels(c.Request.Context(), req.Selected, req.State, req.Prior)
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to build panels"))
		return
	}

	if isHTMX(c) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, s.renderService.RenderPanels(set))
		return
	}
	c.JSON(http.StatusOK, set)
}

// handlePanelEvent applies an axis change to the panel named by the key
func (s *Server) handlePanelEvent(c *gin.Context) {
	var req panelEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.FromRequestBody(err))
		return
	}

	key, err := session.ParsePanelKey(req.Key)
	if err != nil {
		s.respondError(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}

	result, err := s.dispatcher.Dispatch(app.AxisEvent{Key: key, Value: req.Value, Selection: req.Selection}, req.State)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleChartPNG rasterizes the chart of one selection
func (s *Server) handleChartPNG(c *gin.Context) {
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.FromRequestBody(err))
		return
	}

	spec := s.service.RenderChart(req.Selection, req.State)
	var buf bytes.Buffer
	if err := s.rasterizer.RenderPNG(spec, &buf); err != nil {
		s.respondError(c, errors.Wrap(err, "failed to render chart"))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
