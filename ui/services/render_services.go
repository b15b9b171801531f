package services

import (
	"html/template"
	"log"
	"strings"

	"csvplot/app"
	"csvplot/ui/templates/fragments"
)

// RenderService renders dashboard fragments to HTML strings for HTMX swaps
type RenderService struct {
	templates *template.Template
}

func NewRenderService(templates *template.Template) *RenderService {
	return &RenderService{
		templates: templates,
	}
}

func (s *RenderService) RenderPanels(set app.PanelSet) string {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, fragments.Panels, set); err != nil {
		log.Printf("[ERROR] Failed to render panels template: %v", err)
		return `<p class="error">Error rendering panels</p>`
	}
	return buf.String()
}

func (s *RenderService) RenderUploadSummary(summary app.UploadSummary) string {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, fragments.UploadSummary, summary); err != nil {
		log.Printf("[ERROR] Failed to render upload summary template: %v", err)
		return `<p class="error">Error rendering upload summary</p>`
	}
	return buf.String()
}
