// Package fragments provides template names for the dashboard page and its fragments
package fragments

import "strings"

// Template names as registered with html/template
const (
	// Page
	Index = "index.html"

	// Fragments
	Panels        = "fragments/panels.html"
	UploadSummary = "fragments/upload_summary.html"
)

// IntroMarkdown is the markdown file rendered above the upload widget
const IntroMarkdown = "templates/intro.md"

// GetAllTemplatePaths returns all template names for registration checks
func GetAllTemplatePaths() []string {
	return []string{
		Index,
		Panels,
		UploadSummary,
	}
}

// GetTemplateCategory returns the category for a given template name
func GetTemplateCategory(templatePath string) string {
	switch {
	case strings.HasPrefix(templatePath, "fragments/"):
		return "fragments"
	case strings.HasSuffix(templatePath, ".html"):
		return "page"
	default:
		return "unknown"
	}
}
