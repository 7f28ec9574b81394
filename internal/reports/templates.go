package reports

import (
	_ "embed"
)

//go:embed templates/report_template.html
var reportTemplateHTML string

//go:embed templates/styles.css
var stylesCSS string

// TemplateLoader hands out the embedded HTML template and CSS styles
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate returns the report page template
func (t *TemplateLoader) LoadHTMLTemplate() (string, error) {
	return reportTemplateHTML, nil
}

// LoadCSSStyles returns the stylesheet stored alongside each report
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	return stylesCSS, nil
}
