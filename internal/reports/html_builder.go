package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"omnigrid/internal/config"
)

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	goldmark goldmark.Markdown
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // Allow raw HTML in markdown
		),
	)

	return &HTMLBuilder{goldmark: md}
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Date        string
	GeneratedAt string
	Content     template.HTML
	Version     string
	Charts      []ChartRef
	Dashboard   string
}

// ChartRef points the template at one rendered chart image
type ChartRef struct {
	Title string
	Src   string
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildCompleteHTML creates a complete HTML document with the run summary
// and references to the generated chart files
func (h *HTMLBuilder) BuildCompleteHTML(markdownContent string, charts []ChartRef, dashboardFile string) (string, error) {
	htmlContent, err := h.ConvertMarkdownToHTML(markdownContent)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	data := TemplateData{
		Date:        now.Format("2006-01-02"),
		GeneratedAt: now.Format("2006-01-02 15:04:05 UTC"),
		Content:     template.HTML(htmlContent),
		Version:     config.GetVersion(),
		Charts:      charts,
		Dashboard:   dashboardFile,
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}

// WriteHTML writes the complete HTML report into the output directory
func (rb *ReportBuilder) WriteHTML(markdownContent string, charts []ChartRef, dashboardFile, filename string) (string, error) {
	builder := NewHTMLBuilder()
	htmlDoc, err := builder.BuildCompleteHTML(markdownContent, charts, dashboardFile)
	if err != nil {
		return "", err
	}

	path := filepath.Join(rb.outputDir, filename)
	if err := os.WriteFile(path, []byte(htmlDoc), 0o644); err != nil {
		return "", fmt.Errorf("failed to write HTML report %s: %w", path, err)
	}

	rb.log.Debugf("Wrote HTML report (%d bytes)", len(htmlDoc))
	return path, nil
}
