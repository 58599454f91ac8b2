package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cv-builder/internal/logger"
	"cv-builder/internal/model"
)

// Renderer turns an HTML document into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter is the CVRecord → PDF pipeline: build HTML from the template
// directory, inline the stylesheet, hand the document to the renderer.
// Pagination is entirely the renderer's concern.
type Exporter struct {
	renderer     Renderer
	tplDir       string
	defaultPhoto string
}

func NewExporter(r Renderer, tplDir, defaultPhoto string) *Exporter {
	return &Exporter{renderer: r, tplDir: tplDir, defaultPhoto: defaultPhoto}
}

type templateData struct {
	Title    string
	Record   *model.CVRecord
	PhotoURI template.URL
}

// Export renders rec to a complete PDF byte stream. A renderer fault or a
// stream without a PDF signature fails the export; no partial document is
// ever returned.
func (e *Exporter) Export(ctx context.Context, rec *model.CVRecord) ([]byte, error) {
	html, err := e.BuildHTML(rec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("render pdf: invalid output (len=%d)", len(pdf))
	}
	logger.Debug().
		Dur("took", time.Since(start)).
		Int("bytes", len(pdf)).
		Msg("pdf rendered")
	return pdf, nil
}

// BuildHTML executes the cv.html template for rec and inlines style.css
// into <head>. Missing required header fields fail fast here rather than
// producing a silently broken document.
func (e *Exporter) BuildHTML(rec *model.CVRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("build html: nil record")
	}
	if rec.Header.Name == "" || rec.Header.Role == "" {
		return "", fmt.Errorf("build html: header.name and header.role are required")
	}

	tpl, err := template.ParseFiles(filepath.Join(e.tplDir, "cv.html"))
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	data := templateData{
		Title:    rec.Title(),
		Record:   rec,
		PhotoURI: e.photoURI(rec.Header.Photo),
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	html := buf.String()

	// Inline the stylesheet so the document is self-contained for the
	// renderer's file:// load.
	if css, err := os.ReadFile(filepath.Join(e.tplDir, "style.css")); err == nil {
		html = strings.Replace(html, "<head>", "<head><style>"+string(css)+"</style>", 1)
	}
	return html, nil
}

// photoURI resolves the avatar for the header: the record's photo if it
// loads, otherwise the bundled default, otherwise empty (the template then
// falls back to the text-only centered layout). An unreadable photo is
// never an error. The result is a locally generated PNG data URI, so it is
// returned as template.URL to keep the sanitizer from rewriting it.
func (e *Exporter) photoURI(photoPath string) template.URL {
	for _, p := range []string{photoPath, e.defaultPhoto} {
		if p == "" {
			continue
		}
		avatar, err := CircleAvatar(p)
		if err != nil {
			logger.Debug().Str("path", p).Err(err).Msg("photo unavailable")
			continue
		}
		return template.URL(DataURI(avatar))
	}
	return ""
}
