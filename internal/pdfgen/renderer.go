package pdfgen

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/firedesk/timecard/internal/kronos"
	"github.com/firedesk/timecard/web"
)

// Signature is the employee sign-off rendered at the bottom of a timecard.
type Signature struct {
	Name string `json:"name" validate:"required"`
	Date string `json:"date" validate:"required"`
}

// Document is the view model passed to the timecard HTML template.
type Document struct {
	EmployeeID      string
	EmployeeName    string
	EmployeeRank    string
	PayPeriodLabel  string
	Entries         []kronos.ScheduleEntry
	WorkCodeTotals  map[string]float64
	GrandTotalHours float64
	Signature       Signature
}

// PDFClient exposes the HTML-to-PDF conversion used by the renderer.
type PDFClient interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Renderer transforms a Document into PDF bytes via html/template + PDF conversion.
type Renderer struct {
	tpl    *template.Template
	client PDFClient
}

// NewRenderer parses the timecard template and wires the PDF client.
func NewRenderer(client PDFClient) (*Renderer, error) {
	if client == nil {
		return nil, fmt.Errorf("pdfgen renderer: pdf client required")
	}
	printer := message.NewPrinter(language.English)
	funcMap := template.FuncMap{
		"formatHours": func(v float64) string {
			return printer.Sprintf("%.1f", v)
		},
	}
	tpl, err := template.New("timecard.html").Funcs(funcMap).ParseFS(web.Templates, "templates/timecard.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl, client: client}, nil
}

// RenderHTML executes the template only; useful for tests and previews.
func (r *Renderer) RenderHTML(doc Document) (string, error) {
	buf := &bytes.Buffer{}
	if err := r.tpl.Execute(buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render executes the template and converts the HTML to PDF bytes.
func (r *Renderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if r == nil || r.tpl == nil || r.client == nil {
		return nil, fmt.Errorf("pdfgen renderer not initialised")
	}
	html, err := r.RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	return r.client.RenderHTML(ctx, html)
}
