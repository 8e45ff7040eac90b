// Package stamp applies and removes the validation annotation on timecard
// PDFs. The annotation is a pdfcpu text stamp anchored to the top-right corner
// of the first page; because pdfcpu tracks its own stamps, removal restores
// the page content exactly rather than painting over the region.
package stamp

import (
	"context"
	"fmt"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/firedesk/timecard/internal/shared"
)

// Annotation box geometry, in PDF points, mirrored by the stamp description.
const (
	BoxWidth  = 200
	BoxHeight = 60
	BoxMargin = 20
)

// Validation carries the operator identity rendered into the stamp.
type Validation struct {
	Name string
	Rank string
	Date time.Time
}

// Stamper mutates stored PDF documents between lifecycle states.
type Stamper interface {
	// Apply writes src with the validation annotation added to dst.
	Apply(ctx context.Context, src, dst string, v Validation) error
	// Remove writes src with the validation annotation stripped to dst.
	Remove(ctx context.Context, src, dst string) error
}

// PDFCPU is the production Stamper backed by the pdfcpu library.
type PDFCPU struct {
	conf *model.Configuration
}

// NewPDFCPU returns a Stamper using pdfcpu's relaxed default configuration.
func NewPDFCPU() *PDFCPU {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPU{conf: conf}
}

// firstPage restricts stamping to the first page of the document.
var firstPage = []string{"1"}

func (p *PDFCPU) watermark(v Validation) (*model.Watermark, error) {
	text := fmt.Sprintf("VALIDATION\nValidated by: %s\nRank: %s\nDate: %s",
		v.Name, v.Rank, v.Date.Format("1/2/2006, 3:04:05 PM"))
	desc := fmt.Sprintf(
		"fontname:Helvetica, points:8, scale:1 abs, rot:0, pos:tr, off:%d %d, "+
			"fillc:#000000, bgcol:#ffffff, border:1 #000000, margins:6, op:1",
		-BoxMargin, -BoxMargin)
	return api.TextWatermark(text, desc, true, false, types.POINTS)
}

// Apply stamps the validation annotation onto page one of src and writes dst.
func (p *PDFCPU) Apply(ctx context.Context, src, dst string, v Validation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wm, err := p.watermark(v)
	if err != nil {
		return fmt.Errorf("stamp: build watermark: %w", err)
	}
	if err := api.AddWatermarksFile(src, dst, firstPage, wm, p.conf); err != nil {
		return fmt.Errorf("stamp: apply: %w: %v", shared.ErrIOFailure, err)
	}
	return nil
}

// Remove strips the stamp from page one of src and writes dst.
func (p *PDFCPU) Remove(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := api.RemoveWatermarksFile(src, dst, firstPage, p.conf); err != nil {
		return fmt.Errorf("stamp: remove: %w: %v", shared.ErrIOFailure, err)
	}
	return nil
}

// Verify checks that path parses as a well-formed PDF.
func (p *PDFCPU) Verify(path string) error {
	if err := api.ValidateFile(path, p.conf); err != nil {
		return fmt.Errorf("stamp: validate %s: %w: %v", path, shared.ErrIOFailure, err)
	}
	return nil
}
