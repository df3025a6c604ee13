// Package export writes printable handouts of documents.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/fredcamaral/slidecast/internal/adapters/secondary/output"
	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

const (
	pageMargin   = 18.0
	bulletIndent = 7.0
	lineHeight   = 7.0
	codeHeight   = 5.0
)

// HandoutRenderer implements ports.HandoutExporter with gofpdf. Each slide
// becomes one landscape A4 page.
type HandoutRenderer struct {
	logger *slog.Logger
}

// NewHandoutRenderer creates a handout renderer
func NewHandoutRenderer(logger *slog.Logger) *HandoutRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HandoutRenderer{logger: logger.With("service", "handout")}
}

// Export writes the handout PDF for doc to outPath
func (r *HandoutRenderer) Export(ctx context.Context, doc *entities.Document, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		return errors.New("document cannot be nil")
	}

	pdf := r.build(doc)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building handout: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("writing handout: %w", err)
	}

	if err := output.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("saving handout: %w", err)
	}

	r.logger.Info("Handout exported",
		slog.String("output", outPath),
		slog.Int("pages", pdf.PageCount()),
		slog.Int("bytes", buf.Len()),
	)

	return nil
}

func (r *HandoutRenderer) build(doc *entities.Document) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := doc.Title
	if title == "" {
		title = "slidecast"
	}
	pdf.SetTitle(title, true)
	pdf.SetCreator("slidecast", true)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d / {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	if doc.HasTitleBlock() {
		r.addTitlePage(pdf, tr, doc)
	}

	for i := range doc.Slides {
		r.addSlidePage(pdf, tr, &doc.Slides[i])
	}

	if pdf.PageCount() == 0 {
		pdf.AddPage()
	}

	return pdf
}

func (r *HandoutRenderer) addTitlePage(pdf *gofpdf.Fpdf, tr func(string) string, doc *entities.Document) {
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()
	pdf.SetY(pageHeight/2 - 20)

	if doc.Title != "" {
		pdf.SetFont("Helvetica", "B", 32)
		pdf.SetTextColor(9, 105, 218)
		pdf.MultiCell(0, 14, tr(doc.Title), "", "C", false)
	}
	if doc.Subtitle != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 18)
		pdf.SetTextColor(87, 96, 106)
		pdf.MultiCell(0, 9, tr(doc.Subtitle), "", "C", false)
	}
}

func (r *HandoutRenderer) addSlidePage(pdf *gofpdf.Fpdf, tr func(string) string, slide *entities.Slide) {
	pdf.AddPage()

	if slide.Title != "" {
		pdf.SetFont("Helvetica", "B", 22)
		pdf.SetTextColor(9, 105, 218)
		pdf.MultiCell(0, 11, tr(slide.Title), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetTextColor(31, 35, 40)
	for _, block := range slide.Content {
		switch b := block.(type) {
		case entities.BulletList:
			pdf.SetFont("Helvetica", "", 13)
			for _, item := range b.Items {
				indent := float64(item.Level) * bulletIndent
				pdf.SetX(pageMargin + indent)
				pdf.MultiCell(0, lineHeight, tr("• "+item.Text), "", "L", false)
			}
		case entities.Paragraph:
			pdf.SetFont("Helvetica", "", 13)
			pdf.MultiCell(0, lineHeight, tr(b.Text), "", "L", false)
		case entities.CodeBlock:
			pdf.SetFont("Courier", "", 10)
			pdf.SetFillColor(246, 248, 250)
			code := strings.ReplaceAll(b.Code, "\t", "    ")
			if code == "" {
				code = " "
			}
			pdf.MultiCell(0, codeHeight, tr(code), "", "L", true)
		case entities.Image:
			pdf.SetFont("Helvetica", "I", 11)
			pdf.SetTextColor(87, 96, 106)
			label := "[image] " + b.Src
			if b.Alt != "" {
				label = fmt.Sprintf("[image: %s] %s", b.Alt, b.Src)
			}
			pdf.MultiCell(0, lineHeight, tr(label), "", "L", false)
			pdf.SetTextColor(31, 35, 40)
		}
		pdf.Ln(3)
	}
}

var _ ports.HandoutExporter = (*HandoutRenderer)(nil)
