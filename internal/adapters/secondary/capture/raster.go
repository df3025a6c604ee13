package capture

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

var (
	rasterBackground = color.RGBA{255, 255, 255, 255}
	rasterTitle      = color.RGBA{9, 105, 218, 255}
	rasterText       = color.RGBA{31, 35, 40, 255}
	rasterMuted      = color.RGBA{87, 96, 106, 255}
)

// RasterScreenshotter draws slide text from the deck timeline without a
// browser. Layout is approximate and images are not drawn.
type RasterScreenshotter struct {
	regular *truetype.Font
	bold    *truetype.Font
	mono    *truetype.Font
}

// NewRasterScreenshotter parses the embedded Go fonts
func NewRasterScreenshotter() (*RasterScreenshotter, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	mono, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing mono font: %w", err)
	}

	return &RasterScreenshotter{regular: regular, bold: bold, mono: mono}, nil
}

// Name identifies the backend
func (r *RasterScreenshotter) Name() string {
	return "raster"
}

// Screenshot draws the slide's title and lines onto a width x height canvas
func (r *RasterScreenshotter) Screenshot(ctx context.Context, _ string, slide entities.SlideTiming, width, height int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(rasterBackground)
	dc.Clear()

	if slide.TitleSlide {
		r.drawTitleSlide(dc, slide, width, height)
	} else {
		r.drawContentSlide(dc, slide, width, height)
	}

	return dc.Image(), nil
}

func (r *RasterScreenshotter) drawTitleSlide(dc *gg.Context, slide entities.SlideTiming, width, height int) {
	w, h := float64(width), float64(height)
	titleSize := h / 11
	subtitleSize := h / 22

	y := h / 2
	if len(slide.Lines) > 0 {
		y -= subtitleSize
	}

	if slide.Title != "" {
		dc.SetFontFace(truetype.NewFace(r.bold, &truetype.Options{Size: titleSize}))
		dc.SetColor(rasterTitle)
		dc.DrawStringAnchored(slide.Title, w/2, y, 0.5, 0.5)
		y += titleSize * 1.2
	}

	dc.SetFontFace(truetype.NewFace(r.regular, &truetype.Options{Size: subtitleSize}))
	dc.SetColor(rasterMuted)
	for _, line := range slide.Lines {
		dc.DrawStringAnchored(line, w/2, y, 0.5, 0.5)
		y += subtitleSize * 1.4
	}
}

func (r *RasterScreenshotter) drawContentSlide(dc *gg.Context, slide entities.SlideTiming, width, height int) {
	w, h := float64(width), float64(height)
	marginX := w * 0.08
	marginY := h * 0.08
	contentWidth := w - 2*marginX
	titleSize := h / 16
	textSize := h / 30

	y := marginY + titleSize

	if slide.Title != "" {
		dc.SetFontFace(truetype.NewFace(r.bold, &truetype.Options{Size: titleSize}))
		dc.SetColor(rasterTitle)
		for _, line := range wrapText(dc, slide.Title, contentWidth) {
			dc.DrawString(line, marginX, y)
			y += titleSize * 1.2
		}
		y += titleSize * 0.4
	}

	regular := truetype.NewFace(r.regular, &truetype.Options{Size: textSize})
	mono := truetype.NewFace(r.mono, &truetype.Options{Size: textSize * 0.9})
	dc.SetColor(rasterText)

	for _, line := range slide.Lines {
		if y+textSize > h-marginY {
			break
		}

		indent := len(line) - len(strings.TrimLeft(line, " "))
		if strings.HasPrefix(strings.TrimLeft(line, " "), "• ") || indent == 0 {
			dc.SetFontFace(regular)
		} else {
			dc.SetFontFace(mono)
		}

		x := marginX + float64(indent)*textSize*0.5
		for _, wrapped := range wrapText(dc, strings.TrimLeft(line, " "), contentWidth-(x-marginX)) {
			if y+textSize > h-marginY {
				break
			}
			dc.DrawString(wrapped, x, y)
			y += textSize * 1.4
		}
	}
}

// wrapText splits text into lines no wider than maxWidth in the current face
func wrapText(dc *gg.Context, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current strings.Builder

	for _, word := range words {
		candidate := current.String()
		if candidate != "" {
			candidate += " "
		}
		candidate += word

		if width, _ := dc.MeasureString(candidate); width > maxWidth && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			continue
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

var _ ports.Screenshotter = (*RasterScreenshotter)(nil)
