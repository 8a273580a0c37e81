// Package chart draws questionnaire tallies as PNG bar charts.
package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"kuesioner/domain/survey"
)

var (
	yesColor = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	noColor  = color.RGBA{R: 218, G: 54, B: 51, A: 255}
)

// Renderer draws a grouped yes/no bar per dimension
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	Title  string
}

// NewRenderer returns a renderer with a 6x4 inch canvas
func NewRenderer() *Renderer {
	return &Renderer{
		Width:  6 * vg.Inch,
		Height: 4 * vg.Inch,
		Title:  "Questionnaire responses",
	}
}

// RenderPNG draws the result. Dimensions are always shown in chart order, so a
// zero aggregate renders as empty bars rather than failing.
func (r *Renderer) RenderPNG(result survey.AggregateResult) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (n=%d)", r.Title, result.TotalResponses)
	p.Y.Label.Text = "Answers"
	p.Y.Min = 0
	p.Legend.Top = true

	yes := make(plotter.Values, len(survey.Dimensions))
	no := make(plotter.Values, len(survey.Dimensions))
	names := make([]string, len(survey.Dimensions))
	for i, d := range survey.Dimensions {
		tally := result.Tally(d)
		yes[i] = float64(tally.Yes)
		no[i] = float64(tally.No)
		names[i] = d.String()
	}

	barWidth := vg.Points(20)

	yesBars, err := plotter.NewBarChart(yes, barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create yes bars: %w", err)
	}
	yesBars.Color = yesColor
	yesBars.LineStyle.Width = vg.Length(0)
	yesBars.Offset = -barWidth / 2

	noBars, err := plotter.NewBarChart(no, barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create no bars: %w", err)
	}
	noBars.Color = noColor
	noBars.LineStyle.Width = vg.Length(0)
	noBars.Offset = barWidth / 2

	p.Add(yesBars, noBars, plotter.NewGrid())
	p.Legend.Add(survey.LiteralYes, yesBars)
	p.Legend.Add(survey.LiteralNo, noBars)
	p.NominalX(names...)

	writer, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
