package ports

import "kuesioner/domain/survey"

// ChartRenderer draws an aggregate as an image
type ChartRenderer interface {
	RenderPNG(result survey.AggregateResult) ([]byte, error)
}
