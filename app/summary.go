package app

import (
	"github.com/montanaflynn/stats"

	"kuesioner/domain/survey"
)

// Summarize derives yes rates from an aggregate
func Summarize(result survey.AggregateResult) survey.Summary {
	summary := survey.Summary{
		TotalResponses: result.TotalResponses,
		Dimensions:     make([]survey.DimensionSummary, 0, len(survey.Dimensions)),
	}

	var rates stats.Float64Data
	for _, d := range survey.Dimensions {
		tally := result.Tally(d)
		ds := survey.DimensionSummary{
			Dimension: d,
			Yes:       tally.Yes,
			No:        tally.No,
			Answered:  tally.Answered(),
		}
		if ds.Answered > 0 {
			ds.YesRate = float64(tally.Yes) / float64(ds.Answered)
			rates = append(rates, ds.YesRate)
		}
		summary.Dimensions = append(summary.Dimensions, ds)
	}

	if len(rates) == 0 {
		return summary
	}

	// Errors only occur on empty input, ruled out above
	summary.MeanYesRate, _ = stats.Mean(rates)
	summary.YesRateStdDev, _ = stats.StandardDeviationPopulation(rates)
	return summary
}
