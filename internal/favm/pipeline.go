package favm

import "berdoz/internal/core"

// ViewState is the user-controlled input of a render.
type ViewState struct {
	Query   string       `json:"query"`
	Table   PeriodFilter `json:"table"`
	Summary PeriodFilter `json:"summary"`
}

// DefaultViewState shows every record in both the table and the summary.
func DefaultViewState() ViewState {
	return ViewState{Table: AllPeriods, Summary: AllPeriods}
}

// Summary is the headline block, driven by the summary filter only.
type Summary struct {
	Count  int         `json:"count"`
	Totals core.Totals `json:"totals"`
}

// View is the result of one render.
type View[T any] struct {
	Records []T         `json:"records"`
	Count   int         `json:"count"`
	Totals  core.Totals `json:"totals"`
	Summary Summary     `json:"summary"`
}

// Pipeline turns a snapshot and a ViewState into a View.
type Pipeline[T core.Record[T]] struct {
	matcher *Matcher[T]
	totals  Totals[T]
}

func NewPipeline[T core.Record[T]](matcher *Matcher[T], totals Totals[T]) *Pipeline[T] {
	return &Pipeline[T]{matcher: matcher, totals: totals}
}

// Run renders records. The table filter and the query shape the visible
// rows and their totals; the summary filter alone shapes the headline.
func (p *Pipeline[T]) Run(records []T, state ViewState) View[T] {
	visible := p.matcher.Match(Apply(records, state.Table), state.Query)
	headline := Apply(records, state.Summary)

	if visible == nil {
		visible = []T{}
	}
	return View[T]{
		Records: visible,
		Count:   len(visible),
		Totals:  p.totals.Compute(visible),
		Summary: Summary{
			Count:  len(headline),
			Totals: p.totals.Compute(headline),
		},
	}
}
