package benchmarks

import (
	"cmp"
	"context"
	"slices"
	"time"
)

// Row is one variant's timings summed over all repeats.
type Row struct {
	Rank    int
	Variant string
	Phases  map[string]time.Duration
	Total   time.Duration
}

// Report holds ranked rows, fastest first.
type Report struct {
	Config  Config
	Repeats int
	Rows    []Row
}

// Fastest returns the total of the best row, or zero for an empty report.
func (r *Report) Fastest() time.Duration {
	if len(r.Rows) == 0 {
		return 0
	}
	return r.Rows[0].Total
}

// Run executes RunOnce repeat times per variant and ranks the summed timings.
// progress, if not nil, is called after every single run.
func Run(ctx context.Context, variants []Variant, cfg Config, repeat int, progress func(variant string)) (*Report, error) {
	repeat = max(repeat, 1)
	rows := make([]Row, 0, len(variants))

	for _, v := range variants {
		row := Row{Variant: v.Name, Phases: make(map[string]time.Duration, len(Phases))}

		for range repeat {
			timings, err := RunOnce(ctx, v, cfg)
			if err != nil {
				return nil, err
			}
			for _, t := range timings {
				row.Phases[t.Phase] += t.Elapsed
				row.Total += t.Elapsed
			}
			if progress != nil {
				progress(v.Name)
			}
		}
		rows = append(rows, row)
	}

	rank(rows)
	return &Report{Config: cfg, Repeats: repeat, Rows: rows}, nil
}

// rank sorts rows by total time and numbers them from 1.
func rank(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		return cmp.Compare(a.Total, b.Total)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
}
