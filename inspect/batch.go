package inspect

import (
	"context"

	"github.com/fwojciec/pagemeta"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of inspecting one URL of a batch.
type Result struct {
	// URL is the URL as given by the caller.
	URL        string
	Inspection *pagemeta.Inspection
	Err        error
}

// ProgressEvent reports progress during InspectAll.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is always
// called from a single goroutine.
type ProgressFunc func(event ProgressEvent)

type outcome struct {
	position   int
	inspection *pagemeta.Inspection
	err        error
}

// InspectAll inspects urls concurrently and returns one Result per input,
// in input order. URLs that normalize to the same page are fetched once and
// share a result. A failing URL never stops the batch; the returned error
// is non-nil only when ctx ends first.
func (i *Inspector) InspectAll(ctx context.Context, urls []string, progress ProgressFunc) ([]Result, error) {
	results := make([]Result, len(urls))

	// unique holds the first position of each distinct page.
	var unique []int
	firstOf := make(map[string]int, len(urls))
	sameAs := make(map[int]int)
	for pos, raw := range urls {
		results[pos].URL = raw

		normalized, err := pagemeta.NormalizeURL(raw)
		if err != nil {
			results[pos].Err = err
			continue
		}
		if first, ok := firstOf[normalized]; ok {
			sameAs[pos] = first
			continue
		}
		firstOf[normalized] = pos
		unique = append(unique, pos)
	}

	total := len(unique)
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := i.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make(chan outcome, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, pos := range unique {
			g.Go(func() error {
				in, err := i.Inspect(gctx, urls[pos])
				outcomes <- outcome{position: pos, inspection: in, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	completed := 0
	for o := range outcomes {
		completed++
		results[o.position].Inspection = o.inspection
		results[o.position].Err = o.err

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       urls[o.position],
		}
		if o.err != nil {
			event.Type = ProgressFailed
			event.Error = o.err
		}
		notify(event)
	}

	for pos, first := range sameAs {
		results[pos].Inspection = results[first].Inspection
		results[pos].Err = results[first].Err
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})

	return results, ctx.Err()
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
