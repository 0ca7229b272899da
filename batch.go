package turkmorph

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// batchChunk is the number of words a worker takes at a time.
const batchChunk = 256

type wordChunk struct {
	start int
	words []string
}

// AnalyzeList analyzes words concurrently with a bounded pool of workers.
// The result at index i holds the analyses of words[i]. Only context
// cancellation makes it fail.
func (m *Morphology) AnalyzeList(ctx context.Context, words []string) ([][]WordAnalysis, error) {
	out := make([][]WordAnalysis, len(words))
	workers := m.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	chunks := make(chan wordChunk, workers)

	g.Go(func() error {
		defer close(chunks)
		for i := 0; i < len(words); i += batchChunk {
			end := min(i+batchChunk, len(words))
			select {
			case chunks <- wordChunk{start: i, words: words[i:end]}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for _i := 0; _i < workers; _i++ {
		g.Go(func() error {
			for c := range chunks {
				for j, w := range c.words {
					if err := ctx.Err(); err != nil {
						return err
					}
					// Each worker writes a disjoint range of out.
					out[c.start+j] = m.Analyze(w)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
