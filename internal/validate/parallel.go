package validate

import (
	"runtime"
	"sync"
)

// WorkItem is a file queued for validation.
type WorkItem struct {
	Seq  int
	Path string
}

// WorkResult holds the verdict for a single work item.
type WorkResult struct {
	Seq    int
	Result *Result
}

// FileValidator validates a single file. *Validator implements it; the
// result cache wraps it.
type FileValidator interface {
	ValidateFile(path string) *Result
}

// ParallelValidate validates work items using a pool of workers. Files are
// independent, so each worker runs a whole file. Results are sent in
// arrival order; use OrderedCollect to consume them in sequence order.
// If workers is 0, runtime.NumCPU() is used.
func ParallelValidate(fv FileValidator, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{
					Seq:    item.Seq,
					Result: fv.ValidateFile(item.Path),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// Out-of-order results are buffered until the next expected sequence
// number arrives. Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// ValidateAll validates paths concurrently and returns their results in
// input order.
func ValidateAll(fv FileValidator, paths []string, workers int) []*Result {
	items := make(chan WorkItem, len(paths))
	for i, p := range paths {
		items <- WorkItem{Seq: i, Path: p}
	}
	close(items)

	out := make([]*Result, 0, len(paths))
	_ = OrderedCollect(ParallelValidate(fv, items, workers), func(r WorkResult) error {
		out = append(out, r.Result)
		return nil
	})
	return out
}
