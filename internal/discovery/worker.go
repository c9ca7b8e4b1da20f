package discovery

import (
	"sort"
	"sync"

	"stepcov/internal/domain"
	"stepcov/internal/ui"
)

// parseResult is one file's independent extraction result. A feature file
// fills doc and validation; a step definition file fills definitions. A
// failed file carries err and is skipped by the reduction.
type parseResult struct {
	path        string
	doc         *domain.FeatureDocument
	validation  *domain.ValidationResult
	definitions []domain.StepDefinition
	err         error
}

// runParallel fans file work out over a bounded worker pool. Each file is
// independent; results are merged only by the caller's final reduction, so
// there is no shared mutable intermediate state. Results are sorted by path
// to keep the reduction deterministic regardless of completion order.
func runParallel(paths []string, workers int, progress *ui.ProgressBar, fn func(string) parseResult) []parseResult {
	if len(paths) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}

	queue := make(chan string, len(paths))
	results := make(chan parseResult, len(paths))
	for _, p := range paths {
		queue <- p
	}
	close(queue)

	var mu sync.Mutex
	var completed, parsed, skipped int

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				res := fn(path)
				results <- res
				mu.Lock()
				completed++
				if res.err != nil {
					skipped++
				} else {
					parsed++
				}
				if progress != nil {
					progress.Update(completed, parsed, skipped)
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []parseResult
	for r := range results {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].path < all[j].path })
	return all
}
