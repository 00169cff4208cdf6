package workspace

import (
	"sort"
	"sync"

	"pti/internal/domain"
	"pti/internal/targets"
)

type fileResult struct {
	file    domain.ConfigFile
	project *domain.ProjectDescriptor
	err     error
}

// processAll fans configuration files out over a worker pool. Files are
// independent of each other, so ordering only matters for the final
// result, which is sorted by config path to keep batches deterministic.
func (e *Engine) processAll(files []domain.ConfigFile, builder *targets.Builder, opts targets.NormalizedOptions) []fileResult {
	if len(files) == 0 {
		return nil
	}

	queue := make(chan domain.ConfigFile, len(files))
	results := make(chan fileResult, len(files))
	for _, file := range files {
		queue <- file
	}
	close(queue)

	var mu sync.Mutex
	var completed, projects, skipped int

	workerCount := e.processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range queue {
				project, err := builder.Build(file, opts)
				results <- fileResult{file: file, project: project, err: err}

				mu.Lock()
				completed++
				if err == nil && project != nil {
					projects++
				} else if err == nil {
					skipped++
				}
				if e.progress != nil {
					e.progress.Update(completed, projects, skipped)
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []fileResult
	for result := range results {
		all = append(all, result)
	}
	if e.progress != nil {
		e.progress.Finish()
	}

	sort.Slice(all, func(i, j int) bool { return all[i].file.Path < all[j].file.Path })
	return all
}
