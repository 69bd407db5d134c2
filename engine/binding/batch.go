package binding

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// BatchResult is the outcome of one independent resolution request of a batch.
type BatchResult struct {
	Bindings []ResolvedBinding
	Count    VertexCount
	Err      error
}

// BatchRequest is one independent resolution request: the entries of one vertex array and
// its optional index buffer.
type BatchRequest struct {
	Entries []BindingEntry
	Index   *IndexBuffer
}

// NewBatchPool creates a worker pool sized for resolution batches, one worker per spare CPU.
// The caller owns the pool and stops it once no more batches are submitted.
//
// Returns:
//   - worker.DynamicWorkerPool: a pool ready to be passed to ResolveBatch
func NewBatchPool() worker.DynamicWorkerPool {
	return worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 256, 1*time.Second)
}

// ResolveBatch resolves independent requests concurrently on the given pool. Requests share
// nothing, so each one succeeds or fails on its own; results are returned in request order.
// A nil pool resolves the requests sequentially on the calling goroutine.
//
// Parameters:
//   - r: the resolver to use for every request
//   - pool: the worker pool to submit requests to, or nil
//   - requests: the resolution requests
//
// Returns:
//   - []BatchResult: one result per request, in order
func ResolveBatch(r Resolver, pool worker.DynamicWorkerPool, requests []BatchRequest) []BatchResult {
	results := make([]BatchResult, len(requests))

	if pool == nil {
		for i, req := range requests {
			results[i] = resolveRequest(r, req)
		}
		return results
	}

	// pool.Wait() tracks the whole pool rather than this batch, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		idx, rq := i, req
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = resolveRequest(r, rq)
				return nil, results[idx].Err
			},
		})
	}
	wg.Wait()

	return results
}

func resolveRequest(r Resolver, req BatchRequest) BatchResult {
	infos, err := r.Describe(req.Entries)
	if err != nil {
		return BatchResult{Err: err}
	}
	bindings, err := r.Resolve(req.Entries)
	if err != nil {
		return BatchResult{Err: err}
	}
	count, err := InferVertexCountFromInfos(req.Index, req.Entries, infos)
	if err != nil {
		return BatchResult{Err: err}
	}
	return BatchResult{Bindings: bindings, Count: count}
}
