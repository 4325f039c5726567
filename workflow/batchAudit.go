package workflow

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/audit_backend/models"
)

// AuditRequest identifies one (property, period) in a batch run.
type AuditRequest struct {
	PropertyId string
	PeriodId   string
	Signals    models.ExternalSignals
}

// BatchResult pairs one request with its outcome.
type BatchResult struct {
	Request   AuditRequest
	Scorecard *models.AuditScorecard
	Err       error
}

// RunBatch audits many properties concurrently. Audits share no mutable
// state, so the only bound is the worker count, which protects the fact
// store's backing datastore from overload. Output order is deterministic
// (sorted by property then period) regardless of completion order.
func (s *AuditService) RunBatch(ctx context.Context, requests []AuditRequest, workers int) []BatchResult {
	if workers < 1 {
		workers = 4
	}
	if workers > len(requests) {
		workers = len(requests)
	}

	results := make([]BatchResult, len(requests))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				req := requests[i]
				card, err := s.AuditProperty(ctx, req.PropertyId, req.PeriodId, req.Signals)
				results[i] = BatchResult{Request: req, Scorecard: card, Err: err}
			}
		}()
	}

	dispatched := len(requests)
dispatch:
	for i := range requests {
		select {
		case <-ctx.Done():
			dispatched = i
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i := dispatched; i < len(requests); i++ {
		results[i] = BatchResult{Request: requests[i], Err: ctx.Err()}
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Request.PropertyId != results[b].Request.PropertyId {
			return results[a].Request.PropertyId < results[b].Request.PropertyId
		}
		return results[a].Request.PeriodId < results[b].Request.PeriodId
	})

	if s.Logger != nil {
		failed := 0
		for i := range results {
			if results[i].Err != nil {
				failed++
			}
		}
		s.Logger.WithFields(logrus.Fields{
			"field":   "BatchAudit",
			"total":   len(results),
			"failed":  failed,
			"workers": workers,
		}).Info("batch audit completed")
	}
	return results
}
