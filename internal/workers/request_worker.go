package workers

import (
	"context"
	"time"

	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/repositories"
)

// RequestWorker runs background maintenance over service requests.
type RequestWorker struct {
	requestRepo repositories.RequestRepository
	maxAge      time.Duration
}

func NewRequestWorker(requestRepo repositories.RequestRepository, maxAge time.Duration) *RequestWorker {
	return &RequestWorker{
		requestRepo: requestRepo,
		maxAge:      maxAge,
	}
}

// Start launches the background tasks. They stop when ctx is canceled.
func (w *RequestWorker) Start(ctx context.Context) {
	go w.autoCancelStaleRequests(ctx)
}

// autoCancelStaleRequests cancels pending requests whose preferred
// time is long gone, hourly. A request nobody bid on before its window
// closed just clutters the pending board.
func (w *RequestWorker) autoCancelStaleRequests(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("request worker stopped")
			return
		case <-ticker.C:
			rows, err := w.requestRepo.CancelStale(ctx, w.maxAge)
			if err != nil {
				logger.Error("failed to auto-cancel stale requests", "error", err)
			} else if rows > 0 {
				logger.Info("auto-canceled stale service requests", "count", rows)
			}
		}
	}
}
