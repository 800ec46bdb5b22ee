package worker

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/sharvik/CritiqueAPI/internal/config"
	jobmodel "github.com/sharvik/CritiqueAPI/internal/domain/jobModel"
	"github.com/sharvik/CritiqueAPI/internal/metrics"
)

// Full-paper analysis makes many model calls, so a job gets a generous
// deadline before we give up on it.
const jobTimeout = 10 * time.Minute

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, jobTimeout)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job = _critiqueService.AnalyzePaper(ctx, job)
	cleanupUpload(job)

	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}
	saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

// cleanupUpload removes the temporary upload once the job is done with it.
func cleanupUpload(job jobmodel.Job) {
	if job.JobPayload.PaperPath == "" {
		return
	}
	if err := os.Remove(job.JobPayload.PaperPath); err != nil && !os.IsNotExist(err) {
		logger.Error("Failed to remove uploaded file", "path", job.JobPayload.PaperPath, "err", err)
	}
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
