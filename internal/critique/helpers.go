package critique

import (
	"context"
	"net/http"
	"time"

	"github.com/sharvik/CritiqueAPI/internal/critique/pipeline"
	"github.com/sharvik/CritiqueAPI/internal/domain/jobModel"
	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
	"github.com/sharvik/CritiqueAPI/internal/metrics"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

func returnOutput(job jobModel.Job, result paperModel.AnalysisResult) jobModel.Job {
	job.JobPayload.Analysis = &result
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("AnalyzePaper", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeExtractionStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) (string, error) {
	*job = logOutput(*job, jobModel.ExtractionCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	return s.extractor.ExtractText(job.JobPayload.PaperPath)
}

// executeCacheCheckStep embeds the normalized paper and probes the result
// cache. It returns the vector for the later cache save; any failure along the
// way degrades to a miss.
func (s *service) executeCacheCheckStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, normalized string) ([]float32, paperModel.AnalysisResult, bool) {
	if s.cache == nil || s.embedder == nil {
		return nil, paperModel.AnalysisResult{}, false
	}

	*job = logOutput(*job, jobModel.EmbeddingAPICall, log)
	start := time.Now()
	vector, err := s.embedder.GetEmbedding(ctx, normalized)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		log.Warn("Embedding failed - skipping result cache", "error", err)
		return nil, paperModel.AnalysisResult{}, false
	}

	*job = logOutput(*job, jobModel.CacheCall, log)
	start = time.Now()
	cached, found, _ := s.cache.GetCachedAnalysis(ctx, vector)
	metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start))
	return vector, cached, found
}

func (s *service) executePipelineStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, normalized string) (paperModel.AnalysisResult, pipeline.RunStatus) {
	*job = logOutput(*job, jobModel.PipelineCall, log)

	p := pipeline.New(s.analyzer, job.JobPayload.ChunkSize, job.JobPayload.Overlap)
	return p.Run(ctx, normalized)
}
