package jobModel

import (
	"context"
	"time"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	AnalysisInit     InternalStatus = "Init"
	ExtractionCall   InternalStatus = "Extraction"
	CacheCall        InternalStatus = "CacheCall"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	PipelineCall     InternalStatus = "Pipeline"
	RedisCall        InternalStatus = "Redis"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeAnalyze JobType = "Analyze"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	PaperName string `json:"paper_name,omitempty"`
	PaperPath string `json:"paper_path,omitempty"`

	//chunking tunables, zero means "use defaults"
	ChunkSize int `json:"chunk_size,omitempty"`
	Overlap   int `json:"overlap,omitempty"`

	Analysis *paperModel.AnalysisResult `json:"analysis,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
