package api

import (
	"time"

	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status   string                     `json:"status"`
	Analysis *paperModel.AnalysisResult `json:"analysis,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type UploadPaperRequest struct {
	PaperName string `json:"paper_name" validate:"required"`
	ChunkSize int    `json:"chunk_size,omitempty"`
	Overlap   int    `json:"overlap,omitempty"`
}
