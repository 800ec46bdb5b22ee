package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sharvik/CritiqueAPI/internal/config"
	"github.com/sharvik/CritiqueAPI/internal/data/redisStore"
	"github.com/sharvik/CritiqueAPI/internal/data/store"
	"github.com/sharvik/CritiqueAPI/internal/domain/jobModel"
	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	// 1. Start miniredis
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	jobStore := store.TestJobStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:     jobID,
		Status: jobModel.JobStatusRunning,
		JobPayload: jobModel.JobPayload{
			PaperName: "caching-study.pdf",
			ChunkSize: 4000,
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		// Test Save
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		// Test Get
		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.JobPayload.PaperName != testJob.JobPayload.PaperName {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrievedJob.JobPayload.PaperName, testJob.JobPayload.PaperName)
		}
	})

	t.Run("Analysis survives the roundtrip", func(t *testing.T) {
		withAnalysis := testJob
		withAnalysis.Id = "job_with_analysis"
		withAnalysis.JobPayload.Analysis = &paperModel.AnalysisResult{
			Goal:     "study caching",
			Critique: "sample too small",
			Questions: paperModel.ReviewerQuestions{
				MainQuestion: "why so few runs?",
				SubQuestions: []string{"what about cold starts?"},
			},
		}

		if err := jobStore.SaveJob(ctx, withAnalysis); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrieved, found := jobStore.GetJob(ctx, withAnalysis.Id)
		if !found {
			t.Fatal("Job not found after save")
		}
		if retrieved.JobPayload.Analysis == nil {
			t.Fatal("Analysis was dropped in the roundtrip")
		}
		if retrieved.JobPayload.Analysis.Questions.MainQuestion != "why so few runs?" {
			t.Errorf("Questions mismatch: %+v", retrieved.JobPayload.Analysis.Questions)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		// Verify it's gone from miniredis
		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	for i := 0; i < workers; i++ {
		go func() {
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
}
