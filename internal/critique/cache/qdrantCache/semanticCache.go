package qdrantCache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"github.com/sharvik/CritiqueAPI/internal/config"
	"github.com/sharvik/CritiqueAPI/internal/domain/paperModel"
)

// GetCachedAnalysis looks for a previously analyzed paper whose embedding is
// close enough to this one. A hit below the similarity cutoff is a miss.
func (db *ClientHolder) GetCachedAnalysis(ctx context.Context, vector []float32) (paperModel.AnalysisResult, bool, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	loggr.Info("Searching for cached analysis")
	searchResult, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.CritiqueCacheCollection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil || len(searchResult) == 0 {
		loggr.Error("Cache Query failed", "error", err)
		return paperModel.AnalysisResult{}, false, err
	}

	loggr.Debug("Found cached analysis", "semantic similarity score", searchResult[0].Score)
	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return paperModel.AnalysisResult{}, false, nil
	}

	loggr.Info("---------------cache hit---------------------")
	var result paperModel.AnalysisResult
	raw := searchResult[0].Payload["analysis"].GetStringValue()
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		loggr.Error("Cached analysis payload is corrupt", "error", err)
		return paperModel.AnalysisResult{}, false, err
	}
	return result, true, nil
}

func (db *ClientHolder) SaveAnalysis(ctx context.Context, id string, vector []float32, result paperModel.AnalysisResult) error {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	raw, err := json.Marshal(result)
	if err != nil {
		loggr.Error("Could not marshal analysis for cache", "error", err)
		return err
	}

	loggr.Debug("Saving analysis to cache")
	_, err = db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.CritiqueCacheCollection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"analysis":  string(raw),
					"timestamp": time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving analysis to cache failed", "error", err)
	}
	return err
}
