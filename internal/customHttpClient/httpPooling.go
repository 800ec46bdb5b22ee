package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/sharvik/CritiqueAPI/internal/config"
)

var once sync.Once
var pooled *http.Client

// Pooled returns the shared HTTP client for the model and embedding backends,
// so repeated calls per paper reuse connections instead of re-dialing.
func Pooled() *http.Client {
	once.Do(func() {
		pooled = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		}
	})
	return pooled
}
