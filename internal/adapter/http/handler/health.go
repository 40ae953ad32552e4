package handler

import (
	"net/http"
	"sync"
	"time"

	"merchant-pulse/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type dependencyHealth struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// HealthCheck probes every checker concurrently. Any failure answers 503 with
// status "degraded".
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		results := make([]dependencyHealth, len(checkers))
		var wg sync.WaitGroup
		for i, checker := range checkers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				started := time.Now()
				err := checker.Ping(c.Request.Context())
				results[i] = dependencyHealth{Status: "healthy", LatencyMS: time.Since(started).Milliseconds()}
				if err != nil {
					results[i].Status = "unhealthy"
					results[i].Error = err.Error()
				}
			}()
		}
		wg.Wait()

		status, code := "healthy", http.StatusOK
		deps := make(map[string]dependencyHealth, len(checkers))
		for i, checker := range checkers {
			deps[checker.Name()] = results[i]
			if results[i].Status != "healthy" {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{"status": status, "dependencies": deps})
	}
}
