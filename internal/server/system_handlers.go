package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/agentchopra/chopra/internal/database"
)

// SystemHandlers serves system monitoring endpoints: uptime, host load and
// database health/size.
type SystemHandlers struct {
	log           zerolog.Logger
	startupTime   time.Time
	assessmentsDB *database.DB
	clientDataDB  *database.DB
}

// NewSystemHandlers creates system monitoring handlers.
func NewSystemHandlers(log zerolog.Logger, assessmentsDB, clientDataDB *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:           log.With().Str("component", "system_handlers").Logger(),
		startupTime:   time.Now(),
		assessmentsDB: assessmentsDB,
		clientDataDB:  clientDataDB,
	}
}

// HandleSystemStatus returns uptime plus host CPU/memory usage.
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPct, memPct := h.systemLoad()

	databases := map[string]string{}
	for _, db := range []*database.DB{h.assessmentsDB, h.clientDataDB} {
		if db == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		status := "ok"
		if err := db.QuickCheck(ctx); err != nil {
			status = "error"
			h.log.Warn().Err(err).Str("database", db.Name()).Msg("Database quick check failed")
		}
		cancel()
		databases[db.Name()] = status
	}

	h.writeJSON(w, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startupTime).Seconds()),
		"cpu_percent":    cpuPct,
		"memory_percent": memPct,
		"databases":      databases,
	})
}

// HandleDatabaseStats returns size and page statistics for each database.
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{}

	for _, db := range []*database.DB{h.assessmentsDB, h.clientDataDB} {
		if db == nil {
			continue
		}
		stats, err := db.GetStats()
		if err != nil {
			h.log.Warn().Err(err).Str("database", db.Name()).Msg("Failed to get database stats")
			response[db.Name()] = map[string]string{"error": err.Error()}
			continue
		}
		response[db.Name()] = map[string]interface{}{
			"size_bytes":     stats.SizeBytes,
			"wal_size_bytes": stats.WALSizeBytes,
			"page_count":     stats.PageCount,
			"page_size":      stats.PageSize,
			"freelist_count": stats.FreelistCount,
		}
	}

	h.writeJSON(w, response)
}

// systemLoad samples host CPU and memory usage. CPU is sampled over 100ms
// to keep the endpoint responsive.
func (h *SystemHandlers) systemLoad() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return cpuAvg(cpuPercent), 0
	}

	return cpuAvg(cpuPercent), memStat.UsedPercent
}

func cpuAvg(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return samples[0]
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
