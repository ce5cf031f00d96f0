// Package ops exposes the operational surface: build/runtime info and the
// pprof endpoints. It has no external collaborators, so it is the one
// member of the fixed module set that can never fail to load.
package ops

import (
	"net/http"
	"net/http/pprof"
	"runtime"
	"time"

	"github.com/snipops/snippetd/internal/modules/respond"
	"github.com/snipops/snippetd/shell"
)

// Config configures the ops module.
type Config struct {
	// ServiceName is reported by the info endpoint.
	ServiceName string

	// Version is reported by the info endpoint.
	Version string
}

// Module returns the registration descriptor for the ops routes.
func Module(config Config) shell.Module {
	return shell.Module{
		Name: "ops",
		Load: func() (shell.AttachFunc, error) {
			h := &handler{
				service: config.ServiceName,
				version: config.Version,
				started: time.Now(),
			}
			return func(b *shell.Binder) error {
				b.HandleFunc("GET /api/ops/info", h.info)
				b.HandleFunc("GET /debug/pprof/", pprof.Index)
				b.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
				b.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
				b.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
				b.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
				return nil
			}, nil
		},
	}
}

type handler struct {
	service string
	version string
	started time.Time
}

func (h *handler) info(w http.ResponseWriter, r *http.Request) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	respond.JSON(w, http.StatusOK, map[string]any{
		"service":        h.service,
		"version":        h.version,
		"go_version":     runtime.Version(),
		"goroutines":     runtime.NumGoroutine(),
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"memory": map[string]any{
			"alloc_bytes":  stats.Alloc,
			"sys_bytes":    stats.Sys,
			"heap_objects": stats.HeapObjects,
			"num_gc":       stats.NumGC,
		},
	})
}
