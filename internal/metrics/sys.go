package metrics

import (
	"fmt"
	"runtime"
	"time"
)

// SysHealth represents real-time process metrics.
type SysHealth struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	AllocMB    uint64 `json:"alloc_mb"`
	SysMB      uint64 `json:"sys_mb"`
	NumGC      uint32 `json:"num_gc"`
	Goroutines int    `json:"goroutines"`
	Providers  int    `json:"providers"`
}

// GetSysHealth collects real-time health data.
func GetSysHealth(startedAt time.Time, providers int) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		Status:     "ok",
		Uptime:     formatUptime(time.Since(startedAt)),
		AllocMB:    m.Alloc / 1024 / 1024,
		SysMB:      m.Sys / 1024 / 1024,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		Providers:  providers,
	}
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	if days > 0 {
		return fmt.Sprintf("%dd%s", days, d)
	}
	return d.String()
}
