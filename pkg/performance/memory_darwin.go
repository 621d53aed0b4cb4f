//go:build darwin

package performance

import (
	"runtime"
	"time"
)

// GetSystemMemory approximates memory on macOS from Go runtime stats.
// syscall.Sysinfo is Linux-only; this is only used on development machines.
func GetSystemMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	const totalMB = uint64(8192)
	usedMB := m.Sys / (1024 * 1024)
	if usedMB > totalMB {
		usedMB = totalMB
	}

	return MemorySnapshot{
		Timestamp:   time.Now(),
		TotalMB:     totalMB,
		AvailableMB: totalMB - usedMB,
		UsedMB:      usedMB,
		FreeMB:      totalMB - usedMB,
	}
}
