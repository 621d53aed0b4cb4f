//go:build linux

package performance

import (
	"log"
	"syscall"
	"time"
)

// GetSystemMemory reads system-wide memory from sysinfo(2)
func GetSystemMemory() MemorySnapshot {
	var info syscall.Sysinfo_t
	if err := syscall.Sysinfo(&info); err != nil {
		log.Printf("GetSystemMemory: failed to get sysinfo: %v", err)
		return MemorySnapshot{Timestamp: time.Now()}
	}

	unit := uint64(info.Unit)
	toMB := func(v uint64) uint64 { return v * unit / (1024 * 1024) }

	totalMB := toMB(uint64(info.Totalram))
	freeMB := toMB(uint64(info.Freeram))
	// buffers are reclaimable, count them as available
	availableMB := freeMB + toMB(uint64(info.Bufferram))

	return MemorySnapshot{
		Timestamp:   time.Now(),
		TotalMB:     totalMB,
		AvailableMB: availableMB,
		UsedMB:      totalMB - availableMB,
		FreeMB:      freeMB,
	}
}
