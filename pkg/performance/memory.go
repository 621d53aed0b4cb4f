package performance

import (
	"log"
	"runtime"
	"time"
)

// MemorySnapshot represents memory state at a point in time
type MemorySnapshot struct {
	Timestamp   time.Time
	TotalMB     uint64
	AvailableMB uint64
	UsedMB      uint64
	FreeMB      uint64
}

// GoMemoryStats is the subset of runtime memory statistics worth logging
type GoMemoryStats struct {
	AllocMB uint64 // live heap
	SysMB   uint64 // obtained from the OS
	NumGC   uint32
}

// GetGoMemory retrieves Go runtime memory statistics
func GetGoMemory() GoMemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return GoMemoryStats{
		AllocMB: m.Alloc / (1024 * 1024),
		SysMB:   m.Sys / (1024 * 1024),
		NumGC:   m.NumGC,
	}
}

// MemoryPressureLevel represents how much memory pressure the system is under
type MemoryPressureLevel int

const (
	MemoryPressureNone     MemoryPressureLevel = iota // >800MB available
	MemoryPressureLow                                 // 400-800MB available
	MemoryPressureMedium                              // 200-400MB available
	MemoryPressureHigh                                // 100-200MB available
	MemoryPressureCritical                            // <100MB available
)

// PressureFor classifies an amount of available memory
func PressureFor(availableMB uint64) MemoryPressureLevel {
	switch {
	case availableMB < 100:
		return MemoryPressureCritical
	case availableMB < 200:
		return MemoryPressureHigh
	case availableMB < 400:
		return MemoryPressureMedium
	case availableMB < 800:
		return MemoryPressureLow
	default:
		return MemoryPressureNone
	}
}

// String returns a human-readable description of memory pressure
func (m MemoryPressureLevel) String() string {
	switch m {
	case MemoryPressureNone:
		return "None"
	case MemoryPressureLow:
		return "Low"
	case MemoryPressureMedium:
		return "Medium"
	case MemoryPressureHigh:
		return "High"
	case MemoryPressureCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// LogMemorySnapshot logs system and Go memory with a label, and returns the
// pressure level so callers can react to it
func LogMemorySnapshot(label string) MemoryPressureLevel {
	sys := GetSystemMemory()
	goMem := GetGoMemory()
	pressure := PressureFor(sys.AvailableMB)

	log.Printf("Memory[%s]: System[Total=%dMB, Avail=%dMB, Used=%dMB] Go[Alloc=%dMB, Sys=%dMB, GC=%d] Pressure=%s",
		label, sys.TotalMB, sys.AvailableMB, sys.UsedMB,
		goMem.AllocMB, goMem.SysMB, goMem.NumGC,
		pressure)
	return pressure
}
