package podkit

import (
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcStats is one bounded sample of process resource usage.
type ProcStats struct {
	MemoryBytes uint64
	CPUPercent  float64
}

// StatsSource samples process stats. It must be bounded and safe to call from
// request handlers; a failed sample returns an error rather than blocking.
type StatsSource func() (ProcStats, error)

// processStats returns the default source, sampling the current process via
// gopsutil. The process handle is resolved once; CPUPercent is measured
// against the previous call, so the first sample reads 0.
func processStats() StatsSource {
	proc, initErr := process.NewProcess(int32(os.Getpid()))
	return func() (ProcStats, error) {
		if initErr != nil {
			return ProcStats{}, initErr
		}
		mem, err := proc.MemoryInfo()
		if err != nil {
			return ProcStats{}, err
		}
		cpu, err := proc.CPUPercent()
		if err != nil {
			return ProcStats{}, err
		}
		return ProcStats{
			MemoryBytes: mem.RSS,
			CPUPercent:  cpu,
		}, nil
	}
}
