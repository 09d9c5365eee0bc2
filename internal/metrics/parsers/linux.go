// Package parsers turns the text output of Linux and NVIDIA tools into
// metrics readings. Both the local and the SSH source use them.
package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// CPUTimes holds the aggregate jiffy counters from the "cpu " line of /proc/stat.
type CPUTimes struct {
	Total int64
	Idle  int64 // idle + iowait
}

// ParseProcStat parses the aggregate CPU counters from /proc/stat output.
func ParseProcStat(procStat string) (CPUTimes, error) {
	scanner := bufio.NewScanner(strings.NewReader(procStat))

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		// Fields: cpu user nice system idle iowait irq softirq steal guest guest_nice
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return CPUTimes{}, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}

		var times CPUTimes
		for i := 1; i < len(fields); i++ {
			// guest and guest_nice are already included in user and nice
			if i >= 9 {
				break
			}
			val, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return CPUTimes{}, fmt.Errorf("failed to parse cpu field %d: %w", i, err)
			}
			times.Total += val
			if i == 4 || i == 5 {
				times.Idle += val
			}
		}
		return times, nil
	}

	if err := scanner.Err(); err != nil {
		return CPUTimes{}, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	return CPUTimes{}, fmt.Errorf("no aggregate cpu line in /proc/stat")
}

// UsageSince returns the CPU busy percentage between prev and t.
// Returns 0 when no time has elapsed or the counters went backwards.
func (t CPUTimes) UsageSince(prev CPUTimes) float64 {
	totalDelta := t.Total - prev.Total
	idleDelta := t.Idle - prev.Idle
	if totalDelta <= 0 || idleDelta < 0 {
		return 0
	}
	return float64(totalDelta-idleDelta) / float64(totalDelta) * 100
}

// ParseMeminfo parses /proc/meminfo output into a memory reading.
// Used memory is total - free - buffers - cached; the percentage is the
// share of memory that is not available.
func ParseMeminfo(procMeminfo string) (metrics.MemoryReading, error) {
	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))

	var memTotal, memFree, memAvailable, buffers, cached uint64
	haveAvailable := false
	foundFields := 0

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		// Values in /proc/meminfo are in kB
		val, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			continue
		}
		valBytes := val * 1024

		switch strings.TrimSuffix(parts[0], ":") {
		case "MemTotal":
			memTotal = valBytes
			foundFields++
		case "MemFree":
			memFree = valBytes
			foundFields++
		case "MemAvailable":
			memAvailable = valBytes
			haveAvailable = true
		case "Buffers":
			buffers = valBytes
			foundFields++
		case "Cached":
			cached = valBytes
			foundFields++
		}
	}

	if err := scanner.Err(); err != nil {
		return metrics.MemoryReading{}, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if foundFields < 2 || memTotal == 0 {
		return metrics.MemoryReading{}, fmt.Errorf("insufficient memory info found in /proc/meminfo")
	}

	if !haveAvailable {
		memAvailable = memFree + buffers + cached
	}

	reading := metrics.MemoryReading{TotalBytes: memTotal}
	if reclaimable := memFree + buffers + cached; reclaimable < memTotal {
		reading.UsedBytes = memTotal - reclaimable
	}
	if memAvailable < memTotal {
		reading.Percent = float64(memTotal-memAvailable) / float64(memTotal) * 100
	}

	return reading, nil
}
