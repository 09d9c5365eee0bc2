package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// NvidiaSMIArgs are the nvidia-smi arguments whose output ParseNvidiaSMI expects.
var NvidiaSMIArgs = []string{
	"--query-gpu=name,utilization.gpu,memory.used,memory.total",
	"--format=csv,noheader,nounits",
}

// ParseNvidiaSMI parses accelerator readings from nvidia-smi CSV output,
// one line per GPU: name, utilization.gpu (%), memory.used (MiB), memory.total (MiB).
//
// Returns an empty list if no GPU is available (empty output or a driver
// error message).
func ParseNvidiaSMI(output string) ([]metrics.AcceleratorReading, error) {
	output = strings.TrimSpace(output)
	if output == "" || looksLikeNvidiaError(output) {
		return nil, nil
	}

	var readings []metrics.AcceleratorReading
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Example: "NVIDIA GeForce RTX 3080, 45, 2048, 10240"
		fields := strings.Split(line, ",")
		if len(fields) < 4 {
			return nil, fmt.Errorf("nvidia-smi output has insufficient fields: expected 4, got %d", len(fields))
		}

		reading := metrics.AcceleratorReading{
			Name: strings.TrimSpace(fields[0]),
		}

		util, err := parseOptionalFloat(fields[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse GPU utilization: %w", err)
		}
		reading.LoadFraction = util / 100

		if reading.MemUsedMB, err = parseOptionalFloat(fields[2]); err != nil {
			return nil, fmt.Errorf("failed to parse GPU memory used: %w", err)
		}
		if reading.MemTotalMB, err = parseOptionalFloat(fields[3]); err != nil {
			return nil, fmt.Errorf("failed to parse GPU memory total: %w", err)
		}

		readings = append(readings, reading)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning nvidia-smi output: %w", err)
	}

	return readings, nil
}

// looksLikeNvidiaError reports whether nvidia-smi printed a "no GPU" style message.
func looksLikeNvidiaError(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "no devices") ||
		strings.Contains(lower, "not found") ||
		strings.Contains(lower, "failed") ||
		strings.Contains(lower, "error")
}

// parseOptionalFloat parses a CSV field, treating "" and "[N/A]" as zero.
func parseOptionalFloat(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" || field == "[N/A]" || field == "[Not Supported]" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number", field)
	}
	return v, nil
}
