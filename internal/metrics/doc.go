// Package metrics turns raw sensor readings into display-ready snapshots.
//
// A Source answers three synchronous queries (CPU load, memory, and the
// list of discrete accelerators). The Sampler calls them once per tick and
// normalizes the answers into an immutable Snapshot: byte counts become
// GiB, fractions become percentages, and every percentage is clamped to
// [0, 100] so a gauge never receives an out-of-range value.
//
// Implementations live in subpackages:
//
//	local   - this machine, via gopsutil and nvidia-smi
//	remote  - one host over SSH, via /proc and nvidia-smi
//	parsers - text parsers shared by both
package metrics
