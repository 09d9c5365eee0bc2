// Package app drives the monitor: it ticks the sampler on a schedule,
// hands snapshots to a Renderer, and routes resize and theme events
// through the scale calculator and theme controller.
//
// All Loop methods must be called from one goroutine, the one the
// Scheduler runs callbacks on. In async mode sampling happens on a worker
// and only the finished Snapshot crosses over, through a Mailbox.
package app
