package tasks

import "github.com/hibiken/asynq"

// TypeBookingSweep is the queue task that cancels stale pending bookings.
const TypeBookingSweep = "booking:sweep_stale"

// NewSweepTask builds the periodic sweep task. It carries no payload; the
// handler derives the cutoff from the configured hold TTL at run time.
func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeBookingSweep, nil)
}
