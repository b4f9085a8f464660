package worker

import (
	"context"
	"fmt"

	"github.com/osse101/LuckBot_Go/internal/logger"
)

// RollCounter reports the total number of rolls across all users
type RollCounter interface {
	TotalRolls() int
}

// PresenceSetter publishes the bot's activity text
type PresenceSetter interface {
	SetPresence(ctx context.Context, totalRolls int) error
}

// PresenceJob refreshes the bot activity with the server-wide roll total
type PresenceJob struct {
	counter RollCounter
	setter  PresenceSetter
}

// NewPresenceJob creates a presence refresh job
func NewPresenceJob(counter RollCounter, setter PresenceSetter) *PresenceJob {
	return &PresenceJob{counter: counter, setter: setter}
}

// Process implements Job
func (j *PresenceJob) Process(ctx context.Context) error {
	total := j.counter.TotalRolls()
	if err := j.setter.SetPresence(ctx, total); err != nil {
		return fmt.Errorf(ErrMsgPresenceFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgPresenceUpdated, "total_rolls", total)
	return nil
}
