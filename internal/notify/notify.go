package notify

import (
	"context"

	"github.com/vuelachile/schedgen/internal/kafka"
	"github.com/vuelachile/schedgen/internal/logging"
)

// Sender surfaces completed generation runs to operators. Currently a log
// sink; the consumer loop treats it as the delivery boundary.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ScheduleEvent) error {
	logging.L().Infow("schedule run completed",
		"run_id", event.RunID,
		"type", event.Type,
		"horizon_days", event.HorizonDays,
		"seed", event.Seed,
		"flights", event.FlightCount,
		"quotes", event.QuoteCount,
	)
	return nil
}
