package sweep

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Schedule runs the sweep on a cron schedule until ctx is cancelled.
// Returns immediately with an error if the expression does not parse.
func (s *Sweeper) Schedule(ctx context.Context, expr string) error {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return fmt.Errorf("sweep: parse schedule %q: %w", expr, err)
	}

	for {
		next := sched.Next(time.Now())
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Until(next)):
		}

		res, err := s.Run(ctx)
		if err != nil {
			log.Printf("sweep: run: %v", err)
			continue
		}
		log.Printf("sweep: checked %d issues, updated %d cards, %d errors",
			res.Issues, res.CardsUpdated, len(res.Errors))
		for _, e := range res.Errors {
			log.Printf("sweep: %s", e)
		}
	}
}
