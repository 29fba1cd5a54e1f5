package session

import (
	"context"
	"time"

	"github.com/robfig/cron"

	"evidencija/internal"
	"evidencija/internal/errors"
)

// Pruner removes expired sessions on a cron schedule
type Pruner struct {
	cron *cron.Cron
}

// StartPruner schedules svc.Prune with a cron spec such as "@hourly"
func StartPruner(svc *Service, spec string, logger *internal.Logger) (*Pruner, error) {
	logger = logger.With("session-pruner")
	c := cron.New()
	err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.Prune(ctx)
		if err != nil {
			logger.Error("prune failed: %v", err)
			return
		}
		if n > 0 {
			logger.Info("pruned %d expired sessions", n)
		}
	})
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "bad prune schedule %q", spec))
	}
	c.Start()
	return &Pruner{cron: c}, nil
}

// Stop halts the schedule
func (p *Pruner) Stop() {
	p.cron.Stop()
}
