package app

import (
	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
)

// Planner turns a raw metadata timestamp into a destination under Root.
type Planner struct {
	Root string
}

func (p Planner) Plan(sourcePath, raw string) (domain.DestinationPlan, error) {
	ts, err := domain.ParseCaptureTimestamp(raw)
	if err != nil {
		return domain.DestinationPlan{}, appErrors.Wrap(appErrors.TimestampUnparseable, "plan", sourcePath, err)
	}
	return domain.NewDestinationPlan(p.Root, ts), nil
}
