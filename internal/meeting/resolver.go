package meeting

import (
	"context"
	"errors"
	"fmt"
	"munsite/internal/dates"
	"munsite/internal/model"
	"slices"
	"time"
)

// Strategy is one way of loading the meeting list.
type Strategy struct {
	Name string
	Load func(ctx context.Context) ([]model.Meeting, error)
}

// Chain tries each strategy in order and returns the first success. When all
// fail, the error lists every strategy with its cause.
type Chain []Strategy

func (c Chain) Load(ctx context.Context) ([]model.Meeting, error) {
	if len(c) == 0 {
		return nil, errors.New("meetings: no loaders configured")
	}

	var errs []error
	for _, s := range c {
		meetings, err := s.Load(ctx)
		if err == nil {
			return meetings, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
	}
	return nil, fmt.Errorf("meetings: all sources failed: %w", errors.Join(errs...))
}

// Policy decides whether a meeting is cancelled, combining the meeting's own
// flag with the site-wide cancellation window.
type Policy struct {
	cancelAll   bool
	cancelUntil string
	cancelDates map[string]struct{}
}

func NewPolicy(site model.SiteConfig) Policy {
	p := Policy{
		cancelAll:   site.CancelAllUpcoming,
		cancelUntil: dates.USDateToISO(site.CancelUntil),
		cancelDates: make(map[string]struct{}, len(site.CancelDates)),
	}
	for _, d := range site.CancelDates {
		p.cancelDates[dates.USDateToISO(d)] = struct{}{}
	}
	return p
}

func (p Policy) IsCancelled(m model.Meeting) bool {
	if m.Cancelled || p.cancelAll {
		return true
	}
	date := dates.USDateToISO(m.Date)
	if p.cancelUntil != "" && date <= p.cancelUntil {
		return true
	}
	_, ok := p.cancelDates[date]
	return ok
}

// Next returns the earliest meeting at or after now that is not cancelled.
// Ties keep source order.
func Next(meetings []model.Meeting, policy Policy, now time.Time, loc *time.Location) (model.Meeting, bool) {
	type candidate struct {
		m  model.Meeting
		at dates.DateTime
	}

	ref := dates.Of(now)
	var upcoming []candidate
	for _, m := range meetings {
		at := dates.BuildDateTime(m.Date, m.Time, loc)
		if !at.AtOrAfter(ref) || policy.IsCancelled(m) {
			continue
		}
		upcoming = append(upcoming, candidate{m: m, at: at})
	}
	if len(upcoming) == 0 {
		return model.Meeting{}, false
	}

	slices.SortStableFunc(upcoming, func(a, b candidate) int {
		switch {
		case a.at.Less(b.at):
			return -1
		case b.at.Less(a.at):
			return 1
		default:
			return 0
		}
	})
	return upcoming[0].m, true
}

// StartsAt is the meeting's start in loc.
func StartsAt(m model.Meeting, loc *time.Location) dates.DateTime {
	return dates.BuildDateTime(m.Date, m.Time, loc)
}
