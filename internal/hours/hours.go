// Package hours classifies a store's live open/closed state from its weekly
// opening schedule. All clock values are interpreted in the business' civil
// timezone, not the caller's.
package hours

import (
	"fmt"
	"strconv"
	"time"
)

// Period is one contiguous open interval within a week. Times are encoded
// as "HHMM" strings (e.g. "0900", "1830"), days 0=Sunday..6=Saturday.
// A close time-of-day numerically below the open time-of-day means the
// period spans midnight into the following day.
type Period struct {
	OpenDay   int    `json:"openDay"`
	OpenTime  string `json:"openTime"`
	CloseDay  int    `json:"closeDay"`
	CloseTime string `json:"closeTime"`
}

// Schedule is a week-periodic opening schedule. Multiple periods may share
// an OpenDay (split hours).
type Schedule struct {
	Periods []Period `json:"periods"`
}

// State is the semantic open/closed classification.
type State string

const (
	StateUnknown     State = "unknown"
	StateOpen        State = "open"
	StateClosingSoon State = "closing_soon"
	StateClosed      State = "closed"
)

// Status is the result of a single evaluation. StatusLabel and DetailLabel
// are the localized strings presentation code displays as-is.
type Status struct {
	State       State  `json:"state"`
	StatusLabel string `json:"statusLabel"`
	DetailLabel string `json:"detailLabel"`
}

const (
	labelUnknown = "Няма информация"
	labelOpen    = "Отворено"
	labelClosed  = "Затворено"
)

// dayNames is indexed 0=Sunday..6=Saturday, matching Period.OpenDay.
var dayNames = [7]string{
	"неделя",
	"понеделник",
	"вторник",
	"сряда",
	"четвъртък",
	"петък",
	"събота",
}

const minutesPerDay = 1440

// Config holds the evaluation constants. The thresholds are configuration,
// not behavior: changing them never changes the classification algorithm.
type Config struct {
	Timezone          string
	ClosingSoonWindow time.Duration
	LookaheadDays     int
}

// DefaultConfig returns the production evaluation constants.
func DefaultConfig() Config {
	return Config{
		Timezone:          "Europe/Sofia",
		ClosingSoonWindow: 120 * time.Minute,
		LookaheadDays:     7,
	}
}

// Evaluator computes opening statuses against a fixed civil timezone.
// It is stateless and safe for concurrent use.
type Evaluator struct {
	loc         *time.Location
	closingSoon int // minutes
	lookahead   int // days
}

// NewEvaluator builds an evaluator for the given config. The timezone must
// resolve from the system tz database.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	if cfg.Timezone == "" {
		cfg.Timezone = "Europe/Sofia"
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	closingSoon := int(cfg.ClosingSoonWindow.Minutes())
	if closingSoon <= 0 {
		closingSoon = 120
	}
	lookahead := cfg.LookaheadDays
	if lookahead <= 0 {
		lookahead = 7
	}
	return &Evaluator{loc: loc, closingSoon: closingSoon, lookahead: lookahead}, nil
}

// ComputeNow evaluates the schedule against the current wall clock.
func (e *Evaluator) ComputeNow(schedule *Schedule) Status {
	return e.Compute(schedule, time.Now())
}

// Compute evaluates the schedule at the given instant. It is a total
// function: absent or malformed schedule data degrades to Unknown or to an
// empty detail label, never to an error.
func (e *Evaluator) Compute(schedule *Schedule, now time.Time) Status {
	if schedule == nil || len(schedule.Periods) == 0 {
		return Status{State: StateUnknown, StatusLabel: labelUnknown}
	}

	local := now.In(e.loc)
	day := int(local.Weekday())
	cur := local.Hour()*60 + local.Minute()

	if closeAt, ok := e.openInterval(schedule.Periods, day, cur); ok {
		remaining := closeAt - cur
		state := StateOpen
		if remaining > 0 && remaining <= e.closingSoon {
			state = StateClosingSoon
		}
		return Status{
			State:       state,
			StatusLabel: labelOpen,
			DetailLabel: fmt.Sprintf("Ще затвори в %s", formatClock(closeAt%minutesPerDay)),
		}
	}

	detail := ""
	if openDay, openAt, ok := e.nextOpening(schedule.Periods, day, cur); ok {
		detail = fmt.Sprintf("Отваря %s в %s", dayNames[openDay], formatClock(openAt))
	}
	return Status{State: StateClosed, StatusLabel: labelClosed, DetailLabel: detail}
}

// openInterval reports whether any period covers the current minute and
// returns the close instant in minutes relative to today's midnight (may
// exceed 1439 for a period running past midnight).
func (e *Evaluator) openInterval(periods []Period, day, cur int) (int, bool) {
	yesterday := (day + 6) % 7
	for _, p := range periods {
		openM, closeM, ok := periodMinutes(p)
		if !ok {
			continue
		}
		if p.OpenDay == day {
			c := closeM
			if c < openM {
				c += minutesPerDay
			}
			if cur >= openM && cur < c {
				return c, true
			}
		}
		// A period that opened yesterday and spans midnight is still
		// running during today's early hours.
		if p.OpenDay == yesterday && closeM < openM && cur < closeM {
			return closeM, true
		}
	}
	return 0, false
}

// nextOpening finds the first period start strictly after the current
// moment, scanning the rest of today and then up to lookahead days forward.
func (e *Evaluator) nextOpening(periods []Period, day, cur int) (int, int, bool) {
	if openAt, ok := earliestOpenAfter(periods, day, cur); ok {
		return day, openAt, true
	}
	for i := 1; i <= e.lookahead; i++ {
		d := (day + i) % 7
		if openAt, ok := earliestOpenAfter(periods, d, -1); ok {
			return d, openAt, true
		}
	}
	return 0, 0, false
}

// earliestOpenAfter returns the earliest opening on the given day strictly
// later than the given minute.
func earliestOpenAfter(periods []Period, day, after int) (int, bool) {
	best := -1
	for _, p := range periods {
		if p.OpenDay != day {
			continue
		}
		openM, _, ok := periodMinutes(p)
		if !ok || openM <= after {
			continue
		}
		if best == -1 || openM < best {
			best = openM
		}
	}
	return best, best != -1
}

// periodMinutes decodes a period's open and close times into minutes since
// midnight. Malformed times invalidate the whole period.
func periodMinutes(p Period) (openM, closeM int, ok bool) {
	openM, ok = parseClock(p.OpenTime)
	if !ok {
		return 0, 0, false
	}
	closeM, ok = parseClock(p.CloseTime)
	if !ok {
		return 0, 0, false
	}
	if p.OpenDay < 0 || p.OpenDay > 6 {
		return 0, 0, false
	}
	return openM, closeM, true
}

// parseClock decodes an "HHMM" string into minutes since midnight.
func parseClock(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	h, m := v/100, v%100
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
