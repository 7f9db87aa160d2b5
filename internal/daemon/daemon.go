// SPDX-License-Identifier: GPL-3.0-only

// Package daemon contains the backlight state machine and the event loop
// driving it.
package daemon

//go:generate mockgen -source=daemon.go -destination=mocks/daemon_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/shini4i/kbd-backlight-daemon/internal/backlight"
)

// Poll intervals for the readiness wait. Short while the backlight is on so
// an external hotkey press is noticed quickly, long while dimmed or disabled
// to keep the idle daemon cheap. The brightness hardware offers no change
// notification, so polling is the mechanism.
const (
	pollIntervalActive = 200 * time.Millisecond
	pollIntervalIdle   = 2 * time.Second
)

// Backlight is the brightness control surface the daemon drives.
type Backlight interface {
	// Current returns the last known hardware brightness value.
	Current() int

	// Set clamps and writes a brightness value.
	Set(value int)

	// Fade transitions brightness from from to to in bounded steps.
	Fade(ctx context.Context, from, to int)

	// ExternalChange reports a brightness change not caused by this
	// process, together with the newly observed value.
	ExternalChange() (backlight.Change, int)
}

// ActivitySource reports user input activity from the monitored devices.
type ActivitySource interface {
	// WaitActivity blocks until input activity occurs or the timeout
	// elapses, and reports whether any activity was drained.
	WaitActivity(timeout time.Duration) (bool, error)
}

// Daemon owns the backlight session: the current state, the adopted target
// brightness and the activity clock. It is driven from a single goroutine.
type Daemon struct {
	backlight Backlight
	inputs    ActivitySource

	timeout time.Duration
	dim     int
	target  int

	state        State
	lastActivity time.Time

	activityLog *rate.Limiter
}

// New creates a daemon that fades to dim after timeout of inactivity and
// restores to target on activity. The target may later be replaced by an
// externally chosen value.
func New(bl Backlight, inputs ActivitySource, target, dim int, timeout time.Duration) *Daemon {
	return &Daemon{
		backlight: bl,
		inputs:    inputs,
		timeout:   timeout,
		dim:       dim,
		target:    target,
		state:     StateActive,
		// Steady typing reports activity on every wake-up; without a
		// limiter verbose logs drown in these lines.
		activityLog: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// State returns the current control state.
func (d *Daemon) State() State { return d.state }

// Run applies the target brightness and then drives the state machine until
// ctx is cancelled. On the way out brightness is restored to the target,
// even if a fade was interrupted mid-way. Device handles are left open; the
// registry that owns them closes them.
func (d *Daemon) Run(ctx context.Context) {
	d.lastActivity = time.Now()
	d.backlight.Set(d.target)

	log.Info().
		Int("target", d.target).
		Int("dim", d.dim).
		Dur("timeout", d.timeout).
		Msg("Backlight control loop started")

	for ctx.Err() == nil {
		timeout := pollIntervalIdle
		if d.state == StateActive {
			timeout = pollIntervalActive
		}

		activity, err := d.inputs.WaitActivity(timeout)
		if err != nil {
			log.Debug().Err(err).Msg("Activity wait failed")
			activity = false
		}
		if ctx.Err() != nil {
			break
		}

		d.step(ctx, activity, time.Now())
	}

	d.backlight.Set(d.target)
	log.Info().Msg("Backlight control loop stopped")
}

// step runs one state-machine iteration. The external-change check comes
// first so it can override input activity observed in the same wake-up, the
// inactivity timeout is evaluated last.
func (d *Daemon) step(ctx context.Context, activity bool, now time.Time) {
	change, value := d.backlight.ExternalChange()
	switch change {
	case backlight.ChangeOff:
		d.transition(StateUserDisabled, "external off")
	case backlight.ChangeOn:
		d.target = value
		d.lastActivity = now
		d.transition(StateActive, "external change")
	}

	if activity {
		d.lastActivity = now
		if d.activityLog.Allow() {
			log.Debug().Stringer("state", d.state).Msg("Input activity")
		}
		if d.state == StateDimmed {
			d.transition(StateActive, "input activity")
			d.backlight.Fade(ctx, d.backlight.Current(), d.target)
		}
	}

	if d.state == StateActive && now.Sub(d.lastActivity) >= d.timeout {
		d.transition(StateDimmed, "inactivity timeout")
		d.backlight.Fade(ctx, d.backlight.Current(), d.dim)
	}
}

// transition applies and logs a state change; re-entering the current state
// is a no-op.
func (d *Daemon) transition(to State, cause string) {
	if d.state == to {
		return
	}
	log.Info().
		Stringer("from", d.state).
		Stringer("to", to).
		Str("cause", cause).
		Msg("Backlight state changed")
	d.state = to
}
