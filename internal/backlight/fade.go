package backlight

import (
	"context"
	"time"
)

// Fade walks brightness from from to to in at most the configured number of
// steps, writing each intermediate value through Set and sleeping the
// configured interval between writes. The step size is the integer quotient
// of the distance and the step count; a quotient of zero is forced to
// magnitude 1 so small gaps still make progress. The final write is always
// exactly to: the loop snaps there when an intermediate value would pass it
// or when the step budget runs out.
//
// Cancelling ctx stops the fade at the next sleep boundary, leaving whatever
// intermediate value was last applied.
func (b *Backlight) Fade(ctx context.Context, from, to int) {
	if from == to || ctx.Err() != nil {
		return
	}

	step := (to - from) / b.fadeSteps
	if step == 0 {
		if to > from {
			step = 1
		} else {
			step = -1
		}
	}

	current := from
	for i := 1; ; i++ {
		current += step

		done := i >= b.fadeSteps
		if step > 0 && current >= to {
			done = true
		}
		if step < 0 && current <= to {
			done = true
		}
		if done {
			b.Set(to)
			return
		}

		b.Set(current)
		select {
		case <-ctx.Done():
			return
		case <-time.After(b.fadeInterval):
		}
	}
}
