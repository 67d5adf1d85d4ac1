package pipeline

import (
	"time"

	"dirsync/internal/model"
)

// Debounce groups events into batches, emitting a batch once no new event
// has arrived for delay. Events that arrive while a batch is waiting to be
// received are folded into it, so the input is never blocked by a slow
// consumer.
func Debounce(inCh <-chan model.FileEvent, delay time.Duration) <-chan []model.FileEvent {
	outCh := make(chan []model.FileEvent)

	go func() {
		defer close(outCh)

		var (
			pending []model.FileEvent
			timer   *time.Timer
			fire    <-chan time.Time
			ready   bool
		)

		for {
			var out chan<- []model.FileEvent
			if ready {
				out = outCh
			}

			select {
			case event, ok := <-inCh:
				if !ok {
					if timer != nil {
						timer.Stop()
					}
					if len(pending) > 0 {
						outCh <- pending
					}
					return
				}

				pending = append(pending, event)
				if ready {
					continue
				}

				if timer == nil {
					timer = time.NewTimer(delay)
				} else {
					timer.Reset(delay)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				ready = true

			case out <- pending:
				pending = nil
				ready = false
			}
		}
	}()

	return outCh
}
