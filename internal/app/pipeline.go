package app

import (
	"log"
	"time"

	"github.com/averma/handwave/internal/capture"
	"github.com/averma/handwave/internal/pose"
)

// run is the frame loop. It captures at IdleFPS until the motion gate
// reports activity, then raises the rate to ActiveFPS for as long as
// the scene stays live.
func (e *Engine) run(stopCh chan struct{}) {
	defer e.wg.Done()

	active := e.gate == nil
	fps := capture.IdleFPS
	if active {
		fps = capture.ActiveFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			wantActive := e.step(now)
			if wantActive == active {
				continue
			}
			active = wantActive
			fps = capture.IdleFPS
			if active {
				fps = capture.ActiveFPS
			}
			e.camera.SetFPS(fps)
			ticker.Reset(time.Second / time.Duration(fps))
			log.Printf("capture rate %d fps", fps)
		}
	}
}

// step processes one frame and reports whether the engine should run at
// the active frame rate.
func (e *Engine) step(now time.Time) bool {
	frame, err := e.camera.Read()
	if err != nil {
		return e.gate == nil
	}
	defer frame.Close()

	active := true
	if e.gate != nil {
		active, _ = e.gate.Observe(frame, now)
	}

	snap := e.flags.Snapshot()
	if !active || snap.Paused() {
		// Wind the detectors down as if the hand left the frame so a
		// half-armed scroll entry cannot survive a pause.
		e.track(nil, now)
		return active
	}

	hands, err := e.det.Detect(frame)
	if err != nil {
		log.Printf("detect: %v", err)
		return active
	}

	sample := pose.Adapt(hands, now, e.settings.Detector.MinConfidence)
	e.track(sample, now)
	return active
}

// track advances tracking and classification by one frame and
// dispatches whatever the state machine forwards.
func (e *Engine) track(sample *pose.Sample, now time.Time) {
	state := e.tracker.Update(sample)

	events, scrollActive := e.gestures.Classify(state)
	prevMode := e.machine.Mode()
	forwarded := e.machine.Step(now, events, scrollActive)

	if mode := e.machine.Mode(); mode != prevMode {
		log.Printf("mode %s", mode)
		if e.onMode != nil {
			e.onMode(mode)
		}
		if scrollActive {
			e.persistBaseline()
		}
	}

	snap := e.flags.Snapshot()
	for _, ev := range forwarded {
		if !e.dispatcher.Dispatch(ev, snap) {
			continue
		}
		if ev.Kind.IsSwipe() {
			// One motion, one swipe. Dropping the window forces the
			// displacement to build up again from scratch.
			e.tracker.Reset()
		}
		if e.onEvent != nil {
			e.onEvent(ev)
		}
	}
}

// persistBaseline saves the freshly calibrated open-palm reach so the
// next session starts with it.
func (e *Engine) persistBaseline() {
	if e.st == nil {
		return
	}
	baseline := e.gestures.Scroll().Baseline()
	if baseline <= 0 {
		return
	}
	if err := e.st.Settings().SetScrollBaseline(baseline); err != nil {
		log.Printf("persist scroll baseline: %v", err)
	}
}
