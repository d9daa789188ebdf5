package binder

import (
	"context"

	"novel-binder/logfields"
)

// AcquirePrompt is asked when no converter binary can be found.
const AcquirePrompt = "Kindlegen is required to create *.mobi files. Get it now?"

// Toolchain locates, fetches and runs the external EPUB to MOBI converter.
type Toolchain interface {
	// Locate returns a handle to an installed converter.
	Locate() (handle string, ok bool)
	// Acquire installs the converter so that a following Locate can find it.
	Acquire(ctx context.Context) error
	// Convert produces the binary e-book for one artifact. ok is false when
	// the converter produced nothing.
	Convert(ctx context.Context, handle, artifact string) (path string, ok bool)
}

// Confirmer answers a yes/no question.
type Confirmer interface {
	Confirm(message string, defaultYes bool) bool
}

type defaultAnswer struct{}

func (defaultAnswer) Confirm(_ string, defaultYes bool) bool { return defaultYes }

// ConvertState is a step of the converter resolution. Declined, Unavailable
// and Done are terminal.
type ConvertState int

const (
	StateResolve ConvertState = iota
	StateConfirm
	StateAcquire
	StateConvert
	StateDeclined
	StateUnavailable
	StateDone
)

func (s ConvertState) String() string {
	switch s {
	case StateResolve:
		return "resolve"
	case StateConfirm:
		return "confirm"
	case StateAcquire:
		return "acquire"
	case StateConvert:
		return "convert"
	case StateDeclined:
		return "declined"
	case StateUnavailable:
		return "unavailable"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

func (s ConvertState) Terminal() bool {
	return s == StateDeclined || s == StateUnavailable || s == StateDone
}

// Conversion is the outcome of the MOBI stage.
type Conversion struct {
	State ConvertState
	Paths []string
}

// conversionRun walks the resolve, confirm, acquire, convert sequence once.
type conversionRun struct {
	b         *Binder
	artifacts []string
	handle    string
	acquired  bool
	paths     []string
}

func (r *conversionRun) step(ctx context.Context, state ConvertState) ConvertState {
	switch state {
	case StateResolve:
		handle, ok := r.b.toolchain.Locate()
		switch {
		case ok:
			r.handle = handle
			return StateConvert
		case r.acquired:
			return StateUnavailable
		default:
			return StateConfirm
		}
	case StateConfirm:
		if r.b.confirmer.Confirm(AcquirePrompt, true) {
			return StateAcquire
		}
		return StateDeclined
	case StateAcquire:
		r.acquired = true
		err := r.b.toolchain.Acquire(ctx)
		if err != nil {
			r.b.logger.Error("Failed to acquire converter", logfields.Stage(StageMobi), logfields.Error(err))
		}
		return StateResolve
	case StateConvert:
		for _, artifact := range r.artifacts {
			path, ok := r.b.toolchain.Convert(ctx, r.handle, artifact)
			r.b.recorder.IncConversionResult(ok)
			if !ok {
				r.b.logger.Warn("Failed to convert", logfields.Stage(StageMobi), logfields.Path(artifact))
				continue
			}
			r.paths = append(r.paths, path)
		}
		return StateDone
	default:
		return state
	}
}

// ConvertBinary converts every EPUB artifact to MOBI. A missing converter is
// offered for download first; declining or a failed download ends the stage
// without output and without an error.
func (b *Binder) ConvertBinary(ctx context.Context, artifacts []string) Conversion {
	if b.toolchain == nil {
		b.logger.Warn("No converter configured", logfields.Stage(StageMobi))
		return Conversion{State: StateUnavailable, Paths: []string{}}
	}
	run := &conversionRun{b: b, artifacts: artifacts, paths: make([]string, 0)}
	state := StateResolve
	for !state.Terminal() {
		state = run.step(ctx, state)
	}
	b.recorder.IncConverterOutcome(state.String())

	switch state {
	case StateDeclined:
		b.logger.Warn("Mobi files were not generated", logfields.Stage(StageMobi), logfields.State(state.String()))
	case StateUnavailable:
		b.logger.Error("Mobi files were not generated", logfields.Stage(StageMobi), logfields.State(state.String()))
	default:
		b.logger.Info("Created mobi files", logfields.Stage(StageMobi), logfields.Count(len(run.paths)))
	}
	return Conversion{State: state, Paths: run.paths}
}
