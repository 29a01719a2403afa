package engine

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/FlagRing/internal/model"
)

// Tracer receives a snapshot after every accepted placement. Candidates are
// the positions that will be tried for the piece now at the front of the
// queue; they are nil once the queue is empty.
type Tracer interface {
	Trace(step int, radius float64, placements []model.Placement, candidates []model.Point2D) error
}

// Option configures a Packer.
type Option func(*Packer)

// WithLogger sets the logger used for debug output during a run.
func WithLogger(l *log.Logger) Option {
	return func(p *Packer) { p.logger = l }
}

// WithTracer attaches a debug collaborator called after every placement.
func WithTracer(t Tracer) Option {
	return func(p *Packer) { p.tracer = t }
}

// Packer runs the circular packing algorithm.
type Packer struct {
	Settings model.PackSettings
	logger   *log.Logger
	tracer   Tracer
}

func New(settings model.PackSettings, opts ...Option) *Packer {
	p := &Packer{
		Settings: settings,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// packState is a step of the packing state machine.
type packState int

const (
	stateInitializing packState = iota
	statePlacing
	stateGrowing
	stateDone
)

// run holds the state of a single packing run. It is owned by one Pack call
// and discarded when the call returns.
type run struct {
	rng       *rand.Rand
	remaining []model.Piece   // Pieces still to place, in scan order
	placed    []model.Corners // Corner sets of placed pieces, in placement order
	layout    model.Layout
	limit     float64 // Radius at which the run gives up
	cursor    int     // Scan position in remaining
}

// Pack places every piece and returns the resulting layout. The input slice
// is not modified. With a zero Seed a fresh seed is drawn and recorded in
// the returned layout so the run can be reproduced.
func (p *Packer) Pack(ctx context.Context, pieces []model.Piece) (model.Layout, error) {
	seed := p.Settings.Seed
	if seed == 0 {
		seed = newSeed()
	}
	r := &run{rng: rand.New(rand.NewSource(seed))}
	r.layout.Seed = seed

	state := stateInitializing
	for state != stateDone {
		var err error
		switch state {
		case stateInitializing:
			err = p.initialize(r, pieces)
			state = statePlacing
		case statePlacing:
			state, err = p.placeNext(r)
		case stateGrowing:
			// Growth rounds are the only point where a long run can be interrupted
			if err = ctx.Err(); err == nil {
				err = p.grow(r)
			}
			state = statePlacing
		}
		if err != nil {
			return model.Layout{}, err
		}
	}

	p.logger.Debug("packing done",
		"pieces", len(r.layout.Placements),
		"radius", fmt.Sprintf("%.1f", r.layout.Radius),
		"rounds", r.layout.Rounds,
		"seed", seed)
	return r.layout, nil
}

// initialize validates the input, shuffles the queue and places the first
// piece centered on the origin.
func (p *Packer) initialize(r *run, pieces []model.Piece) error {
	if err := p.validateSettings(); err != nil {
		return err
	}
	if len(pieces) == 0 {
		return ErrEmptyInput
	}
	if err := checkSizes(pieces); err != nil {
		return err
	}

	r.remaining = make([]model.Piece, len(pieces))
	copy(r.remaining, pieces)
	r.rng.Shuffle(len(r.remaining), func(i, j int) {
		r.remaining[i], r.remaining[j] = r.remaining[j], r.remaining[i]
	})

	if err := CheckHeights(r.remaining); err != nil {
		return err
	}

	first := r.remaining[0]
	r.layout.Radius = first.Size().HalfDiagonal()
	r.limit = p.radiusLimit(r.remaining, r.layout.Radius)
	p.accept(r, 0, model.Point2D{})

	p.logger.Debug("packing started",
		"pieces", len(pieces),
		"radius", fmt.Sprintf("%.1f", r.layout.Radius),
		"limit", fmt.Sprintf("%.1f", r.limit))
	return p.trace(r)
}

// placeNext tries the piece at the cursor. It returns the next state.
func (p *Packer) placeNext(r *run) (packState, error) {
	if len(r.remaining) == 0 {
		return stateDone, nil
	}
	if r.cursor >= len(r.remaining) {
		return stateGrowing, nil
	}

	piece := r.remaining[r.cursor]
	size := piece.Size()
	for _, c := range Candidates(r.placed, size, r.rng) {
		if !CornersInCircle(r.layout.Radius, CornersOf(c, size)) {
			continue
		}
		p.accept(r, r.cursor, c)
		// Restart from the front: the new neighbour may make room for
		// pieces skipped earlier in this round
		r.cursor = 0
		return statePlacing, p.trace(r)
	}

	r.cursor++
	return statePlacing, nil
}

// accept records the piece at index i of the queue as placed at center.
func (p *Packer) accept(r *run, i int, center model.Point2D) {
	piece := r.remaining[i]
	corners := CornersOf(center, piece.Size())
	anchor := UpperLeft(corners)

	r.placed = append(r.placed, corners)
	r.layout.Placements = append(r.layout.Placements, model.Placement{
		Piece:  piece,
		X:      anchor.X,
		Y:      anchor.Y,
		Center: center,
	})
	r.remaining = append(r.remaining[:i], r.remaining[i+1:]...)

	p.logger.Debug("placed piece",
		"label", piece.Label,
		"x", anchor.X,
		"y", anchor.Y,
		"remaining", len(r.remaining))
}

// grow enlarges the bounding circle after a round in which nothing fit.
func (p *Packer) grow(r *run) error {
	r.layout.Radius += p.Settings.GrowthStep
	r.layout.Rounds++
	r.cursor = 0

	if r.layout.Radius > r.limit {
		return fmt.Errorf("%w: radius %.1f > %.1f with %d pieces left",
			ErrRadiusLimit, r.layout.Radius, r.limit, len(r.remaining))
	}
	p.logger.Debug("radius grown",
		"radius", fmt.Sprintf("%.1f", r.layout.Radius),
		"round", r.layout.Rounds,
		"remaining", len(r.remaining))
	return nil
}

// trace hands the current state to the tracer, if any.
func (p *Packer) trace(r *run) error {
	if p.tracer == nil {
		return nil
	}
	step := len(r.layout.Placements)
	var next []model.Point2D
	if len(r.remaining) > 0 {
		// Separate source so tracing never changes the layout of a seed
		rng := rand.New(rand.NewSource(r.layout.Seed + int64(step)))
		next = Candidates(r.placed, r.remaining[0].Size(), rng)
	}
	if err := p.tracer.Trace(step, r.layout.Radius, r.layout.Placements, next); err != nil {
		return fmt.Errorf("trace step %d: %w", step, err)
	}
	return nil
}

func (p *Packer) validateSettings() error {
	step := p.Settings.GrowthStep
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: growth step must be positive, got %g", ErrInvalidSettings, step)
	}
	if p.Settings.MaxRadius < 0 || math.IsNaN(p.Settings.MaxRadius) {
		return fmt.Errorf("%w: max radius must not be negative, got %g", ErrInvalidSettings, p.Settings.MaxRadius)
	}
	return nil
}

// radiusLimit returns the radius past which the run is abandoned. Without a
// configured limit it is derived from the input: stacking every piece on the
// vertical axis fits within hypot(maxWidth, (n+1)*height), and pole
// candidates always realise such a stack, so a correct run never gets there.
func (p *Packer) radiusLimit(pieces []model.Piece, initial float64) float64 {
	if p.Settings.MaxRadius > 0 {
		return math.Max(p.Settings.MaxRadius, initial)
	}
	var maxW float64
	for _, pc := range pieces {
		maxW = math.Max(maxW, pc.Width)
	}
	h := pieces[0].Height
	return math.Hypot(maxW, float64(len(pieces)+1)*h) + initial + p.Settings.GrowthStep
}

// newSeed draws a non-zero seed from the global source.
func newSeed() int64 {
	for {
		if s := rand.Int63(); s != 0 {
			return s
		}
	}
}
