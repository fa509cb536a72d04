package game

import (
	"context"
	rand "math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"
)

// PlayerState is the lifecycle state of a player goroutine.
type PlayerState int32

const (
	Idle PlayerState = iota
	AwaitingVerdict
	Frozen
	Terminated
)

func (s PlayerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingVerdict:
		return "awaiting-verdict"
	case Frozen:
		return "frozen"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Verdict is the dealer's answer to a claim.
type Verdict int

const (
	// VerdictNone releases a player whose claim was withdrawn because
	// another player's set took one of its cards.
	VerdictNone Verdict = iota
	VerdictPoint
	VerdictPenalty
)

func (v Verdict) String() string {
	switch v {
	case VerdictNone:
		return "none"
	case VerdictPoint:
		return "point"
	case VerdictPenalty:
		return "penalty"
	default:
		return "unknown"
	}
}

// Player runs one participant. Key presses (or generated presses for
// computer players) arrive on a small action queue; the player goroutine
// turns them into token moves on the table and blocks for a verdict whenever
// its tokens complete a claim.
type Player struct {
	id    int
	human bool

	table   *Table
	display Display
	clock   quartz.Clock
	logger  *log.Logger
	rng     *rand.Rand

	tableSize     int
	pointFreeze   time.Duration
	penaltyFreeze time.Duration
	freezeTick    time.Duration

	actions chan int
	verdict chan Verdict

	score atomic.Int64
	state atomic.Int32

	ready     chan struct{}
	done      chan struct{}
	startOnce sync.Once
	cancel    context.CancelFunc
}

// NewPlayer creates a player bound to table. rng drives the input generator
// of a computer player and may be nil for humans.
func NewPlayer(id int, human bool, table *Table, cfg Config, display Display, clock quartz.Clock, rng *rand.Rand, logger *log.Logger) *Player {
	if display == nil {
		display = NullDisplay{}
	}
	return &Player{
		id:            id,
		human:         human,
		table:         table,
		display:       display,
		clock:         clock,
		logger:        logger.WithPrefix("player").With("player", id),
		rng:           rng,
		tableSize:     cfg.TableSize,
		pointFreeze:   cfg.PointFreeze,
		penaltyFreeze: cfg.PenaltyFreeze,
		freezeTick:    cfg.FreezeTick,
		actions:       make(chan int, cfg.FeatureSize()),
		verdict:       make(chan Verdict, 1),
		ready:         make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// ID returns the player id.
func (p *Player) ID() int { return p.id }

// Human reports whether the player takes keyboard input.
func (p *Player) Human() bool { return p.human }

// Score returns the points awarded so far.
func (p *Player) Score() int { return int(p.score.Load()) }

// State returns the current lifecycle state.
func (p *Player) State() PlayerState { return PlayerState(p.state.Load()) }

func (p *Player) setState(s PlayerState) { p.state.Store(int32(s)) }

// Ready is closed once the player goroutine, and its generator if any, are
// running.
func (p *Player) Ready() <-chan struct{} { return p.ready }

// Done is closed once the player goroutine has exited.
func (p *Player) Done() <-chan struct{} { return p.done }

// Start launches the player goroutine. The player keeps running until
// Terminate is called or ctx is cancelled. Start is a no-op after the first
// call.
func (p *Player) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		ctx, p.cancel = context.WithCancel(ctx)
		go p.run(ctx)
	})
}

// Terminate stops the player and waits for its goroutines to exit.
func (p *Player) Terminate() {
	p.startOnce.Do(func() {
		// Never started; nothing to wait for.
		p.setState(Terminated)
		close(p.ready)
		close(p.done)
	})
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
}

// OnInput queues a slot press. Presses beyond the queue capacity, and presses
// for slots that do not exist, are dropped.
func (p *Player) OnInput(slot int) {
	if slot < 0 || slot >= p.tableSize {
		return
	}
	select {
	case p.actions <- slot:
	default:
	}
}

// ClearActions discards queued presses.
func (p *Player) ClearActions() {
	for {
		select {
		case <-p.actions:
		default:
			return
		}
	}
}

// deliver hands a verdict to the player. Every queued claim gets exactly one
// verdict, so the single slot channel is always free here.
func (p *Player) deliver(v Verdict) {
	select {
	case p.verdict <- v:
	default:
		p.logger.Warn("Verdict dropped, previous verdict still pending", "verdict", v)
	}
}

func (p *Player) run(ctx context.Context) {
	defer close(p.done)

	p.logger.Info("Player starting", "human", p.human)
	g, gctx := errgroup.WithContext(ctx)
	if !p.human {
		g.Go(func() error {
			p.generate(gctx)
			return nil
		})
	}
	p.setState(Idle)
	close(p.ready)

	for ctx.Err() == nil {
		select {
		case <-ctx.Done():
		case slot := <-p.actions:
			p.act(ctx, slot)
		}
	}

	_ = g.Wait()
	p.setState(Terminated)
	p.logger.Info("Player terminated", "score", p.Score())
}

// act applies one key press: pressing a slot that already has this player's
// token takes the token back, any other slot places a token.
func (p *Player) act(ctx context.Context, slot int) {
	if p.table.RemoveToken(p.id, slot) {
		p.logger.Debug("Token removed", "slot", slot)
		return
	}

	placed, claimed := p.table.PlaceToken(p.id, slot)
	if !placed {
		return
	}
	p.logger.Debug("Token placed", "slot", slot)
	if claimed {
		p.awaitVerdict(ctx)
	}
}

func (p *Player) awaitVerdict(ctx context.Context) {
	p.setState(AwaitingVerdict)

	var v Verdict
	select {
	case <-ctx.Done():
		return
	case v = <-p.verdict:
	}

	p.logger.Debug("Verdict received", "verdict", v)
	switch v {
	case VerdictPoint:
		p.point(ctx)
	case VerdictPenalty:
		p.penalty(ctx)
	}
	p.ClearActions()
	p.setState(Idle)
}

// point shows the score the dealer awarded and serves the point freeze.
func (p *Player) point(ctx context.Context) {
	p.display.SetScore(p.id, p.Score())
	p.freeze(ctx, p.pointFreeze)
}

func (p *Player) penalty(ctx context.Context) {
	p.freeze(ctx, p.penaltyFreeze)
}

// freeze counts down d in freezeTick steps. Only termination cuts it short.
func (p *Player) freeze(ctx context.Context, d time.Duration) {
	p.setState(Frozen)
	defer p.display.SetFreeze(p.id, 0)

	for elapsed := time.Duration(0); elapsed < d; elapsed += p.freezeTick {
		p.display.SetFreeze(p.id, d-elapsed)

		timer := p.clock.NewTimer(min(p.freezeTick, d-elapsed), "player", "freeze")
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// generate presses random slots for a computer player. The bounded action
// queue is the only thing pacing it.
func (p *Player) generate(ctx context.Context) {
	p.logger.Debug("Generator starting")
	defer p.logger.Debug("Generator terminated")

	for {
		slot := p.rng.IntN(p.tableSize)
		select {
		case <-ctx.Done():
			return
		case p.actions <- slot:
		}
	}
}
