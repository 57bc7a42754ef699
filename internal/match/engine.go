package match

import (
	"log"
	"sync"
	"time"
)

// Config tunes the rule engine. Zero values fall back to regulation
// defaults.
type Config struct {
	HalfLength          time.Duration // default 30 minutes
	TickInterval        time.Duration // default 1 second, nominal cadence only
	ForcedBenchDuration time.Duration // default 2 minutes

	// PerOfficialCaps switches the officials' yellow/2' allowance from
	// one shared across the bench (the default) to one per official.
	PerOfficialCaps bool
}

func (c Config) withDefaults() Config {
	if c.HalfLength <= 0 {
		c.HalfLength = 30 * time.Minute
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.ForcedBenchDuration <= 0 {
		c.ForcedBenchDuration = 2 * time.Minute
	}
	return c
}

// Engine is the match clock and sanction rule engine. It exclusively
// owns the MatchState; all reads and writes go through its operations.
// Operations are synchronous and serialized by the mutex, so derived
// countdowns are always current relative to the instant of each action.
type Engine struct {
	mu    sync.Mutex
	state *MatchState
	cfg   Config

	// now is swappable so tests can drive the clock deterministically.
	now func() time.Time

	pending *ForcedSubstitutionRequest

	snapshot *Snapshot

	onNotice NoticeFunc
	notices  []Notice // collected under lock, dispatched after unlock

	actions *ActionLog

	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}
}

// NewEngine creates an engine for one match session from a validated
// roster. The clock is paused and the field is empty.
func NewEngine(r Roster, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		state:    newMatchState(r, cfg.HalfLength.Seconds()),
		cfg:      cfg,
		now:      time.Now,
		actions:  NewActionLog(),
		stopChan: make(chan struct{}),
	}
}

// SetNoticeFunc installs the notification sink. Notices are delivered
// after the triggering operation releases the engine lock, in order.
func (e *Engine) SetNoticeFunc(fn NoticeFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onNotice = fn
}

// Start begins the periodic tick loop at the configured cadence.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(e.cfg.TickInterval)
	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.Tick()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🤾 Match engine started (tick %s, half %s)", e.cfg.TickInterval, e.cfg.HalfLength)
}

// Stop halts the tick loop. The match state stays intact.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("🛑 Match engine stopped")
}

// Tick is one external clock tick: snapshot, then bring every timer
// current. Safe to call at any cadence; elapsed time is recomputed from
// wall-clock instants, not accumulated per tick.
func (e *Engine) Tick() {
	e.do(func() error {
		e.pushSnapshotLocked("tick")
		e.flushLocked(e.now())
		return nil
	})
}

// do runs op under the lock and dispatches collected notices afterwards.
// Every public mutating operation goes through here so that notice
// delivery never happens while holding the lock.
func (e *Engine) do(op func() error) error {
	e.mu.Lock()
	err := op()
	ns := e.notices
	e.notices = nil
	fn := e.onNotice
	e.mu.Unlock()

	if fn != nil {
		for _, n := range ns {
			fn(n)
		}
	}
	return err
}

// emitLocked queues a notice for dispatch and mirrors it to the log.
func (e *Engine) emitLocked(n Notice) {
	log.Printf("📣 %s: %s", n.Kind, n.Message)
	e.notices = append(e.notices, n)
}

// entityLocked resolves an entity id.
func (e *Engine) entityLocked(id string) (*Entity, error) {
	ent, ok := e.state.Entities[id]
	if !ok {
		return nil, ErrUnknownEntity
	}
	return ent, nil
}

// StartActionLog begins writing the append-only JSONL action trail.
func (e *Engine) StartActionLog(path string) error {
	return e.actions.Start(path)
}

// StopActionLog flushes and closes the action trail.
func (e *Engine) StopActionLog() {
	e.actions.Stop()
}

// recordLocked appends an action to the audit trail.
func (e *Engine) recordLocked(typ ActionType, entityID string, detail any) {
	e.actions.Record(Action{
		Type:     typ,
		EntityID: entityID,
		Half:     e.state.Half,
		Elapsed:  int(e.state.Elapsed),
	}, detail)
}
