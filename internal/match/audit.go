package match

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	actionBufferSize   = 1024 // circular buffer slots
	maxActionsPerSec   = 500  // global rate limit, generous for one scorekeeper
	batchFlushSize     = 64
	batchFlushInterval = 250 * time.Millisecond
)

// ActionType classifies entries of the audit trail.
type ActionType string

const (
	ActionClockStart  ActionType = "clock_start"
	ActionClockPause  ActionType = "clock_pause"
	ActionYellow      ActionType = "yellow"
	ActionTwoMinutes  ActionType = "two_minutes"
	ActionRed         ActionType = "red"
	ActionFieldToggle ActionType = "field_toggle"
	ActionForcedSub   ActionType = "forced_sub"
	ActionGoal        ActionType = "goal"
	ActionShot        ActionType = "shot"
	ActionTechFault   ActionType = "tech_fault"
	ActionAchievement ActionType = "achievement"
	ActionUndo        ActionType = "undo"
)

// actionVersion guards the JSONL schema for post-match tooling.
const actionVersion uint8 = 1

// Action is one applied mutation, written append-only as
// newline-delimited JSON for post-match debugging. It is distinct from
// the in-memory event ledger that reporting consumes.
type Action struct {
	Version   uint8      `json:"version"`
	Type      ActionType `json:"type"`
	Timestamp int64      `json:"timestamp"` // unix nano
	Sequence  uint64     `json:"sequence"`
	Half      int        `json:"half"`
	Elapsed   int        `json:"elapsed"`
	EntityID  string     `json:"entityId,omitempty"`
	Detail    []byte     `json:"detail,omitempty"` // JSON-encoded payload
}

// ActionLog is a bounded, rate-limited append-only action trail with an
// async batched writer. Overflow drops the oldest entries instead of
// blocking the engine.
type ActionLog struct {
	buffer    [actionBufferSize]Action
	writeHead uint64 // atomic, producer position
	readHead  uint64 // atomic, consumer position

	limiter *rate.Limiter

	writerWg sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	file   *os.File
	fileMu sync.Mutex

	droppedCount uint64 // atomic
	totalCount   uint64 // atomic
}

// NewActionLog creates an idle action log. Start begins writing.
func NewActionLog() *ActionLog {
	return &ActionLog{
		limiter:  rate.NewLimiter(maxActionsPerSec, maxActionsPerSec/10),
		stopChan: make(chan struct{}),
	}
}

// Start opens the output file and launches the writer goroutine.
// An empty path keeps the log in memory only.
func (al *ActionLog) Start(path string) error {
	if al.running.Load() {
		return nil
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		al.file = f
	}
	al.running.Store(true)
	al.writerWg.Add(1)
	go al.writerLoop()
	return nil
}

// Stop flushes pending actions and closes the file.
func (al *ActionLog) Stop() {
	al.stopOnce.Do(func() {
		if !al.running.Load() {
			return
		}
		al.running.Store(false)
		close(al.stopChan)
		al.writerWg.Wait()

		al.fileMu.Lock()
		if al.file != nil {
			al.file.Close()
		}
		al.fileMu.Unlock()
	})
}

// Record appends an action, encoding detail as JSON. Returns false when
// rate limited or not running.
func (al *ActionLog) Record(a Action, detail any) bool {
	if !al.running.Load() {
		return false
	}
	if !al.limiter.Allow() {
		atomic.AddUint64(&al.droppedCount, 1)
		return false
	}

	a.Version = actionVersion
	a.Timestamp = time.Now().UnixNano()
	if detail != nil {
		if data, err := json.Marshal(detail); err == nil {
			a.Detail = data
		}
	}

	head := atomic.AddUint64(&al.writeHead, 1)
	tail := atomic.LoadUint64(&al.readHead)
	if head-tail >= actionBufferSize {
		// Rolling window: drop the oldest rather than block.
		atomic.AddUint64(&al.readHead, 1)
		atomic.AddUint64(&al.droppedCount, 1)
	}

	a.Sequence = head
	al.buffer[head%actionBufferSize] = a
	atomic.AddUint64(&al.totalCount, 1)
	return true
}

func (al *ActionLog) writerLoop() {
	defer al.writerWg.Done()

	ticker := time.NewTicker(batchFlushInterval)
	defer ticker.Stop()

	batch := make([]Action, 0, batchFlushSize)
	for {
		select {
		case <-al.stopChan:
			for {
				batch = al.collectBatch(batch[:0])
				if len(batch) == 0 {
					return
				}
				al.flushBatch(batch)
			}
		case <-ticker.C:
			batch = al.collectBatch(batch[:0])
			if len(batch) > 0 {
				al.flushBatch(batch)
			}
		}
	}
}

func (al *ActionLog) collectBatch(batch []Action) []Action {
	head := atomic.LoadUint64(&al.writeHead)
	tail := atomic.LoadUint64(&al.readHead)
	for i := tail; i < head && len(batch) < batchFlushSize; i++ {
		batch = append(batch, al.buffer[i%actionBufferSize])
	}
	if len(batch) > 0 {
		atomic.AddUint64(&al.readHead, uint64(len(batch)))
	}
	return batch
}

func (al *ActionLog) flushBatch(batch []Action) {
	al.fileMu.Lock()
	defer al.fileMu.Unlock()
	if al.file == nil {
		return
	}
	for _, a := range batch {
		data, err := json.Marshal(a)
		if err != nil {
			continue
		}
		if _, err := al.file.Write(append(data, '\n')); err != nil {
			log.Printf("⚠️ Action log write failed: %v", err)
			return
		}
	}
}

// Stats returns counters for monitoring.
func (al *ActionLog) Stats() map[string]uint64 {
	head := atomic.LoadUint64(&al.writeHead)
	tail := atomic.LoadUint64(&al.readHead)
	return map[string]uint64{
		"total":   atomic.LoadUint64(&al.totalCount),
		"dropped": atomic.LoadUint64(&al.droppedCount),
		"pending": head - tail,
	}
}
