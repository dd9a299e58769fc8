package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	concpool "github.com/sourcegraph/conc/pool"
)

var ErrSyncClosed = errors.New("background sync closed")

type SyncStatus string

const (
	SyncQueued    SyncStatus = "queued"
	SyncSucceeded SyncStatus = "succeeded"
	SyncFailed    SyncStatus = "failed"
	SyncDropped   SyncStatus = "dropped"
)

// SyncTask is work pushed to the server after a local write. Nothing the
// caller waits on may run as a SyncTask.
type SyncTask struct {
	Name string
	Run  func(ctx context.Context) error
}

// SyncEvent reports the progress of a SyncTask to subscribers.
type SyncEvent struct {
	Task   string
	Status SyncStatus
	Err    error
	At     time.Time
}

// BackgroundSync runs SyncTasks on a fixed set of workers and fans task
// events out to subscribers. Submit never blocks; a full queue drops the task
// and reports SyncDropped.
type BackgroundSync struct {
	tasks   chan SyncTask
	workers *concpool.Pool
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
	nextID int
	subs   map[int]chan SyncEvent
}

func NewBackgroundSync(workers, queueSize int, taskTimeout time.Duration) *BackgroundSync {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if taskTimeout <= 0 {
		taskTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &BackgroundSync{
		tasks:   make(chan SyncTask, queueSize),
		workers: concpool.New().WithMaxGoroutines(workers),
		timeout: taskTimeout,
		ctx:     ctx,
		cancel:  cancel,
		subs:    make(map[int]chan SyncEvent),
	}
	for i := 0; i < workers; i++ {
		b.workers.Go(b.worker)
	}
	return b
}

func (b *BackgroundSync) worker() {
	for task := range b.tasks {
		ctx, cancel := context.WithTimeout(b.ctx, b.timeout)
		err := task.Run(ctx)
		cancel()
		if err != nil {
			log.Printf("[sync][background] task failed task=%s err=%v", task.Name, err)
			b.publish(SyncEvent{Task: task.Name, Status: SyncFailed, Err: err})
			continue
		}
		b.publish(SyncEvent{Task: task.Name, Status: SyncSucceeded})
	}
}

func (b *BackgroundSync) Submit(task SyncTask) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrSyncClosed
	}
	select {
	case b.tasks <- task:
		b.publishLocked(SyncEvent{Task: task.Name, Status: SyncQueued})
		return nil
	default:
		log.Printf("[sync][background] queue full, dropping task=%s", task.Name)
		b.publishLocked(SyncEvent{Task: task.Name, Status: SyncDropped})
		return nil
	}
}

// Subscribe returns a channel of task events and a func that ends the
// subscription. Events are dropped for subscribers that fall behind.
func (b *BackgroundSync) Subscribe(buffer int) (<-chan SyncEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan SyncEvent, buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops accepting tasks, waits for queued ones and closes every
// subscription.
func (b *BackgroundSync) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.tasks)
	b.mu.Unlock()

	b.workers.Wait()
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub)
	}
}

func (b *BackgroundSync) publish(ev SyncEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.publishLocked(ev)
}

func (b *BackgroundSync) publishLocked(ev SyncEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	for _, sub := range b.subs {
		select {
		case sub <- ev:
		default:
		}
	}
}
