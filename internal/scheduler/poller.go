// Package scheduler contains the two evaluators that turn stored tasks
// into dispatched reminders: the Poller, a short-period loop with a
// bounded catch-up window, and the Sweep, a stateless run the hosted
// cron triggers once a minute. Both go through the same dedup ledger,
// so they can overlap safely.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/ledger"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/notify"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/schedule"
)

const (
	DefaultPollInterval = 30 * time.Second

	// DefaultCatchUpWindow bounds how stale a trigger may be and still
	// fire, so a process resumed hours later does not replay the whole
	// day's reminders in one burst.
	DefaultCatchUpWindow = 2 * time.Minute
)

// TaskSource returns the current reminder-bearing entities.
type TaskSource interface {
	GetActive(ctx context.Context) ([]*models.Task, error)
}

// ReminderDispatcher delivers one due reminder at most once.
type ReminderDispatcher interface {
	Dispatch(ctx context.Context, r models.Reminder) (notify.Status, error)
}

// Poller re-evaluates all active tasks against the wall clock on a
// fixed period. It owns its timer: Start and Stop are the whole
// lifecycle, and Stop waits until the loop has fully wound down so no
// tick can run against torn-down state.
type Poller struct {
	tasks      TaskSource
	ledger     *ledger.Ledger
	dispatcher ReminderDispatcher
	interval   time.Duration
	window     time.Duration
	now        func() time.Time
	notifyCh   chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(tasks TaskSource, lg *ledger.Ledger, dispatcher ReminderDispatcher, interval, window time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if window <= 0 {
		window = DefaultCatchUpWindow
	}
	return &Poller{
		tasks:      tasks,
		ledger:     lg,
		dispatcher: dispatcher,
		interval:   interval,
		window:     window,
		now:        time.Now,
		notifyCh:   make(chan struct{}, 1),
	}
}

// Notify triggers an immediate check. Non-blocking if a check is
// already pending.
func (p *Poller) Notify() {
	select {
	case p.notifyCh <- struct{}{}:
	default:
	}
}

func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop cancels the loop and blocks until it has exited. Safe to call
// when not started, and the poller can be started again afterwards.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	log.Println("Poller started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		case <-p.notifyCh:
			p.tick(ctx)
		}
	}
}

// tick evaluates every active task once. A task is due when now has
// passed its trigger instant but not left the catch-up window; anything
// older is stale and skipped.
func (p *Poller) tick(ctx context.Context) {
	now := p.now()
	p.ledger.Prune(ctx)

	tasks, err := p.tasks.GetActive(ctx)
	if err != nil {
		log.Printf("[poller] failed to load tasks: %v", err)
		return
	}

	for _, task := range tasks {
		trigger, ok := schedule.ResolveTrigger(task, now)
		if !ok {
			continue
		}
		if now.Before(trigger) || !now.Before(trigger.Add(p.window)) {
			continue
		}
		if _, err := p.dispatcher.Dispatch(ctx, models.NewTaskReminder(task, trigger)); err != nil {
			log.Printf("[poller] dispatch failed for task %s: %v", task.TaskID, err)
		}
	}
}
