// Package reminder implements the reminder scheduling core: a
// mutex-guarded set of pending reminders derived from tasks, a
// background polling loop, and exactly-once notification dispatch.
package reminder

import (
	"log"
	"sort"
	"sync"
	"time"
)

// TaskRef is the read-only slice of a task the engine consumes. The
// engine references tasks, it never owns them.
type TaskRef struct {
	ID        string
	Title     string
	Completed bool
	RemindAt  *time.Time
}

// Reminder is a scheduling entry derived from a task. TaskTitle is a
// snapshot taken when the reminder was added and may go stale if the
// task is later renamed.
type Reminder struct {
	TaskID    string
	TaskTitle string
	RemindAt  time.Time
	Notified  bool
}

// Notifier receives a reminder when its time arrives. A panic inside
// ReminderTriggered is recovered at the dispatch site and never
// reaches the polling loop.
type Notifier interface {
	ReminderTriggered(r Reminder)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(r Reminder)

func (f NotifierFunc) ReminderTriggered(r Reminder) { f(r) }

// DefaultInterval is the poll interval used when none is configured.
// One second keeps trigger latency within a single tick for the
// coarse policy and is required for the precise policy to be reliable.
const DefaultInterval = time.Second

// Engine owns the live reminder set and the background polling loop.
// At most one reminder exists per task id; adding again replaces.
type Engine struct {
	mu        sync.Mutex
	reminders map[string]*Reminder
	notifier  Notifier
	interval  time.Duration
	precise   bool
	running   bool
	stop      chan struct{}
	done      chan struct{}
}

// NewEngine creates a stopped engine. interval <= 0 selects
// DefaultInterval. precise selects the same-minute trigger policy;
// the default policy fires as soon as now >= RemindAt.
func NewEngine(interval time.Duration, precise bool) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Engine{
		reminders: make(map[string]*Reminder),
		interval:  interval,
		precise:   precise,
	}
}

// SetNotifier replaces the notifier invoked on trigger. Last write
// wins. A nil notifier reverts to log-only triggers.
func (e *Engine) SetNotifier(n Notifier) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifier = n
}

// AddReminder inserts or replaces the reminder for t. Tasks without a
// reminder time, or whose time is not strictly in the future, are
// silently ignored: a past-due time never fires immediately.
func (e *Engine) AddReminder(t TaskRef) {
	now := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.add(now, t)
}

// add inserts t's reminder if eligible. Caller holds e.mu.
func (e *Engine) add(now time.Time, t TaskRef) {
	if t.RemindAt == nil || !t.RemindAt.After(now) {
		return
	}
	e.reminders[t.ID] = &Reminder{
		TaskID:    t.ID,
		TaskTitle: t.Title,
		RemindAt:  *t.RemindAt,
	}
	log.Printf("[engine] reminder set: %s at %s", t.Title, t.RemindAt.Format("2006-01-02 15:04"))
}

// RemoveReminder drops the reminder for taskID if present.
func (e *Engine) RemoveReminder(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.reminders, taskID)
}

// UpdateReminders rebuilds the whole reminder set from tasks: the set
// is cleared, then every incomplete task with a reminder time is
// re-added. This is the bulk path used after load and reload.
func (e *Engine) UpdateReminders(tasks []TaskRef) {
	now := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reminders = make(map[string]*Reminder)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		e.add(now, t)
	}
}

// StartMonitoring launches the background polling loop. Calling it
// while already running is a no-op; it never blocks the caller.
func (e *Engine) StartMonitoring() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	stop, done := e.stop, e.done
	e.mu.Unlock()

	go e.monitor(stop, done)
	log.Printf("[engine] monitoring started (interval %s)", e.interval)
}

// StopMonitoring signals the loop to exit and waits up to one second
// for it to observe the signal, so a subsequent StartMonitoring cannot
// race a lingering iteration. Idempotent.
func (e *Engine) StopMonitoring() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stop)
	done := e.done
	e.mu.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		log.Printf("[engine] monitor loop did not exit within 1s")
	}
	log.Printf("[engine] monitoring stopped")
}

func (e *Engine) monitor(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.tick(time.Now())
		}
	}
}

// tick processes one polling iteration: fire due reminders, then purge
// entries that are both notified and past. Any panic is contained so
// the loop survives to its next iteration.
func (e *Engine) tick(now time.Time) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[engine] tick recovered: %v", p)
		}
	}()

	e.mu.Lock()
	var due []Reminder
	for _, r := range e.reminders {
		if !r.Notified && e.due(now, r.RemindAt) {
			r.Notified = true
			due = append(due, *r)
		}
	}
	for id, r := range e.reminders {
		if r.Notified && !r.RemindAt.After(now) {
			delete(e.reminders, id)
		}
	}
	notifier := e.notifier
	e.mu.Unlock()

	// Dispatch outside the lock so a notifier may call back into the
	// engine without deadlocking.
	sort.Slice(due, func(i, j int) bool { return due[i].RemindAt.Before(due[j].RemindAt) })
	for _, r := range due {
		dispatch(notifier, r)
	}
}

// due reports whether a reminder scheduled for at should fire at now.
// Coarse policy: fire once now has reached at; never early, at most
// one poll interval late. Precise policy: fire only within the exact
// scheduled minute, once the scheduled second has been reached.
func (e *Engine) due(now, at time.Time) bool {
	if !e.precise {
		return !now.Before(at)
	}
	return now.Year() == at.Year() &&
		now.Month() == at.Month() &&
		now.Day() == at.Day() &&
		now.Hour() == at.Hour() &&
		now.Minute() == at.Minute() &&
		now.Second() >= at.Second()
}

func dispatch(n Notifier, r Reminder) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[engine] notifier panicked: %v", p)
		}
	}()

	log.Printf("[engine] reminder triggered: %s", r.TaskTitle)
	if n == nil {
		return
	}
	n.ReminderTriggered(r)
}

// UpcomingReminders returns the non-notified reminders due within
// [now, now+horizon], soonest first.
func (e *Engine) UpcomingReminders(horizon time.Duration) []Reminder {
	now := time.Now()
	cutoff := now.Add(horizon)

	e.mu.Lock()
	var upcoming []Reminder
	for _, r := range e.reminders {
		if !r.Notified && !r.RemindAt.Before(now) && !r.RemindAt.After(cutoff) {
			upcoming = append(upcoming, *r)
		}
	}
	e.mu.Unlock()

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].RemindAt.Before(upcoming[j].RemindAt)
	})
	return upcoming
}

// Status is a point-in-time summary of the engine.
type Status struct {
	Running  bool
	Interval time.Duration
	Total    int
	Active   int
	Overdue  int
}

// Status reports reminder counts and loop state.
func (e *Engine) Status() Status {
	now := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		Running:  e.running,
		Interval: e.interval,
		Total:    len(e.reminders),
	}
	for _, r := range e.reminders {
		if r.Notified {
			continue
		}
		st.Active++
		if r.RemindAt.Before(now) {
			st.Overdue++
		}
	}
	return st
}
