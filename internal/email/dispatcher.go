package email

import (
	"log/slog"
	"sync"
)

type job struct {
	to, subject, body string
}

// Dispatcher runs a bounded worker pool for fire-and-forget sends. Failures
// are observable only via logging, never via the caller's result; there is no
// retry and no delivery guarantee.
type Dispatcher struct {
	sender Sender
	jobs   chan job
	wg     sync.WaitGroup
	log    *slog.Logger

	closeOnce sync.Once
}

func NewDispatcher(sender Sender, workers, queue int, log *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}
	if queue <= 0 {
		queue = 64
	}
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		sender: sender,
		jobs:   make(chan job, queue),
		log:    log,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		if err := d.sender.Send(j.to, j.subject, j.body); err != nil {
			d.log.Error("email_send_failed", "to", j.to, "subject", j.subject, "error", err)
		}
	}
}

// Enqueue never blocks the caller: when the queue is full the message is
// dropped and logged.
func (d *Dispatcher) Enqueue(to, subject, body string) {
	select {
	case d.jobs <- job{to: to, subject: subject, body: body}:
	default:
		d.log.Error("email_queue_full", "to", to, "subject", subject)
	}
}

// Close drains the queue and stops the workers.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}
