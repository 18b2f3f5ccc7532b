package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"eklerchik/internal/utils"
)

var (
	ErrWorkerStopped = errors.New("mail worker is not running")
	ErrQueueFull     = errors.New("mail queue is full")
)

type mailJob struct {
	recipient string
	subject   string
	message   string
}

// MailWorker sends mail from a fixed pool of goroutines so that SMTP latency
// never reaches the request path. It satisfies utils.Mailer.
type MailWorker struct {
	mailer      utils.Mailer
	jobQueue    chan mailJob
	workerCount int
	stopChan    chan struct{}
	wg          sync.WaitGroup
	running     bool
	mu          sync.RWMutex

	enqueueTimeout time.Duration
	sent           int64
	failed         int64
	statsMu        sync.Mutex
}

var _ utils.Mailer = (*MailWorker)(nil)

func NewMailWorker(mailer utils.Mailer, workerCount, queueSize int) *MailWorker {
	if workerCount <= 0 {
		workerCount = 2
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &MailWorker{
		mailer:         mailer,
		jobQueue:       make(chan mailJob, queueSize),
		workerCount:    workerCount,
		stopChan:       make(chan struct{}),
		enqueueTimeout: time.Second,
	}
}

func (w *MailWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true

	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go w.worker()
	}
}

// Stop refuses new mail, delivers what is already queued and waits for the
// workers to exit.
func (w *MailWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopChan)
	w.mu.Unlock()

	w.wg.Wait()
}

// SendEmail queues the message and returns without waiting for delivery.
func (w *MailWorker) SendEmail(recipient, subject, message string) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.running {
		return ErrWorkerStopped
	}

	select {
	case w.jobQueue <- mailJob{recipient: recipient, subject: subject, message: message}:
		return nil
	case <-time.After(w.enqueueTimeout):
		return ErrQueueFull
	}
}

func (w *MailWorker) worker() {
	defer w.wg.Done()

	for {
		select {
		case job := <-w.jobQueue:
			w.process(job)
		case <-w.stopChan:
			for {
				select {
				case job := <-w.jobQueue:
					w.process(job)
				default:
					return
				}
			}
		}
	}
}

func (w *MailWorker) process(job mailJob) {
	err := w.mailer.SendEmail(job.recipient, job.subject, job.message)

	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	if err != nil {
		w.failed++
		log.Printf("Failed to send %q to %s: %v", job.subject, job.recipient, err)
		return
	}
	w.sent++
}

// GetStatus reports queue depth and delivery counters for the admin status page.
func (w *MailWorker) GetStatus() (map[string]interface{}, error) {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	return map[string]interface{}{
		"running": running,
		"workers": w.workerCount,
		"queued":  len(w.jobQueue),
		"sent":    w.sent,
		"failed":  w.failed,
	}, nil
}
