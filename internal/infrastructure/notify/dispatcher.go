// Package notify entrega avisos en segundo plano. Un fallo o pánico en la entrega nunca llega
// al caso de uso que originó el aviso.
package notify

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jhoicas/solarsync-api/pkg/logger"
)

const defaultJobTimeout = 10 * time.Second

// Job unidad de trabajo del despachador.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher cola acotada atendida por un número fijo de workers.
type Dispatcher struct {
	jobs       chan Job
	workers    int
	jobTimeout time.Duration
	log        *logger.Logger

	mu      sync.RWMutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// NewDispatcher crea el despachador; no procesa nada hasta Start.
func NewDispatcher(workers, queueSize int, log *logger.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		jobs:       make(chan Job, queueSize),
		workers:    workers,
		jobTimeout: defaultJobTimeout,
		log:        log.Component("notify"),
	}
}

// Start lanza los workers. Llamadas repetidas no tienen efecto.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Submit encola sin bloquear. Devuelve false si la cola está llena o el despachador detenido.
func (d *Dispatcher) Submit(job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	select {
	case d.jobs <- job:
		return true
	default:
		d.log.Warn().Str("job", job.Name).Msg("cola de notificaciones llena, aviso descartado")
		return false
	}
}

// Stop deja de aceptar trabajos y espera a que los workers vacíen la cola o a que ctx expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify: detener despachador: %w", ctx.Err())
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.run(job)
	}
}

// run ejecuta un trabajo recuperando cualquier pánico.
func (d *Dispatcher) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.jobTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("job", job.Name).
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(debug.Stack())).
				Msg("pánico en notificación")
		}
	}()
	if err := job.Run(ctx); err != nil {
		d.log.Error().Err(err).Str("job", job.Name).Msg("notificación fallida")
	}
}
