package worker

import (
	"context"
	"sync"

	"github.com/carson-networks/payment-webhook-service/internal/queue"
)

// Pool runs numWorkers consumers draining the task queue. Each consumer
// handles one delivery at a time.
type Pool struct {
	worker     *Worker
	queue      queue.Queue
	numWorkers int
	wg         sync.WaitGroup
	cancel     context.CancelFunc
	stopOnce   sync.Once
}

func NewPool(w *Worker, q queue.Queue, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Pool{
		worker:     w,
		queue:      q,
		numWorkers: numWorkers,
	}
}

func (p *Pool) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx)
		}()
	}
}

// run exits when the queue's delivery channel is closed.
func (p *Pool) run(ctx context.Context) {
	for d := range p.queue.Deliveries() {
		p.worker.Handle(ctx, d)
	}
}

// Stop closes the queue and waits for in-flight deliveries. In-flight
// settlements are cancelled; their items redeliver after the ack deadline.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		_ = p.queue.Close()
		if p.cancel != nil {
			p.cancel()
		}
		p.wg.Wait()
	})
}
