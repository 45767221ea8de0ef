package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// JetStreamConfig configures the durable task stream and its pull consumer.
type JetStreamConfig struct {
	Stream      string
	Subject     string
	Durable     string
	MaxDeliver  int // broker-side bound on deliveries per message
	AckWait     time.Duration
	DedupWindow time.Duration
}

func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		Stream:      "TRANSACTIONS",
		Subject:     "transactions.process",
		Durable:     "settlement-workers",
		MaxDeliver:  4,
		AckWait:     2 * time.Minute,
		DedupWindow: 10 * time.Minute,
	}
}

// JetStreamQueue is the NATS JetStream implementation of Queue. The stream
// uses work-queue retention; publishes are deduplicated by Nats-Msg-Id set to
// the transaction id.
type JetStreamQueue struct {
	js         nats.JetStreamContext
	sub        *nats.Subscription
	subject    string
	deliveries chan Delivery
	logger     *logrus.Logger
	done       chan struct{}
	closeOnce  sync.Once
}

func NewJetStreamQueue(nc *nats.Conn, cfg JetStreamConfig, logger *logrus.Logger) (*JetStreamQueue, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:       cfg.Stream,
		Subjects:   []string{cfg.Subject},
		Retention:  nats.WorkQueuePolicy,
		Storage:    nats.FileStorage,
		Duplicates: cfg.DedupWindow,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		return nil, err
	}

	sub, err := js.PullSubscribe(cfg.Subject, cfg.Durable,
		nats.AckExplicit(),
		nats.AckWait(cfg.AckWait),
		nats.MaxDeliver(cfg.MaxDeliver),
	)
	if err != nil {
		return nil, err
	}

	q := &JetStreamQueue{
		js:         js,
		sub:        sub,
		subject:    cfg.Subject,
		deliveries: make(chan Delivery),
		logger:     logger,
		done:       make(chan struct{}),
	}
	go q.fetchLoop()
	return q, nil
}

func (q *JetStreamQueue) Publish(ctx context.Context, transactionID string) error {
	data, err := json.Marshal(Task{TransactionID: transactionID})
	if err != nil {
		return err
	}
	_, err = q.js.Publish(q.subject, data, nats.MsgId(transactionID), nats.Context(ctx))
	return err
}

func (q *JetStreamQueue) Deliveries() <-chan Delivery {
	return q.deliveries
}

func (q *JetStreamQueue) Close() error {
	q.closeOnce.Do(func() {
		close(q.done)
	})
	return nil
}

func (q *JetStreamQueue) fetchLoop() {
	defer close(q.deliveries)

	for {
		select {
		case <-q.done:
			return
		default:
		}

		msgs, err := q.sub.Fetch(1, nats.MaxWait(2*time.Second))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			if errors.Is(err, nats.ErrConnectionClosed) || errors.Is(err, nats.ErrBadSubscription) {
				return
			}
			q.logger.WithError(err).Warn("Queue.fetch")
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range msgs {
			d, err := wrapMsg(msg)
			if err != nil {
				// A payload we cannot decode will never become processable.
				q.logger.WithError(err).Error("Queue.badPayload")
				_ = msg.Term()
				continue
			}

			select {
			case q.deliveries <- d:
			case <-q.done:
				// Not acked; redelivered after AckWait.
				return
			}
		}
	}
}

type jsDelivery struct {
	msg     *nats.Msg
	task    Task
	attempt int
}

func wrapMsg(msg *nats.Msg) (*jsDelivery, error) {
	var task Task
	if err := json.Unmarshal(msg.Data, &task); err != nil {
		return nil, err
	}
	if task.TransactionID == "" {
		return nil, errors.New("task payload missing transaction_id")
	}

	attempt := 1
	if meta, err := msg.Metadata(); err == nil {
		attempt = int(meta.NumDelivered)
	}

	return &jsDelivery{msg: msg, task: task, attempt: attempt}, nil
}

func (d *jsDelivery) TransactionID() string { return d.task.TransactionID }

func (d *jsDelivery) Attempt() int { return d.attempt }

func (d *jsDelivery) Ack() error { return d.msg.Ack() }

func (d *jsDelivery) Retry(delay time.Duration) error { return d.msg.NakWithDelay(delay) }

func (d *jsDelivery) Drop() error { return d.msg.Term() }
