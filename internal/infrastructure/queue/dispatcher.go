package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/reviewhub/review-platform/internal/api/metrics"
	"github.com/reviewhub/review-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// MailDispatcher delivers queued mail through a fixed set of workers,
// sharded by recipient so messages to one address keep their order.
// Delivery is best-effort: failures are logged and counted, never retried.
type MailDispatcher struct {
	workers []chan ports.MailJob
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers: make([]chan ports.MailJob, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *MailDispatcher) Enqueue(job ports.MailJob) {
	idx := d.shardIndex(job.To)
	d.workers[idx] <- job
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MailJob) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.Send(ctx, job.To, job.Subject, job.Body); err != nil {
				metrics.MailDispatchTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("to", job.To).
					Int("worker_id", id).
					Msg("mail delivery failed")
			} else {
				metrics.MailDispatchTotal.WithLabelValues("sent").Inc()
			}
			metrics.MailQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}
