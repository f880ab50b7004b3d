package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeep2351/linkedin-clone/internal/api/metrics"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 15 * time.Second
)

// Claimer guards against sending the same welcome message twice.
type Claimer interface {
	Claim(ctx context.Context, userID string) (bool, error)
}

// Dispatcher delivers welcome messages on a fixed set of background workers.
// Jobs are sharded by user id. Delivery is attempted once; failures are
// logged and never retried.
type Dispatcher struct {
	workers []chan ports.WelcomeMessage
	mailer  ports.Mailer
	claimer Claimer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used. claimer may be nil.
func NewDispatcher(numWorkers int, mailer ports.Mailer, claimer Claimer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.WelcomeMessage, numWorkers),
		mailer:  mailer,
		claimer: claimer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.WelcomeMessage, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// NotifyWelcome enqueues msg without blocking. When the worker's buffer is
// full the message is dropped.
func (d *Dispatcher) NotifyWelcome(msg ports.WelcomeMessage) {
	idx := d.shardIndex(msg.UserID)
	select {
	case d.workers[idx] <- msg:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.WelcomeNotificationsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("user_id", msg.UserID).Int("worker_id", idx).Msg("welcome queue full, message dropped")
	}
}

func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.WelcomeMessage) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			d.deliver(ctx, id, msg)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, msg ports.WelcomeMessage) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if d.claimer != nil {
		won, err := d.claimer.Claim(ctx, msg.UserID)
		if err != nil {
			d.log.Warn().Err(err).Str("user_id", msg.UserID).Msg("welcome marker failed, sending anyway")
		} else if !won {
			metrics.WelcomeNotificationsTotal.WithLabelValues("duplicate").Inc()
			d.log.Debug().Str("user_id", msg.UserID).Msg("welcome already sent, skipped")
			return
		}
	}

	if err := d.mailer.SendWelcome(ctx, msg); err != nil {
		metrics.WelcomeNotificationsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("user_id", msg.UserID).
			Int("worker_id", workerID).
			Msg("error sending welcome email")
		return
	}

	metrics.WelcomeNotificationsTotal.WithLabelValues("sent").Inc()
	d.log.Info().Str("user_id", msg.UserID).Msg("welcome email sent")
}
