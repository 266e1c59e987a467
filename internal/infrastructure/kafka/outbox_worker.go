package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/jitter"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	outboxChannel   = "order_outbox"
	claimBatchSize  = 10
	notifyWaitLimit = 30 * time.Second
)

// OutboxWorker переносит события заказов из таблицы outbox_events в Kafka.
// Хвост необработанных событий дочитывается при старте, дальше воркер
// просыпается по NOTIFY order_outbox.
type OutboxWorker struct {
	repo     usecase.OutboxRepository
	producer usecase.MessageProducer
	logger   logger.Logger
	dsn      string

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dsn string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:     repo,
		producer: producer,
		logger:   logger,
		dsn:      dsn,
		stop:     make(chan struct{}),
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.logger.Infof("draining pending outbox events on startup")
		w.drain(ctx)
		w.listen(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

// listen держит выделенное соединение с LISTEN и дренирует outbox на
// каждое уведомление. Потерянное соединение восстанавливается
// с экспоненциальной паузой.
func (w *OutboxWorker) listen(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		var err error
		conn, err = pgx.Connect(ctx, w.dsn)
		if err != nil {
			return e.Wrap("outbox listener connect", err)
		}
		if _, err = conn.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
			conn.Close(ctx)
			return e.Wrap("outbox listener subscribe", err)
		}
		w.logger.Infof("subscribed to %q channel", outboxChannel)
		return nil
	}

	if err := connect(); err != nil {
		w.logger.Errorf(err, "outbox listener is down")
		return
	}
	defer conn.Close(ctx)

	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, notifyWaitLimit)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Warnf("outbox listener connection lost: %v", err)
			conn.Close(ctx)

			time.Sleep(jitter.ExponentialBackoff(2*time.Second, 30*time.Second, attempt, jitter.DefaultJitter))
			if err := connect(); err != nil {
				w.logger.Warnf("outbox listener reconnect failed: %v", err)
				attempt++
			} else {
				attempt = 0
			}
			continue
		}

		if notif != nil && notif.Channel == outboxChannel {
			w.logger.Debugf("outbox notification received")
			w.drain(ctx)
		}
	}
}

// drain выгружает пачки, пока outbox не опустеет или пачка не упадёт.
func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		events, err := w.repo.GetAndMarkAsProcessing(ctx, claimBatchSize)
		if err != nil {
			w.logger.Warnf("outbox batch claim failed: %v", err)
			return
		}
		if len(events) == 0 {
			return
		}

		for _, event := range events {
			if err := w.publish(ctx, event); err != nil {
				w.logger.Warnf("outbox event %s publish failed: %v", event.EventID, err)
				continue
			}
			if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
				w.logger.Warnf("outbox event %s mark processed failed: %v", event.EventID, err)
			}
		}
	}
}

func (w *OutboxWorker) publish(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.OrderID, event.Payload))
	if err != nil {
		if isRetryableError(err) {
			return e.Wrap("temporary kafka failure, event stays claimed", err)
		}
		return e.Wrap("permanent kafka failure", err)
	}
	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
