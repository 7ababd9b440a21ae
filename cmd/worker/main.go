package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/config"
	"github.com/suPer8Hu/clinic-inbox/internal/db"
	"github.com/suPer8Hu/clinic-inbox/internal/email"
	"github.com/suPer8Hu/clinic-inbox/internal/events"
	"github.com/suPer8Hu/clinic-inbox/internal/reminder"
	"github.com/suPer8Hu/clinic-inbox/internal/rollup"
	"github.com/suPer8Hu/clinic-inbox/internal/store/rabbitmq"
)

const (
	maxRetries = 3
	// handleTimeout bounds one rollup plus its retry publish.
	handleTimeout = 30 * time.Second
)

func main() {
	cfg := config.Load()
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close(gdb)

	repo := clinic.NewRepo(gdb)
	roll := rollup.New(repo, loc)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	topo := rabbitmq.TopologyFor(cfg.RabbitQueue)
	if err := topo.Declare(ch); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	// prefetch caps unacked deliveries at the pool size
	concurrency := cfg.WorkerConcurrency
	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(topo.Main, "rollup", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mailer := email.Sender{Cfg: email.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}}
	if mailer.Enabled() {
		rem := reminder.New(repo, mailer, cfg.ReminderWindow, loc)
		go rem.Run(ctx, cfg.ReminderInterval)
	} else {
		log.Printf("[Reminder] smtp not configured, reminders disabled")
	}

	log.Printf("worker started, queue=%s concurrency=%d", cfg.RabbitQueue, concurrency)

	// worker pool
	jobs := make(chan amqp.Delivery, concurrency*2)
	retry := &retrier{ch: ch, queue: topo.Retry}

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var e events.Event
				if err := json.Unmarshal(d.Body, &e); err != nil || e.ConversationID == 0 {
					log.Printf("worker=%d bad message: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				start := time.Now()
				hctx, cancel := handleContext(ctx)
				err := roll.HandleEvent(hctx, e)
				if err != nil {
					log.Printf("worker=%d event %s %s failed cost=%s err=%v", workerID, e.Type, e.ID, time.Since(start), err)
					if ctx.Err() != nil {
						// shutting down; hand it back without spending a retry
						_ = d.Nack(false, true)
					} else {
						retry.handle(hctx, d)
					}
					cancel()
					continue
				}
				cancel()

				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed event=%s err=%v", workerID, e.ID, err)
				}
			}
		}(i)
	}

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			log.Printf("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				close(jobs)
				wg.Wait()
				return
			}
			jobs <- d
		}
	}
}

// handleContext outlives the shutdown signal so buffered deliveries drain.
func handleContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), handleTimeout)
}

// retrier republishes a failed delivery to the retry queue with a growing TTL;
// past maxRetries it is rejected into the DLQ.
type retrier struct {
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

func (r *retrier) handle(ctx context.Context, d amqp.Delivery) {
	attempt := retryCount(d.Headers) + 1
	if attempt > maxRetries {
		_ = d.Nack(false, false)
		return
	}

	pub := amqp.Publishing{
		ContentType:  d.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    d.MessageId,
		Type:         d.Type,
		Body:         d.Body,
		Headers:      amqp.Table{"x-retry": int32(attempt)},
		Expiration:   backoff(attempt),
	}

	r.mu.Lock()
	err := r.ch.PublishWithContext(ctx, "", r.queue, false, false, pub)
	r.mu.Unlock()
	if err != nil {
		log.Printf("retry publish failed event=%s err=%v", d.MessageId, err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func retryCount(h amqp.Table) int {
	switch v := h["x-retry"].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// backoff is the per-message TTL in milliseconds: 1s, 4s, 16s.
func backoff(attempt int) string {
	ms := 1000
	for i := 1; i < attempt; i++ {
		ms *= 4
	}
	return strconv.Itoa(ms)
}
