package notification

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Worker drains the outbox on a timer. It is the only component that talks
// to the mail and WhatsApp providers.
type Worker struct {
	repo     Repository
	mailer   Mailer
	whatsapp WhatsAppSender
	interval time.Duration
	batch    int
}

func NewWorker(repo Repository, mailer Mailer, whatsapp WhatsAppSender, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Worker{repo: repo, mailer: mailer, whatsapp: whatsapp, interval: interval, batch: 10}
}

// Run blocks until ctx is cancelled. Callers start it in a goroutine.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain claims a batch of pending rows and attempts delivery of each.
func (w *Worker) Drain(ctx context.Context) {
	pending, err := w.repo.ClaimPending(w.batch)
	if err != nil {
		log.Printf("notification: claim failed: %v", err)
		return
	}

	for _, n := range pending {
		if err := w.deliver(ctx, &n); err != nil {
			n.Attempts++
			log.Printf("notification %d: delivery failed (attempt %d): %v", n.ID, n.Attempts, err)
			if err2 := w.repo.MarkRetry(n, err.Error()); err2 != nil {
				log.Printf("notification %d: mark retry failed: %v", n.ID, err2)
			}
			continue
		}
		if err := w.repo.MarkSent(n.ID); err != nil {
			log.Printf("notification %d: mark sent failed: %v", n.ID, err)
		}
	}
}

// deliver attempts each remaining channel, flipping the row's per-channel
// flags as legs land so a retry never re-sends a delivered one.
func (w *Worker) deliver(ctx context.Context, n *Notification) error {
	if n.ToEmail != "" && !n.EmailSent {
		if w.mailer == nil {
			return fmt.Errorf("no mailer configured")
		}
		if err := w.mailer.Send(ctx, n.ToEmail, n.Subject, n.Text, n.HTML); err != nil {
			return err
		}
		n.EmailSent = true
	}
	if n.ToPhone != "" && n.WhatsAppBody != "" && !n.WhatsAppSent {
		if w.whatsapp == nil {
			return fmt.Errorf("no whatsapp sender configured")
		}
		if err := w.whatsapp.Send(ctx, n.ToPhone, n.WhatsAppBody); err != nil {
			return err
		}
		n.WhatsAppSent = true
	}
	return nil
}
