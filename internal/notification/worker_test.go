package notification

import (
	"context"
	"errors"
	"testing"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, toEmail, subject, text, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

type fakeWhatsApp struct {
	sent []string
	err  error
}

func (s *fakeWhatsApp) Send(ctx context.Context, toPhone, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, toPhone)
	return nil
}

func TestDrainDeliversAndMarksSent(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Enqueue(Notification{ToEmail: "a@example.com", Subject: "hi", Text: "body"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := repo.Enqueue(Notification{ToEmail: "b@example.com", ToPhone: "+911234", Subject: "hi", Text: "body", WhatsAppBody: "body"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	mailer := &fakeMailer{}
	whatsapp := &fakeWhatsApp{}
	w := NewWorker(repo, mailer, whatsapp, 0)

	w.Drain(context.Background())

	if len(mailer.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(mailer.sent))
	}
	if len(whatsapp.sent) != 1 || whatsapp.sent[0] != "+911234" {
		t.Fatalf("whatsapp sent = %v", whatsapp.sent)
	}
	for _, n := range repo.All() {
		if n.Status != StatusSent {
			t.Fatalf("row %d status = %s, want sent", n.ID, n.Status)
		}
	}

	// a second drain finds nothing pending
	w.Drain(context.Background())
	if len(mailer.sent) != 2 {
		t.Fatalf("re-delivered already-sent rows: %v", mailer.sent)
	}
}

func TestDrainRetriesUntilMaxAttempts(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Enqueue(Notification{ToEmail: "a@example.com", Subject: "hi", Text: "body"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	mailer := &fakeMailer{err: errors.New("provider down")}
	w := NewWorker(repo, mailer, nil, 0)

	for i := 0; i < MaxAttempts; i++ {
		w.Drain(context.Background())
	}

	rows := repo.All()
	if rows[0].Attempts != MaxAttempts {
		t.Fatalf("attempts = %d, want %d", rows[0].Attempts, MaxAttempts)
	}
	if rows[0].Status != StatusFailed {
		t.Fatalf("status = %s, want failed", rows[0].Status)
	}
	if rows[0].LastError == "" {
		t.Fatal("last error not recorded")
	}

	// parked rows are left alone afterwards
	w.Drain(context.Background())
	if got := repo.All()[0].Attempts; got != MaxAttempts {
		t.Fatalf("attempts grew past the cap: %d", got)
	}
}

func TestDrainDoesNotResendDeliveredChannel(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Enqueue(Notification{ToEmail: "a@example.com", ToPhone: "+911234", Subject: "hi", Text: "body", WhatsAppBody: "body"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	mailer := &fakeMailer{}
	whatsapp := &fakeWhatsApp{err: errors.New("provider down")}
	w := NewWorker(repo, mailer, whatsapp, 0)

	// email lands, whatsapp fails, row is requeued
	w.Drain(context.Background())
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	if got := repo.All()[0]; !got.EmailSent || got.WhatsAppSent || got.Status != StatusPending {
		t.Fatalf("row after partial delivery = %+v", got)
	}

	// the retry only attempts the whatsapp leg
	whatsapp.err = nil
	w.Drain(context.Background())
	if len(mailer.sent) != 1 {
		t.Fatalf("re-sent email on retry: %v", mailer.sent)
	}
	if len(whatsapp.sent) != 1 {
		t.Fatalf("whatsapp sent = %v, want one message", whatsapp.sent)
	}
	if got := repo.All()[0]; got.Status != StatusSent {
		t.Fatalf("status = %s, want sent", got.Status)
	}
}

func TestClaimPendingTakesRowsExclusively(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Enqueue(Notification{ToEmail: "a@example.com"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	first, err := repo.ClaimPending(10)
	if err != nil || len(first) != 1 {
		t.Fatalf("first claim = %v rows, err %v", len(first), err)
	}
	if first[0].Status != StatusSending {
		t.Fatalf("claimed status = %s, want sending", first[0].Status)
	}

	// a second claimant finds nothing until the row is requeued
	second, err := repo.ClaimPending(10)
	if err != nil || len(second) != 0 {
		t.Fatalf("second claim = %v rows, err %v", len(second), err)
	}
}

func TestDrainWithoutMailerParksEmailRows(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Enqueue(Notification{ToEmail: "a@example.com", Subject: "hi"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	w := NewWorker(repo, nil, nil, 0)
	w.Drain(context.Background())

	if got := repo.All()[0].Attempts; got != 1 {
		t.Fatalf("attempts = %d, want 1", got)
	}
}
