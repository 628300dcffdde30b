package notification

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	enqueueQuery = `
		INSERT INTO notification_outbox (to_email, to_phone, subject, text_body, html_body, whatsapp_body, status, attempts, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,'pending',0,$7)
		RETURNING id
	`
	// Locking and flipping status in one statement keeps concurrent
	// workers off the same rows without holding a transaction open
	// across delivery.
	claimPendingQuery = `
		WITH claimed AS (
			SELECT id
			FROM notification_outbox
			WHERE status = 'pending'
			ORDER BY id
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE notification_outbox n
		SET status = 'sending'
		FROM claimed
		WHERE n.id = claimed.id
		RETURNING n.id, n.to_email, n.to_phone, n.subject, n.text_body, n.html_body, n.whatsapp_body, n.email_sent, n.whatsapp_sent, n.status, n.attempts, n.created_at
	`
	markSentQuery  = `UPDATE notification_outbox SET status = 'sent' WHERE id = $1`
	markRetryQuery = `
		UPDATE notification_outbox
		SET attempts = $2, last_error = $3, email_sent = $4, whatsapp_sent = $5,
			status = CASE WHEN $2 >= $6 THEN 'failed' ELSE 'pending' END
		WHERE id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Enqueue(n Notification) (Notification, error) {
	err := r.db.QueryRow(
		enqueueQuery,
		n.ToEmail, n.ToPhone, n.Subject, n.Text, n.HTML, n.WhatsAppBody, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return Notification{}, err
	}
	n.Status = StatusPending
	return n, nil
}

func (r *PostgresRepository) ClaimPending(limit int) ([]Notification, error) {
	rows, err := r.db.Query(claimPendingQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Notification, 0, limit)
	for rows.Next() {
		var n Notification
		var createdAt sql.NullString
		if err := rows.Scan(&n.ID, &n.ToEmail, &n.ToPhone, &n.Subject, &n.Text, &n.HTML, &n.WhatsAppBody, &n.EmailSent, &n.WhatsAppSent, &n.Status, &n.Attempts, &createdAt); err != nil {
			return nil, err
		}
		n.CreatedAt = createdAt.String
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkSent(id int) error {
	_, err := r.db.Exec(markSentQuery, id)
	return err
}

func (r *PostgresRepository) MarkRetry(n Notification, lastError string) error {
	_, err := r.db.Exec(markRetryQuery, n.ID, n.Attempts, lastError, n.EmailSent, n.WhatsAppSent, MaxAttempts)
	return err
}
