package orderrequest

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertRequestQuery = `
		INSERT INTO order_requests (artwork_id, name, email, phone, message, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`
	listRequestsQuery = `
		SELECT id, artwork_id, name, email, phone, message, status, created_at
		FROM order_requests
		ORDER BY id DESC
	`
	getRequestQuery = `
		SELECT id, artwork_id, name, email, phone, message, status, created_at
		FROM order_requests
		WHERE id = $1
	`
	deleteRequestQuery = `DELETE FROM order_requests WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(req Request) (Request, error) {
	err := r.db.QueryRow(
		insertRequestQuery,
		req.ArtworkID, req.Name, req.Email, req.Phone, req.Message, req.Status, req.CreatedAt,
	).Scan(&req.ID)
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

func (r *PostgresRepository) List() ([]Request, error) {
	rows, err := r.db.Query(listRequestsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Request, 0)
	for rows.Next() {
		var req Request
		var message, createdAt sql.NullString
		if err := rows.Scan(&req.ID, &req.ArtworkID, &req.Name, &req.Email, &req.Phone, &message, &req.Status, &createdAt); err != nil {
			return nil, err
		}
		req.Message = message.String
		req.CreatedAt = createdAt.String
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Request, error) {
	var req Request
	var message, createdAt sql.NullString
	err := r.db.QueryRow(getRequestQuery, id).Scan(&req.ID, &req.ArtworkID, &req.Name, &req.Email, &req.Phone, &message, &req.Status, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	req.Message = message.String
	req.CreatedAt = createdAt.String
	return req, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteRequestQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
