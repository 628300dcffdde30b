package media

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertMediaQuery = `
		INSERT INTO media_gallery (title, stored_name, url, mime_type, size_bytes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
	listMediaQuery = `
		SELECT id, title, stored_name, url, mime_type, size_bytes, created_at
		FROM media_gallery
		ORDER BY id DESC
	`
	getMediaQuery = `
		SELECT id, title, stored_name, url, mime_type, size_bytes, created_at
		FROM media_gallery
		WHERE id = $1
	`
	deleteMediaQuery = `DELETE FROM media_gallery WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanMediaItem(row interface{ Scan(...any) error }) (Item, error) {
	var it Item
	var createdAt sql.NullString
	if err := row.Scan(&it.ID, &it.Title, &it.StoredName, &it.URL, &it.MimeType, &it.SizeBytes, &createdAt); err != nil {
		return Item{}, err
	}
	it.CreatedAt = createdAt.String
	return it, nil
}

func (r *PostgresRepository) List() ([]Item, error) {
	rows, err := r.db.Query(listMediaQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		it, err := scanMediaItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Item, error) {
	it, err := scanMediaItem(r.db.QueryRow(getMediaQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (r *PostgresRepository) Create(item Item) (Item, error) {
	err := r.db.QueryRow(
		insertMediaQuery,
		item.Title, item.StoredName, item.URL, item.MimeType, item.SizeBytes, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteMediaQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
