package artwork

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	artworkColumns = `id, title, description, price, medium, category, style, dimensions, images, main_image_index, stock_count, featured, tags, date_created, created_at, updated_at`

	listArtworksQuery = `
		SELECT ` + artworkColumns + `
		FROM artworks
		WHERE ($1 = '' OR medium = $1)
		  AND ($2 = '' OR category = $2)
		  AND ($3::boolean IS NULL OR featured = $3)
		ORDER BY id DESC
	`
	getArtworkQuery = `
		SELECT ` + artworkColumns + `
		FROM artworks
		WHERE id = $1
	`
	listArtworksByIDsQuery = `
		SELECT ` + artworkColumns + `
		FROM artworks
		WHERE id = ANY($1::int[])
		ORDER BY array_position($1::int[], id)
	`
	insertArtworkQuery = `
		INSERT INTO artworks (title, description, price, medium, category, style, dimensions, images, main_image_index, stock_count, featured, tags, date_created, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`
	updateArtworkQuery = `
		UPDATE artworks
		SET title = $1, description = $2, price = $3, medium = $4, category = $5, style = $6,
			dimensions = $7, images = $8, main_image_index = $9, stock_count = $10,
			featured = $11, tags = $12, date_created = $13, updated_at = $14
		WHERE id = $15
	`
	deleteArtworkQuery = `DELETE FROM artworks WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(filter ListFilter) ([]Artwork, error) {
	var featured sql.NullBool
	if filter.Featured != nil {
		featured = sql.NullBool{Bool: *filter.Featured, Valid: true}
	}
	rows, err := r.db.Query(listArtworksQuery, filter.Medium, filter.Category, featured)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Artwork, 0)
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Artwork, error) {
	a, err := scanArtwork(r.db.QueryRow(getArtworkQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Artwork{}, ErrNotFound
		}
		return Artwork{}, err
	}
	return a, nil
}

// ListByIDs returns artworks matching the given ids, ordered like the ids
// slice. Vanished ids are simply absent from the result.
func (r *PostgresRepository) ListByIDs(ids []int) ([]Artwork, error) {
	if len(ids) == 0 {
		return []Artwork{}, nil
	}

	rows, err := r.db.Query(listArtworksByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Artwork, 0, len(ids))
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(a Artwork) (Artwork, error) {
	dims, images, tags, err := marshalArtworkFields(a)
	if err != nil {
		return Artwork{}, err
	}

	err = r.db.QueryRow(
		insertArtworkQuery,
		a.Title, a.Description, a.Price, a.Medium, a.Category, a.Style,
		dims, images, a.MainImageIndex, a.StockCount, a.Featured, tags,
		a.DateCreated, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return Artwork{}, err
	}
	a.InStock = a.StockCount > 0
	return a, nil
}

func (r *PostgresRepository) Update(id int, a Artwork) (Artwork, error) {
	dims, images, tags, err := marshalArtworkFields(a)
	if err != nil {
		return Artwork{}, err
	}

	res, err := r.db.Exec(
		updateArtworkQuery,
		a.Title, a.Description, a.Price, a.Medium, a.Category, a.Style,
		dims, images, a.MainImageIndex, a.StockCount, a.Featured, tags,
		a.DateCreated, a.UpdatedAt, id,
	)
	if err != nil {
		return Artwork{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Artwork{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteArtworkQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalArtworkFields(a Artwork) (dims, images, tags []byte, err error) {
	if dims, err = json.Marshal(a.Dimensions); err != nil {
		return nil, nil, nil, err
	}
	if a.Images == nil {
		a.Images = []string{}
	}
	if images, err = json.Marshal(a.Images); err != nil {
		return nil, nil, nil, err
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if tags, err = json.Marshal(a.Tags); err != nil {
		return nil, nil, nil, err
	}
	return dims, images, tags, nil
}

func scanArtwork(row rowScanner) (Artwork, error) {
	var a Artwork
	var dims, images, tags []byte
	var dateCreated, createdAt, updatedAt sql.NullString
	if err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Price, &a.Medium, &a.Category, &a.Style,
		&dims, &images, &a.MainImageIndex, &a.StockCount, &a.Featured, &tags,
		&dateCreated, &createdAt, &updatedAt,
	); err != nil {
		return Artwork{}, err
	}
	json.Unmarshal(dims, &a.Dimensions)
	json.Unmarshal(images, &a.Images)
	json.Unmarshal(tags, &a.Tags)
	a.DateCreated = dateCreated.String
	a.CreatedAt = createdAt.String
	a.UpdatedAt = updatedAt.String
	a.InStock = a.StockCount > 0
	return a, nil
}
