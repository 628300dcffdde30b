package wishlist

import (
	"database/sql"
	"encoding/json"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listWishlistQuery = `
		SELECT a.id, a.title, a.description, a.price, a.medium, a.category, a.style,
			a.dimensions, a.images, a.main_image_index, a.stock_count, a.featured, a.tags
		FROM wishlist w
		JOIN artworks a ON a.id = w.artwork_id
		WHERE w.user_id = $1
		ORDER BY w.id
	`
	listWishlistIDsQuery = `SELECT artwork_id FROM wishlist WHERE user_id = $1 ORDER BY id`

	// duplicate adds are suppressed by the unique key, so Add is idempotent
	addWishlistQuery = `
		INSERT INTO wishlist (user_id, artwork_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, artwork_id) DO NOTHING
	`
	removeWishlistQuery = `DELETE FROM wishlist WHERE user_id = $1 AND artwork_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]artwork.Artwork, error) {
	rows, err := r.db.Query(listWishlistQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]artwork.Artwork, 0)
	for rows.Next() {
		var a artwork.Artwork
		var dims, images, tags []byte
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Price, &a.Medium, &a.Category, &a.Style,
			&dims, &images, &a.MainImageIndex, &a.StockCount, &a.Featured, &tags,
		); err != nil {
			return nil, err
		}
		json.Unmarshal(dims, &a.Dimensions)
		json.Unmarshal(images, &a.Images)
		json.Unmarshal(tags, &a.Tags)
		a.InStock = a.StockCount > 0
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListIDs(userID int) ([]int, error) {
	rows, err := r.db.Query(listWishlistIDsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) Add(userID, artworkID int) error {
	_, err := r.db.Exec(addWishlistQuery, userID, artworkID)
	return err
}

func (r *PostgresRepository) Remove(userID, artworkID int) error {
	res, err := r.db.Exec(removeWishlistQuery, userID, artworkID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
