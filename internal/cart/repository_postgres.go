package cart

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getCartQuery = `
		SELECT c.id, c.artwork_id, c.quantity,
			a.id, a.title, a.description, a.price, a.medium, a.category, a.style,
			a.dimensions, a.images, a.main_image_index, a.stock_count, a.featured, a.tags
		FROM cart c
		JOIN artworks a ON a.id = c.artwork_id
		WHERE c.user_id = $1
		ORDER BY c.id
	`
	countCartQuery = `SELECT COALESCE(SUM(quantity), 0) FROM cart WHERE user_id = $1`

	// Additive upsert: UNIQUE(user_id, artwork_id) keeps one row per pair,
	// a conflicting insert folds its quantity into the existing row.
	addToCartQuery = `
		INSERT INTO cart (user_id, artwork_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, artwork_id)
		DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity
	`
	pruneCartQuery       = `DELETE FROM cart WHERE user_id = $1 AND artwork_id = $2 AND quantity <= 0`
	setCartQuantityQuery = `UPDATE cart SET quantity = $3 WHERE user_id = $1 AND artwork_id = $2`
	removeCartItemQuery  = `DELETE FROM cart WHERE user_id = $1 AND artwork_id = $2`
	clearCartQuery       = `DELETE FROM cart WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) ([]Item, error) {
	rows, err := r.db.Query(getCartQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		var dims, images, tags []byte
		if err := rows.Scan(
			&it.ID, &it.ArtworkID, &it.Quantity,
			&it.Artwork.ID, &it.Artwork.Title, &it.Artwork.Description, &it.Artwork.Price,
			&it.Artwork.Medium, &it.Artwork.Category, &it.Artwork.Style,
			&dims, &images, &it.Artwork.MainImageIndex, &it.Artwork.StockCount,
			&it.Artwork.Featured, &tags,
		); err != nil {
			return nil, err
		}
		json.Unmarshal(dims, &it.Artwork.Dimensions)
		json.Unmarshal(images, &it.Artwork.Images)
		json.Unmarshal(tags, &it.Artwork.Tags)
		it.Artwork.InStock = it.Artwork.StockCount > 0
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Count(userID int) (int, error) {
	var count int
	if err := r.db.QueryRow(countCartQuery, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) Add(userID, artworkID, delta int) error {
	if _, err := r.db.Exec(addToCartQuery, userID, artworkID, delta); err != nil {
		return err
	}
	// a negative delta can drag the row to zero or below
	_, err := r.db.Exec(pruneCartQuery, userID, artworkID)
	return err
}

func (r *PostgresRepository) SetQuantity(userID, artworkID, qty int) error {
	if qty <= 0 {
		return r.Remove(userID, artworkID)
	}
	res, err := r.db.Exec(setCartQuantityQuery, userID, artworkID, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Remove(userID, artworkID int) error {
	res, err := r.db.Exec(removeCartItemQuery, userID, artworkID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(clearCartQuery, userID)
	return err
}
