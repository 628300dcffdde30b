package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listUsersQuery = `
		SELECT user_id, email, password, first_name, last_name, phone, is_admin, created_at, updated_at
		FROM user_profiles
		ORDER BY user_id
	`
	getUserByIDQuery = `
		SELECT user_id, email, password, first_name, last_name, phone, is_admin, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT user_id, email, password, first_name, last_name, phone, is_admin, created_at, updated_at
		FROM user_profiles
		WHERE lower(trim(email)) = $1
	`
	insertUserQuery = `
		INSERT INTO user_profiles (email, password, first_name, last_name, phone, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE user_profiles
		SET first_name = $1,
			last_name = $2,
			phone = $3,
			password = CASE WHEN $4 <> '' THEN $4 ELSE password END,
			updated_at = $5
		WHERE user_id = $6
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []User {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return []User{}
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}

	return users
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmailQuery, NormalizeEmail(email)))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	err := r.db.QueryRow(
		insertUserQuery,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Update(id int, update User) (User, error) {
	res, err := r.db.Exec(
		updateUserQuery,
		update.FirstName,
		update.LastName,
		update.Phone,
		update.Password,
		update.UpdatedAt,
		id,
	)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &u.IsAdmin, &createdAt, &updatedAt); err != nil {
		return User{}, err
	}
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}
