package main

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// The bootstrapped user_profiles table keys on user_id, matching the column
// every user query selects, filters and returns.
func TestBootstrapSchemaKeysUserProfilesOnUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS user_profiles \( user_id SERIAL PRIMARY KEY`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for i := 0; i < 9; i++ {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS`).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	bootstrapSchema(db)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
