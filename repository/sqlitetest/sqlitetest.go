// Package sqlitetest opens an in-memory sqlite database carrying the store
// schema, for repository tests.
package sqlitetest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'user',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NULL
);
CREATE TABLE categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	brand TEXT NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	stock INTEGER NOT NULL DEFAULT 0,
	image_url TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	category_id TEXT NOT NULL,
	offer TEXT NOT NULL DEFAULT '',
	frame_type TEXT NOT NULL,
	lens_type TEXT NOT NULL DEFAULT ''
);
CREATE TABLE lens_education (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	display_order INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE orders (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	full_name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL,
	total_amount DECIMAL(12,2) NOT NULL,
	payment_method TEXT NOT NULL,
	proof_file_name TEXT NOT NULL DEFAULT '',
	proof_data TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id TEXT NOT NULL,
	product_id TEXT NOT NULL,
	product_name TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	unit_price DECIMAL(10,2) NOT NULL,
	prescription_file_name TEXT NOT NULL DEFAULT '',
	prescription_data TEXT NOT NULL DEFAULT ''
);
`

// New returns a fresh database closed at the end of the test.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}
