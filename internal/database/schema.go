package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the full DDL for the order-management schema. Statements are
// idempotent so EnsureSchema can run on every startup.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id       BIGSERIAL PRIMARY KEY,
	nom      TEXT NOT NULL,
	email    TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	role     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id            BIGSERIAL PRIMARY KEY,
	nom           TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	prix_ht       NUMERIC(10,2) NOT NULL DEFAULT 0,
	image         TEXT NOT NULL DEFAULT '',
	options       TEXT[] NOT NULL DEFAULT '{}',
	disponibilite BOOLEAN NOT NULL DEFAULT TRUE,
	type          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS menus (
	id            BIGSERIAL PRIMARY KEY,
	nom           TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	prix_ht       NUMERIC(10,2) NOT NULL DEFAULT 0,
	image         TEXT NOT NULL DEFAULT '',
	disponibilite BOOLEAN NOT NULL DEFAULT TRUE,
	menu_type     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_products (
	menu_id    BIGINT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
	product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	PRIMARY KEY (menu_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id             BIGSERIAL PRIMARY KEY,
	date           TIMESTAMPTZ NOT NULL DEFAULT now(),
	chevalet       INT,
	sur_place      BOOLEAN NOT NULL DEFAULT TRUE,
	statut         TEXT NOT NULL DEFAULT 'EN_COURS_PREPARATION',
	preparateur_id BIGINT REFERENCES users(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS order_products (
	order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	PRIMARY KEY (order_id, product_id)
);

CREATE TABLE IF NOT EXISTS order_menus (
	order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	menu_id  BIGINT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
	PRIMARY KEY (order_id, menu_id)
);

CREATE TABLE IF NOT EXISTS order_menu_options (
	id                BIGSERIAL PRIMARY KEY,
	order_id          BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	menu_id           BIGINT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
	option_product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS ix_orders_preparateur_id ON orders(preparateur_id);
CREATE INDEX IF NOT EXISTS ix_orders_statut ON orders(statut);
CREATE INDEX IF NOT EXISTS ix_order_menu_options_order_id ON order_menu_options(order_id);
CREATE INDEX IF NOT EXISTS ix_order_menu_options_menu_id ON order_menu_options(menu_id);
`

// EnsureSchema applies the schema to the connected database.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Msg("database schema ensured")
	return nil
}
