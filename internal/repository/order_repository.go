package repository

import (
	"context"
	"errors"
	"fmt"

	"wacdo/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, date, chevalet, sur_place, statut, preparateur_id`

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.Date, &o.TableNumber, &o.DineIn, &o.Status, &o.PreparerID)
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (chevalet, sur_place, statut, preparateur_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date
	`

	err := tx.QueryRow(ctx, query,
		order.TableNumber, order.DineIn, order.Status, order.PreparerID,
	).Scan(&order.ID, &order.Date)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Int64("order_id", order.ID).Msg("order created")
	return nil
}

func (r *orderRepository) LinkProducts(ctx context.Context, tx pgx.Tx, orderID int64, productIDs []int64) error {
	return linkItems(ctx, tx, `INSERT INTO order_products (order_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, orderID, productIDs)
}

func (r *orderRepository) LinkMenus(ctx context.Context, tx pgx.Tx, orderID int64, menuIDs []int64) error {
	return linkItems(ctx, tx, `INSERT INTO order_menus (order_id, menu_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, orderID, menuIDs)
}

func linkItems(ctx context.Context, tx pgx.Tx, query string, orderID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(query, orderID, id)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range ids {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to link order item: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) AddMenuOptions(ctx context.Context, tx pgx.Tx, orderID, menuID int64, optionProductIDs []int64) error {
	if len(optionProductIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, pid := range optionProductIDs {
		batch.Queue(
			`INSERT INTO order_menu_options (order_id, menu_id, option_product_id) VALUES ($1, $2, $3)`,
			orderID, menuID, pid,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range optionProductIDs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to record menu option: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) ClearLineItems(ctx context.Context, tx pgx.Tx, orderID int64) error {
	for _, query := range []string{
		`DELETE FROM order_menu_options WHERE order_id = $1`,
		`DELETE FROM order_menus WHERE order_id = $1`,
		`DELETE FROM order_products WHERE order_id = $1`,
	} {
		if _, err := tx.Exec(ctx, query, orderID); err != nil {
			return fmt.Errorf("failed to clear order line items: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o model.Order
	if err := scanOrder(r.pool.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE statut = $1 ORDER BY id`, status)
}

func (r *orderRepository) ListByPreparer(ctx context.Context, preparerID int64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE preparateur_id = $1 ORDER BY id`, preparerID)
}

func (r *orderRepository) ListByDineIn(ctx context.Context, dineIn bool) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE sur_place = $1 ORDER BY id`, dineIn)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET chevalet = $2, sur_place = $3, statut = $4, preparateur_id = $5
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.TableNumber, order.DineIn, order.Status, order.PreparerID,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET statut = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) AssignPreparer(ctx context.Context, id, preparerID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET preparateur_id = $2 WHERE id = $1`, id, preparerID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to assign preparer")
		return false, fmt.Errorf("failed to assign preparer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) Products(ctx context.Context, orderID int64) ([]model.Product, error) {
	query := `
		SELECT p.id, p.nom, p.description, p.prix_ht, p.image, p.options, p.disponibilite, p.type
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY p.id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query order products")
		return nil, fmt.Errorf("failed to query order products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceHT, &p.Image, &p.Options, &p.Available, &p.Type); err != nil {
			return nil, fmt.Errorf("failed to scan order product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order products: %w", err)
	}
	return products, nil
}

func (r *orderRepository) Menus(ctx context.Context, orderID int64) ([]model.Menu, error) {
	query := `
		SELECT m.id, m.nom, m.description, m.prix_ht, m.image, m.disponibilite, m.menu_type
		FROM order_menus om
		JOIN menus m ON m.id = om.menu_id
		WHERE om.order_id = $1
		ORDER BY m.id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query order menus")
		return nil, fmt.Errorf("failed to query order menus: %w", err)
	}
	defer rows.Close()

	var menus []model.Menu
	for rows.Next() {
		var m model.Menu
		if err := scanMenu(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan order menu: %w", err)
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order menus: %w", err)
	}
	return menus, nil
}

func (r *orderRepository) MenuOptions(ctx context.Context, orderID int64) (map[int64][]model.Product, error) {
	query := `
		SELECT omo.menu_id, p.id, p.nom, p.description, p.prix_ht, p.image, p.options, p.disponibilite, p.type
		FROM order_menu_options omo
		JOIN products p ON p.id = omo.option_product_id
		WHERE omo.order_id = $1
		ORDER BY omo.id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query order menu options")
		return nil, fmt.Errorf("failed to query order menu options: %w", err)
	}
	defer rows.Close()

	options := make(map[int64][]model.Product)
	for rows.Next() {
		var menuID int64
		var p model.Product
		if err := rows.Scan(&menuID, &p.ID, &p.Name, &p.Description, &p.PriceHT, &p.Image, &p.Options, &p.Available, &p.Type); err != nil {
			return nil, fmt.Errorf("failed to scan order menu option: %w", err)
		}
		options[menuID] = append(options[menuID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order menu options: %w", err)
	}
	return options, nil
}
