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

const menuColumns = `id, nom, description, prix_ht, image, disponibilite, menu_type`

// menuRepository implements MenuRepository using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

func scanMenu(row pgx.Row, m *model.Menu) error {
	return row.Scan(&m.ID, &m.Name, &m.Description, &m.PriceHT, &m.Image, &m.Available, &m.Type)
}

func (r *menuRepository) Create(ctx context.Context, menu *model.Menu, productIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO menus (nom, description, prix_ht, image, disponibilite, menu_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		menu.Name, menu.Description, menu.PriceHT, menu.Image, menu.Available, menu.Type,
	).Scan(&menu.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("nom", menu.Name).Msg("failed to create menu")
		return fmt.Errorf("failed to create menu: %w", err)
	}

	if err := linkMenuProducts(ctx, tx, menu.ID, productIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit menu creation: %w", err)
	}

	r.logger.Debug().Int64("menu_id", menu.ID).Msg("menu created")
	return nil
}

func linkMenuProducts(ctx context.Context, tx pgx.Tx, menuID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, pid := range productIDs {
		batch.Queue(
			`INSERT INTO menu_products (menu_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			menuID, pid,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range productIDs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to link menu product: %w", err)
		}
	}
	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id int64) (*model.Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE id = $1`

	var m model.Menu
	if err := scanMenu(r.pool.QueryRow(ctx, query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("menu_id", id).Msg("failed to query menu")
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}

	compositions, err := r.ProductsForMenus(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	m.Products = compositions[id]
	if m.Products == nil {
		m.Products = []model.Product{}
	}
	return &m, nil
}

func (r *menuRepository) List(ctx context.Context) ([]model.Menu, error) {
	return r.list(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY id`)
}

func (r *menuRepository) ListAvailable(ctx context.Context) ([]model.Menu, error) {
	return r.list(ctx, `SELECT `+menuColumns+` FROM menus WHERE disponibilite ORDER BY id`)
}

func (r *menuRepository) ListByType(ctx context.Context, t model.MenuType) ([]model.Menu, error) {
	return r.list(ctx, `SELECT `+menuColumns+` FROM menus WHERE menu_type = $1 ORDER BY id`, t)
}

func (r *menuRepository) list(ctx context.Context, query string, args ...any) ([]model.Menu, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menus")
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var menus []model.Menu
	for rows.Next() {
		var m model.Menu
		if err := scanMenu(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menus: %w", err)
	}

	if len(menus) == 0 {
		return menus, nil
	}

	ids := make([]int64, len(menus))
	for i := range menus {
		ids[i] = menus[i].ID
	}
	compositions, err := r.ProductsForMenus(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range menus {
		menus[i].Products = compositions[menus[i].ID]
		if menus[i].Products == nil {
			menus[i].Products = []model.Product{}
		}
	}
	return menus, nil
}

func (r *menuRepository) Update(ctx context.Context, menu *model.Menu, productIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE menus
		SET nom = $2, description = $3, prix_ht = $4, image = $5, disponibilite = $6, menu_type = $7
		WHERE id = $1
	`

	_, err = tx.Exec(ctx, query,
		menu.ID, menu.Name, menu.Description, menu.PriceHT, menu.Image, menu.Available, menu.Type,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_id", menu.ID).Msg("failed to update menu")
		return fmt.Errorf("failed to update menu: %w", err)
	}

	if productIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM menu_products WHERE menu_id = $1`, menu.ID); err != nil {
			return fmt.Errorf("failed to clear menu composition: %w", err)
		}
		if err := linkMenuProducts(ctx, tx, menu.ID, productIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit menu update: %w", err)
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_id", id).Msg("failed to delete menu")
		return false, fmt.Errorf("failed to delete menu: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *menuRepository) ToggleAvailability(ctx context.Context, id int64) (*model.Menu, error) {
	query := `
		UPDATE menus
		SET disponibilite = NOT disponibilite
		WHERE id = $1
		RETURNING ` + menuColumns

	var m model.Menu
	if err := scanMenu(r.pool.QueryRow(ctx, query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("menu_id", id).Msg("failed to toggle menu availability")
		return nil, fmt.Errorf("failed to toggle menu availability: %w", err)
	}
	m.Products = []model.Product{}
	return &m, nil
}

func (r *menuRepository) AddProducts(ctx context.Context, menuID int64, productIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := linkMenuProducts(ctx, tx, menuID, productIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit menu products: %w", err)
	}
	return nil
}

func (r *menuRepository) RemoveProducts(ctx context.Context, menuID int64, productIDs []int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM menu_products WHERE menu_id = $1 AND product_id = ANY($2)`,
		menuID, productIDs,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_id", menuID).Msg("failed to remove menu products")
		return fmt.Errorf("failed to remove menu products: %w", err)
	}
	return nil
}

func (r *menuRepository) ProductsForMenus(ctx context.Context, menuIDs []int64) (map[int64][]model.Product, error) {
	result := make(map[int64][]model.Product, len(menuIDs))
	if len(menuIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT mp.menu_id, p.id, p.nom, p.description, p.prix_ht, p.image, p.options, p.disponibilite, p.type
		FROM menu_products mp
		JOIN products p ON p.id = mp.product_id
		WHERE mp.menu_id = ANY($1)
		ORDER BY mp.menu_id, p.id
	`

	rows, err := r.pool.Query(ctx, query, menuIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu compositions")
		return nil, fmt.Errorf("failed to query menu compositions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var menuID int64
		var p model.Product
		if err := rows.Scan(&menuID, &p.ID, &p.Name, &p.Description, &p.PriceHT, &p.Image, &p.Options, &p.Available, &p.Type); err != nil {
			return nil, fmt.Errorf("failed to scan menu composition: %w", err)
		}
		result[menuID] = append(result[menuID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu compositions: %w", err)
	}
	return result, nil
}

func (r *menuRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id FROM menus WHERE id = ANY($1)`, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to check menu ids")
		return nil, fmt.Errorf("failed to check menu ids: %w", err)
	}
	defer rows.Close()

	found := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan menu id: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu ids: %w", err)
	}

	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
