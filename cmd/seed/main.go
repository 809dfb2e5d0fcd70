// Command seed populates the database with the default staff accounts and a
// small sample catalog. It is idempotent: existing emails are skipped.
package main

import (
	"context"
	"fmt"
	"os"

	"wacdo/internal/auth"
	"wacdo/internal/config"
	"wacdo/internal/database"
	"wacdo/internal/model"
	"wacdo/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	users := repository.NewUserRepository(pool, logger)
	products := repository.NewProductRepository(pool, logger)
	menus := repository.NewMenuRepository(pool, logger)
	hasher := auth.NewHasher(cfg.Auth)

	staff := []struct {
		name     string
		email    string
		password string
		role     model.Role
	}{
		{"Admin", "admin@wacdo.fr", "admin123", model.RoleAdministrateur},
		{"Sophie Martin", "superviseur@wacdo.fr", "super123", model.RoleSuperviseur},
		{"Lucas Bernard", "preparateur@wacdo.fr", "prepa123", model.RolePreparateur},
		{"Emma Dubois", "accueil@wacdo.fr", "accueil123", model.RoleAccueil},
	}

	for _, s := range staff {
		existing, err := users.GetByEmail(ctx, s.email)
		if err != nil {
			return fmt.Errorf("failed to check user %s: %w", s.email, err)
		}
		if existing != nil {
			logger.Info().Str("email", s.email).Msg("user already present, skipping")
			continue
		}

		hash, err := hasher.Hash(s.password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user := &model.User{Name: s.name, Email: s.email, Password: hash, Role: s.role}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", s.email, err)
		}
		logger.Info().Str("email", s.email).Str("role", string(s.role)).Msg("user created")
	}

	existing, err := products.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	if len(existing) > 0 {
		logger.Info().Int("count", len(existing)).Msg("catalog already populated, skipping")
		return nil
	}

	catalog := []model.Product{
		{Name: "Big Wac", Description: "Double steak, cheddar, sauce maison", PriceHT: 5.50, Available: true, Type: model.ProductTypeBurger, Options: []string{}},
		{Name: "Wacdo Chicken", Description: "Poulet pané, salade, mayonnaise", PriceHT: 5.00, Available: true, Type: model.ProductTypeBurger, Options: []string{}},
		{Name: "Frites", Description: "Frites croustillantes", PriceHT: 2.50, Available: true, Type: model.ProductTypeAccompagnement, Options: []string{"petite", "moyenne", "grande"}},
		{Name: "Salade Cesar", Description: "Salade, poulet, parmesan", PriceHT: 4.50, Available: true, Type: model.ProductTypeSalade, Options: []string{}},
		{Name: "Coca-Cola", Description: "Boisson fraiche 33cl", PriceHT: 2.00, Available: true, Type: model.ProductTypeBoisson, Options: []string{"33cl", "50cl"}},
		{Name: "Eau minerale", Description: "Bouteille 50cl", PriceHT: 1.50, Available: true, Type: model.ProductTypeBoisson, Options: []string{}},
		{Name: "Sundae", Description: "Glace nappage chocolat", PriceHT: 2.50, Available: true, Type: model.ProductTypeDessert, Options: []string{"chocolat", "caramel", "fraise"}},
		{Name: "Sauce barbecue", Description: "Dosette de sauce", PriceHT: 0.30, Available: true, Type: model.ProductTypeSauce, Options: []string{}},
	}

	ids := make([]int64, 0, len(catalog))
	for i := range catalog {
		if err := products.Create(ctx, &catalog[i]); err != nil {
			return fmt.Errorf("failed to create product %s: %w", catalog[i].Name, err)
		}
		ids = append(ids, catalog[i].ID)
		logger.Info().Int64("product_id", catalog[i].ID).Str("nom", catalog[i].Name).Msg("product created")
	}

	sample := []struct {
		menu       model.Menu
		productIDs []int64
	}{
		{model.Menu{Name: "Menu Best Of Big Wac", Description: "Burger, accompagnement et boisson", PriceHT: 8.50, Available: true, Type: model.MenuTypeBestOf}, []int64{ids[0], ids[2], ids[4]}},
		{model.Menu{Name: "Menu Maxi Best Of Chicken", Description: "Format maxi", PriceHT: 9.50, Available: true, Type: model.MenuTypeMaxiBestOf}, []int64{ids[1], ids[2], ids[4]}},
		{model.Menu{Name: "Menu Enfant", Description: "Pour les petits", PriceHT: 5.50, Available: true, Type: model.MenuTypeEnfant}, []int64{ids[1], ids[2], ids[5], ids[6]}},
	}

	for i := range sample {
		if err := menus.Create(ctx, &sample[i].menu, sample[i].productIDs); err != nil {
			return fmt.Errorf("failed to create menu %s: %w", sample[i].menu.Name, err)
		}
		logger.Info().Int64("menu_id", sample[i].menu.ID).Str("nom", sample[i].menu.Name).Msg("menu created")
	}

	logger.Info().Msg("seed completed")
	return nil
}
