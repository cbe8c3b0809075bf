// Package main provides a CLI tool for seeding the database with demo data.
// It applies pending migrations first. Existing rows are found by name and reused.
package main

import (
	"context"
	"fmt"
	"os"

	"negocio/internal/config"
	"negocio/internal/core/apperror"
	"negocio/internal/core/types"
	"negocio/internal/domain/auth"
	"negocio/internal/domain/catalogs/category"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/item"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/infrastructure/storage/postgres"
	"negocio/internal/infrastructure/storage/postgres/catalog_repo"
	"negocio/pkg/logger"
)

type seeder struct {
	log *logger.Logger

	clientRepo   *catalog_repo.ClientRepo
	categoryRepo *catalog_repo.CategoryRepo
	productRepo  *catalog_repo.ProductRepo

	clients    *client.Service
	categories *category.Service
	products   *product.Service
	items      *item.Service
}

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := postgres.Migrate(cfg.Database.URL, log); err != nil {
		log.Fatalw("failed to migrate database", "error", err)
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.ApplicationName = "negocio-seed"
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)
	s := &seeder{
		log:          log,
		clientRepo:   catalog_repo.NewClientRepo(txm),
		categoryRepo: catalog_repo.NewCategoryRepo(txm),
		productRepo:  catalog_repo.NewProductRepo(txm),
	}
	itemRepo := catalog_repo.NewItemRepo(txm)
	s.clients = client.NewService(s.clientRepo, txm)
	s.categories = category.NewService(s.categoryRepo, txm)
	s.products = product.NewService(s.productRepo, s.categoryRepo, txm)
	s.items = item.NewService(itemRepo, s.productRepo, s.productRepo, txm)

	if err := s.run(ctx); err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	if cfg.AuthEnabled() {
		jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.Auth.JWTSecret))
		token, expiresAt, err := jwtService.GenerateAccessToken("demo", "demo@negocio.local", []string{"admin"})
		if err != nil {
			log.Fatalw("failed to issue demo token", "error", err)
		}
		log.Infow("demo bearer token issued", "expires_at", expiresAt)
		fmt.Println(token)
	}

	log.Info("seeding completed successfully")
}

func (s *seeder) run(ctx context.Context) error {
	if err := s.seedClient(ctx, "Juan", "Pérez", "juan.perez@example.com"); err != nil {
		return err
	}

	cat, err := s.seedCategory(ctx, "Computadoras", "Equipos portátiles y de escritorio")
	if err != nil {
		return err
	}

	laptop, err := s.seedProduct(ctx, cat, "Laptop HP", "Laptop HP 15 pulgadas", "1200", "43500")
	if err != nil {
		return err
	}

	return s.seedItems(ctx, laptop, "SN-LAPTOP-001", "SN-LAPTOP-002", "SN-LAPTOP-003")
}

func (s *seeder) seedClient(ctx context.Context, firstName, lastName, email string) error {
	existing, err := s.clientRepo.FindByName(ctx, firstName, lastName)
	if err == nil {
		s.log.Infow("client already exists", "client", existing.FullName(), "id", existing.ID)
		return nil
	}
	if !apperror.IsNotFound(err) {
		return fmt.Errorf("find client: %w", err)
	}

	c := client.NewClient(firstName, lastName)
	c.Email = &email
	if err := s.clients.Create(ctx, c); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	s.log.Infow("client created", "client", c.FullName(), "id", c.ID)
	return nil
}

func (s *seeder) seedCategory(ctx context.Context, name, description string) (*category.Category, error) {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("find category: %w", err)
	}

	c := category.NewCategory(name, description)
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.log.Infow("category created", "category", name, "id", c.ID)
	return c, nil
}

func (s *seeder) seedProduct(ctx context.Context, cat *category.Category, name, description, usd, local string) (*product.Product, error) {
	existing, err := s.productRepo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("find product: %w", err)
	}

	p := product.NewProduct(name, description, cat.ID, types.MustMoney(usd), types.MustMoney(local))
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Infow("product created", "product", name, "id", p.ID)
	return p, nil
}

func (s *seeder) seedItems(ctx context.Context, p *product.Product, serials ...string) error {
	var missing []string
	for _, serial := range serials {
		_, err := s.items.FindBySerial(ctx, serial)
		switch {
		case err == nil:
		case apperror.IsNotFound(err):
			missing = append(missing, serial)
		default:
			return fmt.Errorf("find item %s: %w", serial, err)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	received, err := s.items.Receive(ctx, p.ID, missing)
	if err != nil {
		return fmt.Errorf("receive items: %w", err)
	}
	s.log.Infow("items received", "product", p.Name, "count", len(received))
	return nil
}
