package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

var (
	ErrRecordNotFound = errors.New("catalog record not found")
	ErrNilDB          = errors.New("catalog db is nil")
)

// Store reads suppliers and products through bun. Every method is a
// read-only query; nothing is cached between calls.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	var supplier Supplier
	err := s.db.NewSelect().
		Model(&supplier).
		Where("s.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: supplier id=%d", ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("select supplier id=%d: %w", id, err)
	}
	return &supplier, nil
}

// FindProductsByBrand returns products whose brand contains brand, ignoring
// case. Rows come back in whatever order the database yields them.
func (s *Store) FindProductsByBrand(ctx context.Context, brand string) ([]Product, error) {
	products := make([]Product, 0)
	err := s.db.NewSelect().
		Model(&products).
		Where("p.brand ILIKE ?", containsPattern(brand)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select products brand=%q: %w", brand, err)
	}
	return products, nil
}

// FindProductByName returns the lowest-id product whose name contains name.
func (s *Store) FindProductByName(ctx context.Context, name string) (*Product, error) {
	var product Product
	err := s.db.NewSelect().
		Model(&product).
		Where("p.name ILIKE ?", containsPattern(name)).
		OrderExpr("p.id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: product name=%q", ErrRecordNotFound, name)
		}
		return nil, fmt.Errorf("select product name=%q: %w", name, err)
	}
	return &product, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	err := s.db.NewSelect().
		Model(&product).
		Where("p.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: product id=%d", ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("select product id=%d: %w", id, err)
	}
	return &product, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]Product, error) {
	products := make([]Product, 0)
	if err := s.db.NewSelect().Model(&products).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	suppliers := make([]Supplier, 0)
	if err := s.db.NewSelect().Model(&suppliers).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select suppliers: %w", err)
	}
	return suppliers, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
