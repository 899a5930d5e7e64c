package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementação do porto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository constrói o adaptador de persistência de categorias.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

// Create persiste uma nova categoria. Nome repetido no mesmo escritório é
// idempotente: a constraint única absorve a corrida entre confirmações.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, firm_id, name, ad_hoc, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (firm_id, name) DO NOTHING`
	_, err := r.pool.Exec(context.Background(), query,
		category.ID, category.FirmID, category.Name, category.AdHoc, category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByFirmAndName obtém uma categoria do escritório pelo nome; nil se não existe.
func (r *CategoryRepo) GetByFirmAndName(firmID, name string) (*entity.Category, error) {
	query := `SELECT id, firm_id, name, ad_hoc, created_at FROM categories WHERE firm_id = $1 AND name = $2`
	var c entity.Category
	err := r.pool.QueryRow(context.Background(), query, firmID, name).Scan(
		&c.ID, &c.FirmID, &c.Name, &c.AdHoc, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListByFirm lista as categorias do escritório em ordem alfabética.
func (r *CategoryRepo) ListByFirm(firmID string) ([]*entity.Category, error) {
	query := `SELECT id, firm_id, name, ad_hoc, created_at FROM categories WHERE firm_id = $1 ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query, firmID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.FirmID, &c.Name, &c.AdHoc, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete remove a categoria por id.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
