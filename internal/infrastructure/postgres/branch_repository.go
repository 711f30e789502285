package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo registro de sucursales sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create inserta una sucursal. Código repetido es domain.ErrDuplicate.
func (r *BranchRepo) Create(branch *entity.Branch) error {
	query := `
		INSERT INTO branches (code, name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		branch.Code, branch.Name, branch.Address, branch.Phone,
	).Scan(&branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByCode busca una sucursal por su código.
func (r *BranchRepo) GetByCode(code string) (*entity.Branch, error) {
	query := `
		SELECT code, name, address, phone, created_at, updated_at
		FROM branches WHERE code = $1`
	var b entity.Branch
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&b.Code, &b.Name, &b.Address, &b.Phone, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// List devuelve todas las sucursales ordenadas por código.
func (r *BranchRepo) List() ([]*entity.Branch, error) {
	query := `
		SELECT code, name, address, phone, created_at, updated_at
		FROM branches ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByCodes devuelve las sucursales cuyos códigos estén en la lista.
func (r *BranchRepo) ListByCodes(codes []string) ([]*entity.Branch, error) {
	query := `
		SELECT code, name, address, phone, created_at, updated_at
		FROM branches WHERE code = ANY($1) ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, codes)
	if err != nil {
		return nil, fmt.Errorf("list branches by codes: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *BranchRepo) scanMany(rows pgx.Rows) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.Code, &b.Name, &b.Address, &b.Phone, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
