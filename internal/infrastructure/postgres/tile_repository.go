package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tilekart/tilebill/internal/domain"
	"github.com/tilekart/tilebill/internal/domain/entity"
	"github.com/tilekart/tilebill/internal/domain/repository"
)

var _ repository.TileRepository = (*TileRepo)(nil)

// TileRepo implements TileRepository (usable with pool or tx).
type TileRepo struct {
	q Querier
}

// NewTileRepository builds the adapter. Pass a pool or tx (Querier).
func NewTileRepository(q Querier) *TileRepo {
	return &TileRepo{q: q}
}

// Create persists a new tile.
func (r *TileRepo) Create(tile *entity.Tile) error {
	query := `
		INSERT INTO tiles (id, size, coverage, box_packing, active, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		tile.ID, tile.Size, tile.Coverage, tile.BoxPacking, tile.Active, tile.Deleted, tile.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tile: %w", err)
	}
	return nil
}

// GetByID fetches a tile by ID.
func (r *TileRepo) GetByID(id string) (*entity.Tile, error) {
	query := `
		SELECT id, size, coverage, box_packing, active, deleted, created_at
		FROM tiles WHERE id = $1 AND NOT deleted`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySize fetches a tile by its size key.
func (r *TileRepo) GetBySize(size string) (*entity.Tile, error) {
	query := `
		SELECT id, size, coverage, box_packing, active, deleted, created_at
		FROM tiles WHERE size = $1 AND NOT deleted`
	return r.scanOne(r.q.QueryRow(context.Background(), query, size))
}

// List returns all non-deleted tiles ordered by size.
func (r *TileRepo) List() ([]*entity.Tile, error) {
	query := `
		SELECT id, size, coverage, box_packing, active, deleted, created_at
		FROM tiles WHERE NOT deleted ORDER BY size`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list tiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tile
	for rows.Next() {
		var t entity.Tile
		if err := rows.Scan(&t.ID, &t.Size, &t.Coverage, &t.BoxPacking, &t.Active, &t.Deleted, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tile: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update rewrites a tile.
func (r *TileRepo) Update(tile *entity.Tile) error {
	query := `
		UPDATE tiles SET size = $2, coverage = $3, box_packing = $4, active = $5
		WHERE id = $1 AND NOT deleted`
	_, err := r.q.Exec(context.Background(), query,
		tile.ID, tile.Size, tile.Coverage, tile.BoxPacking, tile.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tile: %w", err)
	}
	return nil
}

// SoftDelete marks a tile as deleted.
func (r *TileRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE tiles SET deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tile: %w", err)
	}
	return nil
}

func (r *TileRepo) scanOne(row pgx.Row) (*entity.Tile, error) {
	var t entity.Tile
	err := row.Scan(&t.ID, &t.Size, &t.Coverage, &t.BoxPacking, &t.Active, &t.Deleted, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tile: %w", err)
	}
	return &t, nil
}
