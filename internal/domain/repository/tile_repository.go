package repository

import "github.com/tilekart/tilebill/internal/domain/entity"

// TileRepository persistence port for the tile catalog.
// Reads exclude soft-deleted rows; GetByID/GetBySize return (nil, nil) when
// there is no match.
type TileRepository interface {
	Create(tile *entity.Tile) error
	GetByID(id string) (*entity.Tile, error)
	GetBySize(size string) (*entity.Tile, error)
	List() ([]*entity.Tile, error)
	Update(tile *entity.Tile) error
	SoftDelete(id string) error
}
