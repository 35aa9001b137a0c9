package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tilekart/tilebill/internal/application/dto"
	"github.com/tilekart/tilebill/internal/domain"
	"github.com/tilekart/tilebill/internal/domain/entity"
	"github.com/tilekart/tilebill/internal/domain/repository"
)

// TileUseCase catalog operations for tiles.
type TileUseCase struct {
	repo repository.TileRepository
}

// NewTileUseCase builds the use case.
func NewTileUseCase(repo repository.TileRepository) *TileUseCase {
	return &TileUseCase{repo: repo}
}

// Create registers a new tile size in the catalog.
func (uc *TileUseCase) Create(in dto.CreateTileRequest) (*dto.TileResponse, error) {
	if in.Size == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySize(in.Size)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	tile := &entity.Tile{
		ID:         uuid.New().String(),
		Size:       in.Size,
		Coverage:   in.Coverage,
		BoxPacking: in.BoxPacking,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.repo.Create(tile); err != nil {
		return nil, err
	}
	return toTileResponse(tile), nil
}

// List returns all non-deleted tiles.
func (uc *TileUseCase) List() ([]*dto.TileResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TileResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTileResponse(t))
	}
	return out, nil
}

// GetByID fetches one tile.
func (uc *TileUseCase) GetByID(id string) (*dto.TileResponse, error) {
	tile, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tile == nil {
		return nil, domain.ErrNotFound
	}
	return toTileResponse(tile), nil
}

// GetBySize fetches catalog data for invoice auto-population.
func (uc *TileUseCase) GetBySize(size string) (*dto.TileBySizeResponse, error) {
	tile, err := uc.repo.GetBySize(size)
	if err != nil {
		return nil, err
	}
	if tile == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.TileBySizeResponse{
		Size:       tile.Size,
		Coverage:   tile.Coverage,
		BoxPacking: tile.BoxPacking,
	}, nil
}

// Update applies a partial edit.
func (uc *TileUseCase) Update(id string, in dto.UpdateTileRequest) (*dto.TileResponse, error) {
	tile, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tile == nil {
		return nil, domain.ErrNotFound
	}
	if in.Size != nil {
		tile.Size = *in.Size
	}
	if in.Coverage != nil {
		tile.Coverage = *in.Coverage
	}
	if in.BoxPacking != nil {
		tile.BoxPacking = *in.BoxPacking
	}
	if err := uc.repo.Update(tile); err != nil {
		return nil, err
	}
	return toTileResponse(tile), nil
}

// Delete soft-deletes a tile.
func (uc *TileUseCase) Delete(id string) error {
	tile, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tile == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

func toTileResponse(t *entity.Tile) *dto.TileResponse {
	return &dto.TileResponse{
		ID:         t.ID,
		Size:       t.Size,
		Coverage:   t.Coverage,
		BoxPacking: t.BoxPacking,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
	}
}
