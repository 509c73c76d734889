package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pricewatch/internal/app/pricing/entity"
)

var (
	ErrCompetitorNotFound = errors.New("competitor not found")
)

type competitorRepository struct {
	db *gorm.DB
}

// NewCompetitorRepository создает новый репозиторий конкурентов
func NewCompetitorRepository(db *gorm.DB) CompetitorRepository {
	return &competitorRepository{db: db}
}

// Create создает нового конкурента в PostgreSQL
func (r *competitorRepository) Create(ctx context.Context, competitor *entity.Competitor) error {
	result := r.db.WithContext(ctx).Create(competitor)
	return result.Error
}

// GetByID получает конкурента по ID
func (r *competitorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Competitor, error) {
	var competitor entity.Competitor
	result := r.db.WithContext(ctx).First(&competitor, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCompetitorNotFound
		}
		return nil, result.Error
	}

	return &competitor, nil
}

// Update обновляет данные конкурента
func (r *competitorRepository) Update(ctx context.Context, competitor *entity.Competitor) error {
	result := r.db.WithContext(ctx).Model(competitor).
		Where("id = ?", competitor.ID).
		Updates(map[string]interface{}{
			"name":        competitor.Name,
			"category":    competitor.Category,
			"website":     competitor.Website,
			"description": competitor.Description,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCompetitorNotFound
	}

	return nil
}

// Delete удаляет конкурента
// Связанные ценовые записи и история удаляются через CASCADE
func (r *competitorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Competitor{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCompetitorNotFound
	}

	return nil
}

// List возвращает всех конкурентов, отсортированных по имени
func (r *competitorRepository) List(ctx context.Context) ([]entity.Competitor, error) {
	var competitors []entity.Competitor
	result := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&competitors)

	if result.Error != nil {
		return nil, result.Error
	}

	return competitors, nil
}
