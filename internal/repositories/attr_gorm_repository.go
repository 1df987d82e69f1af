package repositories

import (
	"fmt"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// GORMAttrRepository is a GORM implementation of AttrRepository,
// parameterised by entity type and the table names its queries reference.
type GORMAttrRepository[T any] struct {
	db        *gorm.DB
	table     string
	joinTable string
	joinKey   string
}

// NewGORMTagRepository creates the tag instantiation of GORMAttrRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMAttrRepository[models.Tag] {
	return &GORMAttrRepository[models.Tag]{
		db:        db,
		table:     "tags",
		joinTable: "recipe_tags",
		joinKey:   "tag_id",
	}
}

// NewGORMIngredientRepository creates the ingredient instantiation.
func NewGORMIngredientRepository(db *gorm.DB) *GORMAttrRepository[models.Ingredient] {
	return &GORMAttrRepository[models.Ingredient]{
		db:        db,
		table:     "ingredients",
		joinTable: "recipe_ingredients",
		joinKey:   "ingredient_id",
	}
}

// Create persists a new record.
func (r *GORMAttrRepository[T]) Create(attr *T) error {
	if err := r.db.Create(attr).Error; err != nil {
		return fmt.Errorf("failed to create %s record: %w", r.table, err)
	}
	return nil
}

// ListForUser returns the caller's records ordered by name descending.
// With assignedOnly set, only records attached to at least one live recipe
// are returned, deduplicated across multiple attachments.
func (r *GORMAttrRepository[T]) ListForUser(userID uint, assignedOnly bool) ([]T, error) {
	var attrs []T
	q := r.db.Model(new(T)).Where(r.table+".user_id = ?", userID)
	if assignedOnly {
		q = q.
			Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.id", r.joinTable, r.joinTable, r.joinKey, r.table)).
			Joins(fmt.Sprintf("JOIN recipes ON recipes.id = %s.recipe_id AND recipes.deleted_at IS NULL", r.joinTable)).
			Distinct(r.table + ".*")
	}
	if err := q.Order(r.table + ".name DESC").Find(&attrs).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return attrs, nil
}

// GetByIDs fetches records by primary key, silently skipping unknown ids.
func (r *GORMAttrRepository[T]) GetByIDs(ids []uint) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var attrs []T
	if err := r.db.Find(&attrs, ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get %s by ids: %w", r.table, err)
	}
	return attrs, nil
}
