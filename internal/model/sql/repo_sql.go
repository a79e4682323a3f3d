package sql

import (
	"campaign/internal/entity"
	"fmt"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB

	candidates  *gormTable[entity.Candidate]
	policies    *gormTable[entity.Policy]
	basicTopics *gormTable[entity.BasicTopic]
	faqs        *gormTable[entity.FAQ]
	events      *gormTable[entity.Event]
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	displayOrder := []string{"display_order ASC", "id ASC"}
	return &GormRepository{
		db:          db,
		candidates:  newGormTable[entity.Candidate](db, "created_at DESC", "id DESC"),
		policies:    newGormTable[entity.Policy](db, displayOrder...),
		basicTopics: newGormTable[entity.BasicTopic](db, displayOrder...),
		faqs:        newGormTable[entity.FAQ](db, displayOrder...),
		events:      newGormTable[entity.Event](db, "display_order ASC", "event_date ASC", "event_time ASC", "id ASC"),
	}
}

func (r *GormRepository) Candidates() Table[entity.Candidate] { return r.candidates }

func (r *GormRepository) Policies() Table[entity.Policy] { return r.policies }

func (r *GormRepository) BasicTopics() Table[entity.BasicTopic] { return r.basicTopics }

func (r *GormRepository) FAQs() Table[entity.FAQ] { return r.faqs }

func (r *GormRepository) Events() Table[entity.Event] { return r.events }

// Close releases the underlying connection pool.
func (r *GormRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}
