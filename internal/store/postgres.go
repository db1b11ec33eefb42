package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-agrichain/internal/model"
)

// LedgerDocument is the single-row table the whole document lives in.
type LedgerDocument struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Data      string `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

type postgresStore struct {
	db *gorm.DB
}

// NewPostgresStore returns a LedgerStore backed by one jsonb row.
func NewPostgresStore(db *gorm.DB) LedgerStore {
	return &postgresStore{db: db}
}

func (s *postgresStore) Load() (*model.LedgerState, error) {
	var doc LedgerDocument
	err := s.db.First(&doc, "key = ?", StorageKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NewLedgerState(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeState([]byte(doc.Data)), nil
}

func (s *postgresStore) Save(state *model.LedgerState) error {
	raw, err := encodeState(state)
	if err != nil {
		return err
	}
	doc := LedgerDocument{Key: StorageKey, Data: string(raw)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
}
