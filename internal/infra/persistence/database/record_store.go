package database

import (
	"context"

	"tasklist/internal/errors"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned when a lookup or a keyed write matches no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingReference is returned when an insert points at a row that does not exist.
	ErrMissingReference = errors.New("missing referenced record")
)

// RecordStore is a generic GORM repository over a single persistence model M.
// The concrete repositories embed it and only map between models and domain entities.
type RecordStore[M any] struct {
	db *gorm.DB
}

// NewRecordStore creates a RecordStore bound to db.
func NewRecordStore[M any](db *gorm.DB) *RecordStore[M] {
	return &RecordStore[M]{db: db}
}

// Insert creates record and fills in its generated columns.
func (s *RecordStore[M]) Insert(ctx context.Context, record *M) error {
	err := s.db.WithContext(ctx).Create(record).Error
	switch {
	case err == nil:
		return nil
	case isUniqueConstraintViolation(err):
		return errors.Wrap(ErrDuplicateKey, err.Error())
	case isForeignKeyConstraintViolation(err):
		return errors.Wrap(ErrMissingReference, err.Error())
	default:
		return errors.Wrap(err, "insert failed")
	}
}

// FindOne returns the first record matching query, ordered by primary key.
func (s *RecordStore[M]) FindOne(ctx context.Context, query string, args ...any) (*M, error) {
	var record M
	if err := s.db.WithContext(ctx).Where(query, args...).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}

		return nil, errors.Wrap(err, "find failed")
	}

	return &record, nil
}

// FindMany returns every record matching query in the given order.
func (s *RecordStore[M]) FindMany(ctx context.Context, order string, query string, args ...any) ([]*M, error) {
	var records []*M
	if err := s.db.WithContext(ctx).Where(query, args...).Order(order).Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "list failed")
	}

	return records, nil
}

// UpdateByID writes values to the row with the given primary key.
func (s *RecordStore[M]) UpdateByID(ctx context.Context, id uint64, values map[string]any) error {
	result := s.db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return errors.Wrap(result.Error, "update failed")
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// DeleteByID removes the row with the given primary key.
func (s *RecordStore[M]) DeleteByID(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(new(M), "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete failed")
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
