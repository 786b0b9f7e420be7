package repositories

import (
	"errors"
	"strings"

	"inventory/internal/apperrors"

	"gorm.io/gorm"
)

// GORMStore is a GORM implementation of Store.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Products() ProductRepository   { return NewGORMProductRepository(s.db) }
func (s *GORMStore) Categories() CategoryRepository { return NewGORMCategoryRepository(s.db) }
func (s *GORMStore) Suppliers() SupplierRepository  { return NewGORMSupplierRepository(s.db) }

// WithinTransaction runs fn inside a database transaction. fn's error rolls
// the transaction back and is returned unchanged.
func (s *GORMStore) WithinTransaction(fn func(tx Store) error) error {
	var fnErr error
	err := s.db.Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewGORMStore(tx))
		return fnErr
	})
	if err != nil && fnErr == nil {
		return apperrors.Store("commit transaction", err)
	}
	return err
}

// likePattern builds a case-insensitive LIKE pattern with wildcards escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

func exists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isForeignKeyViolation also matches SQLite's text for violations the driver
// does not translate, such as those raised from a constraint trigger.
func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
