package utils

import (
	"context"
	"errors"
	"reflect"

	"github.com/mmdatafocus/cashflow_guard/config"
	"gorm.io/gorm"
)

/* DB fetching */

// fetch model from db by its key column
// (may return RecordNotFound)
func FetchModel[T any](ctx context.Context, keyColumn string, id interface{}) (*T, error) {
	db := config.GetDB()
	var result T
	err := db.WithContext(ctx).Where(keyColumn+" = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

// fetch all models from db in the given order
func FetchAllModels[T any](ctx context.Context, order string) ([]*T, error) {
	db := config.GetDB()
	results := make([]*T, 0)
	if err := db.WithContext(ctx).Order(order).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// count records matching $condition
func ResourceCountWhere[T any](ctx context.Context, condition string, value ...interface{}) (int64, error) {
	var model T
	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&model).Where(condition, value...).Count(&count).Error
	return count, err
}

// check the referenced record exists
// (may return RecordNotFound)
func ValidateResourceId[T any](ctx context.Context, keyColumn string, id interface{}) error {
	count, err := ResourceCountWhere[T](ctx, keyColumn+" = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}
	return nil
}

// ErrDuplicate is returned by ValidateUnique when another row holds the value.
var ErrDuplicate = errors.New("duplicate value")

// check no other record has the same $column value; exceptId skips the row being updated
func ValidateUnique[T any](ctx context.Context, column string, value interface{}, keyColumn string, exceptId interface{}) error {
	var count int64
	var err error
	if exceptId == nil || reflect.ValueOf(exceptId).IsZero() {
		count, err = ResourceCountWhere[T](ctx, column+" = ?", value)
	} else {
		count, err = ResourceCountWhere[T](ctx, column+" = ? AND NOT "+keyColumn+" = ?", value, exceptId)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return nil
}

// delete by key column
// (returns RecordNotFound when nothing was deleted)
func DeleteModel[T any](ctx context.Context, keyColumn string, id interface{}) error {
	var model T
	db := config.GetDB()
	result := db.WithContext(ctx).Where(keyColumn+" = ?", id).Delete(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrorRecordNotFound
	}
	return nil
}
