package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/call-it-is/CCC-project-test/internal/dto"
	"github.com/call-it-is/CCC-project-test/internal/optimizer"
	"github.com/call-it-is/CCC-project-test/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── 服务桩 ──

type stubAuthService struct {
	loginErr error
}

func (s *stubAuthService) Login(_ context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.TokenResponse{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 900}, nil
}

func (s *stubAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return nil, service.ErrInvalidToken
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

type stubStaffService struct {
	createErr error
	getErr    error
}

func (s *stubStaffService) Create(_ context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.StaffResponse{ID: 1, Name: req.Name, Level: req.Level, Status: "regular"}, nil
}

func (s *stubStaffService) GetByID(_ context.Context, id int) (*dto.StaffResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dto.StaffResponse{ID: id, Name: "田中"}, nil
}

func (s *stubStaffService) List(_ context.Context) ([]dto.StaffResponse, error) {
	return []dto.StaffResponse{}, nil
}

func (s *stubStaffService) Update(_ context.Context, id int, _ *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	return &dto.StaffResponse{ID: id}, nil
}

func (s *stubStaffService) Delete(_ context.Context, _ int) error { return s.getErr }

type stubShiftService struct {
	runErr error
}

func (s *stubShiftService) Run(_ context.Context, _ *dto.RunShiftRequest) (*dto.ShiftRunResponse, error) {
	if s.runErr != nil {
		return nil, s.runErr
	}
	return &dto.ShiftRunResponse{Summary: dto.ShiftSummary{Days: 1}}, nil
}

func (s *stubShiftService) List(_ context.Context, _, _ string) ([]dto.ShiftRowResponse, error) {
	return []dto.ShiftRowResponse{}, nil
}

func (s *stubShiftService) ExportExcel(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return nil, "", service.ErrShiftExportEmpty
}

func (s *stubShiftService) ExportCalendar(_ context.Context, _ int, _, _ string) (string, error) {
	return "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", nil
}

// ── 辅助 ──

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (code int, message string) {
	t.Helper()
	var env struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("响应解析失败: %v, body=%s", err, w.Body.String())
	}
	return env.Code, env.Message
}

// ── 认证接口 ──

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, zap.NewNop())
	r := gin.New()
	r.POST("/login", h.Login)

	w := doJSON(t, r, http.MethodPost, "/login", `{"username":"admin","password":"pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	code, _ := decodeEnvelope(t, w)
	if code != 0 {
		t.Errorf("code = %d, want 0", code)
	}
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: service.ErrInvalidCredentials}, zap.NewNop())
	r := gin.New()
	r.POST("/login", h.Login)

	w := doJSON(t, r, http.MethodPost, "/login", `{"username":"admin","password":"bad"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	code, _ := decodeEnvelope(t, w)
	if code != 10001 {
		t.Errorf("code = %d, want 10001", code)
	}
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, zap.NewNop())
	r := gin.New()
	r.POST("/login", h.Login)

	w := doJSON(t, r, http.MethodPost, "/login", `{"username":"admin"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// ── 员工接口 ──

func TestStaffHandler_CreateDuplicateEmail(t *testing.T) {
	h := NewStaffHandler(&stubStaffService{createErr: service.ErrDuplicateEmail}, zap.NewNop())
	r := gin.New()
	r.POST("/staff", h.Create)

	body := `{"name":"佐藤","age":22,"level":3,"status":"part_time","email":"sato@example.com"}`
	w := doJSON(t, r, http.MethodPost, "/staff", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	code, _ := decodeEnvelope(t, w)
	if code != 11002 {
		t.Errorf("code = %d, want 11002", code)
	}
}

func TestStaffHandler_GetNotFound(t *testing.T) {
	h := NewStaffHandler(&stubStaffService{getErr: service.ErrStaffNotFound}, zap.NewNop())
	r := gin.New()
	r.GET("/staff/:id", h.Get)

	w := doJSON(t, r, http.MethodGet, "/staff/99", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestStaffHandler_InvalidPathID(t *testing.T) {
	h := NewStaffHandler(&stubStaffService{}, zap.NewNop())
	r := gin.New()
	r.GET("/staff/:id", h.Get)

	for _, id := range []string{"abc", "0", "-1"} {
		w := doJSON(t, r, http.MethodGet, "/staff/"+id, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("id=%s: status = %d, want 400", id, w.Code)
		}
	}
}

// ── 排班接口 ──

func TestShiftHandler_RunValidationError(t *testing.T) {
	stub := &stubShiftService{runErr: &optimizer.ValidationError{Field: "start_time", Message: "时刻格式无效"}}
	h := NewShiftHandler(stub, zap.NewNop())
	r := gin.New()
	r.POST("/shifts", h.Run)

	w := doJSON(t, r, http.MethodPost, "/shifts", `{"start_date":"2026-03-02","end_date":"2026-03-08"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	code, _ := decodeEnvelope(t, w)
	if code != 13003 {
		t.Errorf("code = %d, want 13003", code)
	}
}

func TestShiftHandler_RunSolverTimeout(t *testing.T) {
	stub := &stubShiftService{runErr: &optimizer.SolverError{Status: "timeout", Wrapped: context.DeadlineExceeded}}
	h := NewShiftHandler(stub, zap.NewNop())
	r := gin.New()
	r.POST("/shifts", h.Run)

	w := doJSON(t, r, http.MethodPost, "/shifts", `{"start_date":"2026-03-02","end_date":"2026-03-08"}`)
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", w.Code)
	}
}

func TestShiftHandler_ExportExcelEmpty(t *testing.T) {
	h := NewShiftHandler(&stubShiftService{}, zap.NewNop())
	r := gin.New()
	r.GET("/shifts/export.xlsx", h.ExportExcel)

	w := doJSON(t, r, http.MethodGet, "/shifts/export.xlsx?start_date=2026-03-02&end_date=2026-03-08", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestShiftHandler_ExportCalendarContentType(t *testing.T) {
	h := NewShiftHandler(&stubShiftService{}, zap.NewNop())
	r := gin.New()
	r.GET("/shifts/staff/:id/calendar.ics", h.ExportCalendar)

	w := doJSON(t, r, http.MethodGet, "/shifts/staff/1/calendar.ics?start_date=2026-03-02&end_date=2026-03-08", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q, want text/calendar", ct)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("响应缺少 VCALENDAR 内容: %s", w.Body.String())
	}
}

func TestShiftHandler_ListMissingRange(t *testing.T) {
	h := NewShiftHandler(&stubShiftService{}, zap.NewNop())
	r := gin.New()
	r.GET("/shifts", h.List)

	w := doJSON(t, r, http.MethodGet, "/shifts?start_date=2026-03-02", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
