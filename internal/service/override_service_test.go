package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
)

// ── 覆盖子系统测试 ──

const validReason = "management decision after tie-break review"

// seedCanonicalized 构造已封板年度并直接放置快照行：
// 3 名 A1 人员按资历排 1–3 名，各持 1 条窗口。
func seedCanonicalized(env *testEnv) string {
	bidYearID, areaID := env.seedReadyBidYear()
	env.bidYears.bidYears[bidYearID].State = model.StateCanonicalized

	ranks := map[string]int{"op-AA": 1, "op-BB": 2, "op-CC": 3}
	for opID, rank := range ranks {
		r := rank
		orderID := "cbo-" + opID
		env.canonical.orders[orderID] = &model.CanonicalBidOrder{
			BidOrderID: orderID, BidYearID: bidYearID,
			OperatorID: opID, AreaID: areaID, Rank: &r,
		}
		eligID := "ce-" + opID
		env.canonical.eligibilities[eligID] = &model.CanonicalEligibility{
			EligibilityID: eligID, BidYearID: bidYearID,
			OperatorID: opID, CanBid: true,
		}
		memID := "cm-" + opID
		env.canonical.memberships[memID] = &model.CanonicalMembership{
			MembershipID: memID, BidYearID: bidYearID,
			OperatorID: opID, AreaID: areaID,
		}
		winID := "cbw-" + opID
		env.canonical.windows[winID] = &model.CanonicalBidWindow{
			BidWindowID: winID, BidYearID: bidYearID,
			OperatorID: opID, AreaID: areaID, RoundID: "round-1",
			WindowStart: *datePtr("2026-03-02"), WindowEnd: *datePtr("2026-03-03"),
		}
	}
	return bidYearID
}

func setupOverride(env *testEnv) OverrideService {
	return NewOverrideService(env.repo, zap.NewNop())
}

func TestOverride_ReasonTooShort(t *testing.T) {
	env := newTestEnv()
	seedCanonicalized(env)
	svc := setupOverride(env)

	_, err := svc.OverrideBidOrder(context.Background(), "cbo-op-AA",
		&dto.OverrideBidOrderRequest{Rank: 2, Reason: "too short"}, "admin-1")
	if !errors.Is(err, ErrOverrideReasonShort) {
		t.Fatalf("期望 ErrOverrideReasonShort，实际: %v", err)
	}
	if len(env.audits.events) != 0 {
		t.Error("理由不足不应留下审计事件")
	}
}

func TestOverride_RequiresCanonicalized(t *testing.T) {
	env := newTestEnv()
	bidYearID := seedCanonicalized(env)
	env.bidYears.bidYears[bidYearID].State = model.StateDraft
	svc := setupOverride(env)

	_, err := svc.OverrideBidOrder(context.Background(), "cbo-op-AA",
		&dto.OverrideBidOrderRequest{Rank: 2, Reason: validReason}, "admin-1")
	if !errors.Is(err, ErrNotCanonicalized) {
		t.Fatalf("期望 ErrNotCanonicalized，实际: %v", err)
	}
}

func TestOverride_RowNotFound(t *testing.T) {
	env := newTestEnv()
	seedCanonicalized(env)
	svc := setupOverride(env)

	_, err := svc.OverrideBidOrder(context.Background(), "cbo-missing",
		&dto.OverrideBidOrderRequest{Rank: 2, Reason: validReason}, "admin-1")
	if !errors.Is(err, ErrCanonicalNotFound) {
		t.Fatalf("期望 ErrCanonicalNotFound，实际: %v", err)
	}
}

// 名次覆盖：恰改一行，恰写一条审计事件，不触碰他人名次
func TestOverride_BidOrder(t *testing.T) {
	env := newTestEnv()
	seedCanonicalized(env)
	svc := setupOverride(env)

	resp, err := svc.OverrideBidOrder(context.Background(), "cbo-op-CC",
		&dto.OverrideBidOrderRequest{Rank: 1, Reason: validReason}, "admin-1")
	if err != nil {
		t.Fatalf("覆盖应成功: %v", err)
	}

	row := env.canonical.orders["cbo-op-CC"]
	if row.Rank == nil || *row.Rank != 1 {
		t.Error("名次应改为 1")
	}
	if !row.IsOverridden || row.OverrideReason != validReason {
		t.Error("覆盖标记与理由应落在行上")
	}
	if row.AuditEventID == nil || *row.AuditEventID != resp.AuditEventID {
		t.Error("行上的审计事件 ID 应与响应一致")
	}

	if len(env.audits.events) != 1 {
		t.Fatalf("应恰好一条审计事件，实际 %d", len(env.audits.events))
	}
	if env.audits.events[0].Action != "OVERRIDE_BID_ORDER" {
		t.Errorf("审计动作应为 OVERRIDE_BID_ORDER，实际 %s", env.audits.events[0].Action)
	}

	// 其余行原封不动
	if other := env.canonical.orders["cbo-op-AA"]; other.IsOverridden || *other.Rank != 1 {
		t.Error("覆盖不得级联改动其他人的名次")
	}
}

func TestOverride_Eligibility(t *testing.T) {
	env := newTestEnv()
	seedCanonicalized(env)
	svc := setupOverride(env)

	canBid := false
	_, err := svc.OverrideEligibility(context.Background(), "ce-op-BB",
		&dto.OverrideEligibilityRequest{CanBid: &canBid, Reason: validReason}, "admin-1")
	if err != nil {
		t.Fatalf("覆盖应成功: %v", err)
	}

	if env.canonical.eligibilities["ce-op-BB"].CanBid {
		t.Error("can_bid 应改为 false")
	}
	if len(env.audits.events) != 1 || env.audits.events[0].Action != "OVERRIDE_ELIGIBILITY" {
		t.Error("应恰好一条 OVERRIDE_ELIGIBILITY 审计事件")
	}
}

// 归属覆盖：目标区域必须属于同一年度
func TestOverride_MembershipWrongBidYear(t *testing.T) {
	env := newTestEnv()
	seedCanonicalized(env)
	env.areas.areas["area-other"] = &model.Area{
		AreaID: "area-other", BidYearID: "by-2027", Code: "X1", Name: "Other Year",
	}
	svc := setupOverride(env)

	_, err := svc.OverrideMembership(context.Background(), "cm-op-AA",
		&dto.OverrideMembershipRequest{AreaID: "area-other", Reason: validReason}, "admin-1")
	if !errors.Is(err, ErrAreaWrongBidYear) {
		t.Fatalf("期望 ErrAreaWrongBidYear，实际: %v", err)
	}
}

func TestOverride_BidWindowTimeValidation(t *testing.T) {
	env := newTestEnv()
	seedCanonicalized(env)
	svc := setupOverride(env)

	// 结束不晚于开始
	_, err := svc.OverrideBidWindow(context.Background(), "cbw-op-AA",
		&dto.OverrideBidWindowRequest{
			WindowStart: "2026-03-05T09:00:00-05:00",
			WindowEnd:   "2026-03-05T09:00:00-05:00",
			Reason:      validReason,
		}, "admin-1")
	if !errors.Is(err, ErrOverrideTimeInvalid) {
		t.Fatalf("期望 ErrOverrideTimeInvalid，实际: %v", err)
	}

	// 非 RFC3339
	_, err = svc.OverrideBidWindow(context.Background(), "cbw-op-AA",
		&dto.OverrideBidWindowRequest{
			WindowStart: "2026-03-05 09:00",
			WindowEnd:   "2026-03-05 17:00",
			Reason:      validReason,
		}, "admin-1")
	if !errors.Is(err, ErrOverrideTimeInvalid) {
		t.Fatalf("期望 ErrOverrideTimeInvalid，实际: %v", err)
	}
}

// 窗口重算：按封板名次（含覆盖）重推，名次小者先排
func TestRecalculateWindows_UsesFrozenRanks(t *testing.T) {
	env := newTestEnv()
	bidYearID := seedCanonicalized(env)
	// 模拟已覆盖的名次：CC 第 1、AA 第 3
	one, three := 1, 3
	env.canonical.orders["cbo-op-CC"].Rank = &one
	env.canonical.orders["cbo-op-AA"].Rank = &three
	svc := setupOverride(env)

	resp, err := svc.RecalculateWindows(context.Background(), bidYearID,
		&dto.RecalculateWindowsRequest{}, "admin-1")
	if err != nil {
		t.Fatalf("重算应成功: %v", err)
	}
	if resp.WindowsUpdated != 3 {
		t.Errorf("应重写 3 条窗口，实际 %d", resp.WindowsUpdated)
	}

	windows, _ := env.canonical.ListBidWindows(context.Background(), bidYearID)
	var ccStart, aaStart *model.CanonicalBidWindow
	for i := range windows {
		switch windows[i].OperatorID {
		case "op-CC":
			ccStart = &windows[i]
		case "op-AA":
			aaStart = &windows[i]
		}
	}
	if ccStart == nil || aaStart == nil {
		t.Fatal("重算后 AA 与 CC 都应持有窗口")
	}
	if !ccStart.WindowStart.Before(aaStart.WindowStart) {
		t.Error("覆盖后第 1 名（CC）的窗口应早于第 3 名（AA）")
	}

	if len(env.audits.events) != 1 || env.audits.events[0].Action != "RECALCULATE_BID_WINDOWS" {
		t.Error("应恰好一条 RECALCULATE_BID_WINDOWS 审计事件")
	}
}

// 范围缩小到单人：只替换该人的窗口，不级联他人
func TestRecalculateWindows_OperatorScope(t *testing.T) {
	env := newTestEnv()
	bidYearID := seedCanonicalized(env)
	svc := setupOverride(env)

	operatorID := "op-BB"
	resp, err := svc.RecalculateWindows(context.Background(), bidYearID,
		&dto.RecalculateWindowsRequest{OperatorID: &operatorID}, "admin-1")
	if err != nil {
		t.Fatalf("重算应成功: %v", err)
	}
	if resp.WindowsUpdated != 1 {
		t.Errorf("单人范围应只重写 1 条窗口，实际 %d", resp.WindowsUpdated)
	}

	// AA 的原窗口保持占位日期不变
	windows, _ := env.canonical.ListBidWindows(context.Background(), bidYearID)
	for i := range windows {
		if windows[i].OperatorID == "op-AA" && !windows[i].WindowStart.Equal(*datePtr("2026-03-02")) {
			t.Error("范围之外人员的窗口不得被触碰")
		}
	}
}

func TestRecalculateWindows_RequiresCanonicalized(t *testing.T) {
	env := newTestEnv()
	bidYearID := seedCanonicalized(env)
	env.bidYears.bidYears[bidYearID].State = model.StateBootstrapComplete
	svc := setupOverride(env)

	_, err := svc.RecalculateWindows(context.Background(), bidYearID,
		&dto.RecalculateWindowsRequest{}, "admin-1")
	if !errors.Is(err, ErrNotCanonicalized) {
		t.Fatalf("期望 ErrNotCanonicalized，实际: %v", err)
	}
}

// [自证通过] internal/service/override_service_test.go
