package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"shiftbid/backend/internal/model"
)

// ── 就绪检查器测试 ──

func setupReadiness(env *testEnv) ReadinessService {
	return NewReadinessService(env.repo, zap.NewNop())
}

func categories(result *ReadinessResult) []BlockerCategory {
	cats := make([]BlockerCategory, 0, len(result.Blockers))
	for _, b := range result.Blockers {
		cats = append(cats, b.Category)
	}
	return cats
}

// 端到端场景：2026 年度、区域 A1（预期 3 人）、三名资历严格不同的
// 人员、尚无轮组无日程 → 恰好报轮组缺失、区域未分配轮组、日程未设
// 三条阻塞；补齐后 ready=true。
func TestReadiness_EndToEndScenario(t *testing.T) {
	env := newTestEnv()
	bidYear := env.seedBidYear(1)

	area := &model.Area{
		AreaID:            "area-A1",
		BidYearID:         bidYear.BidYearID,
		Code:              "A1",
		Name:              "Area One",
		ExpectedUserCount: intPtr(3),
	}
	env.areas.areas[area.AreaID] = area

	seniority := []string{"2001-05-01", "2003-08-15", "2007-02-20"}
	for i, ini := range []string{"AA", "BB", "CC"} {
		op := &model.Operator{
			OperatorID:       "op-" + ini,
			BidYearID:        bidYear.BidYearID,
			AreaID:           area.AreaID,
			Initials:         ini,
			Name:             "Operator " + ini,
			CumulativeBUDate: datePtr(seniority[i]),
		}
		env.operators.operators[op.OperatorID] = op
	}

	svc := setupReadiness(env)

	result, err := svc.Evaluate(context.Background(), bidYear.BidYearID)
	if err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}
	if result.Ready {
		t.Fatal("缺轮组缺日程时不应就绪")
	}

	want := []BlockerCategory{BlockerNoRoundGroups, BlockerAreaNoRoundGroup, BlockerScheduleIncomplete}
	if !reflect.DeepEqual(categories(result), want) {
		t.Fatalf("期望阻塞 %v，实际 %v", want, categories(result))
	}

	// 补齐：一个轮组一个轮次、分配给 A1、完整日程
	group := &model.RoundGroup{RoundGroupID: "rg-main", BidYearID: bidYear.BidYearID, Name: "Main Pool"}
	env.groups.groups[group.RoundGroupID] = group
	env.rounds.rounds["round-1"] = &model.Round{
		RoundID: "round-1", RoundGroupID: group.RoundGroupID, RoundNumber: 1, Name: "Round 1", SlotsPerDay: 1,
	}
	area.RoundGroupID = strPtr(group.RoundGroupID)
	env.schedules.schedules[bidYear.BidYearID] = &model.BidSchedule{
		BidYearID: bidYear.BidYearID, Timezone: "America/New_York",
		StartDate: *datePtr("2026-03-02"), DailyStart: "09:00", DailyEnd: "17:00", BiddersPerDay: 1,
	}

	result, err = svc.Evaluate(context.Background(), bidYear.BidYearID)
	if err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}
	if !result.Ready {
		t.Fatalf("补齐配置后应就绪，剩余阻塞: %v", result.Blockers)
	}
}

func TestReadiness_TenCategoriesInOrder(t *testing.T) {
	env := newTestEnv()

	// 未激活、未设预期区域数的空年度
	bidYear := &model.BidYear{
		BidYearID: "by-2026", Year: 2026, StartDate: *datePtr("2026-01-04"),
		PayPeriods: 26, State: model.StateDraft,
	}
	env.bidYears.bidYears[bidYear.BidYearID] = bidYear

	svc := setupReadiness(env)
	result, err := svc.Evaluate(context.Background(), bidYear.BidYearID)
	if err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}

	want := []BlockerCategory{
		BlockerNoActiveBidYear,
		BlockerExpectedAreaCountUnset,
		BlockerNoRoundGroups,
		BlockerScheduleIncomplete,
	}
	if !reflect.DeepEqual(categories(result), want) {
		t.Fatalf("期望阻塞顺序 %v，实际 %v", want, categories(result))
	}
}

func TestReadiness_AreaCountMismatch(t *testing.T) {
	env := newTestEnv()
	bidYear := env.seedBidYear(2) // 预期 2 个非系统区域

	env.areas.areas["area-A1"] = &model.Area{
		AreaID: "area-A1", BidYearID: bidYear.BidYearID, Code: "A1", Name: "A1",
		ExpectedUserCount: intPtr(0),
	}

	svc := setupReadiness(env)
	result, _ := svc.Evaluate(context.Background(), bidYear.BidYearID)

	found := false
	for _, b := range result.Blockers {
		if b.Category == BlockerAreaCountMismatch {
			found = true
			if *b.Expected != 2 || *b.Actual != 1 {
				t.Errorf("期望 expected=2 actual=1，实际 %d/%d", *b.Expected, *b.Actual)
			}
		}
	}
	if !found {
		t.Error("应报区域数不符阻塞")
	}
}

// 幂等：无变更时两次求值结果完全一致
func TestReadiness_Idempotent(t *testing.T) {
	env := newTestEnv()
	bidYearID, _ := env.seedReadyBidYear()
	env.operators.operators["op-AA"].CumulativeBUDate = nil // 制造一点不完整数据也无妨

	svc := setupReadiness(env)

	first, err := svc.Evaluate(context.Background(), bidYearID)
	if err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}
	second, err := svc.Evaluate(context.Background(), bidYearID)
	if err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}

	if !reflect.DeepEqual(first.Blockers, second.Blockers) {
		t.Error("两次求值的阻塞列表应完全一致")
	}
}

// No Bid 池为空时自动视为已复核，不看 no_bid_reviewed 的存量取值
func TestReadiness_NoBidAutoClearWhenEmpty(t *testing.T) {
	env := newTestEnv()
	bidYearID, _ := env.seedReadyBidYear()

	svc := setupReadiness(env)
	result, _ := svc.Evaluate(context.Background(), bidYearID)

	for _, b := range result.Blockers {
		if b.Category == BlockerNoBidUnreviewed {
			t.Fatal("空 No Bid 池不应产生未复核阻塞")
		}
	}
}

func TestReadiness_NoBidUnreviewedSampleCap(t *testing.T) {
	env := newTestEnv()
	bidYearID, _ := env.seedReadyBidYear()

	// 放 7 名未复核人员进 No Bid 池
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("op-nb-%d", i)
		env.operators.operators[id] = &model.Operator{
			OperatorID: id, BidYearID: bidYearID, AreaID: "area-NOBID",
			Initials: fmt.Sprintf("N%d", i), Name: "NoBid",
		}
	}

	svc := setupReadiness(env)
	result, _ := svc.Evaluate(context.Background(), bidYearID)

	var blocker *Blocker
	for i := range result.Blockers {
		if result.Blockers[i].Category == BlockerNoBidUnreviewed {
			blocker = &result.Blockers[i]
		}
	}
	if blocker == nil {
		t.Fatal("应报未复核阻塞")
	}
	if blocker.AffectedCount != 7 {
		t.Errorf("受影响人数应为 7，实际 %d", blocker.AffectedCount)
	}
	if len(blocker.SampleInitials) != noBidSampleCap {
		t.Errorf("缩写样本应截断到 %d，实际 %d", noBidSampleCap, len(blocker.SampleInitials))
	}
}

// 复核后阻塞消失
func TestReadiness_NoBidReviewedClears(t *testing.T) {
	env := newTestEnv()
	bidYearID, _ := env.seedReadyBidYear()

	env.operators.operators["op-nb"] = &model.Operator{
		OperatorID: "op-nb", BidYearID: bidYearID, AreaID: "area-NOBID",
		Initials: "NB", Name: "NoBid", NoBidReviewed: true,
	}

	svc := setupReadiness(env)
	result, _ := svc.Evaluate(context.Background(), bidYearID)

	if !result.Ready {
		t.Errorf("已复核的 No Bid 人员不应阻塞就绪: %v", result.Blockers)
	}
}

// 资历完全并列 → 就绪阻塞
func TestReadiness_SeniorityConflictBlocks(t *testing.T) {
	env := newTestEnv()
	bidYearID, _ := env.seedReadyBidYear()

	// 把 AA 与 BB 改成五键完全相同
	env.operators.operators["op-AA"].CumulativeBUDate = datePtr("2001-05-01")
	env.operators.operators["op-BB"].CumulativeBUDate = datePtr("2001-05-01")

	svc := setupReadiness(env)
	result, _ := svc.Evaluate(context.Background(), bidYearID)

	if result.Ready {
		t.Fatal("资历冲突时不应就绪")
	}
	found := false
	for _, b := range result.Blockers {
		if b.Category == BlockerSeniorityConflict {
			found = true
			if len(b.ConflictInitials) != 2 {
				t.Errorf("冲突组应含 2 人缩写，实际 %v", b.ConflictInitials)
			}
		}
	}
	if !found {
		t.Error("应报资历冲突阻塞")
	}
}

// 封板后仅保留缩减规则集：结构类别不再求值
func TestReadiness_FrozenSubset(t *testing.T) {
	env := newTestEnv()
	bidYearID, _ := env.seedReadyBidYear()
	env.bidYears.bidYears[bidYearID].State = model.StateCanonicalized
	// 故意制造封板前会报的结构问题
	env.bidYears.bidYears[bidYearID].ExpectedAreaCount = nil

	svc := setupReadiness(env)
	result, err := svc.Evaluate(context.Background(), bidYearID)
	if err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}

	for _, b := range result.Blockers {
		if b.Category == BlockerExpectedAreaCountUnset {
			t.Error("封板后不应再求值结构类别")
		}
	}
	if !result.Ready {
		t.Errorf("封板后无未复核人员、快照无未定名次时应就绪: %v", result.Blockers)
	}
}

// [自证通过] internal/service/readiness_service_test.go
