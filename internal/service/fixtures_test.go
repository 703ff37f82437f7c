package service

import (
	"time"

	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 测试环境 ──
//
// 所有 service 测试共用的内存 mock 聚合与种子数据。
// seedReadyBidYear 构造一个就绪检查可通过的完整年度：
// 2026 年、一个非系统区域 A1（预期 3 人、已分配轮组）、
// 三名累计工会席位日期严格不同的人员、一个轮组一个轮次、
// 完整竞标日程（America/New_York，2026-03-02 周一开始）。

type testEnv struct {
	repo      *repository.Repository
	bidYears  *mockBidYearRepo
	areas     *mockAreaRepo
	operators *mockOperatorRepo
	groups    *mockRoundGroupRepo
	rounds    *mockRoundRepo
	schedules *mockBidScheduleRepo
	canonical *mockCanonicalRepo
	audits    *mockAuditRepo
}

func newTestEnv() *testEnv {
	rounds := newMockRoundRepo()
	env := &testEnv{
		bidYears:  newMockBidYearRepo(),
		areas:     newMockAreaRepo(),
		operators: newMockOperatorRepo(),
		groups:    newMockRoundGroupRepo(rounds),
		rounds:    rounds,
		schedules: newMockBidScheduleRepo(),
		canonical: newMockCanonicalRepo(),
		audits:    newMockAuditRepo(),
	}
	env.repo = &repository.Repository{
		User:        newMockUserRepo(),
		BidYear:     env.bidYears,
		Area:        env.areas,
		Operator:    env.operators,
		RoundGroup:  env.groups,
		Round:       env.rounds,
		BidSchedule: env.schedules,
		Canonical:   env.canonical,
		Audit:       env.audits,
	}
	return env
}

func datePtr(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

// seedBidYear 创建基础年度（含系统区域），默认激活、draft 状态
func (e *testEnv) seedBidYear(expectedAreas int) *model.BidYear {
	bidYear := &model.BidYear{
		BidYearID:         "by-2026",
		Year:              2026,
		StartDate:         *datePtr("2026-01-04"),
		PayPeriods:        26,
		IsActive:          true,
		ExpectedAreaCount: intPtr(expectedAreas),
		State:             model.StateDraft,
	}
	e.bidYears.bidYears[bidYear.BidYearID] = bidYear

	system := &model.Area{
		AreaID:    "area-NOBID",
		BidYearID: bidYear.BidYearID,
		Code:      "NOBID",
		Name:      "No Bid",
		IsSystem:  true,
	}
	e.areas.areas[system.AreaID] = system

	return bidYear
}

// seedReadyBidYear 构造就绪的完整年度，返回年度 ID 与 A1 区域 ID
func (e *testEnv) seedReadyBidYear() (string, string) {
	bidYear := e.seedBidYear(1)

	group := &model.RoundGroup{
		RoundGroupID:   "rg-main",
		BidYearID:      bidYear.BidYearID,
		Name:           "Main Pool",
		EditingEnabled: true,
	}
	e.groups.groups[group.RoundGroupID] = group

	round := &model.Round{
		RoundID:      "round-1",
		RoundGroupID: group.RoundGroupID,
		RoundNumber:  1,
		Name:         "Round 1",
		SlotsPerDay:  1,
		MaxGroups:    1,
	}
	e.rounds.rounds[round.RoundID] = round

	area := &model.Area{
		AreaID:            "area-A1",
		BidYearID:         bidYear.BidYearID,
		Code:              "A1",
		Name:              "Area One",
		ExpectedUserCount: intPtr(3),
		IsSystem:          false,
		RoundGroupID:      strPtr(group.RoundGroupID),
	}
	e.areas.areas[area.AreaID] = area

	seniority := []string{"2001-05-01", "2003-08-15", "2007-02-20"}
	initials := []string{"AA", "BB", "CC"}
	for i := 0; i < 3; i++ {
		op := &model.Operator{
			OperatorID:       "op-" + initials[i],
			BidYearID:        bidYear.BidYearID,
			AreaID:           area.AreaID,
			Initials:         initials[i],
			Name:             "Operator " + initials[i],
			UserType:         "controller",
			CumulativeBUDate: datePtr(seniority[i]),
		}
		e.operators.operators[op.OperatorID] = op
	}

	e.schedules.schedules[bidYear.BidYearID] = &model.BidSchedule{
		BidScheduleID: "sched-2026",
		BidYearID:     bidYear.BidYearID,
		Timezone:      "America/New_York",
		StartDate:     *datePtr("2026-03-02"), // 周一
		DailyStart:    "09:00",
		DailyEnd:      "17:00",
		BiddersPerDay: 1,
	}

	return bidYear.BidYearID, area.AreaID
}

// [自证通过] internal/service/fixtures_test.go
