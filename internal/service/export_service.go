package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mayank0365/SlotSwapper/internal/model"
	"github.com/mayank0365/SlotSwapper/internal/repository"
	pkgerrors "github.com/mayank0365/SlotSwapper/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportUserNotFound = pkgerrors.NotFound(14001, "用户不存在")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportEvents 导出调用者的全部时间段为 Excel，无时间段时仅含表头
	ExportEvents(ctx context.Context, ownerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const (
	exportSheetName  = "我的日程"
	exportTimeLayout = "2006-01-02 15:04"
)

var statusLabels = map[model.EventStatus]string{
	model.EventStatusBusy:        "忙碌",
	model.EventStatusSwappable:   "可交换",
	model.EventStatusSwapPending: "换班中",
}

// ═══════════════════════════════════════════════════════════
// ExportEvents — 导出个人日程
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：标题（用户名 + 日程），合并 A1:D1
//   - 第 2 行：表头 标题 / 开始时间 / 结束时间 / 状态
//   - 第 3 行起：按 start_time 升序的时间段，时间为 UTC

func (s *exportService) ExportEvents(ctx context.Context, ownerID string) (*bytes.Buffer, string, error) {
	user, err := s.repo.User.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", ownerID), zap.Error(err))
		return nil, "", err
	}

	events, err := s.repo.Event.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("查询时间段列表失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	_ = f.DeleteSheet("Sheet1")

	_ = f.SetColWidth(exportSheetName, "A", "A", 30)
	_ = f.SetColWidth(exportSheetName, "B", "C", 20)
	_ = f.SetColWidth(exportSheetName, "D", "D", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	_ = f.SetCellValue(exportSheetName, "A1", fmt.Sprintf("%s 的日程", user.Name))
	_ = f.MergeCell(exportSheetName, "A1", "D1")
	_ = f.SetCellStyle(exportSheetName, "A1", "A1", headerStyle)

	// 表头
	for i, title := range []string{"标题", "开始时间", "结束时间", "状态"} {
		_ = f.SetCellValue(exportSheetName, cell(colName(i), 2), title)
	}
	_ = f.SetCellStyle(exportSheetName, "A2", "D2", headerStyle)

	// 数据行
	row := 3
	for _, e := range events {
		_ = f.SetCellValue(exportSheetName, cell("A", row), e.Title)
		_ = f.SetCellValue(exportSheetName, cell("B", row), e.StartTime.UTC().Format(exportTimeLayout))
		_ = f.SetCellValue(exportSheetName, cell("C", row), e.EndTime.UTC().Format(exportTimeLayout))
		_ = f.SetCellValue(exportSheetName, cell("D", row), statusLabel(e.Status))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("日程_%s.xlsx", user.Name)
	return buf, filename, nil
}

// ── 辅助函数 ──

func statusLabel(status model.EventStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
