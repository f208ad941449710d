package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/audit"
	"go-spear/internal/features/device"
	"go-spear/internal/features/notification"

	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	// ExportNotifications renders the caller's filtered feed as a
	// spreadsheet (xlsx or csv) and returns the bytes and filename.
	ExportNotifications(ctx context.Context, sessionID string, role common_models.Role, filter notification.Filter, format string) ([]byte, string, error)
	ExportDevices(ctx context.Context, format string) ([]byte, string, error)
}

type ReportServiceImpl struct {
	Notifications notification.NotificationService
	Devices       device.DeviceRepository
	AuditService  audit.AuditService
}

func NewReportService(notifications notification.NotificationService, devices device.DeviceRepository, auditService audit.AuditService) ReportService {
	return &ReportServiceImpl{
		Notifications: notifications,
		Devices:       devices,
		AuditService:  auditService,
	}
}

var notificationColumns = []string{"id", "category", "title", "message", "type", "priority", "read", "created_at"}

func (s *ReportServiceImpl) ExportNotifications(ctx context.Context, sessionID string, role common_models.Role, filter notification.Filter, format string) ([]byte, string, error) {
	items, _ := s.Notifications.List(ctx, sessionID, role, filter)

	rows := make([][]interface{}, 0, len(items))
	for _, n := range items {
		rows = append(rows, []interface{}{
			n.ID,
			n.Topic,
			n.Title,
			n.Message,
			string(n.Kind),
			string(n.Priority),
			n.Read,
			n.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	data, filename, err := s.export("Notifications", notificationColumns, rows, format)
	if err != nil {
		return nil, "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "reports", filename, map[string]common_models.Change{
		"export": {New: fmt.Sprintf("%d notifications", len(rows))},
	})
	return data, filename, nil
}

var deviceColumns = []string{"device_id", "alias", "group_id", "online_state", "last_seen_at", "synced_at"}

func (s *ReportServiceImpl) ExportDevices(ctx context.Context, format string) ([]byte, string, error) {
	devices, err := s.Devices.List(ctx)
	if err != nil {
		return nil, "", err
	}

	rows := make([][]interface{}, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, []interface{}{
			d.DeviceID,
			d.Alias,
			d.GroupID,
			string(d.OnlineState),
			d.LastSeenAt.Format("2006-01-02 15:04:05"),
			d.SyncedAt.Format("2006-01-02 15:04:05"),
		})
	}

	data, filename, err := s.export("Devices", deviceColumns, rows, format)
	if err != nil {
		return nil, "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionExport, "reports", filename, map[string]common_models.Change{
		"export": {New: fmt.Sprintf("%d devices", len(rows))},
	})
	return data, filename, nil
}

func (s *ReportServiceImpl) export(sheet string, columns []string, rows [][]interface{}, format string) ([]byte, string, error) {
	stamp := time.Now().Format("20060102_150405")
	base := fmt.Sprintf("%s_%s", strings.ToLower(sheet), stamp)

	switch format {
	case "csv":
		data, err := writeCSV(columns, rows)
		return data, base + ".csv", err
	case "", "xlsx":
		data, err := writeExcel(sheet, columns, rows)
		return data, base + ".xlsx", err
	default:
		return nil, "", fmt.Errorf("unsupported format: %s", format)
	}
}

func writeCSV(columns []string, rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, val := range row {
			record[i] = fmt.Sprintf("%v", val)
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeExcel(sheet string, columns []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
