package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"shop-backend/internal/domains/order/model"
)

const (
	exportSheet    = "Orders"
	exportPageSize = 100
	exportMaxRows  = 5000
)

var exportHeaders = []string{"ID", "Number", "User ID", "Status", "Items", "Subtotal", "Discount", "Total", "Date"}

// Export writes every order matching filter, newest first and capped at
// exportMaxRows, to an xlsx workbook.
func (s *orderService) Export(ctx context.Context, filter *model.ListOrdersFilter) (*bytes.Buffer, error) {
	f := *filter
	f.Limit = exportPageSize

	var orders []*model.Order
	for page := 1; len(orders) < exportMaxRows; page++ {
		f.Page = page
		batch, total, err := s.repo.List(ctx, &f)
		if err != nil {
			return nil, fmt.Errorf("list orders for export: %w", err)
		}
		orders = append(orders, batch...)
		if len(batch) < exportPageSize || len(orders) >= total {
			break
		}
	}
	if len(orders) > exportMaxRows {
		orders = orders[:exportMaxRows]
	}

	book, err := buildOrdersWorkbook(orders)
	if err != nil {
		return nil, fmt.Errorf("build orders workbook: %w", err)
	}
	defer book.Close()

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write orders workbook: %w", err)
	}
	return buf, nil
}

func buildOrdersWorkbook(orders []*model.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", last, bold)
	}

	for i, o := range orders {
		row := []interface{}{
			o.ID.String(),
			o.Number,
			o.UserID.String(),
			string(o.Status),
			o.QtyItems(),
			o.Subtotal().InexactFloat64(),
			o.DiscountTotal().InexactFloat64(),
			o.Total.InexactFloat64(),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
