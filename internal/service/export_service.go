package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go-sales-dashboard/internal/model"
	"go-sales-dashboard/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	exportTimeLayout  = "2006-01-02 15:04:05"
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
	utf8ByteOrderMark = "\ufeff"
)

var exportHeader = []string{"Date", "Product", "Quantity", "Total Sales", "Profit"}

type ExportService interface {
	TransactionsCSV(ctx context.Context, w io.Writer, windowDays int) error
	TransactionsXLSX(ctx context.Context, w io.Writer, windowDays int) error
}

type exportService struct {
	txRepo repository.TransactionRepository
	loc    *time.Location
	now    func() time.Time
}

func NewExportService(txRepo repository.TransactionRepository, loc *time.Location) ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &exportService{txRepo: txRepo, loc: loc, now: time.Now}
}

func (s *exportService) load(ctx context.Context, windowDays int) ([]model.TransactionView, error) {
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: window must not be negative, got %d", repository.ErrInvalidInput, windowDays)
	}
	return s.txRepo.FindSince(ctx, s.now().AddDate(0, 0, -windowDays))
}

// TransactionsCSV writes the window as CSV with a UTF-8 BOM so spreadsheets detect
// the encoding.
func (s *exportService) TransactionsCSV(ctx context.Context, w io.Writer, windowDays int) error {
	views, err := s.load(ctx, windowDays)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, utf8ByteOrderMark); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, v := range views {
		record := []string{
			v.TransactionDate.In(s.loc).Format(exportTimeLayout),
			v.ProductName,
			strconv.Itoa(v.Quantity),
			strconv.FormatFloat(v.TotalPrice, 'f', -1, 64),
			strconv.FormatFloat(v.Profit, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TransactionsXLSX writes a workbook with the transactions and a summary sheet.
func (s *exportService) TransactionsXLSX(ctx context.Context, w io.Writer, windowDays int) error {
	views, err := s.load(ctx, windowDays)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(transactionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	var (
		items         int64
		sales, profit decimal.Decimal
	)
	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
		row := []interface{}{
			v.TransactionDate.In(s.loc).Format(exportTimeLayout),
			v.ProductName,
			v.Quantity,
			v.TotalPrice,
			v.Profit,
		}
		if err := f.SetSheetRow(transactionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}

		items += int64(v.Quantity)
		sales = sales.Add(decimal.NewFromFloat(v.TotalPrice))
		profit = profit.Add(decimal.NewFromFloat(v.Profit))
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	average := decimal.Zero
	if len(views) > 0 {
		average = sales.Div(decimal.NewFromInt(int64(len(views))))
	}
	totalSales, _ := sales.Float64()
	totalProfit, _ := profit.Float64()
	avg, _ := average.Round(2).Float64()

	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Total Transactions", len(views)},
		{"Total Items", items},
		{"Total Sales", totalSales},
		{"Total Profit", totalProfit},
		{"Average per Transaction", avg},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
