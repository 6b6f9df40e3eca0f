package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"go-sales-dashboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExport(s *testStore, now time.Time) ExportService {
	svc := NewExportService(s.txns, time.UTC).(*exportService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestExportService_TransactionsCSV(t *testing.T) {
	store := setupTestStore(t)
	p := store.addProduct(t, "Mouse, wireless", 850000, 650000, 50)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store.addSale(t, p.ID, 2, 1700000, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	store.addSale(t, p.ID, 1, 850000, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, newExport(store, now).TransactionsCSV(ctx, &buf, 7))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Product", "Quantity", "Total Sales", "Profit"},
		{"2026-03-14 09:30:00", "Mouse, wireless", "2", "1700000", "425000"},
	}, records)
}

func TestExportService_TransactionsXLSX(t *testing.T) {
	store := setupTestStore(t)
	p := store.addProduct(t, "SSD", 1500000, 1100000, 35)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	store.addSale(t, p.ID, 1, 1500000, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	store.addSale(t, p.ID, 3, 4500000, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, newExport(store, now).TransactionsXLSX(ctx, &buf, 7))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Product", "Quantity", "Total Sales", "Profit"}, rows[0])
	assert.Equal(t, "2026-03-15 10:00:00", rows[1][0])
	assert.Equal(t, "SSD", rows[1][1])
	assert.Equal(t, "3", rows[1][2])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 6)
	assert.Equal(t, []string{"Total Transactions", "2"}, summary[1])
	assert.Equal(t, []string{"Total Items", "4"}, summary[2])
	assert.Equal(t, []string{"Total Sales", "6000000"}, summary[3])
	assert.Equal(t, []string{"Average per Transaction", "3000000"}, summary[5])
}

func TestExportService_NegativeWindow(t *testing.T) {
	svc := newExport(setupTestStore(t), time.Now())

	var buf bytes.Buffer
	assert.ErrorIs(t, svc.TransactionsCSV(ctx, &buf, -1), repository.ErrInvalidInput)
	assert.ErrorIs(t, svc.TransactionsXLSX(ctx, &buf, -1), repository.ErrInvalidInput)
	assert.Zero(t, buf.Len())
}
