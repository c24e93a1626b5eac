package service

import (
	"context"
	"fmt"

	"vividexpense-be/internal/entities"
	"vividexpense-be/internal/export"
	"vividexpense-be/internal/repository"
	"vividexpense-be/internal/summary"
)

// ReportService builds monthly summaries and exports from the user's expenses.
type ReportService interface {
	MonthlySummary(ctx context.Context, userID, month string) (*summary.MonthlySummary, error)
	Export(ctx context.Context, userID, month, format string) (*export.Document, error)
	DashboardQRCode(month string) ([]byte, error)
}

type reportService struct {
	repo     repository.ExpenseRepository
	renderer *export.Renderer
}

// NewReportService creates a new report service
func NewReportService(repo repository.ExpenseRepository, renderer *export.Renderer) ReportService {
	return &reportService{repo: repo, renderer: renderer}
}

func (s *reportService) MonthlySummary(ctx context.Context, userID, month string) (*summary.MonthlySummary, error) {
	m, expenses, err := s.monthExpenses(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	return summary.Summarize(m, expenses), nil
}

func (s *reportService) Export(ctx context.Context, userID, month, format string) (*export.Document, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	m, expenses, err := s.monthExpenses(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(f, m, expenses)
}

// DashboardQRCode returns a PNG linking to the month's dashboard page.
// It fails with export.ErrNoDashboard when no frontend URL is configured.
func (s *reportService) DashboardQRCode(month string) ([]byte, error) {
	m, err := summary.ParseMonth(month)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return s.renderer.DashboardQRCode(m)
}

// monthExpenses loads the month's expenses in ascending date order.
func (s *reportService) monthExpenses(ctx context.Context, userID, month string) (summary.Month, []entities.Expense, error) {
	m, err := summary.ParseMonth(month)
	if err != nil {
		return summary.Month{}, nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	start, end := m.Window()
	expenses, err := s.repo.List(ctx, userID, entities.ExpenseFilter{From: &start, Before: &end})
	if err != nil {
		return summary.Month{}, nil, fmt.Errorf("failed to load expenses for %s: %w", m, err)
	}
	return m, expenses, nil
}
