package repository

import (
	"context"

	"contabil/internal/model"
)

// FilingFilter narrows service/filing listings. Zero values mean "no filter".
type FilingFilter struct {
	ClientID string
	Year     int
	Month    string // two-digit month, only meaningful together with Year
	Search   string
}

// MonthlyServiceRepository defines data access for monthly filing services.
type MonthlyServiceRepository interface {
	Create(ctx context.Context, s *model.MonthlyService) (*model.MonthlyService, error)
	FindByID(ctx context.Context, id string) (*model.MonthlyService, error)
	List(ctx context.Context, f FilingFilter) ([]model.MonthlyService, error)
	Update(ctx context.Context, s *model.MonthlyService) (*model.MonthlyService, error)
	Delete(ctx context.Context, id string) error
}

// AnnualServiceRepository defines data access for annual filing services.
type AnnualServiceRepository interface {
	Create(ctx context.Context, s *model.AnnualService) (*model.AnnualService, error)
	FindByID(ctx context.Context, id string) (*model.AnnualService, error)
	List(ctx context.Context, f FilingFilter) ([]model.AnnualService, error)
	Update(ctx context.Context, s *model.AnnualService) (*model.AnnualService, error)
	Delete(ctx context.Context, id string) error
}

// IrpfRepository defines data access for IRPF entries.
type IrpfRepository interface {
	Create(ctx context.Context, e *model.IrpfEntry) (*model.IrpfEntry, error)
	FindByID(ctx context.Context, id string) (*model.IrpfEntry, error)
	List(ctx context.Context, f FilingFilter) ([]model.IrpfEntry, error)
	Update(ctx context.Context, e *model.IrpfEntry) (*model.IrpfEntry, error)
	Delete(ctx context.Context, id string) error
}
