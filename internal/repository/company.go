package repository

import (
	"context"
	"time"

	"contabil/internal/model"
)

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	// Create inserts a new company and returns the stored row.
	Create(ctx context.Context, c *model.Company) (*model.Company, error)

	// FindByID returns a company by ID.
	FindByID(ctx context.Context, id string) (*model.Company, error)

	// ListByUser returns the companies owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Company, error)

	// UpdateLastSync sets the last-synchronized timestamp.
	UpdateLastSync(ctx context.Context, id string, at time.Time) error
}

// PeriodRepository defines data access for DAS filing periods.
type PeriodRepository interface {
	// Upsert writes a period by its natural key (company_id, periodo) in a
	// single statement. Callers must never blind-insert on this key.
	Upsert(ctx context.Context, p *model.DasPeriod) error

	// FindByCompanyAndPeriodo returns one period row or sql.ErrNoRows.
	FindByCompanyAndPeriodo(ctx context.Context, companyID, periodo string) (*model.DasPeriod, error)

	// ListByCompany returns all periods of a company, newest period first.
	ListByCompany(ctx context.Context, companyID string) ([]model.DasPeriod, error)
}
