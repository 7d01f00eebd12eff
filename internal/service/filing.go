package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"contabil/internal/br"
	"contabil/internal/model"
	"contabil/internal/repository"
)

var referenceMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// FilingQuery narrows filing listings.
type FilingQuery struct {
	ClientID string
	Year     int
	Month    string
	Search   string
}

// FilingService handles the recurring filing records: monthly services,
// annual services and IRPF entries. Listings are not tenant-scoped; filings
// are shared office-wide, matching how the back office is operated.
type FilingService interface {
	CreateMonthly(ctx context.Context, s *model.MonthlyService) (*model.MonthlyService, error)
	ListMonthly(ctx context.Context, q FilingQuery) ([]model.MonthlyService, error)
	UpdateMonthly(ctx context.Context, s *model.MonthlyService) (*model.MonthlyService, error)
	DeleteMonthly(ctx context.Context, id string) error

	CreateAnnual(ctx context.Context, s *model.AnnualService) (*model.AnnualService, error)
	ListAnnual(ctx context.Context, q FilingQuery) ([]model.AnnualService, error)
	UpdateAnnual(ctx context.Context, s *model.AnnualService) (*model.AnnualService, error)
	DeleteAnnual(ctx context.Context, id string) error

	CreateIrpf(ctx context.Context, e *model.IrpfEntry) (*model.IrpfEntry, error)
	ListIrpf(ctx context.Context, q FilingQuery) ([]model.IrpfEntry, error)
	UpdateIrpf(ctx context.Context, e *model.IrpfEntry) (*model.IrpfEntry, error)
	DeleteIrpf(ctx context.Context, id string) error
}

type filingService struct {
	monthly repository.MonthlyServiceRepository
	annual  repository.AnnualServiceRepository
	irpf    repository.IrpfRepository
}

// NewFilingService constructs a FilingService.
func NewFilingService(
	monthly repository.MonthlyServiceRepository,
	annual repository.AnnualServiceRepository,
	irpf repository.IrpfRepository,
) FilingService {
	return &filingService{monthly: monthly, annual: annual, irpf: irpf}
}

func filterOf(q FilingQuery) repository.FilingFilter {
	return repository.FilingFilter{
		ClientID: q.ClientID,
		Year:     q.Year,
		Month:    q.Month,
		Search:   q.Search,
	}
}

func validateMonthly(s *model.MonthlyService) error {
	if s.ClientID == "" {
		return &ValidationError{Message: "client_id is required"}
	}
	if s.ReferenceMonth != nil && !referenceMonthPattern.MatchString(*s.ReferenceMonth) {
		return &ValidationError{Message: "reference_month must be YYYY-MM"}
	}
	return nil
}

func (f *filingService) CreateMonthly(ctx context.Context, s *model.MonthlyService) (*model.MonthlyService, error) {
	if err := validateMonthly(s); err != nil {
		return nil, err
	}
	return f.monthly.Create(ctx, s)
}

func (f *filingService) ListMonthly(ctx context.Context, q FilingQuery) ([]model.MonthlyService, error) {
	return f.monthly.List(ctx, filterOf(q))
}

func (f *filingService) UpdateMonthly(ctx context.Context, s *model.MonthlyService) (*model.MonthlyService, error) {
	if err := validateMonthly(s); err != nil {
		return nil, err
	}
	out, err := f.monthly.Update(ctx, s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (f *filingService) DeleteMonthly(ctx context.Context, id string) error {
	if _, err := f.monthly.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return f.monthly.Delete(ctx, id)
}

func (f *filingService) CreateAnnual(ctx context.Context, s *model.AnnualService) (*model.AnnualService, error) {
	if s.ClientID == "" {
		return nil, &ValidationError{Message: "client_id is required"}
	}
	return f.annual.Create(ctx, s)
}

func (f *filingService) ListAnnual(ctx context.Context, q FilingQuery) ([]model.AnnualService, error) {
	return f.annual.List(ctx, filterOf(q))
}

func (f *filingService) UpdateAnnual(ctx context.Context, s *model.AnnualService) (*model.AnnualService, error) {
	out, err := f.annual.Update(ctx, s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (f *filingService) DeleteAnnual(ctx context.Context, id string) error {
	if _, err := f.annual.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return f.annual.Delete(ctx, id)
}

func validateIrpf(e *model.IrpfEntry) error {
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Message: "name is required"}
	}
	cpf := br.DigitsOnly(e.CPF)
	if br.InferDocType(cpf) != br.DocTypeCPF {
		return &ValidationError{Message: "cpf must be an 11-digit document"}
	}
	e.Name = strings.TrimSpace(e.Name)
	e.CPF = cpf
	return nil
}

func (f *filingService) CreateIrpf(ctx context.Context, e *model.IrpfEntry) (*model.IrpfEntry, error) {
	if err := validateIrpf(e); err != nil {
		return nil, err
	}
	return f.irpf.Create(ctx, e)
}

func (f *filingService) ListIrpf(ctx context.Context, q FilingQuery) ([]model.IrpfEntry, error) {
	return f.irpf.List(ctx, filterOf(q))
}

func (f *filingService) UpdateIrpf(ctx context.Context, e *model.IrpfEntry) (*model.IrpfEntry, error) {
	if err := validateIrpf(e); err != nil {
		return nil, err
	}
	out, err := f.irpf.Update(ctx, e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (f *filingService) DeleteIrpf(ctx context.Context, id string) error {
	if _, err := f.irpf.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return f.irpf.Delete(ctx, id)
}
