package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"contabil/internal/br"
	"contabil/internal/model"
	"contabil/internal/repository"
)

// CompanyInput are the caller-supplied fields of a company record.
type CompanyInput struct {
	CNPJ             string  `json:"cnpj"`
	RazaoSocial      *string `json:"razao_social"`
	TipoEmpresa      *string `json:"tipo_empresa"`
	Porte            *string `json:"porte"`
	RegimeTributario *string `json:"regime_tributario"`
	CnaePrincipal    *string `json:"cnae_principal"`
}

// CompanyService handles companies and their synchronized filing periods.
type CompanyService interface {
	Create(ctx context.Context, userID string, in CompanyInput) (*model.Company, error)
	Get(ctx context.Context, userID, id string) (*model.Company, error)
	List(ctx context.Context, userID string) ([]model.Company, error)
	// Periods lists a company's synchronized filing periods, newest first.
	Periods(ctx context.Context, userID, id string) ([]model.DasPeriod, error)
}

type companyService struct {
	companies repository.CompanyRepository
	periods   repository.PeriodRepository
}

// NewCompanyService constructs a CompanyService.
func NewCompanyService(companies repository.CompanyRepository, periods repository.PeriodRepository) CompanyService {
	return &companyService{companies: companies, periods: periods}
}

func (s *companyService) Create(ctx context.Context, userID string, in CompanyInput) (*model.Company, error) {
	cnpj := br.DigitsOnly(in.CNPJ)
	if br.InferDocType(cnpj) != br.DocTypeCNPJ {
		return nil, &ValidationError{Message: "cnpj must be a 14-digit document"}
	}

	c := &model.Company{
		UserID:           userID,
		CNPJ:             cnpj,
		RazaoSocial:      trimOpt(in.RazaoSocial),
		TipoEmpresa:      trimOpt(in.TipoEmpresa),
		Porte:            trimOpt(in.Porte),
		RegimeTributario: trimOpt(in.RegimeTributario),
		CnaePrincipal:    trimOpt(in.CnaePrincipal),
	}
	return s.companies.Create(ctx, c)
}

func (s *companyService) Get(ctx context.Context, userID, id string) (*model.Company, error) {
	return s.owned(ctx, userID, id)
}

func (s *companyService) List(ctx context.Context, userID string) ([]model.Company, error) {
	return s.companies.ListByUser(ctx, userID)
}

func (s *companyService) Periods(ctx context.Context, userID, id string) ([]model.DasPeriod, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.periods.ListByCompany(ctx, id)
}

func (s *companyService) owned(ctx context.Context, userID, id string) (*model.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrForbidden
	}
	return c, nil
}

func trimOpt(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
