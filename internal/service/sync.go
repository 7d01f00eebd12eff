package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"contabil/internal/br"
	"contabil/internal/infosimples"
	"contabil/internal/model"
	"contabil/internal/ratelimit"
	"contabil/internal/repository"
)

var periodoPattern = regexp.MustCompile(`^[0-9]{6}$`)

// SyncInput are the parameters of one synchronization request.
type SyncInput struct {
	// UserID is the requesting principal; it must own the company and it is
	// the rate-limit key.
	UserID    string
	CompanyID string
	// Periodo optionally narrows the consultation to one YYYYMM period.
	Periodo string
	// DataPagamento is forwarded verbatim to the consultation service.
	DataPagamento string
	// Force re-upserts periods that already exist locally.
	Force bool
}

// SyncResult summarizes one synchronization run.
type SyncResult struct {
	// Inserted counts the periods actually written.
	Inserted int `json:"inserted"`
	// Total counts the candidate periods returned by upstream.
	Total int `json:"total"`
}

// SyncService reconciles locally stored filing periods for one company
// against a snapshot fetched from the consultation service.
type SyncService interface {
	Sync(ctx context.Context, in SyncInput) (*SyncResult, error)
}

// SyncMetrics holds the synchronizer's prometheus metrics.
type SyncMetrics struct {
	attempts *prometheus.CounterVec
	upserted prometheus.Counter
}

// NewSyncMetrics registers the synchronizer metrics on the given registry.
func NewSyncMetrics(reg prometheus.Registerer) (*SyncMetrics, error) {
	m := &SyncMetrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "das_sync_attempts_total",
				Help: "Total number of DAS synchronization attempts.",
			},
			[]string{"result"},
		),
		upserted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "das_sync_periods_upserted_total",
				Help: "Total number of DAS periods written by synchronization.",
			},
		),
	}
	if err := reg.Register(m.attempts); err != nil {
		return nil, err
	}
	if err := reg.Register(m.upserted); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *SyncMetrics) attempt(result string) {
	if m != nil {
		m.attempts.WithLabelValues(result).Inc()
	}
}

func (m *SyncMetrics) wrote(n int) {
	if m != nil {
		m.upserted.Add(float64(n))
	}
}

type syncService struct {
	companies repository.CompanyRepository
	periods   repository.PeriodRepository
	limiter   ratelimit.Limiter
	consulter infosimples.Consulter
	metrics   *SyncMetrics
}

// NewSyncService constructs a SyncService. Metrics may be nil.
func NewSyncService(
	companies repository.CompanyRepository,
	periods repository.PeriodRepository,
	limiter ratelimit.Limiter,
	consulter infosimples.Consulter,
	metrics *SyncMetrics,
) SyncService {
	return &syncService{
		companies: companies,
		periods:   periods,
		limiter:   limiter,
		consulter: consulter,
		metrics:   metrics,
	}
}

// Sync runs the synchronization algorithm. Steps before the external call are
// preconditions: they fail fast with no partial state. Per-period upserts are
// independent, so a partial failure can be retried by re-invoking with
// force=false, which only touches the still-missing periods.
func (s *syncService) Sync(ctx context.Context, in SyncInput) (*SyncResult, error) {
	if in.Periodo != "" && !periodoPattern.MatchString(in.Periodo) {
		s.metrics.attempt("invalid")
		return nil, &ValidationError{Message: "periodo must be exactly 6 digits (YYYYMM)"}
	}

	company, err := s.companies.FindByID(ctx, in.CompanyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.attempt("not_found")
			return nil, ErrNotFound
		}
		return nil, err
	}
	if company.UserID != in.UserID {
		s.metrics.attempt("forbidden")
		return nil, ErrForbidden
	}

	// A malformed stored CNPJ must never reach the external service.
	cnpj := br.DigitsOnly(company.CNPJ)
	if br.InferDocType(cnpj) != br.DocTypeCNPJ {
		s.metrics.attempt("invalid")
		return nil, &ValidationError{Message: "company CNPJ is not a valid 14-digit document"}
	}

	if !s.limiter.TryAcquire(in.UserID) {
		s.metrics.attempt("rate_limited")
		return nil, ErrRateLimited
	}

	resp, err := s.consulter.ConsultDAS(ctx, infosimples.DASRequest{
		CNPJ:          cnpj,
		Periodo:       in.Periodo,
		DataPagamento: in.DataPagamento,
	})
	if err != nil {
		s.metrics.attempt("upstream_error")
		return nil, &UpstreamError{Message: fmt.Sprintf("consultation failed: %v", err)}
	}
	if resp.Code != 200 {
		s.metrics.attempt("upstream_error")
		msg := resp.CodeMessage
		if msg == "" {
			msg = fmt.Sprintf("consultation returned code %d", resp.Code)
		}
		return nil, &UpstreamError{Message: msg}
	}

	periods := resp.Periods()
	result := &SyncResult{Total: len(periods)}
	for periodo, detail := range periods {
		if !in.Force {
			_, err := s.periods.FindByCompanyAndPeriodo(ctx, company.ID, periodo)
			if err == nil {
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, err
			}
		}
		if err := s.periods.Upsert(ctx, buildPeriod(company.ID, periodo, detail)); err != nil {
			return nil, err
		}
		result.Inserted++
	}
	s.metrics.wrote(result.Inserted)

	// The sync timestamp moves even when nothing was written; it records the
	// last successful consultation, not the last write.
	if err := s.companies.UpdateLastSync(ctx, company.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	s.metrics.attempt("success")
	return result, nil
}

// buildPeriod maps one upstream period snapshot onto a local record.
// Unparseable monetary and date fields degrade to null, they never abort
// the batch.
func buildPeriod(companyID, periodo string, d infosimples.PeriodDetail) *model.DasPeriod {
	return &model.DasPeriod{
		CompanyID:       companyID,
		Periodo:         periodo,
		Situacao:        optText(d.Situacao),
		Apurado:         optText(d.Apurado),
		Principal:       amount(d.Principal),
		Multas:          amount(d.Multas),
		Juros:           amount(d.Juros),
		Total:           amount(d.Total),
		DataVencimento:  optDate(d.DataVencimento),
		DataAcolhimento: optDate(d.DataAcolhimento),
		DataPagamento:   optDate(d.DataPagamento),
		ICMS:            amount(d.ICMS),
		ISS:             amount(d.ISS),
		INSS:            amount(d.INSS),
		NumeroApuracao:  optText(d.NumeroApuracao),
		NumeroDAS:       optText(d.NumeroDAS),
		CodigoBarras:    optText(d.CodigoBarrasDAS),
		URLDAS:          optText(d.URLDAS),
		Mensagem:        optText(d.Mensagem),
	}
}

// amount converts one upstream monetary token. A JSON number is already a
// plain decimal and is taken as-is; a string goes through the BR-locale
// parser, where "1.234,56" means 1234.56.
func amount(f infosimples.FlexAmount) decimal.NullDecimal {
	if f.Number {
		d, err := decimal.NewFromString(f.Value)
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{Decimal: d, Valid: true}
	}
	return br.ParseCurrency(f.Value)
}

func optText(f infosimples.Flex) *string {
	if f == "" {
		return nil
	}
	s := f.String()
	return &s
}

func optDate(f infosimples.Flex) *time.Time {
	t, ok := br.ParseDate(f.String())
	if !ok {
		return nil
	}
	return &t
}
