package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"contabil/internal/infosimples"
	infomocks "contabil/internal/infosimples/mocks"
	"contabil/internal/model"
	repomocks "contabil/internal/repository/mocks"
)

type allowAllLimiter struct{}

func (allowAllLimiter) TryAcquire(string) bool { return true }

type denyAllLimiter struct{}

func (denyAllLimiter) TryAcquire(string) bool { return false }

func testCompany() *model.Company {
	return &model.Company{
		ID:     "company-1",
		UserID: "user-1",
		CNPJ:   "11222333000181",
	}
}

func okResponse(periodos map[string]infosimples.PeriodDetail) *infosimples.DASResponse {
	return &infosimples.DASResponse{
		Code: 200,
		Data: []infosimples.DASResult{{Periodos: periodos}},
	}
}

func TestSyncService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts new periods and bumps last sync", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		periods := new(repomocks.MockPeriodRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)
		consulter.On("ConsultDAS", ctx, infosimples.DASRequest{CNPJ: "11222333000181"}).
			Return(okResponse(map[string]infosimples.PeriodDetail{
				"202401": {
					Situacao:       "Devedor",
					Total:          infosimples.FlexAmount{Value: "1.234,56"},
					DataVencimento: "20/02/2024",
				},
			}), nil)
		periods.On("FindByCompanyAndPeriodo", ctx, "company-1", "202401").
			Return(nil, sql.ErrNoRows)
		periods.On("Upsert", ctx, mock.MatchedBy(func(p *model.DasPeriod) bool {
			return p.CompanyID == "company-1" &&
				p.Periodo == "202401" &&
				p.Total.Valid &&
				p.Total.Decimal.StringFixed(2) == "1234.56" &&
				p.DataVencimento != nil &&
				p.DataVencimento.Format("2006-01-02") == "2024-02-20"
		})).Return(nil)
		companies.On("UpdateLastSync", ctx, "company-1", mock.Anything).Return(nil)

		svc := NewSyncService(companies, periods, allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1"})

		assert.NoError(t, err)
		assert.Equal(t, &SyncResult{Inserted: 1, Total: 1}, res)
		companies.AssertExpectations(t)
		periods.AssertExpectations(t)
	})

	t.Run("second run without force skips existing periods", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		periods := new(repomocks.MockPeriodRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)
		consulter.On("ConsultDAS", ctx, mock.Anything).
			Return(okResponse(map[string]infosimples.PeriodDetail{
				"202401": {Situacao: "Liquidado"},
			}), nil)
		periods.On("FindByCompanyAndPeriodo", ctx, "company-1", "202401").
			Return(&model.DasPeriod{ID: "period-1"}, nil)
		companies.On("UpdateLastSync", ctx, "company-1", mock.Anything).Return(nil)

		svc := NewSyncService(companies, periods, allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1"})

		assert.NoError(t, err)
		assert.Equal(t, &SyncResult{Inserted: 0, Total: 1}, res)
		periods.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("force re-upserts existing periods", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		periods := new(repomocks.MockPeriodRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)
		consulter.On("ConsultDAS", ctx, mock.Anything).
			Return(okResponse(map[string]infosimples.PeriodDetail{
				"202401": {Situacao: "Liquidado"},
				"202402": {Situacao: "Devedor"},
			}), nil)
		periods.On("Upsert", ctx, mock.Anything).Return(nil)
		companies.On("UpdateLastSync", ctx, "company-1", mock.Anything).Return(nil)

		svc := NewSyncService(companies, periods, allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1", Force: true})

		assert.NoError(t, err)
		assert.Equal(t, &SyncResult{Inserted: 2, Total: 2}, res)
		periods.AssertNotCalled(t, "FindByCompanyAndPeriodo", mock.Anything, mock.Anything, mock.Anything)
		periods.AssertNumberOfCalls(t, "Upsert", 2)
	})

	t.Run("empty upstream response still bumps last sync", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		periods := new(repomocks.MockPeriodRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)
		consulter.On("ConsultDAS", ctx, mock.Anything).
			Return(&infosimples.DASResponse{Code: 200}, nil)
		companies.On("UpdateLastSync", ctx, "company-1", mock.Anything).Return(nil)

		svc := NewSyncService(companies, periods, allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1"})

		assert.NoError(t, err)
		assert.Equal(t, &SyncResult{Inserted: 0, Total: 0}, res)
		companies.AssertCalled(t, "UpdateLastSync", ctx, "company-1", mock.Anything)
	})

	t.Run("unknown company", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewSyncService(companies, new(repomocks.MockPeriodRepository), allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "missing"})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, res)
		consulter.AssertNotCalled(t, "ConsultDAS", mock.Anything, mock.Anything)
	})

	t.Run("ownership mismatch", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		periods := new(repomocks.MockPeriodRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)

		svc := NewSyncService(companies, periods, allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "intruder", CompanyID: "company-1"})

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Nil(t, res)
		consulter.AssertNotCalled(t, "ConsultDAS", mock.Anything, mock.Anything)
		periods.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("malformed periodo", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		consulter := new(infomocks.MockConsulter)

		svc := NewSyncService(companies, new(repomocks.MockPeriodRepository), allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1", Periodo: "2024-01"})

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, res)
		companies.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("malformed stored cnpj", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		consulter := new(infomocks.MockConsulter)

		bad := testCompany()
		bad.CNPJ = "123"
		companies.On("FindByID", ctx, "company-1").Return(bad, nil)

		svc := NewSyncService(companies, new(repomocks.MockPeriodRepository), allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1"})

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, res)
		consulter.AssertNotCalled(t, "ConsultDAS", mock.Anything, mock.Anything)
	})

	t.Run("rate limited", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)

		svc := NewSyncService(companies, new(repomocks.MockPeriodRepository), denyAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1"})

		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Nil(t, res)
		consulter.AssertNotCalled(t, "ConsultDAS", mock.Anything, mock.Anything)
	})

	t.Run("upstream non-success code writes nothing", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		periods := new(repomocks.MockPeriodRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)
		consulter.On("ConsultDAS", ctx, mock.Anything).
			Return(&infosimples.DASResponse{Code: 612, CodeMessage: "token invalido"}, nil)

		svc := NewSyncService(companies, periods, allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1"})

		var uerr *UpstreamError
		assert.ErrorAs(t, err, &uerr)
		assert.Equal(t, "token invalido", uerr.Message)
		assert.Nil(t, res)
		periods.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		companies.AssertNotCalled(t, "UpdateLastSync", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fractional upstream number is stored as-is", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		periods := new(repomocks.MockPeriodRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)
		consulter.On("ConsultDAS", ctx, mock.Anything).
			Return(okResponse(map[string]infosimples.PeriodDetail{
				"202401": {
					Principal: infosimples.FlexAmount{Value: "10.5", Number: true},
					Total:     infosimples.FlexAmount{Value: "100", Number: true},
				},
			}), nil)
		periods.On("FindByCompanyAndPeriodo", ctx, "company-1", "202401").
			Return(nil, sql.ErrNoRows)
		periods.On("Upsert", ctx, mock.MatchedBy(func(p *model.DasPeriod) bool {
			// 10.5 must not be read as the BR thousands form 105
			return p.Principal.Valid &&
				p.Principal.Decimal.StringFixed(2) == "10.50" &&
				p.Total.Valid &&
				p.Total.Decimal.StringFixed(2) == "100.00"
		})).Return(nil)
		companies.On("UpdateLastSync", ctx, "company-1", mock.Anything).Return(nil)

		svc := NewSyncService(companies, periods, allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1"})

		assert.NoError(t, err)
		assert.Equal(t, &SyncResult{Inserted: 1, Total: 1}, res)
		periods.AssertExpectations(t)
	})

	t.Run("unparseable amount and date degrade to null", func(t *testing.T) {
		companies := new(repomocks.MockCompanyRepository)
		periods := new(repomocks.MockPeriodRepository)
		consulter := new(infomocks.MockConsulter)

		companies.On("FindByID", ctx, "company-1").Return(testCompany(), nil)
		consulter.On("ConsultDAS", ctx, mock.Anything).
			Return(okResponse(map[string]infosimples.PeriodDetail{
				"202401": {
					Total:          infosimples.FlexAmount{Value: "abc"},
					DataVencimento: "2024-02-20",
				},
			}), nil)
		periods.On("FindByCompanyAndPeriodo", ctx, "company-1", "202401").
			Return(nil, sql.ErrNoRows)
		periods.On("Upsert", ctx, mock.MatchedBy(func(p *model.DasPeriod) bool {
			return !p.Total.Valid && p.DataVencimento == nil
		})).Return(nil)
		companies.On("UpdateLastSync", ctx, "company-1", mock.Anything).Return(nil)

		svc := NewSyncService(companies, periods, allowAllLimiter{}, consulter, nil)
		res, err := svc.Sync(ctx, SyncInput{UserID: "user-1", CompanyID: "company-1"})

		assert.NoError(t, err)
		assert.Equal(t, &SyncResult{Inserted: 1, Total: 1}, res)
		periods.AssertExpectations(t)
	})
}
