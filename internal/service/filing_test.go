package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"contabil/internal/model"
	"contabil/internal/repository"
	repomocks "contabil/internal/repository/mocks"
)

func newFilingService() (FilingService, *repomocks.MockMonthlyServiceRepository, *repomocks.MockAnnualServiceRepository, *repomocks.MockIrpfRepository) {
	monthly := new(repomocks.MockMonthlyServiceRepository)
	annual := new(repomocks.MockAnnualServiceRepository)
	irpf := new(repomocks.MockIrpfRepository)
	return NewFilingService(monthly, annual, irpf), monthly, annual, irpf
}

func TestFilingService_CreateMonthly(t *testing.T) {
	ctx := context.Background()
	ref := "2024-02"
	badRef := "02/2024"

	tests := []struct {
		name    string
		in      *model.MonthlyService
		wantErr string
	}{
		{
			name: "valid",
			in:   &model.MonthlyService{ClientID: "cl-1", ReferenceMonth: &ref},
		},
		{
			name: "reference month is optional",
			in:   &model.MonthlyService{ClientID: "cl-1"},
		},
		{
			name:    "missing client",
			in:      &model.MonthlyService{ReferenceMonth: &ref},
			wantErr: "client_id is required",
		},
		{
			name:    "malformed reference month",
			in:      &model.MonthlyService{ClientID: "cl-1", ReferenceMonth: &badRef},
			wantErr: "reference_month must be YYYY-MM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, monthly, _, _ := newFilingService()
			if tt.wantErr == "" {
				monthly.On("Create", ctx, tt.in).Return(tt.in, nil)
			}

			_, err := svc.CreateMonthly(ctx, tt.in)
			if tt.wantErr != "" {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErr, verr.Message)
				monthly.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			monthly.AssertExpectations(t)
		})
	}
}

func TestFilingService_ListMonthlyPassesFilter(t *testing.T) {
	ctx := context.Background()
	svc, monthly, _, _ := newFilingService()

	monthly.On("List", ctx, repository.FilingFilter{
		ClientID: "cl-1",
		Year:     2024,
		Month:    "02",
		Search:   "das",
	}).Return([]model.MonthlyService{{ID: "m-1"}}, nil)

	out, err := svc.ListMonthly(ctx, FilingQuery{ClientID: "cl-1", Year: 2024, Month: "02", Search: "das"})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	monthly.AssertExpectations(t)
}

func TestFilingService_UpdateAnnualNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, annual, _ := newFilingService()

	in := &model.AnnualService{ID: "a-1", ClientID: "cl-1"}
	annual.On("Update", ctx, in).Return(nil, sql.ErrNoRows)

	_, err := svc.UpdateAnnual(ctx, in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilingService_DeleteAnnual(t *testing.T) {
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		svc, _, annual, _ := newFilingService()
		annual.On("FindByID", ctx, "a-1").Return(&model.AnnualService{ID: "a-1"}, nil)
		annual.On("Delete", ctx, "a-1").Return(nil)

		assert.NoError(t, svc.DeleteAnnual(ctx, "a-1"))
		annual.AssertExpectations(t)
	})

	t.Run("missing row", func(t *testing.T) {
		svc, _, annual, _ := newFilingService()
		annual.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.DeleteAnnual(ctx, "nope"), ErrNotFound)
		annual.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestFilingService_CreateIrpf(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      *model.IrpfEntry
		wantCPF string
		wantErr string
	}{
		{
			name:    "punctuated cpf is cleaned",
			in:      &model.IrpfEntry{Name: "  Ana Souza ", CPF: "123.456.789-00"},
			wantCPF: "12345678900",
		},
		{
			name:    "missing name",
			in:      &model.IrpfEntry{Name: "   ", CPF: "12345678900"},
			wantErr: "name is required",
		},
		{
			name:    "cnpj-length cpf rejected",
			in:      &model.IrpfEntry{Name: "Ana", CPF: "11222333000181"},
			wantErr: "cpf must be an 11-digit document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, irpf := newFilingService()
			if tt.wantErr == "" {
				irpf.On("Create", ctx, mock.MatchedBy(func(e *model.IrpfEntry) bool {
					return e.CPF == tt.wantCPF && e.Name == "Ana Souza"
				})).Return(tt.in, nil)
			}

			_, err := svc.CreateIrpf(ctx, tt.in)
			if tt.wantErr != "" {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErr, verr.Message)
				return
			}
			assert.NoError(t, err)
			irpf.AssertExpectations(t)
		})
	}
}
