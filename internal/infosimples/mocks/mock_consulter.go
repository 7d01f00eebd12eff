package mocks

import (
	"context"

	"contabil/internal/infosimples"

	"github.com/stretchr/testify/mock"
)

type MockConsulter struct {
	mock.Mock
}

func (m *MockConsulter) ConsultDAS(ctx context.Context, req infosimples.DASRequest) (*infosimples.DASResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infosimples.DASResponse), args.Error(1)
}
