package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is a CNPJ-keyed legal entity whose Simples Nacional filings are
// synchronized from the tax authority. LastSyncAt is bumped after every
// successful synchronization, even one that wrote nothing.
type Company struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	CNPJ             string     `json:"cnpj"`
	RazaoSocial      *string    `json:"razao_social,omitempty"`
	TipoEmpresa      *string    `json:"tipo_empresa,omitempty"`
	Porte            *string    `json:"porte,omitempty"`
	RegimeTributario *string    `json:"regime_tributario,omitempty"`
	CnaePrincipal    *string    `json:"cnae_principal,omitempty"`
	LastSyncAt       *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// DasPeriod is one YYYYMM filing period of a company, written exclusively by
// the synchronizer. (CompanyID, Periodo) is the natural key; there is never
// more than one row per company per period. Unparseable upstream fields are
// stored as null rather than rejected.
type DasPeriod struct {
	ID              string              `json:"id"`
	CompanyID       string              `json:"company_id"`
	Periodo         string              `json:"periodo"`
	Situacao        *string             `json:"situacao,omitempty"`
	Apurado         *string             `json:"apurado,omitempty"`
	Principal       decimal.NullDecimal `json:"principal"`
	Multas          decimal.NullDecimal `json:"multas"`
	Juros           decimal.NullDecimal `json:"juros"`
	Total           decimal.NullDecimal `json:"total"`
	DataVencimento  *time.Time          `json:"data_vencimento,omitempty"`
	DataAcolhimento *time.Time          `json:"data_acolhimento,omitempty"`
	DataPagamento   *time.Time          `json:"data_pagamento,omitempty"`
	ICMS            decimal.NullDecimal `json:"icms"`
	ISS             decimal.NullDecimal `json:"iss"`
	INSS            decimal.NullDecimal `json:"inss"`
	NumeroApuracao  *string             `json:"numero_apuracao,omitempty"`
	NumeroDAS       *string             `json:"numero_das,omitempty"`
	CodigoBarras    *string             `json:"codigo_barras,omitempty"`
	URLDAS          *string             `json:"url_das,omitempty"`
	Mensagem        *string             `json:"mensagem,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
