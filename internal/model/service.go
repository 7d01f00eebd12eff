package model

import "time"

// MonthlyService is a recurring monthly tax-filing service for a client.
type MonthlyService struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	TipoGuia       *string   `json:"tipo_guia,omitempty"`
	Regularizacao  *string   `json:"regularizacao,omitempty"`
	Situacao       *string   `json:"situacao,omitempty"`
	ReferenceMonth *string   `json:"reference_month,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AnnualService is a yearly filing service (e.g. DASN, DIRPF-adjacent work).
type AnnualService struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Type        *string   `json:"type,omitempty"`
	Observation *string   `json:"observation,omitempty"`
	Year        *int      `json:"year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IrpfEntry is an individual income-tax filing record. It may exist without
// a client link (walk-in filings).
type IrpfEntry struct {
	ID             string    `json:"id"`
	ClientID       *string   `json:"client_id,omitempty"`
	SequenceNumber *int      `json:"sequence_number,omitempty"`
	Name           string    `json:"name"`
	CPF            string    `json:"cpf"`
	Year           *int      `json:"year,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
