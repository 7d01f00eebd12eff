package postgres

import (
	"context"
	"database/sql"

	"contabil/internal/model"
	"contabil/internal/repository"
)

// PeriodPostgres is a PostgreSQL implementation of repository.PeriodRepository.
type PeriodPostgres struct {
	db *sql.DB
}

// NewPeriodPostgres creates a new PeriodPostgres repository.
func NewPeriodPostgres(db *sql.DB) *PeriodPostgres {
	return &PeriodPostgres{db: db}
}

var _ repository.PeriodRepository = (*PeriodPostgres)(nil)

const periodColumns = `
	id, company_id, periodo, situacao, apurado,
	principal, multas, juros, total,
	data_vencimento, data_acolhimento, data_pagamento,
	icms, iss, inss,
	numero_apuracao, numero_das, codigo_barras, url_das, mensagem,
	created_at, updated_at
`

func scanPeriod(row interface{ Scan(...any) error }, p *model.DasPeriod) error {
	return row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.Periodo,
		&p.Situacao,
		&p.Apurado,
		&p.Principal,
		&p.Multas,
		&p.Juros,
		&p.Total,
		&p.DataVencimento,
		&p.DataAcolhimento,
		&p.DataPagamento,
		&p.ICMS,
		&p.ISS,
		&p.INSS,
		&p.NumeroApuracao,
		&p.NumeroDAS,
		&p.CodigoBarras,
		&p.URLDAS,
		&p.Mensagem,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// Upsert writes one period keyed by (company_id, periodo). It is a single
// statement so concurrent synchronizations of the same period cannot produce
// duplicate rows.
func (r *PeriodPostgres) Upsert(ctx context.Context, p *model.DasPeriod) error {
	const q = `
		INSERT INTO das_periods (
			company_id, periodo, situacao, apurado,
			principal, multas, juros, total,
			data_vencimento, data_acolhimento, data_pagamento,
			icms, iss, inss,
			numero_apuracao, numero_das, codigo_barras, url_das, mensagem
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (company_id, periodo) DO UPDATE SET
			situacao         = EXCLUDED.situacao,
			apurado          = EXCLUDED.apurado,
			principal        = EXCLUDED.principal,
			multas           = EXCLUDED.multas,
			juros            = EXCLUDED.juros,
			total            = EXCLUDED.total,
			data_vencimento  = EXCLUDED.data_vencimento,
			data_acolhimento = EXCLUDED.data_acolhimento,
			data_pagamento   = EXCLUDED.data_pagamento,
			icms             = EXCLUDED.icms,
			iss              = EXCLUDED.iss,
			inss             = EXCLUDED.inss,
			numero_apuracao  = EXCLUDED.numero_apuracao,
			numero_das       = EXCLUDED.numero_das,
			codigo_barras    = EXCLUDED.codigo_barras,
			url_das          = EXCLUDED.url_das,
			mensagem         = EXCLUDED.mensagem,
			updated_at       = now()
	`
	_, err := r.db.ExecContext(ctx, q,
		p.CompanyID,
		p.Periodo,
		p.Situacao,
		p.Apurado,
		p.Principal,
		p.Multas,
		p.Juros,
		p.Total,
		p.DataVencimento,
		p.DataAcolhimento,
		p.DataPagamento,
		p.ICMS,
		p.ISS,
		p.INSS,
		p.NumeroApuracao,
		p.NumeroDAS,
		p.CodigoBarras,
		p.URLDAS,
		p.Mensagem,
	)
	return err
}

// FindByCompanyAndPeriodo fetches one period by its natural key.
func (r *PeriodPostgres) FindByCompanyAndPeriodo(ctx context.Context, companyID, periodo string) (*model.DasPeriod, error) {
	const q = `
		SELECT ` + periodColumns + `
		FROM das_periods
		WHERE company_id = $1 AND periodo = $2
	`
	row := r.db.QueryRowContext(ctx, q, companyID, periodo)
	var p model.DasPeriod
	if err := scanPeriod(row, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByCompany returns a company's periods, most recent period key first.
func (r *PeriodPostgres) ListByCompany(ctx context.Context, companyID string) ([]model.DasPeriod, error) {
	const q = `
		SELECT ` + periodColumns + `
		FROM das_periods
		WHERE company_id = $1
		ORDER BY periodo DESC
	`
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DasPeriod, 0)
	for rows.Next() {
		var p model.DasPeriod
		if err := scanPeriod(rows, &p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
