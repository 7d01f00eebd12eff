package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"contabil/internal/model"
	"contabil/internal/repository"
)

// MonthlyServicePostgres is a PostgreSQL implementation of repository.MonthlyServiceRepository.
type MonthlyServicePostgres struct {
	db *sql.DB
}

// NewMonthlyServicePostgres creates a new MonthlyServicePostgres repository.
func NewMonthlyServicePostgres(db *sql.DB) *MonthlyServicePostgres {
	return &MonthlyServicePostgres{db: db}
}

var _ repository.MonthlyServiceRepository = (*MonthlyServicePostgres)(nil)

const monthlyColumns = `id, client_id, tipo_guia, regularizacao, situacao, reference_month, created_at, updated_at`

func scanMonthly(row interface{ Scan(...any) error }, s *model.MonthlyService) error {
	return row.Scan(&s.ID, &s.ClientID, &s.TipoGuia, &s.Regularizacao, &s.Situacao, &s.ReferenceMonth, &s.CreatedAt, &s.UpdatedAt)
}

func (r *MonthlyServicePostgres) Create(ctx context.Context, s *model.MonthlyService) (*model.MonthlyService, error) {
	const q = `
		INSERT INTO monthly_services (client_id, tipo_guia, regularizacao, situacao, reference_month)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + monthlyColumns
	row := r.db.QueryRowContext(ctx, q, s.ClientID, s.TipoGuia, s.Regularizacao, s.Situacao, s.ReferenceMonth)
	var out model.MonthlyService
	if err := scanMonthly(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MonthlyServicePostgres) FindByID(ctx context.Context, id string) (*model.MonthlyService, error) {
	const q = `SELECT ` + monthlyColumns + ` FROM monthly_services WHERE id = $1`
	var s model.MonthlyService
	if err := scanMonthly(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MonthlyServicePostgres) List(ctx context.Context, f repository.FilingFilter) ([]model.MonthlyService, error) {
	q := `SELECT ` + monthlyColumns + ` FROM monthly_services WHERE 1=1`
	var args []any
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		q += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if f.Year != 0 && f.Month != "" {
		args = append(args, fmt.Sprintf("%d-%s", f.Year, f.Month))
		q += fmt.Sprintf(` AND reference_month = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		q += fmt.Sprintf(` AND (tipo_guia ILIKE $%d OR regularizacao ILIKE $%d OR situacao ILIKE $%d)`, n, n, n)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.MonthlyService, 0)
	for rows.Next() {
		var s model.MonthlyService
		if err := scanMonthly(rows, &s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *MonthlyServicePostgres) Update(ctx context.Context, s *model.MonthlyService) (*model.MonthlyService, error) {
	const q = `
		UPDATE monthly_services SET
			tipo_guia = $2, regularizacao = $3, situacao = $4, reference_month = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + monthlyColumns
	row := r.db.QueryRowContext(ctx, q, s.ID, s.TipoGuia, s.Regularizacao, s.Situacao, s.ReferenceMonth)
	var out model.MonthlyService
	if err := scanMonthly(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MonthlyServicePostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM monthly_services WHERE id = $1`, id)
	return err
}

// AnnualServicePostgres is a PostgreSQL implementation of repository.AnnualServiceRepository.
type AnnualServicePostgres struct {
	db *sql.DB
}

// NewAnnualServicePostgres creates a new AnnualServicePostgres repository.
func NewAnnualServicePostgres(db *sql.DB) *AnnualServicePostgres {
	return &AnnualServicePostgres{db: db}
}

var _ repository.AnnualServiceRepository = (*AnnualServicePostgres)(nil)

const annualColumns = `id, client_id, type, observation, year, created_at, updated_at`

func scanAnnual(row interface{ Scan(...any) error }, s *model.AnnualService) error {
	return row.Scan(&s.ID, &s.ClientID, &s.Type, &s.Observation, &s.Year, &s.CreatedAt, &s.UpdatedAt)
}

func (r *AnnualServicePostgres) Create(ctx context.Context, s *model.AnnualService) (*model.AnnualService, error) {
	const q = `
		INSERT INTO annual_services (client_id, type, observation, year)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + annualColumns
	row := r.db.QueryRowContext(ctx, q, s.ClientID, s.Type, s.Observation, s.Year)
	var out model.AnnualService
	if err := scanAnnual(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AnnualServicePostgres) FindByID(ctx context.Context, id string) (*model.AnnualService, error) {
	const q = `SELECT ` + annualColumns + ` FROM annual_services WHERE id = $1`
	var s model.AnnualService
	if err := scanAnnual(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AnnualServicePostgres) List(ctx context.Context, f repository.FilingFilter) ([]model.AnnualService, error) {
	q := `SELECT ` + annualColumns + ` FROM annual_services WHERE 1=1`
	var args []any
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		q += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		q += fmt.Sprintf(` AND year = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		q += fmt.Sprintf(` AND (type ILIKE $%d OR observation ILIKE $%d)`, n, n)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AnnualService, 0)
	for rows.Next() {
		var s model.AnnualService
		if err := scanAnnual(rows, &s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *AnnualServicePostgres) Update(ctx context.Context, s *model.AnnualService) (*model.AnnualService, error) {
	const q = `
		UPDATE annual_services SET type = $2, observation = $3, year = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + annualColumns
	row := r.db.QueryRowContext(ctx, q, s.ID, s.Type, s.Observation, s.Year)
	var out model.AnnualService
	if err := scanAnnual(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AnnualServicePostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM annual_services WHERE id = $1`, id)
	return err
}

// IrpfPostgres is a PostgreSQL implementation of repository.IrpfRepository.
type IrpfPostgres struct {
	db *sql.DB
}

// NewIrpfPostgres creates a new IrpfPostgres repository.
func NewIrpfPostgres(db *sql.DB) *IrpfPostgres {
	return &IrpfPostgres{db: db}
}

var _ repository.IrpfRepository = (*IrpfPostgres)(nil)

const irpfColumns = `id, client_id, sequence_number, name, cpf, year, created_at, updated_at`

func scanIrpf(row interface{ Scan(...any) error }, e *model.IrpfEntry) error {
	return row.Scan(&e.ID, &e.ClientID, &e.SequenceNumber, &e.Name, &e.CPF, &e.Year, &e.CreatedAt, &e.UpdatedAt)
}

func (r *IrpfPostgres) Create(ctx context.Context, e *model.IrpfEntry) (*model.IrpfEntry, error) {
	const q = `
		INSERT INTO irpf_entries (client_id, sequence_number, name, cpf, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + irpfColumns
	row := r.db.QueryRowContext(ctx, q, e.ClientID, e.SequenceNumber, e.Name, e.CPF, e.Year)
	var out model.IrpfEntry
	if err := scanIrpf(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *IrpfPostgres) FindByID(ctx context.Context, id string) (*model.IrpfEntry, error) {
	const q = `SELECT ` + irpfColumns + ` FROM irpf_entries WHERE id = $1`
	var e model.IrpfEntry
	if err := scanIrpf(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *IrpfPostgres) List(ctx context.Context, f repository.FilingFilter) ([]model.IrpfEntry, error) {
	q := `SELECT ` + irpfColumns + ` FROM irpf_entries WHERE 1=1`
	var args []any
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		q += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		q += fmt.Sprintf(` AND year = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		q += fmt.Sprintf(` AND (name ILIKE $%d OR cpf ILIKE $%d)`, n, n)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.IrpfEntry, 0)
	for rows.Next() {
		var e model.IrpfEntry
		if err := scanIrpf(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *IrpfPostgres) Update(ctx context.Context, e *model.IrpfEntry) (*model.IrpfEntry, error) {
	const q = `
		UPDATE irpf_entries SET
			client_id = $2, sequence_number = $3, name = $4, cpf = $5, year = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + irpfColumns
	row := r.db.QueryRowContext(ctx, q, e.ID, e.ClientID, e.SequenceNumber, e.Name, e.CPF, e.Year)
	var out model.IrpfEntry
	if err := scanIrpf(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *IrpfPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM irpf_entries WHERE id = $1`, id)
	return err
}
