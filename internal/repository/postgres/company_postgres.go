package postgres

import (
	"context"
	"database/sql"
	"time"

	"contabil/internal/model"
	"contabil/internal/repository"
)

// CompanyPostgres is a PostgreSQL implementation of repository.CompanyRepository.
type CompanyPostgres struct {
	db *sql.DB
}

// NewCompanyPostgres creates a new CompanyPostgres repository.
func NewCompanyPostgres(db *sql.DB) *CompanyPostgres {
	return &CompanyPostgres{db: db}
}

var _ repository.CompanyRepository = (*CompanyPostgres)(nil)

const companyColumns = `
	id, user_id, cnpj, razao_social, tipo_empresa, porte,
	regime_tributario, cnae_principal, last_sync_at, created_at, updated_at
`

func scanCompany(row interface{ Scan(...any) error }, c *model.Company) error {
	return row.Scan(
		&c.ID,
		&c.UserID,
		&c.CNPJ,
		&c.RazaoSocial,
		&c.TipoEmpresa,
		&c.Porte,
		&c.RegimeTributario,
		&c.CnaePrincipal,
		&c.LastSyncAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// Create inserts a new company row and returns the stored record.
func (r *CompanyPostgres) Create(ctx context.Context, c *model.Company) (*model.Company, error) {
	const q = `
		INSERT INTO companies (user_id, cnpj, razao_social, tipo_empresa, porte, regime_tributario, cnae_principal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + companyColumns
	row := r.db.QueryRowContext(ctx, q,
		c.UserID,
		c.CNPJ,
		c.RazaoSocial,
		c.TipoEmpresa,
		c.Porte,
		c.RegimeTributario,
		c.CnaePrincipal,
	)
	var out model.Company
	if err := scanCompany(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single company by its ID.
func (r *CompanyPostgres) FindByID(ctx context.Context, id string) (*model.Company, error) {
	const q = `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	var c model.Company
	if err := scanCompany(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser returns a user's companies, newest first.
func (r *CompanyPostgres) ListByUser(ctx context.Context, userID string) ([]model.Company, error) {
	const q = `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Company, 0)
	for rows.Next() {
		var c model.Company
		if err := scanCompany(rows, &c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// UpdateLastSync stamps the company's last successful synchronization.
func (r *CompanyPostgres) UpdateLastSync(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE companies SET last_sync_at = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, at)
	return err
}
