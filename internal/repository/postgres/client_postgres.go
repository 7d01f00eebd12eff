package postgres

import (
	"context"
	"database/sql"

	"contabil/internal/model"
	"contabil/internal/repository"
)

// ClientPostgres is a PostgreSQL implementation of repository.ClientRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ClientPostgres struct {
	db *sql.DB
}

// NewClientPostgres creates a new ClientPostgres repository.
func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

const clientColumns = `
	id, user_id, name, email, cpf, cnpj, cpf_cnpj, phone, address, notes, status,
	data_nascimento, codigo_acesso, senha_gov, codigo_regularize, senha_nfse,
	created_at, updated_at
`

func scanClient(row interface{ Scan(...any) error }, c *model.Client) error {
	return row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.CPF,
		&c.CNPJ,
		&c.CPFCNPJ,
		&c.Phone,
		&c.Address,
		&c.Notes,
		&c.Status,
		&c.DataNascimento,
		&c.CodigoAcesso,
		&c.SenhaGov,
		&c.CodigoRegularize,
		&c.SenhaNfse,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// Create inserts a new client row and returns the stored record.
func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO clients (
			user_id, name, email, cpf, cnpj, cpf_cnpj, phone, address, notes, status,
			data_nascimento, codigo_acesso, senha_gov, codigo_regularize, senha_nfse
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + clientColumns
	row := r.db.QueryRowContext(ctx, q,
		c.UserID, c.Name, c.Email, c.CPF, c.CNPJ, c.CPFCNPJ,
		c.Phone, c.Address, c.Notes, c.Status,
		c.DataNascimento, c.CodigoAcesso, c.SenhaGov, c.CodigoRegularize, c.SenhaNfse,
	)
	var out model.Client
	if err := scanClient(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single client by its ID.
func (r *ClientPostgres) FindByID(ctx context.Context, id string) (*model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	var c model.Client
	if err := scanClient(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns a user's clients ordered by name, optionally filtered by a
// case-insensitive search over name, email and stored document.
func (r *ClientPostgres) List(ctx context.Context, userID, search string) ([]model.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1`
	args := []any{userID}
	if search != "" {
		q += ` AND (name ILIKE $2 OR email ILIKE $2 OR cpf_cnpj ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Update rewrites a client row and returns the stored record.
func (r *ClientPostgres) Update(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		UPDATE clients SET
			name = $2, email = $3, cpf = $4, cnpj = $5, cpf_cnpj = $6,
			phone = $7, address = $8, notes = $9, status = $10,
			data_nascimento = $11, codigo_acesso = $12, senha_gov = $13,
			codigo_regularize = $14, senha_nfse = $15, updated_at = now()
		WHERE id = $1
		RETURNING ` + clientColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID, c.Name, c.Email, c.CPF, c.CNPJ, c.CPFCNPJ,
		c.Phone, c.Address, c.Notes, c.Status,
		c.DataNascimento, c.CodigoAcesso, c.SenhaGov, c.CodigoRegularize, c.SenhaNfse,
	)
	var out model.Client
	if err := scanClient(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a client by ID. It does not return an error if the row does not exist.
func (r *ClientPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM clients WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
