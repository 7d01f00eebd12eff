package model

import "time"

// Client statuses.
const (
	ClientStatusActive   = "ACTIVE"
	ClientStatusInactive = "INACTIVE"
)

// Client is a bookkeeping customer. The tax document is stored twice: in the
// typed cpf/cnpj column (at most one non-empty) and in the legacy cpf_cnpj
// column kept for search. All three hold digits only, never punctuation.
type Client struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	CPF              *string   `json:"cpf,omitempty"`
	CNPJ             *string   `json:"cnpj,omitempty"`
	CPFCNPJ          string    `json:"cpf_cnpj"`
	Phone            *string   `json:"phone,omitempty"`
	Address          *string   `json:"address,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	Status           string    `json:"status"`
	DataNascimento   *string   `json:"data_nascimento,omitempty"`
	CodigoAcesso     *string   `json:"codigo_acesso,omitempty"`
	SenhaGov         *string   `json:"senha_gov,omitempty"`
	CodigoRegularize *string   `json:"codigo_regularize,omitempty"`
	SenhaNfse        *string   `json:"senha_nfse,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
