package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"contabil/internal/br"
	"contabil/internal/model"
	"contabil/internal/repository"
)

// ClientInput are the caller-supplied fields of a client record. CPF and CNPJ
// arrive raw, possibly punctuated; at most one of them may be set.
type ClientInput struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	CPF              string  `json:"cpf"`
	CNPJ             string  `json:"cnpj"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	Notes            *string `json:"notes"`
	Status           string  `json:"status"`
	DataNascimento   *string `json:"data_nascimento"`
	CodigoAcesso     *string `json:"codigo_acesso"`
	SenhaGov         *string `json:"senha_gov"`
	CodigoRegularize *string `json:"codigo_regularize"`
	SenhaNfse        *string `json:"senha_nfse"`
}

// ClientService handles client records scoped to their owning user.
type ClientService interface {
	Create(ctx context.Context, userID string, in ClientInput) (*model.Client, error)
	Get(ctx context.Context, userID, id string) (*model.Client, error)
	List(ctx context.Context, userID, search string) ([]model.Client, error)
	Update(ctx context.Context, userID, id string, in ClientInput) (*model.Client, error)
	Delete(ctx context.Context, userID, id string) error
}

type clientService struct {
	repo repository.ClientRepository
}

// NewClientService constructs a ClientService.
func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

// apply validates the input and writes it onto a client record. The tax
// document is normalized on every create and update; punctuation never
// reaches storage.
func apply(c *model.Client, in ClientInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return &ValidationError{Message: "name is required"}
	}

	// Every client carries exactly one tax document.
	doc, err := br.Normalize(in.CPF, in.CNPJ)
	switch {
	case err == nil:
	case errors.Is(err, br.ErrDocumentConflict):
		return &ValidationError{Message: "supply either a CPF or a CNPJ, not both"}
	case br.DigitsOnly(in.CPF) == "" && br.DigitsOnly(in.CNPJ) == "":
		return &ValidationError{Message: "a CPF or CNPJ is required"}
	default:
		return &ValidationError{Message: "tax document must be an 11-digit CPF or a 14-digit CNPJ"}
	}

	status := in.Status
	if status == "" {
		status = model.ClientStatusActive
	}
	if status != model.ClientStatusActive && status != model.ClientStatusInactive {
		return &ValidationError{Message: "status must be active or inactive"}
	}

	c.Name = name
	c.Email = strings.TrimSpace(in.Email)
	c.Status = status
	c.Phone = in.Phone
	c.Address = in.Address
	c.Notes = in.Notes
	c.CodigoAcesso = in.CodigoAcesso
	c.SenhaGov = in.SenhaGov
	c.CodigoRegularize = in.CodigoRegularize
	c.SenhaNfse = in.SenhaNfse

	c.CPF, c.CNPJ, c.CPFCNPJ = nil, nil, ""
	switch doc.Type {
	case br.DocTypeCPF:
		v := doc.Value
		c.CPF, c.CPFCNPJ = &v, v
	case br.DocTypeCNPJ:
		v := doc.Value
		c.CNPJ, c.CPFCNPJ = &v, v
	}

	c.DataNascimento = nil
	if in.DataNascimento != nil && *in.DataNascimento != "" {
		if _, ok := br.ParseDate(*in.DataNascimento); !ok {
			return &ValidationError{Message: "data_nascimento must be a valid DD/MM/YYYY date"}
		}
		c.DataNascimento = in.DataNascimento
	}
	return nil
}

func (s *clientService) Create(ctx context.Context, userID string, in ClientInput) (*model.Client, error) {
	c := &model.Client{UserID: userID}
	if err := apply(c, in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *clientService) Get(ctx context.Context, userID, id string) (*model.Client, error) {
	return s.owned(ctx, userID, id)
}

func (s *clientService) List(ctx context.Context, userID, search string) ([]model.Client, error) {
	return s.repo.List(ctx, userID, search)
}

func (s *clientService) Update(ctx context.Context, userID, id string, in ClientInput) (*model.Client, error) {
	c, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(c, in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, c)
}

func (s *clientService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// owned resolves a client and checks the caller owns it.
func (s *clientService) owned(ctx context.Context, userID, id string) (*model.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrForbidden
	}
	return c, nil
}
