package infosimples

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"contabil/internal/config"
)

const (
	defaultBaseURL = "https://api.infosimples.com/api/v2"
	dasPath        = "/consultas/receita-federal/simples-das"
	defaultTimeout = 60 * time.Second
)

// Consulter is the part of the InfoSimples API the synchronizer depends on.
type Consulter interface {
	// ConsultDAS fetches the DAS period snapshot for a CNPJ. Periodo and
	// DataPagamento are optional and forwarded verbatim when set.
	ConsultDAS(ctx context.Context, req DASRequest) (*DASResponse, error)
}

// DASRequest holds the consultation parameters.
type DASRequest struct {
	CNPJ          string
	Periodo       string
	DataPagamento string
}

// DASResponse is the consultation result. Code 200 is the only success code;
// any other value carries an upstream failure described by CodeMessage.
type DASResponse struct {
	Code        int         `json:"code"`
	CodeMessage string      `json:"code_message"`
	Data        []DASResult `json:"data"`
}

// DASResult is one result entry; the API wraps the period map in a
// single-element data array.
type DASResult struct {
	Periodos map[string]PeriodDetail `json:"periodos"`
}

// PeriodDetail is the upstream snapshot of one YYYYMM filing period.
// Monetary and date values arrive as locale-formatted strings, but the API
// has been seen returning bare numbers for amounts: those fields are
// FlexAmount so the number case stays distinguishable, the rest are Flex.
type PeriodDetail struct {
	Situacao        Flex       `json:"situacao"`
	Apurado         Flex       `json:"apurado"`
	Principal       FlexAmount `json:"principal"`
	Multas          FlexAmount `json:"multas"`
	Juros           FlexAmount `json:"juros"`
	Total           FlexAmount `json:"total"`
	DataVencimento  Flex       `json:"data_vencimento"`
	DataAcolhimento Flex       `json:"data_acolhimento"`
	DataPagamento   Flex       `json:"data_pagamento"`
	ICMS            FlexAmount `json:"icms"`
	ISS             FlexAmount `json:"iss"`
	INSS            FlexAmount `json:"inss"`
	NumeroApuracao  Flex       `json:"numero_apuracao"`
	NumeroDAS       Flex       `json:"numero_das"`
	CodigoBarrasDAS Flex       `json:"codigo_barras_das"`
	URLDAS          Flex       `json:"url_das"`
	Mensagem        Flex       `json:"mensagem"`
}

// Periods returns the period map of the first result entry, or nil when the
// response carried no data.
func (r *DASResponse) Periods() map[string]PeriodDetail {
	if len(r.Data) == 0 {
		return nil
	}
	return r.Data[0].Periodos
}

// Client calls the InfoSimples consultation API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

var _ Consulter = (*Client)(nil)

// NewClient builds a Client from configuration. The upstream call has no
// cancellation of its own, so the HTTP client carries a bounded timeout.
func NewClient(cfg config.InfoSimplesConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := defaultTimeout
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      cfg.Token,
	}
}

// ConsultDAS implements Consulter.
func (c *Client) ConsultDAS(ctx context.Context, req DASRequest) (*DASResponse, error) {
	body := map[string]string{
		"token": c.token,
		"cnpj":  req.CNPJ,
	}
	if req.Periodo != "" {
		body["periodo"] = req.Periodo
	}
	if req.DataPagamento != "" {
		body["data_pagamento"] = req.DataPagamento
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+dasPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call consultation service: %w", err)
	}
	defer resp.Body.Close()

	var out DASResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
