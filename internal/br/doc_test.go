package br

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain digits", "12345678900", "12345678900"},
		{"cpf punctuation", "123.456.789-00", "12345678900"},
		{"cnpj punctuation", "12.345.678/0001-90", "12345678000190"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"letters mixed in", "a1b2c3", "123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DigitsOnly(tt.input))
		})
	}
}

func TestDigitsOnly_Idempotent(t *testing.T) {
	inputs := []string{"", "123.456.789-00", "12.345.678/0001-90", "abc", "  9 9 ", "12345678900"}
	for _, in := range inputs {
		once := DigitsOnly(in)
		assert.Equal(t, once, DigitsOnly(once), "input %q", in)
	}
}

func TestInferDocType(t *testing.T) {
	assert.Equal(t, DocTypeCPF, InferDocType("12345678900"))
	assert.Equal(t, DocTypeCPF, InferDocType("123.456.789-00"))
	assert.Equal(t, DocTypeCNPJ, InferDocType("12345678000190"))
	assert.Equal(t, DocTypeNone, InferDocType(""))
	assert.Equal(t, DocTypeNone, InferDocType("123"))
	assert.Equal(t, DocTypeNone, InferDocType("123456789012345"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		cpf       string
		cnpj      string
		want      Document
		wantErr   error
	}{
		{
			name: "cpf with punctuation",
			cpf:  "123.456.789-00",
			want: Document{Value: "12345678900", Type: DocTypeCPF},
		},
		{
			name: "cnpj with punctuation",
			cnpj: "12.345.678/0001-90",
			want: Document{Value: "12345678000190", Type: DocTypeCNPJ},
		},
		{
			name:    "both supplied",
			cpf:     "123",
			cnpj:    "456",
			wantErr: ErrDocumentConflict,
		},
		{
			name:    "cpf wrong length",
			cpf:     "1",
			wantErr: ErrDocumentFormat,
		},
		{
			name:    "cnpj wrong length",
			cnpj:    "2",
			wantErr: ErrDocumentFormat,
		},
		{
			name:    "both empty",
			wantErr: ErrDocumentFormat,
		},
		{
			name:    "whitespace only",
			cpf:     "   ",
			cnpj:    "\t",
			wantErr: ErrDocumentFormat,
		},
		{
			name: "punctuation-only cnpj does not conflict with cpf",
			cpf:  "123.456.789-00",
			cnpj: "../-",
			want: Document{Value: "12345678900", Type: DocTypeCPF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.cpf, tt.cnpj)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
