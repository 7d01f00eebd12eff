package br

import "errors"

// Package br holds pure helpers for Brazilian tax-document formats.
// Nothing here touches the database or the network.

// DocType classifies a tax identifier by its digit count.
type DocType string

const (
	DocTypeNone DocType = ""
	DocTypeCPF  DocType = "CPF"
	DocTypeCNPJ DocType = "CNPJ"
)

var (
	// ErrDocumentConflict is returned when both a CPF and a CNPJ were supplied.
	ErrDocumentConflict = errors.New("provide either a CPF or a CNPJ, not both")
	// ErrDocumentFormat is returned when the supplied value has neither 11 nor 14 digits.
	ErrDocumentFormat = errors.New("invalid CPF/CNPJ format")
)

// Document is a normalized tax identifier: digits only, classified by length.
type Document struct {
	Value string
	Type  DocType
}

// DigitsOnly strips every non-digit character from s.
func DigitsOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// InferDocType classifies a document by length alone: 11 digits is a CPF,
// 14 a CNPJ. Check digits are deliberately not validated; the stored value
// mirrors whatever the user registered with the tax authority.
func InferDocType(doc string) DocType {
	switch len(DigitsOnly(doc)) {
	case 11:
		return DocTypeCPF
	case 14:
		return DocTypeCNPJ
	}
	return DocTypeNone
}

// Normalize cleans the raw CPF and CNPJ inputs and returns the single
// resulting document. Supplying both values is a conflict; supplying neither,
// or a value of the wrong length, is a format error.
func Normalize(cpfRaw, cnpjRaw string) (Document, error) {
	cpf := DigitsOnly(cpfRaw)
	cnpj := DigitsOnly(cnpjRaw)
	if cpf != "" && cnpj != "" {
		return Document{}, ErrDocumentConflict
	}
	value := cpf
	if value == "" {
		value = cnpj
	}
	typ := InferDocType(value)
	if typ == DocTypeNone {
		return Document{}, ErrDocumentFormat
	}
	return Document{Value: value, Type: typ}, nil
}
