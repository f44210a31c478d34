package entity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf16"
)

// TaxIDLength is the number of digits in a canonical CNPJ.
const TaxIDLength = 14

// minNameLength is counted in UTF-16 code units, so a character outside the BMP counts twice.
const minNameLength = 3

// Validation messages, reported in field order: name, tax ID, email.
const (
	MsgInvalidName  = "invalid name."
	MsgInvalidTaxID = "invalid tax ID (14 digits)."
	MsgInvalidEmail = "invalid email."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Foundation represents a registered organization ("fundação").
// ID is zero until the record has been persisted.
type Foundation struct {
	ID                    int64
	Name                  string
	TaxID                 string
	Email                 string
	Phone                 string
	AffiliatedInstitution string
	CreatedAt             *time.Time
	UpdatedAt             *time.Time
}

// Validate checks the foundation fields in isolation and returns one message per
// failing field. An empty result means the record is valid.
func (f *Foundation) Validate() []string {
	var errs []string
	if nameLength(f.Name) < minNameLength {
		errs = append(errs, MsgInvalidName)
	}
	if len(NormalizeTaxID(f.TaxID)) != TaxIDLength {
		errs = append(errs, MsgInvalidTaxID)
	}
	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		errs = append(errs, MsgInvalidEmail)
	}
	return errs
}

// NormalizeTaxID strips every character that is not an ASCII digit.
//
//	NormalizeTaxID("12.345.678/0001-99") // "12345678000199"
func NormalizeTaxID(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func nameLength(name string) int {
	n := 0
	for _, r := range strings.TrimSpace(name) {
		n += utf16.RuneLen(r)
	}
	return n
}
