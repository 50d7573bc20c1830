package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// NormalizePhone formata o número em E.164; devolve a entrada quando não é possível interpretá-la
func NormalizePhone(raw, defaultRegion string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	num, err := libphonenumber.Parse(raw, strings.ToUpper(defaultRegion))
	if err != nil {
		return raw
	}

	return libphonenumber.Format(num, libphonenumber.E164)
}

// NormalizeEmail remove espaços e converte para minúsculas
func NormalizeEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}
