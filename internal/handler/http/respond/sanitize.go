package respond

import (
	"regexp"
)

var (
	// URL-style DSN credentials
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// keyword/value DSN credentials
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)([^\s&]+)`)
)

// SanitizeError returns the error text with database credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
