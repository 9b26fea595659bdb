// Package errs defines the error shapes the API returns to clients.
//
// Services and repositories stay transport-agnostic: they return plain
// errors, optionally wrapping the sentinels declared here. The global
// error handler is the only place that turns those into an HTTPError
// with a status code.
package errs

import "errors"

// ErrNotFound marks a missing resource or an empty collection.
// Repositories wrap it with fmt.Errorf("...: %w", errs.ErrNotFound).
var ErrNotFound = errors.New("resource not found")

const defaultLocale = "en"

// serverErrorMessages holds the only text a client ever sees for a 5xx.
var serverErrorMessages = map[string]string{
	"en": "Server error occurred",
	"ko": "서버 오류 발생",
}

// ServerErrorMessage returns the fixed, user-safe 500 message for locale,
// falling back to English for unknown locales.
func ServerErrorMessage(locale string) string {
	if msg, ok := serverErrorMessages[locale]; ok {
		return msg
	}
	return serverErrorMessages[defaultLocale]
}

// SupportedLocales lists the locales ServerErrorMessage knows about.
func SupportedLocales() []string {
	return []string{"en", "ko"}
}
