// Package envvar expands ${VAR} placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${VAR_NAME} placeholders. Bare $VAR references are left
// untouched so paths containing literal dollar signs survive.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Expand replaces ${VAR_NAME} placeholders with their environment variable
// values. Unset variables collapse to an empty string, matching shell
// behavior for unquoted expansion.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]

		return os.Getenv(varName)
	})
}
