package shell

import (
	"fmt"
	"strings"
)

const envVar = "AWS_PROFILE"

// ExportCommand returns the statement that sets AWS_PROFILE to profile.
func ExportCommand(s Shell, profile string) string {
	switch s {
	case Fish:
		return fmt.Sprintf(`set -gx %s %s`, envVar, doubleQuote(profile, `\"$`))
	case Nushell:
		return fmt.Sprintf(`$env.%s = %s`, envVar, doubleQuote(profile, `\"`))
	case PowerShell:
		return fmt.Sprintf(`$env:%s = '%s'`, envVar, strings.ReplaceAll(profile, "'", "''"))
	default:
		return fmt.Sprintf(`export %s=%s`, envVar, doubleQuote(profile, "\\\"$`"))
	}
}

// UnsetCommand returns the statement that removes AWS_PROFILE.
func UnsetCommand(s Shell) string {
	switch s {
	case Fish:
		return "set -e " + envVar
	case Nushell:
		return "hide-env " + envVar
	case PowerShell:
		return "Remove-Item Env:" + envVar + " -ErrorAction SilentlyContinue"
	default:
		return "unset " + envVar
	}
}

// doubleQuote wraps value in double quotes, backslash-escaping every rune in
// special.
func doubleQuote(value, special string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	for _, r := range value {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
