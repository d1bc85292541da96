package shell

import (
	"fmt"
	"strings"
)

const (
	blockStart = "# >>> awsps >>>"
	blockEnd   = "# <<< awsps <<<"
)

// Hook returns the snippet that syncs AWS_PROFILE from statePath before each
// prompt. AWS_PROFILE is only unset when the hook itself exported it, so a
// manual export survives an empty state file.
func Hook(s Shell, statePath string) string {
	switch s {
	case Zsh:
		return posixSync(statePath) + `
autoload -Uz add-zsh-hook
add-zsh-hook precmd _awsps_sync
_awsps_sync
`
	case Bash:
		return posixSync(statePath) + `
case ";${PROMPT_COMMAND:-};" in
  *";_awsps_sync;"*) ;;
  *) PROMPT_COMMAND="_awsps_sync${PROMPT_COMMAND:+;$PROMPT_COMMAND}" ;;
esac
_awsps_sync
`
	case Fish:
		return fmt.Sprintf(`function _awsps_sync --on-event fish_prompt
    set -l state %s
    if test -s $state
        set -gx AWS_PROFILE (string trim < $state)
        set -g _awsps_exported 1
    else if set -q _awsps_exported
        set -e AWS_PROFILE
        set -e _awsps_exported
    end
end
_awsps_sync
`, doubleQuote(statePath, `\"$`))
	case Nushell:
		return fmt.Sprintf(`$env.config = ($env.config | upsert hooks.pre_prompt (
    ($env.config.hooks.pre_prompt? | default []) | append {||
        let state = %s
        if ($state | path exists) {
            load-env { AWS_PROFILE: (open --raw $state | str trim), AWSPS_EXPORTED: "1" }
        } else if ("AWSPS_EXPORTED" in $env) {
            hide-env --ignore-errors AWS_PROFILE AWSPS_EXPORTED
        }
    }
))
`, doubleQuote(statePath, `\"`))
	case PowerShell:
		return fmt.Sprintf(`function global:_awsps_sync {
    $state = '%s'
    if (Test-Path $state) {
        $env:AWS_PROFILE = (Get-Content -Raw $state).Trim()
        $global:_awsps_exported = $true
    } elseif ($global:_awsps_exported) {
        Remove-Item Env:AWS_PROFILE -ErrorAction SilentlyContinue
        $global:_awsps_exported = $false
    }
}
if (-not $global:_awsps_prompt) { $global:_awsps_prompt = $function:prompt }
function global:prompt { _awsps_sync; & $global:_awsps_prompt }
`, strings.ReplaceAll(statePath, "'", "''"))
	}
	return ""
}

func posixSync(statePath string) string {
	return fmt.Sprintf(`_awsps_sync() {
  local state=%s
  if [ -s "$state" ]; then
    export AWS_PROFILE="$(cat "$state")"
    _awsps_exported=1
  elif [ -n "${_awsps_exported:-}" ]; then
    unset AWS_PROFILE _awsps_exported
  fi
}`, doubleQuote(statePath, "\\\"$`"))
}

// Block wraps the hook for s in the marker lines used to find it again in an
// rc file.
func Block(s Shell, statePath string) string {
	return blockStart + "\n" + Hook(s, statePath) + blockEnd + "\n"
}
