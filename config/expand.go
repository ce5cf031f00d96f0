package config

import (
	"os"
	"regexp"
	"sort"
	"strings"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv expands ${VAR} references in s from the environment.
//
// Semantics:
//   - `${VAR}` is replaced with the value of VAR.
//   - `$$` emits a literal `$` (escape hatch).
//   - A reference to an unset variable expands to the empty string and is
//     reported in missing. Callers surface missing names as warnings so an
//     absent backend setting degrades instead of aborting the load.
func ExpandEnv(s string) (expanded string, missing []string) {
	const dollarSentinel = "\x00SNIPPETD_CONFIG_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	seen := make(map[string]struct{})
	expanded = envVarPattern.ReplaceAllStringFunc(s, func(ref string) string {
		key := ref[2 : len(ref)-1]
		val, ok := os.LookupEnv(key)
		if !ok {
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				missing = append(missing, key)
			}
			return ""
		}
		return val
	})

	sort.Strings(missing)
	expanded = strings.ReplaceAll(expanded, dollarSentinel, "$")
	return expanded, missing
}
