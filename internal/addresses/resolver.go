// Package addresses resolves the list of token addresses for a run.
//
// Sources are consulted in priority order: an explicit override, the
// recognized environment variables, a scan of the local settings file, and
// finally a single built-in fallback address.
package addresses

import (
	"os"
	"regexp"
	"strings"
)

// DefaultAddress is queried when no other source yields anything.
const DefaultAddress = "FUAfBo2jgks6gB4Z4LfZkqSZgzNucisEHqnNebaRxM1P"

// envKeys are the recognized address-list variables, in priority order.
var envKeys = []string{"ADDRESSES", "TOKENS", "TOKENS_LIST"}

var (
	splitPattern  = regexp.MustCompile(`[,\n]+`)
	quotedPattern = regexp.MustCompile(`"([^"]{50,})"`)
)

// keyLinePattern matches `KEY = value` at the start of a line,
// case-insensitively.
func keyLinePattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^` + key + `\s*=\s*(.+)$`)
}

// splitList splits a raw value on commas and newlines, trimming whitespace
// and dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, p := range splitPattern.Split(raw, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripQuotes removes surrounding single or double quotes.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, `"'`)
	return strings.TrimRight(s, `"'`)
}

// ExtractFromText scans free-form settings text for an address list.
// Recognized `KEY = value` lines win; otherwise any double-quoted string of
// at least 50 characters is treated as a comma-separated list. Returns nil
// when neither is found.
func ExtractFromText(text string) []string {
	for _, key := range envKeys {
		if m := keyLinePattern(key).FindStringSubmatch(text); m != nil {
			val := stripQuotes(m[1])
			if parts := splitList(val); len(parts) > 0 {
				return parts
			}
		}
	}
	if m := quotedPattern.FindStringSubmatch(text); m != nil {
		var out []string
		for _, p := range strings.Split(m[1], ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// Resolve produces the ordered address list for a run.
//
// A non-empty override short-circuits every other source. Entries are
// trimmed and empties discarded; the returned list may be empty only if the
// override itself was blank, since the fallback address backs all other
// sources.
func Resolve(override, settingsFile string) []string {
	if override != "" {
		return clean([]string{override})
	}
	return clean(load(settingsFile))
}

func load(settingsFile string) []string {
	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			if parts := splitList(stripQuotes(v)); len(parts) > 0 {
				return parts
			}
		}
	}
	if settingsFile != "" {
		if text, err := os.ReadFile(settingsFile); err == nil {
			if parts := ExtractFromText(string(text)); len(parts) > 0 {
				return parts
			}
		}
	}
	return []string{DefaultAddress}
}

func clean(list []string) []string {
	var out []string
	for _, a := range list {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
