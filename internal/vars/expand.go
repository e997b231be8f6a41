package vars

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_.-]+)\}`)

// Lookup resolves one placeholder name.
type Lookup func(ctx context.Context, name string) (string, bool, error)

// StoreLookup resolves placeholder names from a variable store.
func StoreLookup(store Store) Lookup {
	return func(ctx context.Context, name string) (string, bool, error) {
		return store.Get(ctx, name)
	}
}

// EnvLookup resolves placeholder names from the process environment.
func EnvLookup() Lookup {
	return func(_ context.Context, name string) (string, bool, error) {
		value, found := os.LookupEnv(name)
		return value, found, nil
	}
}

// Expand substitutes ${NAME} placeholders in s. Lookups are consulted
// in order and the first hit wins. Substitution is a single pass:
// values are inserted as-is, never re-expanded. Placeholders nobody
// resolves stay verbatim so the platform sees them unchanged.
func Expand(ctx context.Context, s string, lookups ...Lookup) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}

	var firstErr error
	expanded := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		for _, lookup := range lookups {
			value, found, err := lookup(ctx, name)
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("error resolving ${%s}: %w", name, err)
				}
				return match
			}
			if found {
				return value
			}
		}
		return match
	})

	if firstErr != nil {
		return "", firstErr
	}
	return expanded, nil
}
