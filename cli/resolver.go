package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/rensoftworks/slang/lang"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in slang itself.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// The loader looks for a map under the given top-level key and applies its
// entries as flag values. When the key is absent, the top-level document
// entries are used directly. Flag names with hyphens (e.g., "log-level")
// may use underscores in the config file (e.g., "log_level").
//
// Example slang config file:
//
//	config = {
//	  log_level = "debug"
//	  log_format = "json"
//	  log_pretty = true
//	}
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(
	ctx context.Context,
	name string,
) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := lang.ParseReader(ctx, r)
		if err != nil {
			// Unreadable config files never block flag parsing.
			return config{}, nil
		}

		if val, ok := doc.Get(name); ok {
			if val.Kind != lang.KindMap {
				return config{}, nil
			}

			return config(flatten(val.Doc)), nil
		}

		return config(flatten(doc)), nil
	}
}

// config implements [kong.Resolver] for slang configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but slang keys commonly
	// use underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	underscoreName := strings.ReplaceAll(flag.Name, "-", "_")
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten converts a document to the native map representation Kong
// resolvers expect.
func flatten(m *lang.Map) map[string]any {
	result := make(map[string]any, m.Len())

	for key, val := range m.All() {
		native := val.ToNative()

		// Kong requires numbers as strings for parsing
		if num, ok := native.(float64); ok {
			result[key] = strconv.FormatFloat(num, 'f', -1, 64)
		} else {
			result[key] = native
		}
	}

	return result
}
