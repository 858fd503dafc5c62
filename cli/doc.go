// Package cli contains the command line interface for slang.
//
// # Usage
//
// The CLI reads slang documents from files or stdin and reformats,
// validates, or evaluates them:
//
//	slang fmt config.slang
//	slang fmt json - < config.slang
//	slang check a.slang b.slang
//	slang eval 'server.port + 1' -f config.slang
//	slang repl -f config.slang
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads
// a config file written in slang itself and converts the entries of its
// top-level "config" map to Kong flag values. Command-line flags override
// config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/slang/pprof)
package cli
