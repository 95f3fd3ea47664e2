// Package flagx helps several configuration layers share one command line.
// Each layer picks out the flags it owns and parses them with its own
// flag.FlagSet, so a flag meant for another layer never aborts parsing.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps the arguments in args that belong to one of the named
// flags. Names are given without dashes; "-x", "--x", "-x=v" and "--x=v"
// all match "x". A separate value is kept with its flag unless it starts
// with a dash. Order is preserved and the result is never nil.
func FilterArgs(args []string, names ...string) []string {
	owned := make(map[string]bool, len(names))
	for _, n := range names {
		owned[strings.TrimLeft(n, "-")] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, hasValue, ok := flagName(args[i])
		if !ok || !owned[name] {
			continue
		}
		out = append(out, args[i])
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// flagName splits "-name", "--name" or "--name=value" into its bare name.
func flagName(arg string) (name string, inline bool, ok bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false, false
	}
	name = strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if name == "" {
		return "", false, false
	}
	if k, _, found := strings.Cut(name, "="); found {
		return k, true, true
	}
	return name, false, true
}

// ConfigPath returns the JSON config file named by -c or -config in args.
// When neither flag is present it falls back to the envKey environment
// variable; an empty result means no file.
func ConfigPath(args []string, envKey string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, "c", "config"))

	if path == "" && envKey != "" {
		path = os.Getenv(envKey)
	}
	return path
}
