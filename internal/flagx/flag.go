// Package flagx holds small helpers for sharing os.Args between several
// independent flag sets (config file lookup, client flags, stub backend flags).
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns only the arguments that belong to allowedFlags, keeping
// their values. A flag may be given as "-name value", "-name=value" or with a
// double dash ("--name value", "--name=value"); allowedFlags lists bare names
// ("c", "config") and both dash styles are matched.
//
// A value is taken from the next argument only when it does not itself look
// like a flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[flagName(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, ok := allowed[flagName(name)]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[flagName(arg)]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// ConfigPath extracts the config file path given with -c or -config.
// It returns an empty string when neither is present.
func ConfigPath(args []string) string {
	var config string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"c", "config"}))

	return config
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
