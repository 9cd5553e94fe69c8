package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fsq/fsq/fsq/field"
	"github.com/fsq/fsq/fsq/query"
	"github.com/fsq/fsq/internal/cliopt"
)

// RunFields lists the queryable fields and their aliases for one
// target kind, or for all kinds when none is given.
func RunFields(g cliopt.GlobalOptions, argv []string) int {
	kinds := []struct {
		name string
		kind query.TargetKind
	}{
		{"file", query.KindFile},
		{"dir", query.KindDir},
		{"data", query.KindData},
	}

	if len(argv) > 0 {
		want := strings.ToLower(argv[0])
		filtered := kinds[:0]
		for _, k := range kinds {
			if k.name == want {
				filtered = append(filtered, k)
			}
		}
		if len(filtered) == 0 {
			fmt.Fprintf(os.Stderr, "unknown kind: %s (want file, dir, or data)\n", argv[0])
			return 2
		}
		kinds = filtered
	}

	for n, k := range kinds {
		if n > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, "TYPE %s\n", strings.ToUpper(k.name))
		aliases := invertAliases(field.Aliases(k.kind))
		for _, name := range field.Fields(k.kind) {
			if alt := aliases[name]; len(alt) > 0 {
				fmt.Fprintf(os.Stdout, "  %-12s (aliases: %s)\n", name, strings.Join(alt, ", "))
			} else {
				fmt.Fprintf(os.Stdout, "  %s\n", name)
			}
		}
	}
	return 0
}

func invertAliases(aliases map[string]string) map[string][]string {
	out := make(map[string][]string)
	for alias, canonical := range aliases {
		out[canonical] = append(out[canonical], alias)
	}
	for _, alt := range out {
		sort.Strings(alt)
	}
	return out
}
