package datasource

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed countries.txt
var countriesFile string

var countries = sync.OnceValue(func() []string {
	values, _ := readLines(strings.NewReader(countriesFile))
	return Merge(values)
})

// Countries returns the built-in country list. The slice is a fresh copy.
func Countries() []string {
	list := countries()
	out := make([]string, len(list))
	copy(out, list)
	return out
}
