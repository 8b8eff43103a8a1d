package filter_test

import (
	"fmt"

	"github.com/icinga/icinga-filter/pkg/filter"
)

func Example() {
	incidents := []filter.Record{
		{"id": 1, "severity": "crit", "tags": []any{"db"}, "host": map[string]any{"name": "db-1"}},
		{"id": 2, "severity": "warning", "tags": []any{"web"}, "host": map[string]any{"name": "web-1"}},
		{"id": 3, "severity": "crit", "tags": []any{"web"}, "host": map[string]any{"name": "web-2"}},
		{"id": 4, "severity": "ok", "host": map[string]any{"name": "web-1"}},
	}

	b := filter.New(incidents).
		Where(func(b *filter.Builder[filter.Record]) {
			b.WhereIn("severity", []string{"crit", "warning"}).OrWhere("host.name", "web-1")
		}).
		WhereIncludes("tags", "web")

	matches, err := b.Get()
	if err != nil {
		panic(err)
	}

	fmt.Println(b)
	for _, m := range matches {
		fmt.Println(m["id"])
	}
	// Output:
	// (((severity in ["crit", "warning"]) || (host.name == "web-1")) && (tags includes "web"))
	// 2
	// 3
}
