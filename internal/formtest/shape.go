package formtest

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/rule"
)

// Shape describes a rule tree as one line per node: path, kind, check names
// with their parameters and collection bounds. Two trees with equal shapes
// validate every instance the same way.
func Shape(r *rule.Rule) []string {
	var lines []string
	r.Walk(func(path string, n *rule.Rule) bool {
		line := path + " " + n.Kind().String()
		switch n.Kind() {
		case rule.KindField:
			var checks []string
			for _, b := range n.Checks() {
				checks = append(checks, fmt.Sprintf("%s%v", b.Name(), b.Params()))
			}
			line += " [" + strings.Join(checks, " ") + "]"
		case rule.KindCollection:
			minItems, hasMin := n.MinItems()
			maxItems, hasMax := n.MaxItems()
			line += fmt.Sprintf(" min=%v:%d max=%v:%d", hasMin, minItems, hasMax, maxItems)
		}
		lines = append(lines, line)
		return true
	})
	return lines
}
