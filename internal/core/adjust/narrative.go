package adjust

import (
	"fmt"
	"math"
	"strings"
)

// Narrative describes the non-zero adjustments of the comp at index i in prose,
// e.g. "Comp 1 (a.pdf): Add $3000 for bedroom count. Net upward adjustment of $3000."
func Narrative(i int, filename string, adj Adjustments) string {
	items := []struct {
		label string
		value float64
	}{
		{"size", adj.Size},
		{"bedroom count", adj.Beds},
		{"full bath count", adj.Full},
		{"half bath count", adj.Half},
		{"finished basement %", adj.Basement},
		{"acreage", adj.Acreage},
		{"age difference", adj.Age},
		{"garage space count", adj.Garage},
		{"condition", adj.Condition},
	}

	var lines []string
	for _, it := range items {
		if it.value == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s for %s", verb(it.value), dollars(it.value), it.label))
	}

	total := adj.Total()
	direction := "No net"
	switch {
	case total > 0:
		direction = "Net upward"
	case total < 0:
		direction = "Net downward"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Comp %d (%s): ", i+1, filename)
	if len(lines) > 0 {
		b.WriteString(strings.Join(lines, ", "))
		b.WriteString(". ")
	}
	fmt.Fprintf(&b, "%s adjustment of %s.", direction, dollars(total))
	return b.String()
}

func verb(v float64) string {
	if v > 0 {
		return "Add"
	}
	return "Deduct"
}

func dollars(v float64) string {
	return fmt.Sprintf("$%.0f", math.Round(math.Abs(v)))
}
