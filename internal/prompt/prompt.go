// Package prompt renders the grounding prompt sent to generation as
// the system turn of every session.
//
// Compose is a pure function of its inputs: identical (base, brand)
// arguments always produce byte-identical text. The session engine
// relies on this determinism for reproducible seeding.
package prompt

import (
	"fmt"
	"strings"

	"github.com/dmcneil/frontdesk/internal/knowledge"
)

// Deferral is the fixed phrase the model must emit when the supplied
// knowledge cannot answer the question.
const Deferral = "I'll forward your query to a team member."

// contactChannels fixes the render order of group contact lines.
// Absent channels are omitted, never rendered empty.
var contactChannels = []struct {
	key   string
	label string
}{
	{"phone", "Phone"},
	{"mobile", "Mobile"},
	{"email", "Email"},
}

// Compose builds the grounding prompt for a resolved brand.
//
// The company enumeration is brand-independent and always complete so
// the model keeps group-wide awareness; the detail block is rendered
// only when brandKey has a profile in the knowledge base.
func Compose(base *knowledge.Base, brandKey string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an AI receptionist for %s.\n\n", base.Organization)
	fmt.Fprintf(&b, "Group Overview: %s\n", base.Overview)

	b.WriteString("Contact:\n")
	for _, ch := range contactChannels {
		if v := base.Contact[ch.key]; v != "" {
			fmt.Fprintf(&b, "- %s: %s\n", ch.label, v)
		}
	}

	b.WriteString("\nThe group includes the following companies:\n")
	for _, key := range base.Keys() {
		c, _ := base.Company(key)
		fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Overview)
	}

	if c, ok := base.Company(brandKey); ok {
		b.WriteString("\n---\n\n")
		fmt.Fprintf(&b, "Primary company for this query: %s\n", c.Name)
		if len(c.Services) > 0 {
			fmt.Fprintf(&b, "Services: %s\n", strings.Join(c.Services, ", "))
		}
		if len(c.Locations) > 0 {
			fmt.Fprintf(&b, "Locations: %s\n", strings.Join(c.Locations, ", "))
		}
		if c.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
		}
		if c.Email != "" {
			fmt.Fprintf(&b, "Email: %s\n", c.Email)
		}
		if c.Website != "" {
			fmt.Fprintf(&b, "Website: %s\n", c.Website)
		}
	}

	fmt.Fprintf(&b, "\nAnswer only using this data. If unsure, say: '%s'", Deferral)
	return b.String()
}
