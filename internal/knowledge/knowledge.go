// Package knowledge loads and holds the immutable group knowledge
// document: the organization overview, group contact channels, the
// subsidiary companies, and the brand-routing vocabulary.
//
// The document is loaded once at startup. A Base is read-only after
// Load returns and is safe for unsynchronized concurrent reads.
package knowledge

import "fmt"

// Company is one subsidiary's knowledge profile.
// Constructed at load time; never mutated.
type Company struct {
	Name      string   `json:"name"`
	Overview  string   `json:"overview"`
	Services  []string `json:"services"`
	Locations []string `json:"locations,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	Website   string   `json:"website,omitempty"`
}

// Entry maps one keyword to a brand key. Entries are matched in
// declaration order; the first keyword contained in an utterance wins.
type Entry struct {
	Keyword string `json:"keyword"`
	Brand   string `json:"brand"`
}

// Vocabulary is the brand-routing table: ordered keyword entries plus
// the default brand used when nothing matches.
type Vocabulary struct {
	Default string  `json:"default"`
	Entries []Entry `json:"keywords"`
}

// Base is the loaded knowledge document for one organization.
type Base struct {
	// Organization is the document's top-level key.
	Organization string

	// Overview is the group-level description.
	Overview string

	// Contact maps channel name (phone, mobile, email) to value.
	// Channels may be absent.
	Contact map[string]string

	// Vocabulary is the brand-routing table.
	Vocabulary Vocabulary

	companies map[string]Company
	order     []string // brand keys in document declaration order
}

// Keyed pairs a brand key with its profile for ordered construction.
type Keyed struct {
	Key     string
	Company Company
}

// New constructs a Base programmatically, preserving the given company
// order. It applies the same validation as Load. Primarily useful for
// tests and embedded defaults; production loads from a document.
func New(org, overview string, contact map[string]string, vocab Vocabulary, companies []Keyed) (*Base, error) {
	b := &Base{
		Organization: org,
		Overview:     overview,
		Contact:      contact,
		Vocabulary:   normalizeVocabulary(vocab),
		companies:    make(map[string]Company, len(companies)),
	}
	if b.Contact == nil {
		b.Contact = map[string]string{}
	}
	for _, kc := range companies {
		if _, dup := b.companies[kc.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate company key %q", ErrInvalid, kc.Key)
		}
		b.companies[kc.Key] = kc.Company
		b.order = append(b.order, kc.Key)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Company returns the profile for a brand key.
func (b *Base) Company(key string) (Company, bool) {
	c, ok := b.companies[key]
	return c, ok
}

// Keys returns all brand keys in document declaration order.
// The returned slice is a copy.
func (b *Base) Keys() []string {
	keys := make([]string, len(b.order))
	copy(keys, b.order)
	return keys
}

// Len returns the number of companies in the document.
func (b *Base) Len() int {
	return len(b.order)
}

// validate checks the structural invariants the rest of the system
// relies on: required fields present, and every brand key referenced
// by the vocabulary declared in companies.
func (b *Base) validate() error {
	if b.Overview == "" {
		return fmt.Errorf("%w: organization %q has no overview", ErrInvalid, b.Organization)
	}
	if len(b.order) == 0 {
		return fmt.Errorf("%w: organization %q has no companies", ErrInvalid, b.Organization)
	}
	for _, key := range b.order {
		c := b.companies[key]
		if c.Name == "" {
			return fmt.Errorf("%w: company %q has no name", ErrInvalid, key)
		}
		if c.Overview == "" {
			return fmt.Errorf("%w: company %q has no overview", ErrInvalid, key)
		}
	}
	if b.Vocabulary.Default == "" {
		return fmt.Errorf("%w: routing has no default brand", ErrInvalid)
	}
	if _, ok := b.companies[b.Vocabulary.Default]; !ok {
		return fmt.Errorf("%w: default brand %q not declared in companies", ErrInvalid, b.Vocabulary.Default)
	}
	for _, e := range b.Vocabulary.Entries {
		if e.Keyword == "" {
			return fmt.Errorf("%w: routing entry for brand %q has empty keyword", ErrInvalid, e.Brand)
		}
		if _, ok := b.companies[e.Brand]; !ok {
			return fmt.Errorf("%w: keyword %q routes to undeclared brand %q", ErrInvalid, e.Keyword, e.Brand)
		}
	}
	return nil
}
