package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalid indicates the knowledge document is structurally invalid:
// unparsable, missing required fields, or referencing undeclared
// brands. It is fatal at startup; there is no safe default knowledge.
var ErrInvalid = errors.New("invalid knowledge document")

// document is the on-disk shape: a single object keyed by
// organization identifier, e.g. {"acme_group": {...}}.
type document map[string]orgDoc

type orgDoc struct {
	Overview  string            `json:"overview"`
	Contact   map[string]string `json:"contact"`
	Companies companySet        `json:"companies"`
	Routing   Vocabulary        `json:"routing"`
}

// companySet decodes a JSON object of brand key to company profile
// while recording the declaration order of the keys. encoding/json
// maps are unordered, and the composer's company enumeration is
// contractually in document order, so decoding walks the raw tokens.
type companySet struct {
	byKey map[string]Company
	order []string
}

func (cs *companySet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("companies must be an object, got %v", tok)
	}

	cs.byKey = make(map[string]Company)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected companies key token %v", keyTok)
		}

		var c Company
		if err := dec.Decode(&c); err != nil {
			return fmt.Errorf("decoding company %q: %w", key, err)
		}
		if _, dup := cs.byKey[key]; dup {
			return fmt.Errorf("duplicate company key %q", key)
		}
		cs.byKey[key] = c
		cs.order = append(cs.order, key)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Load reads and validates a knowledge document from path.
//
// It fails when the file is missing, unparsable, or missing required
// fields (overview, at least one company, a valid routing table).
// Structural failures wrap ErrInvalid and are checkable with
// errors.Is().
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(doc) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one organization, got %d", ErrInvalid, len(doc))
	}

	var base *Base
	for org, od := range doc {
		base = &Base{
			Organization: org,
			Overview:     od.Overview,
			Contact:      od.Contact,
			Vocabulary:   normalizeVocabulary(od.Routing),
			companies:    od.Companies.byKey,
			order:        od.Companies.order,
		}
	}
	if base.Contact == nil {
		base.Contact = map[string]string{}
	}
	if base.companies == nil {
		base.companies = map[string]Company{}
	}

	if err := base.validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// normalizeVocabulary lowercases keywords so matching is
// case-insensitive regardless of how the document was authored.
// Entry order is preserved.
func normalizeVocabulary(v Vocabulary) Vocabulary {
	entries := make([]Entry, len(v.Entries))
	for i, e := range v.Entries {
		entries[i] = Entry{
			Keyword: strings.ToLower(e.Keyword),
			Brand:   e.Brand,
		}
	}
	return Vocabulary{Default: v.Default, Entries: entries}
}
