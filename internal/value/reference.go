package value

// Reference is a single bibliographic record (§3). It is immutable after
// insertion into the processor; replacing an id overwrites wholesale,
// mirroring the teacher's "replace a spoke record by id" convention in
// hub/convert.
type Reference struct {
	ID   string
	Type string // book, article-journal, legal_case, ...

	Ordinary map[string]string
	Number   map[string]NumericValue
	Names    map[string][]Name
	Dates    map[string]DateOrRange
}

// NewReference returns a Reference with its maps initialized, so callers can
// assign into them without a nil check.
func NewReference(id, typ string) *Reference {
	return &Reference{
		ID:       id,
		Type:     typ,
		Ordinary: make(map[string]string),
		Number:   make(map[string]NumericValue),
		Names:    make(map[string][]Name),
		Dates:    make(map[string]DateOrRange),
	}
}

// Variable looks up an ordinary (string) variable, with the title-short and
// container-title-short fallback chains required by §4.3.
func (r *Reference) Variable(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	if v, ok := r.Ordinary[name]; ok && v != "" {
		return v, true
	}
	switch name {
	case "title-short":
		if v, ok := r.Ordinary["title"]; ok && v != "" {
			return v, true
		}
	case "container-title-short":
		if v, ok := r.Ordinary["journalAbbreviation"]; ok && v != "" {
			return v, true
		}
		if v, ok := r.Ordinary["container-title"]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// NumberVariable looks up a number-variable.
func (r *Reference) NumberVariable(name string) (NumericValue, bool) {
	if r == nil {
		return NumericValue{}, false
	}
	v, ok := r.Number[name]
	return v, ok
}

// NameVariable looks up a name-variable's ordered list.
func (r *Reference) NameVariable(name string) ([]Name, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.Names[name]
	return v, ok && len(v) > 0
}

// DateVariable looks up a date-variable.
func (r *Reference) DateVariable(name string) (DateOrRange, bool) {
	if r == nil {
		return DateOrRange{}, false
	}
	v, ok := r.Dates[name]
	return v, ok
}

// HasVariable reports presence for the generic variable-present condition
// (§4.2), dispatching across the three variable kinds.
func (r *Reference) HasVariable(name string) bool {
	if _, ok := r.Variable(name); ok {
		return true
	}
	if v, ok := r.NumberVariable(name); ok {
		return v.IsNumeric() || v.Raw != ""
	}
	if _, ok := r.NameVariable(name); ok {
		return true
	}
	if v, ok := r.DateVariable(name); ok {
		return !v.IsLiteral() || v.Literal != ""
	}
	return false
}

// Store is the set/replace surface for references (§6: "set/replace
// references"); a thin map wrapper so the memo substrate's input slot can
// hold it by value-equality of the pointer map.
type Store struct {
	byID map[string]*Reference
}

// NewStore returns an empty reference store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Reference)}
}

// Set inserts or replaces a reference by id.
func (s *Store) Set(ref *Reference) {
	s.byID[ref.ID] = ref
}

// Get looks up a reference by id.
func (s *Store) Get(id string) (*Reference, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// All returns every reference currently in the store, in no particular
// order; callers that need a stable order should sort explicitly.
func (s *Store) All() []*Reference {
	out := make([]*Reference, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	return out
}

// Len returns the number of references in the store.
func (s *Store) Len() int { return len(s.byID) }
