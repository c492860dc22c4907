// Package skillmap loads the skill display-name to identifier lookup table and
// resolves names against it.
package skillmap

// Table maps a skill display name to its backend identifier. It is never
// mutated after construction.
type Table struct {
	byName map[string]string
}

// NewTable copies entries into a new Table.
func NewTable(entries map[string]string) Table {
	byName := make(map[string]string, len(entries))
	for name, id := range entries {
		byName[name] = id
	}
	return Table{byName: byName}
}

func (t Table) Len() int {
	return len(t.byName)
}

// Lookup returns the identifier for name, if present.
func (t Table) Lookup(name string) (string, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Resolve returns the identifier mapped to name, or name itself when the table
// has no entry for it. Callers that already hold an identifier, or use a skill
// missing from the table, get their input back.
func Resolve(t Table, name string) string {
	if id, ok := t.Lookup(name); ok {
		return id
	}
	return name
}
