package models

import "slices"

// Ledger maps the machine name of every announced listing to the unix time its sale ends.
// A key present in the ledger means the listing must not be announced again.
type Ledger map[string]int64

// Has reports whether the listing was already announced.
func (l Ledger) Has(machineName string) bool {
	_, ok := l[machineName]
	return ok
}

// Mark records the listing as announced.
func (l Ledger) Mark(machineName string, endTime int64) {
	l[machineName] = endTime
}

// Prune removes every entry whose end time is not strictly after now and returns the removed keys, sorted.
func (l Ledger) Prune(now int64) []string {
	var pruned []string
	for name, end := range l {
		if end <= now {
			pruned = append(pruned, name)
			delete(l, name)
		}
	}
	slices.Sort(pruned)

	return pruned
}

// Keys returns the machine names in the ledger, sorted.
func (l Ledger) Keys() []string {
	keys := make([]string, 0, len(l))
	for name := range l {
		keys = append(keys, name)
	}
	slices.Sort(keys)

	return keys
}
