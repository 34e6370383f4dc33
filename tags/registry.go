package tags

import (
	"bytes"
	"fmt"
	"strings"
)

// Record is a known tag.
type Record struct {
	ID    int
	UID   UID
	Label string
}

// Registry is an immutable, ordered set of tag records.
// Ids and UIDs are unique across records.
type Registry struct {
	records []Record
}

// NewRegistry builds a registry from records, in order.
// Duplicate ids, duplicate UIDs and empty UIDs are rejected.
func NewRegistry(records []Record) (*Registry, error) {
	r := &Registry{records: make([]Record, 0, len(records))}
	for _, rec := range records {
		if len(rec.UID) == 0 {
			return nil, fmt.Errorf("tag %d: empty uid", rec.ID)
		}
		if strings.ContainsAny(rec.Label, "\t\r\n") {
			return nil, fmt.Errorf("tag %d: label %q contains a tab or line break", rec.ID, rec.Label)
		}
		for _, have := range r.records {
			if have.ID == rec.ID {
				return nil, fmt.Errorf("tag %d: duplicate id", rec.ID)
			}
			if bytes.Equal(have.UID, rec.UID) {
				return nil, fmt.Errorf("tag %d: uid %s already used by tag %d", rec.ID, rec.UID.Hex(), have.ID)
			}
		}
		uid := make(UID, len(rec.UID))
		copy(uid, rec.UID)
		r.records = append(r.records, Record{ID: rec.ID, UID: uid, Label: rec.Label})
	}
	return r, nil
}

// Match returns the record whose UID equals uid exactly (length and content).
// An unknown UID is not an error.
func (r *Registry) Match(uid UID) (Record, bool) {
	for _, rec := range r.records {
		if bytes.Equal(rec.UID, uid) {
			return rec, true
		}
	}
	return Record{}, false
}

// Lookup returns the record with the given id.
func (r *Registry) Lookup(id int) (Record, bool) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Records returns a copy of the records in registry order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// DefaultRecords are the tags issued with the installation.
func DefaultRecords() []Record {
	return []Record{
		{ID: 1, UID: UID{0x23, 0xa8, 0x18, 0xf7, 0x64}, Label: "Blue tag 1"},
		{ID: 2, UID: UID{0xc9, 0x00, 0xfa, 0xb9, 0x8a}, Label: "Blue tag 2"},
		{ID: 3, UID: UID{0x04, 0x79, 0x8a, 0xea, 0xd1, 0x64, 0x80}, Label: "Sticker 1"},
		{ID: 4, UID: UID{0x04, 0xbb, 0x8a, 0xea, 0xd1, 0x64, 0x80}, Label: "Sticker 2"},
		{ID: 5, UID: UID{0x04, 0x47, 0xc8, 0xd2, 0x56, 0x49, 0x81}, Label: "It'sa me"},
		{ID: 6, UID: UID{0xb3, 0xc2, 0x00, 0xfd, 0x8c}, Label: "White card"},
		{ID: 7, UID: UID{0x04, 0x20, 0xee, 0x1a, 0x5c, 0x15, 0x90}, Label: "Ticket"},
	}
}

// Default returns the registry of DefaultRecords.
func Default() *Registry {
	r, err := NewRegistry(DefaultRecords())
	if err != nil {
		panic(err)
	}
	return r
}
