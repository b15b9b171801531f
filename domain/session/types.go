package session

import (
	"encoding/json"
	"time"

	"csvplot/domain/core"
)

// UploadedTable is one decoded upload, stored in its split encoding so it
// can be reconstituted identically for rendering.
type UploadedTable struct {
	ID         core.UploadID   `json:"id,omitempty"`
	Name       string          `json:"name"`
	Data       json.RawMessage `json:"data"`
	UploadedAt time.Time       `json:"uploaded_at,omitempty"`
}

// State is the aggregate held by the client and sent with every interaction.
type State struct {
	Tables []UploadedTable `json:"tables"`
}

// Names returns table names in upload order, duplicates included.
func (s State) Names() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// Find returns the first table with the given name.
func (s State) Find(name string) (UploadedTable, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return UploadedTable{}, false
}

// Len returns the number of stored tables
func (s State) Len() int {
	return len(s.Tables)
}

// clone copies the table slice so transitions never mutate caller state.
func (s State) clone() State {
	tables := make([]UploadedTable, len(s.Tables), len(s.Tables)+1)
	copy(tables, s.Tables)
	return State{Tables: tables}
}

// Append returns a new state with t added at the end.
func (s State) Append(t UploadedTable) State {
	next := s.clone()
	next.Tables = append(next.Tables, t)
	return next
}

// ReplaceOrAppend returns a new state where the first table named t.Name is
// swapped for t in place, or t is appended when no such table exists.
func (s State) ReplaceOrAppend(t UploadedTable) State {
	next := s.clone()
	for i := range next.Tables {
		if next.Tables[i].Name == t.Name {
			next.Tables[i] = t
			return next
		}
	}
	next.Tables = append(next.Tables, t)
	return next
}

// AxisSelection is the ephemeral X/Y choice of one panel. An empty X or a
// nil/empty Y means that axis is unset.
type AxisSelection struct {
	Filename string   `json:"filename"`
	X        string   `json:"x,omitempty"`
	Y        []string `json:"y,omitempty"`
}

// Complete reports whether both axes are chosen.
func (a AxisSelection) Complete() bool {
	return a.X != "" && len(a.Y) > 0
}
