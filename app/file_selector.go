package app

import "csvplot/domain/session"

// Option is one entry of a select element
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FileOptions lists one option per stored table, in upload order,
// duplicates included.
func FileOptions(state session.State) []Option {
	options := make([]Option, 0, state.Len())
	for _, t := range state.Tables {
		options = append(options, Option{Label: t.Name, Value: t.Name})
	}
	return options
}

func columnOptions(names []string) []Option {
	options := make([]Option, 0, len(names))
	for _, name := range names {
		options = append(options, Option{Label: name, Value: name})
	}
	return options
}
