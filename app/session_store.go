package app

import (
	"fmt"

	"csvplot/domain/session"
	"csvplot/domain/table"
	"csvplot/internal/config"
	"csvplot/internal/errors"
	"csvplot/internal/profiling"
)

const (
	noUploadMessage    = "No file uploaded yet."
	parseFailedMessage = "could not parse file"
)

// Upload is one file as sent by the browser upload widget
type Upload struct {
	Contents string `json:"contents"`
	Filename string `json:"filename"`
}

// UploadSummary is the human-readable result of an upload
type UploadSummary struct {
	Message  string                    `json:"message"`
	Filename string                    `json:"filename,omitempty"`
	Rows     int                       `json:"rows"`
	Columns  int                       `json:"columns"`
	Files    []string                  `json:"files"`
	Numeric  []profiling.ColumnSummary `json:"numeric,omitempty"`
	Replaced bool                      `json:"replaced,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

// Upload decodes up and returns the next state with the table added.
// With no contents the state is returned unchanged. On failure the state is
// also returned unchanged, together with a summary carrying the error text.
func (s *DashboardService) Upload(state session.State, up Upload) (session.State, UploadSummary, error) {
	if up.Contents == "" {
		return state, UploadSummary{Message: noUploadMessage, Files: state.Names()}, nil
	}

	if up.Filename == "" {
		err := errors.InvalidInput("filename is required")
		return state, UploadSummary{Message: parseFailedMessage, Files: state.Names(), Error: err.Error()}, err
	}

	tbl, err := s.decoder.Decode(up.Contents, up.Filename)
	if err != nil {
		s.logger.Warn("%s rejected: %v", up.Filename, err)
		return state, UploadSummary{
			Message:  parseFailedMessage,
			Filename: up.Filename,
			Files:    state.Names(),
			Error:    parseFailedMessage,
		}, errors.Wrapf(err, "upload of %s failed", up.Filename)
	}

	data, err := table.Marshal(tbl)
	if err != nil {
		return state, UploadSummary{Message: parseFailedMessage, Filename: up.Filename, Files: state.Names(), Error: err.Error()},
			errors.Wrap(err, "failed to serialize table")
	}

	entry := session.UploadedTable{
		ID:         s.newID(),
		Name:       up.Filename,
		Data:       data,
		UploadedAt: s.now().UTC(),
	}

	var next session.State
	_, exists := state.Find(up.Filename)
	replaced := false
	switch s.policy {
	case config.DuplicateReplace:
		next = state.ReplaceOrAppend(entry)
		replaced = exists
	default:
		next = state.Append(entry)
	}

	s.logger.Info("%s stored (%d rows, %d columns, %d tables in session)", up.Filename, tbl.RowCount(), tbl.ColumnCount(), next.Len())

	return next, UploadSummary{
		Message:  fmt.Sprintf("Uploaded: %s", up.Filename),
		Filename: up.Filename,
		Rows:     tbl.RowCount(),
		Columns:  tbl.ColumnCount(),
		Files:    next.Names(),
		Numeric:  profiling.SummarizeTable(tbl),
		Replaced: replaced,
	}, nil
}
