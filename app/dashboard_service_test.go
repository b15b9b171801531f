package app

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"csvplot/adapters/decoder"
	"csvplot/domain/chart"
	"csvplot/domain/core"
	"csvplot/domain/session"
	"csvplot/internal/config"
	"csvplot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seriesCSV = "date,value,other,label\n2024-01-01,1,10,a\n2024-01-02,2,20,b\n2024-01-03,,30,c\n"

func newTestService(policy config.DuplicatePolicy) *DashboardService {
	svc := NewDashboardService(decoder.NewDecoder(nil, nil), policy)
	n := 0
	svc.newID = func() core.UploadID {
		n++
		return core.UploadID(fmt.Sprintf("00000000-0000-7000-8000-%012d", n))
	}
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func csvUpload(name, body string) Upload {
	return Upload{Contents: decoder.EncodePayload("text/csv", []byte(body)), Filename: name}
}

func mustUpload(t *testing.T, svc *DashboardService, state session.State, up Upload) session.State {
	t.Helper()
	next, _, err := svc.Upload(state, up)
	require.NoError(t, err)
	return next
}

func TestUploadReportsRowsAndColumns(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)

	next, summary, err := svc.Upload(session.State{}, csvUpload("series.csv", seriesCSV))
	require.NoError(t, err)

	assert.Equal(t, "Uploaded: series.csv", summary.Message)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 4, summary.Columns)
	assert.Equal(t, []string{"series.csv"}, summary.Files)
	require.Len(t, summary.Numeric, 2)
	assert.Equal(t, "value", summary.Numeric[0].Name)
	assert.Equal(t, 1, summary.Numeric[0].Missing)

	require.Equal(t, 1, next.Len())
	assert.Equal(t, "series.csv", next.Tables[0].Name)
	assert.Equal(t, core.UploadID("00000000-0000-7000-8000-000000000001"), next.Tables[0].ID)
	assert.Contains(t, string(next.Tables[0].Data), `"columns":["date","value","other","label"]`)
}

func TestUploadWithoutContentsIsIdempotent(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	state := mustUpload(t, svc, session.State{}, csvUpload("a.csv", "x\n1\n"))

	for i := 0; i < 2; i++ {
		next, summary, err := svc.Upload(state, Upload{})
		require.NoError(t, err)
		assert.Equal(t, state, next)
		assert.Equal(t, "No file uploaded yet.", summary.Message)
	}
}

func TestUploadDecodeFailureKeepsState(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	state := mustUpload(t, svc, session.State{}, csvUpload("a.csv", "x\n1\n"))

	next, summary, err := svc.Upload(state, Upload{Contents: "garbage", Filename: "bad.csv"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeDecodeError, errors.GetCode(err))
	assert.True(t, core.IsDecodeError(err))
	assert.Equal(t, "could not parse file", summary.Error)
	assert.Equal(t, state, next)
}

func TestUploadRequiresFilename(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	_, _, err := svc.Upload(session.State{}, Upload{Contents: decoder.EncodePayload("text/csv", []byte("a\n1\n"))})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestUploadDuplicateAppendPolicy(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	state := mustUpload(t, svc, session.State{}, csvUpload("a.csv", "x\n1\n"))
	state = mustUpload(t, svc, state, csvUpload("b.csv", "y\n2\n"))
	state = mustUpload(t, svc, state, csvUpload("a.csv", "x\n1\n"))

	assert.Equal(t, []string{"a.csv", "b.csv", "a.csv"}, state.Names())
	assert.Equal(t, []Option{
		{Label: "a.csv", Value: "a.csv"},
		{Label: "b.csv", Value: "b.csv"},
		{Label: "a.csv", Value: "a.csv"},
	}, FileOptions(state))
}

func TestUploadDuplicateReplacePolicy(t *testing.T) {
	svc := newTestService(config.DuplicateReplace)
	state := mustUpload(t, svc, session.State{}, csvUpload("a.csv", "x\n1\n"))
	state = mustUpload(t, svc, state, csvUpload("b.csv", "y\n2\n"))

	next, summary, err := svc.Upload(state, csvUpload("a.csv", "z,w\n3,4\n"))
	require.NoError(t, err)
	assert.True(t, summary.Replaced)
	assert.Equal(t, []string{"a.csv", "b.csv"}, next.Names())
	assert.Contains(t, string(next.Tables[0].Data), `"columns":["z","w"]`)
	// The caller's state is untouched.
	assert.Contains(t, string(state.Tables[0].Data), `"columns":["x"]`)
}

func TestFileOptionsFollowUploadOrder(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	state := session.State{}
	assert.Equal(t, []Option{}, FileOptions(state))

	names := []string{"c.csv", "a.csv", "b.csv"}
	for _, name := range names {
		state = mustUpload(t, svc, state, csvUpload(name, "x\n1\n"))
	}

	options := FileOptions(state)
	require.Len(t, options, state.Len())
	for i, opt := range options {
		assert.Equal(t, state.Tables[i].Name, opt.Value)
		assert.Equal(t, opt.Value, opt.Label)
	}
}

func TestBuildPanelsPlaceholder(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	set, err := svc.BuildPanels(context.Background(), nil, session.State{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "No files selected for plotting.", set.Placeholder)
	assert.Empty(t, set.Panels)
}

func TestBuildPanelsOptionsAndKeys(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	state := mustUpload(t, svc, session.State{}, csvUpload("series.csv", seriesCSV))
	state = mustUpload(t, svc, state, csvUpload("other.csv", "t,v\n1,2\n"))

	set, err := svc.BuildPanels(context.Background(), []string{"series.csv", "missing.csv", "other.csv", "series.csv"}, state, nil)
	require.NoError(t, err)
	require.Len(t, set.Panels, 2)

	p := set.Panels[0]
	assert.Equal(t, "series.csv", p.Filename)
	assert.Equal(t, "Graph for series.csv", p.Title)
	assert.Equal(t, columnOptions([]string{"date", "value", "other", "label"}), p.XOptions)
	assert.Equal(t, columnOptions([]string{"value", "other"}), p.YOptions)
	assert.Equal(t, session.KeyFor(session.RoleGraph, "series.csv"), p.GraphKey)
	assert.Equal(t, session.KeyFor(session.RoleXAxis, "series.csv"), p.XAxisKey)
	assert.Equal(t, session.KeyFor(session.RoleYAxis, "series.csv"), p.YAxisKey)
	assert.True(t, p.Chart.IsEmpty())

	assert.Equal(t, "other.csv", set.Panels[1].Filename)
}

func TestDeselectingKeepsOtherPanelSelections(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	state := mustUpload(t, svc, session.State{}, csvUpload("series.csv", seriesCSV))
	state = mustUpload(t, svc, state, csvUpload("other.csv", "t,v\n1,2\n2,3\n"))

	prior := []session.AxisSelection{
		{Filename: "series.csv", X: "date", Y: []string{"value"}},
		{Filename: "other.csv", X: "t", Y: []string{"v"}},
	}

	set, err := svc.BuildPanels(context.Background(), []string{"other.csv"}, state, prior)
	require.NoError(t, err)
	require.Len(t, set.Panels, 1)
	assert.Equal(t, prior[1], set.Panels[0].Selection)
	require.Len(t, set.Panels[0].Chart.Series, 1)
	assert.Equal(t, chart.AxisLinear, set.Panels[0].Chart.XAxis.Type)
}

func TestBuildPanelsCorruptTable(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	state := session.State{Tables: []session.UploadedTable{{Name: "broken.csv", Data: json.RawMessage(`{"columns":1}`)}}}

	set, err := svc.BuildPanels(context.Background(), []string{"broken.csv"}, state, nil)
	require.NoError(t, err)
	require.Len(t, set.Panels, 1)
	assert.Equal(t, "could not parse file", set.Panels[0].Error)
	assert.Empty(t, set.Panels[0].XOptions)
}

func TestBuildPanelsCancelled(t *testing.T) {
	svc := newTestService(config.DuplicateAppend)
	state := mustUpload(t, svc, session.State{}, csvUpload("a.csv", "x\n1\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.BuildPanels(ctx, []string{"a.csv"}, state, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
