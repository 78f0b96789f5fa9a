package formatting

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/services"
	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
)

type fakeWorkflow struct {
	applied []workflow.Event
}

func (f *fakeWorkflow) Handler() *workflow.Handler { return nil }

func (f *fakeWorkflow) Apply(_ context.Context, cmd workflow.ApplyCommand) (workflow.Status, error) {
	f.applied = append(f.applied, cmd.Event)
	return workflow.StatusFormattingFailed, nil
}

func (f *fakeWorkflow) ApplyInTx(_ context.Context, _ *sql.Tx, cmd workflow.ApplyCommand) (workflow.Status, error) {
	f.applied = append(f.applied, cmd.Event)
	return workflow.StatusFormatted, nil
}

func (f *fakeWorkflow) RecordSubmission(context.Context, *sql.Tx, uuid.UUID, workflow.Event, identity.Actor) error {
	return nil
}

func (f *fakeWorkflow) Lock(uuid.UUID) func() { return func() {} }

func (f *fakeWorkflow) Current(context.Context, uuid.UUID) (workflow.Status, error) {
	return workflow.StatusFormatting, nil
}

func (f *fakeWorkflow) Watch(context.Context, uuid.UUID) (workflow.Status, error) {
	return workflow.StatusFormatting, nil
}

func (f *fakeWorkflow) Timeline(context.Context, uuid.UUID) ([]workflow.ActivityEntry, error) {
	return nil, nil
}

type fakeFormatter struct {
	result *services.FormatResult
	err    error
}

func (f fakeFormatter) Format(context.Context, uuid.UUID) (*services.FormatResult, error) {
	return f.result, f.err
}

// unreachableConnector refuses every connection, so any transaction attempt
// fails at BeginTx.
type unreachableConnector struct{}

func (unreachableConnector) Connect(context.Context) (driver.Conn, error) {
	return nil, errors.New("connection refused")
}

func (unreachableConnector) Driver() driver.Driver { return nil }

func testRepo(wf *fakeWorkflow, formatter services.Formatter) *repo {
	return &repo{
		db:        sql.OpenDB(unreachableConnector{}),
		wf:        wf,
		formatter: formatter,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		base:      context.Background(),
	}
}

func TestRunAppliesFormatErrorOnCollaboratorFailure(t *testing.T) {
	wf := &fakeWorkflow{}
	r := testRepo(wf, fakeFormatter{err: errors.New("renderer unavailable")})

	r.run(uuid.New(), identity.Actor{Name: "ana", Profile: identity.ProfileAuthor})

	if len(wf.applied) != 1 || wf.applied[0] != workflow.EventFormatError {
		t.Fatalf("applied events = %v, want [%s]", wf.applied, workflow.EventFormatError)
	}
}

// A formatter success whose completion cannot be recorded must still land the
// version in formatting_failed so the operation can be retried.
func TestRunAppliesFormatErrorOnCompletionFailure(t *testing.T) {
	wf := &fakeWorkflow{}
	r := testRepo(wf, fakeFormatter{result: &services.FormatResult{
		DocxPath: "formatted/v1.docx",
		PdfPath:  "formatted/v1.pdf",
	}})

	r.run(uuid.New(), identity.Actor{Name: "ana", Profile: identity.ProfileAuthor})

	if len(wf.applied) != 1 || wf.applied[0] != workflow.EventFormatError {
		t.Fatalf("applied events = %v, want [%s]", wf.applied, workflow.EventFormatError)
	}
}
