package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"invoice_idor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var eventColumns = []string{"id", "occurred_at", "type", "user_id", "message", "meta"}

func TestEventSQLite_Append_WithDefaults(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "INVOICE_VIEW", 1, "viewed invoice -1", `{"crossOwner":true}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewEventSQLite(db).Append(context.Background(), models.AccessEvent{
		Type:        " invoice_view ",
		UserID:      1,
		Description: "viewed invoice -1",
		Metadata:    map[string]any{"crossOwner": true},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventSQLite_Append_DBError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WillReturnError(errors.New("readonly database"))

	err = NewEventSQLite(db).Append(context.Background(), models.AccessEvent{Type: "LOGOUT"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestEventSQLite_List_FiltersAndDecodesMeta(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	at := from.Add(time.Minute)

	q := selectEventSQL + " WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC"
	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WithArgs(from.UnixNano(), to.UnixNano(), "INVOICE_VIEW").
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow("e1", at.UnixNano(), "INVOICE_VIEW", 1, "viewed", `{"invoiceId":-1}`).
			AddRow("e2", at.Add(time.Second).UnixNano(), "INVOICE_VIEW", 2, "viewed", "not-json").
			AddRow("e3", at.Add(2*time.Second).UnixNano(), "INVOICE_VIEW", 3, "viewed", nil))

	got, err := NewEventSQLite(db).List(context.Background(), from, to, "invoice_view")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if !got[0].OccurredAt.Equal(at) || got[0].OccurredAt.Location() != time.UTC {
		t.Fatalf("unexpected time: %v", got[0].OccurredAt)
	}
	meta, ok := got[0].Metadata.(map[string]any)
	if !ok || meta["invoiceId"] != float64(-1) {
		t.Fatalf("unexpected metadata: %#v", got[0].Metadata)
	}
	if got[1].Metadata != "not-json" {
		t.Fatalf("expected raw metadata kept, got %#v", got[1].Metadata)
	}
	if got[2].Metadata != nil {
		t.Fatalf("expected nil metadata, got %#v", got[2].Metadata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventSQLite_List_NoFilters(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectEventSQL + " ORDER BY occurred_at ASC")).
		WillReturnRows(sqlmock.NewRows(eventColumns))

	got, err := NewEventSQLite(db).List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestEventSQLite_DeleteBefore(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	cutoff := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(deleteEventSQL)).
		WithArgs(cutoff.UnixNano()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewEventSQLite(db).DeleteBefore(context.Background(), cutoff)
	if err != nil || n != 3 {
		t.Fatalf("DeleteBefore = %d, %v; want 3, nil", n, err)
	}
}
