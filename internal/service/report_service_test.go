package service

import (
	"context"
	"testing"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestSummarizePercentages(t *testing.T) {
	rows := summarize(map[domain.TicketStatus]int64{
		domain.TicketStatusOpen:    2,
		domain.TicketStatusClosed:  6,
		domain.TicketStatusDropped: 2,
	})
	got := map[domain.TicketStatus]domain.StatusCount{}
	for _, r := range rows {
		got[r.Status] = r
	}
	if len(rows) != len(domain.TicketStatuses) {
		t.Fatalf("rows = %d, want %d", len(rows), len(domain.TicketStatuses))
	}
	if got[domain.TicketStatusDropped].Percentage != 20 {
		t.Fatalf("dropped%% = %v, want 20", got[domain.TicketStatusDropped].Percentage)
	}
	if got[domain.TicketStatusClosed].Percentage != 75 || got[domain.TicketStatusOpen].Percentage != 25 {
		t.Fatalf("closed/open%% = %v/%v", got[domain.TicketStatusClosed].Percentage, got[domain.TicketStatusOpen].Percentage)
	}
	if got[domain.TicketStatusPending].Count != 0 || got[domain.TicketStatusPending].Percentage != 0 {
		t.Fatalf("pending = %+v", got[domain.TicketStatusPending])
	}
}

func TestSummarizeZeroDenominators(t *testing.T) {
	for _, r := range summarize(map[domain.TicketStatus]int64{domain.TicketStatusDropped: 3}) {
		want := 0.0
		if r.Status == domain.TicketStatusDropped {
			want = 100
		}
		if r.Percentage != want {
			t.Fatalf("%s%% = %v, want %v", r.Status, r.Percentage, want)
		}
	}
	for _, r := range summarize(nil) {
		if r.Percentage != 0 {
			t.Fatalf("%s%% = %v on empty store", r.Status, r.Percentage)
		}
	}
}

func TestReportsAgainstStore(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	a := env.mustTicket(t)
	b := env.mustTicket(t)
	env.mustTicket(t)
	env.mustAssign(t, a.ID, env.admin.ID)
	env.mustTransition(t, a.ID, domain.TicketStatusClosed, "")
	env.mustTransition(t, b.ID, domain.TicketStatusDropped, "spam")

	counts, err := env.reports.OwnerCounts(ctx, env.owner.ID)
	if err != nil {
		t.Fatalf("OwnerCounts() error = %v", err)
	}
	if counts.Total != 3 || counts.ByStatus[domain.TicketStatusClosed] != 1 || counts.ByStatus[domain.TicketStatusOpen] != 1 {
		t.Fatalf("OwnerCounts() = %+v", counts)
	}

	mine, err := env.reports.ComplaintsSummary(ctx, &env.admin.ID)
	if err != nil {
		t.Fatalf("ComplaintsSummary() error = %v", err)
	}
	for _, r := range mine {
		if r.Status == domain.TicketStatusClosed && (r.Count != 1 || r.Percentage != 100) {
			t.Fatalf("admin closed row = %+v", r)
		}
	}
}
