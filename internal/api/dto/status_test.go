package dto

import (
	"testing"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestLegacyStatusIDsRoundTrip(t *testing.T) {
	want := map[domain.TicketStatus]int{
		domain.TicketStatusOpen:     6,
		domain.TicketStatusClosed:   2,
		domain.TicketStatusPending:  3,
		domain.TicketStatusDropped:  4,
		domain.TicketStatusResolved: 5,
	}
	for status, id := range want {
		if got := LegacyStatusID(status); got != id {
			t.Fatalf("LegacyStatusID(%s) = %d, want %d", status, got, id)
		}
		back, ok := StatusFromLegacyID(id)
		if !ok || back != status {
			t.Fatalf("StatusFromLegacyID(%d) = %s, %v", id, back, ok)
		}
	}
	if _, ok := StatusFromLegacyID(1); ok {
		t.Fatalf("id 1 is not a status")
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.TicketStatus
		ok   bool
	}{
		{"pending", domain.TicketStatusPending, true},
		{" RESOLVED ", domain.TicketStatusResolved, true},
		{"4", domain.TicketStatusDropped, true},
		{"7", "", false},
		{"archived", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseStatus(tc.raw)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("ParseStatus(%q) = %s, %v", tc.raw, got, ok)
		}
	}
}

func TestTicketResponseHidesReasonUnlessDropped(t *testing.T) {
	resp := NewTicketResponse(domain.Ticket{ID: 1, Status: domain.TicketStatusOpen})
	if resp.Reason != nil || resp.StatusID != 6 {
		t.Fatalf("open ticket response = %+v", resp)
	}
	resp = NewTicketResponse(domain.Ticket{ID: 1, Status: domain.TicketStatusDropped, Reason: "dup"})
	if resp.Reason == nil || *resp.Reason != "dup" {
		t.Fatalf("dropped ticket reason = %v", resp.Reason)
	}
}
