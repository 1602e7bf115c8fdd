package domain

import (
	"testing"
	"time"
)

func TestSentimentDeltas(t *testing.T) {
	tests := []struct {
		sentiment Sentiment
		want      float64
	}{
		{SentimentExcellent, 0.5},
		{SentimentGood, 0.3},
		{SentimentMedium, 0},
		{SentimentPoor, -0.5},
		{SentimentVeryBad, -1},
	}
	for _, tc := range tests {
		if !tc.sentiment.Valid() {
			t.Fatalf("%q should be valid", tc.sentiment)
		}
		if got := tc.sentiment.Delta(); got != tc.want {
			t.Fatalf("%q.Delta() = %v, want %v", tc.sentiment, got, tc.want)
		}
	}
	if Sentiment("Okay").Valid() {
		t.Fatalf("unknown sentiment reported valid")
	}
}

func TestStatusTerminality(t *testing.T) {
	terminal := map[TicketStatus]bool{TicketStatusClosed: true, TicketStatusDropped: true}
	for _, s := range TicketStatuses {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
		if s.IsTerminal() != terminal[s] {
			t.Fatalf("%s.IsTerminal() = %v", s, s.IsTerminal())
		}
	}
	if TicketStatus("open").Valid() {
		t.Fatalf("statuses are case sensitive")
	}
}

func TestAdministratorAssignable(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		admin Administrator
		want  bool
	}{
		{"normal", Administrator{Role: AdminRoleNormal}, true},
		{"super", Administrator{Role: AdminRoleSuper}, false},
		{"deleted", Administrator{Role: AdminRoleNormal, DeletedAt: &now}, false},
	}
	for _, tc := range tests {
		if got := tc.admin.Assignable(); got != tc.want {
			t.Fatalf("%s: Assignable() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
