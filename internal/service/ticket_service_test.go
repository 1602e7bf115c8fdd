package service

import (
	"context"
	"sync"
	"testing"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func TestCreateDefaults(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	ticket, err := env.tickets.Create(ctx, env.owner.ID, CreateTicketInput{
		Title:       "  Late refund ",
		Description: "<p>Refund <b>still</b> missing</p><script>x()</script>",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if ticket.ID != 1521 {
		t.Fatalf("ID = %d, want 1521", ticket.ID)
	}
	if ticket.Status != domain.TicketStatusOpen || ticket.SeverityID != domain.SeverityLow {
		t.Fatalf("status/severity = %s/%d", ticket.Status, ticket.SeverityID)
	}
	if ticket.Title != "Late refund" || ticket.Description != "Refund still missing" {
		t.Fatalf("title/description = %q/%q", ticket.Title, ticket.Description)
	}
	if ticket.Reason != "" || ticket.AdminID != nil || ticket.DepartmentID != nil {
		t.Fatalf("new ticket should be unassigned without reason: %+v", ticket)
	}
}

func TestCreateRejections(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()
	unknown := int64(9)

	tests := []struct {
		name    string
		ownerID int64
		input   CreateTicketInput
		want    error
	}{
		{name: "missing title", ownerID: env.owner.ID, input: CreateTicketInput{Description: "d"}, want: apperrors.ErrValidation},
		{name: "markup only description", ownerID: env.owner.ID, input: CreateTicketInput{Title: "t", Description: "<p> </p>"}, want: apperrors.ErrValidation},
		{name: "unknown owner", ownerID: 404, input: CreateTicketInput{Title: "t", Description: "d"}, want: apperrors.ErrDanglingReference},
		{name: "unknown severity", ownerID: env.owner.ID, input: CreateTicketInput{Title: "t", Description: "d", SeverityID: &unknown}, want: apperrors.ErrUnknownSeverity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.tickets.Create(ctx, tc.ownerID, tc.input)
			expectCode(t, err, tc.want)
		})
	}
}

func TestDropWithoutReasonLeavesTicketUnchanged(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()
	ticket := env.mustTicket(t)

	for _, reason := range []string{"", "   "} {
		_, err := env.tickets.Transition(ctx, env.ownerActor(), ticket.ID, domain.TicketStatusDropped, reason)
		expectCode(t, err, apperrors.ErrMissingReason)
	}

	got, err := env.tickets.Get(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != domain.TicketStatusOpen || got.Reason != "" {
		t.Fatalf("ticket changed: %+v", got)
	}
}

func TestReasonPresentOnlyWhileDropped(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	pending := env.mustTicket(t)
	updated, err := env.tickets.Transition(ctx, env.adminActor(), pending.ID, domain.TicketStatusPending, "looking into it")
	if err != nil {
		t.Fatalf("Transition(PENDING) error = %v", err)
	}
	if updated.Reason != "" {
		t.Fatalf("non-dropped ticket carries reason %q", updated.Reason)
	}

	dropped := env.mustTicket(t)
	updated, err = env.tickets.Transition(ctx, env.ownerActor(), dropped.ID, domain.TicketStatusDropped, "  duplicate ")
	if err != nil {
		t.Fatalf("Transition(DROPPED) error = %v", err)
	}
	if updated.Reason != "duplicate" || updated.ClosedAt == nil {
		t.Fatalf("dropped ticket = %+v", updated)
	}
}

func TestTerminalTicketsRejectMutation(t *testing.T) {
	for _, terminal := range []domain.TicketStatus{domain.TicketStatusClosed, domain.TicketStatusDropped} {
		t.Run(string(terminal), func(t *testing.T) {
			env := newTestEnv(t, config.NotificationConfig{})
			ctx := context.Background()
			ticket := env.mustTicket(t)
			env.mustTransition(t, ticket.ID, terminal, "no longer needed")

			for _, next := range domain.TicketStatuses {
				_, err := env.tickets.Transition(ctx, env.adminActor(), ticket.ID, next, "reason")
				expectCode(t, err, apperrors.ErrTerminalState)
			}
			_, err := env.tickets.SetSeverity(ctx, env.superActor(), ticket.ID, domain.SeverityHigh)
			expectCode(t, err, apperrors.ErrTerminalState)
			_, err = env.assignments.Assign(ctx, env.superActor(), ticket.ID, env.department.ID, env.admin.ID)
			expectCode(t, err, apperrors.ErrTerminalState)
			_, err = env.responses.Append(ctx, ticket.ID, AppendResponseInput{AuthorRole: domain.AuthorRoleUser, AuthorID: env.owner.ID, Body: "hello?"})
			expectCode(t, err, apperrors.ErrTerminalState)
		})
	}
}

func TestTransitionToCurrentStatusIsNoop(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ticket := env.mustTicket(t)

	got, err := env.tickets.Transition(context.Background(), env.adminActor(), ticket.ID, domain.TicketStatusOpen, "")
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if got.Version != ticket.Version {
		t.Fatalf("no-op transition wrote the ticket: version %d -> %d", ticket.Version, got.Version)
	}
}

func TestTransitionValidation(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()
	ticket := env.mustTicket(t)

	_, err := env.tickets.Transition(ctx, env.adminActor(), ticket.ID, domain.TicketStatus("ARCHIVED"), "")
	expectCode(t, err, apperrors.ErrValidation)
	_, err = env.tickets.Transition(ctx, env.adminActor(), 99999, domain.TicketStatusPending, "")
	expectCode(t, err, apperrors.ErrNotFound)
}

func TestSetSeverity(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()
	ticket := env.mustTicket(t)

	updated, err := env.tickets.SetSeverity(ctx, env.superActor(), ticket.ID, domain.SeverityHigh)
	if err != nil {
		t.Fatalf("SetSeverity() error = %v", err)
	}
	if updated.SeverityID != domain.SeverityHigh {
		t.Fatalf("SeverityID = %d", updated.SeverityID)
	}
	_, err = env.tickets.SetSeverity(ctx, env.superActor(), ticket.ID, 77)
	expectCode(t, err, apperrors.ErrUnknownSeverity)
}

func TestClosingPromptsFeedbackWhenEnabled(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{FeedbackPrompt: true})
	ctx := context.Background()
	ticket := env.mustTicket(t)
	env.mustTransition(t, ticket.ID, domain.TicketStatusClosed, "")

	list, err := env.notifications.List(ctx, domain.UserTarget(env.owner.ID))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Title != TitleFeedbackRequest || list[0].TicketID == nil || *list[0].TicketID != ticket.ID {
		t.Fatalf("notifications = %+v", list)
	}
}

func TestClosingWithoutPromptStoresNothing(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ticket := env.mustTicket(t)
	env.mustTransition(t, ticket.ID, domain.TicketStatusClosed, "")

	count, err := env.notifications.UnreadCount(context.Background(), domain.UserTarget(env.owner.ID))
	if err != nil || count != 0 {
		t.Fatalf("UnreadCount() = %d, %v", count, err)
	}
}

func TestGetDetailJoinsNames(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ticket := env.mustTicket(t)
	env.mustAssign(t, ticket.ID, env.admin.ID)

	detail, err := env.tickets.GetDetail(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("GetDetail() error = %v", err)
	}
	if detail.SeverityDescription != "Low" || detail.OwnerName != "Owner" {
		t.Fatalf("detail = %+v", detail)
	}
	if detail.DepartmentName == nil || *detail.DepartmentName != "Billing" {
		t.Fatalf("DepartmentName = %v", detail.DepartmentName)
	}
	if detail.AdminName == nil || *detail.AdminName != "Sara" {
		t.Fatalf("AdminName = %v", detail.AdminName)
	}
}

func TestListings(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()
	first := env.mustTicket(t)
	second := env.mustTicket(t)
	env.mustAssign(t, second.ID, env.admin.ID)
	env.mustTransition(t, second.ID, domain.TicketStatusPending, "")

	own, err := env.tickets.ListForOwner(ctx, env.owner.ID, nil)
	if err != nil || len(own) != 2 {
		t.Fatalf("ListForOwner() = %d, %v", len(own), err)
	}
	if own[0].ID != second.ID || own[1].ID != first.ID {
		t.Fatalf("ListForOwner() order = %d, %d", own[0].ID, own[1].ID)
	}

	pending := domain.TicketStatusPending
	byStatus, err := env.tickets.ListByStatus(ctx, &pending)
	if err != nil || len(byStatus) != 1 || byStatus[0].ID != second.ID {
		t.Fatalf("ListByStatus(PENDING) = %+v, %v", byStatus, err)
	}

	assigned, err := env.tickets.ListForAdmin(ctx, env.admin.ID, nil)
	if err != nil || len(assigned) != 1 {
		t.Fatalf("ListForAdmin() = %+v, %v", assigned, err)
	}

	bogus := domain.TicketStatus("LOST")
	_, err = env.tickets.ListByStatus(ctx, &bogus)
	expectCode(t, err, apperrors.ErrValidation)
}

func TestAddFeedback(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()
	ticket := env.mustTicket(t)

	fb, err := env.tickets.AddFeedback(ctx, ticket.ID, domain.SentimentGood, " quick fix ")
	if err != nil {
		t.Fatalf("AddFeedback() error = %v", err)
	}
	if fb.ID == 0 || fb.Comment != "quick fix" {
		t.Fatalf("feedback = %+v", fb)
	}
	_, err = env.tickets.AddFeedback(ctx, ticket.ID, domain.Sentiment("Meh"), "")
	expectCode(t, err, apperrors.ErrValidation)
	_, err = env.tickets.AddFeedback(ctx, 424242, domain.SentimentGood, "")
	expectCode(t, err, apperrors.ErrNotFound)
}

func TestConcurrentTransitionAndAssignKeepBothWrites(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	const rounds = 10
	for i := 0; i < rounds; i++ {
		ticket := env.mustTicket(t)

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := env.tickets.Transition(ctx, env.adminActor(), ticket.ID, domain.TicketStatusPending, "")
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := env.assignments.Assign(ctx, env.superActor(), ticket.ID, env.department.ID, env.admin.ID)
			errs <- err
		}()
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("concurrent write error = %v", err)
			}
		}

		got, err := env.tickets.Get(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Status != domain.TicketStatusPending || got.AdminID == nil || *got.AdminID != env.admin.ID {
			t.Fatalf("lost update: %+v", got)
		}
		if got.Version != 3 {
			t.Fatalf("Version = %d, want 3", got.Version)
		}
	}
}

func TestMutationsReportStoreUnavailableWhenDatabaseIsGone(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()
	ticket := env.mustTicket(t)

	env.sqlite.Close()

	_, err := env.tickets.Transition(ctx, env.adminActor(), ticket.ID, domain.TicketStatusPending, "")
	expectCode(t, err, apperrors.ErrStoreUnavailable)
	_, err = env.assignments.Assign(ctx, env.superActor(), ticket.ID, env.department.ID, env.admin.ID)
	expectCode(t, err, apperrors.ErrStoreUnavailable)
	_, err = env.responses.Append(ctx, ticket.ID, AppendResponseInput{
		AuthorRole: domain.AuthorRoleUser, AuthorID: env.owner.ID, Body: "still waiting",
	})
	expectCode(t, err, apperrors.ErrStoreUnavailable)
}
