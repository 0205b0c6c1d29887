package models

import "testing"

func TestStatusAdvancesForwardOnly(t *testing.T) {
	cases := []struct {
		from, to TicketStatus
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusApproved, StatusTicketCreated, true},
		{StatusTicketCreated, StatusConfirmed, true},
		{StatusPending, StatusPending, true},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusPending, StatusTicketCreated, false},
		{StatusPending, StatusConfirmed, false},
		{StatusApproved, StatusPending, false},
		{StatusConfirmed, StatusTicketCreated, false},
		{StatusPending, TicketStatus("CANCELLED"), false},
	}
	for _, c := range cases {
		if got := c.from.CanAdvanceTo(c.to); got != c.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.ok, got)
		}
	}
}

func TestParseTicketStatusNormalizes(t *testing.T) {
	if s, ok := ParseTicketStatus(" ticket_created "); !ok || s != StatusTicketCreated {
		t.Fatalf("unexpected parse result: %s %v", s, ok)
	}
	if _, ok := ParseTicketStatus("CANCELLED"); ok {
		t.Fatalf("expected unknown status to fail")
	}
}
