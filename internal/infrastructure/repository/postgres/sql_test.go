package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	violation := &pq.Error{Code: "23505", Constraint: "dispute_votes_one_per_voter"}

	if !isUniqueViolation(violation, "dispute_votes_one_per_voter") {
		t.Fatal("expected match on named constraint")
	}
	if !isUniqueViolation(violation, "") {
		t.Fatal("expected match on any constraint")
	}
	if isUniqueViolation(violation, "disputes_one_open_per_match") {
		t.Fatal("expected mismatch on a different constraint")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}, "") {
		t.Fatal("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(fmt.Errorf("plain error"), "") {
		t.Fatal("plain errors are not unique violations")
	}

	wrapped := fmt.Errorf("insert dispute vote: %w", violation)
	if !isUniqueViolation(wrapped, "dispute_votes_one_per_voter") {
		t.Fatal("expected match through wrapping")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows must report not found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatal("unrelated errors are not not-found")
	}
}
