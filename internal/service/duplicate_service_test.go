package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestDuplicateCheckQueriesOnlySuppliedFields(t *testing.T) {
	repo := newFakeSubmissionRepo()
	repo.teamNumbers["42"] = true
	svc := NewDuplicateService(repo, zerolog.Nop())

	result, err := svc.Check(context.Background(), "42", "")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !result.TeamNumberExists {
		t.Error("expected teamNumberExists to be true")
	}
	if result.ProjectTitleExists {
		t.Error("expected projectTitleExists to be false")
	}
	if repo.projectTitleLookups != 0 {
		t.Errorf("project title was queried %d times for an empty field", repo.projectTitleLookups)
	}
}

func TestDuplicateCheckProjectTitleOnly(t *testing.T) {
	repo := newFakeSubmissionRepo()
	repo.projectTitles["Smart Irrigation"] = true
	svc := NewDuplicateService(repo, zerolog.Nop())

	result, err := svc.Check(context.Background(), "", "Smart Irrigation")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if result.TeamNumberExists {
		t.Error("expected teamNumberExists to be false")
	}
	if !result.ProjectTitleExists {
		t.Error("expected projectTitleExists to be true")
	}
	if repo.teamNumberLookups != 0 {
		t.Errorf("team number was queried %d times for an empty field", repo.teamNumberLookups)
	}
}

func TestDuplicateCheckNoMatches(t *testing.T) {
	repo := newFakeSubmissionRepo()
	svc := NewDuplicateService(repo, zerolog.Nop())

	result, err := svc.Check(context.Background(), "7", "New Project")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if result.TeamNumberExists || result.ProjectTitleExists {
		t.Errorf("expected no matches, got %+v", result)
	}
}
