package docskema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/reoring/docskema"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := docskema.Issues{
		{Path: "a", Code: docskema.CodeTypeMismatch},
		{Path: "b", Code: docskema.CodeUnknownField},
		{Path: "", Code: docskema.CodeMissingField},
		{Path: "d", Code: docskema.CodeRequired},
	}
	s := iss.Error()
	if !strings.Contains(s, "type_mismatch at a") {
		t.Fatalf("unexpected summary: %s", s)
	}
	if !strings.Contains(s, "<root>") {
		t.Fatalf("root path should render as <root>: %s", s)
	}
	if !strings.Contains(s, "(total 4)") {
		t.Fatalf("expected total count in summary: %s", s)
	}
}

// TestErrorModel_CollectVsFailFast_And_AsIssues compares accumulate versus
// fail-fast behavior and exercises both AsIssues and errors.As helpers.
func TestErrorModel_CollectVsFailFast_And_AsIssues(t *testing.T) {
	user := docskema.MustDeclare(docskema.Declaration{
		Name: "user",
		Structure: docskema.Struct(
			docskema.F("id", docskema.Prim(docskema.TypeString)),
			docskema.F("email", docskema.Prim(docskema.TypeString)),
		),
	}, nil)
	doc := docskema.Document{"email": 1, "zzz": true}

	err := user.Validate(doc, docskema.ValidateOpt{Mode: docskema.ModeAccumulate})
	var iss docskema.Issues
	if !errors.As(err, &iss) {
		t.Fatalf("expected errors.As to extract Issues, got: %v", err)
	}
	// unknown zzz, missing id, type mismatch on email
	if len(iss) != 3 {
		t.Fatalf("expected 3 issues, got: %v", iss)
	}
	if iss[0].Code != docskema.CodeUnknownField || iss[0].Path != "zzz" {
		t.Fatalf("unexpected first issue: %v", iss[0])
	}
	if !iss.Has(docskema.CodeMissingField) || len(iss.At("email")) != 1 {
		t.Fatalf("unexpected issues: %v", iss)
	}

	err = user.Validate(doc)
	iss2, ok := docskema.AsIssues(err)
	if !ok || len(iss2) != 1 {
		t.Fatalf("expected one fail-fast issue, got: %v", err)
	}
}

func TestIssue_Class(t *testing.T) {
	cases := map[string]docskema.ErrorClass{
		docskema.CodeUnknownField:       docskema.ClassStructure,
		docskema.CodeInvalidLanguage:    docskema.ClassStructure,
		docskema.CodeTypeMismatch:       docskema.ClassType,
		docskema.CodeUnauthorizedType:   docskema.ClassType,
		docskema.CodeRequired:           docskema.ClassRequired,
		docskema.CodeValidatorFailed:    docskema.ClassValidator,
		docskema.CodeCustomTypeMismatch: docskema.ClassCustomType,
		"other":                         docskema.ClassUnknown,
	}
	for code, want := range cases {
		if got := (docskema.Issue{Code: code}).Class(); got != want {
			t.Fatalf("%s: got %s want %s", code, got, want)
		}
	}
}

func TestDefinitionError_UnwrapsSentinel(t *testing.T) {
	_, err := docskema.Declare(docskema.Declaration{
		Name:      "k",
		Structure: docskema.Struct(docskema.F("a", docskema.Prim(docskema.TypeInt))),
		Required:  []string{"b"},
	}, nil)
	if !errors.Is(err, docskema.ErrPathNotInNamespace) {
		t.Fatalf("expected ErrPathNotInNamespace, got %v", err)
	}
	var de *docskema.DefinitionError
	if !errors.As(err, &de) || de.Schema != "k" || de.Path != "b" {
		t.Fatalf("unexpected definition error: %#v", err)
	}
	if !strings.Contains(err.Error(), `of "k" at "b"`) {
		t.Fatalf("unexpected message: %s", err)
	}
}
