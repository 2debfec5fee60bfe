package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"registry error", "E001", "Unsupported removal shape", CategoryRegistry},
		{"dispatch error", "E002", "Handler is not callable", CategoryDispatch},
		{"selector error", "E003", "Invalid selector", CategorySelector},
		{"source error", "E040", "Unsupported source scheme", CategorySource},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryDocument, "node %q missing", "#nav")
	if err.Message != `node "#nav" missing` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryDocument {
		t.Errorf("Category = %q, want %q", err.Category, CategoryDocument)
	}
	if err.Error() != `node "#nav" missing` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestDomError_Error(t *testing.T) {
	cause := stderrors.New("unexpected token")
	err := New("E003").WithSubject("li:nth(").Wrap(cause)

	want := "E003: Invalid selector (li:nth(): unexpected token"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestDomError_IsByCode(t *testing.T) {
	err := New("E001").WithSubject("off(click)")
	if !stderrors.Is(err, New("E001")) {
		t.Error("errors with the same code should match")
	}
	if stderrors.Is(err, New("E002")) {
		t.Error("errors with different codes should not match")
	}
	if stderrors.Is(err, &DomError{Message: "no code"}) {
		t.Error("code-less target should not match")
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E041").Wrap(stderrors.New("timeout"))
	outer := New("E020").Wrap(inner)

	if !HasCode(outer, "E020") || !HasCode(outer, "E041") {
		t.Error("HasCode should find both codes in the chain")
	}
	if HasCode(outer, "E060") {
		t.Error("HasCode found a code that is not in the chain")
	}
	if HasCode(nil, "E020") {
		t.Error("HasCode(nil) should be false")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E041") != nil {
		t.Error("FromError(nil) should return nil")
	}

	existing := New("E020")
	if FromError(existing, "E041") != existing {
		t.Error("FromError should return DomError values unchanged")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "E041")
	if got.Code != "E041" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E003").
		WithSubject("ul >").
		WithSuggestion("Complete the combinator").
		Wrap(stderrors.New("expected selector"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E003: Invalid selector",
		"ul >",
		"Cause: expected selector",
		"Hint: Complete the combinator",
		"Learn more: " + docBase + "E003",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E021").WithSubject("#missing")
	if got := err.FormatCompact(); got != "#missing: E021: Node not found" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E002").WithSubject("click").Wrap(stderrors.New("int is not callable"))

	var decoded map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jerr != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v", jerr)
	}
	if decoded["code"] != "E002" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["category"] != string(CategoryDispatch) {
		t.Errorf("category = %v", decoded["category"])
	}
	if decoded["cause"] != "int is not callable" {
		t.Errorf("cause = %v", decoded["cause"])
	}
}

func TestWrapText(t *testing.T) {
	if wrapText("", 10) != nil {
		t.Error("wrapText of empty string should be nil")
	}
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint plain = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, New("E080").WithSubject("--target"))
	if !strings.Contains(buf.String(), "ERROR E080: Missing flag") {
		t.Errorf("Fprint coded = %q", buf.String())
	}
}

func TestRegistry(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%q) missing", code)
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %s is incomplete: %+v", code, tmpl)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("template %s DocURL = %q", code, tmpl.DocURL)
		}
	}

	Register("E900", ErrorTemplate{Category: CategoryCLI, Message: "custom", DocURL: docBase + "E900"})
	if New("E900").Message != "custom" {
		t.Error("Register did not add the template")
	}
}
