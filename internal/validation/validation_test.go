package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCommentContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode string
	}{
		{name: "valid", content: "Nice post, thanks"},
		{name: "exactly_min", content: "12345"},
		{name: "exactly_max", content: strings.Repeat("a", 10000)},
		{name: "multibyte_counts_runes", content: "ééééé"},
		{name: "blank", content: "   ", wantCode: CodeBlank},
		{name: "empty", content: "", wantCode: CodeBlank},
		{name: "too_short", content: "1234", wantCode: CodeTooShort},
		{name: "too_long", content: strings.Repeat("a", 10001), wantCode: CodeTooLong},
		{name: "spam", content: "write me at bob@example.com", wantCode: CodeIsSpam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommentContent(tt.content)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateCommentContent() = err %v, want nil", err)
				}
				return
			}

			var errs Errors
			if !errors.As(err, &errs) {
				t.Fatalf("ValidateCommentContent() = err %v, want validation.Errors", err)
			}
			if got := errs[FieldContent].Code; got != tt.wantCode {
				t.Errorf("ValidateCommentContent() code = %q, want %q", got, tt.wantCode)
			}
			if errs[FieldContent].Message == "" {
				t.Errorf("ValidateCommentContent() empty message for %q", tt.wantCode)
			}
		})
	}
}

func TestErrorsFirstViolationWins(t *testing.T) {
	err := ValidateCommentContent("a@b")
	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("ValidateCommentContent() = err %v, want validation.Errors", err)
	}
	if errs[FieldContent].Code != CodeTooShort {
		t.Errorf("ValidateCommentContent() code = %q, want %q", errs[FieldContent].Code, CodeTooShort)
	}
	if !strings.Contains(err.Error(), "content:") {
		t.Errorf("Error() = %q, want field prefix", err.Error())
	}
}
