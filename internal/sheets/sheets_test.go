package sheets

import (
	"errors"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestHeaders_NineColumns(t *testing.T) {
	if len(Headers) != 9 {
		t.Fatalf("expected 9 header columns, got %d", len(Headers))
	}
	for i, h := range Headers {
		if h == "" {
			t.Errorf("header %d is empty", i)
		}
	}
}

func TestSpreadsheetURL(t *testing.T) {
	got := SpreadsheetURL("abc123")
	want := "https://docs.google.com/spreadsheets/d/abc123/edit"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrapAPIError_AuthCodes(t *testing.T) {
	for _, code := range []int{401, 403} {
		err := wrapAPIError("append rows", &googleapi.Error{Code: code})
		if !errors.Is(err, ErrAuth) {
			t.Errorf("code %d: expected ErrAuth, got %v", code, err)
		}
	}
}

func TestWrapAPIError_OtherCodes(t *testing.T) {
	err := wrapAPIError("append rows", &googleapi.Error{Code: 500})
	if errors.Is(err, ErrAuth) {
		t.Error("500 must not map to ErrAuth")
	}
	if err == nil {
		t.Error("expected an error")
	}
}
