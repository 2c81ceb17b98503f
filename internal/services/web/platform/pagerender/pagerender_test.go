package pagerender

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
)

func TestWritePageRendersHTMXFragmentWithStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/vi/", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, Page{
		Tag:        language.Vietnamese,
		StatusCode: http.StatusCreated,
		Body:       textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body missing fragment marker: %q", body)
	}
	if strings.Contains(strings.ToLower(body), "<!doctype html") || strings.Contains(strings.ToLower(body), "<html") {
		t.Fatalf("expected htmx fragment without full document wrapper")
	}
}

func TestWritePageRendersFullPageWithLayout(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/vi/", nil)
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, Page{
		Tag:        language.Vietnamese,
		StatusCode: http.StatusAccepted,
		Body:       textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="main"`, `id="fragment-root"`, `<html lang="vi">`, `id="auth-buttons"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
}

func TestWritePageDefaultsToEnglish(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WritePage(rr, httptest.NewRequest(http.MethodGet, "/", nil), Page{}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `<html lang="en">`) {
		t.Fatalf("body missing english html tag: %q", rr.Body.String())
	}
}

func TestWriteFragmentPropagatesRenderError(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error {
		return errors.New("render failed")
	})
	if err := WriteFragment(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, failing); err == nil {
		t.Fatalf("WriteFragment() error = nil, want error")
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty on render failure", rr.Body.String())
	}
}

type textComponent string

func (c textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(c))
	return err
}
