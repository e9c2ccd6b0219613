package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEvalCountExpr(t *testing.T) {
	tests := []struct {
		expr   string
		actual int
		want   bool
	}{
		{"count>0", 1, true},
		{"count>0", 0, false},
		{"count>=3", 3, true},
		{"count>=3", 2, false},
		{"count=4", 4, true},
		{"count=4", 5, false},
		{"count<=2", 2, true},
		{"count<2", 2, false},
		{"count", 1, false},
		{"count>x", 1, false},
	}
	for _, tt := range tests {
		if got := evalCountExpr(tt.expr, tt.actual); got != tt.want {
			t.Errorf("evalCountExpr(%q, %d) = %v, want %v", tt.expr, tt.actual, got, tt.want)
		}
	}
}

func TestParseViewport(t *testing.T) {
	w, h, ok := parseViewport("375x812")
	if !ok || w != 375 || h != 812 {
		t.Errorf("parseViewport(375x812) = %d, %d, %v", w, h, ok)
	}
	for _, bad := range []string{"", "375", "0x812", "ax812", "375x-1"} {
		if _, _, ok := parseViewport(bad); ok {
			t.Errorf("parseViewport(%q) should fail", bad)
		}
	}
}

func TestLoginURLFor(t *testing.T) {
	got, err := loginURLFor("http://localhost:4241/products?type=mf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "http://localhost:4241/login" {
		t.Errorf("expected login URL on the same host, got %s", got)
	}
	if _, err := loginURLFor("/dashboard"); err == nil {
		t.Error("expected error for a relative URL")
	}
}

func TestCheckNotRedirected(t *testing.T) {
	if r := checkNotRedirected("http://localhost:4241/dashboard", "http://localhost:4241/dashboard", nil); !r.pass {
		t.Errorf("expected pass, got %+v", r)
	}
	r := checkNotRedirected("http://localhost:4241/dashboard", "http://localhost:4241/login", nil)
	if r.pass || !strings.Contains(r.detail, "/login") {
		t.Errorf("expected redirect failure, got %+v", r)
	}
	if r := checkNotRedirected("http://localhost:4241/dashboard", "", errors.New("boom")); r.pass {
		t.Error("expected failure on error")
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	failed := report(&buf, []result{
		{name: "js-errors", pass: true, detail: "none"},
		{name: "check(.summary-card|count=4)", pass: false, detail: "count=3"},
	})
	if failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
	out := buf.String()
	if !strings.Contains(out, "✗ check(.summary-card|count=4): count=3") {
		t.Errorf("missing failure line: %s", out)
	}
	if !strings.Contains(out, "1/2 passed") {
		t.Errorf("missing summary: %s", out)
	}
}

func TestIsTruthy(t *testing.T) {
	if !isTruthy(true) || isTruthy(false) || isTruthy(0.0) || !isTruthy("x") || isTruthy("") || isTruthy(nil) {
		t.Error("unexpected truthiness")
	}
	if !isTruthy([]interface{}{}) {
		t.Error("objects are truthy")
	}
}

func TestEscJS(t *testing.T) {
	if got := escJS(`a[name='x']`); got != `a[name=\'x\']` {
		t.Errorf("unexpected escape: %s", got)
	}
}
