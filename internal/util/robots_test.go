package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_CanFetch(t *testing.T) {
	var robotsHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("claimcheck/0.1", 5*time.Second)
	ctx := context.Background()

	allowed, err := checker.CanFetch(ctx, server.URL+"/news/article")
	if err != nil || !allowed {
		t.Errorf("Expected /news/article to be allowed, got allowed=%v err=%v", allowed, err)
	}

	allowed, err = checker.CanFetch(ctx, server.URL+"/private/page")
	if err != nil || allowed {
		t.Errorf("Expected /private/page to be disallowed, got allowed=%v err=%v", allowed, err)
	}

	if robotsHits.Load() != 1 {
		t.Errorf("Expected robots.txt to be fetched once per host, got %d", robotsHits.Load())
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("claimcheck/0.1", 5*time.Second)
	allowed, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil || !allowed {
		t.Errorf("Expected fetch to be allowed without robots.txt, got allowed=%v err=%v", allowed, err)
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	checker := NewRobotsChecker("claimcheck/0.1", time.Second)
	allowed, err := checker.CanFetch(context.Background(), url+"/page")
	if err != nil || !allowed {
		t.Errorf("Expected unreachable robots.txt to allow, got allowed=%v err=%v", allowed, err)
	}
}

func TestRobotsChecker_InvalidURL(t *testing.T) {
	checker := NewRobotsChecker("claimcheck/0.1", time.Second)
	if _, err := checker.CanFetch(context.Background(), "not a url"); err == nil {
		t.Error("Expected error for URL without host")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := map[string]string{
		"claimcheck/0.1 (+https://example.com)": "claimcheck",
		"Mozilla/5.0 (Windows NT 10.0)":         "Mozilla",
		"":                                      "",
	}
	for in, want := range tests {
		if got := NormalizeUserAgent(in); got != want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", in, got, want)
		}
	}
}
