package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestListUsersSendsPageAndSearch(t *testing.T) {
	t.Parallel()

	var gotPage, gotSearch string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotSearch = r.URL.Query().Get("search")
		_ = json.NewEncoder(w).Encode(ListResponse{
			Users:      []User{{ID: 3, Firstname: "Anne"}},
			Pagination: Pagination{Page: 2, TotalPages: 2, Total: 6, HasPrev: true},
		})
	}))

	resp, err := c.ListUsers(context.Background(), 2, "ann")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if gotPage != "2" || gotSearch != "ann" {
		t.Fatalf("got page=%q search=%q", gotPage, gotSearch)
	}
	if len(resp.Users) != 1 || resp.Users[0].Firstname != "Anne" {
		t.Fatalf("unexpected users: %+v", resp.Users)
	}
	if !resp.Pagination.HasPrev || resp.Pagination.Total != 6 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestListUsersClampsPage(t *testing.T) {
	t.Parallel()

	var gotPage string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		_ = json.NewEncoder(w).Encode(ListResponse{Users: []User{}})
	}))

	if _, err := c.ListUsers(context.Background(), -4, ""); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if gotPage != "1" {
		t.Fatalf("expected page clamped to 1, got %q", gotPage)
	}
}

func TestCreateUserParsesValidationError(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Validation failed","code":"validation_failed","fields":{"firstname":"First name is required"}}}`))
	}))

	_, err := c.CreateUser(context.Background(), UserInput{})
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if herr.StatusCode != http.StatusBadRequest || herr.Code != "validation_failed" {
		t.Fatalf("unexpected error: %+v", herr)
	}
	if herr.Fields["firstname"] == "" {
		t.Fatalf("expected firstname field error, got %+v", herr.Fields)
	}
}

func TestDoJSONRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(User{ID: 1, Firstname: "Jane"})
	}))
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL, MaxRetries: 2, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	u, err := c.GetUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Firstname != "Jane" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestDoJSONDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"User not found","code":"not_found"}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL, MaxRetries: 3, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.GetUser(context.Background(), 99)
	var herr *HTTPError
	if !errors.As(err, &herr) || herr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
}

func TestDeleteUserSucceeds(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"message":"User deleted successfully"}`))
	}))

	if err := c.DeleteUser(context.Background(), 7); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/users/7" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
}
