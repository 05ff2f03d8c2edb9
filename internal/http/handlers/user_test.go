package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tanujaya/user-directory/internal/data/repos"
	"github.com/tanujaya/user-directory/internal/data/repos/testutil"
	"github.com/tanujaya/user-directory/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	svc := services.NewDirectoryService(tx, testutil.Logger(t), repos.NewUserRepo(tx, testutil.Logger(t)))

	r := gin.New()
	uh := NewUserHandler(svc)
	r.GET("/users", uh.List)
	r.POST("/users", uh.Create)
	r.GET("/users/:id", uh.Get)
	r.PUT("/users/:id", uh.Update)
	r.DELETE("/users/:id", uh.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const janeBody = `{"firstname":"Jane","lastname":"Doe","birthdate":"1990-01-01","street":"1 Main","city":"Springfield","province":"IL","postal_code":"62701"}`

func TestListEmpty(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/users?page=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var out struct {
		Users      []json.RawMessage `json:"users"`
		Pagination struct {
			Page       int   `json:"page"`
			TotalPages int   `json:"totalPages"`
			Total      int64 `json:"total"`
			HasNext    bool  `json:"hasNext"`
			HasPrev    bool  `json:"hasPrev"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Users == nil || len(out.Users) != 0 {
		t.Fatalf("expected empty users array, got %v", out.Users)
	}
	p := out.Pagination
	if p.Page != 1 || p.TotalPages != 0 || p.Total != 0 || p.HasNext || p.HasPrev {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestCreateReturnsCreatedUser(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/users", janeBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var out struct {
		ID        int64  `json:"id"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Birthdate string `json:"birthdate"`
		Address   *struct {
			Street     string `json:"street"`
			City       string `json:"city"`
			Province   string `json:"province"`
			PostalCode string `json:"postal_code"`
		} `json:"address"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID == 0 {
		t.Fatalf("expected assigned id, body=%s", rec.Body.String())
	}
	if out.Firstname != "Jane" || out.Lastname != "Doe" || out.Birthdate != "1990-01-01" {
		t.Fatalf("unexpected user fields: %+v", out)
	}
	if out.Address == nil || out.Address.Street != "1 Main" || out.Address.PostalCode != "62701" {
		t.Fatalf("unexpected address: %+v", out.Address)
	}
}

func TestCreateValidationFailure(t *testing.T) {
	r := newTestRouter(t)

	body := `{"lastname":"Doe","birthdate":"1990-01-01","street":"1 Main","city":"Springfield","province":"IL","postal_code":"62701"}`
	rec := doJSON(t, r, http.MethodPost, "/users", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var out struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error.Code != "validation_failed" {
		t.Fatalf("unexpected code: %q", out.Error.Code)
	}
	if out.Error.Fields["firstname"] == "" {
		t.Fatalf("expected firstname error, got %v", out.Error.Fields)
	}
}

func TestGetNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/users/999999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetInvalidID(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/users/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/users", janeBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	update := `{"firstname":"Janet","lastname":"Doe","birthdate":"1990-01-01","street":"2 Oak","city":"Springfield","province":"IL","postal_code":"62701"}`
	rec = doJSON(t, r, http.MethodPut, "/users/"+jsonID(created.ID), update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/users/"+jsonID(created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"firstname":"Janet"`) ||
		!strings.Contains(rec.Body.String(), `"street":"2 Oak"`) {
		t.Fatalf("update not applied: %s", rec.Body.String())
	}
}

func TestUpdateNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPut, "/users/999999", janeBody)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodDelete, "/users/999999", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "deleted successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func jsonID(id int64) string {
	return strconv.FormatInt(id, 10)
}
