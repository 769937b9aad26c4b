package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldline/triage/pkg/routes"
)

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/requests",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: named("list")},
			{Method: "GET", Pattern: "/{id}", Handler: named("find")},
			{Method: "POST", Pattern: "", Handler: named("create")},
		},
	})

	tests := []struct {
		method string
		target string
		want   string
	}{
		{"GET", "/requests", "list"},
		{"GET", "/requests/abc", "find"},
		{"POST", "/requests", "create"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("handler = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/classifications",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: named("find")},
		},
		Children: []routes.Group{
			{
				Prefix: "/ticket",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{id}", Handler: named("by-ticket")},
				},
			},
		},
	})

	req := httptest.NewRequest("GET", "/classifications/ticket/abc", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "by-ticket" {
		t.Errorf("handler = %q, want by-ticket", got)
	}
}

func TestMethodMismatch(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/requests",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: named("list")},
		},
	})

	req := httptest.NewRequest("DELETE", "/requests", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
