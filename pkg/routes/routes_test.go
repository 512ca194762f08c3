package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/image-forge/pkg/routes"
)

func TestRegister_NestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	called := ""
	handler := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			called = name
			w.WriteHeader(http.StatusOK)
		}
	}

	routes.Register(mux, "/api", routes.Group{
		Prefix: "/convert",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: handler("convert")},
		},
		Children: []routes.Group{
			{
				Prefix: "/favicons",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: handler("favicons")},
				},
			},
		},
	})

	tests := []struct {
		path string
		want string
	}{
		{"/api/convert", "convert"},
		{"/api/convert/favicons", "favicons"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			called = ""
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if called != tt.want {
				t.Errorf("handler = %q, want %q", called, tt.want)
			}
		})
	}
}

func TestWalk_InheritsTags(t *testing.T) {
	noop := func(w http.ResponseWriter, r *http.Request) {}
	groups := []routes.Group{
		{
			Prefix: "/batches",
			Tags:   []string{"History"},
			Routes: []routes.Route{{Method: "GET", Pattern: "", Handler: noop}},
			Children: []routes.Group{
				{Prefix: "/{id}", Routes: []routes.Route{{Method: "GET", Pattern: "", Handler: noop}}},
			},
		},
		{
			Routes: []routes.Route{{Method: "GET", Pattern: "/formats", Handler: noop}},
		},
	}

	got := map[string][]string{}
	routes.Walk("/api", groups, func(path string, tags []string, route routes.Route) {
		got[path] = tags
	})

	if len(got) != 3 {
		t.Fatalf("walked %d routes, want 3", len(got))
	}
	if tags := got["/api/batches/{id}"]; len(tags) != 1 || tags[0] != "History" {
		t.Errorf("child tags = %v, want [History]", tags)
	}
	if tags := got["/api/formats"]; len(tags) != 0 {
		t.Errorf("untagged route tags = %v", tags)
	}
}
