package feature

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoadSchema_Sources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feature_meta.json":
			w.Write([]byte(`{"feature_columns": ["month", "day", "year"], "model_version": "remote"}`))
		case "/feature_scaler.json":
			w.Write([]byte(`{"month": {"mean": 6, "std": 3}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	builtin, err := LoadSchema(ctx, "", time.Second)
	if err != nil || builtin.Len() != len(DefaultFlightColumns) {
		t.Fatalf("LoadSchema(\"\") = %v, %v", builtin, err)
	}

	remote, err := LoadSchema(ctx, srv.URL+"/feature_meta.json", time.Second)
	if err != nil {
		t.Fatalf("LoadSchema(http) error = %v", err)
	}
	if remote.ModelVersion != "remote" {
		t.Errorf("ModelVersion = %q, want remote", remote.ModelVersion)
	}

	scaler, err := LoadScaler(ctx, srv.URL+"/feature_scaler.json", time.Second)
	if err != nil {
		t.Fatalf("LoadScaler(http) error = %v", err)
	}
	if scaler["month"].Std != 3 {
		t.Errorf("scaler = %+v", scaler)
	}

	if _, err := LoadSchema(ctx, srv.URL+"/missing", time.Second); err == nil {
		t.Error("LoadSchema() expected error for 404")
	}

	none, err := LoadScaler(ctx, "", time.Second)
	if err != nil || none != nil {
		t.Errorf("LoadScaler(\"\") = %v, %v, want nil, nil", none, err)
	}
}
