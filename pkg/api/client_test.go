package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_POST(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"foo":"bar"}`, string(b))

		_, _ = w.Write([]byte(`{"data":{"user":{"name":"alice"}}}`))
	}))
	defer srv.Close()

	resp, err := NewGenerator(srv.URL).New("/graphql").
		Body(JSON{"foo": "bar"}).
		POST(context.Background(), Bearer("Bearer", "abc"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)

	body, ok := resp.Body.(JSON)
	require.True(t, ok)

	user, err := body.GetJSON("data.user")
	require.NoError(t, err)
	require.Equal(t, JSON{"name": "alice"}, user)
}

func TestClient_Failover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/items", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer srv.Close()

	// The first domain is unreachable, every attempt must end on the live one.
	gen := NewGenerator("http://127.0.0.1:1", srv.URL)
	for i := 0; i < 3; i++ {
		resp, err := gen.New("/items").POST(context.Background())
		require.NoError(t, err)
		require.Equal(t, Array{{"id": "1"}}, resp.Body)
	}
}

func TestClient_AllEndpointsFail(t *testing.T) {
	_, err := NewGenerator("http://127.0.0.1:1").New("/").POST(context.Background())
	require.Error(t, err)
}

func TestBytesToJSON_KeepsIntegerPrecision(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    json.Number
		wantErr bool
	}{
		{name: "above float64 mantissa", body: `{"n":9007199254740993}`, want: "9007199254740993"},
		{name: "negative", body: `{"n":-1}`, want: "-1"},
		{name: "fraction", body: `{"n":1.5}`, want: "1.5"},
		{name: "trailing data", body: `{"n":1}{"n":2}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bytesToJSON([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got["n"])
		})
	}
}

func TestJSON_Get(t *testing.T) {
	j := JSON{"a": map[string]any{"b": "c", "d": map[string]any{"e": "f"}}, "n": nil}

	v, err := j.Get("a.b")
	require.NoError(t, err)
	require.Equal(t, "c", v)

	sub, err := j.GetJSON("a.d")
	require.NoError(t, err)
	require.Equal(t, JSON{"e": "f"}, sub)

	sub, err = j.GetJSON("n")
	require.NoError(t, err)
	require.Nil(t, sub)

	_, err = j.Get("missing")
	require.Error(t, err)

	_, err = j.GetJSON("a.b")
	require.Error(t, err)

	arr, err := JSON{"xs": []any{"1"}}.GetArray("xs")
	require.NoError(t, err)
	require.Equal(t, []any{"1"}, arr)
}
