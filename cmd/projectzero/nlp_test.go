package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNLPCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`{"message":"Hello from FastAPI"}`))
		case "/process_text":
			_, _ = w.Write([]byte(`{"id":"1","keyword_extraction":{"keywords":["go"]}}`))
		case "/process_text_async":
			_, _ = w.Write([]byte(`{"task_id":"t-1","status":"processing"}`))
		case "/get_result/t-1":
			_, _ = w.Write([]byte(`{"status":"completed"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
		}
	}))
	defer server.Close()

	tests := []struct {
		name      string
		args      []string
		want      string
		wantError string
	}{
		{
			name: "ping",
			args: []string{"nlp", "ping"},
			want: "{\n  \"message\": \"Hello from FastAPI\"\n}\n",
		},
		{
			name: "process",
			args: []string{"nlp", "process", "Go", "is", "fun"},
			want: "{\n  \"id\": \"1\",\n  \"keyword_extraction\": {\n    \"keywords\": [\n      \"go\"\n    ]\n  }\n}\n",
		},
		{
			name: "process asynchronously",
			args: []string{"nlp", "process", "--async", "Go"},
			want: "{\n  \"task_id\": \"t-1\",\n  \"status\": \"processing\"\n}\n",
		},
		{
			name: "result",
			args: []string{"nlp", "result", "t-1"},
			want: "{\n  \"status\": \"completed\"\n}\n",
		},
		{
			name: "result with wait",
			args: []string{"nlp", "result", "--wait", "t-1"},
			want: "{\n  \"status\": \"completed\"\n}\n",
		},
		{
			name:      "unknown task",
			args:      []string{"nlp", "result", "missing"},
			wantError: "response error 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, fmt.Sprintf("nlp:\n  base_url: %s\n  poll_interval: 1ms\n", server.URL))
			got, err := execute(t, append([]string{"--config", path}, tt.args...)...)
			if tt.wantError != "" {
				assert.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
