package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mendelone/spotoption-api-client/spotoption"
)

func TestRunPrintsResponse(t *testing.T) {
	var (
		mu      sync.Mutex
		modules []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		modules = append(modules, r.PostForm.Get("MODULE"))
		mu.Unlock()
		switch r.PostForm.Get("MODULE") {
		case "Country":
			fmt.Fprint(w, `<status><Country><data_0><id>1</id><name>Malta</name></data_0></Country></status>`)
		default:
			fmt.Fprint(w, `<status><Customer><id>42</id><authKey>abc</authKey></Customer></status>`)
		}
	}))
	defer ts.Close()

	client := spotoption.NewClient(ts.URL, "u", "p")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), client, "countries", options{}, &out))
	require.JSONEq(t, `{"countries":[{"id":1,"name":"Malta"}]}`, out.String())

	out.Reset()
	require.NoError(t, run(context.Background(), client, "validate", options{email: "a@b.c", password: "x"}, &out))
	require.JSONEq(t, `{"id":42,"authKey":"abc","accountBalance":null}`, out.String())

	mu.Lock()
	require.Equal(t, []string{"Country", "Customer"}, modules)
	mu.Unlock()
}

func TestRunUnknownCommand(t *testing.T) {
	client := spotoption.NewClient("http://127.0.0.1:0", "u", "p")
	require.Error(t, run(context.Background(), client, "delete-everything", options{}, &bytes.Buffer{}))
}
