package glpi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGLPI is a minimal stand-in for a GLPI REST endpoint. It serves a
// fixed computer list and records how it was asked for it.
type fakeGLPI struct {
	t             *testing.T
	computers     []map[string]interface{}
	contentRange  bool
	pageRequests  []string
	sessionKilled bool
}

func (f *fakeGLPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/initSession", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("App-Token") != "app-token" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `["ERROR_APP_TOKEN_PARAMETERS_MISSING"]`)
			return
		}
		fmt.Fprint(w, `{"session_token": "session-abc"}`)
	})

	mux.HandleFunc("/killSession", func(w http.ResponseWriter, r *http.Request) {
		f.sessionKilled = true
	})

	mux.HandleFunc("/Computer", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(f.t, "session-abc", r.Header.Get("Session-Token"))
		assert.Equal(f.t, "true", r.URL.Query().Get("expand_dropdowns"))
		assert.Equal(f.t, "false", r.URL.Query().Get("get_hateoas"))

		rangeParam := r.URL.Query().Get("range")
		f.pageRequests = append(f.pageRequests, rangeParam)

		start, end := parseRange(f.t, rangeParam)
		if start >= len(f.computers) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `["ERROR_RANGE_EXCEED_TOTAL"]`)
			return
		}
		if end >= len(f.computers) {
			end = len(f.computers) - 1
		}

		if f.contentRange {
			w.Header().Set("Content-Range", fmt.Sprintf("items %d-%d/%d", start, end, len(f.computers)))
		}
		json.NewEncoder(w).Encode(f.computers[start : end+1])
	})

	return mux
}

func parseRange(t *testing.T, raw string) (int, int) {
	t.Helper()
	parts := strings.SplitN(raw, "-", 2)
	require.Len(t, parts, 2)
	start, err := strconv.Atoi(parts[0])
	require.NoError(t, err)
	end, err := strconv.Atoi(parts[1])
	require.NoError(t, err)
	return start, end
}

func makeComputers(n int) []map[string]interface{} {
	computers := make([]map[string]interface{}, n)
	for i := range computers {
		computers[i] = map[string]interface{}{
			"id":                i + 1,
			"computermodels_id": fmt.Sprintf("Model %d", i+1),
		}
	}
	return computers
}

func newTestClient(serverURL string, pageSize int) *Client {
	return NewClient(Config{
		APIURL:    serverURL,
		AppToken:  "app-token",
		UserToken: "user-token",
		PageSize:  pageSize,
	}, nil)
}

func TestOpenRejectsBadCredentials(t *testing.T) {
	fake := &fakeGLPI{t: t}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := NewClient(Config{APIURL: server.URL, AppToken: "wrong"}, nil)

	_, err := client.Open(context.Background())

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
}

func TestFetchComputersPagesByAdvertisedTotal(t *testing.T) {
	fake := &fakeGLPI{t: t, computers: makeComputers(5), contentRange: true}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := newTestClient(server.URL, 2)
	session, err := client.Open(context.Background())
	require.NoError(t, err)

	computers, err := session.FetchComputers(context.Background())
	require.NoError(t, err)
	assert.Len(t, computers, 5)

	// One probe plus ceil(5/2) data pages.
	assert.Equal(t, []string{"0-0", "0-1", "2-3", "4-5"}, fake.pageRequests)

	id, ok := computers[4].ExternalID()
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
}

func TestFetchComputersFallsBackToSequentialPaging(t *testing.T) {
	fake := &fakeGLPI{t: t, computers: makeComputers(5), contentRange: false}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := newTestClient(server.URL, 2)
	session, err := client.Open(context.Background())
	require.NoError(t, err)

	computers, err := session.FetchComputers(context.Background())
	require.NoError(t, err)
	assert.Len(t, computers, 5)

	// Without a total the last short page terminates the loop.
	assert.Equal(t, []string{"0-0", "0-1", "2-3", "4-5"}, fake.pageRequests)
}

func TestFetchComputersHandlesEmptyInventory(t *testing.T) {
	fake := &fakeGLPI{t: t, computers: nil, contentRange: false}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := newTestClient(server.URL, 100)
	session, err := client.Open(context.Background())
	require.NoError(t, err)

	computers, err := session.FetchComputers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, computers)

	// The probe's range-exceeded response is enough; no data pages follow.
	assert.Equal(t, []string{"0-0"}, fake.pageRequests)
}

func TestSessionCloseKillsRemoteSession(t *testing.T) {
	fake := &fakeGLPI{t: t, computers: makeComputers(1), contentRange: true}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := newTestClient(server.URL, 10)
	session, err := client.Open(context.Background())
	require.NoError(t, err)

	session.Close()
	assert.True(t, fake.sessionKilled)

	// A second close is a no-op.
	fake.sessionKilled = false
	session.Close()
	assert.False(t, fake.sessionKilled)
}

func TestFetchComputersSurfacesServerErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/initSession", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"session_token": "session-abc"}`)
	})
	mux.HandleFunc("/Computer", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `["ERROR_SQL"]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL, 10)
	session, err := client.Open(context.Background())
	require.NoError(t, err)

	_, err = session.FetchComputers(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.Status)
}

func TestOpenSendsUserTokenHeader(t *testing.T) {
	var authHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("/initSession", func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"session_token": "session-abc"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL, 10)
	_, err := client.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user_token user-token", authHeader)
}

func TestRequiredFieldsRequested(t *testing.T) {
	var fields string
	mux := http.NewServeMux()
	mux.HandleFunc("/initSession", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"session_token": "session-abc"}`)
	})
	mux.HandleFunc("/Computer", func(w http.ResponseWriter, r *http.Request) {
		fields = r.URL.Query().Get("fields")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `["ERROR_RANGE_EXCEED_TOTAL"]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL, 10)
	session, err := client.Open(context.Background())
	require.NoError(t, err)

	_, err = session.FetchComputers(context.Background())
	require.NoError(t, err)

	decoded, err := url.QueryUnescape(fields)
	require.NoError(t, err)
	for _, field := range []string{"id", "otherserial", "states_id", "date_mod", "date_creation"} {
		assert.Contains(t, strings.Split(decoded, ","), field)
	}
}
