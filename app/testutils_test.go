package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/testutil"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

const testSecret = "not-so-secret"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, []byte) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, responseBody
}

// decode unmarshals a response body into dst and fails the test if it is not valid JSON.
func decode(t *testing.T, body []byte, dst any) {
	t.Helper()

	err := json.Unmarshal(body, dst)
	if err != nil {
		t.Fatalf("could not decode %q: %v", body, err)
	}
}

// errorMessage returns the message of an {"error": ...} response.
func errorMessage(t *testing.T, body []byte) string {
	t.Helper()

	var env struct {
		Error string `json:"error"`
	}
	decode(t, body, &env)
	return env.Error
}

func testConfig() *Config {
	return &Config{
		Port:        "0",
		Environment: "testing",
		Version:     "test",
		Secret:      testSecret,
		TokenTTL:    time.Hour,
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := testutil.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	rabbitURI := testutil.TestRabbitMQ(t)
	rabbitmq, err := common.NewMessageBroker(rabbitURI)
	require.NoError(t, err)
	t.Cleanup(func() { rabbitmq.Close() })

	err = common.SetupBlogExchange(rabbitmq)
	require.NoError(t, err)

	cfg := testConfig()
	signer, err := userservice.NewTokenSigner(cfg.Secret, cfg.TokenTTL)
	require.NoError(t, err)

	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		userService: userservice.NewUserService(db, signer),
		blogService: blogservice.NewBlogService(db, rabbitmq),
		broker:      rabbitmq,
		limiters:    common.NewCache(time.Minute, time.Minute),
	}

	return app, db
}

func (ts *testServer) request(t *testing.T, method, path string, token *string, payload any) (int, http.Header, []byte) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, data any, token *string) (int, http.Header, []byte) {
	return ts.request(t, http.MethodPost, path, token, data)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, []byte) {
	return ts.request(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) put(t *testing.T, path string, token *string, payload any) (int, http.Header, []byte) {
	return ts.request(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, []byte) {
	return ts.request(t, http.MethodDelete, path, token, nil)
}

// createUser registers a user through the API and returns its id.
func (ts *testServer) createUser(t *testing.T, username, password string) int {
	t.Helper()

	status, _, body := ts.post(t, "/api/users", map[string]any{"username": username, "name": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var user userservice.User
	decode(t, body, &user)
	return user.ID
}

// login returns a token for username.
func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	status, _, body := ts.post(t, "/api/login", map[string]any{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var res struct {
		Token string `json:"token"`
	}
	decode(t, body, &res)
	return res.Token
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	require.NoError(t, err)
	return count
}

func strptr(s string) *string {
	return &s
}
