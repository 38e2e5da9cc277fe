package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/clubroster/internal/api"
	"github.com/mcoot/clubroster/internal/factory"
	"github.com/mcoot/clubroster/internal/seed"
	"github.com/mcoot/clubroster/internal/testutil"
	"github.com/mcoot/clubroster/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "clubroster-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/clubroster")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "CLUBROSTER_TOKEN=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", filepath.Join(filepath.Dir(r.tokenFile), "unused-token"),
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the full API and web stack on a free port
func startTestServer(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)
	require.NoError(t, seed.Demo(t.Context(), app.Storage, app.AuthService, logger))

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:        logger,
		AuthService:   app.AuthService,
		RosterService: app.RosterService,
	}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{
		Logger:        logger,
		AuthService:   app.AuthService,
		RosterService: app.RosterService,
	}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		_ = app.Close()
	})

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

type playerResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	DUPRRating float64 `json:"dupr_rating"`
}

func parseJSON[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

func TestCLI_Health(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	cli := newCLIRunner(t, startTestServer(t))

	output, err := cli.run("health")
	require.NoError(t, err, output)

	health := parseJSON[map[string]string](t, output)
	assert.Equal(t, "ok", health["status"])
}

func TestCLI_LoginSearchLogout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	cli := newCLIRunner(t, startTestServer(t))

	// Search before login fails without a network call
	output, err := cli.run("search", "john")
	require.Error(t, err)
	assert.Contains(t, output, "not logged in")

	output, err = cli.run("login", "--email", seed.DemoEmail, "--password", seed.DemoPassword)
	require.NoError(t, err, output)
	login := parseJSON[map[string]string](t, output)
	assert.Equal(t, "logged_in", login["status"])

	token, err := os.ReadFile(cli.tokenFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(token), "sess_"))

	output, err = cli.run("search", "john")
	require.NoError(t, err, output)
	players := parseJSON[[]playerResponse](t, output)
	require.Len(t, players, 3)
	assert.Equal(t, "John Smith", players[0].Name)
	assert.Equal(t, "Johnny Lee", players[1].Name)
	for _, p := range players {
		assert.Contains(t, strings.ToLower(p.Name), "john")
	}

	output, err = cli.run("search", "xyz")
	require.NoError(t, err, output)
	assert.Empty(t, parseJSON[[]playerResponse](t, output))

	output, err = cli.run("search", "j")
	require.NoError(t, err, output)
	assert.Empty(t, parseJSON[[]playerResponse](t, output))

	output, err = cli.run("whoami")
	require.NoError(t, err, output)
	me := parseJSON[map[string]string](t, output)
	assert.Equal(t, seed.DemoEmail, me["email"])

	output, err = cli.run("logout")
	require.NoError(t, err, output)
	_, err = os.Stat(cli.tokenFile)
	assert.True(t, os.IsNotExist(err))

	// The revoked token is refused by the server too
	output, err = cli.runWithToken(strings.TrimSpace(string(token)), "search", "john")
	require.Error(t, err)
	assert.Contains(t, output, "Session expired, please sign in again.")
}

func TestCLI_LoginRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	cli := newCLIRunner(t, startTestServer(t))

	output, err := cli.run("login", "--email", seed.DemoEmail, "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, output, "Invalid email or password")

	_, err = os.Stat(cli.tokenFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_ServerUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.run("login", "--email", seed.DemoEmail, "--password", seed.DemoPassword)
	require.Error(t, err)
	assert.Contains(t, output, "Could not connect to server.")
}
