//go:build database

package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ticketFeedJSON is a small feed in the shape the helpdesk export emits.
const ticketFeedJSON = `[
	{"No.":"1001","Date":"2025-10-02 09:15:00","Status":"Cerrado","Tech":"Carlos Castro","Client":"Acme","Location":"Tienda Centro","Subject":"Impresora sin red","Encuesta":"5"},
	{"No.":"1002","Date":"2025-10-03 11:30:00","Status":"Abierto","Tech":"Laura Pérez","Client":"Globex","Location":"Tienda Norte","Subject":"Pantalla parpadea","Encuesta":""},
	{"No.":"1003","Date":"2025-10-06 14:00:00","Status":"Pendiente","Tech":"Carlos Castro","Client":"Initech","Location":"Tienda Sur","Subject":"Lector de tarjetas","Encuesta":""},
	{"No.":"1004","Date":"2025-10-07 08:45:00","Status":"Resuelto","Tech":"Laura Pérez","Client":"Acme","Location":"Oficina Principal","Subject":"Correo bloqueado","Encuesta":"4"}
]`

// startFeedServer serves the fixture ticket feed for the CLI under test.
func startFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/encargados", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ticketFeedJSON))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// TestDeskmetricsWithMySQL tests the deskmetrics CLI with a MySQL backend.
func TestDeskmetricsWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "deskmetrics",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/deskmetrics?parseTime=true", host, port.Port())

	feed := startFeedServer(t)

	// Set environment variables
	_ = os.Setenv("DESKMETRICS_API_URL", feed.URL)
	_ = os.Setenv("DESKMETRICS_CACHE_BACKEND", "mysql")
	_ = os.Setenv("DESKMETRICS_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("DESKMETRICS_HISTORY_BACKEND", "mysql")
	_ = os.Setenv("DESKMETRICS_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("DESKMETRICS_API_URL") }()
	defer func() { _ = os.Unsetenv("DESKMETRICS_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("DESKMETRICS_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("DESKMETRICS_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("DESKMETRICS_HISTORY_DB_CONNECT") }()

	// Run deskmetrics cache clear
	err = runDeskmetricsCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run deskmetrics history clear
	err = runDeskmetricsCommand(t, "history", "clear")
	require.NoError(t, err)

	// Run deskmetrics board (against the fixture feed)
	err = runDeskmetricsCommand(t, "board")
	require.NoError(t, err)

	// Run deskmetrics techs to populate run history
	err = runDeskmetricsCommand(t, "techs")
	require.NoError(t, err)

	// Run deskmetrics cache status
	err = runDeskmetricsCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run deskmetrics history status
	err = runDeskmetricsCommand(t, "history", "status")
	require.NoError(t, err)
}

// TestDeskmetricsWithPostgres tests the deskmetrics CLI with a PostgreSQL backend.
func TestDeskmetricsWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	feed := startFeedServer(t)

	// Set environment variables
	_ = os.Setenv("DESKMETRICS_API_URL", feed.URL)
	_ = os.Setenv("DESKMETRICS_CACHE_BACKEND", "postgresql")
	_ = os.Setenv("DESKMETRICS_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("DESKMETRICS_HISTORY_BACKEND", "postgresql")
	_ = os.Setenv("DESKMETRICS_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("DESKMETRICS_API_URL") }()
	defer func() { _ = os.Unsetenv("DESKMETRICS_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("DESKMETRICS_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("DESKMETRICS_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("DESKMETRICS_HISTORY_DB_CONNECT") }()

	// Run deskmetrics cache clear
	err = runDeskmetricsCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run deskmetrics history clear
	err = runDeskmetricsCommand(t, "history", "clear")
	require.NoError(t, err)

	// Run deskmetrics board (against the fixture feed)
	err = runDeskmetricsCommand(t, "board")
	require.NoError(t, err)

	// Run deskmetrics techs to populate run history
	err = runDeskmetricsCommand(t, "techs")
	require.NoError(t, err)

	// Run deskmetrics cache status
	err = runDeskmetricsCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run deskmetrics history status
	err = runDeskmetricsCommand(t, "history", "status")
	require.NoError(t, err)
}

func runDeskmetricsCommand(t *testing.T, args ...string) error {
	binaryPath := getDeskmetricsBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
