//go:build integration

package router_test

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - login → create org → xlsx import → ranked supplier list
//   - header validation dry-run reporting missing columns
//   - review workflow and comments
//   - re-import upsert keeping review state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"levscore/internal/config"
	"levscore/internal/infra"
	"levscore/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func xlsxUpload(t *testing.T, rows [][]interface{}) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	workbook, err := f.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "suppliers.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func upload(t *testing.T, srv *httptest.Server, path string, rows [][]interface{}, token string) *http.Response {
	t.Helper()
	body, contentType := xlsxUpload(t, rows)
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
	orgID  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("levscore_test"),
		tcPostgres.WithUsername("levscore"),
		tcPostgres.WithPassword("levscore"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		InviteTTLHours:     72,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed a login user
	hash, err := bcrypt.GenerateFromPassword([]byte("hemligt"), bcrypt.MinCost)
	require.NoError(t, err)
	err = db.Exec(`INSERT INTO users (email, name, password_hash) VALUES (?, ?, ?)`,
		"e2e@levscore.test", "E2E User", string(hash)).Error
	require.NoError(t, err)

	trendCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, trendCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "e2e@levscore.test", "password": "hemligt"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	orgResp := do(t, srv, "POST", "/v1/orgs",
		jsonBody(t, map[string]string{"name": "E2E Retail", "slug": "e2e-retail"}),
		loginBody.AccessToken,
	)
	require.Equal(t, http.StatusCreated, orgResp.StatusCode)
	var org struct {
		ID string `json:"id"`
	}
	decodeJSON(t, orgResp, &org)

	return &testEnv{server: srv, token: loginBody.AccessToken, orgID: org.ID}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_ImportAndRankedList(t *testing.T) {
	env := setupTestEnv(t)
	base := fmt.Sprintf("/v1/orgs/%s", env.orgID)

	resp := upload(t, env.server, base+"/imports", [][]interface{}{
		{"LevNr", "Namn", "Omsättning", "Totalpoäng"},
		{"100", "Acme", "9 000", "87"},
		{"200", "Beta AB", "1 000", "55"},
		{"", "skipped", "500", "10"},
	}, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var imported struct {
		TotalRows int `json:"total_rows"`
		Created   int `json:"created"`
		Skipped   int `json:"skipped"`
	}
	decodeJSON(t, resp, &imported)
	assert.Equal(t, 3, imported.TotalRows)
	assert.Equal(t, 2, imported.Created)
	assert.Equal(t, 1, imported.Skipped)

	listResp := do(t, env.server, "GET", base+"/suppliers", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Data []struct {
			SupplierNumber string  `json:"supplier_number"`
			TotalScore     float64 `json:"total_score"`
			RevenueShare   float64 `json:"revenue_share"`
			Tier           *string `json:"tier"`
		} `json:"data"`
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	require.EqualValues(t, 2, list.Total)
	assert.Equal(t, "100", list.Data[0].SupplierNumber, "ranked by total score")
	assert.InDelta(t, 90.0, list.Data[0].RevenueShare, 0.001)
	require.NotNil(t, list.Data[0].Tier)

	logsResp := do(t, env.server, "GET", base+"/imports", nil, env.token)
	require.Equal(t, http.StatusOK, logsResp.StatusCode)
	var logs []struct {
		Filename string `json:"filename"`
		Created  int    `json:"created"`
	}
	decodeJSON(t, logsResp, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "suppliers.xlsx", logs[0].Filename)
}

func TestE2E_HeaderValidationDryRun(t *testing.T) {
	env := setupTestEnv(t)
	base := fmt.Sprintf("/v1/orgs/%s", env.orgID)

	resp := upload(t, env.server, base+"/imports/validate", [][]interface{}{
		{"Foo", "Bar"},
	}, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Valid          bool     `json:"valid"`
		MissingColumns []string `json:"missing_columns"`
		FoundColumns   []string `json:"found_columns"`
	}
	decodeJSON(t, resp, &report)
	assert.False(t, report.Valid)
	assert.Equal(t, []string{"LevNr", "Namn"}, report.MissingColumns)
	assert.Equal(t, []string{"Foo", "Bar"}, report.FoundColumns)

	// The real import endpoint rejects the same file outright
	importResp := upload(t, env.server, base+"/imports", [][]interface{}{
		{"Foo", "Bar"},
	}, env.token)
	assert.Equal(t, http.StatusUnprocessableEntity, importResp.StatusCode)
	importResp.Body.Close()
}

func TestE2E_ReviewAndComments(t *testing.T) {
	env := setupTestEnv(t)
	base := fmt.Sprintf("/v1/orgs/%s", env.orgID)

	resp := upload(t, env.server, base+"/imports", [][]interface{}{
		{"LevNr", "Namn", "Omsättning"},
		{"100", "Acme", "1000"},
	}, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	listResp := do(t, env.server, "GET", base+"/suppliers", nil, env.token)
	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decodeJSON(t, listResp, &list)
	require.Len(t, list.Data, 1)
	supplierID := list.Data[0].ID

	reviewResp := do(t, env.server, "PUT", base+"/suppliers/"+supplierID+"/review",
		jsonBody(t, map[string]string{"status": "reviewed"}), env.token)
	require.Equal(t, http.StatusOK, reviewResp.StatusCode)
	var reviewed struct {
		ReviewStatus string  `json:"review_status"`
		ReviewedBy   *string `json:"reviewed_by"`
	}
	decodeJSON(t, reviewResp, &reviewed)
	assert.Equal(t, "reviewed", reviewed.ReviewStatus)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "E2E User", *reviewed.ReviewedBy)

	commentResp := do(t, env.server, "POST", base+"/suppliers/"+supplierID+"/comments",
		jsonBody(t, map[string]string{"body": "call them next week"}), env.token)
	require.Equal(t, http.StatusCreated, commentResp.StatusCode)
	commentResp.Body.Close()

	commentsResp := do(t, env.server, "GET", base+"/suppliers/"+supplierID+"/comments", nil, env.token)
	var comments []struct {
		Body   string `json:"body"`
		Author string `json:"author"`
	}
	decodeJSON(t, commentsResp, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "call them next week", comments[0].Body)
	assert.Equal(t, "E2E User", comments[0].Author)

	// Re-import must keep the review state
	again := upload(t, env.server, base+"/imports", [][]interface{}{
		{"LevNr", "Namn", "Omsättning"},
		{"100", "Acme Renamed", "2000"},
	}, env.token)
	require.Equal(t, http.StatusOK, again.StatusCode)
	again.Body.Close()

	detailResp := do(t, env.server, "GET", base+"/suppliers/"+supplierID, nil, env.token)
	var detail struct {
		Name         string `json:"name"`
		ReviewStatus string `json:"review_status"`
		CommentCount int    `json:"comment_count"`
	}
	decodeJSON(t, detailResp, &detail)
	assert.Equal(t, "Acme Renamed", detail.Name)
	assert.Equal(t, "reviewed", detail.ReviewStatus)
	assert.Equal(t, 1, detail.CommentCount)
}

func TestE2E_TenantIsolation(t *testing.T) {
	env := setupTestEnv(t)

	// A fresh org id the user does not belong to
	foreign := "/v1/orgs/00000000-0000-0000-0000-000000000001/suppliers"
	resp := do(t, env.server, "GET", foreign, nil, env.token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_HealthIncludesTrendBreaker(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		OK       bool   `json:"ok"`
		DB       string `json:"db"`
		Redis    string `json:"redis"`
		TrendAPI string `json:"trend_api"`
	}
	decodeJSON(t, resp, &health)
	assert.True(t, health.OK)
	assert.Equal(t, "connected", health.DB)
	assert.Equal(t, "connected", health.Redis)
	assert.Equal(t, "closed", health.TrendAPI)
}
