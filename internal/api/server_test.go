package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-points/internal/categorize"
	"github.com/insightdelivered/statement-points/internal/config"
	"github.com/insightdelivered/statement-points/internal/ingest"
	"github.com/insightdelivered/statement-points/internal/logger"
	"github.com/insightdelivered/statement-points/internal/parser"
)

const chaseCSV = "Transaction Date,Post Date,Description,Category,Type,Amount\n" +
	"01/05/2025,01/06/2025,\"STARBUCKS #123\",Food & Drink,Sale,-5.75\n" +
	"01/10/2025,01/11/2025,PAYMENT THANK YOU,,Payment,100.00\n"

func setupTestApp(t *testing.T, c categorize.Categorizer) (*fiber.App, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf)
	srv := New(Options{
		Ingest:      ingest.NewService(parser.Options{}, log),
		Categorizer: c,
		Rewards:     config.Default().Rewards,
		Log:         log,
	})
	return srv.App(), buf
}

func doJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/parse", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthEndpoint(t *testing.T) {
	app, buf := setupTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])

	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestRequestIDGenerated(t *testing.T) {
	app, _ := setupTestApp(t, nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)
}

func TestParseEndpoint(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	resp, err := app.Test(uploadRequest(t, map[string]string{"Chase4471_Activity.CSV": chaseCSV}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got ParseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.Success)
	require.Equal(t, 2, got.Count)
	assert.Equal(t, "01/10/2025", got.Transactions[0].TransactionDate)
	assert.Equal(t, "4471", got.Transactions[0].Card)
	assert.Equal(t, -5.75, got.Transactions[1].Amount)
	assert.Equal(t, 1, got.Stats.Total)
	require.Len(t, got.Statements, 1)
	assert.True(t, strings.HasPrefix(got.CSV, "Transaction Date,"))
}

func TestParseEndpoint_NoTransactions(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	resp, err := app.Test(uploadRequest(t, map[string]string{"notes.csv": "hello world"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var got ParseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.False(t, got.Success)
	assert.Equal(t, "No transactions found", got.Error)
	assert.NotNil(t, got.Transactions)
}

func TestParseEndpointRequiresFile(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/parse", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCategorizeEndpoint(t *testing.T) {
	fake := categorize.Func(func(_ context.Context, descs []string) ([]*string, error) {
		out := make([]*string, len(descs))
		food := "Food & Drink"
		bogus := "Snacks"
		out[0] = &food
		if len(descs) > 1 {
			out[1] = &bogus
		}
		return out, nil
	})

	tests := []struct {
		name       string
		c          categorize.Categorizer
		body       any
		wantStatus int
	}{
		{"ok", fake, CategorizeRequest{Descriptions: []string{"JOE'S DINER", "MYSTERY"}}, fiber.StatusOK},
		{"empty", fake, CategorizeRequest{}, fiber.StatusBadRequest},
		{"not configured", nil, CategorizeRequest{Descriptions: []string{"X"}}, fiber.StatusNotImplemented},
		{
			"service error",
			categorize.Func(func(context.Context, []string) ([]*string, error) {
				return nil, &categorize.Error{Kind: categorize.ErrService, Status: 500}
			}),
			CategorizeRequest{Descriptions: []string{"X"}},
			fiber.StatusBadGateway,
		},
		{
			"network error",
			categorize.Func(func(context.Context, []string) ([]*string, error) {
				return nil, &categorize.Error{Kind: categorize.ErrNetwork}
			}),
			CategorizeRequest{Descriptions: []string{"X"}},
			fiber.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t, tt.c)
			resp, body := doJSON(t, app, "/api/categorize", tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(body))
			if tt.wantStatus != fiber.StatusOK {
				var e ErrorResponse
				require.NoError(t, json.Unmarshal(body, &e))
				assert.NotEmpty(t, e.Error)
				return
			}
			var got CategorizeResponse
			require.NoError(t, json.Unmarshal(body, &got))
			require.Len(t, got.Categories, 2)
			require.NotNil(t, got.Categories[0])
			assert.Equal(t, "Food & Drink", *got.Categories[0])
			assert.Nil(t, got.Categories[1])
		})
	}
}

var rewardsTxns = []map[string]any{
	{"transactionDate": "01/03/2025", "description": "DELTA AIR LINES", "category": "Travel", "type": "Sale", "amount": -100},
	{"transactionDate": "01/04/2025", "description": "STARBUCKS", "category": "Food & Drink", "type": "Sale", "amount": -50},
	{"transactionDate": "01/05/2025", "description": "PAYMENT THANK YOU", "type": "Payment/Credit", "amount": 500},
}

func TestRewardsEndpoint(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	resp, body := doJSON(t, app, "/api/rewards", map[string]any{
		"transactions": rewardsTxns,
		"cards":        []string{"csr", "bilt"},
		"monthlyRent":  1000,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var got RewardsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 150.0, got.TotalSpend)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, 550.0, got.Cards[0].Points)
	assert.Equal(t, 300.0, got.Cards[1].Points)
	assert.Equal(t, 200.0, got.Cards[1].RentPts)
	require.NotNil(t, got.BiltCash)
	assert.Equal(t, 6.0, got.BiltCash.Spent)

	resp, _ = doJSON(t, app, "/api/rewards", map[string]any{"cards": []string{"discover"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOptimizeEndpoint(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	resp, body := doJSON(t, app, "/api/optimize", map[string]any{
		"transactions": rewardsTxns,
		"cardA":        "csr",
		"cardB":        "amexGold",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, 600.0, got["combinedPts"])
	assert.Equal(t, 150.0, got["spendOnA"].(float64)+got["spendOnB"].(float64))

	resp, _ = doJSON(t, app, "/api/optimize", map[string]any{"cardA": "csr", "cardB": "csr"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
