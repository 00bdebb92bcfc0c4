package server

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

// 100k drawn down 5k a year from 65 with no growth runs out at 84
const flatPlan = `{
  "currentAge": 60,
  "retirementAge": 65,
  "currentSavings": 100000,
  "annualContribution": 0,
  "rateOfReturn": 0,
  "annualSpending": 5000,
  "inflationRate": 0,
  "lifeExpectancy": 90
}`

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return New(config.DefaultServerConfig(), nil, logger), &logs
}

func do(s *Server, method, uri, body string, headers ...string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.SetBodyString(body)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.Handler()(ctx)
	return ctx
}

func decodeError(t *testing.T, ctx *fasthttp.RequestCtx) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	s, logs := newTestServer(t)

	ctx := do(s, "GET", "/healthz", "")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
	assert.Len(t, string(ctx.Response.Header.Peek("X-Request-ID")), 36)
	assert.Contains(t, logs.String(), "path=/healthz")
	assert.Contains(t, logs.String(), "status=200")
}

func TestRouting_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	ctx := do(s, "GET", "/v1/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, 404, decodeError(t, ctx).Status)

	ctx = do(s, "GET", "/v1/project", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
	assert.Equal(t, "POST", string(ctx.Response.Header.Peek("Allow")))

	ctx = do(s, "POST", "/healthz", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestProject(t *testing.T) {
	s, _ := newTestServer(t)

	ctx := do(s, "POST", "/v1/project", flatPlan, "X-Request-ID", "req-123")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	assert.Equal(t, "req-123", string(ctx.Response.Header.Peek("X-Request-ID")))

	var resp ProjectResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Conservative)
	assert.Len(t, resp.Results.Projections, 31)
	require.NotNil(t, resp.Results.Summary.AgeMoneyRunsOut)
	assert.Equal(t, 84, *resp.Results.Summary.AgeMoneyRunsOut)
	assert.False(t, resp.Results.Summary.RetirementGoalReached)
}

func TestProject_Conservative(t *testing.T) {
	s, _ := newTestServer(t)

	body := strings.Replace(flatPlan, "{", `{"conservative": true,`, 1)
	ctx := do(s, "POST", "/v1/project", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp ProjectResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.True(t, resp.Conservative)
	assert.Equal(t, 95, resp.Inputs.LifeExpectancy)
	assert.Equal(t, "5", resp.Inputs.RateOfReturn.String())
	assert.Len(t, resp.Results.Projections, 36)
}

func TestProject_BadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{"empty body", "", "", "request body is required"},
		{"malformed json", `{"currentAge":`, "", "invalid request body"},
		{"unknown field", `{"currentAge":60,"salary":1}`, "", "invalid request body"},
		{"too young", strings.Replace(flatPlan, `"currentAge": 60`, `"currentAge": 10`, 1), "current_age", "must be between"},
		{"retire before now", strings.Replace(flatPlan, `"retirementAge": 65`, `"retirementAge": 55`, 1), "retirement_age", ""},
		{"negative savings", strings.Replace(flatPlan, `"currentSavings": 100000`, `"currentSavings": -1`, 1), "current_savings", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := do(s, "POST", "/v1/project", tt.body)
			assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

			resp := decodeError(t, ctx)
			assert.Equal(t, 400, resp.Status)
			assert.Equal(t, tt.wantField, resp.Field)
			assert.Contains(t, resp.Message, tt.wantMsg)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestAnalysisEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	ctx := do(s, "POST", "/v1/coast", flatPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var coast CoastResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &coast))
	assert.NotEmpty(t, coast.RequestID)
	assert.Equal(t, "100000", coast.Coast.CurrentSavings.String())
	assert.Contains(t, string(ctx.Response.Body()), `"fireNumber"`)

	ctx = do(s, "POST", "/v1/stop-age", flatPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var stop StopAgeResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &stop))
	assert.False(t, stop.StopAge.Found)

	ctx = do(s, "POST", "/v1/stress", flatPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var stress StressResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &stress))
	assert.Len(t, stress.Scenarios.WorstCase.Projections, 36)
	assert.True(t, stress.Scenarios.BestCase.Summary.RetirementGoalReached)
}

func TestReport(t *testing.T) {
	s, _ := newTestServer(t)

	ctx := do(s, "POST", "/v1/report?format=csv", flatPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "text/csv; charset=utf-8", string(ctx.Response.Header.ContentType()))
	assert.True(t, strings.HasPrefix(string(ctx.Response.Body()), "# Retirement Calculator Results\n"))
	assert.Contains(t, string(ctx.Response.Header.Peek("Content-Disposition")), "retirement-plan-")
	assert.Contains(t, string(ctx.Response.Header.Peek("Content-Disposition")), ".csv")

	ctx = do(s, "POST", "/v1/report?format=md", flatPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "## Projections")

	ctx = do(s, "POST", "/v1/report", flatPlan)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	assert.Contains(t, string(ctx.Response.Body()), `"stress"`)

	ctx = do(s, "POST", "/v1/report?format=pdf", flatPlan)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "format", decodeError(t, ctx).Field)
}
