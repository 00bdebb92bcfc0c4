package server

import (
	"bytes"
	"errors"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/valyala/fasthttp"
)

var reportContentTypes = map[string]string{
	"console":  "text/plain; charset=utf-8",
	"csv":      "text/csv; charset=utf-8",
	"json":     "application/json",
	"markdown": "text/markdown; charset=utf-8",
	"html":     "text/html; charset=utf-8",
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProject(ctx *fasthttp.RequestCtx) {
	inputs, conservative, ok := s.decodePlan(ctx)
	if !ok {
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, ProjectResponse{
		RequestID:    requestID(ctx),
		Conservative: conservative,
		Inputs:       inputs,
		Results:      s.engine.Project(inputs),
	})
}

func (s *Server) handleCoast(ctx *fasthttp.RequestCtx) {
	inputs, _, ok := s.decodePlan(ctx)
	if !ok {
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, CoastResponse{
		RequestID: requestID(ctx),
		Coast:     s.engine.CoastStatus(inputs),
	})
}

func (s *Server) handleStopAge(ctx *fasthttp.RequestCtx) {
	inputs, _, ok := s.decodePlan(ctx)
	if !ok {
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, StopAgeResponse{
		RequestID: requestID(ctx),
		StopAge:   s.engine.FindStopAge(inputs),
	})
}

func (s *Server) handleStress(ctx *fasthttp.RequestCtx) {
	inputs, _, ok := s.decodePlan(ctx)
	if !ok {
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, StressResponse{
		RequestID: requestID(ctx),
		Scenarios: s.engine.StressScenarios(inputs),
	})
}

func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" {
		format = "json"
	}
	formatter, ok := output.GetFormatterByName(format)
	if !ok {
		s.writeError(ctx, fasthttp.StatusBadRequest, "format", "unsupported report format "+format)
		return
	}

	var req PlanRequest
	if !s.decodeBody(ctx, &req) {
		return
	}
	if err := s.parser.ValidateInputs(req.Inputs); err != nil {
		s.writeValidationError(ctx, err)
		return
	}

	// the report applies the conservative set itself so it can flag it
	report := output.BuildReport(s.engine, req.Inputs, output.AllAnalyses(req.Conservative))
	body, err := formatter.Format(report)
	if err != nil {
		s.log.Error("report formatting failed", "request_id", requestID(ctx), "format", formatter.Name(), "error", err)
		s.writeError(ctx, fasthttp.StatusInternalServerError, "", "failed to render report")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(reportContentTypes[formatter.Name()])
	ctx.Response.Header.Set("Content-Disposition",
		`attachment; filename="`+output.ReportFilename(report, output.Extension(formatter.Name()))+`"`)
	ctx.SetBody(body)
}

// decodePlan reads and validates a PlanRequest and returns the effective inputs.
// On failure the error response has already been written.
func (s *Server) decodePlan(ctx *fasthttp.RequestCtx) (domain.Inputs, bool, bool) {
	var req PlanRequest
	if !s.decodeBody(ctx, &req) {
		return domain.Inputs{}, false, false
	}

	if err := s.parser.ValidateInputs(req.Inputs); err != nil {
		s.writeValidationError(ctx, err)
		return domain.Inputs{}, false, false
	}

	inputs := req.Inputs
	if req.Conservative {
		inputs = s.engine.ApplyConservativeAdjustment(inputs)
	}
	return inputs, req.Conservative, true
}

func (s *Server) decodeBody(ctx *fasthttp.RequestCtx, v interface{}) bool {
	body := ctx.PostBody()
	if len(bytes.TrimSpace(body)) == 0 {
		s.writeError(ctx, fasthttp.StatusBadRequest, "", "request body is required")
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "", "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) writeValidationError(ctx *fasthttp.RequestCtx, err error) {
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		s.writeError(ctx, fasthttp.StatusBadRequest, ve.Field, ve.Error())
		return
	}
	s.writeError(ctx, fasthttp.StatusBadRequest, "", err.Error())
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, field, message string) {
	s.writeJSON(ctx, status, ErrorResponse{
		Status:    status,
		Message:   message,
		Field:     field,
		RequestID: requestID(ctx),
	})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("response encoding failed", "request_id", requestID(ctx), "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":500,"message":"internal error"}`)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}
