package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/folioflow/internal/config"
	"github.com/jonathan/folioflow/internal/llm"
	"github.com/jonathan/folioflow/internal/types"
)

// stubLLM is a canned llm.Client for handler tests.
type stubLLM struct {
	raw      json.RawMessage
	err      error
	lastText string
}

func (s *stubLLM) ParseResume(_ context.Context, resumeText string) (json.RawMessage, error) {
	s.lastText = resumeText
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func (s *stubLLM) Close() error { return nil }

func newTestServer(client llm.Client) *Server {
	return New(config.Defaults(), zap.NewNop().Sugar(), client)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func doMultipart(t *testing.T, s *Server, path, field, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, bodyType := multipartBody(t, field, filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", bodyType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["error"]
}

func sampleResume() *types.CanonicalResume {
	resume := types.NewCanonicalResume()
	resume.FullName = "Jane Doe"
	resume.Title = "Software Engineer"
	resume.SkillsArray = []string{"Go"}
	return resume
}

func TestHealth(t *testing.T) {
	s := newTestServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/parse-resume", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestParseResumeMissingText(t *testing.T) {
	s := newTestServer(&stubLLM{})
	rec := doJSON(t, s, http.MethodPost, "/api/parse-resume", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "resumeText is required")
}

func TestParseResumeTooShort(t *testing.T) {
	s := newTestServer(&stubLLM{})
	rec := doJSON(t, s, http.MethodPost, "/api/parse-resume", map[string]string{
		"resumeText": "too short",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "too short")
}

func TestParseResumeNoClient(t *testing.T) {
	s := newTestServer(nil)
	rec := doJSON(t, s, http.MethodPost, "/api/parse-resume", map[string]string{
		"resumeText": strings.Repeat("experience ", 10),
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "API key not configured")
}

func TestParseResumeRelaysModelJSON(t *testing.T) {
	stub := &stubLLM{raw: json.RawMessage(`{"fullName":"Jane Doe","sections":[]}`)}
	s := newTestServer(stub)
	text := strings.Repeat("senior engineer at example corp ", 5)
	rec := doJSON(t, s, http.MethodPost, "/api/parse-resume", map[string]string{
		"resumeText": text,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"fullName":"Jane Doe","sections":[]}`, rec.Body.String())
	assert.Equal(t, text, stub.lastText)
}

func TestParseResumeRelaysUpstreamStatus(t *testing.T) {
	stub := &stubLLM{err: &llm.UpstreamError{StatusCode: 429, Message: "rate limit reached"}}
	s := newTestServer(stub)
	rec := doJSON(t, s, http.MethodPost, "/api/parse-resume", map[string]string{
		"resumeText": strings.Repeat("experience ", 10),
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "rate limit reached")
}

func TestParseResumeEmptyModelResponse(t *testing.T) {
	stub := &stubLLM{err: &llm.EmptyResponseError{Model: "test-model"}}
	s := newTestServer(stub)
	rec := doJSON(t, s, http.MethodPost, "/api/parse-resume", map[string]string{
		"resumeText": strings.Repeat("experience ", 10),
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "No response from AI model", errorMessage(t, rec))
}

func TestParseResumeUnparseableModelOutput(t *testing.T) {
	stub := &stubLLM{raw: json.RawMessage("definitely not json")}
	s := newTestServer(stub)
	rec := doJSON(t, s, http.MethodPost, "/api/parse-resume", map[string]string{
		"resumeText": strings.Repeat("experience ", 10),
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "Failed to parse AI response as JSON")
}

func TestExtractRejectsWrongMIME(t *testing.T) {
	s := newTestServer(nil)
	rec := doMultipart(t, s, "/api/extract", "resume", "resume.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("hi"))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "application/pdf")
}

func TestExtractMissingFile(t *testing.T) {
	s := newTestServer(nil)
	rec := doMultipart(t, s, "/api/extract", "wrong-field", "resume.pdf", "application/pdf", []byte("hi"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "resume")
}

func TestExtractInvalidPDF(t *testing.T) {
	s := newTestServer(nil)
	rec := doMultipart(t, s, "/api/extract", "resume", "resume.pdf", "application/pdf",
		[]byte("this is not a pdf at all"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "PDF")
}

func TestImportInvalidPDFLeavesStoreEmpty(t *testing.T) {
	s := newTestServer(&stubLLM{raw: json.RawMessage(`{"fullName":"Jane"}`)})
	rec := doMultipart(t, s, "/api/import", "resume", "resume.pdf", "application/pdf",
		[]byte("garbage"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.store.Data().FullName)
	assert.False(t, s.store.CanUndo())
}

func TestExportStandalone(t *testing.T) {
	s := newTestServer(nil)
	rec := doJSON(t, s, http.MethodPost, "/api/export", types.ExportRequest{
		Data:     sampleResume(),
		Template: "modern",
		Accent:   "violet",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="jane-doe-portfolio.html"`, rec.Header().Get("Content-Disposition"))
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "cdn.tailwindcss.com")
}

func TestExportOffline(t *testing.T) {
	s := newTestServer(nil)
	rec := doJSON(t, s, http.MethodPost, "/api/export", types.ExportRequest{
		Data:    sampleResume(),
		Offline: true,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="jane-doe-portfolio-offline.html"`, rec.Header().Get("Content-Disposition"))
	body := rec.Body.String()
	assert.NotContains(t, body, "cdn.tailwindcss.com")
	assert.Contains(t, body, "<style>")
}

func TestExportUnknownTemplate(t *testing.T) {
	s := newTestServer(nil)
	rec := doJSON(t, s, http.MethodPost, "/api/export", types.ExportRequest{
		Data:     sampleResume(),
		Template: "brutalist",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportMissingData(t *testing.T) {
	s := newTestServer(nil)
	rec := doJSON(t, s, http.MethodPost, "/api/export", map[string]string{"template": "modern"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPhotoReturnsDataURL(t *testing.T) {
	s := newTestServer(nil)
	rec := doMultipart(t, s, "/api/photo", "photo", "me.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp["dataUrl"], "data:image/png;base64,"))
}

func TestPhotoRejectsNonImage(t *testing.T) {
	s := newTestServer(nil)
	rec := doMultipart(t, s, "/api/photo", "photo", "me.pdf", "application/pdf", []byte("hi"))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "image/*")
}

func TestRateLimitHeadersPresent(t *testing.T) {
	s := newTestServer(nil)
	rec := doJSON(t, s, http.MethodPost, "/api/export", types.ExportRequest{Data: sampleResume()})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}
