package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/jonathan/folioflow/internal/export"
	"github.com/jonathan/folioflow/internal/llm"
	"github.com/jonathan/folioflow/internal/rendering"
	"github.com/jonathan/folioflow/internal/schemas"
	"github.com/jonathan/folioflow/internal/types"
)

const (
	// maxPDFUploadSize caps resume uploads at 10MB.
	maxPDFUploadSize = 10 << 20
	// maxPhotoUploadSize caps profile photo uploads at 5MB.
	maxPhotoUploadSize = 5 << 20
	// minResumeLength rejects extracted text too short to be a real resume.
	minResumeLength = 50
)

// handleParseResume converts plain resume text into the structured resume
// document. The raw model JSON is relayed to the client after an advisory
// schema check; the reconciler on the client path is the defensive boundary.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var req types.ParseResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if strings.TrimSpace(req.ResumeText) == "" {
		s.errorResponse(w, http.StatusBadRequest, "resumeText is required and must be a string")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Resume text is too short. PDF might be image-based.")
		return
	}

	raw, err := s.parseResume(r, req.ResumeText)
	if err != nil {
		s.modelErrorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		s.log.Warnw("writing model response failed", "error", err)
	}
}

// handleExtract extracts structured text from an uploaded PDF without
// spending any model tokens.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(w, r, "resume", maxPDFUploadSize, "application/pdf")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	text, err := s.extractor.ExtractBytes(r.Context(), data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"text":       text,
		"characters": len(text),
	})
}

// handleImport runs the full pipeline: extract, parse, reconcile, replace
// the canonical record. An error at any stage leaves the store untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(w, r, "resume", maxPDFUploadSize, "application/pdf")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	text, err := s.extractor.ExtractBytes(r.Context(), data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if len(strings.TrimSpace(text)) < minResumeLength {
		s.errorResponse(w, http.StatusBadRequest, "Resume text is too short. PDF might be image-based.")
		return
	}

	raw, err := s.parseResume(r, text)
	if err != nil {
		s.modelErrorResponse(w, err)
		return
	}

	var doc types.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to parse AI response as JSON")
		return
	}

	resume := s.reconciler.Reconcile(doc)
	s.store.Replace(resume)

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleExport renders the posted record into a standalone HTML document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, html, err := s.renderExport(w, r)
	if err != nil {
		return
	}

	if req.Offline {
		html, err = export.Offline(html)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	filename := export.Filename(req.Data.FullName, req.Offline)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, html); err != nil {
		s.log.Warnw("writing export failed", "error", err)
	}
}

// handleExportPDF prints the rendered document via headless Chrome.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	req, html, err := s.renderExport(w, r)
	if err != nil {
		return
	}

	pdf, err := export.PDF(r.Context(), html)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := strings.TrimSuffix(export.Filename(req.Data.FullName, false), ".html") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.log.Warnw("writing pdf export failed", "error", err)
	}
}

// handlePhoto converts an uploaded image into a base64 data URL for
// embedding in the portfolio.
func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.readImageUpload(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	s.jsonResponse(w, http.StatusOK, map[string]string{"dataUrl": dataURL})
}

// parseResume calls the model, then runs the advisory schema check. Schema
// findings are logged, never fatal.
func (s *Server) parseResume(r *http.Request, resumeText string) (json.RawMessage, error) {
	if s.llmClient == nil {
		return nil, errors.New("Server API key not configured. Please set GROQ_API_KEY in .env file.")
	}

	raw, err := s.llmClient.ParseResume(r.Context(), resumeText)
	if err != nil {
		return nil, err
	}

	if !json.Valid(raw) {
		return nil, errors.New("Failed to parse AI response as JSON")
	}

	findings, err := schemas.CheckResumeResponse(raw)
	if err != nil {
		s.log.Warnw("schema check unavailable", "error", err)
	} else if len(findings) > 0 {
		s.log.Warnw("model response deviates from schema", "findings", schemas.Summarize(findings))
	}

	return raw, nil
}

// modelErrorResponse maps model-path failures onto the original API's
// messages and status codes.
func (s *Server) modelErrorResponse(w http.ResponseWriter, err error) {
	var empty *llm.EmptyResponseError
	if errors.As(err, &empty) {
		s.errorResponse(w, http.StatusInternalServerError, "No response from AI model")
		return
	}
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// renderExport decodes and validates the export request, then renders the
// standalone document. On failure the response has already been written.
func (s *Server) renderExport(w http.ResponseWriter, r *http.Request) (*types.ExportRequest, string, error) {
	var req types.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return nil, "", err
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, "", err
	}

	body, err := rendering.Render(req.Data, rendering.Options{
		Template: rendering.Template(req.Template),
		Accent:   rendering.Accent(req.Accent),
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, "", err
	}

	html, err := export.Standalone(body, export.Meta{
		FullName: req.Data.FullName,
		Title:    req.Data.Title,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return nil, "", err
	}

	return &req, html, nil
}

// readUpload reads a single multipart file field, enforcing the size cap and
// the declared content type before any parsing happens.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string, limit int64, contentType string) ([]byte, error) {
	file, header, err := s.openUpload(w, r, field, limit)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if got := uploadContentType(header); got != contentType {
		return nil, &ErrUnsupportedMedia{Expected: contentType, Got: got}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, maybeTooLarge(err, limit)
	}
	return data, nil
}

// readImageUpload reads the photo field, accepting any image/* type.
func (s *Server) readImageUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	file, header, err := s.openUpload(w, r, "photo", maxPhotoUploadSize)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	contentType := uploadContentType(header)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", &ErrUnsupportedMedia{Expected: "image/*", Got: contentType}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", maybeTooLarge(err, maxPhotoUploadSize)
	}
	return data, contentType, nil
}

func (s *Server) openUpload(w http.ResponseWriter, r *http.Request, field string, limit int64) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		return nil, nil, maybeTooLarge(err, limit)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, &ErrValidation{Field: field, Message: "file is required"}
	}
	return file, header, nil
}

func uploadContentType(header *multipart.FileHeader) string {
	ct := header.Header.Get("Content-Type")
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	return strings.TrimSpace(ct)
}

func maybeTooLarge(err error, limit int64) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return &ErrTooLarge{Limit: limit}
	}
	return err
}
