package types

import (
	"github.com/go-playground/validator/v10"
)

// ParseResumeRequest is the body of POST /api/parse-resume. The minimum
// length rejects fragments too short to be a real resume before any model
// tokens are spent.
type ParseResumeRequest struct {
	ResumeText string `json:"resumeText" validate:"required,min=50"`
}

// ExportRequest is the body of POST /api/export and /api/export/pdf.
type ExportRequest struct {
	Data     *CanonicalResume `json:"data" validate:"required"`
	Template string           `json:"template" validate:"omitempty,oneof=modern minimal bold"`
	Accent   string           `json:"accent" validate:"omitempty,oneof=violet blue emerald rose"`
	Offline  bool             `json:"offline"`
}

// Validate validates the ParseResumeRequest using the validator.
func (r *ParseResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
