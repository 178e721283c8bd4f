package analyzer

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spigell/skillgap/internal/skills"
)

// Request is one analysis input. Only Resume is required.
type Request struct {
	Resume         string `json:"resume_text" form:"resume_text"`
	JobDescription string `json:"job_description,omitempty" form:"job_description"`
	TargetRole     string `json:"target_role,omitempty" form:"target_role"`
}

// TargetKind tells what the resume was compared against.
type TargetKind string

const (
	TargetRole           TargetKind = "role"
	TargetJobDescription TargetKind = "job_description"
	TargetPredictedRole  TargetKind = "predicted_role"
)

type Target struct {
	Kind  TargetKind `json:"kind"`
	Label string     `json:"label,omitempty"`
}

// Report is the result of one analysis.
type Report struct {
	ID            string       `json:"id"`
	PredictedRole string       `json:"predicted_role"`
	Target        Target       `json:"target"`
	MatchScore    float64      `json:"match_score"`
	MatchPercent  float64      `json:"match_percent"`
	MissingSkills []skills.Gap `json:"missing_skills"`
	ResumePreview string       `json:"resume_preview"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "skillgap_report_*.json")
	if err != nil {
		return "", err
	}
	if err := r.writeTo(file); err != nil {
		_ = os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}

func (r *Report) writeTo(w io.WriteCloser) (err error) {
	defer func() {
		err = errors.Join(err, w.Close())
	}()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
