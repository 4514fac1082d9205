// Package synthesizer produces demo diagnostic text for a study type. The
// demo implementation is a fixed lookup table; any real model can replace it
// behind the Analyzer interface as long as it honors the same three-field
// result and the degraded-report fallback.
package synthesizer

import (
	"context"
	"fmt"
	"strings"
)

// Result is the synthesis contract: findings and impression text plus a
// confidence score in [0,1].
type Result struct {
	Findings   string  `json:"findings"`
	Impression string  `json:"impression"`
	Confidence float64 `json:"confidence"`
}

type Analyzer interface {
	GenerateReport(ctx context.Context, studyType string) (Result, error)
}

var demoReports = map[string]Result{
	"chest_xray": {
		Findings:   "The heart size is normal. The lung fields are clear bilaterally. No pleural effusion or pneumothorax is observed. The bony structures appear intact.",
		Impression: "Normal chest X-ray. No acute cardiopulmonary process.",
		Confidence: 0.85,
	},
	"brain_mri": {
		Findings:   "The brain parenchyma demonstrates normal signal intensity. No mass lesions or abnormal enhancement identified. The ventricular system is normal in size and configuration.",
		Impression: "Normal brain MRI study.",
		Confidence: 0.90,
	},
	"abdominal_ct": {
		Findings:   "The liver, spleen, kidneys, and pancreas demonstrate normal attenuation and morphology. No bowel obstruction or free fluid. No suspicious masses identified.",
		Impression: "Normal abdominal CT scan.",
		Confidence: 0.88,
	},
	"general": {
		Findings:   "Image quality is adequate for interpretation. No acute abnormalities detected.",
		Impression: "Study appears within normal limits.",
		Confidence: 0.75,
	},
}

// Demo is the built-in Analyzer. Tags are matched case-insensitively;
// unrecognized tags fall back to the general template.
type Demo struct{}

func (Demo) GenerateReport(_ context.Context, studyType string) (Result, error) {
	if res, ok := demoReports[strings.ToLower(strings.TrimSpace(studyType))]; ok {
		return res, nil
	}
	return demoReports["general"], nil
}

// RenderReport formats a synthesis result as the plain-text report returned
// by the analyze endpoint.
func RenderReport(studyType string, res Result) string {
	return fmt.Sprintf(`MEDICAL IMAGE ANALYSIS REPORT
============================

Study Type: %s

FINDINGS:
%s

IMPRESSION:
%s

CONFIDENCE SCORE: %.1f%%

DISCLAIMER: This is an AI-assisted analysis for educational purposes only.
All findings must be reviewed and validated by a qualified medical professional.`,
		displayStudyType(studyType), res.Findings, res.Impression, res.Confidence*100)
}

// DegradedReport is returned when synthesis itself fails: zero confidence and
// an explicit manual-review instruction.
func DegradedReport(studyType string) string {
	return fmt.Sprintf(`MEDICAL IMAGE ANALYSIS REPORT
============================

Study Type: %s

FINDINGS:
Unable to complete automated analysis due to technical issues.

IMPRESSION:
Manual review required.

CONFIDENCE SCORE: 0.0%%

NOTE: Please consult with a qualified radiologist for proper interpretation.`,
		displayStudyType(studyType))
}

func displayStudyType(tag string) string {
	words := strings.Fields(strings.ReplaceAll(tag, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
