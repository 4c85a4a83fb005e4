package services

import (
	"context"
	"errors"

	"github.com/Ajmalajjuca/Bite-check/logger"
	"github.com/Ajmalajjuca/Bite-check/models"
	"github.com/Ajmalajjuca/Bite-check/utils"
)

// AnalysisFailedText stands in for the model reply when the call fails. It
// parses to an all-zero estimate.
const AnalysisFailedText = "Error: Failed to analyze food. Please try again."

// ErrAnalysisAbandoned means the caller went away before the reply arrived.
var ErrAnalysisAbandoned = errors.New("analysis abandoned")

type NutritionAnalyzer interface {
	Analyze(ctx context.Context, img *utils.ImageData) (string, error)
}

type LabelDetector interface {
	DetectLabels(ctx context.Context, image []byte) ([]string, error)
}

type DetectionService struct {
	analyzer NutritionAnalyzer
	labels   LabelDetector // optional
	log      *logger.Logger
}

func NewDetectionService(analyzer NutritionAnalyzer, labels LabelDetector, log *logger.Logger) *DetectionService {
	return &DetectionService{analyzer: analyzer, labels: labels, log: log}
}

type DetectResult struct {
	Result   string                   `json:"result"`
	Estimate models.NutritionEstimate `json:"estimate"`
	Labels   []string                 `json:"labels,omitempty"`
}

// Detect analyzes one photo. Model failures are folded into the result text
// instead of being returned. The only error is ErrAnalysisAbandoned, when
// ctx ends first; the late result is dropped.
func (s *DetectionService) Detect(ctx context.Context, auth *AuthContext, img *utils.ImageData) (*DetectResult, error) {
	var labelsCh chan []string
	if s.labels != nil {
		labelsCh = make(chan []string, 1)
		go func() {
			labels, err := s.labels.DetectLabels(ctx, img.Bytes)
			if err != nil {
				s.log.Warn("label detection failed: %v", err)
			}
			labelsCh <- labels
		}()
	}

	text, err := s.analyzer.Analyze(ctx, img)
	if ctx.Err() != nil {
		s.log.Debug("analysis for %s abandoned: %v", userOf(auth), ctx.Err())
		return nil, ErrAnalysisAbandoned
	}
	if err != nil {
		s.log.Error("nutrition analysis failed for %s: %v", userOf(auth), err)
		text = AnalysisFailedText
	}

	out := &DetectResult{
		Result:   text,
		Estimate: utils.ExtractNutrition(text),
	}
	if labelsCh != nil {
		select {
		case out.Labels = <-labelsCh:
		case <-ctx.Done():
			return nil, ErrAnalysisAbandoned
		}
	}
	return out, nil
}

func userOf(auth *AuthContext) string {
	if auth == nil || auth.UserID == "" {
		return "anonymous"
	}
	return auth.UserID
}
