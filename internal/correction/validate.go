package correction

import (
	"context"

	"go.uber.org/zap"
)

// ValidateCorrection checks that a correction actually changed the chain
// and met the effectiveness floor. The structural check compares step and
// evidence counts: equal counts on both mean the "corrected" chain is
// indistinguishable from the original at the level the strategies
// operate on.
func (e *Engine) ValidateCorrection(ctx context.Context, corrected *CorrectedReasoning) ValidationResult {
	var issues []string

	if len(corrected.CorrectionsApplied) == 0 {
		issues = append(issues, "no corrections were applied")
	}
	if corrected.EffectivenessScore < e.cfg.MinEffectiveness {
		issues = append(issues, "effectiveness score below minimum threshold")
	}
	if corrected.Original != nil && corrected.Corrected != nil &&
		len(corrected.Corrected.Steps) == len(corrected.Original.Steps) &&
		len(corrected.Corrected.Evidence) == len(corrected.Original.Evidence) {
		issues = append(issues, "corrected chain is structurally identical to the original")
	}

	quality := 1.0 - e.cfg.QualityPenalty*float64(len(issues))
	if quality < 0 {
		quality = 0
	}

	if len(issues) > 0 {
		e.logger.Debug("correction failed validation",
			zap.String("strategy", corrected.Strategy),
			zap.Strings("issues", issues))
		if e.validationCounter != nil {
			e.validationCounter.Add(ctx, 1)
		}
	}

	return ValidationResult{
		Valid:          len(issues) == 0,
		Issues:         issues,
		OverallQuality: quality,
	}
}
