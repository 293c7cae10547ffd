package assessments

import "pulsepad-backend/src/models"

// EffectiveAnswers resolves the answer used for scoring for every checklist
// item: an admin correction when present, otherwise the employee's response,
// otherwise false.
func EffectiveAnswers(template *models.AssessmentTemplate, responses, corrections map[string]bool) map[string]bool {
	out := make(map[string]bool, len(template.Items))
	for _, item := range template.Items {
		if v, ok := corrections[item.ID]; ok {
			out[item.ID] = v
			continue
		}
		out[item.ID] = responses[item.ID]
	}
	return out
}

// ComputeScore returns earnedWeight / totalWeight for the given answers.
// An empty checklist scores 0. The result is always within [0,1].
func ComputeScore(template *models.AssessmentTemplate, answers map[string]bool) float64 {
	total := template.TotalWeight()
	earned := 0
	for _, item := range template.Items {
		if item.Weight > 0 && answers[item.ID] {
			earned += item.Weight
		}
	}
	if total == 0 {
		return 0
	}
	return float64(earned) / float64(total)
}

// AllCorrect marks every checklist item true.
func AllCorrect(template *models.AssessmentTemplate) map[string]bool {
	out := make(map[string]bool, len(template.Items))
	for _, item := range template.Items {
		out[item.ID] = true
	}
	return out
}
