// Package steps splits an assistant reply into display steps.
package steps

import (
	"fmt"
	"strings"

	"claudechat-backend/internal/models"
)

// Separator is the boundary between two steps: one blank line.
const Separator = "\n\n"

// Parse splits text on blank lines. Each non-empty trimmed segment becomes a step.
// The first three steps get distinct icons; every later step reuses the third.
func Parse(text string) []models.Step {
	segments := strings.Split(text, Separator)
	steps := make([]models.Step, 0, len(segments))
	for _, segment := range segments {
		content := strings.TrimSpace(segment)
		if content == "" {
			continue
		}
		index := len(steps)
		steps = append(steps, models.Step{
			ID:      fmt.Sprintf("step-%d", index),
			Title:   fmt.Sprintf("Step %d", index+1),
			Content: content,
			Icon:    iconFor(index),
		})
	}
	return steps
}

func iconFor(index int) models.IconRef {
	switch index {
	case 0:
		return models.IconDocumentText
	case 1:
		return models.IconCodeBracket
	default:
		return models.IconLightBulb
	}
}
