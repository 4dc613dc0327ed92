package insights

import (
	"fmt"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
)

const systemPersona = `You are a ride-hailing operations analyst. Answer questions about the
dashboard using only the filtered data summary below. Quote rates as
percentages with two decimals. If the summary does not contain the answer,
say so briefly instead of guessing.`

// BuildSystemPrompt embeds the summary JSON into the analyst instruction.
func BuildSystemPrompt(s models.Summary) (string, error) {
	data, err := EncodeSummary(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\n\nFiltered data summary (JSON):\n%s", systemPersona, data), nil
}
