package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

// RecoverJSON salvages a JSON object from model output that ignored the
// raw-JSON instruction: markdown code fences are stripped, then everything
// outside the outermost braces is discarded.
func RecoverJSON(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")

	firstOpen := strings.Index(content, "{")
	lastClose := strings.LastIndex(content, "}")
	if firstOpen != -1 && lastClose != -1 && lastClose > firstOpen {
		content = content[firstOpen : lastClose+1]
	}
	return content
}

// DecodePacket runs the recovery pass and unmarshals the result. Anything
// still unparseable fails the run, a half-read packet is worse than none.
func DecodePacket(content string) (studyModel.SummaryPacket, error) {
	var packet studyModel.SummaryPacket
	if err := json.Unmarshal([]byte(RecoverJSON(content)), &packet); err != nil {
		return studyModel.SummaryPacket{}, fmt.Errorf("%w: %v", studyModel.ErrParseFailure, err)
	}
	return packet, nil
}
