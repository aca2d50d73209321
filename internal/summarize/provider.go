package summarize

import (
	"context"

	"github.com/lecturelens/lecturelens/internal/config"
	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

// Provider is the single LLM contract the rest of the system sees. The
// worker and the chat service call this, they never know which backend is
// behind it.
type Provider interface {
	GenerateSummary(ctx context.Context, text string) (studyModel.SummaryPacket, error)
	AnswerQuestion(ctx context.Context, question string, matches []string, messageHistory []string) (string, error)
}

// SummarySystemPrompt pins the exact output schema. The model is told to
// return raw JSON, the recovery pass handles the ones that wrap it anyway.
const SummarySystemPrompt = `You are a world-class professor. Create EXTREMELY DETAILED, academic-quality study material. Return ONLY valid JSON:
{
  "notes": [
    {
      "topic": "Concept Name",
      "content": "Comprehensive, multi-paragraph explanation (6-10 sentences). Cover the core mechanics, the 'WHY', historical context, and practical utility. Be exhaustive.",
      "analogies": ["A powerful analogy to explain this concept simply"],
      "definitions": ["Term: precise, academic definition"],
      "formulas": ["Name: Math/Logic expression (variables defined & units context)"],
      "bulletPoints": ["Critical nuance 1", "Critical nuance 2", "Critical nuance 3", "Critical nuance 4"],
      "examples": ["Detailed worked example 1", "Real-world application case study 2"]
    }
  ],
  "summary": {
    "overview": "A rich, thorough executive summary around 20 sentences connecting all major themes.",
    "highlights": ["highlight 1", "highlight 2", "highlight 3", "highlight 4", "highlight 5"],
    "importantConcepts": ["Concept: detailed explanation"],
    "keyFormulas": ["Formula: expression (context)"],
    "examTip": "High-value exam strategy: trick questions to watch for.",
    "keyTakeaway": "One definitive sentence summing up the lecture's value."
  },
  "quiz": [
    {
      "question": "Challenging multiple-choice question",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "answer": "Option A",
      "explanation": "Brief explanation of why this answer is correct."
    }
  ]
}
RULES:
1. Generate atleast 3-5 distinct topics (Quality > Quantity).
2. "examples": MUST have at least 1 detailed example per topic.
3. "analogies": Provide at least 1 analogy per topic if applicable.
4. "quiz": Generate exactly 5 questions testing understanding, not just recall.
5. Math/Science: Focus heavily on formulas/derivations and step-by-step logic.
6. Content be deep enough for exam review.
7. NO markdown in values. strictly JSON.`

const ChatSystemPrompt = `You are a helpful teaching assistant. Answer the user's question based ONLY on the provided lecture context.
If the answer is not in the context, say "I couldn't find that information in the lecture."
Keep answers concise (2-3 sentences) unless asked for detail.`

// TruncateForSummary caps summarization input. The cap is a token budget
// expressed in characters, the marker tells the model the input was cut.
func TruncateForSummary(text string) string {
	if len(text) > config.SummaryInputMaxChars {
		return text[:config.SummaryInputMaxChars] + "\n[...truncated]"
	}
	return text
}

// TruncateForChat caps the retrieved lecture context of a chat turn.
func TruncateForChat(lectureContext string) string {
	if len(lectureContext) > config.ChatContextMaxChars {
		return lectureContext[:config.ChatContextMaxChars] + "...(truncated)"
	}
	return lectureContext
}
