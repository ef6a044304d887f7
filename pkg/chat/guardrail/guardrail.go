package guardrail

import (
	"strings"

	"admissions-chatbot-be/internal/constant"
)

// SlotKind identifies which option catalog to attach.
type SlotKind string

const (
	SlotNone    SlotKind = ""
	SlotGrade   SlotKind = "grade"
	SlotBranch  SlotKind = "branch"
	SlotSubject SlotKind = "subject"
)

// Scan inspects a free-text answer for clarifying phrasing the policy
// did not plan for. Returns the highest-priority matching slot, at
// most one. Priority: grade, then branch, then subject.
func Scan(answer string) SlotKind {
	lowered := strings.ToLower(answer)

	if matchesAny(lowered, constant.GuardrailGradeKeywords) {
		return SlotGrade
	}
	if matchesAny(lowered, constant.GuardrailBranchKeywords) {
		return SlotBranch
	}
	if matchesAny(lowered, constant.GuardrailSubjectKeywords) {
		return SlotSubject
	}
	return SlotNone
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
