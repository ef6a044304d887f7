package policy

import (
	"context"

	"admissions-chatbot-be/internal/constant"
	"admissions-chatbot-be/pkg/chat/extract"
)

// Action is the closed set of things a turn can resolve to.
type Action string

const (
	ActionAskBranch     Action = "ASK_BRANCH"
	ActionAskGrade      Action = "ASK_GRADE"
	ActionAskSubject    Action = "ASK_SUBJECT"
	ActionAnswerPending Action = "ANSWER_PENDING"
	ActionAnswerData    Action = "ANSWER_DATA"
	ActionAnswerGeneral Action = "ANSWER_GENERAL"
)

// State is the session's slot state as read at the start of the turn.
type State struct {
	Branch       *string
	Grade        *string
	Subject      *string
	PendingQuery *string
}

func (s State) pending() bool {
	return s.PendingQuery != nil && *s.PendingQuery != ""
}

func (s State) complete(requireSubject bool) bool {
	if s.Branch == nil || s.Grade == nil {
		return false
	}
	if requireSubject && s.Subject == nil {
		return false
	}
	return true
}

// Reconcile merges one turn's extraction into the slot state. A
// non-nil extracted field always overwrites. Idempotent: applying the
// same extraction twice changes nothing further.
func Reconcile(state State, slots extract.Slots) State {
	if slots.Branch != nil {
		state.Branch = slots.Branch
	}
	if slots.Grade != nil {
		state.Grade = slots.Grade
	}
	if slots.Subject != nil {
		state.Subject = slots.Subject
	}
	return state
}

// Decision tells the executor what to do and how to update the held
// question. Exactly one of ReplacePending / ClearPending can be set.
type Decision struct {
	Action   Action
	Question string // the question being answered, for the data paths

	ReplacePending bool // store the current utterance as the held question
	ClearPending   bool
}

// ClassifyFunc defers the intent oracle call so it only happens on the
// paths that need it.
type ClassifyFunc func(ctx context.Context, question string) string

// Decide computes the turn's action from the reconciled state.
//
// Order matters: a held question with now-complete slots is answered
// before any classification. A GENERAL_CHAT verdict is overridden to a
// data query when this turn extracted a slot, since users answering a
// clarification often trip the classifier.
func Decide(ctx context.Context, state State, extractedAny bool, utterance string, requireSubject bool, classify ClassifyFunc) Decision {
	if state.pending() && state.complete(requireSubject) {
		return Decision{
			Action:       ActionAnswerPending,
			Question:     *state.PendingQuery,
			ClearPending: true,
		}
	}

	intent := classify(ctx, utterance)
	if intent == constant.IntentGeneralChat && !extractedAny {
		return Decision{Action: ActionAnswerGeneral, Question: utterance}
	}

	// DATABASE_QUERY, or GENERAL_CHAT overridden by a fresh slot.
	if missing := firstMissing(state, requireSubject); missing != "" {
		d := Decision{Question: utterance}
		switch missing {
		case "branch":
			d.Action = ActionAskBranch
		case "grade":
			d.Action = ActionAskGrade
		case "subject":
			d.Action = ActionAskSubject
		}
		// Keep the held question while the user is slot-filling;
		// otherwise this utterance becomes the held question.
		d.ReplacePending = !(state.pending() && extractedAny)
		return d
	}

	return Decision{
		Action:       ActionAnswerData,
		Question:     utterance,
		ClearPending: state.pending(),
	}
}

// firstMissing walks the fixed priority order and stops at the first
// unfilled slot.
func firstMissing(state State, requireSubject bool) string {
	if state.Branch == nil {
		return "branch"
	}
	if state.Grade == nil {
		return "grade"
	}
	if requireSubject && state.Subject == nil {
		return "subject"
	}
	return ""
}
