package otel

import "go.opentelemetry.io/otel/attribute"

// Standard attribute keys for courtside spans.
const (
	AttrRequestID        = "request.id"
	AttrQuestionCategory = "question.category"
	AttrIntentType       = "betting.intent_type"
	AttrPlanKey          = "plan.key"
	AttrPlanSize         = "plan.size"
	AttrLLMModel         = "llm.model"
	AttrLLMTier          = "llm.tier"
)

func RequestID(id string) attribute.KeyValue        { return attribute.String(AttrRequestID, id) }
func QuestionCategory(c string) attribute.KeyValue  { return attribute.String(AttrQuestionCategory, c) }
func IntentType(t string) attribute.KeyValue        { return attribute.String(AttrIntentType, t) }
func PlanKey(k string) attribute.KeyValue           { return attribute.String(AttrPlanKey, k) }
func PlanSize(n int) attribute.KeyValue             { return attribute.Int(AttrPlanSize, n) }
