package model

// Rule maps one trigger note to the ordered notes it should send.
type Rule struct {
	Trigger     Note
	TriggerName string
	Degree      string
	Outputs     []Note
	OutputNames []string
}
