package model

type RuleResponse struct {
	Trigger string   `json:"trigger"`
	Degree  string   `json:"degree"`
	Notes   []int    `json:"notes"`
	Names   []string `json:"names"`
}

type RulesResponse struct {
	NoteRoot int            `json:"note_root"`
	Count    int            `json:"count"`
	Rules    []RuleResponse `json:"rules"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
