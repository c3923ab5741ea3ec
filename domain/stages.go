package domain

// Stage is a step of a single analysis request
type Stage string

const (
	StageReceived   Stage = "RECEIVED"
	StageValidated  Stage = "VALIDATED"
	StageDispatched Stage = "DISPATCHED"
	StageParsed     Stage = "PARSED"
	StageResponded  Stage = "RESPONDED"
	StageRejected   Stage = "REJECTED"
	StageFailed     Stage = "FAILED"
)
