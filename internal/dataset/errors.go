package dataset

import "errors"

var (
	ErrInvalidDefinition        = errors.New("invalid data set definition")
	ErrInvalidDefinitionPayload = errors.New("malformed definition payload")
	ErrUnsupportedDefinition    = errors.New("no evaluator registered for definition type")
	ErrUnsupportedCohort        = errors.New("unsupported cohort definition")
	ErrEvaluationFailed         = errors.New("data set evaluation failed")
	ErrUnknownValueKind         = errors.New("unknown observation value kind")
)
