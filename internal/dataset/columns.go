package dataset

import "slices"

// Column names of the observation data set.
const (
	ColumnPatientID         = "patientId"
	ColumnQuestion          = "question"
	ColumnQuestionConceptID = "questionConceptId"
	ColumnAnswer            = "answer"
	ColumnAnswerConceptID   = "answerConceptId"
	ColumnObsDatetime       = "obsDatetime"
	ColumnEncounterID       = "encounterId"
	ColumnObsGroupID        = "obsGroupId"
)

var obsColumns = []Column{
	NewColumn(ColumnPatientID, ValueTypeInteger),
	NewColumn(ColumnQuestion, ValueTypeString),
	NewColumn(ColumnQuestionConceptID, ValueTypeInteger),
	NewColumn(ColumnAnswer, ValueTypeObject),
	NewColumn(ColumnAnswerConceptID, ValueTypeInteger),
	NewColumn(ColumnObsDatetime, ValueTypeDateTime),
	NewColumn(ColumnEncounterID, ValueTypeInteger),
	NewColumn(ColumnObsGroupID, ValueTypeInteger),
}

// ObsColumns returns the fixed observation schema in output order.
func ObsColumns() []Column {
	return slices.Clone(obsColumns)
}
