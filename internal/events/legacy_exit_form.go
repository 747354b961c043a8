package events

const LegacyExitFormTopic = "hrms.exit.forms.legacy.v1"

// LegacyExitFormBatch carries raw exit-form records exported from the legacy
// HRMS. Records are untyped maps on purpose: the old system emits the same
// form with different field-name spellings depending on which endpoint
// produced it, so coercion happens during import, not here.
type LegacyExitFormBatch struct {
	Source  string           `json:"source"`
	Records []map[string]any `json:"records"`
}
