package logging

// Field names shared by every log call so entries can be filtered consistently.
const (
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldOutputDir   = "output_dir"
	FieldTag         = "tag"
	FieldOccurrences = "occurrences"
	FieldTarget      = "target"
	FieldCount       = "count"
	FieldDateRange   = "date_range"
	FieldInvert      = "invert_amounts"
	FieldStatus      = "status"
	FieldRunID       = "run_id"
	FieldReason      = "reason"
	FieldVersion     = "ofx_version"
)
