package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across sources, the resolver
// and the ingestion path, making logs easier to filter and analyze.
const (
	FieldFile       = "file_path"
	FieldSource     = "source_type"
	FieldMerchant   = "merchant"
	FieldDate       = "date"
	FieldCost       = "cost"
	FieldCategory   = "category"
	FieldSubcat     = "subcategory"
	FieldProvenance = "provenance"
	FieldOutcome    = "outcome"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldError      = "error"
)
