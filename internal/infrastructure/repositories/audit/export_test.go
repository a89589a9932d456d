package audit

// InsertQuery exports insertQuery for testing.
var InsertQuery = insertQuery //nolint:gochecknoglobals // test export
