package terraform

// Diagnose exports diagnose for testing.
var Diagnose = diagnose //nolint:gochecknoglobals // test export

// Diagnosis exports diagnosis for testing.
type Diagnosis = diagnosis

// ModuleCall exports moduleCall for testing.
type ModuleCall = moduleCall
