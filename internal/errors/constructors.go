package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BuildError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Pipeline errors

func ScanFailed(root string, cause error) *BuildError {
	return Wrap(cause, CategoryScan, SeverityFatal, "corpus scan failed").
		WithContext("root", root)
}

func CompileFailed(path string, cause error) *BuildError {
	return Wrap(cause, CategoryCompile, SeverityFatal, "document compile failed").
		WithContext("path", path)
}

// MetadataMissing reports a document that declares no explicit metadata for a
// field and has no structural block to infer it from.
func MetadataMissing(path, field string) *BuildError {
	return New(CategoryMetadata, SeverityFatal, "metadata missing and no structural fallback").
		WithContext("path", path).
		WithContext("field", field)
}

func SerializeFailed(artifact string, cause error) *BuildError {
	return Wrap(cause, CategorySerialize, SeverityFatal, "artifact serialization failed").
		WithContext("artifact", artifact)
}

func WriteFailed(path string, cause error) *BuildError {
	return Wrap(cause, CategoryWrite, SeverityFatal, "artifact write failed").
		WithContext("path", path)
}

// Infrastructure errors

func CacheError(operation string, cause error) *BuildError {
	return Wrap(cause, CategoryCache, SeverityError, "extraction cache operation failed").
		WithContext("operation", operation)
}

func GitDateError(path string, cause error) *BuildError {
	return Wrap(cause, CategoryGit, SeverityWarning, "git date resolution failed").
		WithContext("path", path)
}

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
