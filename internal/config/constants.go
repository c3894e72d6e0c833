package config

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".sol", ".soli"}

// ManifestFileName is the project manifest looked up in the working directory.
const ManifestFileName = "solbind.yaml"

// ToolName is used in generated-code headers and diagnostics.
const ToolName = "solbind"
