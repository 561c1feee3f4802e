// Package types defines the data structures shared by the document store,
// search and the MCP tools.
package types

type (
	// ParsedDocument is a stored document split into metadata and body.
	ParsedDocument struct {
		Metadata        map[string]any `json:"metadata"`
		Content         string         `json:"content"`
		OriginalContent string         `json:"originalContent"`
	}

	// WriteMode selects how WriteDocument combines new and existing content.
	WriteMode string

	// DocumentWriteParams contains parameters for writing a document.
	DocumentWriteParams struct {
		Path     string         `json:"path"`
		Content  string         `json:"content"`
		Metadata map[string]any `json:"metadata,omitempty"`
		Mode     WriteMode      `json:"mode,omitempty"`
	}

	// DirectoryListing contains the documents and directories under a path.
	DirectoryListing struct {
		Files       []string `json:"files"`
		Directories []string `json:"directories"`
	}

	// MetadataValidation is the result of validating document metadata.
	MetadataValidation struct {
		IsValid bool     `json:"isValid"`
		Errors  []string `json:"errors"`
	}

	// PathFilterConfig extends the default access policy.
	PathFilterConfig struct {
		IgnoredPatterns   []string `json:"ignoredPatterns" yaml:"ignoredPatterns"`
		AllowedExtensions []string `json:"allowedExtensions" yaml:"allowedExtensions"`
	}
)

const (
	ModeOverwrite WriteMode = "overwrite"
	ModeAppend    WriteMode = "append"
	ModePrepend   WriteMode = "prepend"
)
