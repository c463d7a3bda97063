package typegraph

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDanglingRef           = "dangling_ref"
	CodeDuplicateTypeID       = "duplicate_type_id"
	CodeMalformedPolymorphic  = "malformed_polymorphic"
	CodeUnsupportedDescriptor = "unsupported_descriptor"
	CodeInvalidRoot           = "invalid_root"
	CodeParseError            = "parse_error"
)

// Issue represents a single diagnostic entry.
type Issue struct {
	Path    string // JSON-Pointer-ish location (for example: /properties/next).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: offending TypeID, remediation hints.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. dangling_ref at /properties/next (Node)
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
