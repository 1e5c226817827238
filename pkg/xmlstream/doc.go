// Package xmlstream provides a forward-only streaming XML reader built on encoding/xml.
// It reports start element, end element and character data events with line and
// column context, skips comments, processing instructions and directives, and
// enforces depth and token size limits.
package xmlstream
