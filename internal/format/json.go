package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/faanross/dnspeek/internal/resolver"
)

// JSON renders a result set as an indented JSON document. Output is
// deterministic for identical input; absent errors are omitted, not null.
func JSON(rs *resolver.ResultSet) (string, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(rs); err != nil {
		return "", fmt.Errorf("encoding result set: %w", err)
	}

	return buf.String(), nil
}
