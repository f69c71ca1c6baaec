package resolver

// QueryResult holds the outcome of a single record-type query.
//
// Records and Error are never populated together: a failed query carries only
// an error message, a successful query carries only records, and a type the
// domain simply has no records of carries neither.
type QueryResult struct {
	Type    RecordType `json:"type"`
	Records []string   `json:"records"`
	Error   string     `json:"error,omitempty"`
}

// ResultSet is the aggregate outcome of one lookup invocation: one
// QueryResult per requested type, in the order the types were requested.
type ResultSet struct {
	Domain  string        `json:"domain"`
	Results []QueryResult `json:"results"`
}

// newResult returns a success or benign-absence result. Records is kept
// non-nil so an empty set serializes as [] rather than null.
func newResult(rt RecordType, records []string) QueryResult {
	if records == nil {
		records = []string{}
	}
	return QueryResult{Type: rt, Records: records}
}

// newErrorResult returns a failed-query result carrying the error text.
func newErrorResult(rt RecordType, msg string) QueryResult {
	if msg == "" {
		msg = fallbackError(rt)
	}
	return QueryResult{Type: rt, Records: []string{}, Error: msg}
}

func fallbackError(rt RecordType) string {
	return "Failed to resolve " + string(rt) + " records"
}
