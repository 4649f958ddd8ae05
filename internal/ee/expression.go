package ee

import "encoding/json"

// Expression is one node in a deferred raster computation graph. Nothing is
// evaluated locally; the graph is serialized and shipped to the remote
// compute endpoint when a terminal call (ComputeValue, ComputeFeatures) is
// made. Invariant: an Expression is immutable once built, so derived images
// and collections can share subtrees freely.
type Expression struct {
	ref  string
	fn   string
	args map[string]any
}

// Call builds a function-invocation node.
func Call(functionName string, args map[string]any) *Expression {
	return &Expression{fn: functionName, args: args}
}

// argumentRef builds a placeholder node used inside mapped algorithms.
func argumentRef(name string) *Expression {
	return &Expression{ref: name}
}

// MarshalJSON encodes the node in the wire format understood by the compute
// service: {"functionName": ..., "arguments": {...}} for invocations and
// {"argumentReference": name} for placeholders. Nested Expressions encode
// recursively; plain values encode as JSON constants.
func (e *Expression) MarshalJSON() ([]byte, error) {
	if e.ref != "" {
		return json.Marshal(map[string]string{"argumentReference": e.ref})
	}
	return json.Marshal(struct {
		FunctionName string         `json:"functionName"`
		Arguments    map[string]any `json:"arguments"`
	}{e.fn, e.args})
}

// Filter constructors. Filters are ordinary expression nodes consumed by
// Collection.filter.

// Eq matches features/images whose named property equals value.
func Eq(name string, value any) *Expression {
	return Call("Filter.eq", map[string]any{"name": name, "value": value})
}

// Lt matches elements whose named property is strictly below value.
func Lt(name string, value any) *Expression {
	return Call("Filter.lt", map[string]any{"name": name, "value": value})
}

// And combines filters conjunctively.
func And(filters ...*Expression) *Expression {
	return Call("Filter.and", map[string]any{"filters": filters})
}

// CalendarRange matches elements whose timestamp falls in [start, end] of
// the given calendar field ("year", "month", ...). Both bounds inclusive.
func CalendarRange(start, end int, field string) *Expression {
	return Call("Filter.calendarRange", map[string]any{
		"start": start,
		"end":   end,
		"field": field,
	})
}
