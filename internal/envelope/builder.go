package envelope

// Builder constructs Response envelopes using a fluent API.
type Builder struct {
	resp *Response
}

// New creates a new envelope builder.
func New() *Builder {
	return &Builder{
		resp: &Response{
			SchemaVersion: CurrentSchemaVersion,
		},
	}
}

// Data sets the tool-specific payload.
func (b *Builder) Data(data interface{}) *Builder {
	b.resp.Data = data
	return b
}

// WithTruncation adds truncation info.
func (b *Builder) WithTruncation(truncated bool, shown, total int, reason string) *Builder {
	if b.resp.Meta == nil {
		b.resp.Meta = &Meta{}
	}
	b.resp.Meta.Truncation = &Truncation{
		IsTruncated: truncated,
		Shown:       shown,
		Total:       total,
		Reason:      reason,
	}
	return b
}

// Warning adds a warning message.
func (b *Builder) Warning(msg string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Message: msg})
	return b
}

// Error records an error string on the envelope.
func (b *Builder) Error(err error) *Builder {
	if err != nil {
		msg := err.Error()
		b.resp.Error = &msg
	}
	return b
}

// Suggest adds a suggested follow-up tool call.
func (b *Builder) Suggest(tool string, params map[string]interface{}, reason string) *Builder {
	b.resp.SuggestedNextCalls = append(b.resp.SuggestedNextCalls, SuggestedCall{
		Tool:   tool,
		Params: params,
		Reason: reason,
	})
	return b
}

// Build returns the envelope response.
func (b *Builder) Build() *Response {
	return b.resp
}

// Text creates a plain envelope around a text payload; the common case
// for exploration tools.
func Text(data string) *Response {
	return New().Data(data).Build()
}
