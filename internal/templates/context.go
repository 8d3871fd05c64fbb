package templates

import "github.com/flosch/pongo2/v6"

// BaseContext is the render context shared by every page in a run. It is
// built once and never modified.
type BaseContext struct {
	values pongo2.Context
}

// NewBaseContext binds value under key.
func NewBaseContext(key string, value any) *BaseContext {
	return &BaseContext{values: pongo2.Context{key: value}}
}

// With returns a fresh context holding the base values overlaid with fields.
// A field wins over a base value of the same name.
func (b *BaseContext) With(fields Fields) pongo2.Context {
	ctx := make(pongo2.Context, len(b.values)+len(fields))
	for k, v := range b.values {
		ctx[k] = v
	}
	for k, v := range fields {
		ctx[k] = v
	}
	return ctx
}
