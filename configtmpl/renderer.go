// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package configtmpl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/template"

	"github.com/z5labs/settings"
	"github.com/z5labs/settings/internal/try"
	"github.com/z5labs/settings/secretstore"
)

// RenderOption represents options for configuring the Renderer.
type RenderOption func(*Renderer)

// TemplateFunc registers the given function, f, for use in the
// template via the given name. It may replace a builtin function.
func TemplateFunc(name string, f any) RenderOption {
	return func(r *Renderer) {
		r.extra[name] = f
	}
}

// TemplateDelims sets the action delimiters to the specified strings.
// Nested template definitions will inherit the settings. An empty delimiter
// stands for the corresponding default: {{ or }}.
func TemplateDelims(left, right string) RenderOption {
	return func(r *Renderer) {
		r.leftDelim = left
		r.rightDelim = right
	}
}

// Registry sets the Registry the setting function resolves names from.
// The default is [settings.Global].
func Registry(reg *settings.Registry) RenderOption {
	return func(r *Renderer) {
		r.funcs.registry = reg
	}
}

// SecretStore sets the store the secret function reads from.
// The default is [secretstore.OS].
func SecretStore(store secretstore.Store) RenderOption {
	return func(r *Renderer) {
		r.funcs.store = store
	}
}

// Renderer is an io.Reader that renders a text/template from
// a given io.Reader. The template is rendered on the first call to [Renderer.Read].
type Renderer struct {
	r io.Reader

	leftDelim  string
	rightDelim string
	funcs      funcs
	extra      template.FuncMap
	renderOnce sync.Once
	renderErr  error
	buf        bytes.Buffer
}

// Render configures a Renderer. Template functions resolve their values
// with ctx.
func Render(ctx context.Context, r io.Reader, opts ...RenderOption) *Renderer {
	tr := &Renderer{
		r: r,
		funcs: funcs{
			ctx:      ctx,
			registry: settings.Global(),
			store:    secretstore.OS(),
		},
		extra: make(template.FuncMap),
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// TextTemplateParseError occurs when the template fails to be parsed.
type TextTemplateParseError struct {
	Cause error
}

// Error implements the error interface.
func (e TextTemplateParseError) Error() string {
	return fmt.Sprintf("failed to parse template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TextTemplateParseError) Unwrap() error {
	return e.Cause
}

// TextTemplateExecError occurs when a template fails to execute. Most
// likely cause is a missing setting or a template function panicing.
type TextTemplateExecError struct {
	Cause error
}

// Error implements the error interface.
func (e TextTemplateExecError) Error() string {
	return fmt.Sprintf("failed to exec template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TextTemplateExecError) Unwrap() error {
	return e.Cause
}

// Read implements the io.Reader interface.
func (tr *Renderer) Read(b []byte) (int, error) {
	tr.renderOnce.Do(func() {
		tr.renderErr = tr.render()
	})
	if tr.renderErr != nil {
		return 0, tr.renderErr
	}
	return tr.buf.Read(b)
}

func (tr *Renderer) render() (err error) {
	defer try.Close(&err, tr.r)

	var sb strings.Builder
	_, err = io.Copy(&sb, tr.r)
	if err != nil {
		return err
	}

	fm := tr.funcs.funcMap()
	for name, f := range tr.extra {
		fm[name] = f
	}

	tmpl, err := template.New("settings").
		Delims(tr.leftDelim, tr.rightDelim).
		Funcs(fm).
		Option("missingkey=error").
		Parse(sb.String())
	if err != nil {
		return TextTemplateParseError{Cause: err}
	}

	err = tmpl.Execute(&tr.buf, struct{}{})
	if err != nil {
		return TextTemplateExecError{Cause: err}
	}
	return nil
}
