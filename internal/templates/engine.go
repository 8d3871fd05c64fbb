package templates

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/flosch/pongo2/v6"

	"git.home.luguber.info/inful/pagemill/internal/content"
	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
)

// ErrLayoutNotFound is returned by Render for a layout name that was not
// loaded from the layouts directory.
var ErrLayoutNotFound = errors.New("layout not found")

// Engine holds the layouts compiled from a layouts directory.
type Engine struct {
	dir     string
	set     *pongo2.TemplateSet
	layouts map[string]*pongo2.Template
}

// Load compiles every non-hidden file under dir as a named layout. The name
// is the slash-separated path relative to dir. Any parse error is fatal. A
// missing directory yields an engine with no layouts.
func Load(dir string, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("Layouts directory not found, no layouts loaded", logfields.Path(dir))
		loader, lerr := pongo2.NewLocalFileSystemLoader("")
		if lerr != nil {
			return nil, ferrors.WrapError(lerr, ferrors.CategoryInternal, "failed to create template loader").Build()
		}
		return &Engine{dir: dir, set: pongo2.NewSet("layouts", loader), layouts: map[string]*pongo2.Template{}}, nil
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryTemplate, "failed to read layouts directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	if !info.IsDir() {
		return nil, ferrors.TemplateError("layouts path is not a directory").
			WithContext("path", dir).
			Build()
	}

	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryTemplate, "failed to create template loader").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	e := &Engine{
		dir:     dir,
		set:     pongo2.NewSet("layouts", loader),
		layouts: make(map[string]*pongo2.Template),
	}

	err = content.Walk(dir, func(f content.File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		tpl, err := e.set.FromFile(f.Rel)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryTemplate, "failed to parse layout").
				Fatal().
				UserAction().
				WithContext("layout", f.Rel).
				Build()
		}
		e.layouts[f.Rel] = tpl
		return nil
	})
	if err != nil {
		if ferrors.IsClassified(err) {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryTemplate, "failed to load layouts").
			Fatal().
			WithContext("path", dir).
			Build()
	}

	logger.Debug("Loaded layouts", logfields.Path(dir), logfields.Count(len(e.layouts)))
	return e, nil
}

// Dir returns the layouts directory the engine was loaded from.
func (e *Engine) Dir() string { return e.dir }

// Layouts returns the loaded layout names in sorted order.
func (e *Engine) Layouts() []string {
	names := make([]string, 0, len(e.layouts))
	for name := range e.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a layout was loaded.
func (e *Engine) Has(layout string) bool {
	_, ok := e.layouts[layout]
	return ok
}

// Render executes a layout against ctx.
func (e *Engine) Render(layout string, ctx pongo2.Context) ([]byte, error) {
	tpl, ok := e.layouts[layout]
	if !ok {
		return nil, ferrors.RenderError("failed to render layout").
			WithCause(ErrLayoutNotFound).
			WithContext("layout", layout).
			Build()
	}
	out, err := tpl.ExecuteBytes(ctx)
	if err != nil {
		return nil, ferrors.RenderError("failed to render layout").
			WithCause(err).
			WithContext("layout", layout).
			Build()
	}
	return out, nil
}

// RenderInline compiles source as an ad hoc template and executes it with an
// empty context.
func (e *Engine) RenderInline(source string) (string, error) {
	tpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("parse inline template: %w", err)
	}
	out, err := tpl.Execute(pongo2.Context{})
	if err != nil {
		return "", fmt.Errorf("render inline template: %w", err)
	}
	return out, nil
}
