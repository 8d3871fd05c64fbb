package config

import (
	"path"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/pagemill/internal/content"
	ferrors "git.home.luguber.info/inful/pagemill/internal/foundation/errors"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedFields are the item fields that shadow a base context variable of
// the same name in every page render.
var reservedFields = map[string]bool{"path": true, "slug": true, "metadata": true, "body": true}

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	if _, err := content.NewExtensionSet(cfg.Content.Extensions...); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid content extensions").
			UserAction().
			WithContext("extensions", strings.Join(cfg.Content.Extensions, ",")).
			Build()
	}

	key := cfg.Content.SectionKey
	if !identifierPattern.MatchString(key) || reservedFields[key] {
		return ferrors.ValidationError("section_key must be an identifier other than path, slug, metadata or body").
			WithContext("section_key", key).
			Build()
	}

	layout := cfg.Templates.DefaultLayout
	if strings.TrimSpace(layout) == "" || path.IsAbs(layout) || strings.HasPrefix(path.Clean(layout), "..") {
		return ferrors.ValidationError("default_layout must be a path inside the layouts directory").
			WithContext("default_layout", layout).
			Build()
	}

	if _, err := logLevelNormalizer.NormalizeWithError(cfg.Log.Level); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid log level").UserAction().Build()
	}
	if _, err := logFormatNormalizer.NormalizeWithError(cfg.Log.Format); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid log format").UserAction().Build()
	}
	return nil
}
