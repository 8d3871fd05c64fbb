package output

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagemill/internal/content"
	"git.home.luguber.info/inful/pagemill/internal/logfields"
	"git.home.luguber.info/inful/pagemill/internal/metrics"
)

// CopyFailure is an asset that could not be copied.
type CopyFailure struct {
	Path string
	Err  error
}

// CopyResult lists what a static copy pass did.
type CopyResult struct {
	Copied   []string // relative paths
	Failures []CopyFailure
}

// StaticCopier mirrors non-content files from the content root into the
// output root.
type StaticCopier struct {
	contentRoot string
	outputRoot  string
	extensions  content.ExtensionSet
	recorder    metrics.Recorder
	logger      *slog.Logger
}

// NewStaticCopier creates a copier. WithDefaultLayout has no effect on it.
func NewStaticCopier(contentRoot, outputRoot string, extensions content.ExtensionSet, opts ...Option) *StaticCopier {
	s := applyOptions(opts)
	return &StaticCopier{
		contentRoot: contentRoot,
		outputRoot:  outputRoot,
		extensions:  extensions,
		recorder:    s.recorder,
		logger:      s.logger,
	}
}

// Copy walks the content root and copies every non-hidden file whose
// extension is not a content extension to the same relative path under the
// output root. Per-file failures are collected and do not stop the walk;
// only a failure to read the content root itself is returned.
func (c *StaticCopier) Copy() (*CopyResult, error) {
	res := &CopyResult{}

	err := content.Walk(c.contentRoot, func(f content.File, walkErr error) error {
		if walkErr != nil {
			c.fail(res, f.Rel, walkErr)
			return nil
		}
		if c.extensions.IsContent(f.Rel) {
			return nil
		}
		dst := filepath.Join(c.outputRoot, filepath.FromSlash(f.Rel))
		if err := copyFile(f.Abs, dst); err != nil {
			c.fail(res, f.Rel, err)
			return nil
		}
		res.Copied = append(res.Copied, f.Rel)
		c.recorder.IncItem(metrics.ItemAssetCopied)
		c.logger.Debug("Copied asset", logfields.Path(f.Rel), logfields.Output(dst))
		return nil
	})
	return res, err
}

func (c *StaticCopier) fail(res *CopyResult, rel string, err error) {
	res.Failures = append(res.Failures, CopyFailure{Path: rel, Err: err})
	c.recorder.IncItem(metrics.ItemCopyFailed)
	c.logger.Warn("Failed to copy asset", logfields.Path(rel), logfields.Error(err))
}

// copyFile copies src to dst byte for byte, creating parent directories and
// keeping the source permission bits.
func copyFile(src, dst string) error {
	// #nosec G304 -- src comes from walking the content root
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	// #nosec G304 -- dst is derived from the output root
	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode().Perm())
}
