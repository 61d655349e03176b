package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"grimport/internal/config"
	serr "grimport/internal/errors"
	"grimport/internal/log"
	"grimport/pkg/types"

	"github.com/gobwas/glob"
)

// Engine discovers scripts under a source directory and installs them into
// a GRASS script directory under their dotted name.
type Engine struct {
	root       string
	pattern    *regexp.Regexp
	extension  string
	exclusions []glob.Glob
	candidates []string
	replace    bool
	dryRun     bool
}

// NewWithConfig creates a new import Engine for the given source directory.
// The source directory must exist; the filter pattern and exclusion set are
// compiled once here.
func NewWithConfig(root string, cfg *config.Config) (*Engine, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serr.NewFileError("input directory does not exist", root, serr.FileNotFound, nil)
		}
		return nil, serr.NewFileError("cannot access input directory", root, serr.FileAccessDenied, err)
	}
	if !info.IsDir() {
		return nil, serr.NewFileError("input path is not a directory", root, serr.FileNotFound, nil)
	}

	pattern, err := compilePattern(cfg.Import.Pattern, cfg.Import.Extension)
	if err != nil {
		return nil, err
	}

	exclusions := make([]glob.Glob, 0, len(cfg.Import.Exclusions))
	for _, exclusion := range cfg.Import.Exclusions {
		g, err := glob.Compile(exclusion)
		if err != nil {
			return nil, serr.NewConfigError("invalid exclusion pattern", exclusion, serr.InvalidExclusion, err)
		}
		exclusions = append(exclusions, g)
	}

	return &Engine{
		root:       root,
		pattern:    pattern,
		extension:  cfg.Import.Extension,
		exclusions: exclusions,
		candidates: cfg.Import.Candidates,
		replace:    cfg.Settings.Replace,
		dryRun:     cfg.Settings.DryRun,
	}, nil
}

// compilePattern builds the filename regex. An empty pattern matches any
// name carrying the extension. Patterns are anchored at the start of the
// name, so "i_.*" matches "i_script.py" but not "my_i_script.py".
func compilePattern(pattern, extension string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = ".*" + regexp.QuoteMeta(extension)
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, serr.NewConfigError("invalid filename pattern", pattern, serr.InvalidPattern, err)
	}
	return re, nil
}

// SetDryRun sets whether copies should be performed or just logged
func (e *Engine) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// SetReplace sets whether already installed scripts are overwritten
func (e *Engine) SetReplace(replace bool) {
	e.replace = replace
}

// Match reports whether a bare filename passes the filter: it must carry
// the configured extension, match the pattern, and not be excluded.
func (e *Engine) Match(name string) bool {
	if !strings.HasSuffix(name, e.extension) {
		return false
	}
	if !e.pattern.MatchString(name) {
		return false
	}
	return !e.excluded(name)
}

func (e *Engine) excluded(name string) bool {
	for _, g := range e.exclusions {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Discover walks the source directory and returns the absolute paths of
// all files passing the filter, in walk order. An empty result is not an
// error.
func (e *Engine) Discover() ([]types.FileRecord, error) {
	var records []types.FileRecord

	err := filepath.WalkDir(e.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !e.Match(d.Name()) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		records = append(records, types.FileRecord{Path: abs})
		return nil
	})
	if err != nil {
		return nil, serr.Wrapf(err, "error walking %s", e.root)
	}

	log.Debug("Discovered %d files under %s", len(records), e.root)
	return records, nil
}

// ResolveDestination determines the script directory. An explicit path is
// created if absent and used as is; otherwise the ordered candidate list
// is probed and the first existing directory wins.
func (e *Engine) ResolveDestination(explicit string) (string, error) {
	if explicit != "" {
		if err := os.MkdirAll(explicit, 0755); err != nil {
			return "", serr.NewFileError("cannot create export path", explicit, serr.FileOperationFailed, err)
		}
		return explicit, nil
	}

	for _, candidate := range e.candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			log.Debug("Resolved script directory: %s", candidate)
			return candidate, nil
		}
	}

	return "", serr.NewFileError("no script directory found and no export path given", "", serr.DestinationUnresolved, nil)
}

// Install copies a single discovered script into destDir under its dotted
// name. An existing destination is silently skipped unless replace is set.
func (e *Engine) Install(record types.FileRecord, destDir string) (types.ImportResult, error) {
	target := filepath.Join(destDir, record.InstalledName())
	result := types.ImportResult{
		SourcePath:      record.Path,
		DestinationPath: target,
	}

	if e.dryRun {
		log.Info("Would copy %s -> %s", record.Path, target)
		return result, nil
	}

	if _, err := os.Stat(target); err == nil && !e.replace {
		// Already installed and replace not requested. Skipping quietly is
		// the intended policy, not a failure.
		log.Debug("Skipping %s, %s already exists", record.Path, target)
		result.Skipped = true
		return result, nil
	}

	if err := copyFile(record.Path, target); err != nil {
		return result, serr.NewFileError("failed to install script", record.Path, serr.FileOperationFailed, err)
	}

	log.Debug("Copied %s -> %s", record.Path, target)
	result.Copied = true
	return result, nil
}

// InstallAll installs every record into destDir, failing on the first copy
// error. Skips are recorded in the results, not reported as errors.
func (e *Engine) InstallAll(records []types.FileRecord, destDir string) ([]types.ImportResult, error) {
	results := make([]types.ImportResult, 0, len(records))
	for _, record := range records {
		result, err := e.Install(record, destDir)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Summarize counts the copied and skipped results of an InstallAll run
func Summarize(results []types.ImportResult) (copied, skipped int) {
	for _, result := range results {
		switch {
		case result.Copied:
			copied++
		case result.Skipped:
			skipped++
		}
	}
	return copied, skipped
}

// PrintRecords writes each discovered path to w, one per line
func PrintRecords(w io.Writer, records []types.FileRecord) {
	for _, record := range records {
		fmt.Fprintln(w, record.Path)
	}
}

// copyFile copies the source bytes verbatim, carrying over the source file
// mode. The destination is truncated if it exists.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
