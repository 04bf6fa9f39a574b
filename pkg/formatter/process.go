package formatter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/config"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/lint"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/project"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/syntax"
	"github.com/siyuan-infoblox/ts-imports-group/pkg/utils"
)

type FormatterConfig struct {
	InPlace    bool         // whether to modify files in place
	Check      bool         // report files that would change and fail instead of writing
	Workers    int          // files processed concurrently; 0 means one per CPU
	Strict     bool         // reject unknown keys in config files
	ConfigFile string       // explicit config file layered over discovered ones
	Overrides  config.Layer // command line options, layered last
	Stdout     io.Writer
	Logger     *slog.Logger
}

// formatter applies the import rules to files on disk
type formatter struct {
	config   FormatterConfig
	engine   *Engine
	configs  *config.Loader
	projects *project.Loader
	explicit *config.Layer
}

// fileResult is the outcome of one file.
type fileResult struct {
	path    string
	changed bool
	output  []byte
	err     error
}

// New creates a formatter. The explicit config file, when set, is read and validated here.
func New(cfg FormatterConfig) (*formatter, error) {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if err := config.Validate(cfg.Overrides); err != nil {
		return nil, err
	}

	configs, err := config.NewLoader(cfg.Strict)
	if err != nil {
		return nil, err
	}
	projects, err := project.NewLoader()
	if err != nil {
		return nil, err
	}

	g := &formatter{
		config:   cfg,
		engine:   NewEngine(syntax.NewTreeSitter()),
		configs:  configs,
		projects: projects,
	}
	if cfg.ConfigFile != "" {
		layer, err := configs.LoadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		g.explicit = &layer
	}
	return g, nil
}

func (g *formatter) getInPlace() bool {
	return g.config.InPlace
}

func (g *formatter) getCheck() bool {
	return g.config.Check
}

func (g *formatter) printf(format string, args ...interface{}) {
	fmt.Fprintf(g.config.Stdout, format, args...)
}

// Layers returns the config layers that apply to a file, lowest precedence first, excluding the
// built-in defaults. src supplies the file's linter suppressions.
func (g *formatter) Layers(path string, src []byte) ([]config.Layer, error) {
	dir := filepath.Dir(path)
	layers, files, err := g.configs.Discover(dir)
	if err != nil {
		return nil, err
	}
	g.config.Logger.Debug("config files discovered", "path", path, "files", files)

	if g.explicit != nil {
		layers = append(layers, *g.explicit)
	}

	opts, err := g.projects.Lookup(dir)
	if err != nil {
		return nil, err
	}
	if opts.Path != "" {
		g.config.Logger.Debug("project options", "path", path, "project", opts.Path, "aliases", opts.Aliases)
	}
	layers = append(layers, opts.Layer(), g.config.Overrides)

	if src != nil {
		layers = append(layers, lint.Layer(src))
	}
	return layers, nil
}

// ResolveConfig resolves the configuration of one file.
func (g *formatter) ResolveConfig(path string, src []byte) (config.Config, error) {
	layers, err := g.Layers(path, src)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Resolve(layers...)
	if err != nil {
		return config.Config{}, errors.Wrapf(err, "%s for %s", errors.ErrMsgFailedToResolveConf, path)
	}
	return cfg, nil
}

// checkConfigs resolves the configuration of every directory holding one of filePaths, so an
// invalid config file stops the run before any file is formatted.
func (g *formatter) checkConfigs(filePaths []string) error {
	seen := make(map[string]bool)
	for _, path := range filePaths {
		dir := filepath.Dir(path)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if _, err := g.ResolveConfig(path, nil); err != nil {
			return err
		}
	}
	return nil
}

// processFile formats one file and writes it back when running in place.
func (g *formatter) processFile(path string) fileResult {
	res := fileResult{path: path}
	log := g.config.Logger.With("path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		res.err = errors.Wrap(err, errors.ErrMsgFailedToReadFile)
		return res
	}
	res.output = src

	if IsGeneratedFile(src) {
		log.Debug("file skipped", "reason", errors.ErrGeneratedFile.Reason)
		return res
	}

	cfg, err := g.ResolveConfig(path, src)
	if err != nil {
		res.err = err
		return res
	}

	out, err := g.engine.Format(path, src, cfg)
	if err != nil {
		var skip *errors.SkipError
		if errors.As(err, &skip) {
			log.Debug("file skipped", "reason", skip.Reason)
			return res
		}
		res.err = errors.Wrap(err, errors.ErrMsgFailedToFormatFile)
		return res
	}

	res.output = out
	res.changed = !bytes.Equal(out, src)
	log.Debug("file formatted", "changed", res.changed)

	if res.changed && g.getInPlace() && !g.getCheck() {
		info, err := os.Stat(path)
		if err != nil {
			res.err = errors.Wrap(err, errors.ErrMsgFailedToWriteFile)
			return res
		}
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			res.err = errors.Wrap(err, errors.ErrMsgFailedToWriteFile)
		}
	}
	return res
}

// ProcessFile processes a single source file. Without --in-place or --check the formatted text is
// printed.
func (g *formatter) ProcessFile(path string) error {
	if err := g.checkConfigs([]string{path}); err != nil {
		return err
	}
	res := g.processFile(path)
	if res.err != nil {
		return res.err
	}

	switch {
	case g.getCheck():
		if res.changed {
			g.printf(errors.InfoMsgWouldProcess+"\n", path)
			return fmt.Errorf(errors.ErrMsgFilesWouldChange, 1)
		}
	case g.getInPlace():
		if res.changed {
			g.printf(errors.InfoMsgProcessedFiles+"\n", path)
		}
	default:
		_, err := g.config.Stdout.Write(res.output)
		return err
	}
	return nil
}

// ProcessFiles processes multiple source files concurrently and reports them in input order.
// An invalid configuration aborts the run before any file is processed.
func (g *formatter) ProcessFiles(filePaths []string) error {
	if err := g.checkConfigs(filePaths); err != nil {
		return err
	}
	results := make([]fileResult, len(filePaths))

	var eg errgroup.Group
	eg.SetLimit(g.config.Workers)
	for i, filePath := range filePaths {
		eg.Go(func() error {
			results[i] = g.processFile(filePath)
			return nil
		})
	}
	_ = eg.Wait()

	processedCount := 0
	errorCount := 0
	changedCount := 0
	for _, res := range results {
		if res.err != nil {
			g.printf(errors.InfoMsgErrorProcessing+"\n", res.path, res.err)
			errorCount++
			continue
		}
		processedCount++
		if !res.changed {
			continue
		}
		changedCount++
		if g.getInPlace() && !g.getCheck() {
			g.printf(errors.InfoMsgProcessedFiles+"\n", res.path)
		} else {
			g.printf(errors.InfoMsgWouldProcess+"\n", res.path)
		}
	}

	g.printf(errors.InfoMsgProcessedCount, processedCount)
	if errorCount > 0 {
		g.printf(errors.InfoMsgErrorCount, errorCount)
	}
	g.printf("\n")

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount)
	}
	if g.getCheck() && changedCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesWouldChange, changedCount)
	}
	return nil
}

// ProcessPath processes a file or directory path
func (g *formatter) ProcessPath(path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		return g.ProcessFile(path)
	}

	// When processing directories, in-place mode is recommended
	if !g.getInPlace() && !g.getCheck() {
		g.printf(errors.WarnMsgProcessingDirWithoutInPlace + "\n")
		g.printf(errors.InfoMsgUseInPlaceFlag + "\n\n")
	}

	files, err := utils.FindSourceFiles(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindSourceFiles, err)
	}

	if len(files) == 0 {
		g.printf(errors.InfoMsgNoSourceFilesFound+"\n", path)
		return nil
	}

	g.printf(errors.InfoMsgFoundSourceFiles+"\n\n", len(files), path)
	return g.ProcessFiles(files)
}
