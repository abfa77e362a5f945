package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"prosescan/internal/aidetect"
	"prosescan/internal/corpus"
	"prosescan/internal/db"
	"prosescan/internal/ingest"
	"prosescan/internal/pipeline"
	"prosescan/internal/workspace"
)

type options struct {
	configPath     string
	lexiconDB      string
	lexiconVersion string
	exportLexicon  bool
	listLexicons   bool
	workers        int
	sectionWords   int
	workspaceDir   string
	homeWorkspace  bool
	language       string
	pretty         bool
	verbose        bool
	files          []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("prosescan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: prosescan [flags] [file ...]")
		fmt.Fprintln(stderr, "Scores .txt, .md, .docx and .pdf files (or stdin) for AI-writing patterns.")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "YAML tuning file (defaults to the workspace tuning file when -workspace is set)")
	fs.StringVar(&opts.lexiconDB, "lexicon-db", "", "sqlite lexicon store to load terms from")
	fs.StringVar(&opts.lexiconVersion, "lexicon-version", "", "lexicon version to load (latest when empty)")
	fs.BoolVar(&opts.exportLexicon, "export-lexicon", false, "save the embedded lexicon into -lexicon-db and exit")
	fs.BoolVar(&opts.listLexicons, "list-lexicons", false, "list lexicon versions stored in -lexicon-db and exit")
	fs.IntVar(&opts.workers, "workers", 0, "documents analysed concurrently (0 = one per CPU)")
	fs.IntVar(&opts.sectionWords, "section-words", 0, "also score paragraph-aligned sections of about this many words (0 = off)")
	fs.StringVar(&opts.workspaceDir, "workspace", "", "workspace directory for tuning, lexicon store and saved reports")
	fs.BoolVar(&opts.homeWorkspace, "default-workspace", false, "use ~/"+workspace.BaseDirName+" as the workspace when -workspace is empty")
	fs.StringVar(&opts.language, "language", "en", "language of the input documents")
	fs.BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	fs.BoolVar(&opts.verbose, "v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	opts.files = fs.Args()
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	logger := newLineLogger(stderr, opts.verbose)

	var paths *workspace.Paths
	if opts.workspaceDir != "" || opts.homeWorkspace {
		var p workspace.Paths
		if opts.workspaceDir != "" {
			p, err = workspace.EnsureAt(opts.workspaceDir)
		} else {
			p, err = workspace.EnsureDefault()
		}
		if err != nil {
			logger.Log("RISK", "WORKSPACE", "workspace initialization failed", err.Error())
			return 1
		}
		paths = &p
		logger.Log("INFO", "WORKSPACE", "workspace ready", filepath.Clean(p.Root))
		if opts.configPath == "" {
			opts.configPath = p.Config
		}
		if opts.lexiconDB == "" {
			opts.lexiconDB = p.LexiconDB
		}
	}

	if opts.exportLexicon || opts.listLexicons {
		return runLexiconCommand(opts, stdout, logger)
	}

	cfg := aidetect.DefaultConfig()
	if opts.configPath != "" {
		cfg, err = aidetect.LoadConfig(opts.configPath)
		if err != nil {
			logger.Log("RISK", "CONFIG", "tuning file rejected", err.Error())
			return 1
		}
		logger.Log("INFO", "CONFIG", "tuning loaded", opts.configPath)
	}

	lex, err := loadLexicon(opts, logger)
	if err != nil {
		logger.Log("RISK", "CORPUS", "lexicon unavailable", err.Error())
		return 1
	}
	engine := aidetect.NewEngine(cfg, lex, logger)

	docs, err := collectDocuments(opts.files, stdin)
	if err != nil {
		logger.Log("RISK", "INGEST", "no input", err.Error())
		return 1
	}

	results := make([]*output, len(docs))
	errs := pipeline.Run(docs, opts.workers, func(d document) error {
		parsed, err := d.parse()
		if err != nil {
			logger.Log("WARN", "INGEST", "document skipped", err.Error())
			return err
		}
		in := aidetect.Input{DocumentID: d.id, Text: parsed.Text, Language: opts.language}
		res := engine.Analyze(in)
		out := &output{Result: res}
		if opts.sectionWords > 0 {
			out.Sections = engine.AnalyzeSections(in, opts.sectionWords)
		}
		results[d.index] = out
		if paths != nil {
			report := workspace.Report{
				Title:          parsed.Title,
				SourcePath:     parsed.SourcePath,
				LexiconVersion: engine.LexiconVersion(),
				AnalyzedAt:     time.Now().UTC(),
				Result:         res,
			}
			path, err := workspace.SaveReport(*paths, report)
			if err != nil {
				logger.Log("WARN", "REPORT", "report not saved", err.Error())
			} else {
				logger.Log("INFO", "REPORT", "report saved", path)
			}
		}
		return nil
	})

	enc := json.NewEncoder(stdout)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		if err := enc.Encode(res); err != nil {
			logger.Log("RISK", "OUTPUT", "write result failed", err.Error())
			return 1
		}
	}
	if len(errs) > 0 {
		return 1
	}
	return 0
}

func runLexiconCommand(opts options, stdout io.Writer, logger *lineLogger) int {
	if opts.lexiconDB == "" {
		logger.Log("RISK", "CORPUS", "lexicon store not set", "use -lexicon-db or -workspace")
		return 2
	}
	if opts.exportLexicon {
		lex := corpus.Default()
		if err := db.SaveLexicon(opts.lexiconDB, lex); err != nil {
			logger.Log("RISK", "CORPUS", "lexicon export failed", err.Error())
			return 1
		}
		fmt.Fprintf(stdout, "exported lexicon %s (%d terms) to %s\n", lex.Version(), lex.Size(), opts.lexiconDB)
		return 0
	}
	versions, err := db.ListVersions(opts.lexiconDB)
	if err != nil {
		logger.Log("RISK", "CORPUS", "list lexicons failed", err.Error())
		return 1
	}
	for _, v := range versions {
		fmt.Fprintf(stdout, "%s\t%d terms\t%s\n", v.Version, v.Terms, v.CreatedAt.Format(time.RFC3339))
	}
	return 0
}

// loadLexicon prefers the store when one is configured and falls back to the
// embedded lexicon when a workspace store has not been populated yet.
func loadLexicon(opts options, logger *lineLogger) (corpus.Lexicon, error) {
	if opts.lexiconDB == "" {
		return corpus.Default(), nil
	}
	if _, err := os.Stat(opts.lexiconDB); os.IsNotExist(err) && opts.lexiconVersion == "" {
		logger.Log("INFO", "CORPUS", "lexicon store empty, using embedded lexicon", opts.lexiconDB)
		return corpus.Default(), nil
	}
	lex, err := db.LoadLexicon(opts.lexiconDB, opts.lexiconVersion)
	if errors.Is(err, db.ErrNoLexicon) && opts.lexiconVersion == "" {
		logger.Log("INFO", "CORPUS", "lexicon store empty, using embedded lexicon", opts.lexiconDB)
		return corpus.Default(), nil
	}
	if err != nil {
		return corpus.Lexicon{}, err
	}
	logger.Log("INFO", "CORPUS", "lexicon loaded from store", fmt.Sprintf("version=%s terms=%d", lex.Version(), lex.Size()))
	return lex, nil
}

// output is one JSON line: the document result plus optional sections.
type output struct {
	aidetect.Result
	Sections []aidetect.SectionResult `json:"sections,omitempty"`
}

// stdinTitle is the report title for standard input.
const stdinTitle = "stdin"

type document struct {
	index int
	id    string
	path  string
	raw   []byte
}

func (d document) parse() (*ingest.Parsed, error) {
	if d.path == "" {
		return ingest.ParseReader(bytes.NewReader(d.raw), stdinTitle)
	}
	return ingest.ParseFile(d.path)
}

func collectDocuments(files []string, stdin io.Reader) ([]document, error) {
	if len(files) == 0 {
		raw, err := io.ReadAll(io.LimitReader(stdin, ingest.MaxFileBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if strings.TrimSpace(string(raw)) == "" {
			return nil, fmt.Errorf("stdin: %w", ingest.ErrEmptyText)
		}
		return []document{{id: "stdin-" + uuid.NewString(), raw: raw}}, nil
	}
	docs := make([]document, 0, len(files))
	for i, f := range files {
		docs = append(docs, document{index: i, id: filepath.Base(f), path: f})
	}
	return docs, nil
}
