package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/fileset"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/workflow"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Interactive session: select documents, switch modes, submit and export",
	Long: `Read one intent per line from stdin and apply it to a single workflow session.
History is kept for the life of the session. Type "help" for the command list.`,
	RunE: runSession,
}

var sessionOut string

func init() {
	sessionCmd.Flags().StringVarP(&sessionOut, "out", "o", "", "Directory for downloaded reports (default: download_dir from config)")
	rootCmd.AddCommand(sessionCmd)
}

const sessionHelp = `Commands:
  mode                          switch between single and comparison mode
  resume <path>                 select the resume (single mode)
  jd <path>                     select the job description
  add <path>...                 add resumes (comparison mode)
  remove <n>                    remove the n-th resume (1-based)
  drop resume|jd <path>         drop a file on a target
  submit                        analyze or compare
  report                        download the report for the last analysis
  history [id]                  show recent analyses, or the service's record for one
  status                        show the current selection and status
  reset                         clear selections and results
  help                          show this help
  quit                          leave the session`

func runSession(cmd *cobra.Command, _ []string) error {
	client := newScoringClient()
	s := newSession(newController(client, sessionOut), client, cmd.OutOrStdout())
	return s.run(cmd.Context(), cmd.InOrStdin())
}

// sessionHistory looks up the analyses the Scoring Service stored for a session id.
type sessionHistory interface {
	SessionHistory(ctx context.Context, sessionID string) ([]types.SessionHistoryItem, error)
}

// session applies line commands to a controller.
type session struct {
	controller *workflow.Controller
	history    sessionHistory
	out        io.Writer
	printer    *observability.Printer
}

func newSession(controller *workflow.Controller, history sessionHistory, out io.Writer) *session {
	return &session{controller: controller, history: history, out: out, printer: observability.NewPrinter(out)}
}

// errQuit ends the session loop.
var errQuit = errors.New("quit")

func (s *session) run(ctx context.Context, in io.Reader) error {
	s.printf("Resume Matcher session (%s mode). Type \"help\" for commands.\n", s.controller.State().Mode)

	scanner := bufio.NewScanner(in)
	for {
		s.printf("%s> ", s.controller.State().Mode)
		if !scanner.Scan() {
			s.printf("\n")
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		err := s.execute(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.printf("error: %v\n", err)
		}
	}
}

// execute runs one command line. Failures that the workflow already reports
// through its status are printed, not returned.
func (s *session) execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "help", "?":
		s.printf("%s\n", sessionHelp)
	case "quit", "exit":
		return errQuit
	case "mode":
		st := s.controller.Toggle()
		s.printf("Mode: %s\n", st.Mode)
	case "reset":
		s.controller.ResetAll()
		s.printf("Cleared.\n")
	case "resume", "jd":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <path>", name)
		}
		file, err := fileset.LoadFile(args[0])
		if err != nil {
			return err
		}
		if name == "resume" {
			s.controller.SelectResume(file)
		} else {
			s.controller.SelectJobDescription(file)
		}
		s.describe(file)
	case "add":
		if len(args) == 0 {
			return errors.New("usage: add <path> [path ...]")
		}
		files, err := fileset.LoadFiles(ctx, args)
		if err != nil {
			return err
		}
		st := s.controller.AddResumes(files...)
		s.printf("%d resume(s) selected\n", st.Files.ResumeCount())
	case "remove":
		if len(args) != 1 {
			return errors.New("usage: remove <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid resume number %q", args[0])
		}
		st := s.controller.RemoveResume(n - 1)
		s.printf("%d resume(s) selected\n", st.Files.ResumeCount())
	case "drop":
		if len(args) != 2 {
			return errors.New("usage: drop resume|jd <path>")
		}
		target, err := types.ParseDropTarget(args[0])
		if err != nil {
			return err
		}
		file, err := fileset.LoadFile(args[1])
		if err != nil {
			return err
		}
		s.controller.AcceptDrop(target, file)
		s.describe(file)
	case "submit", "analyze", "compare":
		s.submit(ctx)
	case "report":
		saved, err := s.controller.ExportReport(ctx)
		s.printer.PrintStatus(s.controller.State().Status)
		if err == nil {
			s.printf("Saved %s\n", saved.Path)
		}
	case "history":
		switch len(args) {
		case 0:
			s.printer.PrintHistory(s.controller.State().History.Entries())
		case 1:
			return s.lookup(ctx, args[0])
		default:
			return errors.New("usage: history [id]")
		}
	case "status":
		s.status()
	default:
		return fmt.Errorf("unknown command %q (type \"help\")", name)
	}
	return nil
}

func (s *session) submit(ctx context.Context) {
	err := s.controller.Submit(ctx)
	st := s.controller.State()
	if errors.Is(err, workflow.ErrBusy) {
		s.printf("A request is already in progress.\n")
		return
	}
	if err == nil {
		if st.Mode == types.ModeComparison {
			s.printer.PrintComparison(st.Comparison)
		} else {
			s.printer.PrintAnalysis(st.Analysis)
		}
	}
	s.printer.PrintStatus(st.Status)
}

func (s *session) status() {
	st := s.controller.State()
	s.printf("Mode: %s\n", st.Mode)
	if st.Mode == types.ModeSingle {
		if f, ok := st.Files.Resume(); ok {
			s.printf("Resume: %s\n", f.Name())
		} else {
			s.printf("Resume: (none)\n")
		}
	}
	if f, ok := st.Files.JobDescription(); ok {
		s.printf("Job description: %s\n", f.Name())
	} else {
		s.printf("Job description: (none)\n")
	}
	if st.Mode == types.ModeComparison {
		for i, f := range st.Files.Resumes() {
			s.printf("  [%d] %s\n", i+1, f.Name())
		}
	}
	if st.Analysis != nil {
		s.printf("Last score: %s%%\n", types.FormatScore(st.Analysis.MatchScore))
	}
	s.printer.PrintStatus(st.Status)
}

// lookup resolves a local history entry and prints the service's record of its session.
func (s *session) lookup(ctx context.Context, id string) error {
	entry, ok := s.controller.State().History.Find(id)
	if !ok {
		return fmt.Errorf("no history entry %q", id)
	}
	if s.history == nil {
		return errors.New("session history lookup is not configured")
	}
	items, err := s.history.SessionHistory(ctx, entry.SessionID)
	if err != nil {
		return fmt.Errorf("failed to load session history: %w", err)
	}
	s.printer.PrintSessionHistory(entry.SessionID, items)
	return nil
}

func (s *session) describe(file types.FileRef) {
	s.printf("Selected %s (%d bytes)\n", file.Name(), file.Size())
	if !file.IsDocument() {
		s.printf("warning: %s does not look like a PDF or DOCX document\n", file.Name())
		return
	}
	if ext := strings.ToLower(filepath.Ext(file.Name())); !slices.Contains(types.AcceptedExtensions, ext) {
		s.printf("warning: %s is not named %s\n", file.Name(), strings.Join(types.AcceptedExtensions, " or "))
	}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
