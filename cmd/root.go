package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"docprep/pkg/config"
	"docprep/pkg/extractor"
	"docprep/pkg/mirror"
	"docprep/pkg/report"
	"docprep/pkg/run"
	"docprep/pkg/smbclient"
	"docprep/pkg/source"
	"docprep/pkg/state"
	"docprep/pkg/utils"
)

var (
	// Output
	outputName string
	destDir    string
	noReport   bool
	jsonOutput string

	// Extraction options
	extractImages   bool
	keepEmptySheets bool

	// Run control
	resumeFile  string
	logFilePath string
	verbose     bool

	// SMB source
	smbHost  string
	smbShare string
	username string
	password string
	domain   string
	ntlmHash string
)

var rootCmd = &cobra.Command{
	Use:   "docprep [source-folder]",
	Short: "Extract text and media from documents into a mirrored output tree",
	Long: `DocPrep walks a folder of documents (.xlsx, .xls, .pdf, .docx, .pptx),
extracts plain text and embedded media from each file, and mirrors the
source directory structure into a new output directory.

The source may be a local folder or a path on an SMB share (--smb-host).
During a run, type 's' + Enter to skip the current file, 'q' + Enter or
Ctrl-C to cancel.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runExtraction(args[0])
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runExtraction(sourceRoot string) error {
	if logFilePath != "" {
		if err := utils.InitLogFile(logFilePath); err != nil {
			return fmt.Errorf("init log file: %w", err)
		}
		defer utils.CloseLogFile()
	}
	utils.SetVerbose(verbose)

	fsys, cleanup, err := buildSourceFS()
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	destRoot, err := resolveDestination(fsys, sourceRoot)
	if err != nil {
		return err
	}

	opts := extractor.Options{
		ExtractImages:   extractImages,
		SkipEmptySheets: !keepEmptySheets,
	}

	sink := &consoleSink{}
	session := run.NewSession(sink)
	session.FS = fsys

	if resumeFile != "" {
		mgr, err := state.NewManager(resumeFile)
		if err != nil {
			return fmt.Errorf("load resume state: %w", err)
		}
		if mgr.Count() > 0 {
			utils.Infof("Resume mode: %d files already completed", mgr.Count())
		}
		session.Resume = mgr
	}

	if err := session.Start(sourceRoot, destRoot, opts); err != nil {
		return err
	}

	watchSignals(session)
	go watchKeys(session)

	<-session.Done()

	summary := session.LastSummary()
	if summary == nil {
		return nil
	}
	if !noReport {
		if path, err := report.WriteSummary(destRoot, summary); err != nil {
			utils.Warnf("Failed to write report: %v", err)
		} else {
			utils.Infof("Report written to %s", path)
		}
	}
	if jsonOutput != "" {
		if err := report.WriteOutcomes(jsonOutput, summary); err != nil {
			utils.Warnf("Failed to write JSON outcomes: %v", err)
		}
	}
	if len(summary.Failed) > 0 || sink.fatal {
		os.Exit(1)
	}
	return nil
}

// buildSourceFS returns the local filesystem, or dials and mounts an SMB
// share when --smb-host is set.
func buildSourceFS() (source.FS, func(), error) {
	if smbHost == "" {
		return &source.LocalFS{}, nil, nil
	}
	if smbShare == "" {
		return nil, nil, fmt.Errorf("--smb-share is required with --smb-host")
	}

	sess, err := smbclient.Dial(smbHost, smbclient.Credentials{
		Username: username,
		Password: password,
		Domain:   domain,
		Hash:     ntlmHash,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", smbHost, err)
	}
	share, err := sess.Mount(smbShare)
	if err != nil {
		sess.Close()
		return nil, nil, fmt.Errorf("mount \\\\%s\\%s: %w", smbHost, smbShare, err)
	}
	utils.Infof("Scanning \\\\%s\\%s", smbHost, smbShare)
	return &source.SMBFS{Share: share}, func() { sess.Close() }, nil
}

// resolveDestination picks the output root: --dest verbatim, otherwise a
// validated sibling of the source folder named --output (default
// "<source>_extracted").
func resolveDestination(fsys source.FS, sourceRoot string) (string, error) {
	if destDir != "" {
		return destDir, nil
	}
	if _, remote := fsys.(*source.SMBFS); remote {
		return "", fmt.Errorf("--dest is required for SMB sources")
	}

	abs, err := filepath.Abs(sourceRoot)
	if err != nil {
		return "", err
	}
	name := outputName
	if name == "" {
		name = filepath.Base(abs) + config.DefaultOutputSuffix
	}
	dest, err := mirror.ResolveOutputRoot(abs, name)
	if err != nil {
		return "", err
	}
	return dest, nil
}

// watchSignals cancels the run on the first interrupt and force-quits on the
// second.
func watchSignals(session *run.Session) {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		utils.Warnf("Cancelling after the current file (Ctrl-C again to force quit)")
		session.Cancel()
		<-ch
		os.Exit(1)
	}()
}

// watchKeys relays stdin control keys: 's' skips the current file, 'q'
// cancels the run.
func watchKeys(session *run.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "s":
			utils.Infof("Skipping current file...")
			session.Skip()
		case "q":
			utils.Warnf("Cancelling...")
			session.Cancel()
		}
	}
}

// consoleSink renders run events on the terminal.
type consoleSink struct {
	total int
	fatal bool
}

func (c *consoleSink) OnProgress(current, total int) {
	c.total = total
	utils.Debugf("progress %d/%d", current, total)
}

func (c *consoleSink) OnCurrentFile(relPath string) {
	utils.Infof("Processing: %s", utils.Bold(relPath))
}

func (c *consoleSink) OnSubStep(message string) {
	utils.Debugf("  %s", message)
}

func (c *consoleSink) OnCompleted(summary *run.RunSummary) {
	utils.Successf("Extraction complete: %d processed, %d extracted, %d warnings, %d failed",
		summary.ProcessedCount, summary.ExtractedFileCount,
		len(summary.Warnings), len(summary.Failed))
}

func (c *consoleSink) OnCancelled() {
	utils.Warnf("Extraction cancelled")
}

func (c *consoleSink) OnFatalError(message string) {
	c.fatal = true
	utils.Errorf("Extraction aborted: %s", message)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		utils.Errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Output
	rootCmd.PersistentFlags().StringVarP(&outputName, "output", "o", "", "Output folder name (sibling of source, default <source>_extracted)")
	rootCmd.PersistentFlags().StringVar(&destDir, "dest", "", "Explicit output directory path (overrides --output)")
	rootCmd.PersistentFlags().BoolVar(&noReport, "no-report", false, "Skip writing EXTRACTION_REPORT.txt")
	rootCmd.PersistentFlags().StringVar(&jsonOutput, "json-output", "", "Write per-file outcomes as JSONL to this path")

	// Extraction options
	rootCmd.PersistentFlags().BoolVarP(&extractImages, "images", "i", false, "Extract embedded images from slide decks")
	rootCmd.PersistentFlags().BoolVar(&keepEmptySheets, "keep-empty-sheets", false, "Write CSVs for empty spreadsheet sheets")

	// Run control
	rootCmd.PersistentFlags().StringVar(&resumeFile, "resume", "", "Resume state file (JSON); completed files are skipped on re-run")
	rootCmd.PersistentFlags().StringVar(&logFilePath, "log-file", "", "Mirror log output to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug messages and substep progress")

	// SMB source
	rootCmd.PersistentFlags().StringVar(&smbHost, "smb-host", "", "Treat the source folder as a path on this SMB host")
	rootCmd.PersistentFlags().StringVar(&smbShare, "smb-share", "", "SMB share name to mount")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "Username for SMB authentication")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "Password for SMB authentication")
	rootCmd.PersistentFlags().StringVarP(&domain, "domain", "d", "", "Domain for SMB authentication")
	rootCmd.PersistentFlags().StringVar(&ntlmHash, "hash", "", "NTLM hash for SMB authentication")
}
