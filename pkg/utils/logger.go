package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	infoC    = color.New(color.FgCyan).PrintfFunc()
	successC = color.New(color.FgGreen).PrintfFunc()
	warnC    = color.New(color.FgYellow).PrintfFunc()
	errorC   = color.New(color.FgRed).PrintfFunc()
	debugC   = color.New(color.FgHiBlack).PrintfFunc()

	// Bold wraps a string in bold escapes for inline emphasis.
	Bold = color.New(color.Bold).SprintFunc()

	logFile *os.File
	verbose bool
)

// InitLogFile mirrors all log output into the given file (append mode).
func InitLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f
	return nil
}

// CloseLogFile closes the log file if one was opened.
func CloseLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetVerbose enables debug output on the console. Debug lines always go to
// the log file when one is open.
func SetVerbose(v bool) {
	verbose = v
}

func logToFile(level, msg string) {
	if logFile != nil {
		ts := time.Now().Format("2006/01/02 15:04:05")
		fmt.Fprintf(logFile, "%s [%s] %s\n", ts, level, strings.TrimSpace(msg))
	}
}

func Infof(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	logToFile("INFO", msg)
	infoC("[*] " + msg + "\n")
}

func Successf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	logToFile("OK", msg)
	successC("[+] " + msg + "\n")
}

func Warnf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	logToFile("WARN", msg)
	warnC("[!] " + msg + "\n")
}

func Errorf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	logToFile("ERROR", msg)
	errorC("[-] " + msg + "\n")
}

func Debugf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	logToFile("DEBUG", msg)
	if verbose {
		debugC("[DEBUG] " + msg + "\n")
	}
}
