package utils

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// LogEntry is one structured record from the pipeline log file.
type LogEntry struct {
	Timestamp string `json:"time"`
	Level     string `json:"level"`
	Tool      string `json:"msg"`
	Program   string `json:"PROGRAM"`
	Target    string `json:"TARGET"`
	Status    string `json:"STATUS"`
	Cmd       string `json:"CMD"`
}

// InitLogging opens (or appends to) the pipeline log file and installs
// a default slog logger that writes JSON records to the file and
// human-readable text to stdout. The caller closes the returned file.
func InitLogging(logFilePath string) (*os.File, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	jsonHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo})
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogmulti.Fanout(jsonHandler, textHandler))
	slog.SetDefault(logger)

	return logFile, nil
}

// ParseLogFile reads a JSON-lines pipeline log into entries. A missing
// file is not an error; it means no prior run.
func ParseLogFile(logFilePath string) []LogEntry {
	var entries []LogEntry

	file, err := os.Open(logFilePath)
	if err != nil {
		return entries
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// StageHasCompleted reports whether the log records a COMPLETED status
// for the given program and target.
func StageHasCompleted(entries []LogEntry, program string, target string) bool {
	for _, entry := range entries {
		if entry.Program == program && entry.Target == target && entry.Status == "COMPLETED" {
			return true
		}
	}
	return false
}
