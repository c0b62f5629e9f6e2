package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
)

// WriteLog writes a worker session log to disk with a YAML header followed by
// the captured output lines.
func WriteLog(pid int, status string, startedAt time.Time, lines []string) (*models.LogEntry, error) {
	if err := EnsureGlobalLogsDir(); err != nil {
		return nil, fmt.Errorf("failed to ensure logs dir: %w", err)
	}

	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, err
	}

	endedAt := time.Now().UTC()
	timestamp := startedAt.Format("2006-01-02T15-04-05")
	logID := fmt.Sprintf("worker-%s-%d", timestamp, pid)

	entry := &models.LogEntry{
		LogID:     logID,
		PID:       pid,
		StartedAt: startedAt.UTC().Format(time.RFC3339),
		EndedAt:   endedAt.Format(time.RFC3339),
		Status:    status,
	}

	filePath := filepath.Join(logsDir, logID+".log")
	f, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "pid: %d\n", pid)
	fmt.Fprintf(w, "started_at: %s\n", entry.StartedAt)
	fmt.Fprintf(w, "ended_at: %s\n", entry.EndedAt)
	fmt.Fprintf(w, "status: %s\n", status)
	fmt.Fprintln(w, "---")

	for _, line := range lines {
		fmt.Fprintln(w, line)
	}

	return entry, w.Flush()
}

// ListLogs reads all worker session log files and returns their metadata (newest first).
func ListLogs() ([]*models.LogEntry, error) {
	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(logsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []*models.LogEntry
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}

		entry, err := parseLogHeader(filepath.Join(logsDir, e.Name()))
		if err != nil {
			continue
		}
		logs = append(logs, entry)
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].StartedAt > logs[j].StartedAt
	})

	return logs, nil
}

// ReadLog reads a specific session log and returns metadata + content.
func ReadLog(logID string) (*models.LogEntry, string, error) {
	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, "", err
	}

	filePath := filepath.Join(logsDir, logID+".log")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("log not found: %w", err)
	}

	entry, body := parseLogContent(string(data))
	if entry == nil {
		return nil, "", fmt.Errorf("invalid log format")
	}

	return entry, body, nil
}

// PruneLogs deletes the oldest session logs beyond max. Pass max <= 0 to keep all.
func PruneLogs(max int) error {
	if max <= 0 {
		return nil
	}

	logs, err := ListLogs()
	if err != nil || len(logs) <= max {
		return err
	}

	logsDir, err := GlobalLogsDir()
	if err != nil {
		return err
	}

	for _, entry := range logs[max:] {
		_ = os.Remove(filepath.Join(logsDir, entry.LogID+".log"))
	}
	return nil
}

func parseLogHeader(path string) (*models.LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	entry := &models.LogEntry{}
	inHeader := false

	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			if !inHeader {
				inHeader = true
				continue
			}
			break
		}
		if inHeader {
			parseLogHeaderLine(entry, line)
		}
	}

	if entry.LogID == "" {
		entry.LogID = strings.TrimSuffix(filepath.Base(path), ".log")
	}

	return entry, nil
}

func parseLogContent(content string) (*models.LogEntry, string) {
	lines := strings.Split(content, "\n")
	entry := &models.LogEntry{}
	headerEnd := -1
	inHeader := false

	for i, line := range lines {
		if line == "---" {
			if !inHeader {
				inHeader = true
				continue
			}
			headerEnd = i
			break
		}
		if inHeader {
			parseLogHeaderLine(entry, line)
		}
	}

	if headerEnd < 0 {
		return nil, ""
	}

	body := strings.Join(lines[headerEnd+1:], "\n")
	return entry, body
}

func parseLogHeaderLine(entry *models.LogEntry, line string) {
	parts := strings.SplitN(line, ": ", 2)
	if len(parts) != 2 {
		return
	}
	key := strings.TrimSpace(parts[0])
	val := strings.TrimSpace(parts[1])

	switch key {
	case "pid":
		fmt.Sscanf(val, "%d", &entry.PID)
	case "started_at":
		entry.StartedAt = val
	case "ended_at":
		entry.EndedAt = val
	case "status":
		entry.Status = val
	}
}
