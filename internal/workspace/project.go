package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prosescan/internal/aidetect"
)

// Report is the stored form of one analysed document.
type Report struct {
	Title          string          `json:"title"`
	SourcePath     string          `json:"source_path,omitempty"`
	LexiconVersion string          `json:"lexicon_version"`
	AnalyzedAt     time.Time       `json:"analyzed_at"`
	Result         aidetect.Result `json:"result"`
}

// SaveReport writes report under the reports directory and returns the path
// written. A later report for the same document replaces the earlier one.
func SaveReport(paths Paths, report Report) (string, error) {
	if err := os.MkdirAll(paths.Reports, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(paths.Reports, ReportID(report)+".json")
	tmp, err := os.CreateTemp(paths.Reports, ".report-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("replace report: %w", err)
	}
	return path, nil
}

func LoadReport(path string) (Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}

// ReportKey names the document a report belongs to: its cleaned absolute
// source path, or its normalised title when no file backs it.
func ReportKey(report Report) string {
	if report.SourcePath == "" {
		return "title:" + strings.TrimSpace(strings.ToLower(report.Title))
	}
	path := report.SourcePath
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "path:" + filepath.Clean(path)
}

func ReportID(report Report) string {
	sum := sha256.Sum256([]byte(ReportKey(report)))
	return hex.EncodeToString(sum[:])[:12]
}
