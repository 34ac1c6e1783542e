package sampledata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
)

// File names written by Write.
const (
	CurrentFile = "current.json"
	HistoryFile = "history.json"

	maxErrorBody = 4096
)

// Write stores both workbooks as JSON files in dir and returns their paths.
func Write(dir string, current, history *workbook.Workbook) (currentPath, historyPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}
	currentPath = filepath.Join(dir, CurrentFile)
	historyPath = filepath.Join(dir, HistoryFile)
	if err := writeJSON(currentPath, current); err != nil {
		return "", "", err
	}
	if err := writeJSON(historyPath, history); err != nil {
		return "", "", err
	}
	return currentPath, historyPath, nil
}

func writeJSON(path string, wb *workbook.Workbook) error {
	b, err := json.MarshalIndent(wb, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Upload replaces one workbook on a running service via PUT /workbooks/{kind}.
func Upload(ctx context.Context, client *http.Client, baseURL, kind string, wb *workbook.Workbook) error {
	if client == nil {
		client = http.DefaultClient
	}
	body, err := json.Marshal(wb)
	if err != nil {
		return fmt.Errorf("encode %s workbook: %w", kind, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, baseURL+"/workbooks/"+kind, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s: status %d: %s", ErrUpload, kind, resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
