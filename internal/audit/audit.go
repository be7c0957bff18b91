package audit

import (
	"encoding/json"
	"os"
	"time"
)

// Entry represents a single audit log entry. Values are never recorded,
// only key names.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	RunID     string `json:"run_id"`
	Operation string `json:"op"`

	Source              string   `json:"source,omitempty"`
	Name                string   `json:"name,omitempty"`
	Namespace           string   `json:"namespace,omitempty"`
	ControllerName      string   `json:"controller_name,omitempty"`
	ControllerNamespace string   `json:"controller_namespace,omitempty"`
	Scope               string   `json:"scope,omitempty"`
	Keys                []string `json:"keys,omitempty"`
	OutputFiles         []string `json:"output_files,omitempty"`
}

// Log appends an entry to the JSON Lines file at path.
// An empty path disables logging. Failures are returned but callers are
// expected to treat them as warnings: a sealed secret is still valid when
// the audit trail could not be written.
func Log(path string, entry Entry) error {
	if path == "" {
		return nil
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// #nosec G306 -- the audit log holds key names only and should be readable by the team.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
