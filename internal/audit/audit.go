// Package audit writes a tamper-evident record of every enforcement
// decision. Entries are appended as JSONL with SHA-256 hash chaining so an
// operator can prove after the fact which tool calls were admitted, denied,
// or throttled, and that no line was edited or removed.
package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kestrelsec/xward/internal/gate"
)

// GenesisHash is the prev_hash for the first entry in a new decision log.
const GenesisHash = "sha256:0000000000000000000000000000000000000000000000000000000000000000"

// Entry is one line in the hash-chained JSONL decision log.
// All fields are scalars (no map[string]any) to guarantee deterministic
// json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp  string  `json:"ts"`
	TraceID    string  `json:"trace_id"`
	Tool       string  `json:"tool"`
	Group      string  `json:"group"`
	Profile    string  `json:"profile"`
	Decision   string  `json:"decision"`
	Reason     string  `json:"reason,omitempty"`
	RetryAfter float64 `json:"retry_after_seconds,omitempty"`
	PrevHash   string  `json:"prev_hash"`
}

// FromResult flattens an enforcement decision into a log entry.
func FromResult(traceID string, res gate.Result) Entry {
	e := Entry{
		TraceID:  traceID,
		Tool:     res.Tool,
		Group:    string(res.Descriptor.Group),
		Profile:  string(res.Profile),
		Decision: string(res.Verdict),
	}
	if res.Err != nil {
		e.Reason = string(res.Err.Type)
	}
	if res.RetryAfter > 0 {
		e.RetryAfter = res.RetryAfter.Seconds()
	}
	return e
}

// Log is an append-only JSONL decision log with SHA-256 hash chaining.
// Each entry's prev_hash is the hash of the previous entry's JSON line.
type Log struct {
	path     string
	file     *os.File
	prevHash string
	mu       sync.Mutex
}

// Open opens (or creates) a decision log file for appending.
// If the file already exists, it reads the last line to recover the chain tail.
func Open(path string) (*Log, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("audit: create directory: %w", err)
	}

	prevHash := GenesisHash

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("audit: read existing log: %w", err)
		}
		scanner := bufio.NewScanner(f)
		var lastLine []byte
		for scanner.Scan() {
			lastLine = make([]byte, len(scanner.Bytes()))
			copy(lastLine, scanner.Bytes())
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("audit: scan existing log: %w", err)
		}
		if len(lastLine) > 0 {
			prevHash = HashLine(lastLine)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("audit: open file: %w", err)
	}

	return &Log{
		path:     path,
		file:     file,
		prevHash: prevHash,
	}, nil
}

// Record appends an Entry to the log with hash chaining. It sets the entry's
// PrevHash and Timestamp (if empty), writes the line, and syncs to disk.
func (l *Log) Record(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	}
	entry.PrevHash = l.prevHash

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("audit: marshal entry: %w", err)
	}

	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("audit: write entry: %w", err)
	}

	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("audit: sync: %w", err)
	}

	l.prevHash = HashLine(line)
	return nil
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// HashLine returns "sha256:<hex>" of the given bytes.
func HashLine(line []byte) string {
	h := sha256.Sum256(line)
	return "sha256:" + hex.EncodeToString(h[:])
}
