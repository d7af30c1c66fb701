package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Artifact kinds recorded in the log.
const (
	KindCSV     = "csv"
	KindChart   = "chart"
	KindReport  = "report"
	KindMetrics = "metrics"
)

const (
	defaultMaxSizeMB  = 5
	defaultMaxBackups = 10
	defaultMaxAgeDays = 30
)

// ArtifactEvent is one line of the artifact log: a single file written (or
// attempted) during a run.
type ArtifactEvent struct {
	Timestamp  string `json:"timestamp"`
	RunID      string `json:"run_id"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	Bytes      int64  `json:"bytes"`
	Items      int    `json:"items,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Failed reports whether the write behind the event failed.
func (e ArtifactEvent) Failed() bool {
	return e.Error != ""
}

type ArtifactLogger struct {
	out   *lumberjack.Logger
	runID string
	mu    sync.Mutex
}

// New opens the artifact log at path. Every logger gets a fresh run ID that
// is stamped on each event it writes.
func New(path string) (*ArtifactLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}

	return &ArtifactLogger{out: out, runID: uuid.NewString()}, nil
}

func (l *ArtifactLogger) RunID() string {
	return l.runID
}

func (l *ArtifactLogger) Log(event ArtifactEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if event.RunID == "" {
		event.RunID = l.runID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = l.out.Write(data)
	return err
}

func (l *ArtifactLogger) Close() error {
	if l.out != nil {
		return l.out.Close()
	}
	return nil
}

// ReadEvents returns the events in the current (unrotated) log file in
// write order. A missing file yields no events; malformed lines are skipped.
func ReadEvents(path string) ([]ArtifactEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []ArtifactEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event ArtifactEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}
