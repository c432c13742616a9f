package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ByRock010/CMPE321-Project4/pkg/database"
	"github.com/ByRock010/CMPE321-Project4/pkg/heap"
	"github.com/ByRock010/CMPE321-Project4/pkg/oplog"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

// MetricsCollector exposes archive health in Prometheus text format.
// Storage gauges come straight from the data files on every scrape, and a
// background probe tracks how long a full storage scan takes. Command
// totals are read from the operation log, so they cover every session that
// has written to the archive, not just this process.
type MetricsCollector struct {
	database       *database.Database
	archiveLog     primitives.Filepath
	probeCount     int64
	probeDurations []time.Duration
	errorCount     int64
	lastProbeTime  time.Time
	mu             sync.RWMutex
}

func NewMetricsCollector(db *database.Database, archiveLog primitives.Filepath) *MetricsCollector {
	return &MetricsCollector{
		database:       db,
		archiveLog:     archiveLog,
		probeDurations: make([]time.Duration, 0),
		lastProbeTime:  time.Now(),
	}
}

func (mc *MetricsCollector) RecordProbe(duration time.Duration, err error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.probeCount++
	mc.probeDurations = append(mc.probeDurations, duration)
	mc.lastProbeTime = time.Now()

	// Keep only last 1000 durations to avoid memory issues
	if len(mc.probeDurations) > 1000 {
		mc.probeDurations = mc.probeDurations[len(mc.probeDurations)-1000:]
	}

	if err != nil {
		mc.errorCount++
	}
}

func (mc *MetricsCollector) GetMetrics() string {
	mc.mu.RLock()
	probeCount := mc.probeCount
	errorCount := mc.errorCount
	lastProbe := mc.lastProbeTime

	var totalDuration time.Duration
	for _, d := range mc.probeDurations {
		totalDuration += d
	}
	avgDuration := float64(0)
	if len(mc.probeDurations) > 0 {
		avgDuration = float64(totalDuration.Microseconds()) / float64(len(mc.probeDurations))
	}
	mc.mu.RUnlock()

	var b strings.Builder

	fmt.Fprintf(&b, `# HELP archive_probe_total Total number of storage scan probes
# TYPE archive_probe_total counter
archive_probe_total %d

# HELP archive_probe_errors_total Total number of failed probes
# TYPE archive_probe_errors_total counter
archive_probe_errors_total %d

# HELP archive_probe_duration_microseconds Average probe duration in microseconds
# TYPE archive_probe_duration_microseconds gauge
archive_probe_duration_microseconds %.2f

# HELP archive_up Archive up status (1 = up, 0 = down)
# TYPE archive_up gauge
archive_up 1

# HELP archive_last_probe_timestamp_seconds Unix timestamp of last probe
# TYPE archive_last_probe_timestamp_seconds gauge
archive_last_probe_timestamp_seconds %d
`,
		probeCount,
		errorCount,
		avgDuration,
		lastProbe.Unix(),
	)

	info := mc.database.Info()
	fmt.Fprintf(&b, `
# HELP archive_type_count Number of record types in the catalog
# TYPE archive_type_count gauge
archive_type_count %d
`, info.TypeCount)

	// The operation log is reread on every scrape. Scrapes are infrequent
	// and the log is line-oriented, so this stays cheap enough.
	if entries, err := oplog.ReadAll(mc.archiveLog); err == nil {
		failed := 0
		for _, entry := range entries {
			if !entry.Succeeded() {
				failed++
			}
		}
		fmt.Fprintf(&b, `
# HELP archive_logged_ops_total Commands recorded in the operation log
# TYPE archive_logged_ops_total counter
archive_logged_ops_total %d

# HELP archive_logged_failures_total Failed commands recorded in the operation log
# TYPE archive_logged_failures_total counter
archive_logged_failures_total %d
`, len(entries), failed)
	}

	stats, err := mc.database.StorageStats()
	if err != nil {
		return b.String()
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	// Samples of a family must stay contiguous under their TYPE line.
	families := []struct {
		name  string
		help  string
		value func(s heap.Stats) uint64
	}{
		{"archive_type_pages", "Pages in the type's data file", func(s heap.Stats) uint64 { return s.Pages }},
		{"archive_type_live_records", "Live records in the type's data file", func(s heap.Stats) uint64 { return s.LiveSlots }},
		{"archive_type_deleted_records", "Deleted records still occupying slots", func(s heap.Stats) uint64 { return s.DeletedSlots }},
		{"archive_type_free_slots", "Unallocated slots in the type's data file", func(s heap.Stats) uint64 { return s.FreeSlots }},
	}

	for _, family := range families {
		fmt.Fprintf(&b, "\n# HELP %s %s\n# TYPE %s gauge\n", family.name, family.help, family.name)
		for _, name := range names {
			fmt.Fprintf(&b, "%s{type=%q} %d\n", family.name, name, family.value(stats[name]))
		}
	}

	return b.String()
}

// StartProbes scans storage on a ticker so the exporter notices when the
// data directory goes bad between scrapes. The scan bypasses the command
// path on purpose: probes must not show up in log.csv or output.txt.
func (mc *MetricsCollector) StartProbes() {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			start := time.Now()
			_, err := mc.database.StorageStats()
			duration := time.Since(start)
			mc.RecordProbe(duration, err)
		}
	}()
}

func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "/app/data"
	}

	scratchDir := filepath.Clean(os.Getenv("SCRATCH_DIR"))
	if scratchDir == "." {
		scratchDir = "/app/exporter"
	}

	// The log the shell writes to; totals are scraped from here.
	archiveLog := os.Getenv("ARCHIVE_LOG")
	if archiveLog == "" {
		archiveLog = filepath.Join(dataDir, "log.csv")
	}

	_ = os.MkdirAll(scratchDir, 0o750) // #nosec G703

	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		metricsPort = "8080"
	}

	log.Printf("Starting Dune Archive Metrics Exporter...")
	log.Printf("Data Directory: %s", dataDir)   // #nosec G706
	log.Printf("Archive Log: %s", archiveLog)   // #nosec G706
	log.Printf("Metrics Port: %s", metricsPort) // #nosec G706

	// The session gets its own log and output files under the scratch
	// directory. Pointing it at the archive's defaults would truncate the
	// shell's output.txt on startup.
	db, err := database.Open(database.Config{
		DataDir:    primitives.Filepath(dataDir),
		LogPath:    primitives.Filepath(filepath.Join(scratchDir, "exporter_log.csv")),
		OutputPath: primitives.Filepath(filepath.Join(scratchDir, "exporter_output.txt")),
	})
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer db.Close()

	collector := NewMetricsCollector(db, primitives.Filepath(archiveLog))

	collector.StartProbes()

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprint(w, collector.GetMetrics())
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	srv := &http.Server{
		Addr:         ":" + metricsPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Metrics available at http://localhost:%s/metrics", metricsPort) // #nosec G706
	log.Fatal(srv.ListenAndServe())
}
