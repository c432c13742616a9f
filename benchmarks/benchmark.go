package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ByRock010/CMPE321-Project4/pkg/database"
	"github.com/ByRock010/CMPE321-Project4/pkg/logging"
	"github.com/ByRock010/CMPE321-Project4/pkg/primitives"
)

// BenchmarkResult captures detailed performance metrics for a single benchmark test.
// It includes timing statistics, throughput metrics, and success/failure counts.
//
// Timings cover the full command path: parse, file scan, and the operation
// log append. That is the cost a caller of the archive actually pays.
type BenchmarkResult struct {
	CommandType    string        `json:"command_type"`       // Descriptive name of the benchmark test
	Command        string        `json:"command"`            // The actual command being benchmarked
	Iterations     int           `json:"iterations"`         // Total number of times the command was executed
	TotalDuration  time.Duration `json:"total_duration_ns"`  // Total time taken for all iterations
	AvgDuration    time.Duration `json:"avg_duration_ns"`    // Average time per command execution
	MinDuration    time.Duration `json:"min_duration_ns"`    // Fastest command execution time
	MaxDuration    time.Duration `json:"max_duration_ns"`    // Slowest command execution time
	MedianDuration time.Duration `json:"median_duration_ns"` // Median command execution time
	P95Duration    time.Duration `json:"p95_duration_ns"`    // 95th percentile execution time
	P99Duration    time.Duration `json:"p99_duration_ns"`    // 99th percentile execution time
	OpsPerSecond   float64       `json:"ops_per_second"`     // Throughput metric
	ConcurrentOps  int           `json:"concurrent_ops"`     // Number of concurrent goroutines
	SuccessCount   int           `json:"success_count"`      // Number of successful executions
	FailureCount   int           `json:"failure_count"`      // Number of failed executions
	FailureSamples []string      `json:"failure_samples"`    // Sample failure messages for debugging
	Timestamp      time.Time     `json:"timestamp"`          // When this benchmark was executed
}

// BenchmarkReport aggregates results from all benchmark tests into a single report.
// It includes metadata about the test environment and timing information.
type BenchmarkReport struct {
	StartTime     time.Time         `json:"start_time"`     // When the benchmark suite started
	EndTime       time.Time         `json:"end_time"`       // When the benchmark suite completed
	TotalDuration time.Duration     `json:"total_duration"` // Total time for entire benchmark suite
	Results       []BenchmarkResult `json:"results"`        // Individual benchmark test results
	DataDir       string            `json:"data_dir"`       // Directory where the archive files are stored
}

// main orchestrates the entire benchmark suite execution.
// It reads configuration from environment variables, opens the archive,
// runs all benchmarks, and generates both JSON and HTML reports.
//
// Environment variables:
//   - BENCHMARK_OUTPUT: Directory for output reports (default: ./benchmark-results)
//   - BENCHMARK_ITERATIONS: Number of iterations per benchmark (default: 1000)
//   - BENCHMARK_CONCURRENT_OPS: Number of concurrent commands (default: 10)
//   - DATA_DIR: Data directory path (default: /app/benchmark_data)
//   - LOG_DIR: Directory for log.csv and output.txt (default: /app/benchmark_logs)
func main() {
	outputDir := filepath.Clean(os.Getenv("BENCHMARK_OUTPUT"))
	if outputDir == "." {
		outputDir = "./benchmark-results"
	}

	iterations := 1000
	if iter := os.Getenv("BENCHMARK_ITERATIONS"); iter != "" {
		_, _ = fmt.Sscanf(iter, "%d", &iterations)
	}
	if iterations < 1 {
		iterations = 1
	}

	concurrentOps := 10
	if conc := os.Getenv("BENCHMARK_CONCURRENT_OPS"); conc != "" {
		_, _ = fmt.Sscanf(conc, "%d", &concurrentOps)
	}

	dataDir := filepath.Clean(os.Getenv("DATA_DIR"))
	if dataDir == "." {
		dataDir = "/app/benchmark_data"
	}

	logDir := filepath.Clean(os.Getenv("LOG_DIR"))
	if logDir == "." {
		logDir = "/app/benchmark_logs"
	}

	_ = os.MkdirAll(outputDir, 0o750) // #nosec G703
	_ = os.MkdirAll(logDir, 0o750)    // #nosec G703

	// Diagnostics go to a file so stdout stays readable.
	_ = logging.Init(logging.Config{
		Level:      logging.LevelWarn,
		OutputPath: filepath.Join(logDir, "benchmark.log"),
		Format:     "text",
	})
	defer logging.Close()

	log.Printf("Starting benchmark suite...")
	log.Printf("Data Directory: %s", dataDir) // #nosec G706
	log.Printf("Iterations: %d, Concurrent Ops: %d", iterations, concurrentOps)

	db, err := database.Open(database.Config{
		DataDir:    primitives.Filepath(dataDir),
		LogPath:    primitives.Filepath(filepath.Join(logDir, "log.csv")),
		OutputPath: primitives.Filepath(filepath.Join(logDir, "output.txt")),
	})
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer db.Close()

	if err := setupBenchmarkData(db); err != nil {
		log.Fatalf("Failed to setup benchmark data: %v", err)
	}

	report := BenchmarkReport{
		StartTime: time.Now(),
		DataDir:   dataDir,
		Results:   []BenchmarkResult{},
	}

	benchmarks := []struct {
		name    string
		command string
		mutates bool
	}{
		// The create and delete tests pair up: each create adds a copy of
		// lot 99999 and each delete consumes one, so both succeed for the
		// full run. Deleted slots are not reused, so creates land in fresh
		// slots every time.
		{"CREATE RECORD", "create record spice_lot 99999 Arrakis 10", true},
		{"DELETE RECORD", "delete record spice_lot 99999", true},
		{"SEARCH (front of file)", "search record spice_lot 1", false},
		{"SEARCH (end of file)", "search record spice_lot 1000", false},
		{"SEARCH (str key)", "search record harvester Harv_250", false},
	}

	for _, bench := range benchmarks {
		log.Printf("%s", "\n"+strings.Repeat("=", 80))
		log.Printf("TEST: %s", bench.name)
		log.Printf("%s", strings.Repeat("=", 80))
		log.Printf("Command: %s", bench.command)
		log.Printf("")

		log.Printf("→ Running sequential test (%d iterations)...", iterations)
		seqResult := runBenchmark(db, bench.name, bench.command, iterations, 1)
		report.Results = append(report.Results, seqResult)
		printBenchmarkResult(seqResult)

		// Mutating commands stay sequential; the create/delete pairing
		// depends on their order.
		if !bench.mutates {
			log.Printf("")
			log.Printf("→ Running concurrent test (%d parallel commands, %d iterations)...", concurrentOps, iterations)
			concName := bench.name + " (Concurrent)"
			concResult := runBenchmark(db, concName, bench.command, iterations, concurrentOps)
			report.Results = append(report.Results, concResult)
			printBenchmarkResult(concResult)
		}
	}

	report.EndTime = time.Now()
	report.TotalDuration = report.EndTime.Sub(report.StartTime)

	// Save report
	timestamp := time.Now().Format("20060102_150405")
	jsonFile := fmt.Sprintf("%s/benchmark_report_%s.json", outputDir, timestamp)
	htmlFile := fmt.Sprintf("%s/benchmark_report_%s.html", outputDir, timestamp)

	log.Printf("%s", "\n"+strings.Repeat("=", 80))
	log.Printf("BENCHMARK SUITE COMPLETE")
	log.Printf("%s", strings.Repeat("=", 80))
	log.Printf("")
	log.Printf("  Summary:")
	log.Printf("    Total Duration:     %s", formatDuration(report.TotalDuration))
	log.Printf("    Tests Run:          %d", len(report.Results))
	log.Printf("    Data Directory:     %s", dataDir) // #nosec G706
	log.Printf("")
	log.Printf("  Saving reports...")

	saveJSONReport(report, jsonFile)
	saveHTMLReport(report, htmlFile)

	log.Printf("")
	log.Printf("  ✓ Reports saved to: %s", outputDir) // #nosec G706
	log.Printf("")
	log.Printf("%s", strings.Repeat("=", 80))
}

// setupBenchmarkData prepares the archive with sample data for benchmarking.
// It creates the spice_lot and harvester types and seeds 1000 lots and 500
// harvesters if they are not already present.
//
// Parameters:
//   - db: The archive session to populate with test data
//
// Returns:
//   - error: Any error encountered during setup, or nil on success
func setupBenchmarkData(db *database.Database) error {
	log.Println("Setting up benchmark data...")

	log.Println("  Creating spice_lot type...")
	if result := db.Execute("create type spice_lot 3 1 lot int origin str grade int"); !result.Success {
		log.Printf("  spice_lot: %s", result.Message) // #nosec G706
	}

	log.Println("  Creating harvester type...")
	if result := db.Execute("create type harvester 4 1 callsign str crew int output int sietch str"); !result.Success {
		log.Printf("  harvester: %s", result.Message) // #nosec G706
	}

	log.Println("  Verifying type creation...")

	typeNames := db.Types()
	log.Printf("  Types in archive: %v", typeNames) // #nosec G706

	stats, err := db.StorageStats()
	if err != nil {
		return fmt.Errorf("failed to read storage stats: %v", err)
	}

	if lotStats, ok := stats["spice_lot"]; ok && lotStats.LiveSlots >= 1000 {
		log.Printf("  Found %d existing spice lots", lotStats.LiveSlots)
		log.Printf("  Skipping data insertion (already populated)")
		return nil
	}

	origins := []string{"Arrakis", "Hagga_Basin", "Habbanya_Erg", "Funeral_Plain"}

	log.Println("Inserting sample data...")
	for i := 1; i <= 1000; i++ {
		lotCommand := fmt.Sprintf(
			"create record spice_lot %d %s %d",
			i, origins[i%len(origins)], 1+i%10,
		)
		if result := db.Execute(lotCommand); !result.Success {
			return fmt.Errorf("failed to seed spice lot %d: %s", i, result.Message)
		}

		if i <= 500 {
			harvCommand := fmt.Sprintf(
				"create record harvester Harv_%03d %d %d Sietch_Tabr",
				i, 20+i%40, 100+i%900,
			)
			if result := db.Execute(harvCommand); !result.Success {
				return fmt.Errorf("failed to seed harvester %d: %s", i, result.Message)
			}
		}
	}
	log.Println("Sample data inserted successfully")

	return nil
}

// runBenchmark executes a single benchmark test with the specified parameters.
// It runs the command multiple times (iterations) with configurable concurrency,
// collects timing data, and calculates comprehensive statistics including
// percentiles and throughput metrics.
//
// The function uses goroutines for concurrent execution and a semaphore pattern
// to limit the number of commands in flight. All timing data is collected safely
// using mutex synchronization.
//
// Parameters:
//   - db: The archive session to run commands against
//   - commandType: Descriptive name for this benchmark (e.g., "SEARCH (str key)")
//   - command: The command to benchmark
//   - iterations: Total number of times to execute the command
//   - concurrent: Maximum number of concurrent executions
//
// Returns:
//   - BenchmarkResult: Comprehensive statistics about the benchmark execution
func runBenchmark(db *database.Database, commandType, command string, iterations, concurrent int) BenchmarkResult {
	durations := make([]time.Duration, 0, iterations)
	var mu sync.Mutex
	var wg sync.WaitGroup

	successCount := 0
	failureCount := 0
	failureSamples := make([]string, 0, 5)
	startTime := time.Now()

	sem := make(chan struct{}, concurrent)

	for i := 0; i < iterations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			commandStart := time.Now()
			result := db.Execute(command)
			duration := time.Since(commandStart)

			mu.Lock()
			durations = append(durations, duration)
			if result.Success {
				successCount++
			} else {
				failureCount++
				if len(failureSamples) < 5 {
					failureSamples = append(failureSamples, result.Message)
				}
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	totalDuration := time.Since(startTime)

	slices.Sort(durations)

	var sum time.Duration
	minDur := durations[0]
	maxDur := durations[0]

	for _, d := range durations {
		sum += d
		if d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
	}

	avgDur := sum / time.Duration(len(durations))
	medianDur := durations[len(durations)/2]
	p95Dur := durations[int(float64(len(durations))*0.95)]
	p99Dur := durations[int(float64(len(durations))*0.99)]
	ops := float64(iterations) / totalDuration.Seconds()

	return BenchmarkResult{
		CommandType:    commandType,
		Command:        command,
		Iterations:     iterations,
		TotalDuration:  totalDuration,
		AvgDuration:    avgDur,
		MinDuration:    minDur,
		MaxDuration:    maxDur,
		MedianDuration: medianDur,
		P95Duration:    p95Dur,
		P99Duration:    p99Dur,
		OpsPerSecond:   ops,
		ConcurrentOps:  concurrent,
		SuccessCount:   successCount,
		FailureCount:   failureCount,
		FailureSamples: failureSamples,
		Timestamp:      time.Now(),
	}
}

// formatDuration formats a duration in a human-readable way with appropriate units.
// Examples: 1.23ms, 456.78µs, 12.34s
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

// printBenchmarkResult outputs benchmark statistics to the console in a
// human-readable format. It displays timing metrics, percentiles, throughput,
// and success/failure counts.
//
// Parameters:
//   - result: The benchmark result to print
func printBenchmarkResult(result BenchmarkResult) {
	successRate := float64(result.SuccessCount) / float64(result.Iterations) * 100

	log.Printf("  ┌─ Results")                                                                                            // #nosec G706
	log.Printf("  │  Total Time:        %s", formatDuration(result.TotalDuration))                                        // #nosec G706
	log.Printf("  │  Avg per Command:   %s", formatDuration(result.AvgDuration))                                          // #nosec G706
	log.Printf("  │  Min / Max:         %s / %s", formatDuration(result.MinDuration), formatDuration(result.MaxDuration)) // #nosec G706
	log.Printf("  │  Median (P50):      %s", formatDuration(result.MedianDuration))                                       // #nosec G706
	log.Printf("  │  P95:               %s", formatDuration(result.P95Duration))                                          // #nosec G706
	log.Printf("  │  P99:               %s", formatDuration(result.P99Duration))                                          // #nosec G706
	log.Printf("  │  Throughput:        %.0f commands/sec", result.OpsPerSecond)                                          // #nosec G706
	log.Printf("  │  Success Rate:      %.1f%% (%d/%d)", successRate, result.SuccessCount, result.Iterations)             // #nosec G706

	if result.FailureCount > 0 && len(result.FailureSamples) > 0 {
		log.Printf("  │")
		log.Printf("  │  ⚠ Failures detected (%d):", result.FailureCount) // #nosec G706
		for i, msg := range result.FailureSamples {
			safe := strings.NewReplacer("\n", " ", "\r", " ").Replace(msg)
			if i == 0 {
				log.Printf("  │     Sample: %s", safe) // #nosec G706
			} else if i < 3 { // Show up to 3 unique failures
				log.Printf("  │            %s", safe) // #nosec G706
			}
		}
		if len(result.FailureSamples) > 3 {
			log.Printf("  │     ... and %d more failure(s)", len(result.FailureSamples)-3) // #nosec G706
		}
	}

	log.Printf("  └─")
}

// saveJSONReport serializes the benchmark report to a JSON file.
// The JSON format allows for easy parsing and integration with other tools.
//
// Parameters:
//   - report: The complete benchmark report to save
//   - filename: Path where the JSON file should be written
func saveJSONReport(report BenchmarkReport, filename string) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Printf("Error marshaling report: %v", err)
		return
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil { // #nosec G703
		log.Printf("Error writing JSON report: %v", err)
		return
	}

	log.Printf("JSON report saved: %s", filename) // #nosec G706
}

// saveHTMLReport generates a styled HTML report from the benchmark results.
// The report uses Tailwind CSS for styling and Cascadia Code font for a
// modern, professional appearance. It includes:
//   - Summary information (start/end time, duration, data directory)
//   - Detailed results table with all metrics
//   - Color-coded success rates and performance indicators
//
// Parameters:
//   - report: The complete benchmark report to convert to HTML
//   - filename: Path where the HTML file should be written
func saveHTMLReport(report BenchmarkReport, filename string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Dune Archive Benchmark Report - %s</title>
	<script src="https://cdn.tailwindcss.com"></script>
	<link rel="preconnect" href="https://fonts.googleapis.com">
	<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
	<link href="https://fonts.googleapis.com/css2?family=Cascadia+Code:wght@400;600;700&display=swap" rel="stylesheet">
	<style>
		body {
			font-family: 'Cascadia Code', monospace;
		}
	</style>
</head>
<body class="bg-gray-100 p-6">
	<div class="max-w-7xl mx-auto bg-white rounded-lg shadow-lg p-8">
		<h1 class="text-4xl font-bold text-gray-800 border-b-4 border-amber-500 pb-3 mb-6">
			Dune Archive Benchmark Report
		</h1>

		<div class="bg-amber-50 rounded-lg p-6 mb-8 grid grid-cols-2 md:grid-cols-4 gap-4">
			<div class="space-y-1">
				<div class="text-sm font-semibold text-gray-600">Start Time</div>
				<div class="text-lg text-amber-600 font-bold">%s</div>
			</div>
			<div class="space-y-1">
				<div class="text-sm font-semibold text-gray-600">End Time</div>
				<div class="text-lg text-amber-600 font-bold">%s</div>
			</div>
			<div class="space-y-1">
				<div class="text-sm font-semibold text-gray-600">Total Duration</div>
				<div class="text-lg text-amber-600 font-bold">%v</div>
			</div>
			<div class="space-y-1">
				<div class="text-sm font-semibold text-gray-600">Data Directory</div>
				<div class="text-lg text-amber-600 font-bold">%s</div>
			</div>
		</div>

		<h2 class="text-2xl font-bold text-gray-700 mt-8 mb-4">Benchmark Results</h2>
		<div class="overflow-x-auto">
			<table class="min-w-full border-collapse">
				<thead>
					<tr class="bg-amber-500 text-white">
						<th class="px-4 py-3 text-left font-bold">Command Type</th>
						<th class="px-4 py-3 text-left font-bold">Command</th>
						<th class="px-4 py-3 text-left font-bold">Iterations</th>
						<th class="px-4 py-3 text-left font-bold">Concurrent</th>
						<th class="px-4 py-3 text-left font-bold">Avg Time</th>
						<th class="px-4 py-3 text-left font-bold">Min/Max</th>
						<th class="px-4 py-3 text-left font-bold">P95</th>
						<th class="px-4 py-3 text-left font-bold">Ops/sec</th>
						<th class="px-4 py-3 text-left font-bold">Success Rate</th>
					</tr>
				</thead>
				<tbody class="divide-y divide-gray-200">
`,
		report.StartTime.Format("2006-01-02 15:04:05"),
		report.StartTime.Format("2006-01-02 15:04:05"),
		report.EndTime.Format("2006-01-02 15:04:05"),
		report.TotalDuration,
		report.DataDir,
	)

	for _, result := range report.Results {
		successRate := float64(result.SuccessCount) / float64(result.Iterations) * 100
		html += fmt.Sprintf(`
					<tr class="hover:bg-gray-50 transition-colors">
						<td class="px-4 py-3 font-bold text-gray-800">%s</td>
						<td class="px-4 py-3 text-sm text-gray-700 max-w-md truncate">%s</td>
						<td class="px-4 py-3 text-gray-700">%d</td>
						<td class="px-4 py-3 text-gray-700">%d</td>
						<td class="px-4 py-3 text-gray-700">%v</td>
						<td class="px-4 py-3 text-gray-700">%v / %v</td>
						<td class="px-4 py-3 text-gray-700">%v</td>
						<td class="px-4 py-3 text-amber-600 font-semibold">%.2f</td>
						<td class="px-4 py-3 text-amber-600 font-semibold">%.1f%%</td>
					</tr>
`,
			result.CommandType,
			result.Command,
			result.Iterations,
			result.ConcurrentOps,
			result.AvgDuration,
			result.MinDuration,
			result.MaxDuration,
			result.P95Duration,
			result.OpsPerSecond,
			successRate,
		)
	}

	html += `
				</tbody>
			</table>
		</div>
	</div>
</body>
</html>
`

	if err := os.WriteFile(filename, []byte(html), 0o600); err != nil { // #nosec G703
		log.Printf("Error writing HTML report: %v", err)
		return
	}

	log.Printf("HTML report saved: %s", filename) // #nosec G706
}
