// Package loadtest drives a running server with synthetic replays and
// watchers to measure how the broadcast path holds up under load.
package loadtest

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/typecast/typecast-go/lib/cli"
	"github.com/typecast/typecast-go/lib/utils"
	"github.com/typecast/typecast-go/lib/ws"
)

func RunFromCLI(logger *zap.SugaredLogger, args []string) {
	host, watchers, duration, untilFail, err := parseRunArgs(args)
	if err != nil {
		return
	}
	StartLoadTest(logger, host, watchers, duration, untilFail)
}

func parseRunArgs(args []string) (string, int, int, bool, error) {
	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	host := fs.String("host", "http://127.0.0.1:9003", "The host to test")
	watchers := fs.Int("watchers", 3, "Number of watchers per document")
	duration := fs.Int("duration", 0, "Duration of the test in seconds")
	untilFail := fs.Bool("loadUntilFail", false, "Load until the server fails")
	fs.IntVar(watchers, "w", 3, "Number of watchers per document (shorthand)")
	fs.IntVar(duration, "d", 0, "Duration of the test in seconds (shorthand)")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		*host = args[0]
		args = args[1:]
	}

	err := fs.Parse(args)
	return *host, *watchers, *duration, *untilFail, err
}

type Metrics struct {
	WatchersConnected int64
	ReplaysStarted    int64
	ReplaysFinished   int64
	SplicesReceived   int64
	ErrorCount        int64
	StartTime         time.Time
}

var stats Metrics
var maxPS float64
var statsLock sync.Mutex

func updateMetricsUI(host string) {
	if os.Getenv("SILENT_METRICS") == "true" {
		return
	}
	statsLock.Lock()
	defer statsLock.Unlock()

	testDuration := time.Since(stats.StartTime)

	// Clear screen and move cursor to top-left
	fmt.Print("\033[2J\033[0;0H")
	fmt.Printf("Load Test Metrics -- Target %s\n\n", host)

	fmt.Printf("Watchers Connected: %d\n", atomic.LoadInt64(&stats.WatchersConnected))
	fmt.Printf("Replays Started: %d\n", atomic.LoadInt64(&stats.ReplaysStarted))
	fmt.Printf("Replays Finished: %d\n", atomic.LoadInt64(&stats.ReplaysFinished))
	fmt.Printf("Errors: %d\n", atomic.LoadInt64(&stats.ErrorCount))

	splices := atomic.LoadInt64(&stats.SplicesReceived)
	fmt.Printf("Splices delivered to watchers: %d\n", splices)

	durationSec := testDuration.Seconds()
	if durationSec > 0 {
		currentRate := float64(splices) / durationSec
		fmt.Printf("Mean(per second) of splices delivered: %.0f\n", currentRate)
		if currentRate > maxPS {
			maxPS = currentRate
		}
		fmt.Printf("Max(per second) of splices delivered: %.0f\n", maxPS)
	}

	diff := atomic.LoadInt64(&stats.ReplaysStarted) - atomic.LoadInt64(&stats.ReplaysFinished)
	if diff > 5 {
		fmt.Printf("Replays still in flight: %d\n", diff)
	}

	fmt.Printf("Seconds test has been running for: %d\n", int(durationSec))
}

func newWatcher(host string, path string, logger *zap.SugaredLogger) {
	watcher, err := cli.Connect(host, path, logger)
	if err != nil {
		fmt.Printf("connection error connecting to watch socket: %v\n", err)
		atomic.AddInt64(&stats.ErrorCount, 1)
		return
	}

	atomic.AddInt64(&stats.WatchersConnected, 1)
	updateMetricsUI(host)

	watcher.OnSplice(func(ws.SpliceEvent) {
		atomic.AddInt64(&stats.SplicesReceived, 1)
	})
	watcher.OnReplayFinished(func(ws.ReplayFinishedEvent) {
		atomic.AddInt64(&stats.ReplaysFinished, 1)
		updateMetricsUI(host)
	})
	watcher.OnDisconnect(func(interface{}) {
		atomic.AddInt64(&stats.WatchersConnected, -1)
	})
}

// driveReplays captures random snapshots and replays them back to back on one
// document, waiting for each replay to finish before starting the next.
func driveReplays(host string, path string, logger *zap.SugaredLogger) {
	client := &http.Client{Timeout: 10 * time.Second}

	for {
		content := utils.RandomString(40) + "\n" + utils.RandomString(40) + "\n"
		snapshotID, err := createSnapshot(client, host, path, content)
		if err != nil {
			logger.Warnf("snapshot creation failed: %v", err)
			atomic.AddInt64(&stats.ErrorCount, 1)
			time.Sleep(time.Second)
			continue
		}

		replayID, err := startReplay(client, host, path, snapshotID)
		if err != nil {
			logger.Warnf("replay start failed: %v", err)
			atomic.AddInt64(&stats.ErrorCount, 1)
			time.Sleep(time.Second)
			continue
		}
		atomic.AddInt64(&stats.ReplaysStarted, 1)
		updateMetricsUI(host)

		if err := awaitReplay(client, host, replayID); err != nil {
			logger.Warnf("replay %s did not finish: %v", replayID, err)
			atomic.AddInt64(&stats.ErrorCount, 1)
		}
	}
}

type idResponse struct {
	Id string `json:"id"`
}

type statusResponse struct {
	Id      string  `json:"id"`
	Outcome *string `json:"outcome"`
}

func createSnapshot(client *http.Client, host string, path string, content string) (string, error) {
	body, _ := json.Marshal(map[string]string{"path": path, "content": content})
	resp, err := client.Post(host+"/api/snapshots", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	var created idResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.Id, nil
}

func startReplay(client *http.Client, host string, path string, snapshotID string) (string, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"path":           path,
		"snapshotId":     snapshotID,
		"charsPerSecond": 200,
	})
	resp, err := client.Post(host+"/api/replay", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	var started idResponse
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		return "", err
	}
	return started.Id, nil
}

func awaitReplay(client *http.Client, host string, replayID string) error {
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(host + "/api/replay/" + replayID)
		if err != nil {
			return err
		}
		var status statusResponse
		err = json.NewDecoder(resp.Body).Decode(&status)
		resp.Body.Close()
		if err != nil {
			return err
		}
		if status.Outcome != nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("timed out")
}

func StartLoadTest(logger *zap.SugaredLogger, host string, numWatchers int, duration int, loadUntilFail bool) {
	stats.StartTime = time.Now()

	if host == "" {
		host = "http://127.0.0.1:9003"
	}
	host = strings.TrimSuffix(host, "/")

	path := "loadtest-" + utils.RandomString(5) + ".txt"

	var endTime time.Time
	if duration > 0 {
		endTime = stats.StartTime.Add(time.Duration(duration) * time.Second)
	}

	go func() {
		for i := 0; i < numWatchers; i++ {
			newWatcher(host, path, logger)
			time.Sleep(200 * time.Millisecond / time.Duration(numWatchers+1))
		}
		go driveReplays(host, path, logger)
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	for range ticker.C {
		if !endTime.IsZero() && time.Now().After(endTime) {
			fmt.Println("Test duration complete and Load Tests PASS")
			fmt.Printf("%+v\n", stats)
			if os.Getenv("GO_TEST_MODE") == "true" {
				return
			}
			os.Exit(0)
		}

		if loadUntilFail {
			diff := atomic.LoadInt64(&stats.ReplaysStarted) - atomic.LoadInt64(&stats.ReplaysFinished)
			if diff > 100 {
				fmt.Printf("Load test failed: too many replays in flight (%d)\n", diff)
				if os.Getenv("GO_TEST_MODE") == "true" {
					return
				}
				os.Exit(1)
			}
		}
	}
}
