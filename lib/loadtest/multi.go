package loadtest

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

func RunMultiFromCLI(logger *zap.SugaredLogger, args []string) {
	host, maxDocuments, err := parseMultiRunArgs(args)
	if err != nil {
		return
	}
	StartMultiLoadTest(logger, host, maxDocuments)
}

func parseMultiRunArgs(args []string) (string, int, error) {
	fs := flag.NewFlagSet("multiload", flag.ContinueOnError)
	host := fs.String("host", "http://127.0.0.1:9003", "The host to test")
	maxDocuments := fs.Int("maxDocuments", 10, "Maximum number of documents")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		*host = args[0]
		args = args[1:]
	}

	err := fs.Parse(args)
	return *host, *maxDocuments, err
}

// StartMultiLoadTest forks one child load test per document so every child
// replays against its own document path.
func StartMultiLoadTest(logger *zap.SugaredLogger, host string, maxDocuments int) {
	if maxDocuments <= 0 {
		maxDocuments = 10
	}

	fmt.Printf("Starting multi-document load test: %d documents for 30 seconds each\n", maxDocuments)

	executable, err := os.Executable()
	if err != nil {
		logger.Errorf("Failed to get executable path: %v", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	for i := 0; i < maxDocuments; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			cmd := exec.Command(executable, "loadtest", host, "-w", "3", "-d", "30")
			cmd.Env = append(os.Environ(), "SILENT_METRICS=true")

			output, err := cmd.CombinedOutput()
			if err != nil {
				fmt.Printf("Child process %d exited with error: %v\n", id, err)
				fmt.Printf("Output: %s\n", string(output))
				os.Exit(1)
			}
		}(i)

		// Small delay between starts to not overwhelm everything at once
		time.Sleep(100 * time.Millisecond)
	}

	wg.Wait()
	fmt.Println("Multi-document load test completed successfully")
}
