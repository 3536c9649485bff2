package main

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"datescore-cli/internal/cli"
)

// Persistent flags that take a separate value token.
var valueFlags = []string{"--api-url", "--timeout", "--format", "--log-level"}

func isPlanID(s string) bool {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil && n > 0
}

// rewritePlanShortcut turns `datescore [flags] <plan-id>` into `datescore [flags] show <plan-id>`.
// Cobra would otherwise treat the id as an unknown subcommand.
func rewritePlanShortcut(argv []string) []string {
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isPlanID(argv[i+1]) {
				return withShow(argv, i+1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && slices.Contains(valueFlags, a) {
				i++
			}
			continue
		case isPlanID(a):
			return withShow(argv, i)
		default:
			return argv
		}
	}
	return argv
}

func withShow(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+1)
	out = append(out, argv[:at]...)
	out = append(out, "show")
	return append(out, argv[at:]...)
}

func main() {
	os.Args = rewritePlanShortcut(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
