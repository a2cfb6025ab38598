//go:build !linux

package app

import (
	"bufio"
	"context"
	"log"
	"os"
	"strings"
)

// watchEscape on platforms without termios control: reads stdin line
// by line and treats a lone ESC byte or "quit" as the shutdown
// request.
func watchEscape(ctx context.Context, cancel context.CancelFunc) {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case line := <-lines:
			trimmed := strings.TrimSpace(line)
			if trimmed == "\x1b" || strings.EqualFold(trimmed, "quit") {
				log.Println("shutdown requested from console")
				cancel()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
