//go:build debug

package myq

import "log"

func traceStatement(stmt string) {
	log.Printf("[DEBUG] SQL:\n%s", stmt)
}
