//go:build !debug

package myq

func traceStatement(string) {}
