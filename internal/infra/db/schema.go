package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ExecScript applies a schema script. The whole script is first sent in one call;
// engines or drivers that reject multi-statement execution get the statements one
// at a time. Scripts must therefore be idempotent.
func (a *Adapter) ExecScript(ctx context.Context, script string) error {
	_, err := a.Exec(ctx, script)
	if err == nil {
		return nil
	}
	slog.Debug("multi-statement exec failed, applying statements one by one",
		slog.Any("error", err))

	for i, stmt := range SplitStatements(script) {
		if _, err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ExecScript: statement %d: %w", i+1, err)
		}
	}
	return nil
}

// SplitStatements splits a script on ';' and drops blank statements and `--` comment lines.
// It does not understand semicolons inside string literals.
func SplitStatements(script string) []string {
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	parts := strings.Split(b.String(), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
