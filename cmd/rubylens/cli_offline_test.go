package main_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const articlePage = `<!DOCTYPE html>
<html lang="ja"><head><meta charset="utf-8"><title>春の便り</title></head>
<body><main><article>
<h1>春の便り</h1>
<p><ruby>桜<rp>(</rp><rt>さくら</rt><rp>)</rp></ruby>の花が咲き始めました。公園には多くの人が集まっています。</p>
<p>子供たちは楽しそうに遊び、大人は静かに花を眺めています。今年の春は暖かいです。</p>
<p>天気予報によると、週末まで晴れの日が続くそうです。</p>
</article></main></body></html>`

func TestCLI_OfflineServer(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	tmp := t.TempDir()

	// Start local HTTP server serving the fixture
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	dataDir := filepath.Join(tmp, "data")
	bin := filepath.Join(tmp, "rubylens.bin")

	// Build the CLI binary (use full import path so it builds correctly regardless of the current working directory)
	build := exec.Command("go", "build", "-o", bin, "github.com/japaniel/rubylens/cmd/rubylens")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}

	runCLI := func(args ...string) string {
		t.Helper()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		full := append([]string{"--data-dir", dataDir, "--config", filepath.Join(tmp, "none.toml")}, args...)
		cmd := exec.CommandContext(ctx, bin, full...)
		cmd.Dir = tmp
		out, err := cmd.CombinedOutput()
		if ctx.Err() == context.DeadlineExceeded {
			t.Fatalf("cli timed out, output:\n%s", out)
		}
		if err != nil {
			t.Fatalf("cli %v failed: %v\noutput:\n%s", args, err, out)
		}
		return string(out)
	}

	out := runCLI("import", srv.URL, "--save")
	if !strings.Contains(out, "Saved") {
		t.Fatalf("unexpected CLI output; expected save message, got:\n%s", out)
	}

	// Verify the singleton row landed in the database
	dbConn, err := sql.Open("sqlite3", filepath.Join(dataDir, "hanzi-ruby-lens.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer dbConn.Close()

	var cnt int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM texts").Scan(&cnt); err != nil {
		t.Fatalf("db query failed: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected exactly one stored text, found %d", cnt)
	}

	var raw, segs string
	if err := dbConn.QueryRow("SELECT raw_input, segments FROM texts WHERE id = 1").Scan(&raw, &segs); err != nil {
		t.Fatalf("db query failed: %v", err)
	}
	if !strings.Contains(raw, "桜の花が咲き始めました") {
		t.Fatalf("raw input missing article text: %q", raw)
	}
	if strings.Contains(raw, "さくら") {
		t.Fatalf("ruby reading leaked into raw input: %q", raw)
	}
	if !strings.Contains(segs, `"characters":"桜"`) {
		t.Fatalf("expected 桜 to be segmented as a word, got %s", segs)
	}

	inspect := runCLI("inspect")
	if !strings.Contains(inspect, "journal_mode: wal") {
		t.Fatalf("inspect output missing journal mode:\n%s", inspect)
	}
}
