package checker

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aleister1102/linkchecker/internal/common/errorwrapper"
	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/datastore"
	"github.com/aleister1102/linkchecker/internal/httpclient/httpclienttest"
	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	cfg       *config.GlobalConfig
	transport *httpclienttest.RerouteTransport
}

func newTestConfig(t *testing.T) *config.GlobalConfig {
	t.Helper()
	cfg := config.NewDefaultGlobalConfig()
	cfg.LedgerConfig.OutputDir = t.TempDir()
	cfg.StorageConfig.HistoryEnabled = false
	cfg.ProgressConfig.EnableProgress = false
	cfg.CheckerConfig.Workers = 4
	return cfg
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &testEnv{cfg: newTestConfig(t), transport: httpclienttest.NewRerouteTransport(server)}
}

func (e *testEnv) build(t *testing.T, opts ...func(*CheckerBuilder)) *Checker {
	t.Helper()
	b := NewCheckerBuilder(e.cfg, zerolog.Nop()).WithTransport(e.transport)
	for _, opt := range opts {
		opt(b)
	}
	c, err := b.Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "links.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readLedger(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// fakeHosts answers like the real services, keyed by the requested host.
func fakeHosts(t *testing.T, megaAnswer string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Host {
		case "pixeldrain.com":
			_, _ = w.Write([]byte("file page"))
		case "files.catbox.moe":
			http.NotFound(w, r)
		case "imageporter.com":
			_, _ = w.Write([]byte("<h1>No file</h1>"))
		case "pastebin.com":
			assert.Equal(t, "/raw/abc", r.URL.Path)
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("mirror: https://mega.nz/file/xyz#key\nhttps://pixeldrain.com/u/redirect\n"))
		case "mega.nz":
			_, _ = w.Write([]byte("<html>mega</html>"))
		case "g.api.mega.co.nz":
			_, _ = w.Write([]byte(megaAnswer))
		default:
			t.Errorf("unexpected host %s", r.Host)
			http.Error(w, "unexpected", http.StatusTeapot)
		}
	}
}

func TestCheckFile_PartitionsIntoLedgers(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	c := env.build(t)

	input := writeInput(t, strings.Join([]string{
		"grab https://pixeldrain.com/u/live and https://files.catbox.moe/dead.zip",
		"https://pixeldrain.com/u/live",
		"https://imageporter.com/gone",
		"https://pixeldrain.com/u/redirect",
		"https://example.com/not-a-host",
		"",
	}, "\n"))

	summary, err := c.CheckFile(context.Background(), "run-1", input)
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusCompleted, summary.Status)
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 5, summary.RawLines)
	assert.Equal(t, 0, summary.PreviouslySeen)
	assert.Equal(t, 3, summary.InputCandidates)
	assert.Equal(t, 1, summary.Good)
	assert.Equal(t, 2, summary.Bad)

	assert.Equal(t, []string{"https://pixeldrain.com/u/live"}, readLedger(t, env.cfg.LedgerConfig.GoodPath()))
	assert.ElementsMatch(t,
		[]string{"https://files.catbox.moe/dead.zip", "https://imageporter.com/gone"},
		readLedger(t, env.cfg.LedgerConfig.BadPath()))
	assert.Equal(t, 3, env.transport.Count())
}

func TestCheckFile_SkipsPreviouslySeen(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	require.NoError(t, os.MkdirAll(env.cfg.LedgerConfig.OutputDir, 0o755))
	require.NoError(t, os.WriteFile(env.cfg.LedgerConfig.GoodPath(), []byte("https://pixeldrain.com/u/live\n"), 0o644))
	require.NoError(t, os.WriteFile(env.cfg.LedgerConfig.BadPath(), []byte("https://files.catbox.moe/dead.zip\r\n"), 0o644))

	c := env.build(t)
	input := writeInput(t, "https://pixeldrain.com/u/live\nhttps://files.catbox.moe/dead.zip\n")

	summary, err := c.CheckFile(context.Background(), "", input)
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusNoTargets, summary.Status)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.PreviouslySeen)
	assert.Zero(t, summary.InputCandidates)
	assert.Zero(t, env.transport.Count())
	assert.Equal(t, []string{"https://pixeldrain.com/u/live"}, readLedger(t, env.cfg.LedgerConfig.GoodPath()))
}

func TestCheckFile_SecondRunIsIdempotent(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	input := writeInput(t, "https://pixeldrain.com/u/live https://files.catbox.moe/dead.zip")

	first := env.build(t)
	_, err := first.CheckFile(context.Background(), "", input)
	require.NoError(t, err)
	require.NoError(t, first.Close())
	calls := env.transport.Count()

	second := env.build(t)
	summary, err := second.CheckFile(context.Background(), "", input)
	require.NoError(t, err)

	assert.Equal(t, calls, env.transport.Count())
	assert.Equal(t, 2, summary.PreviouslySeen)
	assert.Len(t, readLedger(t, env.cfg.LedgerConfig.GoodPath()), 1)
	assert.Len(t, readLedger(t, env.cfg.LedgerConfig.BadPath()), 1)
}

func TestCheckFile_EmptyInput(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	c := env.build(t)

	summary, err := c.CheckFile(context.Background(), "", writeInput(t, ""))
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusNoTargets, summary.Status)
	assert.Zero(t, summary.RawLines)
	assert.Zero(t, summary.InputCandidates)
	assert.Zero(t, summary.Processed())
	assert.Zero(t, env.transport.Count())
	assert.Empty(t, readLedger(t, env.cfg.LedgerConfig.GoodPath()))
	assert.Empty(t, readLedger(t, env.cfg.LedgerConfig.BadPath()))
}

func TestCheckFile_PasteExpandsToMega(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "-2"))
	c := env.build(t)

	summary, err := c.CheckFile(context.Background(), "", writeInput(t, "see https://pastebin.com/abc\n"))
	require.NoError(t, err)

	// The forbidden link inside the paste is dropped; the paste itself is
	// never a candidate.
	assert.Equal(t, 1, summary.InputCandidates)
	assert.Equal(t, 1, summary.Bad)
	assert.Equal(t, []string{"https://mega.nz/file/xyz#key"}, readLedger(t, env.cfg.LedgerConfig.BadPath()))
	assert.Empty(t, readLedger(t, env.cfg.LedgerConfig.GoodPath()))
}

func TestCheckFile_PasteDepthZero(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	env.cfg.CheckerConfig.PasteDepth = 0
	c := env.build(t)

	summary, err := c.CheckFile(context.Background(), "", writeInput(t, "https://pastebin.com/abc"))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Bad)
	assert.Equal(t, []string{"https://pastebin.com/abc"}, readLedger(t, env.cfg.LedgerConfig.BadPath()))
	assert.Zero(t, env.transport.Count())
}

func TestCheckFile_SlowHostTimesOut(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	env.cfg.VerifierConfig.VerifyTimeoutSecs = 1
	c := env.build(t)

	start := time.Now()
	summary, err := c.CheckFile(context.Background(), "", writeInput(t, "https://pixeldrain.com/u/slow"))
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 4*time.Second)
	assert.Equal(t, 1, summary.Bad)
	assert.Equal(t, []string{"https://pixeldrain.com/u/slow"}, readLedger(t, env.cfg.LedgerConfig.BadPath()))
}

func TestCheckFile_Interrupted(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	c := env.build(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := c.CheckFile(ctx, "", writeInput(t, "https://pixeldrain.com/u/live"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.RunStatusInterrupted, summary.Status)
	assert.NotEmpty(t, summary.ErrorMessages)
	assert.Empty(t, readLedger(t, env.cfg.LedgerConfig.GoodPath()))
	assert.Empty(t, readLedger(t, env.cfg.LedgerConfig.BadPath()))
}

func TestCheckFile_InputErrors(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	env.cfg.CheckerConfig.MaxInputMB = 1
	c := env.build(t)

	_, err := c.CheckFile(context.Background(), "", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, errorwrapper.ErrInputMissing)

	big := writeInput(t, strings.Repeat("a", 1024*1024+1))
	_, err = c.CheckFile(context.Background(), "", big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestBuild_LedgerUnavailable(t *testing.T) {
	cfg := newTestConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.LedgerConfig.OutputDir = filepath.Join(blocker, "sub")

	_, err := NewCheckerBuilder(cfg, zerolog.Nop()).Build()
	require.ErrorIs(t, err, errorwrapper.ErrLedgerUnavailable)
}

// countingVerifier records the peak number of concurrent calls.
type countingVerifier struct {
	active atomic.Int32
	peak   atomic.Int32
	calls  atomic.Int32
	delay  time.Duration
}

func (v *countingVerifier) Verify(ctx context.Context, url string) models.VerificationResult {
	v.calls.Add(1)
	n := v.active.Add(1)
	defer v.active.Add(-1)
	for {
		p := v.peak.Load()
		if n <= p || v.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(v.delay)
	if strings.HasSuffix(url, "good") {
		return models.VerificationResult{URL: url, Outcome: models.OutcomeGood}
	}
	return models.VerificationResult{URL: url, Outcome: models.OutcomeBad}
}

func TestRun_BoundedWorkersAndDedup(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	env.cfg.CheckerConfig.Workers = 3
	v := &countingVerifier{delay: 20 * time.Millisecond}
	c := env.build(t, func(b *CheckerBuilder) { b.WithVerifier(v) })

	var candidates []string
	for i := 0; i < 10; i++ {
		suffix := "bad"
		if i%2 == 0 {
			suffix = "good"
		}
		candidates = append(candidates, "https://pixeldrain.com/u/"+string(rune('a'+i))+suffix)
	}
	candidates = append(candidates, candidates[0], candidates[1])

	counts := c.Run(context.Background(), candidates)

	assert.Equal(t, RunCounts{Good: 5, Bad: 5, Appended: 10}, counts)
	assert.Equal(t, int32(10), v.calls.Load())
	assert.LessOrEqual(t, v.peak.Load(), int32(3))
	assert.Len(t, readLedger(t, env.cfg.LedgerConfig.GoodPath()), 5)
	assert.Len(t, readLedger(t, env.cfg.LedgerConfig.BadPath()), 5)
}

func TestRun_CancelStopsDispatch(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	env.cfg.CheckerConfig.Workers = 1

	ctx, cancel := context.WithCancel(context.Background())
	v := &cancelingVerifier{cancel: cancel}
	c := env.build(t, func(b *CheckerBuilder) { b.WithVerifier(v) })

	counts := c.Run(ctx, []string{"https://pixeldrain.com/u/1", "https://pixeldrain.com/u/2", "https://pixeldrain.com/u/3"})

	assert.Equal(t, 1, counts.Good)
	assert.Equal(t, 2, counts.Skipped)
	assert.Equal(t, []string{"https://pixeldrain.com/u/1"}, readLedger(t, env.cfg.LedgerConfig.GoodPath()))
}

// cancelingVerifier reports Good for the first URL, then cancels the run.
type cancelingVerifier struct {
	once   sync.Once
	cancel context.CancelFunc
}

func (v *cancelingVerifier) Verify(ctx context.Context, url string) models.VerificationResult {
	first := false
	v.once.Do(func() { first = true })
	if first {
		defer v.cancel()
		return models.VerificationResult{URL: url, Outcome: models.OutcomeGood}
	}
	return models.VerificationResult{URL: url, Outcome: models.OutcomeBad, Reason: "canceled", Err: ctx.Err()}
}

type fakeHistory struct {
	mu        sync.Mutex
	started   []string
	completed []models.RunSummary
	startErr  error
}

func (h *fakeHistory) RecordRunStart(_ context.Context, runID, _, _ string, _ time.Time) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.startErr != nil {
		return 0, h.startErr
	}
	h.started = append(h.started, runID)
	return int64(len(h.started)), nil
}

func (h *fakeHistory) RecordRunCompletion(_ context.Context, _ int64, s models.RunSummary) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, s)
	return nil
}

func (h *fakeHistory) RecentRuns(_ context.Context, limit int) ([]datastore.RunHistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []datastore.RunHistoryEntry
	for i := len(h.completed) - 1; i >= 0 && len(out) < limit; i-- {
		s := h.completed[i]
		out = append(out, datastore.RunHistoryEntry{RunID: s.RunID, Status: string(s.Status), Good: s.Good, Bad: s.Bad})
	}
	return out, nil
}

func (h *fakeHistory) Close() error { return nil }

func TestCheckFile_RecordsHistory(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	h := &fakeHistory{}
	c := env.build(t, func(b *CheckerBuilder) { b.WithHistory(h) })

	_, err := c.CheckFile(context.Background(), "run-h", writeInput(t, "https://pixeldrain.com/u/live"))
	require.NoError(t, err)

	assert.Equal(t, []string{"run-h"}, h.started)
	require.Len(t, h.completed, 1)
	assert.Equal(t, 1, h.completed[0].Good)

	failing := &fakeHistory{startErr: errors.New("disk full")}
	c2 := env.build(t, func(b *CheckerBuilder) { b.WithHistory(failing) })
	_, err = c2.CheckFile(context.Background(), "", writeInput(t, "https://files.catbox.moe/x"))
	require.NoError(t, err)
	assert.Empty(t, failing.completed)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(nil))
	assert.Equal(t, 1, countLines([]byte("a")))
	assert.Equal(t, 1, countLines([]byte("a\n")))
	assert.Equal(t, 2, countLines([]byte("a\nb")))
	assert.Equal(t, 3, countLines([]byte("a\n\nb\n")))
}

func TestCheckFile_ReusedChecker(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	env.cfg.ProgressConfig.EnableProgress = true
	env.cfg.ProgressConfig.DisplayInterval = 1
	c := env.build(t)

	first, err := c.CheckFile(context.Background(), "", writeInput(t, "https://pixeldrain.com/u/one"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Good)

	second, err := c.CheckFile(context.Background(), "", writeInput(t, "https://files.catbox.moe/two.zip"))
	require.NoError(t, err)
	assert.Equal(t, 1, second.Bad)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestCheckFile_UnreadableInputFails(t *testing.T) {
	var (
		mu       sync.Mutex
		webhooks []string
	)
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "discord.com", r.Host)
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		mu.Lock()
		webhooks = append(webhooks, body.String())
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	env.cfg.NotificationConfig.DiscordWebhookURL = "https://discord.com/api/webhooks/1/token"
	env.cfg.NotificationConfig.NotifyOnFailure = true
	h := &fakeHistory{}
	c := env.build(t, func(b *CheckerBuilder) { b.WithHistory(h) })

	missing := filepath.Join(t.TempDir(), "missing.txt")
	summary, err := c.CheckFile(context.Background(), "run-f", missing)
	require.ErrorIs(t, err, errorwrapper.ErrInputMissing)

	assert.Equal(t, models.RunStatusFailed, summary.Status)
	assert.Equal(t, "run-f", summary.RunID)
	require.Len(t, summary.ErrorMessages, 1)
	assert.Contains(t, summary.ErrorMessages[0], "missing.txt")

	assert.Equal(t, []string{"run-f"}, h.started)
	require.Len(t, h.completed, 1)
	assert.Equal(t, models.RunStatusFailed, h.completed[0].Status)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, webhooks, 1)
	assert.Contains(t, webhooks[0], "Link check failed")
}

func TestCheckFile_LogsPreviousRun(t *testing.T) {
	env := newTestEnv(t, fakeHosts(t, "[{}]"))
	h := &fakeHistory{}
	var logs bytes.Buffer
	c, err := NewCheckerBuilder(env.cfg, zerolog.New(zerolog.SyncWriter(&logs))).
		WithTransport(env.transport).
		WithHistory(h).
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, err = c.CheckFile(context.Background(), "run-a", writeInput(t, "https://pixeldrain.com/u/a"))
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "Previous run")

	_, err = c.CheckFile(context.Background(), "run-b", writeInput(t, "https://pixeldrain.com/u/b"))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"previous_run_id":"run-a"`)
}

func TestNewRunID_Distinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id := NewRunID()
		assert.Regexp(t, `^\d{8}-\d{6}\.\d{6}-[0-9a-f]{6}$`, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 50)
}
