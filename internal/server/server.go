// internal/server/server.go
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"slidr/internal/builder"
)

// debounceWindow is the quiet period after the last file change before a
// rebuild fires. Bursts of changes inside the window collapse into a single
// rebuild.
const debounceWindow = 500 * time.Millisecond

// Run builds the deck once, then serves the deck directory on port while
// watching it for changes. The watch loop and the file server share nothing
// but the output file on disk. Run returns when the listener fails at
// startup or after a clean shutdown on SIGINT/SIGTERM.
func Run(deckDir string, port int, opts builder.BuildOptions) error {
	// Pin the output inside the served directory so the file server and the
	// rebuild loop agree on the same file.
	opts.Output = filepath.Join(deckDir, builder.OutputFile)

	if err := builder.Build(deckDir, opts); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, deckDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := newReloadHub()
	go watchForChanges(ctx, watcher, hub, deckDir, opts)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.handleWS)
	mux.Handle("/", withLiveReload(http.FileServer(http.Dir(deckDir))))

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	fmt.Printf("🚀 Serving deck on http://localhost:%d\n", port)
	fmt.Printf("📁 Watching %s\n", deckDir)
	fmt.Println("Press Ctrl+C to stop")

	select {
	case err := <-serveErr:
		// ListenAndServe only returns on failure here; the clean path goes
		// through Shutdown below.
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	fmt.Println("\n✓ Server stopped")
	return nil
}

// watchRecursive adds the deck directory and every subdirectory to the
// watcher. Files inside watched directories report events without being
// added individually.
func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("could not watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// watchForChanges runs the rebuild loop for the watcher, broadcasting a
// reload to connected browsers after every successful rebuild. A failed
// rebuild is logged and the previous output stays served.
func watchForChanges(ctx context.Context, watcher *fsnotify.Watcher, hub *reloadHub, deckDir string, opts builder.BuildOptions) {
	onDirCreate := func(path string) {
		// New subdirectories need their own watch handle.
		if err := watcher.Add(path); err != nil {
			log.Printf("Could not watch new directory %s: %v", path, err)
		}
	}
	rebuild := func() {
		log.Println("Change detected, rebuilding...")
		if err := builder.Build(deckDir, opts); err != nil {
			log.Printf("Rebuild failed: %v", err)
			return
		}
		hub.broadcast("reload")
	}
	rebuildLoop(ctx, watcher.Events, watcher.Errors, debounceWindow, onDirCreate, rebuild)
}

// rebuildLoop serializes debounce resets and rebuilds in a single goroutine,
// so watcher callbacks and the builds they trigger never race. Every
// relevant event restarts the quiet window; the rebuild runs once when the
// window elapses with no further events.
func rebuildLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, window time.Duration, onDirCreate func(string), rebuild func()) {
	timer := time.NewTimer(window)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					onDirCreate(event.Name)
				}
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(window)

		case <-timer.C:
			rebuild()

		case err, ok := <-errs:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// relevant filters watcher events down to the ones that warrant a rebuild.
// Events for the generated output file are our own writes; reacting to them
// would rebuild forever.
func relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) == builder.OutputFile {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// withLiveReload wraps the file server so HTML responses carry no-cache
// headers and get the live-reload script injected before </body>. Non-HTML
// paths stream straight through without buffering.
func withLiveReload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if !strings.HasSuffix(r.URL.Path, ".html") && !strings.HasSuffix(r.URL.Path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		rec := &bufferedResponse{header: make(http.Header), status: http.StatusOK}
		next.ServeHTTP(rec, r)
		rec.flush(w)
	})
}

// bufferedResponse records a full response so the reload script can be
// spliced into the body before anything reaches the client.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (b *bufferedResponse) Header() http.Header         { return b.header }
func (b *bufferedResponse) Write(p []byte) (int, error) { return b.body.Write(p) }
func (b *bufferedResponse) WriteHeader(status int)      { b.status = status }

// flush replays the recorded response. Only successful bodies are rewritten;
// error pages from the file server pass through untouched.
func (b *bufferedResponse) flush(w http.ResponseWriter) {
	body := b.body.Bytes()
	if b.status == http.StatusOK {
		body = bytes.Replace(body, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
	}
	for key, values := range b.header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(b.status)
	w.Write(body)
}

const liveReloadScript = `
<script>
  (function() {
    var socket = new WebSocket("ws://" + window.location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        window.location.reload();
      }
    };
    socket.onerror = function() {
      console.error("Live reload connection lost. Restart 'slidr serve'.");
    };
  })();
</script>
`
