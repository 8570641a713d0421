package nimsforestgallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// WebTarget serves the gallery over HTTP. It provides a JSON API at
// /api/gallery, the current frame at /frame.svg and /frame.png, and a
// small page that ties them together. Menu and control events are posted
// to /api/select and /api/control.
type WebTarget struct {
	addr       string
	server     *http.Server
	frame      *Frame
	mu         sync.RWMutex
	webDir     string // Optional directory with static web assets
	dispatcher Dispatcher
	log        *slog.Logger
	started    bool
}

// WebOption configures a WebTarget.
type WebOption func(*WebTarget)

// WithWebDir sets the directory containing static web assets.
func WithWebDir(dir string) WebOption {
	return func(t *WebTarget) {
		t.webDir = dir
	}
}

// WithDispatcher sets where menu selections and control changes go.
// Without one the API is read-only.
func WithDispatcher(d Dispatcher) WebOption {
	return func(t *WebTarget) {
		t.dispatcher = d
	}
}

// WithWebLogger sets the target's logger.
func WithWebLogger(l *slog.Logger) WebOption {
	return func(t *WebTarget) {
		t.log = l
	}
}

// NewWebTarget creates a target that serves the gallery via HTTP.
func NewWebTarget(addr string, opts ...WebOption) (*WebTarget, error) {
	target := &WebTarget{
		addr: addr,
		log:  slog.Default(),
	}

	for _, opt := range opts {
		opt(target)
	}

	return target, nil
}

// Name implements Target.
func (t *WebTarget) Name() string {
	return fmt.Sprintf("WebTarget(%s)", t.addr)
}

// Update implements Target.
func (t *WebTarget) Update(ctx context.Context, f *Frame) error {
	t.mu.Lock()
	t.frame = f
	wasStarted := t.started
	t.mu.Unlock()

	// Auto-start server on first update
	if !wasStarted {
		return t.start()
	}
	return nil
}

// Frame returns the most recent frame.
func (t *WebTarget) Frame() *Frame {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frame
}

// Handler returns the HTTP handler for embedding in existing servers.
func (t *WebTarget) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/gallery", t.handleGallery)
	mux.HandleFunc("POST /api/select", t.handleSelect)
	mux.HandleFunc("POST /api/control", t.handleControl)
	mux.HandleFunc("GET /frame.svg", t.handleFrame(FormatSVG))
	mux.HandleFunc("GET /frame.png", t.handleFrame(FormatPNG))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if t.webDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(t.webDir)))
	} else {
		mux.HandleFunc("GET /{$}", t.handleIndex)
	}

	return mux
}

func (t *WebTarget) handleGallery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(FrameToJSON(t.Frame()))
}

func (t *WebTarget) handleSelect(w http.ResponseWriter, r *http.Request) {
	if t.dispatcher == nil {
		http.Error(w, "gallery is read-only", http.StatusMethodNotAllowed)
		return
	}
	id := r.FormValue("id")
	if !t.dispatcher.Select(id) {
		http.Error(w, fmt.Sprintf("no visual %q", id), http.StatusNotFound)
		return
	}
	t.log.Debug("web select", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (t *WebTarget) handleControl(w http.ResponseWriter, r *http.Request) {
	if t.dispatcher == nil {
		http.Error(w, "gallery is read-only", http.StatusMethodNotAllowed)
		return
	}
	name, value := r.FormValue("name"), r.FormValue("value")
	if err := t.dispatcher.SetControl(name, value); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrUnknownControl) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	t.log.Debug("web control", "name", name, "value", value)
	w.WriteHeader(http.StatusNoContent)
}

func (t *WebTarget) handleFrame(format Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := t.Frame()
		if f == nil {
			http.Error(w, "no frame yet", http.StatusServiceUnavailable)
			return
		}
		data, err := EncodeFrame(f, format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		w.Write(data)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>nimsforestgallery</title>
    <style>
        body { font-family: system-ui; margin: 0; display: flex; }
        nav { width: 220px; background: #222; color: #eee; min-height: 100vh; }
        nav button { display: block; width: 100%; padding: .8rem 1rem; border: 0; background: none; color: inherit; text-align: left; cursor: pointer; }
        nav button:hover, nav button.selected { background: #444; }
        main { position: relative; }
        .control { position: absolute; }
    </style>
</head>
<body>
    <nav>
    {{- range .Menu}}
        <button class="{{if .Selected}}selected{{end}}" onclick="post('/api/select', {id: '{{.ID}}'})">{{.Name}}</button>
    {{- end}}
    </nav>
    <main style="width: {{.Width}}px; height: {{.Height}}px">
        <img id="frame" src="/frame.svg" width="{{.Width}}" height="{{.Height}}">
    {{- range .Controls}}
        <div class="control" style="left: {{.X}}px; top: {{.Y}}px">
        {{- if eq .Kind "slider"}}
            <input type="range" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}" onchange="post('/api/control', {name: '{{.Name}}', value: this.value})">
        {{- else}}
            <select onchange="post('/api/control', {name: '{{.Name}}', value: this.value})">
            {{- $v := .Value}}
            {{- range .Options}}
                <option{{if eq . $v}} selected{{end}}>{{.}}</option>
            {{- end}}
            </select>
        {{- end}}
        </div>
    {{- end}}
    </main>
    <script>
        function post(url, params) {
            fetch(url, {method: 'POST', body: new URLSearchParams(params)}).then(() => location.reload());
        }
        setInterval(() => { document.getElementById('frame').src = '/frame.svg?t=' + Date.now(); }, 250);
    </script>
</body>
</html>`))

func (t *WebTarget) handleIndex(w http.ResponseWriter, r *http.Request) {
	f := t.Frame()
	if f == nil {
		f = &Frame{Width: DefaultWidth, Height: DefaultHeight}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, f); err != nil {
		t.log.Error("render index", "err", err)
	}
}

func (t *WebTarget) start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	ln, err := net.Listen("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", t.addr, err)
	}
	t.server = &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.log.Error("web server stopped", "addr", t.addr, "err", err)
		}
	}()

	t.started = true
	return nil
}

// Close implements Target.
func (t *WebTarget) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.server != nil {
		return t.server.Shutdown(context.Background())
	}
	return nil
}

// URL returns the URL where the web target is serving.
func (t *WebTarget) URL() string {
	return "http://localhost" + t.addr
}
