// Package offline serves the service worker that lets the browser show the
// recipe cards without a network connection.
package offline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ScriptPath is where the worker script is served. Its scope is the site root.
const ScriptPath = "/sw.js"

var workerTemplate = template.Must(template.New("sw").Parse(`const CACHE_NAME = {{.CacheName}};
const PRECACHE_URLS = {{.URLs}};

self.addEventListener('install', (event) => {
  event.waitUntil(
    caches.open(CACHE_NAME).then((cache) => cache.addAll(PRECACHE_URLS))
  );
});

self.addEventListener('activate', (event) => {
  event.waitUntil(
    caches.keys().then((names) => Promise.all(
      names.filter((name) => name !== CACHE_NAME).map((name) => caches.delete(name))
    )).then(() => self.clients.claim())
  );
});

self.addEventListener('fetch', (event) => {
  if (event.request.method !== 'GET') {
    return;
  }
  event.respondWith(
    caches.open(CACHE_NAME).then((cache) =>
      cache.match(event.request).then((cached) => {
        if (cached) {
          return cached;
        }
        return fetch(event.request).then((response) => {
          if (response.ok) {
            cache.put(event.request, response.clone());
          }
          return response;
        });
      })
    )
  );
});
`))

// Agent renders the worker script once and serves it.
type Agent struct {
	version string
	script  []byte
}

// New builds the worker for the given precache URLs. The cache name carries
// a per-process version so a restart invalidates older caches.
func New(precache []string) (*Agent, error) {
	version := uuid.NewString()

	name, err := json.Marshal("recipes-" + version)
	if err != nil {
		return nil, err
	}
	urls, err := json.Marshal(precache)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = workerTemplate.Execute(&buf, struct {
		CacheName string
		URLs      string
	}{string(name), string(urls)})
	if err != nil {
		return nil, fmt.Errorf("render service worker: %w", err)
	}
	return &Agent{version: version, script: buf.Bytes()}, nil
}

// Version identifies the cache generation.
func (a *Agent) Version() string { return a.version }

func (a *Agent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Service-Worker-Allowed", "/")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(a.script)
}

// Register mounts the worker script on the router. Failures are logged and
// otherwise ignored.
func Register(r *mux.Router, precache []string) {
	agent, err := New(precache)
	if err != nil {
		log.WithError(err).Error("service worker registration failed")
		return
	}
	r.Handle(ScriptPath, agent).Methods(http.MethodGet)
	log.WithFields(log.Fields{"path": ScriptPath, "scope": "/", "version": agent.Version()}).
		Info("service worker registered")
}

// RegistrationScript is the browser-side snippet that registers the worker
// when the platform supports it.
const RegistrationScript = `if ('serviceWorker' in navigator) {
  window.addEventListener('load', () => {
    navigator.serviceWorker.register('` + ScriptPath + `')
      .then((registration) => {
        console.log('Service Worker registered with scope:', registration.scope);
      })
      .catch((error) => {
        console.error('Service Worker registration failed:', error);
      });
  });
}`
