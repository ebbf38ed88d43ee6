// pkg/settings/host.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/towerview3d/towerview/pkg/camera"
	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/util"
)

// HostViewportSettings is the viewports sub-document of the shared
// host-level settings record.
type HostViewportSettings struct {
	AirportConfigs  map[string]*camera.AirportConfig
	OrbitSettings   camera.OrbitSettings
	LastAirportICAO string
}

// HostSettings is the full shared settings record.  Other sub-documents
// exist on the host side; this core reads and writes only the viewports
// one and round-trips the rest untouched.
type HostSettings struct {
	Viewports *HostViewportSettings
	Rest      map[string]json.RawMessage `json:"-"`
}

func (h HostSettings) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(h.Rest)+1)
	for k, v := range h.Rest {
		m[k] = v
	}
	if h.Viewports != nil {
		b, err := json.Marshal(h.Viewports)
		if err != nil {
			return nil, err
		}
		m["Viewports"] = b
	}
	return json.Marshal(m)
}

func (h *HostSettings) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if raw, ok := m["Viewports"]; ok {
		h.Viewports = &HostViewportSettings{}
		if err := json.Unmarshal(raw, h.Viewports); err != nil {
			return err
		}
		delete(m, "Viewports")
	}
	h.Rest = m
	return nil
}

// HostStore abstracts the shared host-level settings transport:
// file-backed in standalone deployments, HTTP-backed when a shared host
// process owns the settings.
type HostStore interface {
	Read() (HostSettings, error)
	Write(HostSettings) error

	// Initialized reports whether the store is ready for reads/writes;
	// OnInitialized registers a callback for when it becomes ready (fired
	// immediately if it already is).
	Initialized() bool
	OnInitialized(fn func())
}

///////////////////////////////////////////////////////////////////////////
// file-backed host store

type FileHostStore struct {
	Path string
	lg   *log.Logger
}

func NewFileHostStore(path string, lg *log.Logger) *FileHostStore {
	return &FileHostStore{Path: path, lg: lg}
}

func (f *FileHostStore) Read() (HostSettings, error) {
	var hs HostSettings
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return hs, nil
		}
		return hs, err
	}
	if err := util.UnmarshalJSON(b, &hs); err != nil {
		// Per-record degradation: a corrupt shared settings file reads as
		// empty rather than wedging startup.
		f.lg.Errorf("%s: corrupt host settings: %v", f.Path, err)
		return HostSettings{}, nil
	}
	return hs, nil
}

func (f *FileHostStore) Write(hs HostSettings) error {
	b, err := json.MarshalIndent(hs, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

// A file store is always ready.
func (f *FileHostStore) Initialized() bool       { return true }
func (f *FileHostStore) OnInitialized(fn func()) { fn() }

///////////////////////////////////////////////////////////////////////////
// HTTP-backed host store

type HTTPHostStore struct {
	baseURL string
	client  *http.Client
	lg      *log.Logger

	mu          sync.Mutex
	initialized bool
	subs        []func()
}

func NewHTTPHostStore(baseURL string, lg *log.Logger) *HTTPHostStore {
	return &HTTPHostStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		lg:      lg,
	}
}

// Start polls the host until it responds, then reports the store
// initialized and fires the readiness callbacks.
func (h *HTTPHostStore) Start(ctx context.Context) {
	go func() {
		for {
			if _, err := h.Read(); err == nil {
				h.mu.Lock()
				h.initialized = true
				subs := h.subs
				h.subs = nil
				h.mu.Unlock()

				for _, fn := range subs {
					fn()
				}
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}()
}

func (h *HTTPHostStore) Read() (HostSettings, error) {
	var hs HostSettings

	resp, err := h.client.Get(h.baseURL + "/settings")
	if err != nil {
		return hs, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return hs, fmt.Errorf("%s: %s", h.baseURL, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return hs, err
	}
	return hs, util.UnmarshalJSON(b, &hs)
}

func (h *HTTPHostStore) Write(hs HostSettings) error {
	b, err := json.Marshal(hs)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, h.baseURL+"/settings", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%s: %s", h.baseURL, resp.Status)
	}
	return nil
}

func (h *HTTPHostStore) Initialized() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.initialized
}

func (h *HTTPHostStore) OnInitialized(fn func()) {
	h.mu.Lock()
	if h.initialized {
		h.mu.Unlock()
		fn()
		return
	}
	h.subs = append(h.subs, fn)
	h.mu.Unlock()
}
