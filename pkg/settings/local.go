// pkg/settings/local.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package settings

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/towerview3d/towerview/pkg/camera"
	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/util"
)

const currentVersion = 3

// LocalState is the single record persisted on the local device.  Only
// the per-airport configs, the current airport and the orbit settings are
// stored; live viewports are runtime-only and reconstructed from the
// per-airport config on load.
type LocalState struct {
	Version int

	AirportConfigs map[string]*camera.AirportConfig
	CurrentAirport string
	Orbit          camera.OrbitSettings

	// One-time migration markers; once set the migrations never rerun,
	// even if they partially failed.
	LegacyBookmarksMigrated bool
	HostPushCompleted       bool
}

func configFilePath(dir string, lg *log.Logger) string {
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			lg.Errorf("Unable to find user config dir: %v", err)
			dir = "."
		}
		dir = filepath.Join(dir, "TowerView")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		lg.Errorf("%s: unable to make directory for config file: %v", dir, err)
	}

	return filepath.Join(dir, "viewports.json")
}

func (ls *LocalState) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(ls)
}

// LoadLocalState reads the persisted record, applying version migrations;
// a missing or corrupt file yields a fresh default state rather than an
// error.
func LoadLocalState(dir string, lg *log.Logger) *LocalState {
	fn := configFilePath(dir, lg)
	lg.Infof("Loading viewport state from: %s", fn)

	ls := &LocalState{
		Version:        currentVersion,
		AirportConfigs: make(map[string]*camera.AirportConfig),
		Orbit:          camera.DefaultOrbitSettings(),
	}

	b, err := os.ReadFile(fn)
	if err != nil {
		return ls
	}

	if err := util.UnmarshalJSON(b, ls); err != nil {
		lg.Errorf("%s: viewport state file is corrupt: %v", fn, err)
		return &LocalState{
			Version:        currentVersion,
			AirportConfigs: make(map[string]*camera.AirportConfig),
			Orbit:          camera.DefaultOrbitSettings(),
		}
	}

	if ls.Version < 2 {
		// v1 stored airport keys in mixed case.
		configs := make(map[string]*camera.AirportConfig)
		for icao, cfg := range ls.AirportConfigs {
			configs[strings.ToUpper(icao)] = cfg
		}
		ls.AirportConfigs = configs
		ls.CurrentAirport = strings.ToUpper(ls.CurrentAirport)
		ls.Version = 2
	}
	if ls.Version < 3 {
		// v2 predates the orbit settings record.
		if ls.Orbit.Distance == 0 {
			ls.Orbit = camera.DefaultOrbitSettings()
		}
		ls.Version = 3
	}

	if ls.AirportConfigs == nil {
		ls.AirportConfigs = make(map[string]*camera.AirportConfig)
	}
	return ls
}

// Save writes the record, skipping the write when the encoded state
// matches what is already on disk.
func (ls *LocalState) Save(dir string, lg *log.Logger) error {
	fn := configFilePath(dir, lg)

	var b strings.Builder
	if err := ls.Encode(&b); err != nil {
		lg.Errorf("%s: unable to encode viewport state: %v", fn, err)
		return err
	}

	if onDisk, err := os.ReadFile(fn); err == nil && b.String() == string(onDisk) {
		return nil
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.WriteString(f, b.String())
	return err
}
