// pkg/settings/legacy.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/towerview3d/towerview/pkg/camera"
	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/util"
)

// legacyCameraRecord is the persisted format of the old single-viewport
// camera store, kept only for the one-time bookmark migration.  It lived
// in its own namespaced file next to the current record.
type legacyCameraRecord struct {
	Airports map[string]struct {
		Bookmarks map[int]*camera.Bookmark
	}
}

func legacyFilePath(dir string, lg *log.Logger) string {
	return filepath.Join(filepath.Dir(configFilePath(dir, lg)), "camera.json")
}

// migrateLegacyBookmarks folds bookmarks from the legacy camera store
// into the per-airport bookmark maps, never overwriting bookmarks already
// present at the destination slot.  Malformed records are skipped
// per-record; the migration marker is set regardless so a corrupt legacy
// file can't cause an infinite retry.
func migrateLegacyBookmarks(ls *LocalState, store *camera.Store, dir string, lg *log.Logger) {
	if ls.LegacyBookmarksMigrated {
		return
	}
	ls.LegacyBookmarksMigrated = true

	fn := legacyFilePath(dir, lg)
	b, err := os.ReadFile(fn)
	if err != nil {
		return // nothing to migrate
	}

	var legacy legacyCameraRecord
	if err := util.UnmarshalJSON(b, &legacy); err != nil {
		lg.Warnf("%s: skipping corrupt legacy camera record: %v", fn, err)
		return
	}

	for icao, rec := range legacy.Airports {
		if icao == "" || len(rec.Bookmarks) == 0 {
			continue
		}
		store.MergeLegacyBookmarks(strings.ToUpper(icao), rec.Bookmarks)
	}
	lg.Infof("migrated legacy camera bookmarks for %d airports", len(legacy.Airports))
}
