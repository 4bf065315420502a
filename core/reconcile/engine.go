package reconcile

import (
	"path/filepath"
	"sort"

	"library-doctor/core/scanner"

	"github.com/spf13/afero"
)

// Engine runs the reconciliation checks against a filesystem.
// It holds no state between runs and is safe for concurrent use.
type Engine struct {
	fs         afero.Fs
	extensions scanner.Extensions
}

// NewEngine creates an engine. A nil extension set falls back to the defaults.
func NewEngine(fs afero.Fs, extensions scanner.Extensions) *Engine {
	if extensions == nil {
		extensions = scanner.NewExtensions()
	}
	return &Engine{fs: fs, extensions: extensions}
}

// Run lists dir and reconciles the source against it.
// An unreadable directory behaves like an empty one.
func (e *Engine) Run(src Source, dir string) *Report {
	return e.Reconcile(src, scanner.List(e.fs, dir, e.extensions))
}

// Reconcile runs all checks against an already computed directory listing.
// Entries with unsupported extensions are ignored.
func (e *Engine) Reconcile(src Source, listing []string) *Report {
	report := NewReport()
	tracks := src.Tracks()
	files := e.normalizeListing(listing)

	resolved := resolveTracks(tracks)

	e.checkPaths(report, resolved)
	checkNotImported(report, resolved, files)
	checkDuplicates(report, resolved, files)
	checkRelocated(report)

	report.Summary = summarize(report, len(tracks), len(resolved))
	return report
}

// resolvedTrack pairs a track with its filesystem path.
type resolvedTrack struct {
	TrackLocation
	path string
}

// resolveTracks drops tracks whose location cannot be resolved.
func resolveTracks(tracks []TrackLocation) []resolvedTrack {
	resolved := make([]resolvedTrack, 0, len(tracks))
	for _, t := range tracks {
		path, ok := ResolveLocation(t.Location)
		if !ok {
			continue
		}
		resolved = append(resolved, resolvedTrack{TrackLocation: t, path: path})
	}
	return resolved
}

// normalizeListing filters unsupported files, cleans paths and removes duplicates.
func (e *Engine) normalizeListing(listing []string) []string {
	seen := make(map[string]struct{}, len(listing))
	files := make([]string, 0, len(listing))
	for _, p := range listing {
		if !e.extensions.Match(filepath.Base(p)) {
			continue
		}
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	sort.Strings(files)
	return files
}

// checkPaths records tracks whose resolved file does not exist.
func (e *Engine) checkPaths(report *Report, resolved []resolvedTrack) {
	for _, t := range resolved {
		if _, err := e.fs.Stat(t.path); err == nil {
			continue
		}
		report.Missing = append(report.Missing, MissingTrack{
			TrackID:  t.TrackID,
			Name:     t.Name,
			Location: t.Location,
			Path:     t.path,
		})
	}
}

// checkNotImported computes the listing minus every resolved track path.
func checkNotImported(report *Report, resolved []resolvedTrack, files []string) {
	referenced := make(map[string]struct{}, len(resolved))
	for _, t := range resolved {
		referenced[t.path] = struct{}{}
	}

	for _, f := range files {
		if _, ok := referenced[f]; ok {
			continue
		}
		report.NotImported = append(report.NotImported, f)
	}
}

// checkDuplicates groups listed files sharing a track's file name under the track's path.
func checkDuplicates(report *Report, resolved []resolvedTrack, files []string) {
	visited := make(map[string]struct{}, len(resolved))
	for _, t := range resolved {
		if _, ok := visited[t.path]; ok {
			continue
		}
		visited[t.path] = struct{}{}

		name := filepath.Base(t.path)
		for _, f := range files {
			if f == t.path || filepath.Base(f) != name {
				continue
			}
			report.Duplicates[t.path] = append(report.Duplicates[t.path], f)
		}
	}
}

// checkRelocated matches missing file names against not-imported file names.
// It must run after checkPaths and checkNotImported.
func checkRelocated(report *Report) {
	for _, m := range report.Missing {
		name := filepath.Base(m.Path)
		for _, candidate := range report.NotImported {
			if filepath.Base(candidate) != name {
				continue
			}
			group, ok := report.Relocated[name]
			if !ok {
				group = &RelocationGroup{}
				report.Relocated[name] = group
			}
			group.addCandidate(candidate)
			group.addTrack(m.TrackID)
		}
	}

	for _, group := range report.Relocated {
		if len(group.Candidates) == 1 {
			group.Status = RelocationUnique
			group.SuggestedLocation = SuggestLocation(group.Candidates[0])
		} else {
			group.Status = RelocationAmbiguous
		}
	}
}

func (g *RelocationGroup) addCandidate(path string) {
	for _, c := range g.Candidates {
		if c == path {
			return
		}
	}
	g.Candidates = append(g.Candidates, path)
}

func (g *RelocationGroup) addTrack(id string) {
	for _, existing := range g.TrackIDs {
		if existing == id {
			return
		}
	}
	g.TrackIDs = append(g.TrackIDs, id)
}

func summarize(report *Report, total, resolved int) Summary {
	s := Summary{
		TotalTracks:  total,
		Missing:      len(report.Missing),
		Unresolvable: total - resolved,
		NotImported:  len(report.NotImported),
		Duplicates:   len(report.Duplicates),
	}
	s.OK = resolved - s.Missing

	for _, group := range report.Relocated {
		switch group.Status {
		case RelocationUnique:
			s.RelocatableUnique++
		case RelocationAmbiguous:
			s.RelocatableAmbiguous++
		}
	}
	return s
}
