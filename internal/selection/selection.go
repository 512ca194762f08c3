// Package selection turns an invocation's selected paths into the ordered,
// deduplicated list of image files a batch operates on.
package selection

import "github.com/JaimeStill/image-forge/internal/formats"

// Request carries the selection supplied by the invoking surface.
// Paths, when non-empty, is the full selection and Primary is ignored.
// Active is the environment's currently active file, used only when
// neither Paths nor Primary is set.
type Request struct {
	Primary string   `json:"primary,omitempty"`
	Paths   []string `json:"paths,omitempty"`
	Active  string   `json:"active,omitempty"`
}

// Candidates returns the raw paths the request selects, before resolution.
func (r Request) Candidates() []string {
	switch {
	case len(r.Paths) > 0:
		return r.Paths
	case r.Primary != "":
		return []string{r.Primary}
	case r.Active != "":
		return []string{r.Active}
	default:
		return nil
	}
}

// Resolve returns the readable image files selected by req in order of first
// occurrence. It never fails: an empty result means nothing usable was
// selected and the caller should warn and abort.
func Resolve(req Request, classifier *formats.Classifier) []formats.File {
	candidates := req.Candidates()

	seen := make(map[string]bool, len(candidates))
	files := make([]formats.File, 0, len(candidates))

	for _, p := range candidates {
		if p == "" {
			continue
		}

		f := formats.NewFile(p)
		if seen[f.Path()] {
			continue
		}
		seen[f.Path()] = true

		if !classifier.IsReadableImage(f.Path()) {
			continue
		}
		files = append(files, f)
	}

	return files
}

// Paths returns the absolute paths of files.
func Paths(files []formats.File) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path()
	}
	return paths
}
