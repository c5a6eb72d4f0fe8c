package domain

// LoadOptions configures a corpus load.
type LoadOptions struct {
	// Root is the corpus directory walked recursively.
	Root string

	// Seed fixes the shuffle. Nil means a time-based seed.
	Seed *int64
}

// SkippedRecord describes an article file dropped by the loader.
type SkippedRecord struct {
	// Path is the file that failed to parse.
	Path string

	// Reason is the parse failure.
	Reason string
}

// LoadReport summarises a corpus load.
// Loaded always equals Files minus Skipped.
type LoadReport struct {
	// Files is the number of article files found.
	Files int

	// Loaded is the number of articles parsed successfully.
	Loaded int

	// Skipped is the number of malformed files dropped.
	Skipped int

	// Skips lists each dropped file.
	Skips []SkippedRecord
}

// AddSkip records a dropped file.
func (r *LoadReport) AddSkip(path string, err error) {
	r.Skipped++
	r.Skips = append(r.Skips, SkippedRecord{Path: path, Reason: err.Error()})
}
