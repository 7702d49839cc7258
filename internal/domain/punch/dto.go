package punch

// ImportResult summarizes one batch upload.
type ImportResult struct {
	Files      int `json:"files"`
	Lines      int `json:"lines"`
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
}
