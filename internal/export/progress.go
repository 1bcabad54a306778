package export

// Stage is the orchestrator's pipeline position. Error is terminal and
// reachable from any stage.
type Stage string

const (
	StageInitializing Stage = "initializing"
	StageExtracting   Stage = "extracting"
	StageGenerating   Stage = "generating"
	StageDownloading  Stage = "downloading"
	StageComplete     Stage = "complete"
	StageError        Stage = "error"
)

// Progress is a staged progress report. Percent moves through fixed
// milestones (0, 20, 60, 90, 100); per-item progress is not reported.
type Progress struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Percent int    `json:"progress"`
}

// ProgressFunc receives staged progress reports during an export.
type ProgressFunc func(Progress)
