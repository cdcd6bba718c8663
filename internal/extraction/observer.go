package extraction

// Pipeline stages that can fall back to a sentinel.
const (
	StageClassify   = "classify"
	StageCategorize = "categorize"
	StageSummarize  = "summarize"
	StageTable      = "table"
)

// Sources of a document.
const (
	SourceWeb       = "web"
	SourceImage     = "image"
	SourceAccessKey = "access_key"
)

// Outcomes reported per extraction.
const (
	OutcomeItems     = "items"
	OutcomeTable     = "table"
	OutcomeSummary   = "summary"
	OutcomeAccessKey = "access_key"
	OutcomeError     = "error"
)

// Observer is told about fallbacks and final outcomes.
type Observer interface {
	Fallback(stage string)
	Outcome(source, outcome string)
}

type nopObserver struct{}

func (nopObserver) Fallback(string)        {}
func (nopObserver) Outcome(string, string) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
