package domain

// Result is the outcome of one library entry.
type Result struct {
	Name       string
	Kind       MediaKind
	SourcePath string
	TargetPath string
	Taken      *CaptureTimestamp
	Err        error
}

func (r Result) Moved() bool {
	return r.Err == nil && r.TargetPath != ""
}

type Report struct {
	Results []Result
	Moved   int
	Invalid int
	Failed  int
	Ignored int
	DryRun  bool
}

// Add records r and updates the counters.
func (r *Report) Add(res Result) {
	switch {
	case res.Kind == Ignored:
		r.Ignored++
		return
	case res.Kind == Invalid:
		r.Invalid++
	case res.Err != nil:
		r.Failed++
	default:
		r.Moved++
	}
	r.Results = append(r.Results, res)
}

// Problems returns the invalid and failed results in listing order.
func (r Report) Problems() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
