package marker

// Stub is a Marker with fixed per-path outcomes. Use it in tests to drive
// check-mode partitions without running any command.
type Stub struct {
	// Values maps path → stored-value-is-"1". Paths absent from the map
	// report as not ignored.
	Values map[string]bool
	// GetErrs maps path → error returned from Get.
	GetErrs map[string]error
	// SetErrs maps path → error returned from Set.
	SetErrs map[string]error

	// SetCalls records every Set invocation in order.
	SetCalls []string
}

func (s *Stub) Get(path string) (bool, error) {
	if err := s.GetErrs[path]; err != nil {
		return false, err
	}
	return s.Values[path], nil
}

func (s *Stub) Set(path string) error {
	s.SetCalls = append(s.SetCalls, path)
	return s.SetErrs[path]
}
