package marker

// DryRun records the paths that would be marked without running any
// attribute command. It drives the exact same control flow as a real Marker,
// which is what makes dry-run output trustworthy.
type DryRun struct {
	wouldSet []string
}

// NewDryRun creates a Marker that never touches the filesystem.
func NewDryRun() *DryRun {
	return &DryRun{}
}

// Get reports every directory as not ignored.
func (d *DryRun) Get(path string) (bool, error) {
	return false, nil
}

// Set records the path and succeeds.
func (d *DryRun) Set(path string) error {
	d.wouldSet = append(d.wouldSet, path)
	return nil
}

// WouldSet returns the paths recorded so far, in call order.
func (d *DryRun) WouldSet() []string {
	return d.wouldSet
}
