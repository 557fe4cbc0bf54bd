package release

import (
	"errors"
	"fmt"
)

// ErrTagExists is wrapped by a TagError when the tag is already present
// after fetching remote tags.
var ErrTagExists = errors.New("tag already exists")

// PublishError is returned when the publish command exits non-zero.
type PublishError struct {
	Package string
	Command string

	// Output is the captured diagnostic: stderr, or stdout when stderr is empty.
	Output string
	Err    error
}

func (e *PublishError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("publishing %s failed: %s", e.Package, e.Output)
	}
	return fmt.Sprintf("publishing %s failed: %v", e.Package, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Steps reported by TagError.
const (
	StepCommit = "commit"
	StepFetch  = "fetch"
	StepCheck  = "check"
	StepCreate = "create"
	StepPush   = "push"
)

// TagError is returned when any git step after publishing fails.
type TagError struct {
	Tag  string
	Step string
	Err  error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("tag %s: %s failed: %v", e.Tag, e.Step, e.Err)
}

func (e *TagError) Unwrap() error {
	return e.Err
}
