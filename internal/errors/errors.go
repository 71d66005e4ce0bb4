package errors

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ComponentFailure records one component type that could not be produced.
type ComponentFailure struct {
	Component string    `json:"component" yaml:"component"`
	Message   string    `json:"message" yaml:"message"`
	Err       error     `json:"-" yaml:"-"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Error implements the error interface
func (cf *ComponentFailure) Error() string {
	return fmt.Sprintf("%s: %s", cf.Component, cf.Message)
}

// Unwrap returns the underlying error
func (cf *ComponentFailure) Unwrap() error {
	return cf.Err
}

// ErrorCollector collects per-component failures so a pass can keep going
// after one component fails.
type ErrorCollector struct {
	failures []ComponentFailure
	mutex    sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		failures: make([]ComponentFailure, 0),
	}
}

// Add records a failure for component. Nil errors are ignored.
func (ec *ErrorCollector) Add(component string, err error) {
	if err == nil {
		return
	}
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.failures = append(ec.failures, ComponentFailure{
		Component: component,
		Message:   err.Error(),
		Err:       err,
		Timestamp: time.Now(),
	})
}

// Failures returns the collected failures sorted by component name
func (ec *ErrorCollector) Failures() []ComponentFailure {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	result := make([]ComponentFailure, len(ec.failures))
	copy(result, ec.failures)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Component < result[j].Component
	})
	return result
}

// HasErrors returns true if there are any failures
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.failures) > 0
}

// Len returns the number of failures
func (ec *ErrorCollector) Len() int {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.failures)
}

// Clear clears all failures
func (ec *ErrorCollector) Clear() {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.failures = ec.failures[:0]
}

// Err folds the failures into one build error, or nil when none were recorded.
func (ec *ErrorCollector) Err() error {
	failures := ec.Failures()
	if len(failures) == 0 {
		return nil
	}

	names := make([]string, 0, len(failures))
	for _, f := range failures {
		names = append(names, f.Component)
	}

	return NewBuildError(
		ErrCodeRenderFailed,
		fmt.Sprintf("%d component(s) failed: %s", len(failures), strings.Join(names, ", ")),
		failures[0].Err,
	).WithContext("failed", names)
}
