package auth

import (
	"fmt"
	"strings"
)

// Operation is one of the three auth operations
type Operation string

const (
	OpSignUp  Operation = "signup"
	OpLogin   Operation = "login"
	OpConfirm Operation = "confirm"
	// OpUnknown marks a request that matched no operation
	OpUnknown Operation = ""
)

// Source names where the discriminator was read from
type Source string

const (
	SourcePath   Source = "path"
	SourceAction Source = "action"
)

// Discriminator selects the operation a request targets
type Discriminator struct {
	Operation Operation
	Source    Source
}

// Known reports whether the discriminator matched an operation
func (d Discriminator) Known() bool {
	return d.Operation != OpUnknown
}

// Classifier derives the discriminator of a request
type Classifier interface {
	Classify(event Event, payload Payload) Discriminator
}

// NewClassifier returns the classifier for a routing mode ("path" or "action")
func NewClassifier(mode string) (Classifier, error) {
	switch Source(mode) {
	case SourcePath:
		return PathClassifier{}, nil
	case SourceAction:
		return ActionClassifier{}, nil
	default:
		return nil, fmt.Errorf("unknown routing mode %q", mode)
	}
}

// PathClassifier selects the operation from the suffix of the request path
type PathClassifier struct{}

var pathSuffixes = []struct {
	suffix string
	op     Operation
}{
	{"/signup", OpSignUp},
	{"/login", OpLogin},
	{"/confirm", OpConfirm},
}

// Classify implements Classifier
func (PathClassifier) Classify(event Event, _ Payload) Discriminator {
	path := requestPath(event)
	for _, s := range pathSuffixes {
		if strings.HasSuffix(path, s.suffix) {
			return Discriminator{Operation: s.op, Source: SourcePath}
		}
	}
	return Discriminator{Operation: OpUnknown, Source: SourcePath}
}

// ActionClassifier selects the operation from the payload "action" field.
// Only signup and login are reachable this way.
type ActionClassifier struct{}

// Classify implements Classifier
func (ActionClassifier) Classify(_ Event, payload Payload) Discriminator {
	switch Operation(payload.Get(FieldAction)) {
	case OpSignUp:
		return Discriminator{Operation: OpSignUp, Source: SourceAction}
	case OpLogin:
		return Discriminator{Operation: OpLogin, Source: SourceAction}
	}
	return Discriminator{Operation: OpUnknown, Source: SourceAction}
}
