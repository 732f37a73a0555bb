package diff

import (
	"errors"
	"strings"
)

// Script is an ordered edit script. Concatenating the Retain and Delete op
// texts in order reconstructs the source string, concatenating the Retain and
// Insert op texts in order reconstructs the target string.
type Script []Op

// SourceText reconstructs the source string covered by the script.
func (s Script) SourceText() string {
	var sb strings.Builder
	for _, op := range s {
		if op.Kind == Retain || op.Kind == Delete {
			sb.WriteString(op.Text)
		}
	}
	return sb.String()
}

// TargetText reconstructs the target string covered by the script.
func (s Script) TargetText() string {
	var sb strings.Builder
	for _, op := range s {
		if op.Kind == Retain || op.Kind == Insert {
			sb.WriteString(op.Text)
		}
	}
	return sb.String()
}

// HasChanges reports whether the script contains any Insert or Delete op.
func (s Script) HasChanges() bool {
	for _, op := range s {
		if op.Kind != Retain {
			return true
		}
	}
	return false
}

// Mutations counts the atomic buffer mutations a replay of this script will
// issue: one per deletion span and one per typed unit of every insertion.
func (s Script) Mutations() int {
	var n = 0
	for _, op := range s {
		switch op.Kind {
		case Delete:
			n++
		case Insert:
			n += len(Units(op.Text))
		}
	}
	return n
}

// Check validates the partition invariant against the strings the script was
// computed from.
func (s Script) Check(source string, target string) error {
	if got := s.SourceText(); got != source {
		return errors.New("script does not partition the source string")
	}
	if got := s.TargetText(); got != target {
		return errors.New("script does not partition the target string")
	}
	for _, op := range s {
		if op.Text == "" {
			return errors.New("script contains an empty op")
		}
	}
	return nil
}
