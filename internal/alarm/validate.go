package alarm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// NameCharacterLimit is the maximum accepted alarm name length.
const NameCharacterLimit = 30

// Validation failure variants. Callers match with errors.Is.
var (
	// ErrIllegalCharacter means the name contains a character outside [A-Za-z0-9 ]
	ErrIllegalCharacter = errors.New("name contains an illegal character")
	// ErrOnlyWhitespace means the name is non-empty but trims to empty
	ErrOnlyWhitespace = errors.New("name contains only whitespace")
	// ErrCharacterLimit means the name exceeds NameCharacterLimit
	ErrCharacterLimit = errors.New("name exceeds the character limit")
	// ErrNotSetInFuture means the alarm time is not strictly in the future
	ErrNotSetInFuture = errors.New("alarm time is not set in the future")
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)

// ValidateNameContent checks the name for illegal characters and
// whitespace-only content. Empty names are valid.
func ValidateNameContent(name string) error {
	if !namePattern.MatchString(name) {
		return ErrIllegalCharacter
	}
	if name != "" && strings.TrimSpace(name) == "" {
		return ErrOnlyWhitespace
	}
	return nil
}

// ValidateNameLength checks the name against NameCharacterLimit.
func ValidateNameLength(name string) error {
	if len(name) > NameCharacterLimit {
		return fmt.Errorf("%w: %d characters (max %d)", ErrCharacterLimit, len(name), NameCharacterLimit)
	}
	return nil
}

// ValidateName runs the content and length checks as a single pass.
// The content verdict takes precedence when both would fail.
func ValidateName(name string) error {
	if err := ValidateNameContent(name); err != nil {
		return err
	}
	return ValidateNameLength(name)
}

// ValidateDateTime checks that at is strictly after now. Both sides are
// truncated to seconds first, matching stored alarm precision, so
// sub-second skew between user input and validation time cannot reject
// an otherwise valid instant.
func ValidateDateTime(at, now time.Time) error {
	if !at.Truncate(time.Second).After(now.Truncate(time.Second)) {
		return ErrNotSetInFuture
	}
	return nil
}
