package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassContainer ChromeClass = "regform-container"
	ClassForm      ChromeClass = "regform-form"
	ClassField     ChromeClass = "regform-field"
	ClassInput     ChromeClass = "regform-input"
	ClassError     ChromeClass = "regform-error"
	ClassToggle    ChromeClass = "regform-toggle"
	ClassActions   ChromeClass = "regform-actions"
	ClassErrors    ChromeClass = "regform-errors"
	ClassSummary   ChromeClass = "regform-summary"
)

// InvalidClass is appended to an input's class list while its field is
// invalid.
const InvalidClass = "error"
