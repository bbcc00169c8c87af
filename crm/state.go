package crm

import "log"

// State is a pipeline step. Pull and push share the login prefix.
type State int

const (
	StateLoggedOut State = iota
	StateLoggingIn
	StateNavigatingToEdit
	StateValidatingExistence
	StateExtractingFields
	StateResolvingRelatedEntities
	StateMigratingMedia
	StateNavigatingToCreate
	StateFillingFields
	StateUploadingMedia
	StateSubmitting
	StateVerifyingResult
	StateDone
	StateNotFound
	StateFailed
)

var stateNames = map[State]string{
	StateLoggedOut:                "LoggedOut",
	StateLoggingIn:                "LoggingIn",
	StateNavigatingToEdit:         "NavigatingToEdit",
	StateValidatingExistence:      "ValidatingExistence",
	StateExtractingFields:         "ExtractingFields",
	StateResolvingRelatedEntities: "ResolvingRelatedEntities",
	StateMigratingMedia:           "MigratingMedia",
	StateNavigatingToCreate:       "NavigatingToCreate",
	StateFillingFields:            "FillingFields",
	StateUploadingMedia:           "UploadingMedia",
	StateSubmitting:               "Submitting",
	StateVerifyingResult:          "VerifyingResult",
	StateDone:                     "Done",
	StateNotFound:                 "NotFound",
	StateFailed:                   "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateNotFound || s == StateFailed
}

type tracker struct {
	prefix string
	state  State
}

func newTracker(prefix string) *tracker {
	return &tracker{prefix: prefix, state: StateLoggedOut}
}

func (t *tracker) enter(s State) {
	log.Printf("[%s] %s -> %s", t.prefix, t.state, s)
	t.state = s
}

// fail moves to NotFound or Failed depending on err and returns err.
func (t *tracker) fail(err error) error {
	if IsNotFound(err) {
		t.enter(StateNotFound)
	} else {
		t.enter(StateFailed)
	}
	return err
}
