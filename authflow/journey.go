package authflow

// Step is the position inside a multi-step journey. All three journeys
// (signup, forgot-password, pin-reset) share the same shape: collect the
// identity data, prove email ownership, finalize with one atomic call.
type Step int

const (
	StepCollectIdentity Step = iota
	StepAwaitOTP
	StepFinalize
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepCollectIdentity:
		return "collect_identity"
	case StepAwaitOTP:
		return "await_otp"
	case StepFinalize:
		return "finalize"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// guardStep compares the journey's derived step against the step a screen
// requires. A shortfall redirects to the journey's first screen; corrupt
// state gets its own notice so support can tell the cases apart.
func guardStep(current Step, required Step, corrupt bool, startRoute string) Redirect {
	if corrupt {
		return Redirect{Route: startRoute, Notice: NoticeSessionError}
	}
	if current < required {
		return Redirect{Route: startRoute, Notice: NoticeSessionExpired}
	}
	return Redirect{}
}
