package authflow

// Route constants for the screens the journeys move between. The rendering
// layer maps these onto whatever navigation it uses; the controller only
// ever hands them out inside Redirect values.
const (
	RouteLogin          = "/login"
	RouteDashboard      = "/dashboard"
	RoutePinVerifyLogin = "/pin-verify-login"

	RouteSignup          = "/signup"
	RouteSignupVerifyOTP = "/signup/verify-otp"
	RouteSignupCreatePIN = "/signup/create-pin"

	RouteForgotPassword    = "/forgot-password"
	RouteForgotPasswordOTP = "/forgot-password/verify-otp"
	RouteResetPassword     = "/forgot-password/new-password"

	RoutePinReset    = "/pin-reset"
	RoutePinResetOTP = "/pin-reset/verify-otp"
	RoutePinResetNew = "/pin-reset/new-pin"
)

// User-visible notices. Backend `detail` strings take precedence where
// present; these cover the local failure classes.
const (
	NoticeSessionExpired     = "Session Expired"
	NoticeSessionError       = "Session Error"
	NoticeVerificationFailed = "Verification Failed"
	NoticeResendFailed       = "Resend Failed"
	NoticeAccountCreated     = "Account created. Please sign in."
	NoticePasswordUpdated    = "Password updated. Please sign in."
	NoticePINUpdated         = "PIN updated. Please sign in."
	NoticeConnectivity       = "Unable to reach the server. Please try again."
)

// Redirect tells the rendering layer where to navigate next and what notice
// to show there. The zero value means "stay on the current screen".
type Redirect struct {
	Route  string
	Notice string
}

// IsZero reports whether the redirect asks for no navigation
func (r Redirect) IsZero() bool {
	return r.Route == "" && r.Notice == ""
}
