package messages

import "github.com/kraigochieng/4th-year-project/internal/api"

// View transition messages.
type (
	NavigateMsg     struct{ Path string }
	RouteChangedMsg struct{ From, To string }
	GoBackMsg       struct{}
)

// Data messages.
type (
	LoginResultMsg struct {
		Username string
		Err      error
	}

	SignupResultMsg struct {
		Username string
		Err      error
	}

	UserLoadedMsg struct {
		User *api.User
		Err  error
	}

	RefreshResultMsg struct {
		Err error
	}

	// KeepaliveMsg reports a background freshness check.
	KeepaliveMsg struct {
		LoggedIn bool
		Err      error
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)
