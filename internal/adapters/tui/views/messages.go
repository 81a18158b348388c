package views

import "jsonbrowse/internal/domain"

// NavigateMsg asks the app to move the location to Fragment
type NavigateMsg struct {
	Fragment string
}

// BackMsg and ForwardMsg walk the location history
type BackMsg struct{}

type ForwardMsg struct{}

// QueryChangedMsg carries the raw search input after every edit
type QueryChangedMsg struct {
	Query string
}

// ReloadMsg re-renders the current location
type ReloadMsg struct{}

// CopyFragmentMsg copies the current fragment to the clipboard
type CopyFragmentMsg struct{}

// OpenRemoteMsg opens the remote JSON behind the current page in a browser
type OpenRemoteMsg struct{}

// CreateUserMsg submits the new user form
type CreateUserMsg struct {
	Name  string
	Email string
}

// CreateTodoMsg submits the new todo form of a local user
type CreateTodoMsg struct {
	UserID int64
	Title  string
}

// ConfirmDeleteMsg opens the delete confirmation for a local user
type ConfirmDeleteMsg struct {
	User domain.User
}

// DeleteUserMsg is sent once a delete has been confirmed
type DeleteUserMsg struct {
	UserID int64
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToGotoMsg struct{}

type SwitchToPageMsg struct{}
