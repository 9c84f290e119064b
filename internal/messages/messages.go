package messages

// LaunchedMsg is sent by the drawer after an app was started successfully.
type LaunchedMsg struct {
	ID   string
	Name string
}
