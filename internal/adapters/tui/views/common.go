package views

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height, status messages and alerts.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
	Alert      string
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line message
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the status line message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// SetAlert shows a blocking alert until dismissed
func (s *ViewState) SetAlert(text string) {
	s.Alert = text
}

// DismissAlert hides the alert
func (s *ViewState) DismissAlert() {
	s.Alert = ""
}

// HasAlert reports whether an alert is showing
func (s *ViewState) HasAlert() bool {
	return s.Alert != ""
}

// SwitchToHelpMsg asks the app to show the help view
type SwitchToHelpMsg struct{}

// SwitchToSummaryMsg asks the app to go back to the summary view
type SwitchToSummaryMsg struct{}
