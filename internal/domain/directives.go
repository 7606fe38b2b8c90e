package domain

// Directive is a pure value describing what a transport should present.
// The engine never performs I/O; it returns directives and the transport
// maps each one to a single outbound message.
type Directive interface {
	directive()
}

// ShowTopicList asks the transport to present the topic picker.
type ShowTopicList struct {
	Topics []Topic
}

// ShowQuestion presents one question with its four choices. Index is the
// zero-based cursor the transport must echo back in answer callbacks.
type ShowQuestion struct {
	Index   int
	Total   int
	Prompt  string
	Choices [4]Choice
}

// ShowFeedback echoes the judged question back to the user.
type ShowFeedback struct {
	Index       int
	Prompt      string
	Submitted   string
	Correct     string
	IsCorrect   bool
	Explanation string
}

// ShowResult closes a session with its summary.
type ShowResult struct {
	Summary Summary
}

// ShowError is a user-visible, recoverable error message.
type ShowError struct {
	Message string
}

// ReportToAdmin is a side-channel result report, never shown to the user.
type ReportToAdmin struct {
	DisplayName string
	TopicID     int64
	Correct     int
	Total       int
	WrongCount  int
}

func (ShowTopicList) directive() {}
func (ShowQuestion) directive()  {}
func (ShowFeedback) directive()  {}
func (ShowResult) directive()    {}
func (ShowError) directive()     {}
func (ReportToAdmin) directive() {}
