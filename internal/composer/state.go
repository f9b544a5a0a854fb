package composer

import "errors"

// ErrPublishInFlight refuses a second submission while one is running.
var ErrPublishInFlight = errors.New("publish already in progress")

// State is the serializable compose record: the draft fields plus the busy
// flag and last error. It changes only through the transitions below.
type State struct {
	Text       string `json:"text"`
	ImageRef   string `json:"image_ref,omitempty"`
	FileRef    string `json:"file_ref,omitempty"`
	Publishing bool   `json:"publishing"`
	Error      string `json:"error,omitempty"`
}

func (s *State) SetText(text string) {
	s.Text = text
	s.Error = ""
}

func (s *State) AttachImage(ref string) {
	s.ImageRef = ref
}

func (s *State) AttachFile(ref string) {
	s.FileRef = ref
}

func (s *State) BeginPublish() error {
	if s.Publishing {
		return ErrPublishInFlight
	}
	s.Publishing = true
	s.Error = ""
	return nil
}

// PublishSucceeded clears the draft for the next entry.
func (s *State) PublishSucceeded() {
	*s = State{}
}

// PublishFailed keeps the draft so the user can retry.
func (s *State) PublishFailed(msg string) {
	s.Publishing = false
	s.Error = msg
}
