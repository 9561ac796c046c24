package ui

// NoticeKind selects the styling of a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-line message shown above a panel's result.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Panel is the render state of one input panel.
type Panel struct {
	ID     string
	Title  string
	Label  string
	Action string
	Topic  string
	Notice *Notice
	Result string
}

type page struct {
	Title  string
	Panels []Panel
}

type panelSpec struct {
	id      string
	title   string
	label   string
	success string
	path    func(*UI) string
}

var (
	essaySpec = panelSpec{
		id:      "essay",
		title:   "Essay",
		label:   "Enter an essay topic",
		success: "Essay generated.",
		path:    func(u *UI) string { return u.paths.Essay },
	}
	poemSpec = panelSpec{
		id:      "poem",
		title:   "Poem",
		label:   "Enter a poem topic",
		success: "Poem generated.",
		path:    func(u *UI) string { return u.paths.Poem },
	}
)

func (s panelSpec) empty() Panel {
	return Panel{ID: s.id, Title: s.title, Label: s.label, Action: "/" + s.id}
}
