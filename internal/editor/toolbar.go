// Package editor models the markdown editor's formatting toolbar: which
// buttons it shows, their tooltips, and the callbacks they fire. It renders
// nothing itself.
package editor

import (
	"errors"
	"fmt"
)

// Action is the index passed to the option handler for a formatting button.
type Action int

const (
	ActionHeading Action = iota
	ActionBold
	ActionItalic
	ActionQuote
	ActionCode
	ActionLink
	ActionEmbed
	ActionUnorderedList
	ActionOrderedList
)

// Heading levels, passed as the sub index of ActionHeading.
const (
	HeadingH1 = iota
	HeadingH2
	HeadingH3
)

// UploadModeWrite is the mode the image button reports to the uploader.
const UploadModeWrite = "write"

// EditModeOption is the left-bar option under which the toolbar is shown.
const EditModeOption = 0

// MarkdownGuideURL is where the markdown shortcuts button points.
const MarkdownGuideURL = "https://daringfireball.net/projects/markdown/"

var (
	// ErrHidden means the toolbar is not shown for the current left option.
	ErrHidden = errors.New("toolbar hidden")

	// ErrUnknownAction means the action or heading level is out of range.
	ErrUnknownAction = errors.New("unknown toolbar action")
)

// Event is whatever the UI layer passes along with a click or file input.
type Event any

// OptionHandler receives formatting clicks; sub carries the heading level.
type OptionHandler func(event Event, action Action, sub ...int)

// ImageUploader receives file inputs from the image button.
type ImageUploader func(event Event, mode string)

// ButtonKind says how a button is wired.
type ButtonKind int

const (
	KindOption ButtonKind = iota
	KindUpload
	KindLink
)

// Button is one toolbar entry in display order.
type Button struct {
	Kind    ButtonKind
	Action  Action
	Tooltip string
	Href    string
}

var buttons = []Button{
	{Kind: KindOption, Action: ActionHeading, Tooltip: "Heading"},
	{Kind: KindOption, Action: ActionBold, Tooltip: "Bold text - Click here & put your cursor between stars"},
	{Kind: KindOption, Action: ActionItalic, Tooltip: "Italic text - Click here & put your cursor between stars"},
	{Kind: KindOption, Action: ActionQuote, Tooltip: "Block quote"},
	{Kind: KindOption, Action: ActionCode, Tooltip: "Code snippet - Click here & put your cursor between backtick"},
	{Kind: KindOption, Action: ActionLink, Tooltip: "Link"},
	{Kind: KindOption, Action: ActionEmbed, Tooltip: "Embed links"},
	{Kind: KindOption, Action: ActionUnorderedList, Tooltip: "Unordered list"},
	{Kind: KindOption, Action: ActionOrderedList, Tooltip: "Ordered list"},
	{Kind: KindUpload, Tooltip: "Upload an image"},
	{Kind: KindLink, Tooltip: "Markdown shortcuts", Href: MarkdownGuideURL},
}

var headingLabels = []string{"H1", "H2", "H3"}

// Toolbar holds the callbacks and the heading menu state. It is not safe for
// concurrent use; UI events arrive on one goroutine.
type Toolbar struct {
	OnOption   OptionHandler
	OnUpload   ImageUploader
	LeftOption int

	headingOpen bool
}

// New builds a toolbar for the given left-bar option.
func New(onOption OptionHandler, onUpload ImageUploader, leftOption int) *Toolbar {
	return &Toolbar{OnOption: onOption, OnUpload: onUpload, LeftOption: leftOption}
}

// Visible reports whether the toolbar is shown at all.
func (t *Toolbar) Visible() bool {
	return t.LeftOption == EditModeOption
}

// Buttons returns the entries in display order, or nil when hidden.
func (t *Toolbar) Buttons() []Button {
	if !t.Visible() {
		return nil
	}
	out := make([]Button, len(buttons))
	copy(out, buttons)
	return out
}

// HeadingMenu returns the heading labels while the menu is open.
func (t *Toolbar) HeadingMenu() []string {
	if !t.headingOpen {
		return nil
	}
	return append([]string(nil), headingLabels...)
}

// HeadingMenuOpen reports whether the heading levels are displayed.
func (t *Toolbar) HeadingMenuOpen() bool { return t.headingOpen }

// HeadingTooltipEnabled is false while the heading menu covers the tooltip.
func (t *Toolbar) HeadingTooltipEnabled() bool { return !t.headingOpen }

// ToggleHeading opens or closes the heading menu.
func (t *Toolbar) ToggleHeading() error {
	if !t.Visible() {
		return ErrHidden
	}
	t.headingOpen = !t.headingOpen
	return nil
}

// SelectHeading fires ActionHeading with level as the sub index. The click
// lands on the heading button too, so the menu closes.
func (t *Toolbar) SelectHeading(event Event, level int) error {
	if !t.Visible() {
		return ErrHidden
	}
	if !t.headingOpen || level < HeadingH1 || level > HeadingH3 {
		return fmt.Errorf("%w: heading level %d", ErrUnknownAction, level)
	}
	if t.OnOption != nil {
		t.OnOption(event, ActionHeading, level)
	}
	t.headingOpen = false
	return nil
}

// Click fires a formatting action. ActionHeading toggles the menu instead.
func (t *Toolbar) Click(event Event, action Action) error {
	if !t.Visible() {
		return ErrHidden
	}
	switch {
	case action == ActionHeading:
		return t.ToggleHeading()
	case action < ActionHeading || action > ActionOrderedList:
		return fmt.Errorf("%w: %d", ErrUnknownAction, action)
	}
	if t.OnOption != nil {
		t.OnOption(event, action)
	}
	return nil
}

// Upload forwards a file input to the image uploader.
func (t *Toolbar) Upload(event Event) error {
	if !t.Visible() {
		return ErrHidden
	}
	if t.OnUpload != nil {
		t.OnUpload(event, UploadModeWrite)
	}
	return nil
}
