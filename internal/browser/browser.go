// Package browser defines the contracts the image automation consumes from a
// live browser: navigation, document commands and element handles.
package browser

import "context"

// SaveAs is the document command that opens the save dialog for the current
// document.
const SaveAs = "SaveAs"

// ChromiumSaveDialogTitle is the title of Chromium's save dialog on Windows.
const ChromiumSaveDialogTitle = "Save As"

// Browser navigates the single tab the automation owns.
type Browser interface {
	Goto(ctx context.Context, url string) error
	Back(ctx context.Context) error
	Location(ctx context.Context) (string, error)
	// Invoke runs a document-level command such as "SaveAs".
	Invoke(ctx context.Context, command string) error
}

// ElementHandle refers to one element in the page's object model. A handle is
// only usable while AssertExists succeeds; callers check it before every
// property access.
type ElementHandle interface {
	AssertExists(ctx context.Context) error
	Property(ctx context.Context, name string) (any, error)
	SetProperty(ctx context.Context, name string, value any) error
}

// DialogTitler is implemented by browsers whose SaveAs dialog carries a title
// of their own.
type DialogTitler interface {
	SaveDialogTitle() string
}

// Session is a connected browser tab that can hand out element handles.
type Session interface {
	Browser
	Element(selector string) ElementHandle
	Close() error
}
