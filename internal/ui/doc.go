// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the MyFlix catalog:
//  1. [WelcomeView] : Entry point offering login or registration
//  2. [LoginView] / [RegisterView] : Credential forms built on bubbles/textinput
//  3. [MovieListView] : Browse the catalog with favorite markers
//  4. [DetailView] : Synopsis, genre and director facets of one movie
//  5. [ProfileView] / [ProfileEditView] : Account details and edits
//  6. [ConfirmDeleteView] : Explicit y/n confirmation before account deletion
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Favorite toggles run through the favorites synchronizer from command goroutines,
// so the view-state flip is immediate while the server request settles in the
// background. Outcomes surface as transient toasts that auto-dismiss on a timer.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
