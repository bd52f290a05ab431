package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/myflix/flix/internal/favorites"
	"github.com/myflix/flix/internal/models"
	"github.com/myflix/flix/internal/services"
	"github.com/myflix/flix/internal/session"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	WelcomeView ViewState = iota
	LoginView
	RegisterView
	MovieListView
	DetailView
	ProfileView
	ProfileEditView
	ConfirmDeleteView
)

// detailSection selects which facet of the selected movie the detail view shows.
type detailSection int

const (
	synopsisSection detailSection = iota
	genreSection
	directorSection
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	svc       services.Service
	session   *session.Store
	favs      *favorites.Sync
	width     int
	height    int
	movieList list.Model
	movies    []models.Movie
	selected  *models.Movie
	detail    detailSection
	genre     *models.Genre
	director  *models.Director
	profile   *models.User
	form      form
	toast     toast
	toastSeq  int
	toastDur  time.Duration
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, svc services.Service, sess *session.Store, favs *favorites.Sync, toastDur time.Duration) *Model {
	view := WelcomeView
	if sess.Authenticated() {
		view = MovieListView
	}
	return &Model{
		ctx:      ctx,
		view:     view,
		svc:      svc,
		session:  sess,
		favs:     favs,
		toastDur: toastDur,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init fetches the catalog and profile when a stored session exists.
func (m *Model) Init() tea.Cmd {
	if !m.session.Authenticated() {
		return nil
	}
	return tea.Batch(m.fetchMovies(), m.fetchProfile())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movieList.Width() == 0 {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case WelcomeView:
			return m.handleWelcomeKeys(msg)
		case LoginView, RegisterView, ProfileEditView:
			return m.handleFormKeys(msg)
		case MovieListView:
			return m.handleMovieListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ProfileView:
			return m.handleProfileKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmDeleteKeys(msg)
		}

	case loginResultMsg:
		if msg.err != nil {
			return m, m.showToast(msg.err.Error(), true)
		}
		if err := m.session.SetSession(msg.result.Token, msg.result.User.Username); err != nil {
			return m, m.showToast(err.Error(), true)
		}
		m.profile = &msg.result.User
		m.view = MovieListView
		return m, tea.Batch(
			m.fetchMovies(),
			m.showToast(fmt.Sprintf("Logged in as %s", msg.result.User.Username), false),
		)

	case registerResultMsg:
		if msg.err != nil {
			return m, m.showToast(msg.err.Error(), true)
		}
		m.form = newLoginForm()
		m.view = LoginView
		return m, m.showToast("Account created, please log in", false)

	case moviesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, m.showToast(msg.err.Error(), true)
		}
		m.movies = msg.movies
		if m.profile != nil {
			m.favs.Seed(m.profile, m.movies)
		}
		m.rebuildMovieList()
		return m, nil

	case profileFetchedMsg:
		if msg.err != nil {
			return m, m.showToast(msg.err.Error(), true)
		}
		m.profile = msg.user
		m.favs.Seed(msg.user, m.movies)
		m.rebuildMovieList()
		return m, nil

	case genreFetchedMsg:
		if msg.err != nil {
			return m, m.showToast(msg.err.Error(), true)
		}
		m.genre = msg.genre
		m.detail = genreSection
		return m, nil

	case directorFetchedMsg:
		if msg.err != nil {
			return m, m.showToast(msg.err.Error(), true)
		}
		m.director = msg.director
		m.detail = directorSection
		return m, nil

	case favoriteToggledMsg:
		m.rebuildMovieList()
		if msg.err != nil {
			return m, m.showToast(msg.err.Error(), true)
		}
		if msg.status == favorites.Favorite {
			return m, m.showToast("Added to favorites", false)
		}
		return m, m.showToast("Removed from favorites", false)

	case profileUpdatedMsg:
		if msg.err != nil {
			return m, m.showToast(msg.err.Error(), true)
		}
		m.profile = msg.user
		// Renames invalidate the stored username, keep the pair in step.
		if m.session.Username() != msg.user.Username {
			if err := m.session.SetSession(m.session.Token(), msg.user.Username); err != nil {
				return m, m.showToast(err.Error(), true)
			}
		}
		m.view = ProfileView
		return m, m.showToast("Profile updated", false)

	case accountDeletedMsg:
		if msg.err != nil {
			m.view = ProfileView
			return m, m.showToast(msg.err.Error(), true)
		}
		if err := m.session.Clear(); err != nil {
			return m, m.showToast(err.Error(), true)
		}
		m.profile = nil
		m.view = WelcomeView
		return m, m.showToast("Account deleted", false)

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil
	}

	if m.view == MovieListView {
		var cmd tea.Cmd
		m.movieList, cmd = m.movieList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	body := ""
	switch m.view {
	case WelcomeView:
		body = m.renderWelcome()
	case LoginView, RegisterView, ProfileEditView:
		body = m.form.view()
	case MovieListView:
		body = m.renderMovieList()
	case DetailView:
		body = m.renderDetail()
	case ProfileView:
		body = m.renderProfile()
	case ConfirmDeleteView:
		body = m.renderConfirmDelete()
	}
	return m.renderToast() + body
}

func (m *Model) handleWelcomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "l":
		m.form = newLoginForm()
		m.view = LoginView
		return m, nil
	case "r":
		m.form = newRegisterForm()
		m.view = RegisterView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		switch m.view {
		case ProfileEditView:
			m.view = ProfileView
		default:
			m.view = WelcomeView
		}
		return m, nil
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	case "enter":
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.view {
	case LoginView:
		username, password := m.form.value(0), m.form.value(1)
		if username == "" || password == "" {
			return m, m.showToast("Username and password are required", true)
		}
		return m, m.login(username, password)

	case RegisterView:
		details := models.Registration{
			Username: m.form.value(0),
			Password: m.form.value(1),
			Email:    m.form.value(2),
			Birthday: m.form.value(3),
		}
		if details.Username == "" || details.Password == "" || details.Email == "" {
			return m, m.showToast("Username, password and email are required", true)
		}
		return m, m.register(details)

	case ProfileEditView:
		details := models.ProfileEdit{
			Username:  m.form.value(0),
			Password:  m.form.value(1),
			Email:     m.form.value(2),
			Birthday:  m.form.value(3),
			FirstName: m.form.value(4),
			LastName:  m.form.value(5),
		}
		if details.Username == "" || details.Email == "" {
			return m, m.showToast("Username and email are required", true)
		}
		return m, m.updateProfile(details)
	}
	return m, nil
}

func (m *Model) handleMovieListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			movie := item.movie
			m.selected = &movie
			m.detail = synopsisSection
			m.genre = nil
			m.director = nil
			m.view = DetailView
		}
		return m, nil
	case "f":
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			return m, m.toggleFavorite(item.movie)
		}
		return m, nil
	case "p":
		m.view = ProfileView
		return m, m.fetchProfile()
	case "L":
		return m.logout()
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = MovieListView
		return m, nil
	case "s":
		m.detail = synopsisSection
		return m, nil
	case "g":
		if m.genre != nil {
			m.detail = genreSection
			return m, nil
		}
		return m, m.fetchGenre(m.selected.Genre.Name)
	case "d":
		if m.director != nil {
			m.detail = directorSection
			return m, nil
		}
		return m, m.fetchDirector(m.selected.Director.Name)
	case "f":
		return m, m.toggleFavorite(*m.selected)
	}
	return m, nil
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = MovieListView
		return m, nil
	case "e":
		if m.profile != nil {
			m.form = newEditForm(m.profile)
			m.view = ProfileEditView
		}
		return m, nil
	case "x":
		m.view = ConfirmDeleteView
		return m, nil
	case "L":
		return m.logout()
	}
	return m, nil
}

func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = ProfileView
		return m, nil
	case "y":
		return m, m.deleteAccount()
	}
	return m, nil
}

func (m *Model) logout() (tea.Model, tea.Cmd) {
	if err := m.session.Clear(); err != nil {
		return m, m.showToast(err.Error(), true)
	}
	m.profile = nil
	m.view = WelcomeView
	return m, m.showToast("Logged out", false)
}

// rebuildMovieList refreshes the favorite markers without losing the cursor.
func (m *Model) rebuildMovieList() {
	items := make([]list.Item, len(m.movies))
	for i, movie := range m.movies {
		items[i] = movieItem{movie: movie, favorite: m.favs.IsFavorite(movie.ID)}
	}
	if m.movieList.Width() == 0 {
		m.movieList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.movieList.Title = "MyFlix Catalog"
		m.movieList.SetSize(m.width-4, m.height-8)
		return
	}
	m.movieList.SetItems(items)
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.svc.Movies(m.ctx)
		return moviesFetchedMsg{movies: movies, err: err}
	}
}

func (m *Model) fetchProfile() tea.Cmd {
	username := m.session.Username()
	return func() tea.Msg {
		user, err := m.svc.User(m.ctx, username)
		return profileFetchedMsg{user: user, err: err}
	}
}

func (m *Model) fetchGenre(name string) tea.Cmd {
	return func() tea.Msg {
		genre, err := m.svc.Genre(m.ctx, name)
		return genreFetchedMsg{genre: genre, err: err}
	}
}

func (m *Model) fetchDirector(name string) tea.Cmd {
	return func() tea.Msg {
		director, err := m.svc.Director(m.ctx, name)
		return directorFetchedMsg{director: director, err: err}
	}
}

func (m *Model) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.svc.Login(m.ctx, username, password)
		return loginResultMsg{result: result, err: err}
	}
}

func (m *Model) register(details models.Registration) tea.Cmd {
	return func() tea.Msg {
		user, err := m.svc.Register(m.ctx, details)
		return registerResultMsg{user: user, err: err}
	}
}

func (m *Model) toggleFavorite(movie models.Movie) tea.Cmd {
	return func() tea.Msg {
		status, err := m.favs.Toggle(m.ctx, movie)
		return favoriteToggledMsg{movieID: movie.ID, status: status, err: err}
	}
}

func (m *Model) updateProfile(details models.ProfileEdit) tea.Cmd {
	username := m.session.Username()
	return func() tea.Msg {
		user, err := m.svc.UpdateUser(m.ctx, username, details)
		return profileUpdatedMsg{user: user, err: err}
	}
}

func (m *Model) deleteAccount() tea.Cmd {
	username := m.session.Username()
	return func() tea.Msg {
		return accountDeletedMsg{err: m.svc.DeleteUser(m.ctx, username)}
	}
}

func (m *Model) renderWelcome() string {
	title := styles.title.Render("MyFlix")
	body := "Browse the catalog, keep favorites, manage your profile.\n"
	loginKey := key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in"))
	registerKey := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register"))
	helpView := m.help.ShortHelpView([]key.Binding{loginKey, registerKey, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, body, helpView)
}

func (m *Model) renderMovieList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.profile, m.keys.logout, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No movie selected")
	}

	title := styles.title.Render(m.selected.Title)
	var body string
	switch m.detail {
	case genreSection:
		body = fmt.Sprintf("%s %s\n\n%s", styles.label.Render("Genre:"), m.genre.Name, m.genre.Description)
	case directorSection:
		body = fmt.Sprintf("%s %s\n\n%s", styles.label.Render("Director:"), m.director.Name, m.director.Bio)
	default:
		marker := ""
		if m.favs.IsFavorite(m.selected.ID) {
			marker = styles.ok.Render(" ★")
		}
		body = fmt.Sprintf("%s • %s%s\n\n%s",
			m.selected.Director.Name, m.selected.Genre.Name, marker, m.selected.Description)
	}

	synopsisKey := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "synopsis"))
	helpKeys := []key.Binding{synopsisKey, m.keys.genre, m.keys.director, m.keys.favorite, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderProfile() string {
	if m.profile == nil {
		return fmt.Sprintf("%s\n\nLoading...", styles.title.Render("Profile"))
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Profile"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render("Username:"), m.profile.Username))
	b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render("Email:"), m.profile.Email))
	if m.profile.Birthday != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render("Birthday:"), m.profile.Birthday))
	}

	b.WriteString(fmt.Sprintf("\n%s\n", styles.label.Render("Favorites")))
	favIDs := m.favs.Favorites()
	if len(favIDs) == 0 {
		b.WriteString(styles.help.Render("No favorite movies yet") + "\n")
	} else {
		byID := make(map[string]string, len(m.movies))
		for _, movie := range m.movies {
			byID[movie.ID] = movie.Title
		}
		for _, id := range favIDs {
			title := byID[id]
			if title == "" {
				title = id
			}
			b.WriteString(fmt.Sprintf("  ★ %s\n", title))
		}
	}

	helpKeys := []key.Binding{m.keys.edit, m.keys.remove, m.keys.back, m.keys.logout, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderConfirmDelete() string {
	title := styles.err.Render("Delete account?")
	body := "This removes your account and favorites permanently."
	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, helpView)
}
