package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/render"
)

// viewType tracks which browser view is active.
type viewType int

const (
	viewDecks viewType = iota
	viewCards
	viewCard
)

// stateChangedMsg is delivered whenever the collection service notifies
// its observers, including media resolution completions.
type stateChangedMsg struct{}

// App is the collection browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	styles Styles

	deckList list.Model
	cardList list.Model
	content  viewport.Model

	currentView  viewType
	selectedDeck int64
	selectedCard int64
	showAnswer   bool

	// changes carries observer notifications into the update loop.
	changes     chan struct{}
	unsubscribe func()

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new browser with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	deckList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	deckList.Title = "Decks"
	deckList.SetShowStatusBar(false)

	cardList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	cardList.Title = "Cards"
	cardList.SetShowStatusBar(false)

	app := &App{
		ports:       ports,
		styles:      DefaultStyles(),
		deckList:    deckList,
		cardList:    cardList,
		currentView: viewDecks,
		changes:     make(chan struct{}, 1),
	}
	app.unsubscribe = ports.Collection.Subscribe(app.signalChange)
	app.reloadDecks()
	return app, nil
}

// signalChange is invoked from the service's notification path; it must
// never block, so the channel is a coalescing buffer of one.
func (a *App) signalChange() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.waitForChange()
}

func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-a.changes
		return stateChangedMsg{}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.deckList.SetSize(msg.Width, msg.Height-2)
		a.cardList.SetSize(msg.Width, msg.Height-2)
		a.content = viewport.New(msg.Width, msg.Height-2)
		a.ready = true
		a.renderCard()
		return a, nil

	case stateChangedMsg:
		a.reloadDecks()
		a.reloadCards()
		a.renderCard()
		return a, a.waitForChange()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateActive(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if a.currentView == viewDecks || msg.String() == "ctrl+c" {
			if a.unsubscribe != nil {
				a.unsubscribe()
			}
			return a, tea.Quit
		}
	case "esc":
		switch a.currentView {
		case viewCard:
			a.currentView = viewCards
		case viewCards:
			a.currentView = viewDecks
		}
		return a, nil
	case "enter":
		switch a.currentView {
		case viewDecks:
			if item, ok := a.deckList.SelectedItem().(deckItem); ok {
				a.selectedDeck = item.id
				a.reloadCards()
				a.currentView = viewCards
			}
			return a, nil
		case viewCards:
			if item, ok := a.cardList.SelectedItem().(cardItem); ok {
				a.selectedCard = item.id
				a.showAnswer = false
				a.renderCard()
				a.currentView = viewCard
			}
			return a, nil
		case viewCard:
			a.showAnswer = !a.showAnswer
			a.renderCard()
			return a, nil
		}
	}
	return a.updateActive(msg)
}

func (a *App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case viewDecks:
		a.deckList, cmd = a.deckList.Update(msg)
	case viewCards:
		a.cardList, cmd = a.cardList.Update(msg)
	case viewCard:
		a.content, cmd = a.content.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "loading..."
	}
	var body string
	switch a.currentView {
	case viewDecks:
		body = a.deckList.View()
	case viewCards:
		body = a.cardList.View()
	case viewCard:
		body = a.content.View()
	}
	status := a.styles.Status.Render(a.statusLine())
	if a.err != nil {
		status = a.styles.Error.Render(a.err.Error())
	}
	return body + "\n" + status
}

func (a *App) statusLine() string {
	switch a.currentView {
	case viewCard:
		side := "question"
		if a.showAnswer {
			side = "answer"
		}
		return fmt.Sprintf("%s · enter: flip · esc: back", side)
	case viewCards:
		return "enter: show card · esc: decks"
	default:
		return a.ports.Collection.Path() + " · enter: open deck · q: quit"
	}
}

// deckItem is one deck row in the deck list.
type deckItem struct {
	id    int64
	name  string
	count int
}

func (d deckItem) Title() string       { return d.name }
func (d deckItem) Description() string { return fmt.Sprintf("%d cards", d.count) }
func (d deckItem) FilterValue() string { return d.name }

// cardItem is one card row in the card list.
type cardItem struct {
	id    int64
	front string
	tags  string
}

func (c cardItem) Title() string       { return c.front }
func (c cardItem) Description() string { return c.tags }
func (c cardItem) FilterValue() string { return c.front }

func (a *App) reloadDecks() {
	coll := a.ports.Collection.Collection()
	if coll == nil {
		a.deckList.SetItems(nil)
		return
	}
	counts := make(map[int64]int)
	for _, card := range coll.Cards {
		counts[card.DeckID]++
	}
	items := make([]list.Item, 0, len(counts))
	for id, n := range counts {
		items = append(items, deckItem{id: id, name: domain.DeckName(coll, id), count: n})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].(deckItem).name < items[j].(deckItem).name
	})
	a.deckList.SetItems(items)
}

func (a *App) reloadCards() {
	coll := a.ports.Collection.Collection()
	if coll == nil {
		a.cardList.SetItems(nil)
		return
	}
	query := domain.CardsQuery{DeckIDs: []int64{a.selectedDeck}}
	ids := make([]int64, 0, len(coll.Cards))
	for id, card := range coll.Cards {
		if query.Matches(card) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		card := coll.Cards[id]
		item := cardItem{id: id}
		if note, ok := coll.Notes[card.NoteID]; ok {
			if fields := note.Fields(); len(fields) > 0 {
				item.front = fields[0]
			}
			item.tags = strings.Join(note.Tags(), " ")
		}
		if item.front == "" {
			item.front = fmt.Sprintf("card %d", id)
		}
		items = append(items, item)
	}
	a.cardList.SetItems(items)
}

// renderCard refreshes the card viewport. Media references resolve through
// MediaURL, so a pending extraction renders empty now and fills in on the
// next state change notification.
func (a *App) renderCard() {
	if !a.ready || a.selectedCard == 0 {
		return
	}
	coll := a.ports.Collection.Collection()
	rendered, err := render.Face(coll, domain.CommittedFace(a.selectedCard), a.ports.Collection.MediaURL)
	if err != nil {
		a.err = err
		return
	}
	a.err = nil

	face := rendered.Question
	if a.showAnswer {
		rule := a.styles.Rule.Render(strings.Repeat("─", max(1, a.width-4)))
		face = rendered.Question + "\n" + rule + "\n" + rendered.Answer
	}
	a.content.SetContent(a.styles.Face.Render(stripHTML(face)))
	a.content.GotoTop()
}

// stripHTML reduces rendered card HTML to displayable terminal text.
// Tags are dropped; block-level breaks become newlines.
func stripHTML(s string) string {
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = strings.ReplaceAll(s, "<br/>", "\n")
	s = strings.ReplaceAll(s, "<br />", "\n")
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
