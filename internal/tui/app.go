package tui

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/triviawheel/internal/config"
	"github.com/jask/triviawheel/internal/game"
	"github.com/jask/triviawheel/internal/i18n"
	"github.com/jask/triviawheel/internal/trivia"
	"github.com/jask/triviawheel/internal/wheel"
)

type appState string

const (
	statePlaying  appState = "playing"
	stateGameOver appState = "gameover"
)

type modalState string

const (
	modalNone     modalState = ""
	modalWheel    modalState = "wheel"
	modalQuestion modalState = "question"
	modalReveal   modalState = "reveal"
	modalSettings modalState = "settings"
)

const (
	frameInterval     = time.Second / 30
	countdownInterval = 250 * time.Millisecond
	landingBuffer     = 8
	settingsRows      = 4
)

// App is the bubbletea model for the whole game: the number boards, the
// wheel and question modals, settings, and the game-over screen.
type App struct {
	cfg  config.Config
	log  *zap.Logger
	sess *game.Session

	boards    []trivia.Difficulty
	selectors map[trivia.Difficulty]*wheel.Selector
	landings  chan landing

	state appState
	modal modalState
	board trivia.Difficulty
	lang  i18n.Lang

	width  int
	height int

	answerInput string
	deadline    time.Time
	reveal      game.Round
	status      string

	settingsCursor int
	settingsPrev   config.GameConfig

	busy      spinner.Model
	countdown progress.Model
}

// landing is what a selector callback pushes when its wheel stops.
type landing struct {
	difficulty trivia.Difficulty
	number     int
}

// New assembles the application model. A nil logger is replaced with a nop
// logger.
func New(cfg config.Config, log *zap.Logger, sess *game.Session) *App {
	if log == nil {
		log = zap.NewNop()
	}
	busy := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorAccent)),
	)
	countdown := progress.New(
		progress.WithGradient(string(colorGreen), string(colorPeach)),
		progress.WithoutPercentage(),
	)
	countdown.Width = 40

	a := &App{
		cfg:       cfg,
		log:       log,
		sess:      sess,
		selectors: make(map[trivia.Difficulty]*wheel.Selector),
		landings:  make(chan landing, landingBuffer),
		state:     statePlaying,
		lang:      cfg.UI.Lang(),
		busy:      busy,
		countdown: countdown,
	}
	for _, d := range []trivia.Difficulty{trivia.Easy, trivia.Hard} {
		if _, ok := sess.Bank(d); ok {
			a.boards = append(a.boards, d)
			a.selectors[d] = a.newSelector(d)
		}
	}
	if len(a.boards) > 0 {
		a.board = a.boards[0]
	}
	return a
}

// newSelector builds a wheel selector for one board, excluding the numbers
// already played this game.
func (a *App) newSelector(d trivia.Difficulty) *wheel.Selector {
	bank, _ := a.sess.Bank(d)
	sel := wheel.New(wheel.Config{
		Min:      1,
		Max:      bank.Count(),
		Turns:    a.cfg.Game.ExtraTurns,
		Duration: a.cfg.Game.SpinDuration(),
		OnResult: func(n int) {
			a.landings <- landing{difficulty: d, number: n}
		},
	})
	sel.SetExcluded(a.sess.Used(d))
	return sel
}

// Shutdown closes every selector so no landing can fire afterwards. Safe to
// call more than once.
func (a *App) Shutdown() {
	for _, sel := range a.selectors {
		sel.Close()
	}
}

func (a *App) Init() tea.Cmd {
	return a.waitForLanding()
}

// messages

type landingMsg landing

type frameMsg time.Time

type countdownMsg time.Time

type statusMsg string

type errMsg struct{ error }

// commands

func (a *App) waitForLanding() tea.Cmd {
	return func() tea.Msg {
		return landingMsg(<-a.landings)
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func countdownCmd() tea.Cmd {
	return tea.Tick(countdownInterval, func(t time.Time) tea.Msg { return countdownMsg(t) })
}

func (a *App) saveConfigCmd() tea.Cmd {
	cfg := a.cfg
	lang := a.lang
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg(i18n.T(lang, i18n.KeySaved))
	}
}

// update

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		w := 40
		if msg.Width > 0 && msg.Width-16 < w {
			w = msg.Width - 16
		}
		if w < 10 {
			w = 10
		}
		a.countdown.Width = w
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case landingMsg:
		return a.handleLanding(landing(msg))

	case frameMsg:
		if a.modal == modalWheel {
			return a, frameCmd()
		}
		return a, nil

	case countdownMsg:
		return a.handleCountdown()

	case spinner.TickMsg:
		if a.modal != modalWheel {
			return a, nil
		}
		var cmd tea.Cmd
		a.busy, cmd = a.busy.Update(msg)
		return a, cmd

	case statusMsg:
		a.status = string(msg)
		return a, nil

	case errMsg:
		a.status = msg.Error()
		a.log.Error("command failed", zap.Error(msg.error))
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal != modalNone {
		return a.handleModalKey(msg)
	}
	if a.state == stateGameOver {
		return a.handleGameOverKey(msg)
	}
	return a.handleBoardKey(msg)
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalWheel:
		return a.handleWheelKey(msg)
	case modalQuestion:
		return a.handleQuestionKey(msg)
	case modalReveal:
		return a.handleRevealKey(msg)
	case modalSettings:
		return a.handleSettingsKey(msg)
	}
	return a, nil
}

func (a *App) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a.quit()
	case "enter", " ":
		return a.startSpin()
	case "tab":
		a.cycleBoard(1)
	case "shift+tab":
		a.cycleBoard(-1)
	case "1", "2":
		if idx := int(msg.String()[0] - '1'); idx < len(a.boards) {
			a.selectBoard(a.boards[idx])
		}
	case "l":
		return a.cycleLanguage(1)
	case "p":
		a.openSettings()
	}
	return a, nil
}

func (a *App) handleWheelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a.quit()
	case "esc":
		a.cancelSpin()
	}
	return a, nil
}

func (a *App) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a.quit()
	case tea.KeyEsc:
		// Giving up scores like running out of time.
		return a.finishTimeout()
	case tea.KeyEnter:
		return a.submitAnswer()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		a.answerInput = trimLastRune(a.answerInput)
	case tea.KeySpace:
		a.answerInput += " "
	case tea.KeyRunes:
		a.answerInput += string(msg.Runes)
	}
	return a, nil
}

func (a *App) handleRevealKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a.quit()
	case "enter", "esc", " ":
		a.closeReveal()
	}
	return a, nil
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a.quit()
	case "up", "k":
		if a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case "down", "j":
		if a.settingsCursor < settingsRows-1 {
			a.settingsCursor++
		}
	case "left", "h":
		a.adjustSetting(-1)
	case "right", "l":
		a.adjustSetting(1)
	case "esc", "enter":
		return a.closeSettings()
	}
	return a, nil
}

func (a *App) handleGameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return a.quit()
	case "r":
		a.restart()
	case "l":
		return a.cycleLanguage(1)
	}
	return a, nil
}

// actions

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.Shutdown()
	return a, tea.Quit
}

func (a *App) selectBoard(d trivia.Difficulty) {
	if a.board == d {
		return
	}
	a.board = d
	a.status = ""
}

func (a *App) cycleBoard(step int) {
	if len(a.boards) < 2 {
		return
	}
	for i, d := range a.boards {
		if d == a.board {
			next := ((i+step)%len(a.boards) + len(a.boards)) % len(a.boards)
			a.selectBoard(a.boards[next])
			return
		}
	}
}

func (a *App) cycleLanguage(steps int) (tea.Model, tea.Cmd) {
	for i := 0; i < steps; i++ {
		a.lang = a.lang.Next()
	}
	a.cfg.UI.Language = string(a.lang)
	return a, a.saveConfigCmd()
}

// startSpin triggers the current board's wheel. A refused trigger means the
// pool is empty, since no spin can be live while the modal is closed.
func (a *App) startSpin() (tea.Model, tea.Cmd) {
	sel := a.selectors[a.board]
	if sel == nil {
		return a, nil
	}
	if !sel.TriggerSpin() {
		a.status = i18n.T(a.lang, i18n.KeyPoolEmpty)
		return a, nil
	}
	a.modal = modalWheel
	a.status = ""
	a.log.Info("spin started",
		zap.String("board", a.board.String()),
		zap.Int("pool", len(sel.Pool())),
	)
	return a, tea.Batch(frameCmd(), a.busy.Tick)
}

// cancelSpin closes the live selector so its landing never fires, then
// replaces it. The fresh selector starts back at rotation zero.
func (a *App) cancelSpin() {
	if sel := a.selectors[a.board]; sel != nil {
		sel.Close()
	}
	a.selectors[a.board] = a.newSelector(a.board)
	a.modal = modalNone
	a.log.Info("spin cancelled", zap.String("board", a.board.String()))
}

func (a *App) handleLanding(l landing) (tea.Model, tea.Cmd) {
	// Keep listening whatever happens with this landing.
	cmds := []tea.Cmd{a.waitForLanding()}

	// A landing can arrive from a selector that was already cancelled and
	// replaced; only the one the open wheel modal is waiting on counts.
	if a.modal != modalWheel || l.difficulty != a.board {
		return a, tea.Batch(cmds...)
	}

	round, err := a.sess.Begin(l.difficulty, l.number)
	if err != nil {
		a.log.Error("round begin failed", zap.Error(err),
			zap.String("board", l.difficulty.String()),
			zap.Int("number", l.number))
		a.modal = modalNone
		return a, tea.Batch(cmds...)
	}
	a.modal = modalQuestion
	a.answerInput = ""
	a.deadline = time.Now().Add(a.cfg.Game.AnswerDuration())
	a.log.Info("wheel landed",
		zap.String("board", l.difficulty.String()),
		zap.Int("number", round.Number),
	)
	cmds = append(cmds, countdownCmd())
	return a, tea.Batch(cmds...)
}

func (a *App) handleCountdown() (tea.Model, tea.Cmd) {
	if a.modal != modalQuestion {
		return a, nil
	}
	if !time.Now().Before(a.deadline) {
		return a.finishTimeout()
	}
	return a, countdownCmd()
}

func (a *App) submitAnswer() (tea.Model, tea.Cmd) {
	guess := strings.TrimSpace(a.answerInput)
	if guess == "" {
		return a, nil
	}
	round, err := a.sess.Resolve(a.lang, guess)
	if err != nil {
		a.log.Error("resolve failed", zap.Error(err))
		a.modal = modalNone
		return a, nil
	}
	a.finishRound(round)
	return a, nil
}

func (a *App) finishTimeout() (tea.Model, tea.Cmd) {
	round, err := a.sess.Timeout()
	if err != nil {
		a.log.Error("timeout failed", zap.Error(err))
		a.modal = modalNone
		return a, nil
	}
	a.finishRound(round)
	return a, nil
}

// finishRound records the outcome, moves to the reveal modal, and retires
// the played number from its board's wheel.
func (a *App) finishRound(round game.Round) {
	a.reveal = round
	a.answerInput = ""
	a.modal = modalReveal
	if sel := a.selectors[round.Difficulty]; sel != nil {
		sel.SetExcluded(a.sess.Used(round.Difficulty))
	}
	a.log.Info("round finished",
		zap.String("board", round.Difficulty.String()),
		zap.Int("number", round.Number),
		zap.Stringer("verdict", round.Verdict),
		zap.Bool("timed_out", round.TimedOut),
		zap.Int("points", round.Points),
		zap.Int("score", a.sess.Score()),
	)
}

func (a *App) closeReveal() {
	a.modal = modalNone
	if a.sess.Finished() {
		a.state = stateGameOver
		a.log.Info("game over", zap.Int("score", a.sess.Score()))
	}
}

func (a *App) openSettings() {
	a.modal = modalSettings
	a.settingsCursor = 0
	a.settingsPrev = a.cfg.Game
	a.status = ""
}

func (a *App) adjustSetting(dir int) {
	switch a.settingsCursor {
	case 0:
		steps := 1
		if dir < 0 {
			steps = len(i18n.All()) - 1
		}
		for i := 0; i < steps; i++ {
			a.lang = a.lang.Next()
		}
		a.cfg.UI.Language = string(a.lang)
	case 1:
		a.cfg.Game.SpinSeconds = clampInt(a.cfg.Game.SpinSeconds+dir, 1, 30)
	case 2:
		a.cfg.Game.AnswerSeconds = clampInt(a.cfg.Game.AnswerSeconds+dir, 5, 120)
	case 3:
		a.cfg.UI.WheelSize = clampInt(a.cfg.UI.WheelSize+2*dir, 11, 41)
	}
}

// closeSettings persists the new values. A changed spin duration only takes
// effect through fresh selectors.
func (a *App) closeSettings() (tea.Model, tea.Cmd) {
	a.modal = modalNone
	if a.cfg.Game.SpinSeconds != a.settingsPrev.SpinSeconds {
		for _, d := range a.boards {
			if sel := a.selectors[d]; sel != nil {
				sel.Close()
			}
			a.selectors[d] = a.newSelector(d)
		}
	}
	return a, a.saveConfigCmd()
}

func (a *App) restart() {
	a.sess.Reset()
	for _, d := range a.boards {
		if sel := a.selectors[d]; sel != nil {
			sel.Close()
		}
		a.selectors[d] = a.newSelector(d)
	}
	a.state = statePlaying
	if len(a.boards) > 0 {
		a.board = a.boards[0]
	}
	a.status = ""
	a.log.Info("new game")
}

// trimLastRune drops the final rune so multi-byte input erases cleanly.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
