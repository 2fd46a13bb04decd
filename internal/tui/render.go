package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/triviawheel/internal/game"
	"github.com/jask/triviawheel/internal/i18n"
	"github.com/jask/triviawheel/internal/trivia"
)

// ---------------------------------------------------------------------------
// Styles — Catppuccin Mocha themed
// ---------------------------------------------------------------------------

var (
	// Section and modal titles
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	// Header bar (spans full width)
	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	// App name in header
	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	// Board tab styles
	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Background(colorMantle).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Background(colorMantle)

	langTagStyle = lipgloss.NewStyle().
			Foreground(colorInfo).
			Background(colorMantle).
			Italic(true)

	// Footer bar
	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	// Status bar (above footer)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	// Section containers
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	sectionSepStyle = lipgloss.NewStyle().Foreground(colorSurface2)

	// Modal overlay
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	// Help key styling
	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	// Board cells
	usedCellStyle = lipgloss.NewStyle().Foreground(colorOverlay0).Strikethrough(true)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	scoreStyle  = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	pointsStyle = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)

	subtleStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	answerStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(colorText)
	timeStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
)

const boardColumns = 10

func verdictStyle(r game.Round) lipgloss.Style {
	switch {
	case r.TimedOut:
		return lipgloss.NewStyle().Foreground(colorWrong).Bold(true)
	case r.Verdict == trivia.VerdictCorrect:
		return lipgloss.NewStyle().Foreground(colorCorrect).Bold(true)
	case r.Verdict == trivia.VerdictClose:
		return lipgloss.NewStyle().Foreground(colorClose).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorWrong).Bold(true)
	}
}

func boardTitle(lang i18n.Lang, d trivia.Difficulty) string {
	if d == trivia.Hard {
		return i18n.T(lang, i18n.KeyHardBoard)
	}
	return i18n.T(lang, i18n.KeyEasyBoard)
}

// ---------------------------------------------------------------------------
// Top-level view
// ---------------------------------------------------------------------------

func (a *App) View() string {
	var body string
	switch a.state {
	case stateGameOver:
		body = a.renderGameOver()
	default:
		body = a.renderBoard()
	}
	base := a.placeWithFooter(body, a.renderStatusBar(), a.renderFooter(a.helpBindings()))
	if a.modal == modalNone {
		return base
	}
	return a.composeModal(base, a.renderModalBody())
}

func (a *App) renderBoard() string {
	bank, ok := a.sess.Bank(a.board)
	if !ok {
		return ""
	}
	header := a.renderHeader()
	score := scoreStyle.Render(fmt.Sprintf(i18n.T(a.lang, i18n.KeyScore), a.sess.Score()))
	remaining := subtleStyle.Render(fmt.Sprintf(i18n.T(a.lang, i18n.KeyRemaining), a.sess.Remaining(a.board)))
	scoreLine := a.centerLine(score + "   " + remaining)
	section := a.renderSection(boardTitle(a.lang, a.board), a.renderBoardGrid(bank))
	return header + "\n\n" + scoreLine + "\n\n" + section
}

// renderBoardGrid lays the board numbers out in rows; played ones are struck.
func (a *App) renderBoardGrid(bank *trivia.Bank) string {
	used := make(map[int]bool)
	for _, n := range a.sess.Used(a.board) {
		used[n] = true
	}
	var rows []string
	var row strings.Builder
	for n := 1; n <= bank.Count(); n++ {
		cell := fmt.Sprintf("%3d", n)
		if used[n] {
			cell = usedCellStyle.Render(cell)
		} else {
			cell = lipgloss.NewStyle().Foreground(wedgeColor(n - 1)).Render(cell)
		}
		row.WriteString(cell)
		if n%boardColumns == 0 || n == bank.Count() {
			rows = append(rows, row.String())
			row.Reset()
		} else {
			row.WriteString(" ")
		}
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderGameOver() string {
	lines := []string{
		scoreStyle.Render(fmt.Sprintf(i18n.T(a.lang, i18n.KeyFinalScore), a.sess.Score())),
		"",
	}
	rounds := a.sess.Rounds()
	for _, d := range a.boards {
		bank, ok := a.sess.Bank(d)
		if !ok {
			continue
		}
		good := 0
		for _, r := range rounds {
			if r.Difficulty == d && r.Points > 0 {
				good++
			}
		}
		lines = append(lines, fmt.Sprintf("%s  %d/%d", padRight(boardTitle(a.lang, d), 10), good, bank.Count()))
	}
	section := a.renderSection(i18n.T(a.lang, i18n.KeyGameOver), strings.Join(lines, "\n"))
	return a.renderHeader() + "\n\n" + section
}

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

func (a *App) renderHeader() string {
	name := headerAppStyle.Render(i18n.T(a.lang, i18n.KeyAppTitle))

	var tabs []string
	for _, d := range a.boards {
		label := boardTitle(a.lang, d)
		if d == a.board {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	tabBar := tabSepStyle.Render(" ") + strings.Join(tabs, tabSepStyle.Render("│"))

	content := name + "  " + tabBar + tabSepStyle.Render("  ") + langTagStyle.Render(a.lang.Name())

	if a.width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(a.width).Render(content)
}

func (a *App) renderFooter(bindings []key.Binding) string {
	// Build help text where every character carries the footer background.
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if a.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(a.width).Render(content)
}

func (a *App) renderStatusBar() string {
	text := a.status
	if a.modal == modalWheel {
		text = a.busy.View() + " " + i18n.T(a.lang, i18n.KeySpinning)
	}
	flat := strings.ReplaceAll(text, "\n", " ")
	if a.width == 0 {
		return statusBarStyle.Render(flat)
	}
	return statusBarStyle.Width(a.width).Render(flat)
}

func (a *App) helpBindings() []key.Binding {
	hint := func(keys []string, label, helpKey string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, i18n.T(a.lang, helpKey)))
	}
	switch {
	case a.modal == modalWheel:
		return []key.Binding{
			hint([]string{"esc"}, "esc", i18n.KeyHintClose),
			hint([]string{"q"}, "q", i18n.KeyHintQuit),
		}
	case a.modal == modalQuestion:
		return []key.Binding{
			hint([]string{"enter"}, "enter", i18n.KeyHintSubmit),
			hint([]string{"esc"}, "esc", i18n.KeyHintClose),
		}
	case a.modal == modalReveal:
		return []key.Binding{
			hint([]string{"enter"}, "enter", i18n.KeyHintClose),
		}
	case a.modal == modalSettings:
		return []key.Binding{
			hint([]string{"h", "l"}, "h/l", i18n.KeyHintAdjust),
			hint([]string{"esc"}, "esc", i18n.KeyHintClose),
		}
	case a.state == stateGameOver:
		return []key.Binding{
			hint([]string{"r"}, "r", i18n.KeyHintRestart),
			hint([]string{"q"}, "q", i18n.KeyHintQuit),
		}
	default:
		return []key.Binding{
			hint([]string{"enter", " "}, "enter", i18n.KeyHintSpin),
			hint([]string{"tab"}, "tab", i18n.KeyHintSwitch),
			hint([]string{"p"}, "p", i18n.KeyHintSettings),
			hint([]string{"l"}, "l", i18n.KeyHintLanguage),
			hint([]string{"q"}, "q", i18n.KeyHintQuit),
		}
	}
}

func (a *App) renderSection(title, content string) string {
	lines := splitLines(content)
	contentWidth := maxLineWidth(lines)
	if w := ansi.StringWidth(title); w > contentWidth {
		contentWidth = w
	}
	head := padRight(titleStyle.Render(title), contentWidth)
	separator := sectionSepStyle.Render(strings.Repeat("─", contentWidth))
	section := boxStyle.Render(head + "\n" + separator + "\n" + content)
	if a.width == 0 {
		return section
	}
	return lipgloss.Place(a.width, lipgloss.Height(section), lipgloss.Center, lipgloss.Top, section)
}

func (a *App) centerLine(s string) string {
	if a.width == 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}

func (a *App) placeWithFooter(body, statusLine, footer string) string {
	if a.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := a.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(a.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Ensure every line is full-width to prevent ghosting from previous frames
	lines := splitLines(main)
	for i, line := range lines {
		lines[i] = padRight(line, a.width)
	}
	main = strings.Join(lines, "\n")
	return main + "\n" + statusLine + "\n" + footer
}

// ---------------------------------------------------------------------------
// Modal bodies
// ---------------------------------------------------------------------------

func (a *App) renderModalBody() string {
	switch a.modal {
	case modalWheel:
		return a.renderWheelModal()
	case modalQuestion:
		return a.renderQuestionModal()
	case modalReveal:
		return a.renderRevealModal()
	case modalSettings:
		return a.renderSettingsModal()
	default:
		return ""
	}
}

func (a *App) renderWheelModal() string {
	sel := a.selectors[a.board]
	if sel == nil {
		return ""
	}
	title := titleStyle.Render(boardTitle(a.lang, a.board))
	if sess, ok := sel.Session(); ok {
		return title + "\n" + renderDial(sess.Labels, dialAngle(sess, time.Now()), a.dialSize())
	}
	return title + "\n" + renderDial(sel.Pool(), sel.Rotation(), a.dialSize())
}

func (a *App) renderQuestionModal() string {
	round, ok := a.sess.Current()
	if !ok {
		return ""
	}
	width := a.modalBodyWidth()
	title := titleStyle.Render(fmt.Sprintf(i18n.T(a.lang, i18n.KeyLandedOn), round.Number))
	text := questionStyle.Width(width).Render(round.Question.Prompt(a.lang))
	input := subtleStyle.Render(i18n.T(a.lang, i18n.KeyAnswerPrompt)+": ") + answerStyle.Render(a.answerInput+"▌")

	remaining := time.Until(a.deadline)
	if remaining < 0 {
		remaining = 0
	}
	frac := 0.0
	if total := a.cfg.Game.AnswerDuration(); total > 0 {
		frac = float64(remaining) / float64(total)
	}
	secs := int(math.Ceil(remaining.Seconds()))
	timeLine := timeStyle.Render(fmt.Sprintf(i18n.T(a.lang, i18n.KeyTimeLeft), secs))

	return strings.Join([]string{
		title,
		"",
		text,
		"",
		input,
		"",
		a.countdown.ViewAs(frac),
		timeLine,
	}, "\n")
}

func (a *App) renderRevealModal() string {
	round := a.reveal
	verdictKey := i18n.KeyWrong
	switch {
	case round.TimedOut:
		verdictKey = i18n.KeyTimeout
	case round.Verdict == trivia.VerdictCorrect:
		verdictKey = i18n.KeyCorrect
	case round.Verdict == trivia.VerdictClose:
		verdictKey = i18n.KeyClose
	}
	lines := []string{verdictStyle(round).Render(i18n.T(a.lang, verdictKey)), ""}
	if !round.TimedOut && round.Verdict != trivia.VerdictCorrect && strings.TrimSpace(round.Guess) != "" {
		lines = append(lines, subtleStyle.Render(i18n.T(a.lang, i18n.KeyAnswerPrompt)+": ")+round.Guess)
	}
	answer := round.Question.CanonicalAnswer(a.lang)
	lines = append(lines,
		fmt.Sprintf(i18n.T(a.lang, i18n.KeyAnswerWas), answerStyle.Render(answer)),
		"",
		pointsStyle.Render(fmt.Sprintf("+%d", round.Points))+"   "+
			subtleStyle.Render(fmt.Sprintf(i18n.T(a.lang, i18n.KeyScore), a.sess.Score())),
	)
	return strings.Join(lines, "\n")
}

func (a *App) renderSettingsModal() string {
	rows := []struct {
		label string
		value string
	}{
		{i18n.T(a.lang, i18n.KeyLanguage), a.lang.Name()},
		{i18n.T(a.lang, i18n.KeySpinSeconds), strconv.Itoa(a.cfg.Game.SpinSeconds)},
		{i18n.T(a.lang, i18n.KeyAnswerSeconds), strconv.Itoa(a.cfg.Game.AnswerSeconds)},
		{i18n.T(a.lang, i18n.KeyWheelSize), strconv.Itoa(a.cfg.UI.WheelSize)},
	}
	out := titleStyle.Render(i18n.T(a.lang, i18n.KeySettingsTitle)) + "\n"
	for i, row := range rows {
		marker := "  "
		value := row.value
		if i == a.settingsCursor {
			marker = cursorStyle.Render("▶ ")
			value = "‹ " + value + " ›"
		}
		out += "\n" + marker + padRight(row.label, 24) + " " + value
	}
	return out
}

func (a *App) modalBodyWidth() int {
	w := 52
	if a.width > 0 && a.width-10 < w {
		w = a.width - 10
	}
	if w < 24 {
		w = 24
	}
	return w
}

// ---------------------------------------------------------------------------
// Modal overlay
// ---------------------------------------------------------------------------

func (a *App) composeModal(base, content string) string {
	modal := modalStyle.Render(content)
	if a.width == 0 || a.height == 0 {
		return base + "\n\n" + modal
	}
	lines := splitLines(modal)
	modalWidth := maxLineWidth(lines)
	modalHeight := len(lines)

	targetHeight := a.height - 2
	if targetHeight < 1 {
		targetHeight = 1
	}
	x := (a.width - modalWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (targetHeight - modalHeight) / 2
	if y < 0 {
		y = 0
	}
	return overlayAt(base, modal, x, y, a.width, targetHeight)
}

// overlayAt composites an overlay string on top of a base string at the given
// character position (x, y). Both are treated as line-based grids.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		leftWidth := ansi.StringWidth(left)
		if leftWidth < x {
			left += strings.Repeat(" ", x-leftWidth)
		}

		overlayLine := padRight(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			rightWidth := ansi.StringWidth(right)
			gap := width - pos - rightWidth
			if gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}

		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

// ---------------------------------------------------------------------------
// String utilities
// ---------------------------------------------------------------------------

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
