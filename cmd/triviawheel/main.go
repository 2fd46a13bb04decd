package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/triviawheel/internal/config"
	"github.com/jask/triviawheel/internal/game"
	"github.com/jask/triviawheel/internal/logging"
	"github.com/jask/triviawheel/internal/trivia"
	"github.com/jask/triviawheel/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// question banks
	easy := loadBank(trivia.Easy, cfg.Game.EasyQuestions)
	hard := loadBank(trivia.Hard, cfg.Game.HardQuestions)

	sess := game.NewSession(easy, hard)

	app := tui.New(cfg, logger, sess)
	defer app.Shutdown()

	logger.Info("starting",
		zap.Int("easy_questions", easy.Count()),
		zap.Int("hard_questions", hard.Count()),
		zap.String("language", cfg.UI.Language),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}

	logger.Info("exiting", zap.Int("final_score", sess.Score()))
}

func loadBank(d trivia.Difficulty, limit int) *trivia.Bank {
	bank, err := trivia.LoadEmbedded(d)
	if err != nil {
		log.Fatalf("%s bank: %v", d, err)
	}
	return bank.Limit(limit)
}
