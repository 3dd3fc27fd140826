package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/countdown/data"
	"github.com/samdwyer/countdown/internal/entity"
	"github.com/samdwyer/countdown/internal/gameerr"
	"github.com/samdwyer/countdown/internal/leaderboard"
	"github.com/samdwyer/countdown/internal/solver"
	"github.com/samdwyer/countdown/internal/telemetry"
	"github.com/samdwyer/countdown/internal/ui"
	"github.com/samdwyer/countdown/internal/validate"
)

// bestWordCount is how many best-word hints follow a letters round.
const bestWordCount = 3

// Game drives a Machine with player input.
type Game struct {
	cfg     Config
	ui      ui.Prompter
	deps    Deps
	board   leaderboard.Store // May be nil
	machine *Machine
	now     func() time.Time
	tracer  trace.Tracer

	span   trace.Span // Round in progress
	status ui.Line    // Message for the next page drawn
	saved  bool       // Final score offered to the board
}

// New creates a game at the intro screen.
func New(cfg Config, prompter ui.Prompter, deps Deps, board leaderboard.Store) *Game {
	return &Game{
		cfg:     cfg,
		ui:      prompter,
		deps:    deps,
		board:   board,
		machine: NewMachine(deps),
		now:     time.Now,
		tracer:  telemetry.Tracer("game"),
	}
}

// Run plays until the player quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	for {
		err := g.step(ctx)
		if errors.Is(err, ui.ErrQuit) {
			g.abandonRound()
			log.Info().Str("state", g.machine.State().String()).Msg("player quit")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.ui != nil {
		g.ui.Close()
	}
}

func (g *Game) step(ctx context.Context) error {
	m := g.machine
	switch m.State() {
	case StateIntro:
		return g.menu(ctx, "COUNTDOWN", data.Intro,
			"Enter 1 to start the game, 2 to see the rules or 3 for the high scores")
	case StateRules:
		return g.menu(ctx, "COUNTDOWN RULES", data.Rules,
			"Enter 1 to start the game or 2 to return to the intro screen")
	case StateScores:
		return g.scores(ctx)
	case StateEnterName:
		return g.enterName(ctx)
	case StateLettersRound:
		return g.choose(ctx, "Choose nine letters in total from the vowels and consonants.",
			"How many vowels would you like? (Enter a value between 3 and 9)",
			validate.VowelCount, m.ChooseVowels)
	case StateNumbersRound:
		return g.choose(ctx, "Choose six numbers in total from the big numbers (25, 50, 75, 100) and the small numbers.",
			"How many big numbers would you like? (Enter a value between 0 and 4)",
			validate.BigCount, m.ChooseBig)
	case StateShowLetters, StateShowNumbers, StateShowConundrum:
		g.startRound(ctx)
		return m.Next()
	case StateLettersGuess:
		return g.timedGuess(ctx, g.cfg.LettersTime, "Enter your word", g.lettersPage,
			func(in string, secs int) error { return m.SubmitLetters(ctx, in, secs) })
	case StateNumbersGuess:
		return g.timedGuess(ctx, g.cfg.NumbersTime, "Enter your solution", g.numbersPage,
			func(in string, secs int) error { return m.SubmitNumbers(in, secs) })
	case StateConundrumGuess:
		return g.timedGuess(ctx, g.cfg.ConundrumTime, "Enter your answer to the conundrum", g.conundrumPage,
			func(in string, secs int) error { return m.SubmitConundrum(ctx, in, secs) })
	case StateLettersFeedback, StateNumbersFeedback, StateConundrumFeedback:
		return g.feedback(ctx)
	case StateGameOver:
		return g.gameOver(ctx)
	default:
		return fmt.Errorf("no handler for state %s", m.State())
	}
}

// takeStatus returns the pending status line and clears it.
func (g *Game) takeStatus() ui.Line {
	s := g.status
	g.status = ui.Line{}
	return s
}

// reject turns a player-facing error into the next status line. Other
// errors are returned unchanged.
func (g *Game) reject(err error) error {
	msg := gameerr.Message(err)
	if msg == "" {
		return err
	}
	log.Debug().Err(err).Str("state", g.machine.State().String()).Msg("input rejected")
	g.status = ui.Line{Text: msg, Tone: ui.ToneError}
	return nil
}

func (g *Game) menu(ctx context.Context, title, screen, prompt string) error {
	lines, err := data.Screen(screen)
	if err != nil {
		return err
	}
	g.ui.Show(ui.Page{Title: title, Lines: ui.Text(lines...), Status: g.takeStatus()})
	line, err := g.ui.ReadLine(ctx, prompt, 0)
	if err != nil {
		return err
	}
	return g.reject(g.machine.Select(line))
}

func (g *Game) topScores(ctx context.Context) ([]leaderboard.Entry, error) {
	if g.board == nil {
		return nil, gameerr.New(gameerr.ErrExternalService, "no leaderboard configured")
	}
	entries, err := g.board.TopScores(ctx, g.cfg.LeaderboardSize)
	if err != nil {
		log.Warn().Err(err).Msg("leaderboard unavailable")
		return nil, gameerr.Wrap(gameerr.ErrExternalService, "leaderboard unavailable", err)
	}
	return entries, nil
}

func (g *Game) scores(ctx context.Context) error {
	lines := []ui.Line{}
	entries, err := g.topScores(ctx)
	switch {
	case err != nil:
		lines = append(lines, ui.Line{Text: "High scores are unavailable right now.", Tone: ui.ToneMuted})
	case len(entries) == 0:
		lines = append(lines, ui.Line{Text: "No scores yet. Be the first!", Tone: ui.ToneMuted})
	default:
		for i, e := range entries {
			lines = append(lines, ui.Line{
				Text: fmt.Sprintf("%2d. %-10s %6d   %s", i+1, ui.DisplayName(e.Name), e.Score, e.CreatedAt.Format("2006-01-02")),
			})
		}
	}
	g.ui.Show(ui.Page{Title: "HIGH SCORES", Lines: lines})
	if _, err := g.ui.ReadLine(ctx, "Press Enter to return to the intro screen", 0); err != nil {
		return err
	}
	return g.machine.Next()
}

func (g *Game) enterName(ctx context.Context) error {
	g.ui.Show(ui.Page{
		Title:  "WELCOME",
		Lines:  ui.Text("Names are 2 to 10 letters long."),
		Status: g.takeStatus(),
	})
	line, err := g.ui.ReadLine(ctx, "Please enter your name", 0)
	if err != nil {
		return err
	}

	high := 0
	if entries, err := g.topScores(ctx); err == nil {
		high = leaderboard.HighScoreFor(entries, line)
	}
	if err := g.machine.EnterName(line, high); err != nil {
		return g.reject(err)
	}

	_, span := g.tracer.Start(ctx, "game.start")
	span.SetAttributes(attribute.Int("player.high_score", high))
	span.End()
	log.Info().Str("player", line).Int("high_score", high).Msg("game started")
	return nil
}

// choose handles the vowel and big-number choices.
func (g *Game) choose(ctx context.Context, intro, prompt string, parse func(string) (int, error), apply func(int) error) error {
	m := g.machine
	g.ui.Show(ui.Page{
		Title:  ui.Banner(m.Round()),
		Lines:  append(ui.Text(intro), g.scoreLine()),
		Status: g.takeStatus(),
	})
	line, err := g.ui.ReadLine(ctx, prompt, 0)
	if err != nil {
		return err
	}
	n, err := parse(line)
	if err != nil {
		return g.reject(err)
	}
	return g.reject(apply(n))
}

func (g *Game) scoreLine() ui.Line {
	p := g.machine.Player()
	return ui.Line{
		Text: fmt.Sprintf("%s   Score: %d   High score: %d", ui.DisplayName(p.Name), p.Score, p.HighScore),
		Tone: ui.ToneMuted,
	}
}

func (g *Game) startRound(ctx context.Context) {
	round := g.machine.Round()
	kind := entity.KindOf(round)
	_, g.span = g.tracer.Start(ctx, "round."+strings.ToLower(kind.String()))
	g.span.SetAttributes(attribute.Int("round.number", round))
	log.Info().Int("round", round).Str("kind", kind.String()).Msg("round started")
}

func (g *Game) endRound(fb Feedback, verdict string) {
	if g.span == nil {
		return
	}
	g.span.SetAttributes(telemetry.Attrs(fb.Round, fb.Kind.String(), fb.Points, verdict)...)
	g.span.End()
	g.span = nil
}

func (g *Game) abandonRound() {
	if g.span == nil {
		return
	}
	g.span.SetAttributes(attribute.String("round.verdict", "quit"))
	g.span.End()
	g.span = nil
}

// secondsLeft rounds the time to deadline up to whole seconds.
func secondsLeft(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// timedGuess prompts until a guess is accepted or the budget runs out.
// Rejected guesses re-prompt with whatever time is left.
func (g *Game) timedGuess(ctx context.Context, budget time.Duration, prompt string, page func() ui.Page, submit func(string, int) error) error {
	deadline := g.now().Add(budget)
	for {
		left := deadline.Sub(g.now())
		if left <= 0 {
			return g.machine.Timeout()
		}
		p := page()
		p.Status = g.takeStatus()
		g.ui.Show(p)

		line, err := g.ui.ReadLine(ctx, prompt, left)
		if errors.Is(err, ui.ErrTimeout) {
			return g.machine.Timeout()
		}
		if err != nil {
			return err
		}
		err = submit(line, secondsLeft(deadline, g.now()))
		if err == nil {
			return nil
		}
		if err := g.reject(err); err != nil {
			return err
		}
	}
}

func (g *Game) lettersPage() ui.Page {
	return ui.Page{
		Title: ui.Banner(g.machine.Round()),
		Lines: []ui.Line{
			{Text: "Your letters are:"},
			{Text: ui.Spaced(g.machine.Letters().String()), Tone: ui.ToneAccent},
			{},
			{Text: "Make the longest word you can from these letters."},
			g.scoreLine(),
		},
	}
}

func (g *Game) numbersPage() ui.Page {
	set := g.machine.Numbers()
	nums := make([]string, len(set.Numbers))
	for i, n := range set.Numbers {
		nums[i] = fmt.Sprint(n)
	}
	return ui.Page{
		Title: ui.Banner(g.machine.Round()),
		Lines: []ui.Line{
			{Text: "Your numbers are:"},
			{Text: strings.Join(nums, "   "), Tone: ui.ToneAccent},
			{},
			{Text: fmt.Sprintf("Your target is: %d", set.Target), Tone: ui.ToneAccent},
			{Text: "Use + - * / and brackets. Each number may be used once."},
			g.scoreLine(),
		},
	}
}

func (g *Game) conundrumPage() ui.Page {
	return ui.Page{
		Title: ui.Banner(g.machine.Round()),
		Lines: []ui.Line{
			{Text: "Today's conundrum is:"},
			{Text: ui.Spaced(g.machine.Conundrum().Scrambled), Tone: ui.ToneAccent},
			{},
			{Text: "Find the nine-letter word."},
			g.scoreLine(),
		},
	}
}

func (g *Game) feedback(ctx context.Context) error {
	m := g.machine
	fb := m.Feedback()
	if fb.Unavailable {
		log.Warn().Err(fb.Cause).Int("round", fb.Round).Str("kind", fb.Kind.String()).Msg("round could not be dealt")
	}
	if g.span != nil {
		g.endRound(fb, fb.Verdict())
		log.Info().
			Int("round", fb.Round).
			Str("kind", fb.Kind.String()).
			Str("verdict", fb.Verdict()).
			Int("points", fb.Points).
			Msg("round finished")
	}

	var lines []ui.Line
	switch fb.Kind {
	case entity.KindLetters:
		lines = g.lettersFeedback(fb)
	case entity.KindNumbers:
		lines = g.numbersFeedback(ctx, fb)
	case entity.KindConundrum:
		lines = conundrumFeedback(fb)
	}
	lines = append(lines, ui.Line{}, g.scoreLine())

	g.ui.Show(ui.Page{Title: ui.Banner(fb.Round), Lines: lines})
	if _, err := g.ui.ReadLine(ctx, "Press Enter to continue", 0); err != nil {
		return err
	}
	return m.Next()
}

func pointsLine(points int) ui.Line {
	if points == 0 {
		return ui.Line{Text: "No points this round.", Tone: ui.ToneMuted}
	}
	return ui.Line{Text: fmt.Sprintf("You scored %d points!", points), Tone: ui.ToneSuccess}
}

func (g *Game) lettersFeedback(fb Feedback) []ui.Line {
	var lines []ui.Line
	word := strings.ToUpper(fb.Guess)
	switch {
	case fb.TimedOut:
		lines = append(lines, ui.Line{Text: "Out of time! No word this round.", Tone: ui.ToneError})
	case fb.LexiconDown:
		lines = append(lines, ui.Line{Text: fmt.Sprintf("No meaning found for %s: the dictionary is unavailable.", word), Tone: ui.ToneError})
	case fb.Known:
		lines = append(lines, ui.Line{Text: fmt.Sprintf("%s is in the dictionary.", word), Tone: ui.ToneSuccess})
		if meaning, ok := fb.Definition.First(); ok {
			lines = append(lines, ui.Line{Text: fmt.Sprintf("%s (%s): %s", strings.ToLower(word), meaning.PartOfSpeech, meaning.Text)})
		}
	default:
		lines = append(lines, ui.Line{Text: fmt.Sprintf("Sorry, no meaning found for %s.", word), Tone: ui.ToneError})
	}
	lines = append(lines, pointsLine(fb.Points))

	if g.deps.Corpus != nil {
		best := solver.BestWords(g.deps.Corpus.Words(), g.machine.Letters().Letters, bestWordCount)
		if len(best) > 0 {
			lines = append(lines, ui.Line{Text: "Best words: " + strings.Join(best, ", "), Tone: ui.ToneMuted})
		}
	}
	return lines
}

func (g *Game) numbersFeedback(ctx context.Context, fb Feedback) []ui.Line {
	set := g.machine.Numbers()
	var lines []ui.Line
	switch {
	case fb.TimedOut:
		lines = append(lines, ui.Line{Text: "Out of time! No solution this round.", Tone: ui.ToneError})
	case !fb.Evaluated:
		lines = append(lines, ui.Line{Text: "Your solution didn't evaluate.", Tone: ui.ToneError})
	case fb.Closeness == validate.Exact:
		lines = append(lines, ui.Line{Text: fmt.Sprintf("Spot on! %s = %d", fb.Guess, fb.Value), Tone: ui.ToneSuccess})
	default:
		lines = append(lines, ui.Line{
			Text: fmt.Sprintf("%s = %d, which is %d away from %d (%s).", fb.Guess, fb.Value, fb.Diff, set.Target, fb.Closeness),
		})
	}
	lines = append(lines, pointsLine(fb.Points))

	hctx, cancel := context.WithTimeout(ctx, g.cfg.HintTimeout)
	defer cancel()
	if sol, _ := solver.Solve(hctx, set.Numbers, set.Target); sol.Expr != "" {
		lines = append(lines, ui.Line{Text: fmt.Sprintf("One way: %s = %d", sol.Expr, sol.Value), Tone: ui.ToneMuted})
	}
	return lines
}

func conundrumFeedback(fb Feedback) []ui.Line {
	if fb.Unavailable {
		return []ui.Line{
			{Text: "No conundrum could be found this time.", Tone: ui.ToneError},
			pointsLine(0),
		}
	}
	var lines []ui.Line
	switch {
	case fb.TimedOut:
		lines = append(lines, ui.Line{Text: "Out of time!", Tone: ui.ToneError})
	case fb.Known:
		lines = append(lines, ui.Line{Text: "Correct!", Tone: ui.ToneSuccess})
	case fb.LexiconDown:
		lines = append(lines, ui.Line{Text: "The dictionary is unavailable, so only the answer below counts.", Tone: ui.ToneError})
	default:
		lines = append(lines, ui.Line{Text: fmt.Sprintf("Sorry, %s is not the answer.", strings.ToUpper(fb.Guess)), Tone: ui.ToneError})
	}
	lines = append(lines,
		pointsLine(fb.Points),
		ui.Line{Text: "The answer was " + fb.Answer, Tone: ui.ToneAccent},
	)
	return lines
}

func (g *Game) gameOver(ctx context.Context) error {
	m := g.machine
	p := m.Player()

	lines := []ui.Line{
		{Text: fmt.Sprintf("Final score: %d", p.Score), Tone: ui.ToneAccent},
	}
	if !g.saved {
		g.saved = true
		_, span := g.tracer.Start(ctx, "game.over")
		span.SetAttributes(attribute.Int("player.score", p.Score))
		if g.board != nil {
			made, err := g.board.InsertIfTop(ctx, p.Name, p.Score)
			if err != nil {
				log.Warn().Err(err).Msg("saving score failed")
				g.status = ui.Line{Text: "Your score could not be saved.", Tone: ui.ToneMuted}
			} else if made {
				g.status = ui.Line{Text: "You made the high score board!", Tone: ui.ToneSuccess}
			}
			span.SetAttributes(attribute.Bool("leaderboard.entered", made))
		}
		span.End()
		log.Info().Int("score", p.Score).Msg("game over")
	}
	screen, err := data.Screen(data.GameOver)
	if err != nil {
		return err
	}
	lines = append(lines, ui.Line{})
	lines = append(lines, ui.Text(screen...)...)

	g.ui.Show(ui.Page{Title: "GAME OVER", Lines: lines, Status: g.takeStatus()})
	line, err := g.ui.ReadLine(ctx, "Enter 1 to play again or 2 to quit", 0)
	if err != nil {
		return err
	}
	choice, err := validate.MenuChoice(line, 2)
	if err != nil {
		return g.reject(err)
	}
	if choice == 2 {
		return ui.ErrQuit
	}

	g.machine = NewMachine(g.deps)
	g.saved = false
	return g.machine.Restart(p.CarryOver())
}
