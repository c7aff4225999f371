package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"chapter-quiz/internal/bankfile"
	"chapter-quiz/internal/quiz"
)

type Config struct {
	// BankDir holds the two question bank JSON files.
	BankDir string

	// ResultsDB enables the run archive when non-empty.
	ResultsDB string

	// Seed fixes the shuffle order; 0 means time-seeded.
	Seed int64
}

// Run drives the whole quiz flow over in/out: load banks, setup screen,
// quiz screen with immediate feedback, results screen.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	dir := cfg.BankDir
	if dir == "" {
		dir = "."
	}

	rawMC, rawTF, err := bankfile.LoadBanks(dir)
	if err != nil {
		return err
	}

	bankMC := quiz.Normalize(rawMC, quiz.TypeMultipleChoice)
	bankTF := quiz.Normalize(rawTF, quiz.TypeTrueFalse)
	if len(bankMC)+len(bankTF) == 0 {
		return errors.New("no questions found after parsing")
	}

	fmt.Fprintf(out, "Loaded %d multiple choice + %d true/false questions.\n", len(bankMC), len(bankTF))

	var store *quiz.SQLiteStore
	if cfg.ResultsDB != "" {
		store, err = quiz.NewSQLiteStore(cfg.ResultsDB)
		if err != nil {
			return fmt.Errorf("open results archive: %w", err)
		}
		defer store.Close()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runner := quiz.NewSeededRunner(bankMC, bankTF, seed)

	reader := bufio.NewReader(in)
	for {
		proceed, err := runSetup(reader, out, runner)
		if err != nil || !proceed {
			return err
		}

		for {
			next, err := runQuiz(ctx, reader, out, runner, store)
			if err != nil {
				return err
			}
			if next == quitApp {
				return nil
			}
			if next == backToSetup {
				break
			}
			// retakeStarted: the narrowed session is already live.
		}
	}
}

// afterQuiz tells the outer loop what follows a finished (or abandoned)
// quiz screen.
type afterQuiz int

const (
	quitApp afterQuiz = iota
	backToSetup
	retakeStarted
)

// runSetup loops the setup screen until the user starts a quiz (true) or
// quits (false).
func runSetup(reader *bufio.Reader, out io.Writer, runner *quiz.Runner) (bool, error) {
	printSetup(out, runner)

	for {
		fmt.Fprint(out, "\nsetup> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return false, nil
			}
			return false, err
		}

		args := strings.Fields(strings.TrimSpace(line))
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "help":
			printSetupHelp(out)
		case "quit", "exit":
			return false, nil
		case "mode":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: mode <mc|tf|mix>")
				continue
			}
			mode := quiz.Mode(strings.ToLower(args[1]))
			if !mode.Valid() {
				fmt.Fprintln(out, "mode must be one of mc, tf, mix")
				continue
			}
			runner.SetMode(mode)
			printSetup(out, runner)
		case "toggle":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: toggle <chapter number>")
				continue
			}
			chapters := runner.Catalog().Chapters()
			idx, err := strconv.Atoi(args[1])
			if err != nil || idx < 1 || idx > len(chapters) {
				fmt.Fprintf(out, "chapter number must be 1-%d\n", len(chapters))
				continue
			}
			chapter := chapters[idx-1]
			runner.SetChapterSelected(chapter, !runner.Catalog().IsSelected(chapter))
			printSetup(out, runner)
		case "all":
			runner.SelectAllChapters()
			printSetup(out, runner)
		case "none":
			runner.SelectNoChapters()
			printSetup(out, runner)
		case "count":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: count <n>")
				continue
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				fmt.Fprintln(out, "count must be a positive integer")
				continue
			}
			runner.SetCount(n)
			fmt.Fprintf(out, "Question count: %d\n", runner.Count())
		case "start":
			if !runner.CanStart() {
				fmt.Fprintln(out, "Select at least 1 chapter with questions to start.")
				continue
			}
			if _, err := runner.Start(""); err != nil {
				fmt.Fprintln(out, "No questions match your selection.")
				continue
			}
			return true, nil
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
	}
}

// runQuiz administers the live session and then the results screen.
func runQuiz(ctx context.Context, reader *bufio.Reader, out io.Writer, runner *quiz.Runner, store *quiz.SQLiteStore) (afterQuiz, error) {
	session := runner.Session()

	for !session.Completed() {
		printQuestion(out, session)

		fmt.Fprint(out, "answer> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return quitApp, nil
			}
			return quitApp, err
		}

		input := strings.ToLower(strings.TrimSpace(line))
		switch input {
		case "":
			continue
		case "n", "next":
			session.Advance()
		case "p", "prev":
			session.Retreat()
		case "q", "quit":
			runner.Reset()
			return backToSetup, nil
		default:
			handleAnswerInput(out, session, input)
		}
	}

	archiveRun(ctx, out, runner, store)
	return runResults(reader, out, runner)
}

func handleAnswerInput(out io.Writer, session *quiz.Session, input string) {
	question, ok := session.Current()
	if !ok {
		return
	}

	letter := quiz.NormalizeLetter(input)
	if letter == "" || letter[0] < 'A' || int(letter[0]-'A') >= len(question.Answers) {
		fmt.Fprintf(out, "Enter a letter A-%s, or n/p/q.\n", quiz.AnswerLetter(len(question.Answers)-1))
		return
	}

	outcome, applied := session.Answer(int(letter[0] - 'A'))
	if !applied {
		fmt.Fprintln(out, "Already answered. 'n' for the next question.")
		return
	}

	if outcome.Correct {
		fmt.Fprintln(out, "Correct!")
	} else {
		correct := question.Answers[outcome.CorrectIndex]
		fmt.Fprintf(out, "Wrong. Correct answer was %s. %s\n", quiz.AnswerLetter(outcome.CorrectIndex), correct.Text)
	}
}

// runResults shows the final screen and reads the follow-up choice:
// r = retake weakest chapter, s = back to setup, q = quit.
func runResults(reader *bufio.Reader, out io.Writer, runner *quiz.Runner) (afterQuiz, error) {
	session := runner.Session()
	insights := quiz.ComputeInsights(session.ChapterStats())

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Final score: %d%% (%d / %d correct)\n", session.ScorePercent(), session.CorrectCount(), session.Len())

	if insights.Strongest != nil {
		fmt.Fprintf(out, "Strongest: %s (%d%% • %d/%d)\n  %s\n",
			insights.Strongest.Chapter,
			accuracyPercent(insights.Strongest),
			insights.Strongest.Correct,
			insights.Strongest.Total,
			quiz.StrongestHint(insights.Strongest),
		)
	}
	if insights.Weakest != nil {
		fmt.Fprintf(out, "Weakest: %s (%d%% • %d/%d)\n  %s\n",
			insights.Weakest.Chapter,
			accuracyPercent(insights.Weakest),
			insights.Weakest.Correct,
			insights.Weakest.Total,
			quiz.WeakestHint(insights.Weakest),
		)
	}

	review := quiz.ReviewEntries(session.History())
	if len(review) > 0 {
		fmt.Fprintln(out, "\nReview:")
		for _, row := range review {
			verdict := "Incorrect"
			if row.Correct {
				verdict = "Correct"
			}
			fmt.Fprintf(out, "%d. %s\n   %s • You chose: %s %s • Correct: %s %s\n",
				row.Number, row.Question, verdict, row.ChosenLetter, row.ChosenText, row.CorrectLetter, row.CorrectText)
			if row.Meta != "" {
				fmt.Fprintf(out, "   %s\n", row.Meta)
			}
		}
	}

	for {
		fmt.Fprint(out, "\n[r]etake weakest, [s]etup, [q]uit: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return quitApp, nil
			}
			return quitApp, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "r":
			if insights.Weakest == nil {
				fmt.Fprintln(out, "No weakest chapter to retake.")
				continue
			}
			if _, err := runner.RetakeWeakest(); err != nil {
				fmt.Fprintln(out, "No questions match your selection.")
				continue
			}
			return retakeStarted, nil
		case "s":
			runner.Reset()
			return backToSetup, nil
		case "q", "quit", "exit":
			return quitApp, nil
		default:
			fmt.Fprintln(out, "Please answer r, s, or q.")
		}
	}
}

func archiveRun(ctx context.Context, out io.Writer, runner *quiz.Runner, store *quiz.SQLiteStore) {
	if store == nil {
		return
	}

	session := runner.Session()
	result := quiz.ResultFromSession("r_"+uuid.NewString(), runner.Mode(), runner.ChapterFilter(), session, time.Now().UTC())
	if err := store.SaveResult(ctx, result); err != nil {
		fmt.Fprintf(out, "warning: failed to archive result: %v\n", err)
	}
}

func printSetup(out io.Writer, runner *quiz.Runner) {
	catalog := runner.Catalog()
	pool := runner.CurrentPool()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Mode: %s\n", runner.Mode().Label())
	fmt.Fprintln(out, "Chapters:")
	for idx, chapter := range catalog.Chapters() {
		count, _ := catalog.Count(chapter)
		mark := " "
		if catalog.IsSelected(chapter) {
			mark = "x"
		}
		fmt.Fprintf(out, "  %2d. [%s] %s (%d Q)\n", idx+1, mark, chapter, count.Total)
	}

	counts := runner.CountChoices()
	if len(counts) == 0 {
		fmt.Fprintln(out, "No questions available for the selected chapters.")
		return
	}

	menu := make([]string, 0, len(counts))
	for _, n := range counts {
		item := strconv.Itoa(n)
		if n == runner.Count() {
			item = "[" + item + "]"
		}
		menu = append(menu, item)
	}
	fmt.Fprintf(out, "Question count: %s\n", strings.Join(menu, " "))
	fmt.Fprintf(out, "Ready: %d question(s) available with current filters.\n", len(pool))
}

func printSetupHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  mode <mc|tf|mix>")
	fmt.Fprintln(out, "  toggle <chapter number>")
	fmt.Fprintln(out, "  all | none")
	fmt.Fprintln(out, "  count <n>")
	fmt.Fprintln(out, "  start")
	fmt.Fprintln(out, "  quit")
}

func printQuestion(out io.Writer, session *quiz.Session) {
	question, ok := session.Current()
	if !ok {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Question %d/%d • Score: %d%%\n", session.Position()+1, session.Len(), session.ScorePercent())
	if meta := question.Meta(); meta != "" {
		fmt.Fprintln(out, meta)
	}
	fmt.Fprintf(out, "\n%s\n\n", question.Text)

	chosen, locked := session.Selection()
	correctIndex := question.CorrectIndex()
	for idx, answer := range question.Answers {
		marker := " "
		if locked {
			switch idx {
			case correctIndex:
				marker = "✓"
			case chosen:
				marker = "✗"
			}
		}
		fmt.Fprintf(out, "%s %s. %s\n", marker, quiz.AnswerLetter(idx), answer.Text)
	}

	if locked {
		fmt.Fprintln(out, "\nAnswered. 'n' for the next question, 'p' to go back.")
	}
	fmt.Fprintln(out)
}

func accuracyPercent(insight *quiz.ChapterInsight) int {
	return int(insight.Accuracy*100 + 0.5)
}
