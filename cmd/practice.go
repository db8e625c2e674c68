package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/abhisek/interviz/internal/coach"
	"github.com/abhisek/interviz/internal/evaluator"
	"github.com/abhisek/interviz/internal/ui/components"
	"github.com/abhisek/interviz/internal/ui/theme"
)

const (
	promptNext     = "Next question"
	promptCategory = "Change category"
	promptProgress = "Show progress"
	promptQuit     = "Quit"

	practiceWidth = 60
)

var practiceMenu = []string{promptNext, promptCategory, promptProgress, promptQuit}

var errQuit = errors.New("quit requested")

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice interview questions in the terminal",
	RunE:  runPractice,
}

func init() {
	practiceCmd.Flags().String("user", "local", "profile id for this session")
}

func runPractice(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	user, _ := cmd.Flags().GetString("user")
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Title.Render("interviz practice"))

	err = practiceLoop(ctx, out, a.coach, user)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func practiceLoop(ctx context.Context, out io.Writer, svc *coach.Service, user string) error {
	category, err := chooseCategory(svc.Categories())
	if err != nil {
		return err
	}

	for {
		res, err := svc.RequestQuestion(ctx, user, category)
		if err != nil {
			return err
		}
		if res.Message != "" {
			fmt.Fprintln(out, theme.Hint.Render(res.Message))
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Question.Render(res.Question))

		answer, err := (&promptui.Prompt{
			Label: "Your answer",
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("answer is empty")
				}
				return nil
			},
		}).Run()
		if err != nil {
			return promptErr(err)
		}

		sub, err := svc.SubmitAnswer(ctx, user, res.Question, answer)
		switch {
		case errors.Is(err, evaluator.ErrServiceUnavailable):
			fmt.Fprintln(out, theme.Hint.Render("Analysis service unavailable. Please try again."))
		case err != nil:
			return err
		default:
			fmt.Fprintln(out, components.Evaluation(sub.Evaluation, practiceWidth))
		}

	menu:
		for {
			_, action, err := (&promptui.Select{
				Label: "Continue?",
				Items: practiceMenu,
			}).Run()
			if err != nil {
				return promptErr(err)
			}

			switch action {
			case promptNext:
				break menu
			case promptCategory:
				if category, err = chooseCategory(svc.Categories()); err != nil {
					return err
				}
				break menu
			case promptProgress:
				fmt.Fprintln(out, components.Progress(svc.Progress(user), practiceWidth))
			case promptQuit:
				return errQuit
			}
		}
	}
}

func chooseCategory(categories []string) (string, error) {
	_, category, err := (&promptui.Select{
		Label: "Category",
		Items: categories,
	}).Run()
	if err != nil {
		return "", promptErr(err)
	}
	return category, nil
}

// promptErr maps an interrupted prompt to a clean exit.
func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errQuit
	}
	return fmt.Errorf("prompt: %w", err)
}
