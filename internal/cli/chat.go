package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tabib-chatbot/internal/core"
)

var flagLanguage string

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run one intake session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runChat(ctx, os.Stdin, cmd.OutOrStdout(), a.dialogue, a.scripts, flagLanguage)
		},
	}
	cmd.Flags().StringVar(&flagLanguage, "language", "", "conversation language (en or ur); asked interactively when empty")
	return cmd
}

// runChat drives a single session over in/out. "/history" prints the
// conversation so far and "/quit" or EOF ends the session.
func runChat(ctx context.Context, in io.Reader, out io.Writer, dialogue *core.Dialogue, scripts core.Scripts, language string) error {
	scanner := bufio.NewScanner(in)
	sess := core.NewSession(scripts)

	lang, err := chooseLanguage(scanner, out, language)
	if err != nil {
		return err
	}
	if err := sess.SelectLanguage(lang); err != nil {
		return err
	}
	if err := sess.Initialize(); err != nil {
		return err
	}

	first, _ := sess.Last()
	fmt.Fprintf(out, "\n🩺 %s %s\n\n> ", core.AssistantPrefix(lang), first.Content)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "/quit":
			return nil
		case "/history":
			printHistory(out, sess)
			fmt.Fprint(out, "> ")
			continue
		}

		res, err := dialogue.Accept(ctx, sess, line)
		switch {
		case core.IsRecoverable(err):
			fmt.Fprintf(out, "\n⚠️  %s\n\n> ", core.FailureMessage(lang))
			continue
		case err != nil:
			return err
		case res.Ignored:
			fmt.Fprint(out, "> ")
			continue
		}
		fmt.Fprintf(out, "\n🩺 %s %s\n\n> ", core.AssistantPrefix(lang), res.Reply)
	}
	return scanner.Err()
}

func chooseLanguage(scanner *bufio.Scanner, out io.Writer, flag string) (core.Language, error) {
	if flag != "" {
		return core.ParseLanguage(flag)
	}
	for {
		fmt.Fprint(out, "انتخاب کریں | Select Language [en/ur]: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return core.LanguageUnset, err
			}
			return core.LanguageUnset, io.ErrUnexpectedEOF
		}
		lang, err := core.ParseLanguage(scanner.Text())
		if err == nil {
			return lang, nil
		}
	}
}

func printHistory(out io.Writer, sess *core.Session) {
	fmt.Fprintln(out, "\n📝 Conversation History")
	for _, l := range core.History(sess) {
		fmt.Fprintf(out, "%s %s\n", l.Prefix, l.Content)
	}
	fmt.Fprintf(out, "Selected Language: %s\n\n", sess.Language())
}
